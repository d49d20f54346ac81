package build

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/libran/dictimport/internal/schema"
)

func TestWriteReports(t *testing.T) {
	b := NewBuilder(Options{})
	b.ProcessEntry(entry("balance", "stílibra", "stílibra"))
	b.ProcessEntry(entry("balance", "stílibra_alt", "stílibra_alt"))
	b.ProcessEntry(entry("", "tómr", ""))
	out := b.Build()

	dir := t.TempDir()
	buildID, err := WriteReports(dir, out)
	if err != nil {
		t.Fatal(err)
	}
	if buildID == "" {
		t.Error("empty build ID")
	}

	t.Run("ancient mapping", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, FileAncient))
		if err != nil {
			t.Fatal(err)
		}
		var m map[string]string
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatal(err)
		}
		if m["balance"] != "stílibra" {
			t.Errorf("ancient[balance] = %q", m["balance"])
		}
	})

	t.Run("excluded report", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, FileExcluded))
		if err != nil {
			t.Fatal(err)
		}
		text := string(data)
		if !strings.Contains(text, "Reason: empty headword") {
			t.Errorf("excluded report missing reason:\n%s", text)
		}
	})

	t.Run("variants report", func(t *testing.T) {
		f, err := os.Open(filepath.Join(dir, FileVariants))
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		records, err := csv.NewReader(f).ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 2 {
			t.Fatalf("records = %v, want header plus one variant", records)
		}
		if records[1][0] != "balance" || records[1][1] != "stílibra_alt" {
			t.Errorf("variant row = %v", records[1])
		}
	})

	t.Run("all rows report", func(t *testing.T) {
		f, err := os.Open(filepath.Join(dir, FileAllRows))
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		records, err := csv.NewReader(f).ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		statuses := map[string]int{}
		for _, rec := range records[1:] {
			statuses[rec[len(rec)-1]]++
		}
		if statuses["kept"] != 1 || statuses["variant"] != 1 || statuses["excluded"] != 1 {
			t.Errorf("status counts = %v", statuses)
		}
	})

	t.Run("summary", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, FileReport))
		if err != nil {
			t.Fatal(err)
		}
		text := string(data)
		if !strings.Contains(text, buildID) {
			t.Error("summary missing build ID")
		}
		if !strings.Contains(text, FileAncient) || !strings.Contains(text, FileVariants) {
			t.Error("summary missing file manifest")
		}
	})
}

func TestWriteReportsEmptyBuild(t *testing.T) {
	out := schema.DictionaryBuild{
		AncientEntries: map[string]string{},
		ModernEntries:  map[string]string{},
	}
	dir := t.TempDir()
	if _, err := WriteReports(dir, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, FileExcluded))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "None.") {
		t.Errorf("empty excluded report = %q", string(data))
	}
}
