package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.json")
	content := `[
		{"page": 2, "text": "flame | flamë"},
		{"page": 1, "text": "balance | stílibra"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("pages = %+v, want 2", pages)
	}
	if pages[0].Number != 1 || pages[1].Number != 2 {
		t.Errorf("pages not sorted by number: %+v", pages)
	}
}

func TestLoadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.jsonl")
	content := `{"page": 1, "text": "balance | stílibra"}

{"page": 3, "text": "void | tómr"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("pages = %+v, want 2", pages)
	}
	if pages[1].Number != 3 {
		t.Errorf("non-contiguous page number lost: %+v", pages[1])
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"page-2.txt":  "flame | flamë",
		"page-10.txt": "void | tómr",
		"notes.md":    "ignored",
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	pages, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("pages = %+v, want 2", pages)
	}
	if pages[0].Number != 2 || pages[1].Number != 10 {
		t.Errorf("numeric ordering broken: %+v", pages)
	}
}

func TestLoadStripsFurnitureAndBlankPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.json")
	content := `[
		{"page": 1, "text": "Page 1\nbalance | stílibra\n42"},
		{"page": 2, "text": "Page 2 of 300\n  \n17"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("pages = %+v, want the blank page dropped", pages)
	}
	if strings.Contains(pages[0].Text, "Page 1") || strings.Contains(pages[0].Text, "42") {
		t.Errorf("furniture survived: %q", pages[0].Text)
	}
	if !strings.Contains(pages[0].Text, "balance") {
		t.Errorf("content lost: %q", pages[0].Text)
	}
}

func TestLoadDropsNonPositivePageNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.json")
	content := `[
		{"page": 0, "text": "cover | titlepage"},
		{"page": -3, "text": "flame | flamë"},
		{"page": 1, "text": "balance | stílibra"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || pages[0].Number != 1 {
		t.Errorf("pages = %+v, want only page 1", pages)
	}
}

func TestLoadMissingSource(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.csv")
	if err := os.WriteFile(path, []byte("a,b"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}
