package jsonimport

import (
	"strings"
	"testing"

	"github.com/libran/dictimport/internal/schema"
)

func TestImportClusters(t *testing.T) {
	doc := `{
		"clusters": {
			"balance": {
				"ancient": [
					{"english": "Balance", "ancient": "stílibra", "source": "core list"}
				],
				"modern": [
					{"english": "Balance", "modern": "stílibra", "notes": "unchanged"}
				]
			},
			"fate": {
				"ancient": [
					{"english": "Fate", "ancient": "fatum-fator"},
					{"english": "Doom", "ancient": "—"}
				]
			}
		}
	}`

	imp := NewImporter(nil)
	out, err := imp.Import([]byte(doc), schema.VariantAncient)
	if err != nil {
		t.Fatal(err)
	}

	if out.AncientEntries["balance"] != "stílibra" {
		t.Errorf("ancient[balance] = %q", out.AncientEntries["balance"])
	}
	if out.ModernEntries["balance"] != "stílibra" {
		t.Errorf("modern[balance] = %q", out.ModernEntries["balance"])
	}
	if got := out.AncientEntries["fate"]; got != "fator" {
		t.Errorf("donor prefix not stripped: ancient[fate] = %q", got)
	}

	found := false
	for _, ex := range out.Excluded {
		if ex.English == "Doom" && strings.Contains(ex.Reason, "translation") {
			found = true
		}
	}
	if !found {
		t.Errorf("placeholder entry not excluded with reason: %+v", out.Excluded)
	}
}

func TestImportClustersRejectsInvalidDocument(t *testing.T) {
	doc := `{"clusters": {"balance": {"ancient": [{"ancient": "stílibra"}]}}}`

	imp := NewImporter(nil)
	if _, err := imp.Import([]byte(doc), schema.VariantAncient); err == nil {
		t.Error("entry without english field should fail schema validation")
	}
}

func TestCleanLoanword(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain word", "stílibra", "stílibra"},
		{"placeholder", "—", ""},
		{"parenthetical stripped", "flamë (sacred)", "flamë"},
		{"mid-string parenthetical stripped", "flamë (old form) varr", "flamëvarr"},
		{"donor prefix stripped", "fatum-fator", "fator"},
		{"donor prefix alone", "fatum", ""},
		{"too short after cleaning", "a", ""},
		{"empty", "", ""},
		{"punctuation removed", "tómr!", "tómr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanLoanword(tt.in); got != tt.want {
				t.Errorf("cleanLoanword(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
