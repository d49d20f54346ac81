package audit

import (
	"strings"
	"testing"

	"github.com/libran/dictimport/internal/schema"
)

func findingWith(findings []Finding, field, fragment string) bool {
	for _, f := range findings {
		if f.Field == field && strings.Contains(f.Message, fragment) {
			return true
		}
	}
	return false
}

func TestCheckEntry(t *testing.T) {
	v := NewValidator()

	t.Run("clean entry", func(t *testing.T) {
		e := schema.Entry{English: "Balance", Ancient: "stílibra", POS: "n", Confidence: 0.9}
		if findings := v.CheckEntry(e); len(findings) != 0 {
			t.Errorf("findings = %v, want none", findings)
		}
	})

	t.Run("lowercase headword flagged", func(t *testing.T) {
		e := schema.Entry{English: "balance", Ancient: "stílibra", Confidence: 0.9}
		if !findingWith(v.CheckEntry(e), "english", "capitalized") {
			t.Error("expected capitalization finding")
		}
	})

	t.Run("bad characters in headword", func(t *testing.T) {
		e := schema.Entry{English: "Bal@nce", Ancient: "stílibra", Confidence: 0.9}
		if !findingWith(v.CheckEntry(e), "english", "unexpected characters") {
			t.Error("expected charset finding")
		}
	})

	t.Run("diacritics are legal in translations", func(t *testing.T) {
		e := schema.Entry{English: "Flame", Ancient: "flamë", Modern: "flamă", Confidence: 0.9}
		for _, f := range v.CheckEntry(e) {
			if strings.Contains(f.Message, "unexpected characters") {
				t.Errorf("diacritics flagged: %v", f)
			}
		}
	})

	t.Run("unknown pos tag", func(t *testing.T) {
		e := schema.Entry{English: "Balance", Ancient: "stílibra", POS: "gerundive", Confidence: 0.9}
		if !findingWith(v.CheckEntry(e), "pos", "gerundive") {
			t.Error("expected pos finding")
		}
	})

	t.Run("confidence out of range", func(t *testing.T) {
		e := schema.Entry{English: "Balance", Ancient: "stílibra", Confidence: 1.5}
		if !findingWith(v.CheckEntry(e), "confidence", "outside") {
			t.Error("expected confidence finding")
		}
	})

	t.Run("missing translations", func(t *testing.T) {
		e := schema.Entry{English: "Balance", Confidence: 0.9}
		if !findingWith(v.CheckEntry(e), "translation", "no translation") {
			t.Error("expected completeness finding")
		}
	})
}

func TestCheckBuild(t *testing.T) {
	v := NewValidator()

	t.Run("empty build flagged", func(t *testing.T) {
		b := schema.DictionaryBuild{
			AncientEntries: map[string]string{},
			ModernEntries:  map[string]string{},
		}
		if !findingWith(v.CheckBuild(b), "build", "no entries") {
			t.Error("expected empty-build finding")
		}
	})

	t.Run("diverged variants flagged informationally", func(t *testing.T) {
		b := schema.DictionaryBuild{
			AncientEntries: map[string]string{"balance": "stílibra"},
			ModernEntries:  map[string]string{"balance": "stilibra"},
		}
		if !findingWith(v.CheckBuild(b), "build", "differ") {
			t.Error("expected divergence finding")
		}
	})

	t.Run("matching variants pass", func(t *testing.T) {
		b := schema.DictionaryBuild{
			AncientEntries: map[string]string{"balance": "stílibra"},
			ModernEntries:  map[string]string{"balance": "stílibra"},
		}
		if findings := v.CheckBuild(b); len(findings) != 0 {
			t.Errorf("findings = %v, want none", findings)
		}
	})
}
