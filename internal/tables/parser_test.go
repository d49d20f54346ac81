package tables

import (
	"strings"
	"testing"
)

func TestParsePageDualTable(t *testing.T) {
	text := strings.Join([]string{
		"English | Ancient | Modern",
		"balance | stílibra | stílibra",
		"flame   | flamë    | flama",
	}, "\n")

	p := NewParser(nil)
	page, err := p.ParsePage(text, 12)
	if err != nil {
		t.Fatalf("ParsePage error = %v", err)
	}
	if len(page.Entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(page.Entries), page.Entries)
	}

	balance := page.Entries[0]
	if balance.English != "balance" || balance.Ancient != "stílibra" || balance.Modern != "stílibra" {
		t.Errorf("balance entry = %+v", balance)
	}
	if balance.SourcePage != 12 || balance.TableOrder != 0 {
		t.Errorf("provenance = page %d order %d", balance.SourcePage, balance.TableOrder)
	}

	flame := page.Entries[1]
	if flame.Ancient != "flamë" || flame.Modern != "flama" {
		t.Errorf("flame entry = %+v", flame)
	}
}

func TestParsePageDualTableRequiresBothTranslations(t *testing.T) {
	text := strings.Join([]string{
		"English | Ancient | Modern",
		"balance | stílibra |",
	}, "\n")

	p := NewParser(nil)
	page, err := p.ParsePage(text, 1)
	if err != nil {
		t.Fatalf("ParsePage error = %v", err)
	}
	for _, e := range page.Entries {
		if e.English == "balance" && e.Confidence == confStructured {
			t.Errorf("dual layout accepted a half-filled row: %+v", e)
		}
	}
}

func TestParsePageMultiCluster(t *testing.T) {
	text := strings.Join([]string{
		"English | Ancient | Modern",
		"balance | stílibra | stílibra",
		"English | Ancient | Modern",
		"balance | stílibra_alt | stílibra_alt",
	}, "\n")

	p := NewParser(nil)
	page, err := p.ParsePage(text, 3)
	if err != nil {
		t.Fatalf("ParsePage error = %v", err)
	}
	if len(page.Entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(page.Entries), page.Entries)
	}
	if page.Entries[0].TableOrder != 0 || page.Entries[1].TableOrder != 1 {
		t.Errorf("table orders = %d, %d; want 0, 1",
			page.Entries[0].TableOrder, page.Entries[1].TableOrder)
	}
	if page.Entries[1].Ancient != "stílibra_alt" {
		t.Errorf("second cluster entry = %+v", page.Entries[1])
	}
}

func TestParsePageSingleTable(t *testing.T) {
	text := strings.Join([]string{
		"English    Ancient",
		"balance    stílibra",
		"void       tómr",
	}, "\n")

	p := NewParser(nil)
	page, err := p.ParsePage(text, 7)
	if err != nil {
		t.Fatalf("ParsePage error = %v", err)
	}
	if len(page.Entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(page.Entries), page.Entries)
	}
	if page.Entries[1].English != "void" || page.Entries[1].Ancient != "tómr" {
		t.Errorf("entry = %+v", page.Entries[1])
	}
	if page.Entries[0].HasModern() {
		t.Errorf("ancient-only table produced a modern translation: %+v", page.Entries[0])
	}
}

func TestParsePageUnstructuredFallback(t *testing.T) {
	text := strings.Join([]string{
		"Balance: stílibra",
		"Flame - flamë",
	}, "\n")

	p := NewParser(nil)
	page, err := p.ParsePage(text, 2)
	if err != nil {
		t.Fatalf("ParsePage error = %v", err)
	}
	if len(page.Entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(page.Entries), page.Entries)
	}
	for _, e := range page.Entries {
		if e.Confidence != confUnstructured {
			t.Errorf("confidence = %v, want %v", e.Confidence, confUnstructured)
		}
	}
	if page.Entries[0].English != "Balance" || page.Entries[0].Ancient != "stílibra" {
		t.Errorf("entry = %+v", page.Entries[0])
	}
}

func TestParsePageProseYieldsNothing(t *testing.T) {
	text := strings.Join([]string{
		"The elders of the valley spoke at length about the seasons.",
		"None of it resembled a glossary in any way whatsoever.",
	}, "\n")

	p := NewParser(nil)
	page, err := p.ParsePage(text, 1)
	if err != nil {
		t.Fatalf("ParsePage error = %v", err)
	}
	if len(page.Entries) != 0 {
		t.Errorf("prose produced entries: %+v", page.Entries)
	}
}

func TestIsEntryLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"balance | stílibra", true},
		{"Balance: stílibra", true},
		{"void tómr", true},
		{"flame flamë flama", true},
		{"English | Ancient | Modern", false},
		{"Page 12", false},
		{"Chapter 3: The Rites", false},
		{"x", false},
		{"the of", false},
		{"one two three four five", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := isEntryLine(tt.line); got != tt.want {
				t.Errorf("isEntryLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseUnstructuredEntryTemplates(t *testing.T) {
	t.Run("gloss with modern and notes", func(t *testing.T) {
		e, ok := parseUnstructuredEntry("Balance: stílibra, stílibra (core concept)")
		if !ok {
			t.Fatal("expected entry")
		}
		if e.English != "Balance" || e.Ancient != "stílibra" || e.Modern != "stílibra" {
			t.Errorf("entry = %+v", e)
		}
		if e.Notes != "core concept" {
			t.Errorf("notes = %q", e.Notes)
		}
	})

	t.Run("arrow delimiter", func(t *testing.T) {
		e, ok := parseUnstructuredEntry("Void → tómr")
		if !ok {
			t.Fatal("expected entry")
		}
		if e.English != "Void" || e.Ancient != "tómr" {
			t.Errorf("entry = %+v", e)
		}
	})

	t.Run("bare tokens", func(t *testing.T) {
		e, ok := parseUnstructuredEntry("Stone petrë")
		if !ok {
			t.Fatal("expected entry")
		}
		if e.English != "Stone" || e.Ancient != "petrë" {
			t.Errorf("entry = %+v", e)
		}
	})

	t.Run("prose rejected", func(t *testing.T) {
		if _, ok := parseUnstructuredEntry("the stones were left untouched"); ok {
			t.Error("prose should not produce an entry")
		}
	})
}
