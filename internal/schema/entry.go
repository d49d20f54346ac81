// Package schema defines the data model shared by the parsing and build stages.
package schema

import "strings"

// Variant names one of the two translation namespaces.
type Variant string

const (
	VariantAncient Variant = "ancient"
	VariantModern  Variant = "modern"
)

// Entry is one candidate headword/translation record with provenance
// and parsing confidence.
type Entry struct {
	English    string  `json:"english"`
	Ancient    string  `json:"ancient,omitempty"`
	Modern     string  `json:"modern,omitempty"`
	POS        string  `json:"pos,omitempty"`
	Notes      string  `json:"notes,omitempty"`
	Sacred     bool    `json:"sacred,omitempty"`
	SourcePage int     `json:"source_page,omitempty"`
	TableOrder int     `json:"table_order,omitempty"`
	Confidence float64 `json:"confidence"`
}

// HasAncient reports whether the entry carries a non-blank ancient translation.
func (e Entry) HasAncient() bool {
	return strings.TrimSpace(e.Ancient) != ""
}

// HasModern reports whether the entry carries a non-blank modern translation.
func (e Entry) HasModern() bool {
	return strings.TrimSpace(e.Modern) != ""
}

// IsComplete reports whether the entry has at least one translation.
func (e Entry) IsComplete() bool {
	return e.HasAncient() || e.HasModern()
}

// Translation returns the translation for the given variant.
func (e Entry) Translation(v Variant) string {
	switch v {
	case VariantAncient:
		return e.Ancient
	case VariantModern:
		return e.Modern
	}
	return ""
}

// ExcludedEntry is an entry that was rejected by the builder, annotated
// with the reason it was rejected. Rejections are never silent.
type ExcludedEntry struct {
	Entry
	Reason string `json:"reason"`
}
