// Package rules holds the heuristic rule data used across the importer:
// stopwords, blocked headword categories, donor-language prefixes and the
// legal part-of-speech tags. The lists live in an embedded YAML file so the
// rule chains stay ordered, reviewable data rather than scattered literals.
package rules

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

// BlockedCategory is one named group of blocked headword terms.
// Categories are checked in order; the first match names the exclusion.
type BlockedCategory struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

type ruleSet struct {
	Stopwords         []string          `yaml:"stopwords"`
	BlockedCategories []BlockedCategory `yaml:"blocked_categories"`
	DonorPrefixes     []string          `yaml:"donor_prefixes"`
	EnglishResidue    []string          `yaml:"english_residue"`
	POSTags           []string          `yaml:"pos_tags"`
}

var loaded ruleSet

func init() {
	if err := yaml.Unmarshal(rulesYAML, &loaded); err != nil {
		panic(fmt.Sprintf("rules: embedded rules.yaml is invalid: %v", err))
	}
}

// Stopwords returns the stopword set, lower-cased.
func Stopwords() map[string]struct{} {
	set := make(map[string]struct{}, len(loaded.Stopwords))
	for _, w := range loaded.Stopwords {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether the word (any case) is a stopword.
func IsStopword(word string) bool {
	for _, w := range loaded.Stopwords {
		if strings.EqualFold(word, w) {
			return true
		}
	}
	return false
}

// Blocked returns the blocked headword categories in evaluation order.
func Blocked() []BlockedCategory {
	return loaded.BlockedCategories
}

// DonorPrefixes returns the donor-language prefixes in strip order.
func DonorPrefixes() []string {
	return loaded.DonorPrefixes
}

// EnglishResidue returns the English gloss fragments stripped from
// translation cells, in strip order.
func EnglishResidue() []string {
	return loaded.EnglishResidue
}

// POSTags returns the set of legal part-of-speech tags.
func POSTags() map[string]struct{} {
	set := make(map[string]struct{}, len(loaded.POSTags))
	for _, t := range loaded.POSTags {
		set[t] = struct{}{}
	}
	return set
}
