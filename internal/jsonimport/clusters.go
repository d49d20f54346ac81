package jsonimport

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/libran/dictimport/internal/build"
	"github.com/libran/dictimport/internal/normalize"
	"github.com/libran/dictimport/internal/rules"
	"github.com/libran/dictimport/internal/schema"
)

//go:embed clusters_schema.json
var clustersSchemaJSON []byte

// placeholder marks a translation slot the curators left unfilled.
const placeholder = "—"

type clusterEntry struct {
	English string `json:"english"`
	Ancient string `json:"ancient"`
	Modern  string `json:"modern"`
	Source  string `json:"source"`
	Notes   string `json:"notes"`
}

type clusterGroup struct {
	Ancient []clusterEntry `json:"ancient"`
	Modern  []clusterEntry `json:"modern"`
}

type clustersDoc struct {
	Clusters map[string]clusterGroup `json:"clusters"`
}

// importClusters validates a clusters document against the embedded schema
// and feeds every entry through the builder, so curated input obeys the
// same exclusion rules as parsed pages. Translations are cleaned of
// parentheticals, English residue and donor-language prefixes first;
// placeholders and fragments under 2 characters reduce to an incomplete
// entry the builder excludes with a reason.
func (i *Importer) importClusters(data []byte) (schema.DictionaryBuild, error) {
	if err := validateClusters(data); err != nil {
		return schema.DictionaryBuild{}, err
	}

	var doc clustersDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return schema.DictionaryBuild{}, fmt.Errorf("parsing clusters document: %w", err)
	}

	names := make([]string, 0, len(doc.Clusters))
	for name := range doc.Clusters {
		names = append(names, name)
	}
	sort.Strings(names)

	b := build.NewBuilder(build.Options{Logger: i.log})
	for _, name := range names {
		group := doc.Clusters[name]
		for _, e := range group.Ancient {
			if err := b.ProcessEntry(clusterToEntry(e, schema.VariantAncient)); err != nil {
				return schema.DictionaryBuild{}, err
			}
		}
		for _, e := range group.Modern {
			if err := b.ProcessEntry(clusterToEntry(e, schema.VariantModern)); err != nil {
				return schema.DictionaryBuild{}, err
			}
		}
		i.log.Debug("cluster processed", "cluster", name,
			"ancient", len(group.Ancient), "modern", len(group.Modern))
	}
	return b.Build(), nil
}

func validateClusters(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("clusters_schema.json", bytes.NewReader(clustersSchemaJSON)); err != nil {
		return fmt.Errorf("loading clusters schema: %w", err)
	}
	compiled, err := compiler.Compile("clusters_schema.json")
	if err != nil {
		return fmt.Errorf("compiling clusters schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing clusters document: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("clusters document does not match schema: %w", err)
	}
	return nil
}

// clusterToEntry converts one curated object into a candidate entry. A
// translation that cleans away entirely leaves the entry incomplete.
func clusterToEntry(e clusterEntry, variant schema.Variant) schema.Entry {
	out := schema.Entry{
		English:    strings.TrimSpace(e.English),
		Notes:      strings.TrimSpace(e.Notes),
		Confidence: 1,
	}
	if out.Notes == "" {
		out.Notes = strings.TrimSpace(e.Source)
	}

	translation := cleanLoanword(e.Translation(variant))
	if variant == schema.VariantModern {
		out.Modern = translation
	} else {
		out.Ancient = translation
	}
	return out
}

// Translation returns the raw translation for the given variant.
func (e clusterEntry) Translation(v schema.Variant) string {
	if v == schema.VariantModern {
		return e.Modern
	}
	return e.Ancient
}

// cleanLoanword strips curation metadata from a translation: the
// parenthetical, English gloss residue, and donor-language etymology
// prefixes. Returns "" for placeholders and for anything that reduces to
// under 2 characters.
func cleanLoanword(word string) string {
	word = strings.TrimSpace(word)
	if word == "" || word == placeholder {
		return ""
	}

	word = strings.TrimSpace(normalize.StripParenthetical(word))

	for _, residue := range rules.EnglishResidue() {
		word = stripPrefix(word, residue)
	}
	for _, donor := range rules.DonorPrefixes() {
		word = stripPrefix(word, donor)
	}
	word = strings.TrimLeft(word, "-")

	word = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return -1
	}, word)

	if utf8.RuneCountInString(word) < 2 {
		return ""
	}
	return word
}

// stripPrefix removes prefix (case-insensitive) when it heads the word and
// is followed by a hyphen or the end of the word.
func stripPrefix(word, prefix string) string {
	if len(word) < len(prefix) {
		return word
	}
	if !strings.EqualFold(word[:len(prefix)], prefix) {
		return word
	}
	rest := word[len(prefix):]
	if rest == "" || strings.HasPrefix(rest, "-") {
		return rest
	}
	return word
}
