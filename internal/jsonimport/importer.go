package jsonimport

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/libran/dictimport/internal/build"
	"github.com/libran/dictimport/internal/schema"
)

// Importer loads pre-structured JSON dictionaries into a DictionaryBuild.
type Importer struct {
	log *slog.Logger
}

// NewImporter returns an Importer logging to log, or slog.Default when nil.
func NewImporter(log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{log: log}
}

// ImportFile reads path, sniffs its layout and imports it. The variant
// selects the target namespace for layouts that do not distinguish
// variants themselves; clusters documents carry both and ignore it.
func (i *Importer) ImportFile(path string, variant schema.Variant) (schema.DictionaryBuild, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.DictionaryBuild{}, fmt.Errorf("reading dictionary file: %w", err)
	}
	return i.Import(data, variant)
}

// Import sniffs the layout of data and dispatches to the matching loader.
func (i *Importer) Import(data []byte, variant schema.Variant) (schema.DictionaryBuild, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return schema.DictionaryBuild{}, err
	}
	i.log.Info("dictionary format detected", "format", format.String())

	switch format {
	case FormatSimple:
		return importSimple(data, variant)
	case FormatDetailed:
		return importDetailed(data, variant)
	case FormatNested:
		return importNested(data, variant)
	case FormatClusters:
		return i.importClusters(data)
	}
	return schema.DictionaryBuild{}, ErrUnknownFormat
}

// importSimple loads a flat string-to-string map into the given variant.
func importSimple(data []byte, variant schema.Variant) (schema.DictionaryBuild, error) {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return schema.DictionaryBuild{}, fmt.Errorf("parsing simple dictionary: %w", err)
	}

	out := emptyBuild()
	for english, translation := range m {
		put(&out, variant, build.Key(english), translation)
	}
	finishStats(&out)
	return out, nil
}

// detailedEntry is one value object in the detailed layout. Unknown fields
// such as etymology are ignored.
type detailedEntry struct {
	Ancient string `json:"ancient"`
	Modern  string `json:"modern"`
	POS     string `json:"pos"`
	Notes   string `json:"notes"`
}

// importDetailed loads a map of entry objects, taking only the requested
// variant's translation from each.
func importDetailed(data []byte, variant schema.Variant) (schema.DictionaryBuild, error) {
	var m map[string]detailedEntry
	if err := json.Unmarshal(data, &m); err != nil {
		return schema.DictionaryBuild{}, fmt.Errorf("parsing detailed dictionary: %w", err)
	}

	out := emptyBuild()
	for english, e := range m {
		translation := e.Ancient
		if variant == schema.VariantModern {
			translation = e.Modern
		}
		if translation == "" {
			continue
		}
		put(&out, variant, build.Key(english), translation)
	}
	finishStats(&out)
	return out, nil
}

// importNested loads a map keyed by variant name, taking the requested
// variant's sub-map.
func importNested(data []byte, variant schema.Variant) (schema.DictionaryBuild, error) {
	var m map[string]map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return schema.DictionaryBuild{}, fmt.Errorf("parsing nested dictionary: %w", err)
	}

	out := emptyBuild()
	for english, translation := range m[string(variant)] {
		put(&out, variant, build.Key(english), translation)
	}
	finishStats(&out)
	return out, nil
}

func emptyBuild() schema.DictionaryBuild {
	return schema.DictionaryBuild{
		AncientEntries: make(map[string]string),
		ModernEntries:  make(map[string]string),
	}
}

func put(b *schema.DictionaryBuild, variant schema.Variant, key, translation string) {
	if key == "" || translation == "" {
		return
	}
	if variant == schema.VariantModern {
		b.ModernEntries[key] = translation
	} else {
		b.AncientEntries[key] = translation
	}
}

func finishStats(b *schema.DictionaryBuild) {
	b.Stats.AncientEntries = len(b.AncientEntries)
	b.Stats.ModernEntries = len(b.ModernEntries)
	b.Stats.TotalEntries = len(b.AncientEntries) + len(b.ModernEntries)
}
