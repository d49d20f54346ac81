package build

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/libran/dictimport/internal/schema"
)

// Report file names for one build pass.
const (
	FileAncient  = "ancient.json"
	FileModern   = "modern.json"
	FileExcluded = "EXCLUDED.txt"
	FileVariants = "VARIANTS.csv"
	FileAllRows  = "ALL_ROWS.csv"
	FileReport   = "REPORT.md"
)

// WriteReports writes the two dictionary mappings and the audit trail to
// dir, creating it if needed. It returns the generated build ID.
func WriteReports(dir string, build schema.DictionaryBuild) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	buildID := uuid.NewString()

	if err := writeJSON(filepath.Join(dir, FileAncient), build.AncientEntries); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, FileModern), build.ModernEntries); err != nil {
		return "", err
	}
	if err := writeExcluded(filepath.Join(dir, FileExcluded), build.Excluded); err != nil {
		return "", err
	}
	if err := writeVariants(filepath.Join(dir, FileVariants), build.Variants); err != nil {
		return "", err
	}
	if err := writeAllRows(filepath.Join(dir, FileAllRows), build); err != nil {
		return "", err
	}
	if err := writeSummary(filepath.Join(dir, FileReport), build, buildID); err != nil {
		return "", err
	}
	return buildID, nil
}

// writeJSON writes a mapping as indented JSON. Map keys marshal in sorted
// order, so repeated builds produce byte-identical files.
func writeJSON(path string, m map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeExcluded writes one block per excluded entry: headword, reason and
// source page, separated by blank lines.
func writeExcluded(path string, excluded []schema.ExcludedEntry) error {
	var sb strings.Builder
	sb.WriteString("Excluded entries\n================\n\n")
	if len(excluded) == 0 {
		sb.WriteString("None.\n")
	}
	for _, ex := range excluded {
		fmt.Fprintf(&sb, "English: %s\nReason: %s\nPage: %d\n\n", ex.English, ex.Reason, ex.SourcePage)
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

func writeVariants(path string, variants []schema.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", FileVariants, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"English", "Ancient", "Modern", "POS", "Notes", "Page"}); err != nil {
		return err
	}
	for _, v := range variants {
		rec := []string{v.English, v.Ancient, v.Modern, v.POS, v.Notes, strconv.Itoa(v.SourcePage)}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// writeAllRows writes every row the build accounted for: kept mappings,
// losing variants and excluded entries, each tagged with its status.
func writeAllRows(path string, build schema.DictionaryBuild) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", FileAllRows, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"English", "Ancient", "Modern", "POS", "Notes", "Page", "Status"}); err != nil {
		return err
	}

	keys := make([]string, 0, len(build.AncientEntries)+len(build.ModernEntries))
	seen := make(map[string]bool)
	for k := range build.AncientEntries {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range build.ModernEntries {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		rec := []string{k, build.AncientEntries[k], build.ModernEntries[k], "", "", "", "kept"}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	for _, v := range build.Variants {
		rec := []string{v.English, v.Ancient, v.Modern, v.POS, v.Notes, strconv.Itoa(v.SourcePage), "variant"}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	for _, ex := range build.Excluded {
		rec := []string{ex.English, ex.Ancient, ex.Modern, ex.POS, ex.Reason, strconv.Itoa(ex.SourcePage), "excluded"}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeSummary(path string, build schema.DictionaryBuild, buildID string) error {
	s := build.Stats
	var sb strings.Builder
	sb.WriteString("# Dictionary Build Report\n\n")
	fmt.Fprintf(&sb, "Build ID: %s\n\n", buildID)
	fmt.Fprintf(&sb, "Generated: %s\n\n", time.Now().UTC().Format(time.RFC3339))
	sb.WriteString("## Statistics\n\n")
	fmt.Fprintf(&sb, "| Counter | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Entries processed | %d |\n", s.TotalEntries)
	fmt.Fprintf(&sb, "| Ancient mappings | %d |\n", s.AncientEntries)
	fmt.Fprintf(&sb, "| Modern mappings | %d |\n", s.ModernEntries)
	fmt.Fprintf(&sb, "| Excluded | %d |\n", s.ExcludedEntries)
	fmt.Fprintf(&sb, "| Conflicts | %d |\n", s.Conflicts)
	fmt.Fprintf(&sb, "| Variants | %d |\n", s.Variants)
	fmt.Fprintf(&sb, "| Pages processed | %d |\n", s.PagesProcessed)
	sb.WriteString("\n## Files\n\n")
	for _, name := range []string{FileAncient, FileModern, FileExcluded, FileVariants, FileAllRows} {
		fmt.Fprintf(&sb, "- `%s`\n", name)
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
