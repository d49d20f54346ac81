// Package tables recognizes table layouts in normalized page text and
// extracts candidate dictionary entries. A page may hold several stacked
// tables; recognition falls back through a chain of progressively looser
// strategies, and per-page failures are isolated behind ParsePage's error.
package tables

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/libran/dictimport/internal/normalize"
	"github.com/libran/dictimport/internal/schema"
)

// Parsing confidence by extraction path. Typed tables are trusted most;
// the unstructured fallback least. The builder breaks same-key conflicts
// on these values first.
const (
	confStructured   = 0.9
	confGeneric      = 0.7
	confUnstructured = 0.5
)

// Parser turns one page of raw text into candidate entries.
type Parser struct {
	log *slog.Logger
}

// NewParser returns a Parser logging to log, or slog.Default when nil.
func NewParser(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	return &Parser{log: log}
}

// ParsePage normalizes the page text and runs the fallback chain:
// multi-cluster detection, single recognized table, generic structured
// scan, then unstructured pattern matching. Each stage runs only when the
// previous one yielded nothing. A panic anywhere in the chain is recovered
// into the returned error so one malformed page never aborts a build pass.
func (p *Parser) ParsePage(text string, pageNumber int) (page *schema.ParsedPage, err error) {
	defer func() {
		if r := recover(); r != nil {
			page = nil
			err = fmt.Errorf("page %d: parse failure: %v", pageNumber, r)
		}
	}()

	page = &schema.ParsedPage{PageNumber: pageNumber, RawText: text}
	lines := normalize.Lines(text)
	clusters := detectClusters(lines)

	if len(clusters) > 1 {
		for _, c := range clusters {
			p.extractCluster(c, page)
		}
		if len(page.Entries) > 0 {
			page.AddNote(fmt.Sprintf("%d table clusters detected", len(clusters)))
			return page, nil
		}
	}

	if len(clusters) > 0 {
		c := clusters[0]
		p.extractCluster(c, page)
		if len(page.Entries) > 0 {
			page.AddNote(fmt.Sprintf("table header at line %d (%s)", c.head.line, c.head.typ))
			return page, nil
		}
	}

	p.parseUnstructured(lines, page)
	if len(page.Entries) > 0 {
		page.AddNote("unstructured fallback")
	}
	return page, nil
}

// extractCluster pulls entries out of one recognized table region. Dual
// layouts require both translations populated; single layouts require a
// complete entry; unknown layouts extract generically through the column
// map, accepting any line with a headword and at least one translation.
func (p *Parser) extractCluster(c cluster, page *schema.ParsedPage) {
	for _, line := range c.lines {
		if !isEntryLine(line) {
			continue
		}

		var e schema.Entry
		var ok bool
		switch c.head.typ {
		case TypeDual:
			e, ok = parseEntryLine(line, c.head)
			if !ok || !e.HasAncient() || !e.HasModern() {
				continue
			}
			e.Confidence = confStructured
		case TypeSingle:
			e, ok = parseEntryLine(line, c.head)
			if !ok || !e.IsComplete() {
				continue
			}
			e.Confidence = confStructured
		default:
			e, ok = parseGenericLine(line, c.head)
			if !ok {
				continue
			}
			e.Confidence = confGeneric
		}

		e.SourcePage = page.PageNumber
		e.TableOrder = c.order
		page.AddEntry(e)
	}
}

// parseEntryLine splits a line through the header's column layout and
// cleans each cell. Emits an entry only when the cleaned headword is
// non-empty and at least one cleaned translation is non-empty.
func parseEntryLine(line string, h header) (schema.Entry, bool) {
	cells := splitColumns(line, h)
	cell := func(field string) string {
		idx, ok := h.columns[field]
		if !ok || idx >= len(cells) {
			return ""
		}
		return cells[idx]
	}

	e := schema.Entry{
		English: normalize.CleanHeadword(cell(colEnglish)),
		Ancient: normalize.CleanTranslation(cell(colAncient)),
		Modern:  normalize.CleanTranslation(cell(colModern)),
		POS:     strings.TrimSpace(cell(colPOS)),
		Notes:   strings.TrimSpace(cell(colNotes)),
	}
	if e.English == "" || !e.IsComplete() {
		return schema.Entry{}, false
	}
	return e, true
}

// parseGenericLine handles the structured scan for headers whose type is
// unknown: the headword comes from the English column, and the first cell
// the column map did not claim supplies the translation.
func parseGenericLine(line string, h header) (schema.Entry, bool) {
	cells := splitColumns(line, h)
	idx, ok := h.columns[colEnglish]
	if !ok || idx >= len(cells) {
		return schema.Entry{}, false
	}

	mapped := make(map[int]bool, len(h.columns))
	for _, i := range h.columns {
		mapped[i] = true
	}

	e := schema.Entry{English: normalize.CleanHeadword(cells[idx])}
	if i, ok := h.columns[colPOS]; ok && i < len(cells) {
		e.POS = strings.TrimSpace(cells[i])
	}
	if i, ok := h.columns[colNotes]; ok && i < len(cells) {
		e.Notes = strings.TrimSpace(cells[i])
	}
	for i, c := range cells {
		if mapped[i] {
			continue
		}
		if t := normalize.CleanTranslation(c); t != "" && hasLetter(t) {
			e.Ancient = t
			break
		}
	}

	if e.English == "" || !e.IsComplete() {
		return schema.Entry{}, false
	}
	return e, true
}
