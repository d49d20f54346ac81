package tables

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// TableType classifies a recognized table layout by the translation
// columns its header carries.
type TableType int

const (
	TypeUnknown TableType = iota
	TypeSingle
	TypeDual
)

func (t TableType) String() string {
	switch t {
	case TypeSingle:
		return "single"
	case TypeDual:
		return "dual"
	}
	return "unknown"
}

// Column field keys used in a header's column map.
const (
	colEnglish = "english"
	colAncient = "ancient"
	colModern  = "modern"
	colPOS     = "pos"
	colNotes   = "notes"
)

// header describes one recognized table header: where it sits, how its
// line splits into columns, and which field each column holds.
type header struct {
	line       int
	pipeSplit  bool
	boundaries []int
	columns    map[string]int
	typ        TableType
}

var (
	multiSpaceRun = regexp.MustCompile(`\s{3,}`)
	tabRun        = regexp.MustCompile(`\t+`)
)

// hasSeparator reports whether the line carries a real column separator.
// Two bare words with no separator never count as a header.
func hasSeparator(line string) bool {
	return strings.Contains(line, "|") || multiSpaceRun.MatchString(line) ||
		strings.Contains(line, "\t")
}

// detectHeader recognizes a table header line. A header is valid only when
// at least two distinct columns are identified and the line carries an
// actual separator.
func detectHeader(line string) (header, bool) {
	if !hasSeparator(line) {
		return header{}, false
	}

	h := header{
		pipeSplit:  strings.Contains(line, "|"),
		boundaries: detectBoundaries(line),
		columns:    make(map[string]int),
	}

	for i, cell := range splitColumns(line, h) {
		cell = strings.ToLower(strings.TrimSpace(cell))
		switch {
		case strings.Contains(cell, "english"),
			strings.Contains(cell, "headword"),
			strings.Contains(cell, "word"):
			h.columns[colEnglish] = i
		case strings.Contains(cell, "ancient"):
			h.columns[colAncient] = i
		case strings.Contains(cell, "modern"):
			h.columns[colModern] = i
		case strings.Contains(cell, "pos"), strings.Contains(cell, "part"):
			h.columns[colPOS] = i
		case strings.Contains(cell, "note"), strings.Contains(cell, "comment"):
			h.columns[colNotes] = i
		}
	}

	if len(h.columns) < 2 {
		return header{}, false
	}
	h.typ = classify(h.columns)
	return h, true
}

// classify derives the table type from the mapped columns: dual when both
// translation columns are present, single when exactly one is.
func classify(columns map[string]int) TableType {
	_, ancient := columns[colAncient]
	_, modern := columns[colModern]
	switch {
	case ancient && modern:
		return TypeDual
	case ancient || modern:
		return TypeSingle
	}
	return TypeUnknown
}

// detectBoundaries finds column boundary offsets for lines without pipes.
// Separator runs are tried in priority order; when none match, boundaries
// are estimated from the word layout.
func detectBoundaries(line string) []int {
	for _, re := range []*regexp.Regexp{multiSpaceRun, tabRun} {
		if matches := re.FindAllStringIndex(line, -1); len(matches) > 0 {
			boundaries := make([]int, len(matches))
			for i, m := range matches {
				boundaries[i] = m[0]
			}
			return boundaries
		}
	}

	// No separator runs: estimate boundaries between words.
	words := strings.Fields(line)
	if len(words) < 2 {
		return nil
	}
	var boundaries []int
	pos := 0
	for _, w := range words[:len(words)-1] {
		pos += len(w) + 1
		boundaries = append(boundaries, pos)
	}
	return boundaries
}

// splitColumns splits a line into column cells using the header's layout:
// pipe cells when the header is pipe-separated, positional slices at the
// header's boundary offsets otherwise.
func splitColumns(line string, h header) []string {
	if h.pipeSplit || strings.Contains(line, "|") {
		parts := strings.Split(line, "|")
		cells := make([]string, len(parts))
		for i, p := range parts {
			cells[i] = strings.TrimSpace(p)
		}
		return cells
	}

	if len(h.boundaries) == 0 {
		return []string{strings.TrimSpace(line)}
	}

	var cells []string
	start := 0
	for _, b := range h.boundaries {
		b = runeAligned(line, b)
		if b <= start || b > len(line) {
			continue
		}
		cells = append(cells, strings.TrimSpace(line[start:b]))
		start = b
	}
	cells = append(cells, strings.TrimSpace(line[start:]))
	return cells
}

// runeAligned walks a byte offset back to the nearest rune start so that
// positional slicing never cuts a diacritic in half.
func runeAligned(s string, off int) int {
	if off >= len(s) {
		return len(s)
	}
	for off > 0 && !utf8.RuneStart(s[off]) {
		off--
	}
	return off
}
