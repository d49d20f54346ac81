package tables

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/libran/dictimport/internal/normalize"
	"github.com/libran/dictimport/internal/rules"
)

// delimiters that split an entry line into headword and translation sides,
// tried in order. A bare hyphen only counts when spaced, so compound words
// survive.
var delimiters = []string{"|", "→", "->", "—", "–", ":", " - "}

// splitDelimiter splits a line on the first explicit delimiter that yields
// two non-empty, letter-bearing sides.
func splitDelimiter(line string) (left, right string, ok bool) {
	for _, d := range delimiters {
		idx := strings.Index(line, d)
		if idx <= 0 {
			continue
		}
		l := strings.TrimSpace(line[:idx])
		r := strings.TrimSpace(line[idx+len(d):])
		if l == "" || r == "" || !hasLetter(l) || !hasLetter(r) {
			continue
		}
		return l, r, true
	}
	return "", "", false
}

// isEntryLine classifies a line as an entry candidate: either an explicit
// delimiter form, or two to three alphabetic tokens of sufficient length.
// Longer lines are prose. Used both inside recognized tables and by the
// unstructured fallback.
func isEntryLine(line string) bool {
	line = strings.TrimSpace(line)
	if utf8.RuneCountInString(line) < 3 {
		return false
	}

	lower := strings.ToLower(line)
	for _, furniture := range []string{"page ", "chapter ", "section "} {
		if strings.HasPrefix(lower, furniture) {
			return false
		}
	}

	// A restated header is not an entry.
	if _, ok := detectHeader(line); ok {
		return false
	}

	if l, r, ok := splitDelimiter(line); ok {
		if !isStopwordPair(l, r) {
			return true
		}
	}

	return isTokenForm(line)
}

// isTokenForm accepts lines that reduce to exactly two or three alphabetic
// tokens once parentheticals are stripped: the first at least two
// runes, the second at least three, none a stopword or noise fragment.
func isTokenForm(line string) bool {
	stripped := normalize.StripParenthetical(line)

	var content []string
	for _, tok := range strings.Fields(stripped) {
		if hasLetter(tok) {
			content = append(content, tok)
		}
	}
	if len(content) < 2 || len(content) > 3 {
		return false
	}
	if utf8.RuneCountInString(content[0]) < 2 || utf8.RuneCountInString(content[1]) < 3 {
		return false
	}
	for _, tok := range content {
		word := strings.Trim(tok, ".,;:!?'\"")
		if rules.IsStopword(word) || isNoise(word) {
			return false
		}
	}
	return true
}

func isStopwordPair(left, right string) bool {
	return rules.IsStopword(strings.TrimSpace(left)) && rules.IsStopword(strings.TrimSpace(right))
}

// isNoise rejects fragments too short or letterless to be a word.
func isNoise(tok string) bool {
	return utf8.RuneCountInString(tok) < 2 || !hasLetter(tok)
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
