package tables

import (
	"regexp"
	"strings"

	"github.com/libran/dictimport/internal/normalize"
	"github.com/libran/dictimport/internal/schema"
)

// glossLine matches "English: Ancient, Modern (notes)" with the modern
// translation and the parenthetical both optional.
var glossLine = regexp.MustCompile(
	`^(\p{Lu}[\p{L}' -]*?)\s*[:—–-]\s*([^,()]+?)(?:,\s*([^,()]+?))?(?:\s*\(([^)]*)\))?\s*$`)

// bareTokens matches a bare two- or three-token line: headword plus one or
// two translations.
var bareTokens = regexp.MustCompile(
	`^(\p{Lu}[\p{L}']*)\s+([\p{L}']{3,})(?:\s+([\p{L}']+))?\s*$`)

// parseUnstructured is the last resort for pages with no recognizable
// table: consecutive non-entry lines are grouped under the most recent
// entry-shaped line, and the joined text is run through the ordered
// templates to extract a single entry.
func (p *Parser) parseUnstructured(lines []string, page *schema.ParsedPage) {
	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])
		if !isEntryLine(line) {
			i++
			continue
		}

		group := []string{line}
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) != "" && !isEntryLine(lines[j]) {
			group = append(group, strings.TrimSpace(lines[j]))
			j++
		}

		if e, ok := parseUnstructuredEntry(strings.Join(group, " ")); ok {
			e.SourcePage = page.PageNumber
			e.Confidence = confUnstructured
			page.AddEntry(e)
		}
		i = j
	}
}

// parseUnstructuredEntry applies the ordered templates to joined text:
// the gloss pattern, then a delimiter split, then the bare-token fallback.
func parseUnstructuredEntry(text string) (schema.Entry, bool) {
	if m := glossLine.FindStringSubmatch(text); m != nil {
		e := schema.Entry{
			English: normalize.CleanHeadword(m[1]),
			Ancient: normalize.CleanTranslation(m[2]),
			Modern:  normalize.CleanTranslation(m[3]),
			Notes:   strings.TrimSpace(m[4]),
		}
		if e.English != "" && e.IsComplete() {
			return e, true
		}
	}

	if left, right, ok := splitDelimiter(text); ok {
		right = strings.TrimRight(normalize.StripParenthetical(right), "|:→–— \t")
		e := schema.Entry{
			English: normalize.CleanHeadword(left),
			Ancient: normalize.CleanTranslation(right),
		}
		if e.English != "" && e.IsComplete() {
			return e, true
		}
	}

	if m := bareTokens.FindStringSubmatch(text); m != nil {
		e := schema.Entry{
			English: normalize.CleanHeadword(m[1]),
			Ancient: normalize.CleanTranslation(m[2]),
			Modern:  normalize.CleanTranslation(m[3]),
		}
		if e.English != "" && e.IsComplete() {
			return e, true
		}
	}

	return schema.Entry{}, false
}
