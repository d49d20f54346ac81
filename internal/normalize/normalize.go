// Package normalize cleans OCR/layout-extracted page text before table
// recognition: hyphen restoration, continuation-line merging, ligature
// folding and whitespace collapsing. All functions are pure.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun      = regexp.MustCompile(` +`)
	newlineRun    = regexp.MustCompile(`\n+`)
	leadingPunct  = regexp.MustCompile(`^[^\p{L}\p{N}']+`)
	trailingPunct = regexp.MustCompile(`[^\p{L}\p{N}']+$`)
	endPunct      = regexp.MustCompile(`[.,;:!?]+$`)
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
)

// Normalize runs the full pipeline over raw page text: split into lines,
// drop blanks, restore hyphenated words split by line-wrapping, merge
// continuation lines, then fold ligatures and collapse whitespace.
func Normalize(raw string) string {
	lines := splitNonEmpty(raw)
	lines = RestoreHyphenated(lines)
	lines = MergeContinuations(lines)
	for i, line := range lines {
		lines[i] = CollapseWhitespace(FoldLigatures(line))
	}
	return strings.Join(lines, "\n")
}

// Lines runs the pipeline but keeps intra-line space runs, which the table
// recognizer needs as column separators. Normalize collapses them; cell
// values are collapsed later by CleanHeadword/CleanTranslation.
func Lines(raw string) []string {
	lines := splitNonEmpty(raw)
	lines = RestoreHyphenated(lines)
	lines = MergeContinuations(lines)
	for i, line := range lines {
		lines[i] = strings.TrimSpace(FoldLigatures(line))
	}
	return lines
}

// splitNonEmpty splits text into trimmed, non-blank lines.
func splitNonEmpty(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// RestoreHyphenated rejoins words that a line-wrap split with a soft
// hyphen. A trailing hyphen followed by a lowercase line start is joined
// unless the candidate word carries a lexical hyphen (known prefix or a
// capitalized compound), in which case both lines are kept as-is.
func RestoreHyphenated(lines []string) []string {
	var out []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !strings.HasSuffix(line, "-") || i+1 >= len(lines) || !startsLower(lines[i+1]) {
			out = append(out, line)
			continue
		}

		wordPart := strings.TrimSpace(strings.TrimSuffix(line, "-"))
		next := lines[i+1]
		firstWord, _, _ := strings.Cut(next, " ")
		if firstWord == "" {
			out = append(out, line)
			continue
		}

		if IsLexicalHyphen(wordPart + "-" + firstWord) {
			out = append(out, line)
			continue
		}

		// Soft hyphen: drop it and splice the wrapped fragment back on.
		out = append(out, wordPart+next)
		i++
	}
	return out
}

// hyphenPrefixes are prefixes whose trailing hyphen is part of the word.
var hyphenPrefixes = []string{
	"self-", "non-", "pre-", "post-", "anti-", "pro-", "co-", "ex-",
	"multi-", "sub-", "super-", "ultra-", "inter-", "intra-",
	"semi-", "pseudo-", "quasi-", "neo-", "proto-", "meta-", "para-",
	"counter-", "over-", "out-", "up-", "down-", "off-", "on-", "in-",
}

// IsLexicalHyphen reports whether the hyphen in word is a real compound or
// prefix hyphen that must be preserved, rather than a line-wrap artifact.
func IsLexicalHyphen(word string) bool {
	lower := strings.ToLower(word)
	for _, prefix := range hyphenPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}

	// Capitalized compounds like "Oath-Keeper" keep their hyphen.
	parts := strings.Split(word, "-")
	if len(parts) == 2 && len(parts[0]) > 1 && len(parts[1]) > 1 {
		if startsUpper(parts[0]) && startsUpper(parts[1]) {
			return true
		}
	}
	return false
}

// IsContinuation reports whether line continues prev: it starts with a
// lowercase letter, or it is short and prev does not end a sentence.
// Table-shaped lines (carrying a column separator) are never continuations;
// merging them would fold data rows into the header above them.
func IsContinuation(line, prev string) bool {
	line = strings.TrimSpace(line)
	prev = strings.TrimSpace(prev)
	if line == "" || prev == "" {
		return false
	}
	if isTabular(line) || isTabular(prev) {
		return false
	}
	if startsLower(line) {
		return true
	}
	if utf8.RuneCountInString(line) < 10 && !endsTerminal(prev) {
		return true
	}
	return false
}

// MergeContinuations concatenates continuation runs into single logical
// lines, joined with a single space.
func MergeContinuations(lines []string) []string {
	var out []string
	for i := 0; i < len(lines); {
		run := []string{lines[i]}
		j := i + 1
		for j < len(lines) && IsContinuation(lines[j], lines[i]) {
			run = append(run, lines[j])
			j++
		}
		out = append(out, strings.Join(run, " "))
		i = j
	}
	return out
}

var ligatures = strings.NewReplacer(
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬀ", "ff",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"ﬆ", "st",
	"ﬅ", "ft",
)

// FoldLigatures converts typographic ligatures to their plain equivalents.
func FoldLigatures(text string) string {
	return ligatures.Replace(text)
}

// CollapseWhitespace reduces runs of spaces to one space and runs of
// newlines to one newline, trimming the ends.
func CollapseWhitespace(text string) string {
	text = spaceRun.ReplaceAllString(text, " ")
	text = newlineRun.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// CleanHeadword strips surrounding punctuation (apostrophes survive),
// collapses whitespace, folds ligatures and applies NFC so headwords
// compare byte-for-byte regardless of the extractor's encoding choices.
func CleanHeadword(word string) string {
	word = leadingPunct.ReplaceAllString(word, "")
	word = trailingPunct.ReplaceAllString(word, "")
	word = CollapseWhitespace(word)
	word = norm.NFC.String(word)
	return FoldLigatures(word)
}

// CleanTranslation normalizes a translation cell: whitespace collapse,
// NFC (diacritics preserved), ligature folding and trailing punctuation
// stripped.
func CleanTranslation(text string) string {
	text = CollapseWhitespace(text)
	text = norm.NFC.String(text)
	text = FoldLigatures(text)
	return endPunct.ReplaceAllString(text, "")
}

// StripParenthetical removes every parenthetical group, wherever it sits
// in the text, and collapses the whitespace left behind.
func StripParenthetical(text string) string {
	return CollapseWhitespace(parenthetical.ReplaceAllString(text, " "))
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

var multiSpace = regexp.MustCompile(`\s{3,}`)

func isTabular(s string) bool {
	return strings.ContainsAny(s, "|\t") || multiSpace.MatchString(s)
}

func endsTerminal(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") ||
		strings.HasSuffix(s, "?") || strings.HasSuffix(s, ":")
}
