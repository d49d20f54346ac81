// Package audit runs informational format checks over entries and builds.
// Findings are collected and reported, never enforced: the build pipeline
// already routes hard rejections through the exclusion policy, so anything
// surfacing here is a hint for the curator, not a blocker.
package audit

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/libran/dictimport/internal/rules"
	"github.com/libran/dictimport/internal/schema"
)

const (
	maxHeadwordLen    = 50
	maxTranslationLen = 100
)

// headwordChars covers plain English headwords: letters, spaces, hyphens
// and apostrophes.
var headwordChars = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

// translationChars additionally allows Latin-1 and Latin Extended-A
// diacritics used by the translated forms.
var translationChars = regexp.MustCompile(`^[a-zA-Z\x{00C0}-\x{017F}\s'_-]+$`)

// Finding is one informational validation result.
type Finding struct {
	English string `json:"english"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.English, f.Field, f.Message)
}

// Validator checks entries against the format rules.
type Validator struct {
	posTags map[string]struct{}
}

// NewValidator returns a Validator using the embedded part-of-speech tags.
func NewValidator() *Validator {
	return &Validator{posTags: rules.POSTags()}
}

// CheckEntry returns the findings for a single entry.
func (v *Validator) CheckEntry(e schema.Entry) []Finding {
	var out []Finding
	add := func(field, format string, args ...any) {
		out = append(out, Finding{
			English: e.English,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	head := strings.TrimSpace(e.English)
	switch {
	case head == "":
		add("english", "headword is empty")
	default:
		if !headwordChars.MatchString(head) {
			add("english", "headword contains unexpected characters")
		}
		if n := utf8.RuneCountInString(head); n < 2 {
			add("english", "headword shorter than 2 characters")
		} else if n > maxHeadwordLen {
			add("english", "headword longer than %d characters", maxHeadwordLen)
		}
		if r, _ := utf8.DecodeRuneInString(head); unicode.IsLetter(r) && !unicode.IsUpper(r) {
			add("english", "headword is not capitalized")
		}
	}

	if e.HasAncient() {
		out = append(out, checkTranslation(e.English, "ancient", e.Ancient)...)
	}
	if e.HasModern() {
		out = append(out, checkTranslation(e.English, "modern", e.Modern)...)
	}
	if !e.IsComplete() {
		add("translation", "entry has no translation in either variant")
	}

	if pos := strings.ToLower(strings.TrimSpace(e.POS)); pos != "" {
		if _, ok := v.posTags[pos]; !ok {
			add("pos", "unknown part-of-speech tag %q", e.POS)
		}
	}

	if e.Confidence < 0 || e.Confidence > 1 {
		add("confidence", "confidence %v outside [0, 1]", e.Confidence)
	}

	return out
}

// CheckBuild validates every mapping in a resolved build plus the excluded
// ledger, and flags headwords whose ancient and modern translations differ.
// Differing variants are normal for genuinely diverged vocabulary, so the
// finding exists to draw a reviewer's eye, nothing more.
func (v *Validator) CheckBuild(b schema.DictionaryBuild) []Finding {
	var out []Finding

	if len(b.AncientEntries) == 0 && len(b.ModernEntries) == 0 {
		out = append(out, Finding{Field: "build", Message: "no entries in either dictionary"})
	}

	for key, ancient := range b.AncientEntries {
		out = append(out, checkTranslation(key, "ancient", ancient)...)
		if modern, ok := b.ModernEntries[key]; ok && modern != ancient {
			out = append(out, Finding{
				English: key,
				Field:   "build",
				Message: "ancient and modern translations differ",
			})
		}
	}
	for key, modern := range b.ModernEntries {
		out = append(out, checkTranslation(key, "modern", modern)...)
	}

	for _, ex := range b.Excluded {
		for _, f := range v.CheckEntry(ex.Entry) {
			f.Message = "excluded entry: " + f.Message
			out = append(out, f)
		}
	}
	return out
}

func checkTranslation(english, field, translation string) []Finding {
	var out []Finding
	add := func(format string, args ...any) {
		out = append(out, Finding{
			English: english,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if !translationChars.MatchString(translation) {
		add("translation contains unexpected characters")
	}
	if utf8.RuneCountInString(translation) > maxTranslationLen {
		add("translation longer than %d characters", maxTranslationLen)
	}
	return out
}
