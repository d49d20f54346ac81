// Package build accumulates candidate entries, applies the exclusion
// policy, groups surviving entries by headword and resolves conflicts into
// the final dictionary mappings. The builder is an accumulate-then-resolve
// state machine: once Build has run, further Process calls fail with
// ErrResolved, but Build itself may be called again and recomputes the
// same output from the same groups.
package build

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/libran/dictimport/internal/normalize"
	"github.com/libran/dictimport/internal/rules"
	"github.com/libran/dictimport/internal/schema"
)

// ErrResolved is returned by Process calls after Build has been invoked.
var ErrResolved = errors.New("build already resolved; no further entries accepted")

// Options configures a Builder. Zero values fall back to the embedded
// rule data and the default logger.
type Options struct {
	// ExcludeTerms are headwords rejected outright, compared case-insensitively.
	ExcludeTerms []string

	// Blocked overrides the embedded blocked-category list when non-nil.
	Blocked []rules.BlockedCategory

	// MinConfidence excludes entries parsed below this confidence.
	// Zero disables the check.
	MinConfidence float64

	Logger *slog.Logger
}

// Builder accumulates entries and produces a DictionaryBuild. Not safe
// for concurrent use; one builder drives one build pass.
type Builder struct {
	log           *slog.Logger
	exclude       map[string]struct{}
	blocked       []rules.BlockedCategory
	minConfidence float64

	groups   map[string][]schema.Entry
	keyOrder []string
	excluded []schema.ExcludedEntry
	stats    schema.Stats
	resolved bool
}

// NewBuilder returns a Builder configured by opts.
func NewBuilder(opts Options) *Builder {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	blocked := opts.Blocked
	if blocked == nil {
		blocked = rules.Blocked()
	}
	exclude := make(map[string]struct{}, len(opts.ExcludeTerms))
	for _, t := range opts.ExcludeTerms {
		t = Key(t)
		if t != "" {
			exclude[t] = struct{}{}
		}
	}
	return &Builder{
		log:           log,
		exclude:       exclude,
		blocked:       blocked,
		minConfidence: opts.MinConfidence,
		groups:        make(map[string][]schema.Entry),
	}
}

// ProcessPage feeds every entry of a parsed page into the builder.
func (b *Builder) ProcessPage(page *schema.ParsedPage) error {
	if b.resolved {
		return ErrResolved
	}
	b.stats.PagesProcessed++
	for _, e := range page.Entries {
		if err := b.ProcessEntry(e); err != nil {
			return err
		}
	}
	return nil
}

// ProcessEntry classifies one candidate entry: excluded with a reason,
// dropped as a duplicate, merged with a complementary incumbent, or added
// to its headword group. It never fails on entry content; the only error
// is calling it after Build.
func (b *Builder) ProcessEntry(e schema.Entry) error {
	if b.resolved {
		return ErrResolved
	}
	b.stats.TotalEntries++

	if reason, ok := b.excludeReason(e); ok {
		b.excluded = append(b.excluded, schema.ExcludedEntry{Entry: e, Reason: reason})
		b.log.Debug("entry excluded", "english", e.English, "reason", reason)
		return nil
	}

	key := Key(e.English)
	group, exists := b.groups[key]
	if !exists {
		b.keyOrder = append(b.keyOrder, key)
		b.groups[key] = []schema.Entry{e}
		return nil
	}

	for _, g := range group {
		if g.Ancient == e.Ancient && g.Modern == e.Modern && g.POS == e.POS {
			return nil
		}
	}

	if len(group) == 1 && isComplementary(group[0], e) {
		b.groups[key] = []schema.Entry{mergeComplementary(group[0], e)}
		return nil
	}

	b.groups[key] = append(group, e)
	b.log.Debug("conflict recorded", "key", key, "candidates", len(group)+1)
	return nil
}

// Build resolves every headword group and returns the final build. Ancient
// and modern counters, conflicts and variants are recomputed from scratch
// each call, so calling Build repeatedly yields identical output.
func (b *Builder) Build() schema.DictionaryBuild {
	b.resolved = true

	out := schema.DictionaryBuild{
		AncientEntries: make(map[string]string),
		ModernEntries:  make(map[string]string),
		Excluded:       b.excluded,
	}

	conflicts := 0
	for _, key := range b.keyOrder {
		group := b.groups[key]
		if len(group) > 1 {
			conflicts++
		}
		winner, losers := resolve(group)
		if winner.HasAncient() {
			out.AncientEntries[key] = winner.Ancient
		}
		if winner.HasModern() {
			out.ModernEntries[key] = winner.Modern
		}
		out.Variants = append(out.Variants, losers...)
	}

	out.Stats = b.stats
	out.Stats.AncientEntries = len(out.AncientEntries)
	out.Stats.ModernEntries = len(out.ModernEntries)
	out.Stats.ExcludedEntries = len(out.Excluded)
	out.Stats.Conflicts = conflicts
	out.Stats.Variants = len(out.Variants)

	b.log.Info("build resolved",
		"ancient", out.Stats.AncientEntries,
		"modern", out.Stats.ModernEntries,
		"excluded", out.Stats.ExcludedEntries,
		"conflicts", out.Stats.Conflicts,
		"variants", out.Stats.Variants)
	return out
}

// excludeReason applies the exclusion policy in order: exclude list,
// blocked category, empty headword, short headword, no translations,
// then the optional confidence floor. First match wins.
func (b *Builder) excludeReason(e schema.Entry) (string, bool) {
	head := normalize.CleanHeadword(e.English)
	lower := strings.ToLower(head)

	if _, ok := b.exclude[lower]; ok {
		return fmt.Sprintf("headword %q is on the exclude list", head), true
	}
	for _, cat := range b.blocked {
		for _, term := range cat.Terms {
			if strings.Contains(lower, strings.ToLower(term)) {
				return fmt.Sprintf("headword contains blocked term %q (category %s)", term, cat.Name), true
			}
		}
	}
	if head == "" {
		return "empty headword", true
	}
	if utf8.RuneCountInString(head) < 2 {
		return fmt.Sprintf("headword %q shorter than 2 characters", head), true
	}
	if !e.IsComplete() {
		return "no translations in either variant", true
	}
	if b.minConfidence > 0 && e.Confidence < b.minConfidence {
		return fmt.Sprintf("confidence %.2f below threshold %.2f", e.Confidence, b.minConfidence), true
	}
	return "", false
}

// Key returns the mapping key for a headword: cleaned and lower-cased, so
// punctuation variants of the same headword land in one group.
func Key(english string) string {
	return strings.ToLower(normalize.CleanHeadword(english))
}

// isComplementary reports whether a and b together, but not individually,
// supply both translation variants.
func isComplementary(a, b schema.Entry) bool {
	ancientOnly := func(e schema.Entry) bool { return e.HasAncient() && !e.HasModern() }
	modernOnly := func(e schema.Entry) bool { return e.HasModern() && !e.HasAncient() }
	return (ancientOnly(a) && modernOnly(b)) || (modernOnly(a) && ancientOnly(b))
}

// mergeComplementary folds b into a. The merged entry carries both
// translations, the higher confidence, and the first populated value for
// the remaining fields in arrival order.
func mergeComplementary(a, b schema.Entry) schema.Entry {
	m := a
	if !m.HasAncient() {
		m.Ancient = b.Ancient
	}
	if !m.HasModern() {
		m.Modern = b.Modern
	}
	if b.Confidence > m.Confidence {
		m.Confidence = b.Confidence
	}
	if m.POS == "" {
		m.POS = b.POS
	}
	if m.Notes == "" {
		m.Notes = b.Notes
	}
	m.Sacred = a.Sacred || b.Sacred
	if m.SourcePage == 0 {
		m.SourcePage = b.SourcePage
	}
	return m
}

// LoadExcludeList reads one headword per line from path. Blank lines and
// lines starting with # are skipped.
func LoadExcludeList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening exclude list: %w", err)
	}
	defer f.Close()

	var terms []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading exclude list: %w", err)
	}
	return terms, nil
}
