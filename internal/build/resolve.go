package build

import (
	"strings"

	"github.com/libran/dictimport/internal/schema"
)

// resolve picks the winning entry from a headword group and returns the
// rest as variants. Precedence: a "primary" or "standard" note wins
// outright; then strictly highest confidence; ties break on highest source
// page, then highest table order, then the first complete entry in arrival
// order, then plain arrival order.
func resolve(group []schema.Entry) (schema.Entry, []schema.Entry) {
	if len(group) == 1 {
		return group[0], nil
	}

	winner := pickWinner(group)
	losers := make([]schema.Entry, 0, len(group)-1)
	seen := false
	for _, e := range group {
		if !seen && e == winner {
			seen = true
			continue
		}
		losers = append(losers, e)
	}
	return winner, losers
}

func pickWinner(group []schema.Entry) schema.Entry {
	for _, e := range group {
		if hasPriorityNote(e.Notes) {
			return e
		}
	}

	candidates := group
	candidates = filterMax(candidates, func(e schema.Entry) float64 { return e.Confidence })
	if len(candidates) == 1 {
		return candidates[0]
	}
	candidates = filterMax(candidates, func(e schema.Entry) float64 { return float64(e.SourcePage) })
	if len(candidates) == 1 {
		return candidates[0]
	}
	candidates = filterMax(candidates, func(e schema.Entry) float64 { return float64(e.TableOrder) })
	if len(candidates) == 1 {
		return candidates[0]
	}

	for _, e := range candidates {
		if e.IsComplete() {
			return e
		}
	}
	return candidates[0]
}

// filterMax keeps the entries whose score equals the group maximum,
// preserving arrival order.
func filterMax(group []schema.Entry, score func(schema.Entry) float64) []schema.Entry {
	max := score(group[0])
	for _, e := range group[1:] {
		if s := score(e); s > max {
			max = s
		}
	}
	var out []schema.Entry
	for _, e := range group {
		if score(e) == max {
			out = append(out, e)
		}
	}
	return out
}

// hasPriorityNote reports whether the notes contain a token marking the
// entry as the canonical form.
func hasPriorityNote(notes string) bool {
	for _, tok := range strings.Fields(strings.ToLower(notes)) {
		tok = strings.Trim(tok, ".,;:()[]")
		if tok == "primary" || tok == "standard" {
			return true
		}
	}
	return false
}
