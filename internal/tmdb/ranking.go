package tmdb

import (
	"math"
	"regexp"
	"strings"
)

const (
	popularVoteCount = 500
	popularityBonus  = 0.05
	yearBonus        = 0.1
)

var (
	quoteReplacer   = strings.NewReplacer("’", "'", "“", `"`, "”", `"`)
	nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)
)

// normalizeTitle lowercases s and collapses everything but ASCII letters and
// digits into single spaces.
func normalizeTitle(s string) string {
	s = quoteReplacer.Replace(strings.ToLower(s))
	return strings.TrimSpace(nonAlnumPattern.ReplaceAllString(s, " "))
}

// similarity is the Jaccard index of the normalized token sets.
// Two titles without any tokens are considered identical.
func similarity(a, b string) float64 {
	left := tokenSet(a)
	right := tokenSet(b)
	if len(left) == 0 && len(right) == 0 {
		return 1
	}

	inter := 0
	for tok := range left {
		if _, ok := right[tok]; ok {
			inter++
		}
	}
	union := len(left) + len(right) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(normalizeTitle(s)) {
		set[tok] = struct{}{}
	}
	return set
}

// score rates how well r matches the queried title and optional year.
func score(r Result, title string, year *int) float64 {
	best := 0.0
	for _, name := range r.Names() {
		best = math.Max(best, similarity(title, name))
	}
	if r.VoteCount > popularVoteCount {
		best += popularityBonus
	}
	if year != nil {
		if ry := r.Year(); ry != nil && *ry == *year {
			best += yearBonus
		}
	}
	return best
}

// pickBest returns the highest scoring result. Ties keep the earlier result,
// which preserves TMDB's own relevance order.
func pickBest(results []Result, title string, year *int) *Result {
	var best *Result
	bestScore := math.Inf(-1)
	for i := range results {
		s := score(results[i], title, year)
		if s > bestScore {
			best, bestScore = &results[i], s
		}
	}
	return best
}
