// Package similar ranks candidate symbols by edit distance so that
// unknown-symbol errors can carry "did you mean" suggestions.
package similar

import (
	"sort"
	"strings"
)

// maxDistance is the largest edit distance still considered a plausible typo.
const maxDistance = 2

// Closest returns up to limit candidates within a small edit distance of
// symbol, best matches first. Case-only mismatches always rank first.
func Closest(symbol string, candidates []string, limit int) []string {
	type scored struct {
		name string
		dist int
	}
	var matches []scored
	lower := strings.ToLower(symbol)
	for _, c := range candidates {
		if strings.ToLower(c) == lower {
			matches = append(matches, scored{c, 0})
			continue
		}
		if d := distance(lower, strings.ToLower(c)); d <= maxDistance {
			matches = append(matches, scored{c, d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].name < matches[j].name
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.name)
	}
	return out
}

// distance is the Levenshtein distance between a and b.
func distance(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
