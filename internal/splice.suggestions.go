package internal

import (
	"sort"
	"strings"
)

// Suggestion limits
const (
	MaxSuggestions     = 3
	minSuggestDistance = 2
)

// Suggestion rendering
const (
	suggestOne    = ". Did you mean '"
	suggestMany   = ". Did you mean "
	suggestEnd    = "'?"
	suggestQuote  = '\''
	suggestComma  = ", "
	suggestOr     = " or "
	suggestClosed = '?'
)

// SimilarNames returns up to limit candidates within edit distance of target,
// closest first. Ties keep candidate order. Matching ignores case.
func SimilarNames(target string, candidates []string, limit int) []string {
	if len(candidates) == 0 || limit <= 0 {
		return nil
	}

	threshold := max(len(target)/2, minSuggestDistance)
	lower := strings.ToLower(target)

	type scored struct {
		name     string
		distance int
	}
	var near []scored
	for _, c := range candidates {
		if d := editDistance(lower, strings.ToLower(c)); d <= threshold {
			near = append(near, scored{name: c, distance: d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool { return near[i].distance < near[j].distance })

	out := make([]string, 0, min(limit, len(near)))
	for i := 0; i < len(near) && i < limit; i++ {
		out = append(out, near[i].name)
	}
	return out
}

// editDistance is the Levenshtein distance over bytes, using two rows.
func editDistance(a, b string) int {
	if a == StringValueEmpty {
		return len(b)
	}
	if b == StringValueEmpty {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// FormatSuggestions renders names as ". Did you mean 'a', 'b' or 'c'?".
func FormatSuggestions(names []string) string {
	switch len(names) {
	case 0:
		return StringValueEmpty
	case 1:
		return suggestOne + names[0] + suggestEnd
	}

	var sb strings.Builder
	sb.WriteString(suggestMany)
	for i, n := range names {
		if i > 0 {
			if i == len(names)-1 {
				sb.WriteString(suggestOr)
			} else {
				sb.WriteString(suggestComma)
			}
		}
		sb.WriteByte(suggestQuote)
		sb.WriteString(n)
		sb.WriteByte(suggestQuote)
	}
	sb.WriteByte(suggestClosed)
	return sb.String()
}
