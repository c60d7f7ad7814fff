package diagnostic

import (
	"sort"
	"strings"
)

// levenshtein computes the classic edit distance between a and b. No
// string-distance library appears anywhere in the retrieval pack, so this
// stays a small stdlib algorithm rather than an invented dependency (see
// DESIGN.md).
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	la, lb := len(ar), len(br)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

func sharesPrefixOrSuffix(a, b string, n int) bool {
	al, bl := strings.ToLower(a), strings.ToLower(b)
	if len(al) < n || len(bl) < n {
		return false
	}
	return al[:n] == bl[:n] || al[len(al)-n:] == bl[len(bl)-n:]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Candidate is a name known to be in scope, paired with the line it was
// declared on.
type Candidate struct {
	Name string
	Line int
}

// NearestNames implements §4.1's similar-name search: Levenshtein distance
// with threshold max(3, len/2), with extra inclusion for a shared
// four-character case-insensitive prefix or suffix; results sorted by
// distance and capped at three.
func NearestNames(target string, candidates []Candidate) []SimilarName {
	type scored struct {
		Candidate
		dist int
	}
	threshold := maxInt(3, len(target)/2)
	var matches []scored
	for _, c := range candidates {
		if c.Name == target {
			continue
		}
		d := levenshtein(target, c.Name)
		if d <= threshold || sharesPrefixOrSuffix(target, c.Name, 4) {
			matches = append(matches, scored{c, d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})
	if len(matches) > 3 {
		matches = matches[:3]
	}
	out := make([]SimilarName, len(matches))
	for i, m := range matches {
		out[i] = SimilarName{Name: m.Name, Line: m.Line}
	}
	return out
}
