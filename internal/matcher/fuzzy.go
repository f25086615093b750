// file: internal/matcher/fuzzy.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7890-abcd-ef1234567890

package matcher

import (
	"github.com/mediatheque/explorer/internal/textnorm"
)

// DamerauLevenshtein computes the edit distance between two strings with
// unit-cost insertion, deletion, substitution and adjacent transposition.
// Inputs are compared rune-wise as given; callers fold case/diacritics first.
func DamerauLevenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	m, n := len(ra), len(rb)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d := dp[i-1][j] + 1
			if ins := dp[i][j-1] + 1; ins < d {
				d = ins
			}
			if sub := dp[i-1][j-1] + cost; sub < d {
				d = sub
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if tr := dp[i-2][j-2] + 1; tr < d {
					d = tr
				}
			}
			dp[i][j] = d
		}
	}
	return dp[m][n]
}

// Similarity folds both strings and maps their edit distance into [0, 1],
// 1 meaning identical. Two empty strings score 0, not 1: the fuzzy
// description fallback relies on empty-vs-empty never counting as a match.
func Similarity(a, b string) float64 {
	na, nb := textnorm.Normalize(a), textnorm.Normalize(b)
	la, lb := len([]rune(na)), len([]rune(nb))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(DamerauLevenshtein(na, nb))/float64(longest)
}
