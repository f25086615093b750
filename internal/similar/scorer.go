// file: internal/similar/scorer.go
// version: 1.2.0
// guid: 8e2c6a4f-0b9d-4e1a-a3c7-5d8f2b6e0a49

// Package similar scores catalog works against a reference set (favorites,
// or a single work for "more like this") and ranks candidate pools with a
// progressive constraint-relaxation ladder so recommendation surfaces are
// never spuriously empty.
package similar

import (
	"math"
	"sort"
	"strings"

	"github.com/mediatheque/explorer/internal/genres"
	"github.com/mediatheque/explorer/internal/matcher"
	"github.com/mediatheque/explorer/internal/models"
)

// Score weights. Lead agreement dominates typical rank gaps on purpose:
// sharing a lead classification is the strongest single signal.
const (
	leadBonus         = 3.0
	primaryGapCap     = 6.0
	secondaryGapCap   = 4.0
	sharedGenreBonus  = 5.0
	exactPrimaryBonus = 3.0
	exactSecondBonus  = 2.0

	// keyEqualThreshold is the edit-distance similarity above which two
	// genre keys count as the same key in ladder filters.
	keyEqualThreshold = 0.9
)

// EqualKey reports whether two genre keys are the same for ladder
// filtering: identical, or nearly so by edit distance. Empty keys never
// equal anything.
func EqualKey(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return matcher.Similarity(a, b) >= keyEqualThreshold
}

// rankGap maps two genre ranks onto a capped distance. A missing genre on
// either side counts as the full cap, and so does a gap of exactly zero:
// identical ranks earn their points through the exact-key bonuses instead,
// which keeps rank proximity from double-counting an exact match.
func rankGap(a, b, cap float64) float64 {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return cap
	}
	gap := math.Abs(a - b)
	if gap == 0 || gap > cap {
		return cap
	}
	return gap
}

// ScorePair computes the additive similarity of one candidate against one
// reference: lead agreement, dominant-genre rank proximity (primary and
// secondary), shared-genre volume, and exact-key bonuses.
func ScorePair(tbl *genres.Table, candidate, ref *models.Work) float64 {
	score := 0.0

	if genres.LeadOf(candidate) == genres.LeadOf(ref) {
		score += leadBonus
	}

	c1, c2 := tbl.BestPrimaryPair(candidate)
	r1, r2 := tbl.BestPrimaryPair(ref)

	score += primaryGapCap - rankGap(tbl.KeyRank(c1.Key), tbl.KeyRank(r1.Key), primaryGapCap)
	score += secondaryGapCap - rankGap(tbl.KeyRank(c2.Key), tbl.KeyRank(r2.Key), secondaryGapCap)

	score += sharedGenreBonus * float64(tbl.SharedGenreCount(candidate, ref))

	if c1.Key != "" && c1.Key == r1.Key {
		score += exactPrimaryBonus
	}
	if c2.Key != "" && c2.Key == r2.Key {
		score += exactSecondBonus
	}
	return score
}

// ScoreAgainstSet returns the best pairwise score of candidate against any
// single reference, or 0 when the reference set is empty.
func ScoreAgainstSet(tbl *genres.Table, candidate *models.Work, refs []models.Work) float64 {
	if candidate == nil || len(refs) == 0 {
		return 0
	}
	best := math.Inf(-1)
	for i := range refs {
		if s := ScorePair(tbl, candidate, &refs[i]); s > best {
			best = s
		}
	}
	return best
}

// scoreAndSort orders candidates by descending score against refs,
// preserving pool order on ties.
func scoreAndSort(tbl *genres.Table, candidates []models.Work, refs []models.Work) []models.Work {
	type scored struct {
		work  models.Work
		score float64
	}
	out := make([]scored, len(candidates))
	for i := range candidates {
		out[i] = scored{work: candidates[i], score: ScoreAgainstSet(tbl, &candidates[i], refs)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	ranked := make([]models.Work, len(out))
	for i, s := range out {
		ranked[i] = s.work
	}
	return ranked
}
