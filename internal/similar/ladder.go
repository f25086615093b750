// file: internal/similar/ladder.go
// version: 1.2.0
// guid: 4b7f9c2e-6d1a-4f38-9e05-2c8a1d5b7f63

package similar

import (
	"github.com/mediatheque/explorer/internal/genres"
	"github.com/mediatheque/explorer/internal/models"
	"github.com/mediatheque/explorer/internal/textnorm"
)

// Options controls the constraint ladder used by RankBySimilarity.
type Options struct {
	// Strict enables the constraint ladder: candidates must share a
	// dominant genre with a reference before rank proximity is even
	// considered. When false only the score-everything rung runs.
	Strict bool
	// AlsoMatchSecondary additionally narrows by secondary dominant genre
	// on the tightest rung.
	AlsoMatchSecondary bool
	// EnforceLead additionally narrows to candidates whose lead
	// classification appears among the references on the tightest rung.
	EnforceLead bool
	// MinCount is the result size at which relaxation stops. Zero accepts
	// the first rung that yields anything.
	MinCount int
}

// DefaultOptions returns the strict ladder settings used for
// recommendation feeds, sized to the requested result count.
func DefaultOptions(limit int) Options {
	return Options{
		Strict:             true,
		AlsoMatchSecondary: true,
		EnforceLead:        true,
		MinCount:           minInt(limit, 24),
	}
}

// rung is one row of the relaxation ladder. Secondary and lead narrowing
// are best-effort within a rung: they apply only when they leave at least
// one candidate standing.
type rung struct {
	primary   bool
	secondary bool
	lead      bool
}

func (o Options) ladder() []rung {
	if !o.Strict {
		return []rung{{}}
	}
	return []rung{
		{primary: true, secondary: o.AlsoMatchSecondary, lead: o.EnforceLead},
		{primary: true, secondary: o.AlsoMatchSecondary},
		{primary: true},
		{},
	}
}

// refProfile is the precomputed view of a reference set: the dominant
// genre keys and lead classifications the ladder filters against.
type refProfile struct {
	primaries   []string
	secondaries []string
	leads       map[genres.Lead]bool
}

func profileRefs(tbl *genres.Table, refs []models.Work) refProfile {
	p := refProfile{leads: make(map[genres.Lead]bool, 3)}
	for i := range refs {
		g1, g2 := tbl.BestPrimaryPair(&refs[i])
		if g1.Key != "" {
			p.primaries = append(p.primaries, g1.Key)
		}
		if g2.Key != "" {
			p.secondaries = append(p.secondaries, g2.Key)
		}
		p.leads[genres.LeadOf(&refs[i])] = true
	}
	return p
}

func keyInSet(key string, set []string) bool {
	for _, s := range set {
		if EqualKey(key, s) {
			return true
		}
	}
	return false
}

// filterRung applies one ladder rung to the pool. The primary constraint
// is hard; the secondary and lead constraints are dropped when they would
// empty the result.
func filterRung(tbl *genres.Table, pool []models.Work, p refProfile, r rung) []models.Work {
	cand := pool
	if r.primary {
		kept := cand[:0:0]
		for i := range cand {
			g1, _ := tbl.BestPrimaryPair(&cand[i])
			if keyInSet(g1.Key, p.primaries) {
				kept = append(kept, cand[i])
			}
		}
		cand = kept
	}
	if r.secondary && len(cand) > 0 {
		kept := cand[:0:0]
		for i := range cand {
			_, g2 := tbl.BestPrimaryPair(&cand[i])
			if keyInSet(g2.Key, p.secondaries) {
				kept = append(kept, cand[i])
			}
		}
		if len(kept) > 0 {
			cand = kept
		}
	}
	if r.lead && len(cand) > 0 {
		kept := cand[:0:0]
		for i := range cand {
			if p.leads[genres.LeadOf(&cand[i])] {
				kept = append(kept, cand[i])
			}
		}
		if len(kept) > 0 {
			cand = kept
		}
	}
	return cand
}

// RankBySimilarity orders pool by similarity to refs, walking the
// relaxation ladder until a rung yields at least opts.MinCount works, then
// truncating to limit when limit is positive. With a non-empty pool and at
// least one reference the result is never empty.
func RankBySimilarity(tbl *genres.Table, pool, refs []models.Work, limit int, opts Options) []models.Work {
	if len(pool) == 0 || len(refs) == 0 {
		return nil
	}
	profile := profileRefs(tbl, refs)

	var picked []models.Work
	for _, r := range opts.ladder() {
		cand := filterRung(tbl, pool, profile, r)
		if len(cand) == 0 {
			continue
		}
		picked = scoreAndSort(tbl, cand, refs)
		if len(picked) >= opts.MinCount {
			break
		}
	}
	if len(picked) == 0 {
		picked = scoreAndSort(tbl, pool, refs)
	}
	if limit > 0 && len(picked) > limit {
		picked = picked[:limit]
	}
	return picked
}

// AutoSimilarFor ranks pool against a single work, excluding the work
// itself (matched by normalized ID or title, so re-imported duplicates are
// skipped too). The ladder relaxes earlier than for multi-reference feeds.
func AutoSimilarFor(tbl *genres.Table, item *models.Work, pool []models.Work, limit int) []models.Work {
	if item == nil || len(pool) == 0 {
		return nil
	}
	selfID := textnorm.Normalize(item.ID)
	selfTitle := textnorm.Normalize(item.Title)
	others := make([]models.Work, 0, len(pool))
	for i := range pool {
		// Unkeyed records never match each other by ID.
		if selfID != "" && textnorm.Normalize(pool[i].ID) == selfID {
			continue
		}
		if selfTitle != "" && textnorm.Normalize(pool[i].Title) == selfTitle {
			continue
		}
		others = append(others, pool[i])
	}
	opts := DefaultOptions(limit)
	opts.MinCount = minInt(limit, 12)
	return RankBySimilarity(tbl, others, []models.Work{*item}, limit, opts)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
