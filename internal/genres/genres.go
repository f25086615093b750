// file: internal/genres/genres.go
// version: 1.2.0
// guid: 9c4e2a7f-1b8d-4f6a-930c-5e7a2d8f4b16

package genres

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mediatheque/explorer/internal/models"
	"github.com/mediatheque/explorer/internal/textnorm"
)

// Reserved genre keys. They carry weight 0, never count as dominant and
// instead drive the lead classification.
const (
	KeyFemaleLead = "female lead"
	KeyMaleLead   = "male lead"
)

// Lead is the FEMALE/MALE/OTHER classification derived from the two
// reserved genre keys.
type Lead int

const (
	LeadFemale Lead = iota
	LeadMale
	LeadOther
)

// String implements fmt.Stringer.
func (l Lead) String() string {
	switch l {
	case LeadFemale:
		return "FEMALE"
	case LeadMale:
		return "MALE"
	default:
		return "OTHER"
	}
}

var (
	dominantMarkerRe = regexp.MustCompile(`(?i)\(dominant\)`)
	numericRunsRe    = regexp.MustCompile(`[0-9.]+`)
	priorityRe       = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)`)
)

// GenreKey derives the stable identity of a genre label: the "(dominant)"
// marker and any embedded digits/periods are stripped before normalizing,
// so "Romance 2.1 (dominant)" and "romance" share one key.
func GenreKey(raw string) string {
	s := dominantMarkerRe.ReplaceAllString(raw, "")
	s = numericRunsRe.ReplaceAllString(s, "")
	return strings.TrimSpace(textnorm.Normalize(s))
}

// extractPriority pulls the first decimal number embedded in a raw label,
// or +Inf when there is none.
func extractPriority(raw string) float64 {
	m := priorityRe.FindString(raw)
	if m == "" {
		return math.Inf(1)
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.Inf(1)
	}
	return n
}

// IsDominantRank reports whether a rank sits in the dominant [1.0, 2.0) band.
func IsDominantRank(rank float64) bool {
	return !math.IsInf(rank, 0) && !math.IsNaN(rank) && math.Floor(rank) == 1
}

// LeadOf classifies a work from its genre keys, FEMALE taking precedence
// over MALE when both reserved keys are present.
func LeadOf(w *models.Work) Lead {
	female, male := false, false
	for _, g := range w.Genres {
		switch GenreKey(g) {
		case KeyFemaleLead:
			female = true
		case KeyMaleLead:
			male = true
		}
	}
	if female {
		return LeadFemale
	}
	if male {
		return LeadMale
	}
	return LeadOther
}

// Table maps normalized genre keys to priority weights for one category.
// Lower weight means higher priority; labels outside the table resolve to
// the default weight. Tables are immutable once built.
type Table struct {
	category      models.Category
	weights       map[string]float64
	defaultWeight float64
	vocabulary    []string
}

// NewTable builds a completed table: every vocabulary label gets a weight,
// explicit or default, so WeightFor never comes up empty for known labels.
func NewTable(category models.Category, vocabulary []string, weights map[string]float64, defaultWeight float64) *Table {
	completed := make(map[string]float64, len(weights)+len(vocabulary))
	for k, v := range weights {
		completed[textnorm.Normalize(k)] = v
	}
	for _, label := range vocabulary {
		key := textnorm.Normalize(label)
		if _, ok := completed[key]; !ok {
			completed[key] = defaultWeight
		}
	}
	return &Table{
		category:      category,
		weights:       completed,
		defaultWeight: defaultWeight,
		vocabulary:    append([]string(nil), vocabulary...),
	}
}

// Category returns the category this table serves.
func (t *Table) Category() models.Category { return t.category }

// Vocabulary returns the ordered genre label list.
func (t *Table) Vocabulary() []string { return t.vocabulary }

// DefaultWeight returns the fallback weight for unlisted labels.
func (t *Table) DefaultWeight() float64 { return t.defaultWeight }

// WeightFor resolves a label (normalized first) to its weight, falling
// back to the default for anything unlisted.
func (t *Table) WeightFor(label string) float64 {
	if w, ok := t.weights[textnorm.Normalize(label)]; ok {
		return w
	}
	return t.defaultWeight
}

// KeyRank ranks an already-derived genre key: empty keys sort last.
func (t *Table) KeyRank(key string) float64 {
	if key == "" {
		return math.Inf(1)
	}
	return t.WeightFor(key)
}

// RankFor ranks a raw genre label. A decimal number embedded in the label
// is a per-record manual override and wins outright; otherwise the derived
// key is looked up in the table. Labels that resolve to no key rank +Inf.
func (t *Table) RankFor(raw string) float64 {
	if n := extractPriority(raw); !math.IsInf(n, 1) {
		return n
	}
	key := GenreKey(raw)
	if key == "" {
		return math.Inf(1)
	}
	return t.WeightFor(key)
}

// GenreRank is one genre of a work with its resolved rank and position.
type GenreRank struct {
	Key      string
	Rank     float64
	Order    int
	Dominant bool
}

// GenresWithRanks resolves every genre of w, preserving original order and
// skipping labels that normalize to nothing.
func (t *Table) GenresWithRanks(w *models.Work) []GenreRank {
	out := make([]GenreRank, 0, len(w.Genres))
	for i, raw := range w.Genres {
		key := GenreKey(raw)
		if key == "" {
			continue
		}
		rank := t.RankFor(raw)
		out = append(out, GenreRank{Key: key, Rank: rank, Order: i, Dominant: IsDominantRank(rank)})
	}
	return out
}

// rankedNonLead filters out the reserved lead keys and sorts ascending by
// (rank, original order, key).
func (t *Table) rankedNonLead(w *models.Work) []GenreRank {
	meta := t.GenresWithRanks(w)
	out := meta[:0]
	for _, m := range meta {
		if m.Key == KeyFemaleLead || m.Key == KeyMaleLead {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// BestPrimaryPair returns the two best non-lead genres. Missing slots come
// back as {Key: "", Rank: +Inf} so callers can treat them uniformly.
func (t *Table) BestPrimaryPair(w *models.Work) (GenreRank, GenreRank) {
	ranked := t.rankedNonLead(w)
	primary := GenreRank{Rank: math.Inf(1)}
	secondary := GenreRank{Rank: math.Inf(1)}
	if len(ranked) > 0 {
		primary = ranked[0]
	}
	if len(ranked) > 1 {
		secondary = ranked[1]
	}
	return primary, secondary
}

// PrimaryKeyOf is a convenience for the first element of BestPrimaryPair.
func (t *Table) PrimaryKeyOf(w *models.Work) string {
	p, _ := t.BestPrimaryPair(w)
	return p.Key
}

// SecondaryKeyOf is a convenience for the second element of BestPrimaryPair.
func (t *Table) SecondaryKeyOf(w *models.Work) string {
	_, s := t.BestPrimaryPair(w)
	return s.Key
}

// Signature returns the rank-ordered non-lead genre keys of w, duplicates
// included, used for stable tie-breaking and shared-genre counting.
func (t *Table) Signature(w *models.Work) []string {
	ranked := t.rankedNonLead(w)
	keys := make([]string, len(ranked))
	for i, m := range ranked {
		keys[i] = m.Key
	}
	return keys
}

// SharedGenreCount counts the distinct genre keys two works have in common.
// Symmetric by construction.
func (t *Table) SharedGenreCount(a, b *models.Work) int {
	setA := make(map[string]struct{})
	for _, k := range t.Signature(a) {
		setA[k] = struct{}{}
	}
	setB := make(map[string]struct{})
	for _, k := range t.Signature(b) {
		setB[k] = struct{}{}
	}
	n := 0
	for k := range setA {
		if _, ok := setB[k]; ok {
			n++
		}
	}
	return n
}
