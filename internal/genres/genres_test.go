// file: internal/genres/genres_test.go
// version: 1.1.0
// guid: 2b7f4e9a-6c1d-4a3e-b8f5-0d2c7a4e9b16

package genres

import (
	"math"
	"testing"

	"github.com/mediatheque/explorer/internal/models"
)

func testTable() *Table {
	return NewTable(models.CategoryAnimes,
		[]string{"fantasy", "romance", "action", "cooking", "female lead", "male lead", "obscure"},
		map[string]float64{
			"female lead": 0,
			"male lead":   0,
			"fantasy":     1.31,
			"romance":     2.1,
			"action":      5.1,
		}, DefaultWeight)
}

func TestGenreKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Romance", "romance"},
		{"Romance 2.1", "romance"},
		{"romance (dominant)", "romance"},
		{"Romance 2.1 (Dominant)", "romance"},
		{"Mystère", "mystere"},
		{"1.5", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := GenreKey(tt.in); got != tt.want {
			t.Errorf("GenreKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWeightForCompletion(t *testing.T) {
	tbl := testTable()
	// Every vocabulary label resolves, explicit or default.
	for _, label := range tbl.Vocabulary() {
		if w := tbl.WeightFor(label); math.IsInf(w, 0) || math.IsNaN(w) {
			t.Errorf("WeightFor(%q) not resolvable: %v", label, w)
		}
	}
	if got := tbl.WeightFor("obscure"); got != DefaultWeight {
		t.Errorf("unlisted vocabulary label = %v, want default %v", got, DefaultWeight)
	}
	if got := tbl.WeightFor("never seen anywhere"); got != DefaultWeight {
		t.Errorf("unknown label = %v, want default %v", got, DefaultWeight)
	}
	if got := tbl.WeightFor("Fantasy"); got != 1.31 {
		t.Errorf("WeightFor(Fantasy) = %v, want 1.31", got)
	}
}

func TestRankFor(t *testing.T) {
	tbl := testTable()
	tests := []struct {
		in   string
		want float64
	}{
		{"fantasy", 1.31},
		{"Romance 2.3", 2.3}, // embedded number overrides the table
		{"unknown thing", DefaultWeight},
	}
	for _, tt := range tests {
		if got := tbl.RankFor(tt.in); got != tt.want {
			t.Errorf("RankFor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	// A label that is nothing but the dominant marker resolves to no key.
	if got := tbl.RankFor("(dominant)"); !math.IsInf(got, 1) {
		t.Errorf("RankFor((dominant)) = %v, want +Inf", got)
	}
}

func TestIsDominantRank(t *testing.T) {
	for rank, want := range map[float64]bool{
		1.0:          true,
		1.99:         true,
		2.0:          false,
		0.9:          false,
		math.Inf(1):  false,
	} {
		if got := IsDominantRank(rank); got != want {
			t.Errorf("IsDominantRank(%v) = %v, want %v", rank, got, want)
		}
	}
}

func TestLeadOf(t *testing.T) {
	tests := []struct {
		genres []string
		want   Lead
	}{
		{[]string{"action"}, LeadOther},
		{[]string{"action", "female lead"}, LeadFemale},
		{[]string{"male lead"}, LeadMale},
		{[]string{"male lead", "female lead"}, LeadFemale}, // female wins
		{nil, LeadOther},
	}
	for _, tt := range tests {
		w := &models.Work{Genres: tt.genres}
		if got := LeadOf(w); got != tt.want {
			t.Errorf("LeadOf(%v) = %v, want %v", tt.genres, got, tt.want)
		}
	}
}

func TestBestPrimaryPair(t *testing.T) {
	tbl := testTable()
	w := &models.Work{Genres: []string{"action", "female lead", "fantasy", "romance"}}
	p, s := tbl.BestPrimaryPair(w)
	if p.Key != "fantasy" || s.Key != "romance" {
		t.Errorf("pair = (%q, %q), want (fantasy, romance)", p.Key, s.Key)
	}
	if !p.Dominant {
		t.Error("fantasy rank 1.31 must be dominant")
	}
	if s.Dominant {
		t.Error("romance rank 2.1 must not be dominant")
	}

	empty := &models.Work{Genres: []string{"female lead"}}
	p, s = tbl.BestPrimaryPair(empty)
	if p.Key != "" || !math.IsInf(p.Rank, 1) {
		t.Errorf("missing primary = %+v, want empty key and +Inf rank", p)
	}
	if s.Key != "" || !math.IsInf(s.Rank, 1) {
		t.Errorf("missing secondary = %+v, want empty key and +Inf rank", s)
	}
}

func TestSignatureExcludesLeads(t *testing.T) {
	tbl := testTable()
	w := &models.Work{Genres: []string{"female lead", "romance", "fantasy", "male lead"}}
	sig := tbl.Signature(w)
	if len(sig) != 2 || sig[0] != "fantasy" || sig[1] != "romance" {
		t.Errorf("Signature = %v, want [fantasy romance]", sig)
	}
}

func TestSharedGenreCountSymmetric(t *testing.T) {
	tbl := testTable()
	a := &models.Work{Genres: []string{"fantasy", "romance", "action"}}
	b := &models.Work{Genres: []string{"romance", "cooking", "fantasy"}}
	ab := tbl.SharedGenreCount(a, b)
	ba := tbl.SharedGenreCount(b, a)
	if ab != ba {
		t.Errorf("SharedGenreCount not symmetric: %d vs %d", ab, ba)
	}
	if ab != 2 {
		t.Errorf("SharedGenreCount = %d, want 2", ab)
	}
}

func TestRegistryOverrides(t *testing.T) {
	r := NewRegistry()
	base := r.TableFor(models.CategoryFilms)
	if base.WeightFor("thriller") != 1.4 {
		t.Fatalf("builtin thriller weight = %v", base.WeightFor("thriller"))
	}

	lower := 7.5
	r.ApplyOverrides(&OverrideFile{Categories: map[string]CategoryOverride{
		"films": {
			DefaultWeight: &lower,
			Vocabulary:    []string{"documentaire"},
			Weights:       map[string]float64{"thriller": 1.05},
		},
		"unknown": {Weights: map[string]float64{"x": 1}},
	}})

	tbl := r.TableFor(models.CategoryFilms)
	if got := tbl.WeightFor("thriller"); got != 1.05 {
		t.Errorf("override weight = %v, want 1.05", got)
	}
	if got := tbl.WeightFor("documentaire"); got != lower {
		t.Errorf("new vocabulary label = %v, want default %v", got, lower)
	}
	// Other categories untouched.
	if r.TableFor(models.CategorySeries).WeightFor("thriller") != 1.4 {
		t.Error("series table must be unaffected by a films override")
	}
}

func TestTableForUnknownCategory(t *testing.T) {
	r := NewRegistry()
	tbl := r.TableFor(models.Category("books"))
	if got := tbl.WeightFor("anything"); got != DefaultWeight {
		t.Errorf("unknown category weight = %v, want default", got)
	}
}
