// file: internal/explore/explore_test.go
// version: 1.2.0
// guid: 6e8b2d4f-9c17-4a53-b0e8-5d2f7a9c3e61

package explore

import (
	"testing"

	"github.com/mediatheque/explorer/internal/genres"
	"github.com/mediatheque/explorer/internal/models"
)

func testExplorer(cat models.Category) *Explorer {
	weights := map[string]float64{"action": 1, "drame": 3, "romance": 4}
	tbl := genres.NewTable(cat, []string{"action", "drame", "romance"}, weights, 6.0)
	return New(cat, models.ViewerM, tbl)
}

func manga(id, title string, total float64, read string) models.Work {
	return models.Work{
		ID:      id,
		Title:   title,
		ChTotal: total,
		ChLus:   models.FlexChapters{Raw: read},
	}
}

func titles(works []models.Work) []string {
	out := make([]string, len(works))
	for i, w := range works {
		out[i] = w.Title
	}
	return out
}

func assertOrder(t *testing.T, got []models.Work, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d works %v, want %d", len(got), titles(got), len(want))
	}
	for i, w := range want {
		if got[i].Title != w {
			t.Fatalf("order %v, want %v", titles(got), want)
		}
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		work models.Work
		cat  models.Category
		want Status
	}{
		{"manga untouched", manga("a", "A", 100, ""), models.CategoryMangas, StatusNotStarted},
		{"manga mid read", manga("a", "A", 100, "40"), models.CategoryMangas, StatusInProgress},
		{"manga done but serializing", manga("a", "A", 0, "40"), models.CategoryMangas, StatusInProgress},
		{
			"manga finished",
			models.Work{Statut: "Terminé", ChTotal: 100, ChLus: models.FlexChapters{Raw: "100"}},
			models.CategoryMangas, StatusFinished,
		},
		{
			"manga abandoned counts as closed",
			models.Work{Statut: "Abandonné", ChTotal: 10, ChLus: models.FlexChapters{Raw: "12"}},
			models.CategoryMangas, StatusFinished,
		},
		{
			"manga caught up on open series",
			models.Work{Statut: "En cours", ChTotal: 100, ChLus: models.FlexChapters{Raw: "100"}},
			models.CategoryMangas, StatusInProgress,
		},
		{
			"multi-track read takes the max segment",
			models.Work{Statut: "Complet", ChTotal: 50, ChLus: models.FlexChapters{Raw: "12.50.3"}},
			models.CategoryMangas, StatusFinished,
		},
		{"anime untouched", models.Work{EpisodeTotal: 12, SaisonTotal: 1}, models.CategoryAnimes, StatusNotStarted},
		{
			"anime mid season",
			models.Work{Statut: "Terminé", EpisodeTotal: 12, SaisonTotal: 1, EpisodeM: 5, SaisonM: 1},
			models.CategoryAnimes, StatusInProgress,
		},
		{
			"anime finished",
			models.Work{Statut: "Complet", EpisodeTotal: 12, SaisonTotal: 1, EpisodeM: 12, SaisonM: 1},
			models.CategoryAnimes, StatusFinished,
		},
		{"film unwatched", models.Work{}, models.CategoryFilms, StatusNotStarted},
		{"film watched", models.Work{DerniereEcoute: "12/04/2024"}, models.CategoryFilms, StatusFinished},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(&tt.work, tt.cat, models.ViewerM); got != tt.want {
				t.Errorf("StatusOf = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusOfViewerKey(t *testing.T) {
	w := models.Work{
		ChTotal: 100,
		ChLus:   models.FlexChapters{Raw: "50"},
		ChJade:  models.FlexChapters{Raw: ""},
	}
	if got := StatusOf(&w, models.CategoryMangas, models.ViewerM); got != StatusInProgress {
		t.Errorf("viewer M = %q, want enCours", got)
	}
	if got := StatusOf(&w, models.CategoryMangas, models.ViewerJ); got != StatusNotStarted {
		t.Errorf("viewer J = %q, want nonCommence", got)
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		total float64
		read  string
		want  int
	}{
		{0, "50", 0},
		{100, "", 0},
		{100, "40", 40},
		{3, "2", 67}, // rounds half up
		{100, "150", 100},
	}
	for _, tt := range tests {
		w := manga("x", "X", tt.total, tt.read)
		if got := ProgressPercent(&w, models.ViewerM); got != tt.want {
			t.Errorf("ProgressPercent(total=%v, read=%q) = %d, want %d", tt.total, tt.read, got, tt.want)
		}
	}
}

func TestApplyTitleFilterSortsAlphabetically(t *testing.T) {
	e := testExplorer(models.CategoryMangas)
	pool := []models.Work{
		manga("z", "Zeta Saga", 10, ""),
		manga("a", "Alpha Saga", 10, ""),
		manga("m", "Middling", 10, ""),
	}
	got := e.Apply(pool, Query{Title: "saga"})
	assertOrder(t, got, "Alpha Saga", "Zeta Saga")
}

func TestApplyGenreFilters(t *testing.T) {
	e := testExplorer(models.CategoryMangas)
	pool := []models.Work{
		{ID: "a", Title: "A", Genres: []string{"Action", "Romance"}},
		{ID: "b", Title: "B", Genres: []string{"Action", "Drame"}},
		{ID: "c", Title: "C", Genres: []string{"Romance"}},
	}
	got := e.Apply(pool, Query{GenresIn: []string{"action"}, GenresOut: []string{"Drame"}})
	assertOrder(t, got, "A")

	// Accented input folds to the stored label.
	got = e.Apply(pool, Query{GenresOut: []string{"Dramé"}})
	assertOrder(t, got, "A", "C")
}

func TestApplyStatusFilter(t *testing.T) {
	e := testExplorer(models.CategoryMangas)
	pool := []models.Work{
		manga("a", "A", 100, ""),
		manga("b", "B", 100, "30"),
	}
	got := e.Apply(pool, Query{Status: StatusInProgress})
	assertOrder(t, got, "B")
}

func TestApplyChapterRange(t *testing.T) {
	pool := []models.Work{
		manga("a", "A", 5, ""),
		manga("b", "B", 50, ""),
		manga("c", "C", 500, ""),
	}

	e := testExplorer(models.CategoryMangas)
	got := e.Apply(pool, Query{ChapterMin: 10, ChapterMax: 100})
	assertOrder(t, got, "B")

	// Range is ignored outside chapter-counted categories.
	films := testExplorer(models.CategoryFilms)
	got = films.Apply(pool, Query{ChapterMin: 10, ChapterMax: 100})
	if len(got) != 3 {
		t.Errorf("films chapter range filtered to %d works, want 3", len(got))
	}
}

func TestApplyMultiSortStack(t *testing.T) {
	e := testExplorer(models.CategoryMangas)
	pool := []models.Work{
		manga("c", "Cherry", 100, "50"),
		manga("a", "Apple", 100, "80"),
		manga("b", "Banana", 100, "50"),
	}
	// Primary progress ascending, title as tiebreak: equal-progress works
	// stay alphabetical.
	got := e.Apply(pool, Query{SortBy: SortProgress, SortStack: []SortKey{SortTitle}})
	assertOrder(t, got, "Banana", "Cherry", "Apple")

	// Flipping direction reverses both keys.
	got = e.Apply(pool, Query{SortBy: SortProgress, SortStack: []SortKey{SortTitle}, Descending: true})
	assertOrder(t, got, "Apple", "Cherry", "Banana")
}

func TestApplySortModifiedNewestFirst(t *testing.T) {
	e := testExplorer(models.CategoryMangas)
	old := manga("o", "Old", 0, "")
	old.ModifieLe = models.FlexTimeFromMillis(1_000)
	recent := manga("r", "Recent", 0, "")
	recent.ModifieLe = models.FlexTimeFromMillis(2_000)

	got := e.Apply([]models.Work{old, recent}, Query{SortBy: SortModified})
	assertOrder(t, got, "Recent", "Old")
}

func TestApplySortSimilarityGroupsByLead(t *testing.T) {
	e := testExplorer(models.CategoryAnimes)
	pool := []models.Work{
		{ID: "o", Title: "Other", Genres: []string{"Action"}},
		{ID: "m", Title: "Male", Genres: []string{"Action", "Male lead"}},
		{ID: "f", Title: "Female", Genres: []string{"Action", "Female lead"}},
	}
	got := e.Apply(pool, Query{SortBy: SortSimilarity})
	assertOrder(t, got, "Female", "Male", "Other")
}

func TestApplySortSimilarityByDominantRank(t *testing.T) {
	e := testExplorer(models.CategoryAnimes)
	pool := []models.Work{
		{ID: "r", Title: "Romance work", Genres: []string{"Romance"}}, // rank 4
		{ID: "a", Title: "Action work", Genres: []string{"Action"}},   // rank 1
		{ID: "n", Title: "No genres"},                                 // rank +Inf
	}
	got := e.Apply(pool, Query{SortBy: SortSimilarity})
	assertOrder(t, got, "Action work", "Romance work", "No genres")
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	e := testExplorer(models.CategoryMangas)
	pool := []models.Work{
		manga("b", "B", 10, ""),
		manga("a", "A", 10, ""),
	}
	_ = e.Apply(pool, Query{SortBy: SortTitle})
	if pool[0].Title != "B" || pool[1].Title != "A" {
		t.Errorf("input pool reordered: %v", titles(pool))
	}
}
