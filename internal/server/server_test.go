// file: internal/server/server_test.go
// version: 1.0.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-2f3a4b5c6d7e

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mediatheque/explorer/internal/config"
	"github.com/mediatheque/explorer/internal/database"
	"github.com/mediatheque/explorer/internal/genres"
	"github.com/mediatheque/explorer/internal/matcher"
	"github.com/mediatheque/explorer/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := database.NewPebbleStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	oldStore := database.GlobalStore
	database.GlobalStore = store
	oldConfig := config.AppConfig
	config.AppConfig = config.Config{
		DefaultViewer: "M",
		CacheTTL:      time.Minute,
	}
	t.Cleanup(func() {
		database.GlobalStore = oldStore
		config.AppConfig = oldConfig
		matcher.ResetCache()
	})

	return NewServer(store, genres.NewRegistry())
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) (items []json.RawMessage, count int) {
	t.Helper()
	var resp struct {
		Items []json.RawMessage `json:"items"`
		Count int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Items, resp.Count
}

func seedWork(t *testing.T, s *Server, category models.Category, w models.Work) models.Work {
	t.Helper()
	resp := doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/v1/%s/works", category), w)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created models.Work
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	return created
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp["status"])
	require.Equal(t, "ok", resp["database"])
}

func TestUnknownCategoryReturns404(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/podcasts/works", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkCRUD(t *testing.T) {
	s := newTestServer(t)

	created := seedWork(t, s, models.CategoryMangas, models.Work{
		Title:  "Berserk",
		Genres: []string{"Action", "Drame"},
	})

	// Read it back.
	w := doRequest(t, s, http.MethodGet, "/api/v1/mangas/works/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Work
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "Berserk", got.Title)

	// Update.
	got.Statut = "Terminé"
	w = doRequest(t, s, http.MethodPut, "/api/v1/mangas/works/"+created.ID, got)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Delete.
	w = doRequest(t, s, http.MethodDelete, "/api/v1/mangas/works/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/v1/mangas/works/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateWorkRequiresTitle(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/mangas/works", models.Work{Genres: []string{"Action"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMissingWorkReturns404(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPut, "/api/v1/mangas/works/nope", models.Work{Title: "X"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportWorks(t *testing.T) {
	s := newTestServer(t)

	batch := []models.Work{
		{Title: "One Piece", Genres: []string{"Aventure"}},
		{Title: ""}, // no title, skipped
		{Title: "Monster", Genres: []string{"Drame"}},
	}
	w := doRequest(t, s, http.MethodPost, "/api/v1/mangas/works/import", batch)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Imported)
	require.Equal(t, 1, resp.Skipped)
	require.Empty(t, resp.Errors)

	_, count := decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/works", nil))
	require.Equal(t, 2, count)
}

func TestListWorksTitleFilterAndOrder(t *testing.T) {
	s := newTestServer(t)

	seedWork(t, s, models.CategoryMangas, models.Work{Title: "Vinland Saga"})
	seedWork(t, s, models.CategoryMangas, models.Work{Title: "Berserk"})
	seedWork(t, s, models.CategoryMangas, models.Work{Title: "Vagabond"})

	items, count := decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/works", nil))
	require.Equal(t, 3, count)
	titles := titlesOf(t, items)
	require.Equal(t, []string{"Berserk", "Vagabond", "Vinland Saga"}, titles)

	items, count = decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/works?title=vagabond", nil))
	require.Equal(t, 1, count)
	require.Equal(t, []string{"Vagabond"}, titlesOf(t, items))
}

func TestListWorksGenreFilter(t *testing.T) {
	s := newTestServer(t)

	seedWork(t, s, models.CategoryMangas, models.Work{Title: "A", Genres: []string{"Action", "Drame"}})
	seedWork(t, s, models.CategoryMangas, models.Work{Title: "B", Genres: []string{"Romance"}})

	items, _ := decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/works?genres_in=drame", nil))
	require.Equal(t, []string{"A"}, titlesOf(t, items))

	items, _ = decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/works?genres_out=action", nil))
	require.Equal(t, []string{"B"}, titlesOf(t, items))
}

func TestListWorksStatusAnnotation(t *testing.T) {
	s := newTestServer(t)

	seedWork(t, s, models.CategoryMangas, models.Work{
		Title:   "Done",
		Statut:  "Terminé",
		ChTotal: 10,
		ChLus:   models.FlexChapters{Raw: "10"},
	})

	items, _ := decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/works?viewer=M", nil))
	require.Len(t, items, 1)
	var annotated struct {
		Title    string `json:"title"`
		Status   string `json:"viewStatus"`
		Progress int    `json:"viewProgress"`
	}
	require.NoError(t, json.Unmarshal(items[0], &annotated))
	require.Equal(t, "termine", annotated.Status)
	require.Equal(t, 100, annotated.Progress)
}

func TestListWorksBadChapterBoundIgnored(t *testing.T) {
	s := newTestServer(t)

	seedWork(t, s, models.CategoryMangas, models.Work{Title: "Short", ChTotal: 5})
	seedWork(t, s, models.CategoryMangas, models.Work{Title: "Long", ChTotal: 50})

	// Unparseable bounds degrade to "no bound" instead of failing the pass.
	_, count := decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/works?min_chapters=abc", nil))
	require.Equal(t, 2, count)

	// A valid bound still filters.
	items, _ := decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/works?min_chapters=10", nil))
	require.Equal(t, []string{"Long"}, titlesOf(t, items))
}

func TestSimilarWorks(t *testing.T) {
	s := newTestServer(t)

	anchor := seedWork(t, s, models.CategoryMangas, models.Work{Title: "Anchor", Genres: []string{"Action", "Aventure"}})
	seedWork(t, s, models.CategoryMangas, models.Work{Title: "Close", Genres: []string{"Action", "Aventure"}})
	seedWork(t, s, models.CategoryMangas, models.Work{Title: "Far", Genres: []string{"Romance"}})

	items, count := decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/works/"+anchor.ID+"/similar?limit=5", nil))
	require.GreaterOrEqual(t, count, 1)
	titles := titlesOf(t, items)
	require.NotContains(t, titles, "Anchor")
	require.Equal(t, "Close", titles[0])
}

func TestSimilarWorksUnknownID(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/mangas/works/ghost/similar", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendedEmptyWithoutFavorites(t *testing.T) {
	s := newTestServer(t)

	seedWork(t, s, models.CategoryMangas, models.Work{Title: "A", Genres: []string{"Action"}})

	_, count := decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/recommended", nil))
	require.Equal(t, 0, count)
}

func TestRecommendedFromFavorites(t *testing.T) {
	s := newTestServer(t)

	fav := seedWork(t, s, models.CategoryMangas, models.Work{Title: "Fav", Genres: []string{"Action", "Aventure"}})
	seedWork(t, s, models.CategoryMangas, models.Work{Title: "Near", Genres: []string{"Action", "Aventure"}})
	seedWork(t, s, models.CategoryMangas, models.Work{Title: "Off", Genres: []string{"Romance"}})

	w := doRequest(t, s, http.MethodPost, "/api/v1/mangas/favorites/"+fav.ID+"?viewer=J", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	items, count := decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/recommended?viewer=J&limit=5", nil))
	require.GreaterOrEqual(t, count, 1)
	titles := titlesOf(t, items)
	require.NotContains(t, titles, "Fav")
	require.Equal(t, "Near", titles[0])
}

func TestFavoritesLifecycle(t *testing.T) {
	s := newTestServer(t)

	work := seedWork(t, s, models.CategoryMangas, models.Work{Title: "Keeper"})

	w := doRequest(t, s, http.MethodPost, "/api/v1/mangas/favorites/"+work.ID+"?viewer=J", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	items, count := decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/favorites?viewer=J", nil))
	require.Equal(t, 1, count)
	require.Equal(t, []string{"Keeper"}, titlesOf(t, items))

	// The other viewer's list stays empty.
	_, count = decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/favorites?viewer=M", nil))
	require.Equal(t, 0, count)

	w = doRequest(t, s, http.MethodDelete, "/api/v1/mangas/favorites/"+work.ID+"?viewer=J", nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, count = decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/mangas/favorites?viewer=J", nil))
	require.Equal(t, 0, count)
}

func TestAddFavoriteUnknownWork(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/mangas/favorites/ghost", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListGenres(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/mangas/genres", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []GenreInfo `json:"items"`
		Count int         `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Greater(t, resp.Count, 0)
	// Ordered by rank, so the first entry is the most dominant genre.
	require.LessOrEqual(t, resp.Items[0].Rank, resp.Items[len(resp.Items)-1].Rank)
}

func TestSuggestGenres(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/mangas/genres/suggest?q=action", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Items []string `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Items)

	w = doRequest(t, s, http.MethodGet, "/api/v1/mangas/genres/suggest", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoriesAreIsolated(t *testing.T) {
	s := newTestServer(t)

	seedWork(t, s, models.CategoryMangas, models.Work{Title: "Manga Only"})

	_, count := decodeList(t, doRequest(t, s, http.MethodGet, "/api/v1/animes/works", nil))
	require.Equal(t, 0, count)
}

func titlesOf(t *testing.T, items []json.RawMessage) []string {
	t.Helper()
	out := make([]string, 0, len(items))
	for _, raw := range items {
		var w struct {
			Title string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(raw, &w))
		out = append(out, w.Title)
	}
	return out
}
