// file: internal/server/handlers.go
// version: 1.0.0
// guid: a1b2c3d4-e5f6-7a8b-9c0d-1e2f3a4b5c6d

package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mediatheque/explorer/internal/models"
)

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}

// listWorks runs an exploration pass over the category. With no query
// parameters it returns the whole pool in alphabetical order.
func (s *Server) listWorks(c *gin.Context) {
	req := ExploreRequest{
		Title:       c.Query("title"),
		Description: c.Query("description"),
		GenresIn:    splitCSV(c.Query("genres_in")),
		GenresOut:   splitCSV(c.Query("genres_out")),
		Status:      c.Query("status"),
		SortBy:      c.Query("sort_by"),
		SortStack:   splitCSV(c.Query("sort_stack")),
		Descending:  c.Query("desc") == "true" || c.Query("desc") == "1",
	}
	req.ChapterMin = chapterBound(c, "min_chapters")
	req.ChapterMax = chapterBound(c, "max_chapters")

	results, err := s.explore.Explore(requestCategory(c), requestViewer(c), req)
	if err != nil {
		RespondWithInternalError(c, "failed to explore works: "+err.Error())
		return
	}
	RespondWithOK(c, ListResponse{Items: results, Count: len(results)})
}

func (s *Server) createWork(c *gin.Context) {
	var work models.Work
	if err := c.ShouldBindJSON(&work); err != nil {
		RespondWithBadRequest(c, "invalid work payload: "+err.Error())
		return
	}
	created, err := s.works.Create(requestCategory(c), &work)
	if err != nil {
		RespondWithValidationError(c, "work", err.Error())
		return
	}
	RespondWithCreated(c, created)
}

func (s *Server) importWorks(c *gin.Context) {
	var works []models.Work
	if err := c.ShouldBindJSON(&works); err != nil {
		RespondWithBadRequest(c, "invalid import payload: "+err.Error())
		return
	}
	RespondWithOK(c, s.works.Import(requestCategory(c), works))
}

func (s *Server) getWork(c *gin.Context) {
	id := c.Param("id")
	work, err := s.works.Get(requestCategory(c), id)
	if err != nil {
		RespondWithInternalError(c, "failed to load work: "+err.Error())
		return
	}
	if work == nil {
		RespondWithNotFound(c, "work", id)
		return
	}
	RespondWithOK(c, work)
}

func (s *Server) updateWork(c *gin.Context) {
	id := c.Param("id")
	var work models.Work
	if err := c.ShouldBindJSON(&work); err != nil {
		RespondWithBadRequest(c, "invalid work payload: "+err.Error())
		return
	}
	updated, err := s.works.Update(requestCategory(c), id, &work)
	if err != nil {
		if isNotFound(err) {
			RespondWithNotFound(c, "work", id)
			return
		}
		RespondWithValidationError(c, "work", err.Error())
		return
	}
	RespondWithOK(c, updated)
}

func (s *Server) deleteWork(c *gin.Context) {
	id := c.Param("id")
	if err := s.works.Delete(requestCategory(c), id); err != nil {
		if isNotFound(err) {
			RespondWithNotFound(c, "work", id)
			return
		}
		RespondWithInternalError(c, "failed to delete work: "+err.Error())
		return
	}
	RespondWithOK(c, DeleteResponse{Deleted: true, ID: id})
}

func (s *Server) similarWorks(c *gin.Context) {
	id := c.Param("id")
	limit, err := intQuery(c, "limit")
	if err != nil {
		RespondWithValidationError(c, "limit", "must be an integer")
		return
	}
	results, err := s.similar.Similar(requestCategory(c), id, limit)
	if err != nil {
		if isNotFound(err) {
			RespondWithNotFound(c, "work", id)
			return
		}
		RespondWithInternalError(c, "failed to rank similar works: "+err.Error())
		return
	}
	RespondWithOK(c, ListResponse{Items: results, Count: len(results)})
}

func (s *Server) recommendedWorks(c *gin.Context) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		RespondWithValidationError(c, "limit", "must be an integer")
		return
	}
	results, err := s.similar.Recommended(requestCategory(c), requestViewer(c), limit)
	if err != nil {
		RespondWithInternalError(c, "failed to build recommendations: "+err.Error())
		return
	}
	RespondWithOK(c, ListResponse{Items: results, Count: len(results)})
}

func (s *Server) listGenres(c *gin.Context) {
	infos := s.genres.List(requestCategory(c))
	RespondWithOK(c, ListResponse{Items: infos, Count: len(infos)})
}

func (s *Server) suggestGenres(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		RespondWithValidationError(c, "q", "query is required")
		return
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		RespondWithValidationError(c, "limit", "must be an integer")
		return
	}
	suggestions := s.genres.Suggest(requestCategory(c), q, limit)
	RespondWithOK(c, ListResponse{Items: suggestions, Count: len(suggestions)})
}

func (s *Server) listFavorites(c *gin.Context) {
	works, err := s.favorites.List(requestViewer(c), requestCategory(c))
	if err != nil {
		RespondWithInternalError(c, "failed to load favorites: "+err.Error())
		return
	}
	RespondWithOK(c, ListResponse{Items: works, Count: len(works)})
}

func (s *Server) addFavorite(c *gin.Context) {
	id := c.Param("id")
	if err := s.favorites.Add(requestViewer(c), requestCategory(c), id); err != nil {
		if isNotFound(err) {
			RespondWithNotFound(c, "work", id)
			return
		}
		RespondWithInternalError(c, "failed to add favorite: "+err.Error())
		return
	}
	RespondWithCreated(c, gin.H{"favorite": true, "id": id})
}

func (s *Server) removeFavorite(c *gin.Context) {
	id := c.Param("id")
	if err := s.favorites.Remove(requestViewer(c), requestCategory(c), id); err != nil {
		RespondWithInternalError(c, "failed to remove favorite: "+err.Error())
		return
	}
	RespondWithOK(c, gin.H{"favorite": false, "id": id})
}

// intQuery parses an optional integer query parameter, 0 when absent.
func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// chapterBound parses a chapter-range bound. Unparseable values degrade to
// 0, which the pipeline treats as no bound.
func chapterBound(c *gin.Context, name string) int {
	n, err := intQuery(c, name)
	if err != nil {
		return 0
	}
	return n
}
