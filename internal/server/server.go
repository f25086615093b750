// file: internal/server/server.go
// version: 2.0.0
// guid: 4c5d6e7f-8a9b-0c1d-2e3f-4a5b6c7d8e9f

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mediatheque/explorer/internal/cache"
	"github.com/mediatheque/explorer/internal/config"
	"github.com/mediatheque/explorer/internal/database"
	"github.com/mediatheque/explorer/internal/genres"
	"github.com/mediatheque/explorer/internal/metrics"
	"github.com/mediatheque/explorer/internal/models"
	"github.com/mediatheque/explorer/internal/server/middleware"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *gin.Engine

	explore   *ExploreService
	similar   *SimilarService
	works     *WorkService
	genres    *GenreService
	favorites *FavoriteService
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer creates a new server instance
func NewServer(store database.Store, registry *genres.Registry) *Server {
	router := gin.Default()

	// Set up middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.MaxRequestBodySize(1<<20, 64<<20))
	if config.AppConfig.RateLimitRPS > 0 {
		perMinute := int(config.AppConfig.RateLimitRPS * 60)
		limiter := middleware.NewIPRateLimiter(perMinute, config.AppConfig.RateLimitBurst)
		router.Use(limiter.Middleware())
	}

	// Register metrics (idempotent)
	metrics.Register()

	responses := cache.New[any](config.AppConfig.CacheTTL)
	works := NewWorkService(store, responses)

	server := &Server{
		router:    router,
		explore:   NewExploreService(store, registry),
		similar:   NewSimilarService(store, registry, responses),
		works:     works,
		genres:    NewGenreService(registry),
		favorites: NewFavoriteService(store, responses),
	}

	server.setupRoutes()
	return server
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Refresh the per-category work gauges periodically.
	stopGauges := make(chan struct{})
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.updateWorkGauges()
			case <-stopGauges:
				return
			}
		}
	}()

	<-quit
	close(stopGauges)
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

func (s *Server) updateWorkGauges() {
	if database.GlobalStore == nil {
		return
	}
	for _, category := range models.Categories {
		count, err := database.GlobalStore.CountWorks(category)
		if err != nil {
			log.Printf("[DEBUG] gauge refresh: failed to count %s: %v", category, err)
			continue
		}
		metrics.SetWorks(string(category), count)
	}
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint (standard path)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint (both paths for compatibility)
	s.router.GET("/api/health", s.healthCheck)
	s.router.GET("/api/v1/health", s.healthCheck)

	api := s.router.Group("/api/v1/:category")
	api.Use(s.categoryMiddleware())
	{
		api.GET("/works", s.listWorks)
		api.POST("/works", s.createWork)
		api.POST("/works/import", s.importWorks)
		api.GET("/works/:id", s.getWork)
		api.PUT("/works/:id", s.updateWork)
		api.DELETE("/works/:id", s.deleteWork)
		api.GET("/works/:id/similar", s.similarWorks)

		api.GET("/recommended", s.recommendedWorks)

		api.GET("/genres", s.listGenres)
		api.GET("/genres/suggest", s.suggestGenres)

		api.GET("/favorites", s.listFavorites)
		api.POST("/favorites/:id", s.addFavorite)
		api.DELETE("/favorites/:id", s.removeFavorite)
	}
}

// categoryMiddleware validates the :category segment once for the whole group.
func (s *Server) categoryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		category := models.Category(c.Param("category"))
		if !category.Valid() {
			RespondWithNotFound(c, "category", c.Param("category"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func requestCategory(c *gin.Context) models.Category {
	return models.Category(c.Param("category"))
}

// requestViewer resolves the viewer from the query string, falling back to
// the configured default.
func requestViewer(c *gin.Context) models.ViewerKey {
	switch c.Query("viewer") {
	case "J":
		return models.ViewerJ
	case "M":
		return models.ViewerM
	}
	if config.AppConfig.DefaultViewer == "J" {
		return models.ViewerJ
	}
	return models.ViewerM
}

// healthCheck reports service status
func (s *Server) healthCheck(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	if database.GlobalStore == nil {
		status = "degraded"
		dbStatus = "uninitialized"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// splitCSV splits a comma-separated query parameter into trimmed values.
func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
