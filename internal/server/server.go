package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fcontreras/macrofilter/config"
	"github.com/fcontreras/macrofilter/internal/api"
	"github.com/fcontreras/macrofilter/internal/middleware"
	"github.com/fcontreras/macrofilter/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New assembles the HTTP server: services, handlers, CORS, and the
// optional Redis-backed rate limiter for the search endpoints.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Server {
	router := gin.Default()
	router.Use(cors.Default())

	searchService := service.NewSearchService(db, cfg.ResultLimit)
	referenceService := service.NewReferenceService(db, rdb, cfg.RefCacheTTL)

	v1 := router.Group("/api/v1")
	if rdb != nil {
		v1.Use(middleware.NewSearchRateLimiter(rdb).RateLimitMiddleware())
	}
	api.NewSearchHandler(searchService, referenceService).RegisterRoutes(v1)
	api.NewReferenceHandler(referenceService).RegisterRoutes(v1)

	s := &Server{
		router: router,
		db:     db,
	}
	router.GET("/health", s.healthCheck)

	s.http = &http.Server{
		Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
		Handler: router,
	}
	return s
}

// Start starts the server and blocks until it is shut down.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) healthCheck(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
