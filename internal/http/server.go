// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripdraft/internal/http/handlers"
	"tripdraft/internal/http/middleware"
	"tripdraft/internal/infra"
)

type ServerDeps struct {
	Planner handlers.Planner
	// Images is nil unless image proxying is enabled.
	Images       handlers.ImageSource
	ImageTimeout time.Duration
	// Verifier is nil when auth is disabled.
	Verifier    infra.TokenVerifier
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
	Logger      *slog.Logger
}

type Server struct {
	plan        *handlers.PlanHandler
	images      *handlers.ImageHandler
	verifier    infra.TokenVerifier
	gatherer    prometheus.Gatherer
	corsOrigins []string
	logger      *slog.Logger
}

func NewServer(deps ServerDeps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		plan:        handlers.NewPlanHandler(deps.Planner, logger),
		verifier:    deps.Verifier,
		gatherer:    deps.Gatherer,
		corsOrigins: deps.CORSOrigins,
		logger:      logger,
	}
	if deps.Images != nil {
		s.images = handlers.NewImageHandler(deps.Images, deps.ImageTimeout, logger)
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(s.logger), middleware.Logging(s.logger))

	if len(s.corsOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = s.corsOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
		r.Use(cors.New(corsConfig))
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "trip planner backend is running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	protected := r.Group("")
	if s.verifier != nil {
		protected.Use(middleware.Auth(s.verifier))
	}
	protected.POST("/plan", s.plan.Plan)
	protected.GET("/api/trips/:id", s.plan.Get)

	if s.images != nil {
		images := r.Group("/api/images")
		images.GET("/photo", s.images.Photo)
		images.GET("/streetview", s.images.StreetView)
		images.GET("/static", s.images.Static)
	}
	return r
}
