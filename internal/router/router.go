package router

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-dashboard/internal/handler/prometheus"
	"github.com/jwalitptl/hospital-dashboard/internal/middleware"
	"github.com/jwalitptl/hospital-dashboard/internal/session"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine  *gin.Engine
	health  Handler
	metrics *prometheus.Handler
	pages   []Handler
}

type RouterConfig struct {
	Mode      string
	Logger    zerolog.Logger
	Templates *template.Template
	Static    http.FileSystem

	Store   session.Store
	Session middleware.SessionConfig

	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	MetricsEnabled   bool
}

// NewRouter builds the engine and its middleware chain. health and
// metrics stay outside the session middleware; pages get a session.
func NewRouter(health Handler, metrics *prometheus.Handler, pages []Handler, config RouterConfig) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New() // Use New() instead of Default() for more control
	engine.SetHTMLTemplate(config.Templates)

	r := &Router{
		engine:  engine,
		health:  health,
		metrics: metrics,
		pages:   pages,
	}

	// Add core middlewares
	engine.Use(
		middleware.RequestID(config.Logger),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
	)
	if config.MetricsEnabled && metrics != nil {
		engine.Use(metrics.Middleware())
	}
	engine.Use(middleware.SecurityHeaders(middleware.DefaultSecurityConfig()))

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
			TTL:   10 * time.Minute,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	if config.Static != nil {
		engine.StaticFS("/static", config.Static)
	}

	r.setup(config)
	return r
}

func (r *Router) setup(config RouterConfig) {
	root := r.engine.Group("")
	if r.health != nil {
		r.health.RegisterRoutes(root)
	}
	if config.MetricsEnabled && r.metrics != nil {
		root.GET("/metrics", r.metrics.Handler())
	}

	pages := r.engine.Group("")
	pages.Use(
		middleware.SizeLimit(middleware.DefaultSizeLimitConfig()),
		middleware.Session(config.Store, config.Session),
	)
	for _, h := range r.pages {
		h.RegisterRoutes(pages)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
