package router

import (
	"context"
	"net/http"
	"time"

	"github.com/erp/mes/internal/infrastructure/logger"
	"github.com/erp/mes/internal/interfaces/http/dto"
	"github.com/erp/mes/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
	health     HealthCheck
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithHealthCheck makes /health report the result of check
func WithHealthCheck(check HealthCheck) RouterOption {
	return func(r *Router) {
		r.health = check
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers the health endpoint and all API routes with the engine
func (r *Router) Setup() {
	r.engine.GET("/health", r.healthHandler)

	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

func (r *Router) healthHandler(c *gin.Context) {
	if r.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := r.health(ctx); err != nil {
			logger.L(c.Request.Context()).Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInternal, "Database unavailable", middleware.GetRequestID(c)))
			return
		}
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
}

// EngineConfig configures the middleware chain of NewEngine
type EngineConfig struct {
	Mode           string
	CORS           middleware.CORSConfig
	BodyLimit      int64
	RequestTimeout time.Duration
	// TracingService enables request spans under this service name
	TracingService string
}

// NewEngine creates a gin engine with the standard middleware chain.
// Request ID, actor and the request span are set before the logging
// middleware reads them.
func NewEngine(cfg EngineConfig, zapLogger *zap.Logger) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = middleware.DefaultBodyLimit
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Actor())
	// spans must exist before the logging middleware so log lines carry trace_id
	if cfg.TracingService != "" {
		engine.Use(middleware.Tracing(cfg.TracingService), middleware.SpanAttributes())
	}
	engine.Use(
		logger.Recovery(zapLogger),
		logger.GinMiddleware(zapLogger),
		middleware.Secure(),
		middleware.CORSWithConfig(cfg.CORS),
		middleware.BodyLimit(cfg.BodyLimit),
		middleware.Timeout(cfg.RequestTimeout),
	)
	return engine
}
