package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/inkwellapp/inkwell-server/internal/adapters/http/handlers"
	"github.com/inkwellapp/inkwell-server/internal/adapters/http/middleware"
	"github.com/inkwellapp/inkwell-server/internal/platform/config"
	"github.com/inkwellapp/inkwell-server/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// CORSConfig selects between the open and origin-restricted modes.
	CORSConfig *config.CORSConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// BookHandler handles the /books endpoints.
	BookHandler *handlers.BookHandler

	// QuoteHandler handles the /quotes endpoints.
	QuoteHandler *handlers.QuoteHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. CORS - browser clients are served cross-origin
//  5. OpenTelemetry - tracing and metrics
//  6. Logging - request logging (skips health endpoints)
//  7. Timeout - request deadline (applied per-route or globally)
//
// Route groups:
//   - /-/ (internal): probe endpoints
//   - / (public API): the book and quote endpoints live at the root,
//     matching the paths the web frontends already call
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	// Apply global middleware in order
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		corsMiddleware(cfg.CORSConfig),
		telemetry.Middleware(cfg.AppConfig.Name),
		middleware.Logging(cfg.Logger),
	)

	// Register health endpoints (no timeout for probes)
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	// Business routes with timeout
	api := engine.Group("")
	if cfg.Timeout > 0 {
		api.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	setupAPIRoutes(api, cfg)
}

// corsMiddleware builds the CORS layer from configuration. Nil config
// falls back to allowing all origins, which is what the standalone
// variants of the service shipped with.
func corsMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}

	if cfg != nil && cfg.Mode == config.CORSModeAllowList {
		corsCfg.AllowOrigins = cfg.AllowList
	} else {
		corsCfg.AllowAllOrigins = true
	}

	return cors.New(corsCfg)
}

// setupAPIRoutes registers business API routes.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.BookHandler != nil {
		books := rg.Group("/books")
		books.GET("", cfg.BookHandler.ListBooks)
		books.GET("/:id", cfg.BookHandler.GetBook)
		books.POST("", cfg.BookHandler.CreateBook)
		books.PUT("/:id", cfg.BookHandler.UpdateBook)
		books.DELETE("/:id", cfg.BookHandler.DeleteBook)
	}

	if cfg.QuoteHandler != nil {
		quotes := rg.Group("/quotes")
		quotes.GET("", cfg.QuoteHandler.ListQuotes)
		quotes.POST("", cfg.QuoteHandler.CreateQuote)
		quotes.PUT("/:id/like", cfg.QuoteHandler.ToggleLike)
		quotes.DELETE("/:id", cfg.QuoteHandler.DeleteQuote)
	}
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}
