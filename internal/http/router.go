// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS, and
// security headers.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/avoulgari/go-social-backend/docs"
	"github.com/avoulgari/go-social-backend/internal/config"
	"github.com/avoulgari/go-social-backend/internal/domain"
	"github.com/avoulgari/go-social-backend/internal/http/handlers"
	"github.com/avoulgari/go-social-backend/internal/http/middleware"
	"github.com/avoulgari/go-social-backend/internal/repo"
	"github.com/avoulgari/go-social-backend/internal/services"
)

// accountRepoShim adapts the repository free functions to the
// services.AccountRepo interface. This keeps services decoupled from the
// concrete repo package while reusing existing functions.
type accountRepoShim struct{}

// CreateAccount proxies repo.CreateAccount.
func (accountRepoShim) CreateAccount(ctx context.Context, db *gorm.DB, username, password string) (*domain.Account, error) {
	return repo.CreateAccount(ctx, db, username, password)
}

// GetAccount proxies repo.GetAccount.
func (accountRepoShim) GetAccount(ctx context.Context, db *gorm.DB, id int64) (*domain.Account, error) {
	return repo.GetAccount(ctx, db, id)
}

// GetAccountByUsername proxies repo.GetAccountByUsername.
func (accountRepoShim) GetAccountByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.Account, error) {
	return repo.GetAccountByUsername(ctx, db, username)
}

// GetAccountByCredentials proxies repo.GetAccountByCredentials.
func (accountRepoShim) GetAccountByCredentials(ctx context.Context, db *gorm.DB, username, password string) (*domain.Account, error) {
	return repo.GetAccountByCredentials(ctx, db, username, password)
}

// messageRepoShim adapts the repository free functions to the
// services.MessageRepo interface.
type messageRepoShim struct{}

// CreateMessage proxies repo.CreateMessage.
func (messageRepoShim) CreateMessage(ctx context.Context, db *gorm.DB, postedBy int64, text string, epoch int64) (*domain.Message, error) {
	return repo.CreateMessage(ctx, db, postedBy, text, epoch)
}

// ListMessages proxies repo.ListMessages.
func (messageRepoShim) ListMessages(ctx context.Context, db *gorm.DB) ([]domain.Message, error) {
	return repo.ListMessages(ctx, db)
}

// ListMessagesByAccount proxies repo.ListMessagesByAccount.
func (messageRepoShim) ListMessagesByAccount(ctx context.Context, db *gorm.DB, accountID int64) ([]domain.Message, error) {
	return repo.ListMessagesByAccount(ctx, db, accountID)
}

// GetMessage proxies repo.GetMessage.
func (messageRepoShim) GetMessage(ctx context.Context, db *gorm.DB, id int64) (*domain.Message, error) {
	return repo.GetMessage(ctx, db, id)
}

// DeleteMessage proxies repo.DeleteMessage.
func (messageRepoShim) DeleteMessage(ctx context.Context, db *gorm.DB, id int64) error {
	return repo.DeleteMessage(ctx, db, id)
}

// UpdateMessageText proxies repo.UpdateMessageText.
func (messageRepoShim) UpdateMessageText(ctx context.Context, db *gorm.DB, id int64, text string) error {
	return repo.UpdateMessageText(ctx, db, id, text)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), CORS and security
// headers, health and metrics endpoints, and then mounts the public API.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured request logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured request logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
		NoStore:    false,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	acctSvc := services.NewAccountService(db, accountRepoShim{})
	msgSvc := services.NewMessageService(db, accountRepoShim{}, messageRepoShim{})

	h := handlers.New(acctSvc, msgSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Smoke-test endpoint kept from the project scaffold
		api.GET("/example-endpoint", func(c *gin.Context) {
			c.JSON(http.StatusOK, "sample text")
		})

		// Accounts
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)

		// Messages
		api.POST("/messages", h.CreateMessage)
		api.GET("/messages", h.ListMessages)
		api.GET("/messages/:message_id", h.GetMessage)
		api.DELETE("/messages/:message_id", h.DeleteMessage)
		api.PATCH("/messages/:message_id", h.UpdateMessage)
		api.GET("/accounts/:account_id/messages", h.ListAccountMessages)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
