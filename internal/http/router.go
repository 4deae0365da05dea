// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
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

	"github.com/brunovg/go-gift-backend/internal/config"
	"github.com/brunovg/go-gift-backend/internal/domain"
	"github.com/brunovg/go-gift-backend/internal/http/handlers"
	"github.com/brunovg/go-gift-backend/internal/http/middleware"
	"github.com/brunovg/go-gift-backend/internal/repo"
	"github.com/brunovg/go-gift-backend/internal/services"
)

// codeRepoShim adapts the repository free functions to the services.CodeRepo
// interface expected by the code and classification services. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type codeRepoShim struct{}

// ListCodes proxies repo.ListCodes.
func (codeRepoShim) ListCodes(ctx context.Context, db *gorm.DB, f repo.CodeFilter, offset, limit int) ([]domain.Code, error) {
	return repo.ListCodes(ctx, db, f, offset, limit)
}

// CountCodes proxies repo.CountCodes.
func (codeRepoShim) CountCodes(ctx context.Context, db *gorm.DB, f repo.CodeFilter) (int64, error) {
	return repo.CountCodes(ctx, db, f)
}

// FindCodeByValues proxies repo.FindCodeByValues.
func (codeRepoShim) FindCodeByValues(ctx context.Context, db *gorm.DB, values []string) (*domain.Code, error) {
	return repo.FindCodeByValues(ctx, db, values)
}

// winnerRepoShim adapts the winner repository free functions to both the
// services.WinnerValuesRepo and services.WinnerRepo interfaces.
type winnerRepoShim struct{}

// ListWinnerValues proxies repo.ListWinnerValues.
func (winnerRepoShim) ListWinnerValues(ctx context.Context, db *gorm.DB) ([]string, error) {
	return repo.ListWinnerValues(ctx, db)
}

// ListWinnersPage proxies repo.ListWinnersPage.
func (winnerRepoShim) ListWinnersPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Winner, error) {
	return repo.ListWinnersPage(ctx, db, offset, limit)
}

// CountWinners proxies repo.CountWinners.
func (winnerRepoShim) CountWinners(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountWinners(ctx, db)
}

// CreateWinner proxies repo.CreateWinner.
func (winnerRepoShim) CreateWinner(ctx context.Context, db *gorm.DB, value string) (*domain.Winner, error) {
	return repo.CreateWinner(ctx, db, value)
}

// DeleteWinner proxies repo.DeleteWinner.
func (winnerRepoShim) DeleteWinner(ctx context.Context, db *gorm.DB, id uint) error {
	return repo.DeleteWinner(ctx, db, id)
}

// giftRepoShim adapts the gift repository free functions to services.GiftRepo.
type giftRepoShim struct{}

// CreateGift proxies repo.CreateGift.
func (giftRepoShim) CreateGift(ctx context.Context, db *gorm.DB, name, description string, quantity int) (*domain.Gift, error) {
	return repo.CreateGift(ctx, db, name, description, quantity)
}

// ListGiftsPage proxies repo.ListGiftsPage.
func (giftRepoShim) ListGiftsPage(ctx context.Context, db *gorm.DB, search string, offset, limit int) ([]domain.Gift, error) {
	return repo.ListGiftsPage(ctx, db, search, offset, limit)
}

// CountGifts proxies repo.CountGifts.
func (giftRepoShim) CountGifts(ctx context.Context, db *gorm.DB, search string) (int64, error) {
	return repo.CountGifts(ctx, db, search)
}

// GetGift proxies repo.GetGift.
func (giftRepoShim) GetGift(ctx context.Context, db *gorm.DB, id uint) (*domain.Gift, error) {
	return repo.GetGift(ctx, db, id)
}

// UpdateGift proxies repo.UpdateGift.
func (giftRepoShim) UpdateGift(ctx context.Context, db *gorm.DB, id uint, name, description string, quantity int) error {
	return repo.UpdateGift(ctx, db, id, name, description, quantity)
}

// DeleteGift proxies repo.DeleteGift.
func (giftRepoShim) DeleteGift(ctx context.Context, db *gorm.DB, id uint) error {
	return repo.DeleteGift(ctx, db, id)
}

// userRepoShim adapts the user repository free functions to services.UserRepo.
type userRepoShim struct{}

// ListUsersPage proxies repo.ListUsersPage.
func (userRepoShim) ListUsersPage(ctx context.Context, db *gorm.DB, search string, offset, limit int) ([]domain.User, error) {
	return repo.ListUsersPage(ctx, db, search, offset, limit)
}

// CountUsers proxies repo.CountUsers.
func (userRepoShim) CountUsers(ctx context.Context, db *gorm.DB, search string) (int64, error) {
	return repo.CountUsers(ctx, db, search)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS, compression, health and metrics endpoints, and then mounts the
// versioned public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured request logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per client IP)
//  9. CORS
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Compress list responses; code pages compress well
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs (generated with swag init)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	classSvc := services.NewClassificationService(db, codeRepoShim{}, winnerRepoShim{})
	codeSvc := services.NewCodeService(db, codeRepoShim{})
	winnerSvc := services.NewWinnerService(db, winnerRepoShim{})
	giftSvc := services.NewGiftService(db, giftRepoShim{})
	userSvc := services.NewUserService(db, userRepoShim{})
	h := handlers.New(classSvc, codeSvc, winnerSvc, giftSvc, userSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api/v1"
	{
		// Codes and classification views
		api.GET("/codes", h.ListCodes)
		api.GET("/codes/lookup", h.LookupCode)
		api.GET("/codes/winners", h.ListWinners)
		api.GET("/codes/losers", h.ListLosers)
		api.GET("/codes/winner-codes", h.ListWinnerCodes)
		api.GET("/codes/non-winner-codes", h.ListNonWinnerCodes)

		// Winners ledger
		api.GET("/winners", h.ListWinnerEntries)
		api.POST("/winners", h.CreateWinnerEntry)
		api.DELETE("/winners/:id", h.DeleteWinnerEntry)

		// Gift catalog
		api.GET("/gifts", h.ListGifts)
		api.POST("/gifts", h.CreateGift)
		api.GET("/gifts/:id", h.GetGift)
		api.PUT("/gifts/:id", h.UpdateGift)
		api.DELETE("/gifts/:id", h.DeleteGift)

		// Users
		api.GET("/users", h.ListUsers)
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
