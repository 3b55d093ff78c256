// Package httpapi wires the HTTP transport (Gin) to the reservation engine,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Guest data (names, phones) is never cached by intermediaries
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/tbourn/table-reservations/docs" // registers swagger docs
	"github.com/tbourn/table-reservations/internal/config"
	"github.com/tbourn/table-reservations/internal/http/handlers"
	"github.com/tbourn/table-reservations/internal/http/middleware"
	"github.com/tbourn/table-reservations/internal/repo"
)

// Deps are the collaborators the HTTP layer needs. Floor and Booking are
// usually the same *services.Engine.
type Deps struct {
	Floor   handlers.FloorService
	Booking handlers.BookingService

	// Idem records Idempotency-Key results; nil disables replays.
	Idem handlers.IdempotencyStore

	// Ready probes the state backend for /ready; nil reports ready.
	Ready func(ctx context.Context) error
}

// piiPaths are prefixes whose responses carry guest names or phone numbers.
var piiPaths = []string{"/reservations", "/deleted-reservations", "/tables/status"}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per staff member/IP, bypass on replay)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction; q carries guest names and phones
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders:     []string{"X-API-Key"},
		MaskQueryParams: []string{"q"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Response compression (layouts and day sheets compress well)
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/swagger"})))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		idempotencyLookup(deps.Idem),
	))

	// 9) Token-bucket rate limiter per staff member/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByStaffOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	allowHeaders := []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match", middleware.HeaderStaffID, middleware.HeaderIdempotencyKey}
	exposeHeaders := []string{"X-Request-ID", "Content-Length", "Content-Disposition", "ETag", "Location", handlers.HeaderIdempotentReplay}
	methods := []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     methods,
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
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
			AllowMethods:     methods,
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStorePaths: prefixed(cfg.APIBasePath, piiPaths),
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness / readiness
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/ready", func(c *gin.Context) {
		if deps.Ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Ready(ctx); err != nil {
				middleware.LoggerFrom(c).Warn().Err(err).Msg("readiness probe failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(deps.Floor, deps.Booking, deps.Idem, cfg.IdempotencyTTL)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api/v1"
	{
		// Tables and live status
		api.GET("/tables", h.ListTables)
		api.GET("/tables/status", h.TableStatus)
		api.GET("/tables/:id/reservation", h.TableReservation)
		api.GET("/time-slots", h.TimeSlots)

		// Layout editing
		api.PUT("/tables/seats", h.UpdateSeats)
		api.PUT("/tables/:id/shape", h.UpdateShape)
		api.PUT("/tables/:id/position", h.UpdatePosition)
		api.POST("/tables/combine", h.CombineTables)
		api.POST("/tables/:id/uncombine", h.UncombineTable)
		api.PUT("/layout", h.LoadLayout)
		api.GET("/layout/undo", h.CanUndo)
		api.POST("/layout/undo", h.Undo)

		// Presets
		api.GET("/presets", h.ListPresets)
		api.POST("/presets", h.SavePreset)
		api.POST("/presets/:id/load", h.LoadPreset)
		api.PUT("/presets/:id/name", h.RenamePreset)
		api.DELETE("/presets/:id", h.DeletePreset)

		// Reservations
		api.GET("/reservations", h.ListReservations)
		api.POST("/reservations", h.CreateReservation)
		api.DELETE("/reservations", h.DeleteAllReservations)
		api.GET("/reservations/:id", h.GetReservation)
		api.PATCH("/reservations/:id", h.UpdateReservation)
		api.DELETE("/reservations/:id", h.CancelReservation)

		// Deleted-reservation log
		api.GET("/deleted-reservations", h.ListDeleted)
		api.DELETE("/deleted-reservations", h.ClearDeleted)
		api.GET("/deleted-reservations/export", h.ExportDeleted)
	}
}

// idempotencyLookup adapts an IdempotencyStore to the middleware contract.
// Misses and store errors both mean "no replay".
func idempotencyLookup(store handlers.IdempotencyStore) middleware.IdempotencyLookup {
	if store == nil {
		return nil
	}
	return func(ctx context.Context, key string, _ time.Time) (string, error) {
		id, err := store.Lookup(ctx, key)
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil
		}
		return id, err
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

func prefixed(base string, paths []string) []string {
	if base == "/" {
		base = ""
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = base + p
	}
	return out
}
