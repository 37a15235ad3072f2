package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/urtzih/Lorapp/internal/calendar"
	"github.com/urtzih/Lorapp/internal/database"
	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/envcache"
	"github.com/urtzih/Lorapp/internal/handler"
	"github.com/urtzih/Lorapp/internal/logger"
	"github.com/urtzih/Lorapp/internal/lunar"
	"github.com/urtzih/Lorapp/internal/metrics"
	"github.com/urtzih/Lorapp/internal/notify"
	"github.com/urtzih/Lorapp/internal/repository"
)

// Deps bundles what the HTTP surface needs. Everything is an interface or a
// value, so tests can assemble a server without a database.
type Deps struct {
	DBPool         database.Pool
	Inventory      repository.Inventory
	Subscriptions  repository.Subscription
	History        repository.Notification
	Sender         notify.Sender
	Engine         calendar.Engine
	LunarService   envcache.LunarService
	WeatherService envcache.WeatherService
	Calculator     *lunar.Calculator
	DefaultLoc     domain.GeoPoint
	Clock          domain.Clock
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, trustedProxies []string, deps Deps) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	limiter := NewRateLimiter()

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(trustedProxies, limiter))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	calendarHandler := handler.NewCalendarHandler(deps.Engine, deps.Clock)
	lunarHandler := handler.NewLunarHandler(deps.LunarService, deps.Calculator, deps.DefaultLoc, deps.Clock)
	weatherHandler := handler.NewWeatherHandler(deps.WeatherService, deps.DefaultLoc, deps.Clock)
	notificationHandler := handler.NewNotificationHandler(deps.Subscriptions, deps.History, deps.Sender, deps.Clock)

	// API v1 routes. Every route needs an acting user resolved from the
	// X-User-ID header except the pure phase calculator.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/lunar/phase", lunarHandler.Phase)

		r.Group(func(r chi.Router) {
			r.Use(handler.ResolveUser(deps.Inventory))

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/monthly", calendarHandler.MonthlyTasks)
				r.Get("/current", calendarHandler.CurrentMonth)
				r.Get("/recommendations", calendarHandler.Recommendations)
				r.Get("/upcoming-transplants", calendarHandler.UpcomingTransplants)
				r.Get("/expiring-lots", calendarHandler.ExpiringLots)
				r.Get("/planting-advisory", calendarHandler.PlantingAdvisory)

				r.Route("/full", func(r chi.Router) {
					r.Get("/month/{year}/{month}", calendarHandler.MonthOverview)
					r.Get("/year-summary/{year}", calendarHandler.YearSummary)
				})
			})

			r.Get("/lunar/day", lunarHandler.Day)
			r.Post("/lunar/prefetch/{year}/{month}", lunarHandler.Prefetch)

			r.Route("/weather", func(r chi.Router) {
				r.Get("/day", weatherHandler.Day)
				r.Get("/week", weatherHandler.Week)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/subscriptions", notificationHandler.ListSubscriptions)
				r.Post("/subscriptions", notificationHandler.Subscribe)
				r.Delete("/subscriptions/{id}", notificationHandler.Unsubscribe)
				r.Post("/test", notificationHandler.TestPush)
				r.Get("/history", notificationHandler.History)
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: deps.DBPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
