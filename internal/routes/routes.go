// internal/routes/routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"tarefas/internal/auth"
	"tarefas/internal/config"
	"tarefas/internal/handlers"
	appmw "tarefas/internal/middleware"
	"tarefas/internal/metrics"
	"tarefas/internal/services"
)

// SetupRoutes builds the HTTP router. A nil logger, mailer or metrics set is
// replaced by a no-op logger, the log mail driver and a private registry.
func SetupRoutes(db *sql.DB, cfg *config.Config, logger *zap.Logger, mailer services.EmailSender, m *metrics.Metrics) *chi.Mux {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mailer == nil {
		mailer = services.NewLogSender(logger)
	}
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmw.RequestLogger(logger))
	r.Use(appmw.Metrics(m))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	health := handlers.NewHealthHandler(db, logger)
	r.Get("/", health.Root)
	r.Get("/health", health.Health)
	r.Method("GET", "/metrics", promhttp.Handler())
	RegisterSwaggerRoutes(r)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	guard := appmw.JWTAuth(tokens)

	r.Route("/api", func(r chi.Router) {
		RegisterAuthRoutes(r, db, tokens, guard, mailer, cfg, m, logger)
		RegisterTaskRoutes(r, db, guard, logger)
	})

	return r
}
