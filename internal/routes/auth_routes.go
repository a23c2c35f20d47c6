package routes

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"tarefas/internal/auth"
	"tarefas/internal/config"
	"tarefas/internal/handlers"
	"tarefas/internal/metrics"
	"tarefas/internal/repository"
	"tarefas/internal/services"
)

func RegisterAuthRoutes(router chi.Router, db *sql.DB, tokens *auth.TokenIssuer, guard func(http.Handler) http.Handler, mailer services.EmailSender, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) {
	users := repository.NewUserRepository(db)
	resets := services.NewPasswordResetService(users, mailer, cfg.ResetURLBase, logger)
	authHandler := handlers.NewAuthHandler(users, resets, tokens, m, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)
		r.With(guard).Get("/me", authHandler.Me)
	})
}
