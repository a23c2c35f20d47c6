package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"tarefas/internal/auth"
	"tarefas/internal/interfaces"
	"tarefas/internal/metrics"
	"tarefas/internal/middleware"
	"tarefas/internal/models"
	"tarefas/internal/repository"
	"tarefas/internal/services"
)

const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

// PasswordResetter runs the reset-token lifecycle.
type PasswordResetter interface {
	RequestReset(ctx context.Context, email string) error
	CompleteReset(ctx context.Context, token string, newPassword string) error
}

type TokenSigner interface {
	Issue(userID string) (string, error)
}

type AuthHandler struct {
	users   repository.UserRepository
	resets  PasswordResetter
	tokens  TokenSigner
	metrics *metrics.Metrics
	logger  *zap.Logger
	v       *validator.Validate
}

func NewAuthHandler(users repository.UserRepository, resets PasswordResetter, tokens TokenSigner, m *metrics.Metrics, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:   users,
		resets:  resets,
		tokens:  tokens,
		metrics: m,
		logger:  logger.Named("auth"),
		v:       newValidator(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// @Tags Auth
// @Summary Register a new user
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "New user"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	req.Nome = strings.TrimSpace(req.Nome)
	req.Email = normalizeEmail(req.Email)
	if err := h.v.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", validationMessage(err))
		return
	}

	hash, err := auth.HashPassword(req.Senha)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "senha must be at most 72 bytes")
			return
		}
		h.logger.Error("hash password", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to create user")
		return
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Nome:         req.Nome,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.users.Create(r.Context(), u); err != nil {
		if errors.Is(err, interfaces.ErrDuplicateEmail) {
			h.metrics.AuthEvent("register", "conflict")
			writeJSONErrorResponse(w, http.StatusBadRequest, "email_taken", "Email already registered")
			return
		}
		h.logger.Error("create user", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to create user")
		return
	}

	h.metrics.AuthEvent("register", "success")
	writeJSON(w, http.StatusCreated, models.RegisterResponse{ID: u.ID, Email: u.Email, Nome: u.Nome})
}

// @Tags Auth
// @Summary Log in and obtain a bearer token
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := h.v.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", validationMessage(err))
		return
	}

	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		h.logger.Error("lookup user", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to log in")
		return
	}
	if u == nil || !auth.CheckPassword(req.Senha, u.PasswordHash) {
		h.metrics.AuthEvent("login", "failure")
		writeJSONErrorResponse(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.logger.Error("issue token", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to log in")
		return
	}

	h.metrics.AuthEvent("login", "success")
	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token})
}

// @Tags Auth
// @Summary Current user profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.MeResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSONErrorResponse(w, http.StatusUnauthorized, "unauthenticated", "Access token required")
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			writeJSONErrorResponse(w, http.StatusNotFound, "user_not_found", "User not found")
			return
		}
		h.logger.Error("get user", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, models.MeResponse{Nome: u.Nome, Email: u.Email})
}

// ForgotPassword answers identically whether or not the email is registered.
// Store and delivery failures are logged only.
//
// @Tags Auth
// @Summary Request a password reset token
// @Accept json
// @Produce json
// @Param body body models.ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if email := normalizeEmail(req.Email); email != "" {
		if err := h.resets.RequestReset(r.Context(), email); err != nil {
			h.logger.Error("request password reset", zap.Error(err))
			h.metrics.AuthEvent("reset_request", "error")
		} else {
			h.metrics.AuthEvent("reset_request", "accepted")
		}
	}

	writeJSONMessage(w, http.StatusOK, forgotPasswordMessage)
}

// @Tags Auth
// @Summary Set a new password with a reset token
// @Accept json
// @Produce json
// @Param body body models.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	req.Token = strings.TrimSpace(req.Token)
	if err := h.v.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", validationMessage(err))
		return
	}

	if err := h.resets.CompleteReset(r.Context(), req.Token, req.NovaSenha); err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			h.metrics.AuthEvent("reset_complete", "invalid_token")
			writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_token", "Invalid or expired token")
			return
		}
		if errors.Is(err, auth.ErrPasswordTooLong) {
			writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "novaSenha must be at most 72 bytes")
			return
		}
		h.logger.Error("complete password reset", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to reset password")
		return
	}

	h.metrics.AuthEvent("reset_complete", "success")
	writeJSONMessage(w, http.StatusOK, "Password reset successful")
}
