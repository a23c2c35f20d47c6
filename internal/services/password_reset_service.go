package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
	"tarefas/internal/auth"
	"tarefas/internal/interfaces"
	"tarefas/internal/repository"
)

var ErrInvalidResetToken = errors.New("invalid or expired reset token")

const resetEmailSubject = "Redefinição de senha"

// resetMailTimeout bounds a delivery that outlives its request.
const resetMailTimeout = 30 * time.Second

// PasswordResetService drives the reset-token lifecycle: a user is either
// without a pending reset, or holds exactly one token until it is used or
// its expiry passes.
type PasswordResetService struct {
	users        repository.UserRepository
	mailer       EmailSender
	logger       *zap.Logger
	resetURLBase string
	now          func() time.Time
	dispatch     func(func())
}

func NewPasswordResetService(users repository.UserRepository, mailer EmailSender, resetURLBase string, logger *zap.Logger) *PasswordResetService {
	return &PasswordResetService{
		users:        users,
		mailer:       mailer,
		logger:       logger.Named("password_reset"),
		resetURLBase: resetURLBase,
		now:          time.Now,
		dispatch:     func(f func()) { go f() },
	}
}

func (s *PasswordResetService) WithClock(now func() time.Time) *PasswordResetService {
	s.now = now
	return s
}

// WithDispatcher replaces the goroutine that delivers reset mail.
func (s *PasswordResetService) WithDispatcher(dispatch func(func())) *PasswordResetService {
	s.dispatch = dispatch
	return s
}

// RequestReset issues a token for the account registered under email. An
// unknown email is not an error and causes no write. The mail goes out
// after RequestReset returns, so callers cannot time delivery; failures
// are only logged.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			s.logger.Debug("reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	raw, digest, err := auth.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expiresAt := s.now().Add(auth.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, digest, expiresAt); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	s.logger.Info("reset token issued", zap.String("user_id", user.ID), zap.Time("expires_at", expiresAt))

	to, body := user.Email, s.resetBody(user.Nome, raw)
	sendCtx := context.WithoutCancel(ctx)
	s.dispatch(func() {
		ctx, cancel := context.WithTimeout(sendCtx, resetMailTimeout)
		defer cancel()
		if err := s.mailer.Send(ctx, to, resetEmailSubject, body); err != nil {
			s.logger.Error("deliver reset token", zap.String("user_id", user.ID), zap.Error(err))
			return
		}
		s.logger.Debug("reset token delivered", zap.String("user_id", user.ID))
	})
	return nil
}

// CompleteReset sets a new password for the holder of token and clears the
// token in the same write.
func (s *PasswordResetService) CompleteReset(ctx context.Context, token string, newPassword string) error {
	if token == "" {
		return ErrInvalidResetToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.users.ResetPassword(ctx, auth.HashResetToken(token), hash, s.now())
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("reset password: %w", err)
	}

	s.logger.Info("password reset completed", zap.String("user_id", userID))
	return nil
}

func (s *PasswordResetService) resetBody(nome string, token string) string {
	link := token
	if s.resetURLBase != "" {
		link = s.resetURLBase + "?token=" + url.QueryEscape(token)
	}
	return fmt.Sprintf(
		"Olá %s,\n\nRecebemos um pedido para redefinir sua senha.\nUse o link ou código abaixo em até 1 hora:\n\n%s\n\nSe você não fez este pedido, ignore este e-mail.\n",
		nome, link,
	)
}
