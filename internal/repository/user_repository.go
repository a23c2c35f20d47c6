package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"tarefas/internal/interfaces"
	"tarefas/internal/models"
)

const pqUniqueViolation = "23505"

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetResetToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, tokenHash string, passwordHash string, now time.Time) (string, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO usuarios (id, nome, email, senha)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Nome, user.Email, user.PasswordHash)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return interfaces.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, nome, email, senha
		FROM usuarios
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, nome, email, senha
		FROM usuarios
		WHERE email = $1
	`
	return r.getOne(ctx, query, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Nome, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// SetResetToken stores the token digest and its expiry together, replacing
// any pending token of the user.
func (r *userRepository) SetResetToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error {
	query := `UPDATE usuarios SET reset_token = $1, reset_token_expires = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, tokenHash, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if n == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

// ResetPassword swaps the password of the user holding an unexpired token
// and clears both reset columns in the same statement, so a token can be
// consumed at most once. It returns the id of the updated user.
func (r *userRepository) ResetPassword(ctx context.Context, tokenHash string, passwordHash string, now time.Time) (string, error) {
	query := `
		UPDATE usuarios
		SET senha = $1,
			reset_token = NULL,
			reset_token_expires = NULL
		WHERE reset_token = $2
		  AND reset_token_expires > $3
		RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(ctx, query, passwordHash, tokenHash, now).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", interfaces.ErrNotFound
		}
		return "", fmt.Errorf("failed to reset password: %w", err)
	}
	return id, nil
}
