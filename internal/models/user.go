package models

// User is a row of usuarios. The reset_token columns are only touched by
// the password reset statements and are never loaded into memory.
type User struct {
	ID           string `json:"id"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

type RegisterRequest struct {
	Nome  string `json:"nome" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,maxbytes=72"`
}

type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Nome  string `json:"nome"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type MeResponse struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token     string `json:"token" validate:"required"`
	NovaSenha string `json:"novaSenha" validate:"required,maxbytes=72"`
}
