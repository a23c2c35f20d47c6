package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tarefas/internal/auth"
)

type ctxKey string

const CtxUserID ctxKey = "user_id"

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// JWTAuth rejects requests without a bearer token with 401 and requests with
// an invalid or expired one with 403. On success the user id is stored in
// the request context under CtxUserID.
func JWTAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r.Header.Get("Authorization"))

			userID, err := verifier.Verify(tokenString)
			if err != nil {
				if errors.Is(err, auth.ErrTokenMissing) {
					writeAuthError(w, http.StatusUnauthorized, "unauthenticated", "Access token required")
					return
				}
				writeAuthError(w, http.StatusForbidden, "forbidden", "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the id stored by JWTAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxUserID).(string)
	return id, ok && id != ""
}

// bearerToken extracts the credential of "Bearer <token>". Any other shape
// yields "".
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	})
}
