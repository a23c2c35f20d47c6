package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "testsecretkeyforjwtauthentication"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	token, err := issuer.Issue("6b1c2f7e-2f4c-4f57-9a55-0d1f8a3e8c11")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "6b1c2f7e-2f4c-4f57-9a55-0d1f8a3e8c11", userID)
}

func TestIssueSetsOneHourExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer(testSecret).WithClock(fixedClock(now))

	token, err := issuer.Issue("u1")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, now.Add(time.Hour), claims.ExpiresAt.Time.UTC())
	assert.Equal(t, now, claims.IssuedAt.Time.UTC())
}

func TestIssueRequiresUserID(t *testing.T) {
	_, err := NewTokenIssuer(testSecret).Issue("")
	assert.Error(t, err)
}

func TestVerifyMissing(t *testing.T) {
	_, err := NewTokenIssuer(testSecret).Verify("")
	assert.True(t, errors.Is(err, ErrTokenMissing))
}

func TestVerifyExpired(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token, err := NewTokenIssuer(testSecret).WithClock(fixedClock(issuedAt)).Issue("u1")
	require.NoError(t, err)

	later := NewTokenIssuer(testSecret).WithClock(fixedClock(issuedAt.Add(time.Hour + time.Second)))
	_, err = later.Verify(token)
	assert.True(t, errors.Is(err, ErrTokenExpired), "got %v", err)

	stillValid := NewTokenIssuer(testSecret).WithClock(fixedClock(issuedAt.Add(59 * time.Minute)))
	userID, err := stillValid.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestVerifyInvalidSignature(t *testing.T) {
	token, err := NewTokenIssuer("some-other-secret").Issue("u1")
	require.NoError(t, err)

	_, err = NewTokenIssuer(testSecret).Verify(token)
	assert.True(t, errors.Is(err, ErrTokenInvalid), "got %v", err)
}

func TestVerifyMalformed(t *testing.T) {
	_, err := NewTokenIssuer(testSecret).Verify("not.a.jwt")
	assert.True(t, errors.Is(err, ErrTokenInvalid), "got %v", err)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenIssuer(testSecret).Verify(token)
	assert.True(t, errors.Is(err, ErrTokenInvalid), "got %v", err)
}

func TestVerifyRequiresExpiryAndSubject(t *testing.T) {
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = NewTokenIssuer(testSecret).Verify(noExp)
	assert.True(t, errors.Is(err, ErrTokenInvalid), "got %v", err)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = NewTokenIssuer(testSecret).Verify(noSub)
	assert.True(t, errors.Is(err, ErrTokenInvalid), "got %v", err)
}
