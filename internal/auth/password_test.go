package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordIsSaltedAndVerifiable(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	defer func() { PasswordCost = bcrypt.DefaultCost }()

	first, err := HashPassword("s3cr3t")
	require.NoError(t, err)
	second, err := HashPassword("s3cr3t")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "s3cr3t")
	assert.True(t, CheckPassword("s3cr3t", first))
	assert.True(t, CheckPassword("s3cr3t", second))
	assert.False(t, CheckPassword("wrong", first))
}

func TestHashPasswordTooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestCheckPasswordGarbageHash(t *testing.T) {
	assert.False(t, CheckPassword("s3cr3t", "not-a-bcrypt-hash"))
}
