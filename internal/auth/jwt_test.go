package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	a := NewJWTAuthenticator("test-secret", "coffeecheckin", "coffeecheckin", time.Hour)

	token, err := a.GenerateToken(42)
	require.NoError(t, err)

	parsed, err := a.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	id, err := UserID(parsed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	a := NewJWTAuthenticator("test-secret", "coffeecheckin", "coffeecheckin", time.Hour)
	a.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := a.GenerateToken(1)
	require.NoError(t, err)

	a.now = time.Now
	_, err = a.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTAuthenticator("secret-a", "coffeecheckin", "coffeecheckin", time.Hour)
	verifier := NewJWTAuthenticator("secret-b", "coffeecheckin", "coffeecheckin", time.Hour)

	token, err := issuer.GenerateToken(1)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongAudience(t *testing.T) {
	issuer := NewJWTAuthenticator("secret", "other-app", "coffeecheckin", time.Hour)
	verifier := NewJWTAuthenticator("secret", "coffeecheckin", "coffeecheckin", time.Hour)

	token, err := issuer.GenerateToken(1)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	a := NewJWTAuthenticator("secret", "coffeecheckin", "coffeecheckin", time.Hour)

	_, err := a.ValidateToken("not-a-token")
	assert.Error(t, err)
}
