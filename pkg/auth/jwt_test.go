package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/madad/config"
	"github.com/shashiranjanraj/madad/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.IssueToken("64f1c0ffee0000000000aaaa")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, ok := auth.ResolveToken(token)
	assert.True(t, ok)
	assert.Equal(t, "64f1c0ffee0000000000aaaa", subject)
}

func TestResolveRejectsExpired(t *testing.T) {
	// Craft an already-expired token signed with the live secret.
	claims := jwt.RegisteredClaims{
		Subject:   "64f1c0ffee0000000000aaaa",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.JWTSecret()))
	require.NoError(t, err)

	_, ok := auth.ResolveToken(expired)
	assert.False(t, ok)
}

func TestResolveRejectsTampered(t *testing.T) {
	token, err := auth.IssueToken("64f1c0ffee0000000000aaaa")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := token[:len(token)-2] + "xx"
	_, ok := auth.ResolveToken(tampered)
	assert.False(t, ok)
}

func TestResolveRejectsWrongKey(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "64f1c0ffee0000000000aaaa",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("not-the-real-secret"))
	require.NoError(t, err)

	_, ok := auth.ResolveToken(forged)
	assert.False(t, ok)
}

func TestResolveRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "abc", "a.b.c"} {
		_, ok := auth.ResolveToken(tok)
		assert.False(t, ok, "token %q should not resolve", tok)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, auth.CheckPassword(hash, "secret1"))
	assert.False(t, auth.CheckPassword(hash, "secret2"))
	assert.False(t, auth.CheckPassword("", "secret1"))
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	h2, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
