// Package auth issues and resolves bearer tokens and hashes passwords.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shashiranjanraj/madad/config"
	"golang.org/x/crypto/bcrypt"
)

func secret() []byte {
	return []byte(config.JWTSecret())
}

func signingMethod() jwt.SigningMethod {
	switch config.JWTAlgo() {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}

// IssueToken creates a signed JWT whose subject is the user's id.
// Lifetime comes from ACCESS_TOKEN_EXPIRE_MINUTES (default 30 days).
func IssueToken(subject string) (string, error) {
	now := time.Now()
	lifetime := time.Duration(config.TokenLifetimeMinutes()) * time.Minute

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
	}
	return jwt.NewWithClaims(signingMethod(), claims).SignedString(secret())
}

// ResolveToken verifies signature and expiry and returns the subject id.
// Every failure mode (expired, malformed, bad signature, wrong algorithm)
// uniformly yields ("", false) so callers cannot distinguish them.
func ResolveToken(t string) (string, bool) {
	token, err := jwt.ParseWithClaims(t, &jwt.RegisteredClaims{},
		func(tok *jwt.Token) (interface{}, error) {
			return secret(), nil
		},
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
	)
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
