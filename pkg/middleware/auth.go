package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/madad/pkg/auth"
	"github.com/shashiranjanraj/madad/pkg/response"
)

// Identity is the authenticated caller placed in the request context.
type Identity struct {
	UserID string
	Role   string
}

type identityKey struct{}

// IdentityResolver confirms that a token subject still exists and returns
// its identity. Returning false rejects the request with a 401.
type IdentityResolver func(ctx context.Context, subject string) (Identity, bool)

// Auth returns middleware that requires a valid bearer token whose subject
// resolves to a live user. All failure modes produce the same 401.
func Auth(resolve IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
				response.Unauthorized(w)
				return
			}

			token := strings.TrimSpace(header[len("bearer "):])
			subject, ok := auth.ResolveToken(token)
			if !ok {
				response.Unauthorized(w)
				return
			}

			identity, ok := resolve(r.Context(), subject)
			if !ok {
				response.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromCtx returns the authenticated identity, if any.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// UserIDFromCtx returns the authenticated user's id, if any.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := IdentityFromCtx(ctx)
	return id.UserID, ok
}

// RoleFromCtx returns the authenticated user's role, if any.
func RoleFromCtx(ctx context.Context) (string, bool) {
	id, ok := IdentityFromCtx(ctx)
	return id.Role, ok
}
