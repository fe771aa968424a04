package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sinclaire-white/vehicle-renting-server/internal/auth"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
)

type identityKey struct{}

// IdentityFrom returns the authenticated caller attached by Authenticate.
func IdentityFrom(ctx context.Context) (*auth.Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(*auth.Identity)
	return ident, ok
}

// WithIdentity is used by handler tests to inject a caller directly.
func WithIdentity(ctx context.Context, ident *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// Authenticate verifies the Bearer token and attaches the caller identity.
func Authenticate(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				deny(w, http.StatusUnauthorized, "No token provided")
				return
			}

			ident, err := auth.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				deny(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// RequireRole rejects callers whose role is not in the allowed set.
// Must run after Authenticate.
func RequireRole(roles ...account.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFrom(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			for _, role := range roles {
				if ident.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			deny(w, http.StatusForbidden, "Forbidden")
		})
	}
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success": false, "message": "` + msg + `"}`))
}
