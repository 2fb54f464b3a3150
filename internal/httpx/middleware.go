package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/accurateastro/astro-backend/internal/auth"
)

type ctxKey int

const claimsKey ctxKey = iota

type AuthMiddleware struct {
	Svc *auth.Service
}

// Authenticate rejects missing/invalid bearer tokens. Expired and forged
// tokens get the same message.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			fail(w, http.StatusUnauthorized, "Access token required")
			return
		}
		claims, err := m.Svc.Authenticate(token)
		if err != nil {
			fail(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFrom(r.Context())
		if claims == nil || !auth.HasRole(claims.Role, auth.RoleAdmin, auth.RoleSuperAdmin) {
			fail(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ClaimsFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey).(*auth.Claims)
	return c
}
