package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/accurateastro/astro-backend/internal/auth"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	r := NewRouter(zap.NewNop(), []string{"*"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestNotFoundEnvelope(t *testing.T) {
	r := NewRouter(zap.NewNop(), []string{"*"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "/api/nope", body["path"])
}

func TestAuthMiddleware(t *testing.T) {
	svc := auth.NewService(nil, "test-secret", time.Hour, nil)
	mw := &AuthMiddleware{Svc: svc}

	r := NewRouter(zap.NewNop(), []string{"*"})
	r.Group(func(g chi.Router) {
		g.Use(mw.Authenticate, mw.RequireAdmin)
		g.Get("/api/protected", func(w http.ResponseWriter, req *http.Request) {
			claims := ClaimsFrom(req.Context())
			writeJSON(w, http.StatusOK, envelope{"success": true, "sub": claims.Sub})
		})
	})

	get := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := get("")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token required", decodeBody(t, rec)["message"])

	rec = get("garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	adminToken, err := auth.CreateAccessToken([]byte("test-secret"),
		&auth.Admin{ID: "adm-1", Username: "a", Role: auth.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	rec = get(adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "adm-1", decodeBody(t, rec)["sub"])

	viewerToken, err := auth.CreateAccessToken([]byte("test-secret"),
		&auth.Admin{ID: "v-1", Username: "v", Role: "viewer"}, time.Hour)
	require.NoError(t, err)
	rec = get(viewerToken)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
