package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exera-hr/jobdesk/backend/internal/config"
	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600

	h, err := NewHandler(cfg, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	return h
}

func signToken(t *testing.T, secret string, role string, expiresAt time.Time) string {
	t.Helper()

	claims := AuthClaims{
		Email: "user@exera.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMissingToken(t *testing.T) {
	h := newTestHandler(t)

	next := h.auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	rec := httptest.NewRecorder()
	next.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/job-descriptions", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/job-descriptions", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	next.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "non-bearer scheme counts as missing")
}

func TestAuthInvalidToken(t *testing.T) {
	h := newTestHandler(t)

	next := h.auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong key", signToken(t, "other-secret", "HR Manager", time.Now().Add(time.Hour))},
		{"expired", signToken(t, "test-secret", "HR Manager", time.Now().Add(-time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/job-descriptions", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			next.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestAuthValidToken(t *testing.T) {
	h := newTestHandler(t)

	var gotRole, gotSub string
	next := h.auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = r.Context().Value(RoleCtxKey).(string)
		gotSub = r.Context().Value(SubCtxKey).(string)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/job-descriptions", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "HR Manager", time.Now().Add(time.Hour)))
	next.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HR Manager", gotRole)
	assert.Equal(t, "1", gotSub)
}

func TestRequirePermission(t *testing.T) {
	h := newTestHandler(t)

	runWithRole := func(role string, capability domain.Capability) int {
		chain := h.auth(h.requirePermission(capability)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", role, time.Now().Add(time.Hour)))
		chain.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, runWithRole("IT Admin", domain.CapManageUsers))
	assert.Equal(t, http.StatusForbidden, runWithRole("HR Manager", domain.CapManageUsers))
	assert.Equal(t, http.StatusForbidden, runWithRole("HR Assistant", domain.CapApproveJobs))
	assert.Equal(t, http.StatusOK, runWithRole("HR Assistant", domain.CapPublishJobs))
	assert.Equal(t, http.StatusForbidden, runWithRole("Contractor", domain.CapCreateJobs))
}
