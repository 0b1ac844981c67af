package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthenticator map[string]models.User

func (s stubAuthenticator) Authenticate(token string) (models.User, error) {
	u, ok := s[token]
	if !ok {
		return models.User{}, &database.Error{Kind: database.ErrInvalidToken, Message: "Invalid token"}
	}
	if !u.Active() {
		return models.User{}, &database.Error{Kind: database.ErrInactive, Message: "Inactive user"}
	}
	return u, nil
}

func TestAuthMiddleware(t *testing.T) {
	inactive := false
	auth := stubAuthenticator{
		"good":     {ID: 1, Role: models.RoleEditor, OrganizationID: 1},
		"disabled": {ID: 2, IsActive: &inactive},
	}

	var seen *models.User
	handler := AuthMiddleware(auth, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, "Not authenticated"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Not authenticated"},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"inactive user", "Bearer disabled", http.StatusUnauthorized, "Inactive user"},
		{"valid token", "Bearer good", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.message == "" {
				require.NotNil(t, seen)
				assert.Equal(t, 1, seen.ID)
				return
			}
			assert.Nil(t, seen)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["detail"])
			assert.Equal(t, "UNAUTHORIZED", body["code"])
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	auth := stubAuthenticator{
		"admin":  {ID: 1, Role: models.RoleAdmin},
		"editor": {ID: 2, Role: models.RoleEditor},
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := AuthMiddleware(auth, zap.NewNop())(RequireAdmin(ok))

	for token, want := range map[string]int{"admin": http.StatusOK, "editor": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, token)
	}

	rec := httptest.NewRecorder()
	RequireAdmin(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireUser(t *testing.T) {
	_, err := RequireUser(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.Error(t, err)
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("wildcard reflects origin with credentials", func(t *testing.T) {
		h := CORS(&config.Config{AllowCORS: true, AllowedOrigins: []string{"*"}})(next)
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("explicit origins", func(t *testing.T) {
		h := CORS(&config.Config{AllowCORS: true, AllowedOrigins: []string{"http://a.test"}})(next)
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://b.test")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disabled", func(t *testing.T) {
		h := CORS(&config.Config{AllowCORS: false})(next)
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRecovery(t *testing.T) {
	h := Recovery(&config.Config{Environment: "production"}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestNormalizeAndBaseURL(t *testing.T) {
	var base string
	h := Normalize()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		base = BaseURL(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "http://internal:8100/api/projects", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "http://internal:8100", base)

	req = httptest.NewRequest(http.MethodGet, "http://internal:8100/api/projects", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("X-Forwarded-Host", "studio.example.com")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "https://studio.example.com", base)
}

func TestMaxBodySize(t *testing.T) {
	var readErr error
	h := MaxBodySize(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 16)
		_, readErr = r.Body.Read(buf)
		if readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Error(t, readErr)
}
