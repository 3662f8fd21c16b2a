package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"p9e.in/ascomp/handlers"
	"p9e.in/ascomp/middleware"
)

var secret = []byte("routes-test")

func router() http.Handler {
	return RegisterRoutes(Deps{
		Handler:   handlers.New(nil, zap.NewNop(), nil, handlers.Options{}),
		Log:       zap.NewNop(),
		JWTSecret: secret,
	})
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := middleware.GenerateToken(secret, "u-1", "Meera", role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRoutes(t *testing.T) {
	r := router()

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		code   int
	}{
		{"health", "GET", "/healthz", "", http.StatusOK},
		{"metrics", "GET", "/metrics", "", http.StatusOK},
		{"swagger", "GET", "/swagger/doc.json", "", http.StatusOK},
		{"no token", "GET", "/api/v1/rmas", "", http.StatusUnauthorized},
		{"viewer cannot write", "POST", "/api/v1/rmas", "viewer", http.StatusForbidden},
		{"fse cannot delete", "DELETE", "/api/v1/rmas/7f1c2a90-3b7e-4d55-9a0e-2d9e5c1b6f11", "fse", http.StatusForbidden},
		{"fse cannot edit sites", "POST", "/api/v1/sites", "fse", http.StatusForbidden},
		{"fse cannot bulk import", "POST", "/api/v1/ascomp-reports/import", "fse", http.StatusForbidden},
		{"tokens before id route", "GET", "/api/v1/ascomp-reports/tokens", "viewer", http.StatusOK},
		{"import template", "GET", "/api/v1/ascomp-reports/import/template", "viewer", http.StatusOK},
		{"non uuid id", "GET", "/api/v1/rmas/abc", "admin", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.role != "" {
				req.Header.Set("Authorization", token(t, tt.role))
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			assert.Equal(t, tt.code, rr.Code, rr.Body.String())
		})
	}
}

func TestProfile(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req.Header.Set("Authorization", token(t, "fse"))
	rr := httptest.NewRecorder()
	router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Name        string   `json:"name"`
		Role        string   `json:"role"`
		Permissions []string `json:"permissions"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "Meera", got.Name)
	assert.Contains(t, got.Permissions, "report:write")
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/rmas", nil)
	rr := httptest.NewRecorder()
	router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Header().Get("Access-Control-Allow-Methods"), "DELETE"))
}
