package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"adventure_backend/internal/account"
	"adventure_backend/internal/avatar"
	"adventure_backend/internal/config"
	"adventure_backend/internal/profile"
	"adventure_backend/internal/reward"
	"adventure_backend/internal/search"
	"adventure_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type rejectAll struct{}

func (rejectAll) VerifyIDToken(context.Context, string) (*shared.VerifiedToken, error) {
	return nil, shared.ErrInvalidToken
}

func newTestRouter() *gin.Engine {
	cfg := &config.Config{GinMode: gin.TestMode}
	logger := zap.NewNop()
	handlers := Handlers{
		Account: account.NewHandler(nil, logger),
		Profile: profile.NewHandler(nil, logger),
		Avatar:  avatar.NewHandler(avatar.NewCatalog(cfg)),
		Reward:  reward.NewHandler(nil, logger),
		Search:  search.NewHandler(search.NewService(nil, cfg, logger), logger),
	}
	return NewRouter(cfg, logger, handlers, rejectAll{})
}

func TestRouter_PublicRoutes(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"UP"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/avatars", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "presets")
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	router := newTestRouter()
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/profile/me"},
		{http.MethodPatch, "/api/v1/profile/me"},
		{http.MethodGet, "/api/v1/rewards"},
		{http.MethodGet, "/api/v1/users/search?q=a"},
		{http.MethodPost, "/api/v1/auth/logout"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(r.method, r.path, nil)
			req.Header.Set("Authorization", "Bearer forged")
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
