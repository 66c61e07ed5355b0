package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ortprep_backend/internal/config"
	"ortprep_backend/internal/model"
	"ortprep_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestRouter(cfg *config.Config, roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/", AuthMiddleware(cfg))
	if len(roles) > 0 {
		group.Use(RoleMiddleware(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})
	return router
}

func tokenFor(t *testing.T, cfg *config.Config, role model.UserRole) string {
	t.Helper()
	user := &model.User{BaseModel: model.BaseModel{ID: 5}, Email: "u@example.com", Role: role}
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "secret"}}
	router := authTestRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "secret"}}
	router := authTestRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, model.Student))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":5`)
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "secret"}}
	other := &config.Config{JWT: config.JWTConfig{Secret: "other"}}
	router := authTestRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, other, model.Student))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleMiddlewareForbidsStudentOnAdminRoute(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "secret"}}
	router := authTestRouter(cfg, model.Admin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, model.Student))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleMiddlewareAdminBypass(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "secret"}}
	router := authTestRouter(cfg, model.Student)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, model.Admin))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
