package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"optical-booking-server/internal/config"
	"optical-booking-server/internal/models"
	"optical-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "access-secret",
		JWTRefreshSecret:          "refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 168,
	}
}

func issueToken(t *testing.T, cfg *config.Config, role models.Role) string {
	t.Helper()
	user := &models.User{
		BaseModel:      models.BaseModel{ID: "user-1"},
		OrganizationID: "org-1",
		Role:           role,
	}
	accessToken, _, err := utils.GenerateTokens(user, cfg)
	require.NoError(t, err)
	return accessToken
}

func TestAuthMiddlewareSetsContextKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := authTestConfig()

	router := gin.New()
	router.Use(AuthMiddleware(cfg))
	router.GET("/me", func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		role, _ := GetUserRoleFromContext(c)
		orgID, _ := GetOrganizationIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role, "organizationId": orgID})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, cfg, models.RoleDoctor))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "org-1")
	assert.Contains(t, w.Body.String(), string(models.RoleDoctor))
}

func TestAuthMiddlewareRejectsMissingOrBadTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := authTestConfig()

	router := gin.New()
	router.Use(AuthMiddleware(cfg))
	router.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRoleAuthMiddlewareGuardsByRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := authTestConfig()

	router := gin.New()
	router.Use(AuthMiddleware(cfg))
	admin := router.Group("", RoleAuthMiddleware(models.RoleAdmin, models.RoleSuperAdmin))
	admin.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(role models.Role) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, cfg, role))
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do(models.RoleAdmin))
	assert.Equal(t, http.StatusOK, do(models.RoleSuperAdmin))
	assert.Equal(t, http.StatusForbidden, do(models.RoleDoctor))
	assert.Equal(t, http.StatusForbidden, do(models.RolePatient))
}
