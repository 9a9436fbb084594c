package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chandragiri4649/milksync-sub000/config"
	"github.com/chandragiri4649/milksync-sub000/internal/middleware"
	"github.com/chandragiri4649/milksync-sub000/internal/models"
	"github.com/chandragiri4649/milksync-sub000/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	config.AppConfig = &config.Config{
		Server: config.ServerConfig{JWTSecret: "test-secret", JWTExpirationHours: 1},
	}
	r := protectedRouter()

	request := func(authHeader string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request("").Code)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request("Basic dXNlcjpwYXNz").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request("Bearer not-a-token").Code)
	})

	t.Run("expired token", func(t *testing.T) {
		config.AppConfig.Server.JWTExpirationHours = -1
		token, err := utils.GenerateToken(1, models.RoleAdmin)
		require.NoError(t, err)
		config.AppConfig.Server.JWTExpirationHours = 1

		assert.Equal(t, http.StatusUnauthorized, request("Bearer "+token).Code)
	})
}
