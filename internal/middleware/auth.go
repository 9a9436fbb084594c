package middleware

import (
	"net/http"
	"strings"

	"github.com/chandragiri4649/milksync-sub000/internal/models"
	"github.com/chandragiri4649/milksync-sub000/internal/utils"
	"github.com/chandragiri4649/milksync-sub000/pkg/database"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and resolves the acting user
// behind it. Role gating runs against the user's current role in the
// database, not the claim, so a role change or deactivation takes effect on
// the next request. The resolved user is attached to the context; handlers
// read it instead of re-fetching, and distributor-role users also carry
// their distributor id for "mine" style lookups.
func AuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		var user models.User
		if err := database.DB.Preload("Role").Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User is inactive"})
			return
		}

		if len(allowedRoles) > 0 && !roleAllowed(user.Role.Name, allowedRoles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("role", user.Role.Name)
		c.Set("actingUser", &user)
		if user.DistributorID != nil {
			c.Set("distributorID", *user.DistributorID)
		}
		c.Next()
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
