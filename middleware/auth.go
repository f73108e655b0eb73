package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iamkaranroushan/grocery-application-backend/auth"
	"github.com/iamkaranroushan/grocery-application-backend/models"
)

const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "role"
)

var errNoIdentity = errors.New("no authenticated user in context")

// ValidateToken accepts the session either as the jwtToken cookie set at
// login or as an Authorization bearer header, and stores the verified
// identity in the request context.
func ValidateToken(c *gin.Context) {
	tokenString := ""
	if cookie, err := c.Cookie(auth.SessionCookieName); err == nil {
		tokenString = cookie
	}
	if tokenString == "" {
		header := c.GetHeader("Authorization")
		if after, ok := strings.CutPrefix(header, "Bearer "); ok {
			tokenString = after
		} else {
			tokenString = header
		}
	}
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
		c.Abort()
		return
	}

	claims, err := auth.VerifySessionToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	userID, ok := claims["id"].(float64)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		c.Abort()
		return
	}
	role, _ := claims["role"].(string)

	c.Set(ContextUserIDKey, uint(userID))
	c.Set(ContextRoleKey, role)
	c.Next()
}

// RequireAdmin gates admin-only routes. Must run after ValidateToken.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get(ContextRoleKey)
	if !exists || role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		c.Abort()
		return
	}
	c.Next()
}

// CurrentUser reads the verified identity placed in the context by
// ValidateToken.
func CurrentUser(c *gin.Context) (uint, string, error) {
	idVal, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, "", errNoIdentity
	}
	id, ok := idVal.(uint)
	if !ok {
		return 0, "", errNoIdentity
	}
	role, _ := c.Get(ContextRoleKey)
	roleStr, _ := role.(string)
	return id, roleStr, nil
}
