package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iamkaranroushan/grocery-application-backend/auth"
	"github.com/iamkaranroushan/grocery-application-backend/realtime"
)

// SetupRoutes is the single entry point that wires up the auth, user, admin
// and order route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *realtime.Hub, verifier auth.TokenVerifier) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, verifier)

	// Customer routes (session-protected)
	SetupUserRoutes(r, db)

	// Admin routes (session + role gate)
	SetupAdminRoutes(r, db)

	// Order placement and the realtime channel
	SetupOrderRoutes(r, db, hub)
}
