package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iamkaranroushan/grocery-application-backend/auth"
	userControllers "github.com/iamkaranroushan/grocery-application-backend/controllers/user"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, verifier auth.TokenVerifier) {
	authGroup := r.Group("/auth")
	{
		// Phone/OTP login via Firebase ID token
		authGroup.POST("/verify-otp", auth.VerifyOTPHandler(db, verifier))
		authGroup.POST("/logout", auth.LogoutHandler)

		// Password-based signup and login
		authGroup.POST("/signup", userControllers.Signup(db))
		authGroup.POST("/login", userControllers.Login(db))
	}
}
