package auth

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iamkaranroushan/grocery-application-backend/models"
)

type verifyOTPRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// FindOrCreateUserByPhone looks a user up by phone number, creating it (with
// an empty cart, in one transaction) on first OTP verification.
func FindOrCreateUserByPhone(db *gorm.DB, phoneNumber string) (*models.User, error) {
	var user models.User
	err := db.Preload("Cart.CartItems").Preload("Addresses").
		Where("phone_number = ?", phoneNumber).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Username:    fmt.Sprintf("user%05d", rand.Intn(100000)),
			PhoneNumber: &phoneNumber,
			Role:        models.RoleCustomer,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Cart{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Cart.CartItems").Preload("Addresses").
		First(&user, user.ID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyOTPHandler handles POST /auth/verify-otp: the client presents the
// Firebase ID token it received after completing the phone OTP flow.
func VerifyOTPHandler(db *gorm.DB, verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID token is required"})
			return
		}

		phoneNumber, err := verifier.VerifyPhoneToken(c.Request.Context(), req.IDToken)
		if err != nil {
			log.Printf("token verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := FindOrCreateUserByPhone(db, phoneNumber)
		if err != nil {
			log.Printf("failed to find or create user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		token, err := IssueSessionToken(user)
		if err != nil {
			log.Printf("failed to issue session token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		SetSessionCookie(c, token)
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  user,
		})
	}
}

// LogoutHandler handles POST /auth/logout.
func LogoutHandler(c *gin.Context) {
	ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully."})
}
