package userControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/iamkaranroushan/grocery-application-backend/auth"
	"github.com/iamkaranroushan/grocery-application-backend/models"
)

var (
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid user or password")
)

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// hydrate loads the user with the nested data the client renders after
// authentication.
func hydrate(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.
		Preload("Addresses").
		Preload("Cart.CartItems.ProductVariant.Product").
		Preload("Orders").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SignupUser creates a user and its cart in one transaction. A duplicate
// email reports ErrEmailTaken and writes nothing.
func SignupUser(db *gorm.DB, username, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = db.Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Username:     username,
			Email:        &email,
			PasswordHash: string(hash),
			Role:         models.RoleCustomer,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Cart{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, err
	}

	return hydrate(db, user.ID)
}

// LoginUser verifies the password and returns the hydrated user.
func LoginUser(db *gorm.DB, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return hydrate(db, user.ID)
}

// Signup handles POST /auth/signup.
func Signup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"token": nil, "user": nil, "error": "Invalid request: " + err.Error()})
			return
		}

		user, err := SignupUser(db, req.Username, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrEmailTaken) {
				c.JSON(http.StatusConflict, gin.H{"token": nil, "user": nil, "error": "User already exists with this email."})
				return
			}
			log.Printf("signup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"token": nil, "user": nil, "error": "Signup failed. Please try again."})
			return
		}

		token, err := auth.IssueSessionToken(user)
		if err != nil {
			log.Printf("failed to issue session token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"token": nil, "user": nil, "error": "Signup failed. Please try again."})
			return
		}

		auth.SetSessionCookie(c, token)
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user, "error": nil})
	}
}

// Login handles POST /auth/login.
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"token": nil, "user": nil, "error": "Invalid request: " + err.Error()})
			return
		}

		user, err := LoginUser(db, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrUserNotFound):
				c.JSON(http.StatusUnauthorized, gin.H{"token": nil, "user": nil, "error": "user not found."})
			case errors.Is(err, ErrInvalidCredentials):
				c.JSON(http.StatusUnauthorized, gin.H{"token": nil, "user": nil, "error": "invalid user or password."})
			default:
				log.Printf("login failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"token": nil, "user": nil, "error": "cannot login the user"})
			}
			return
		}

		token, err := auth.IssueSessionToken(user)
		if err != nil {
			log.Printf("failed to issue session token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"token": nil, "user": nil, "error": "cannot login the user"})
			return
		}

		auth.SetSessionCookie(c, token)
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user, "error": nil})
	}
}

// GetAllUsers handles GET /admin/users, optionally filtered by username.
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.User{})
		if username := c.Query("username"); username != "" {
			query = query.Where("username = ?", username)
		}

		var users []models.User
		if err := query.Find(&users).Error; err != nil {
			log.Printf("failed to fetch users: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}
