package addressControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iamkaranroushan/grocery-application-backend/models"
)

var ErrAddressNotFound = errors.New("address not found")

type CreateAddressRequest struct {
	UserID        uint   `json:"userId" binding:"required"`
	StreetAddress string `json:"streetAddress" binding:"required"`
	Landmark      string `json:"landmark"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state" binding:"required"`
	PostalCode    string `json:"postalCode" binding:"required"`
}

type UpdateAddressInput struct {
	StreetAddress *string `json:"streetAddress"`
	Landmark      *string `json:"landmark"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	PostalCode    *string `json:"postalCode"`
}

// CreateAddress adds a shipping address for a user.
func CreateAddress(db *gorm.DB, req CreateAddressRequest) (*models.Address, error) {
	address := models.Address{
		UserID:        req.UserID,
		StreetAddress: req.StreetAddress,
		Landmark:      req.Landmark,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.PostalCode,
	}
	if err := db.Create(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// UpdateAddress applies a partial patch to an address.
func UpdateAddress(db *gorm.DB, id uint, input UpdateAddressInput) (*models.Address, error) {
	var address models.Address
	if err := db.First(&address, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}

	if input.StreetAddress != nil {
		address.StreetAddress = *input.StreetAddress
	}
	if input.Landmark != nil {
		address.Landmark = *input.Landmark
	}
	if input.City != nil {
		address.City = *input.City
	}
	if input.State != nil {
		address.State = *input.State
	}
	if input.PostalCode != nil {
		address.ZipCode = *input.PostalCode
	}

	if err := db.Save(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// -------- Handlers --------

func CreateAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"address": nil, "error": "Invalid input: " + err.Error()})
			return
		}

		address, err := CreateAddress(db, req)
		if err != nil {
			log.Printf("failed to create address: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"address": nil, "error": "Failed to create address"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"address": address, "error": nil})
	}
}

// GetAllAddresses handles GET /admin/addresses.
func GetAllAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var addresses []models.Address
		if err := db.Find(&addresses).Error; err != nil {
			log.Printf("failed to fetch addresses: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses."})
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

// GetUserAddresses handles GET /user/addresses/:userId.
func GetUserAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId must be a numeric id"})
			return
		}

		var addresses []models.Address
		if err := db.Where("user_id = ?", userID).Find(&addresses).Error; err != nil {
			log.Printf("failed to fetch addresses for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses."})
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

func UpdateAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"address": nil, "error": "id must be a numeric id"})
			return
		}

		var input UpdateAddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"address": nil, "error": "Invalid input: " + err.Error()})
			return
		}

		address, err := UpdateAddress(db, uint(id), input)
		if err != nil {
			if errors.Is(err, ErrAddressNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"address": nil, "error": "Address not found."})
				return
			}
			log.Printf("failed to update address: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"address": nil, "error": "Failed to update address."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"address": address, "error": nil})
	}
}
