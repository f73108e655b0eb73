package cartControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iamkaranroushan/grocery-application-backend/models"
)

var (
	ErrCartNotFound     = errors.New("cart not exist")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be greater than 0")
)

type AddToCartRequest struct {
	CartID           uint `json:"cartId" binding:"required"`
	ProductVariantID uint `json:"productVariantId" binding:"required"`
	Quantity         int  `json:"quantity" binding:"required"`
}

type UpdateQuantityRequest struct {
	CartItemID uint `json:"cartItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"` // signed delta
}

// AddToCart upserts a cart item for (cart, variant). An existing row has the
// quantity added to it, so repeated calls accumulate. The upsert is a single
// atomic increment against the composite unique index, so two concurrent
// adds for a new pair cannot both take the create branch.
func AddToCart(db *gorm.DB, cartID, variantID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var cart models.Cart
	if err := db.First(&cart, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	var variant models.ProductVariant
	if err := db.First(&variant, variantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	item := models.CartItem{
		CartID:           cartID,
		ProductVariantID: variantID,
		Quantity:         quantity,
		AddedAt:          time.Now(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_variant_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", quantity),
			"added_at": time.Now(),
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}

	// Re-read: on the conflict path the returned struct holds the submitted
	// quantity, not the accumulated one.
	if err := db.Where("cart_id = ? AND product_variant_id = ?", cartID, variantID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateQuantity applies a signed delta to a cart item. A resulting quantity
// of zero or below deletes the row and reports zero; a cart item is never
// persisted at or below zero.
func UpdateQuantity(db *gorm.DB, cartItemID uint, delta int) (int, error) {
	var updated int
	err := db.Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := tx.First(&item, cartItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}

		newQuantity := item.Quantity + delta
		if newQuantity <= 0 {
			updated = 0
			return tx.Delete(&item).Error
		}

		item.Quantity = newQuantity
		updated = newQuantity
		return tx.Save(&item).Error
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// DeleteCartItem removes a single cart item; an absent target reports
// not-found rather than failing.
func DeleteCartItem(db *gorm.DB, cartItemID uint) error {
	result := db.Delete(&models.CartItem{}, cartItemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// ClearCartItems empties a cart. Clearing an already-empty cart succeeds.
func ClearCartItems(db *gorm.DB, cartID uint) error {
	var cart models.Cart
	if err := db.First(&cart, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		return err
	}
	return db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// GetCart returns the hydrated cart: items with their variant and product.
func GetCart(db *gorm.DB, cartID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("CartItems.ProductVariant.Product").First(&cart, cartID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// -------- Handlers --------

func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"cartItem": nil, "error": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddToCart(db, req.CartID, req.ProductVariantID, req.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, ErrCartNotFound):
				c.JSON(http.StatusNotFound, gin.H{"cartItem": nil, "error": "Cart not exist"})
			case errors.Is(err, ErrVariantNotFound):
				c.JSON(http.StatusNotFound, gin.H{"cartItem": nil, "error": "variant not found"})
			case errors.Is(err, ErrInvalidQuantity):
				c.JSON(http.StatusBadRequest, gin.H{"cartItem": nil, "error": "quantity must be greater than 0"})
			default:
				log.Printf("failed to add to cart: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"cartItem": nil, "error": "Failed to add product to cart."})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"cartItem": item, "error": nil})
	}
}

func UpdateQuantityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error(), "updatedQuantity": 0})
			return
		}

		quantity, err := UpdateQuantity(db, req.CartItemID, req.Quantity)
		if err != nil {
			if errors.Is(err, ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found.", "updatedQuantity": 0})
				return
			}
			log.Printf("failed to update cart quantity: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating cart quantity.", "updatedQuantity": 0})
			return
		}

		message := "Cart quantity updated successfully"
		if quantity == 0 {
			message = "Cart item removed successfully"
		}
		c.JSON(http.StatusOK, gin.H{"message": message, "updatedQuantity": quantity})
	}
}

func DeleteCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("cartItemId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "cartItemId must be a numeric id"})
			return
		}

		if err := DeleteCartItem(db, uint(id)); err != nil {
			if errors.Is(err, ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Cart item not found."})
				return
			}
			log.Printf("failed to delete cart item: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete cart item."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "error": nil})
	}
}

func ClearCartItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("cartId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "cartId must be a numeric id"})
			return
		}

		if err := ClearCartItems(db, uint(id)); err != nil {
			if errors.Is(err, ErrCartNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Cart not found."})
				return
			}
			log.Printf("failed to clear cart: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to clear cart items."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "error": "Cart items cleared successfully."})
	}
}

func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("cartId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"cart": nil, "error": "cartId must be a numeric id"})
			return
		}

		cart, err := GetCart(db, uint(id))
		if err != nil {
			if errors.Is(err, ErrCartNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"cart": nil, "error": "Cart not exist"})
				return
			}
			log.Printf("failed to fetch cart: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"cart": nil, "error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart, "error": nil})
	}
}
