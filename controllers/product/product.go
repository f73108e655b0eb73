package productcontroller

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iamkaranroushan/grocery-application-backend/models"
)

var ErrProductNotFound = errors.New("product not found")

type VariantInput struct {
	Weight  string  `json:"weight" binding:"required"`
	Price   float64 `json:"price" binding:"required"`
	MRP     float64 `json:"mrp"`
	InStock bool    `json:"inStock"`
}

type CreateProductRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	CategoryID  uint           `json:"categoryId" binding:"required"`
	ImageURL    string         `json:"imageUrl"`
	IsActive    bool           `json:"isActive"`
	Variants    []VariantInput `json:"variants"`
}

// VariantPatch is an id-keyed upsert entry: a present ID updates that
// variant, an absent ID creates a new one. Pointer fields distinguish
// "leave unchanged" from an explicit value.
type VariantPatch struct {
	ID      *uint    `json:"id"`
	Weight  *string  `json:"weight"`
	Price   *float64 `json:"price"`
	MRP     *float64 `json:"mrp"`
	InStock *bool    `json:"inStock"`
}

// UpdateProductInput is a partial patch: omitted fields keep prior values.
type UpdateProductInput struct {
	Name              *string        `json:"name"`
	Description       *string        `json:"description"`
	ImageURL          *string        `json:"imageUrl"`
	IsActive          *bool          `json:"isActive"`
	Variants          []VariantPatch `json:"variants"`
	DeletedVariantIDs []uint         `json:"deletedVariantIds"`
}

// ListProducts returns products with variants, optionally filtered by
// category, oldest first.
func ListProducts(db *gorm.DB, categoryID *uint) ([]models.Product, error) {
	query := db.Preload("Variants").Order("created_at ASC")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a product together with its initial variants.
func CreateProduct(db *gorm.DB, req CreateProductRequest) (*models.Product, error) {
	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{
			Weight:  v.Weight,
			Price:   v.Price,
			MRP:     v.MRP,
			InStock: v.InStock,
		})
	}
	if err := db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies the field patch, the variant deletions and the
// variant upserts as a single atomic unit: a failure partway through rolls
// everything back.
func UpdateProduct(db *gorm.DB, id uint, input UpdateProductInput) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if len(input.DeletedVariantIDs) > 0 {
			if err := tx.Where("id IN ? AND product_id = ?", input.DeletedVariantIDs, id).
				Delete(&models.ProductVariant{}).Error; err != nil {
				return err
			}
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.ImageURL != nil {
			product.ImageURL = *input.ImageURL
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		product.Variants = nil
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		for _, patch := range input.Variants {
			if patch.ID != nil {
				var variant models.ProductVariant
				if err := tx.Where("id = ? AND product_id = ?", *patch.ID, id).
					First(&variant).Error; err != nil {
					return err
				}
				if patch.Weight != nil {
					variant.Weight = *patch.Weight
				}
				if patch.Price != nil {
					variant.Price = *patch.Price
				}
				if patch.MRP != nil {
					variant.MRP = *patch.MRP
				}
				if patch.InStock != nil {
					variant.InStock = *patch.InStock
				}
				if err := tx.Save(&variant).Error; err != nil {
					return err
				}
				continue
			}

			variant := models.ProductVariant{ProductID: id}
			if patch.Weight != nil {
				variant.Weight = *patch.Weight
			}
			if patch.Price != nil {
				variant.Price = *patch.Price
			}
			if patch.MRP != nil {
				variant.MRP = *patch.MRP
			}
			if patch.InStock != nil {
				variant.InStock = *patch.InStock
			}
			if err := tx.Create(&variant).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var final models.Product
	if err := db.Preload("Variants").First(&final, id).Error; err != nil {
		return nil, err
	}
	return &final, nil
}

// DeleteProduct removes a product and its variants in one transaction.
func DeleteProduct(db *gorm.DB, id uint) error {
	var product models.Product
	if err := db.Preload("Variants").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if len(product.Variants) > 0 {
			if err := tx.Where("product_id = ?", id).
				Delete(&models.ProductVariant{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

// -------- Handlers --------

func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryID *uint
		if raw := c.Query("categoryId"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "categoryId must be a numeric id"})
				return
			}
			id := uint(parsed)
			categoryID = &id
		}

		products, err := ListProducts(db, categoryID)
		if err != nil {
			log.Printf("failed to fetch products: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func CreateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"product": nil, "error": "Invalid input: " + err.Error()})
			return
		}

		product, err := CreateProduct(db, req)
		if err != nil {
			log.Printf("failed to create product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"product": nil, "error": "Failed to create product."})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"product": product, "error": nil})
	}
}

func UpdateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"product": nil, "error": "Invalid input: " + err.Error()})
			return
		}

		product, err := UpdateProduct(db, id, input)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"product": nil, "error": "Product not found."})
				return
			}
			log.Printf("failed to update product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"product": nil, "error": "Failed to update product."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product, "error": nil})
	}
}

func DeleteProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		if err := DeleteProduct(db, id); err != nil {
			if errors.Is(err, ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found."})
				return
			}
			log.Printf("failed to delete product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete product."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "error": nil})
	}
}
