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

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category with this name already exists")
	ErrNotSubCategory   = errors.New("category is not a subcategory")
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CreateSubCategoryRequest struct {
	Name             string `json:"name" binding:"required"`
	ImageURL         string `json:"imageUrl"`
	ParentCategoryID uint   `json:"parentCategoryId" binding:"required"`
}

// UpdateSubCategoryInput uses pointers so an omitted field keeps its prior
// value while an empty string explicitly clears it.
type UpdateSubCategoryInput struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"imageUrl"`
}

// CreateCategory creates a top-level category. (Name, nil parent) must be
// unique.
func CreateCategory(db *gorm.DB, name, description string) (*models.Category, error) {
	var existing models.Category
	err := db.Where("name = ? AND parent_category_id IS NULL", name).First(&existing).Error
	if err == nil {
		return nil, ErrCategoryExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := models.Category{Name: name, Description: description}
	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateSubCategory creates a category under a parent. The same name may
// exist under a different parent; the (name, parent) pair must be unique.
func CreateSubCategory(db *gorm.DB, name, imageURL string, parentID uint) (*models.Category, error) {
	var parent models.Category
	if err := db.First(&parent, parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	var existing models.Category
	err := db.Where("name = ? AND parent_category_id = ?", name, parentID).First(&existing).Error
	if err == nil {
		return nil, ErrCategoryExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subCategory := models.Category{
		Name:             name,
		ImageURL:         imageURL,
		ParentCategoryID: &parentID,
	}
	if err := db.Create(&subCategory).Error; err != nil {
		return nil, err
	}
	return &subCategory, nil
}

// UpdateSubCategory applies a partial patch to a subcategory.
func UpdateSubCategory(db *gorm.DB, id uint, input UpdateSubCategoryInput) (*models.Category, error) {
	var existing models.Category
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if existing.ParentCategoryID == nil {
		return nil, ErrNotSubCategory
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.ImageURL != nil {
		existing.ImageURL = *input.ImageURL
	}
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// DeleteSubCategory removes a subcategory and everything under it: variants,
// products, then the category itself, in one transaction. Top-level
// categories are rejected by this path.
func DeleteSubCategory(db *gorm.DB, id uint) error {
	var subCategory models.Category
	if err := db.Preload("Products").First(&subCategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	if subCategory.ParentCategoryID == nil {
		return ErrNotSubCategory
	}

	return db.Transaction(func(tx *gorm.DB) error {
		productIDs := make([]uint, 0, len(subCategory.Products))
		for _, p := range subCategory.Products {
			productIDs = append(productIDs, p.ID)
		}
		if len(productIDs) > 0 {
			if err := tx.Where("product_id IN ?", productIDs).
				Delete(&models.ProductVariant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("category_id = ?", id).
				Delete(&models.Product{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&subCategory).Error
	})
}

// UpdateCategory renames a category.
func UpdateCategory(db *gorm.DB, id uint, newName string) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	category.Name = newName
	if err := db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category row.
func DeleteCategory(db *gorm.DB, id uint) error {
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return db.Delete(&category).Error
}

// -------- Handlers --------

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": param + " must be a numeric id"})
		return 0, false
	}
	return uint(id), true
}

// GetCategories handles GET /categories: top-level categories with their
// subcategories, newest first.
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		err := db.Where("parent_category_id IS NULL").
			Preload("SubCategories").
			Order("created_at DESC").
			Find(&categories).Error
		if err != nil {
			log.Printf("failed to fetch categories: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func CreateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"category": nil, "error": "name is required"})
			return
		}

		category, err := CreateCategory(db, req.Name, req.Description)
		if err != nil {
			if errors.Is(err, ErrCategoryExists) {
				c.JSON(http.StatusConflict, gin.H{"category": nil, "error": "Category with this name already exists. Please choose another name."})
				return
			}
			log.Printf("failed to create category: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"category": nil, "error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"category": category, "error": nil})
	}
}

func UpdateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req struct {
			NewName string `json:"newName" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "newName is required", "category": nil})
			return
		}

		category, err := UpdateCategory(db, id, req.NewName)
		if err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found", "category": nil})
				return
			}
			log.Printf("failed to update category: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update category.", "category": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category updated successfully.", "category": category})
	}
}

func DeleteCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		if err := DeleteCategory(db, id); err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
				return
			}
			log.Printf("failed to delete category: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully"})
	}
}

func CreateSubCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSubCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"subCategory": nil, "error": "name and parentCategoryId are required"})
			return
		}

		subCategory, err := CreateSubCategory(db, req.Name, req.ImageURL, req.ParentCategoryID)
		if err != nil {
			switch {
			case errors.Is(err, ErrCategoryExists):
				c.JSON(http.StatusConflict, gin.H{"subCategory": nil, "error": "Subcategory with this name already exists under this parent category. Please provide another name."})
			case errors.Is(err, ErrCategoryNotFound):
				c.JSON(http.StatusNotFound, gin.H{"subCategory": nil, "error": "Parent category not found."})
			default:
				log.Printf("failed to create subcategory: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"subCategory": nil, "error": "Failed to create subcategory"})
			}
			return
		}
		c.JSON(http.StatusCreated, gin.H{"subCategory": subCategory, "error": nil})
	}
}

func UpdateSubCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var input UpdateSubCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"subCategory": nil, "error": "Invalid input"})
			return
		}

		subCategory, err := UpdateSubCategory(db, id, input)
		if err != nil {
			if errors.Is(err, ErrCategoryNotFound) || errors.Is(err, ErrNotSubCategory) {
				c.JSON(http.StatusNotFound, gin.H{"subCategory": nil, "error": "Subcategory not found or is not a subcategory."})
				return
			}
			log.Printf("failed to update subcategory: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"subCategory": nil, "error": "Failed to update subcategory."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"subCategory": subCategory, "error": nil})
	}
}

func DeleteSubCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		if err := DeleteSubCategory(db, id); err != nil {
			switch {
			case errors.Is(err, ErrCategoryNotFound):
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Subcategory not found."})
			case errors.Is(err, ErrNotSubCategory):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cannot delete a top-level category using this mutation."})
			default:
				log.Printf("failed to delete subcategory: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete subcategory and its products."})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "error": nil})
	}
}
