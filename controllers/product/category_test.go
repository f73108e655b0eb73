package productcontroller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iamkaranroushan/grocery-application-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
	))
	return db
}

func ptr[T any](v T) *T { return &v }

func TestCreateCategoryRejectsDuplicateTopLevelName(t *testing.T) {
	db := setupTestDB(t)

	first, err := CreateCategory(db, "Dairy", "milk and milk products")
	require.NoError(t, err)
	assert.Nil(t, first.ParentCategoryID)

	_, err = CreateCategory(db, "Dairy", "another dairy")
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestCreateSubCategorySameNameUnderDifferentParents(t *testing.T) {
	db := setupTestDB(t)

	dairy, err := CreateCategory(db, "Dairy", "")
	require.NoError(t, err)
	snacks, err := CreateCategory(db, "Snacks", "")
	require.NoError(t, err)

	_, err = CreateSubCategory(db, "Organic", "", dairy.ID)
	require.NoError(t, err)

	// The pair (name, parent) is unique, not the bare name.
	sub, err := CreateSubCategory(db, "Organic", "", snacks.ID)
	require.NoError(t, err)
	require.NotNil(t, sub.ParentCategoryID)
	assert.Equal(t, snacks.ID, *sub.ParentCategoryID)

	_, err = CreateSubCategory(db, "Organic", "", dairy.ID)
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestCreateSubCategoryUnknownParent(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateSubCategory(db, "Organic", "", 999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateSubCategoryPartialPatch(t *testing.T) {
	db := setupTestDB(t)

	dairy, err := CreateCategory(db, "Dairy", "")
	require.NoError(t, err)
	sub, err := CreateSubCategory(db, "Cheese", "cheese.png", dairy.ID)
	require.NoError(t, err)

	updated, err := UpdateSubCategory(db, sub.ID, UpdateSubCategoryInput{Name: ptr("Paneer & Cheese")})
	require.NoError(t, err)
	assert.Equal(t, "Paneer & Cheese", updated.Name)
	assert.Equal(t, "cheese.png", updated.ImageURL, "an omitted field keeps its prior value")

	updated, err = UpdateSubCategory(db, sub.ID, UpdateSubCategoryInput{ImageURL: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "", updated.ImageURL, "an explicit empty string clears the field")

	_, err = UpdateSubCategory(db, dairy.ID, UpdateSubCategoryInput{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotSubCategory)
}

func TestDeleteSubCategoryCascadesToProducts(t *testing.T) {
	db := setupTestDB(t)

	dairy, err := CreateCategory(db, "Dairy", "")
	require.NoError(t, err)
	sub, err := CreateSubCategory(db, "Cheese", "", dairy.ID)
	require.NoError(t, err)

	for _, name := range []string{"Cheddar", "Gouda", "Mozzarella"} {
		_, err := CreateProduct(db, CreateProductRequest{
			Name:       name,
			CategoryID: sub.ID,
			IsActive:   true,
			Variants: []VariantInput{
				{Weight: "200g", Price: 150, MRP: 180, InStock: true},
			},
		})
		require.NoError(t, err)
	}

	require.NoError(t, DeleteSubCategory(db, sub.ID))

	var productCount, variantCount, categoryCount int64
	require.NoError(t, db.Model(&models.Product{}).Where("category_id = ?", sub.ID).Count(&productCount).Error)
	require.NoError(t, db.Model(&models.ProductVariant{}).Count(&variantCount).Error)
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", sub.ID).Count(&categoryCount).Error)
	assert.Equal(t, int64(0), productCount)
	assert.Equal(t, int64(0), variantCount)
	assert.Equal(t, int64(0), categoryCount)
}

func TestDeleteSubCategoryRejectsTopLevel(t *testing.T) {
	db := setupTestDB(t)

	dairy, err := CreateCategory(db, "Dairy", "")
	require.NoError(t, err)

	assert.ErrorIs(t, DeleteSubCategory(db, dairy.ID), ErrNotSubCategory)
	assert.ErrorIs(t, DeleteSubCategory(db, 999), ErrCategoryNotFound)
}

func TestUpdateAndDeleteCategory(t *testing.T) {
	db := setupTestDB(t)

	dairy, err := CreateCategory(db, "Dairy", "")
	require.NoError(t, err)

	renamed, err := UpdateCategory(db, dairy.ID, "Dairy & Eggs")
	require.NoError(t, err)
	assert.Equal(t, "Dairy & Eggs", renamed.Name)

	_, err = UpdateCategory(db, 999, "x")
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	require.NoError(t, DeleteCategory(db, dairy.ID))
	assert.ErrorIs(t, DeleteCategory(db, dairy.ID), ErrCategoryNotFound)
}
