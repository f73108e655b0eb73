package productcontroller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iamkaranroushan/grocery-application-backend/models"
)

func seedProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	category, err := CreateCategory(db, "Staples", "")
	require.NoError(t, err)

	product, err := CreateProduct(db, CreateProductRequest{
		Name:        "Basmati Rice",
		Description: "long grain",
		CategoryID:  category.ID,
		ImageURL:    "rice.png",
		IsActive:    true,
		Variants: []VariantInput{
			{Weight: "1kg", Price: 120, MRP: 140, InStock: true},
			{Weight: "5kg", Price: 550, MRP: 650, InStock: true},
		},
	})
	require.NoError(t, err)
	return product
}

func TestCreateProductWithVariants(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)

	require.Len(t, product.Variants, 2)
	for _, v := range product.Variants {
		assert.Equal(t, product.ID, v.ProductID)
		assert.NotZero(t, v.ID)
	}
}

func TestListProductsFiltersByCategory(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)

	other, err := CreateCategory(db, "Snacks", "")
	require.NoError(t, err)
	_, err = CreateProduct(db, CreateProductRequest{
		Name:       "Banana Chips",
		CategoryID: other.ID,
		IsActive:   true,
	})
	require.NoError(t, err)

	all, err := ListProducts(db, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := ListProducts(db, &product.CategoryID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Basmati Rice", filtered[0].Name)
	assert.Len(t, filtered[0].Variants, 2)
}

func TestUpdateProductPartialPatchKeepsOmittedFields(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)

	updated, err := UpdateProduct(db, product.ID, UpdateProductInput{
		Name:     ptr("Basmati Rice Premium"),
		IsActive: ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Basmati Rice Premium", updated.Name)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "long grain", updated.Description)
	assert.Equal(t, "rice.png", updated.ImageURL)
	assert.Len(t, updated.Variants, 2, "a patch with no variant entries leaves variants alone")
}

func TestUpdateProductVariantUpsertAndDelete(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)
	keep, drop := product.Variants[0], product.Variants[1]

	updated, err := UpdateProduct(db, product.ID, UpdateProductInput{
		Variants: []VariantPatch{
			{ID: &keep.ID, Price: ptr(99.0)},
			{Weight: ptr("10kg"), Price: ptr(1050.0), MRP: ptr(1200.0), InStock: ptr(true)},
		},
		DeletedVariantIDs: []uint{drop.ID},
	})
	require.NoError(t, err)
	require.Len(t, updated.Variants, 2)

	byWeight := map[string]models.ProductVariant{}
	for _, v := range updated.Variants {
		byWeight[v.Weight] = v
	}

	patched, ok := byWeight["1kg"]
	require.True(t, ok)
	assert.Equal(t, keep.ID, patched.ID)
	assert.InDelta(t, 99.0, patched.Price, 0.0001)
	assert.InDelta(t, 140.0, patched.MRP, 0.0001, "unpatched variant fields survive")

	created, ok := byWeight["10kg"]
	require.True(t, ok)
	assert.NotEqual(t, drop.ID, created.ID)

	var dropCount int64
	require.NoError(t, db.Model(&models.ProductVariant{}).Where("id = ?", drop.ID).Count(&dropCount).Error)
	assert.Equal(t, int64(0), dropCount)
}

func TestUpdateProductRollsBackOnBadVariantID(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)

	_, err := UpdateProduct(db, product.ID, UpdateProductInput{
		Name: ptr("should not stick"),
		Variants: []VariantPatch{
			{ID: ptr(uint(999)), Price: ptr(1.0)},
		},
	})
	require.Error(t, err)

	var fresh models.Product
	require.NoError(t, db.First(&fresh, product.ID).Error)
	assert.Equal(t, "Basmati Rice", fresh.Name, "a failed variant patch rolls back the field patch too")
}

func TestUpdateProductUnknownProduct(t *testing.T) {
	db := setupTestDB(t)

	_, err := UpdateProduct(db, 999, UpdateProductInput{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProductRemovesVariants(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)

	require.NoError(t, DeleteProduct(db, product.ID))

	var variantCount int64
	require.NoError(t, db.Model(&models.ProductVariant{}).Where("product_id = ?", product.ID).Count(&variantCount).Error)
	assert.Equal(t, int64(0), variantCount)

	assert.ErrorIs(t, DeleteProduct(db, product.ID), ErrProductNotFound)
}
