package cartControllers

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
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func seedCartFixtures(t *testing.T, db *gorm.DB) (models.Cart, models.ProductVariant, models.ProductVariant) {
	t.Helper()

	category := models.Category{Name: "Dairy"}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		Name:       "Paneer",
		CategoryID: category.ID,
		IsActive:   true,
		Variants: []models.ProductVariant{
			{Weight: "200g", Price: 90, MRP: 100, InStock: true},
			{Weight: "500g", Price: 210, MRP: 240, InStock: true},
		},
	}
	require.NoError(t, db.Create(&product).Error)

	cart := models.Cart{UserID: 1}
	require.NoError(t, db.Create(&cart).Error)

	return cart, product.Variants[0], product.Variants[1]
}

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	db := setupTestDB(t)
	cart, variant, _ := seedCartFixtures(t, db)

	item, err := AddToCart(db, cart.ID, variant.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = AddToCart(db, cart.ID, variant.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_variant_id = ?", cart.ID, variant.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "repeated adds must not create a second row")
}

func TestAddToCartDistinctVariantsGetDistinctRows(t *testing.T) {
	db := setupTestDB(t)
	cart, first, second := seedCartFixtures(t, db)

	_, err := AddToCart(db, cart.ID, first.ID, 1)
	require.NoError(t, err)
	_, err = AddToCart(db, cart.ID, second.ID, 4)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	cart, variant, _ := seedCartFixtures(t, db)

	_, err := AddToCart(db, cart.ID, variant.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = AddToCart(db, cart.ID, variant.ID, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAddToCartUnknownCartOrVariant(t *testing.T) {
	db := setupTestDB(t)
	cart, variant, _ := seedCartFixtures(t, db)

	_, err := AddToCart(db, 999, variant.ID, 1)
	assert.ErrorIs(t, err, ErrCartNotFound)

	_, err = AddToCart(db, cart.ID, 999, 1)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestUpdateQuantityAppliesSignedDelta(t *testing.T) {
	db := setupTestDB(t)
	cart, variant, _ := seedCartFixtures(t, db)

	item, err := AddToCart(db, cart.ID, variant.ID, 5)
	require.NoError(t, err)

	quantity, err := UpdateQuantity(db, item.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, 3, quantity)

	quantity, err = UpdateQuantity(db, item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, quantity)
}

func TestUpdateQuantityToZeroDeletesRow(t *testing.T) {
	db := setupTestDB(t)
	cart, variant, _ := seedCartFixtures(t, db)

	item, err := AddToCart(db, cart.ID, variant.ID, 3)
	require.NoError(t, err)

	quantity, err := UpdateQuantity(db, item.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("id = ?", item.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	_, err = UpdateQuantity(db, item.ID, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestUpdateQuantityClampsBelowZero(t *testing.T) {
	db := setupTestDB(t)
	cart, variant, _ := seedCartFixtures(t, db)

	item, err := AddToCart(db, cart.ID, variant.ID, 2)
	require.NoError(t, err)

	quantity, err := UpdateQuantity(db, item.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("id = ?", item.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	db := setupTestDB(t)
	seedCartFixtures(t, db)

	_, err := UpdateQuantity(db, 999, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestDeleteCartItem(t *testing.T) {
	db := setupTestDB(t)
	cart, variant, _ := seedCartFixtures(t, db)

	item, err := AddToCart(db, cart.ID, variant.ID, 1)
	require.NoError(t, err)

	require.NoError(t, DeleteCartItem(db, item.ID))
	assert.ErrorIs(t, DeleteCartItem(db, item.ID), ErrCartItemNotFound)
}

func TestClearCartItems(t *testing.T) {
	db := setupTestDB(t)
	cart, first, second := seedCartFixtures(t, db)

	_, err := AddToCart(db, cart.ID, first.ID, 2)
	require.NoError(t, err)
	_, err = AddToCart(db, cart.ID, second.ID, 1)
	require.NoError(t, err)

	require.NoError(t, ClearCartItems(db, cart.ID))

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// Clearing an already empty cart is not an error.
	require.NoError(t, ClearCartItems(db, cart.ID))

	assert.ErrorIs(t, ClearCartItems(db, 999), ErrCartNotFound)
}

func TestGetCartHydratesItems(t *testing.T) {
	db := setupTestDB(t)
	cart, variant, _ := seedCartFixtures(t, db)

	_, err := AddToCart(db, cart.ID, variant.ID, 2)
	require.NoError(t, err)

	got, err := GetCart(db, cart.ID)
	require.NoError(t, err)
	require.Len(t, got.CartItems, 1)
	require.NotNil(t, got.CartItems[0].ProductVariant)
	assert.Equal(t, "200g", got.CartItems[0].ProductVariant.Weight)
	require.NotNil(t, got.CartItems[0].ProductVariant.Product)
	assert.Equal(t, "Paneer", got.CartItems[0].ProductVariant.Product.Name)

	_, err = GetCart(db, 999)
	assert.ErrorIs(t, err, ErrCartNotFound)
}
