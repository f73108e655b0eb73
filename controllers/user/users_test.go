package userControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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
		&models.User{},
		&models.Address{},
		&models.Cart{},
		&models.CartItem{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func TestSignupCreatesUserAndCart(t *testing.T) {
	db := setupTestDB(t)

	user, err := SignupUser(db, "ravi", "Ravi@Example.com", "s3cretpw")
	require.NoError(t, err)

	require.NotNil(t, user.Email)
	assert.Equal(t, "ravi@example.com", *user.Email, "email is normalised to lower case")
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "s3cretpw", user.PasswordHash, "password must never be stored in clear")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpw")))

	require.NotNil(t, user.Cart)
	assert.Equal(t, user.ID, user.Cart.UserID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)

	_, err := SignupUser(db, "ravi", "ravi@example.com", "s3cretpw")
	require.NoError(t, err)

	_, err = SignupUser(db, "other", "RAVI@example.com", "anotherpw")
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := SignupUser(db, "ravi", "ravi@example.com", "s3cretpw")
	require.NoError(t, err)

	user, err := LoginUser(db, "ravi@example.com", "s3cretpw")
	require.NoError(t, err)
	assert.Equal(t, "ravi", user.Username)
	require.NotNil(t, user.Cart)

	_, err = LoginUser(db, "ravi@example.com", "wrongpw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = LoginUser(db, "nobody@example.com", "s3cretpw")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
