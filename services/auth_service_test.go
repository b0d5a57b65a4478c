package services

import (
	"testing"
	"time"

	"github.com/sartoria/sartoria-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.UserRole{}, &models.PasswordResetToken{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2-but-longer")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2-but-longer", hash)

	assert.True(t, CheckPassword(hash, "hunter2-but-longer"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
	assert.False(t, CheckPassword("not-a-hash", "hunter2-but-longer"))
}

func TestCreateResetToken(t *testing.T) {
	db := setupAuthTestDB(t)

	user := models.User{Name: "Test User", Email: "test@example.com", PasswordHash: "x"}
	db.Create(&user)

	first, err := CreateResetToken(db, user.ID, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, first.Token)
	assert.Nil(t, first.UsedAt)

	// Issuing a second token invalidates the first
	second, err := CreateResetToken(db, user.ID, time.Hour)
	assert.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	var stale models.PasswordResetToken
	assert.NoError(t, db.Where("token = ?", first.Token).First(&stale).Error)
	assert.NotNil(t, stale.UsedAt)
}

func TestConsumeResetToken(t *testing.T) {
	db := setupAuthTestDB(t)

	user := models.User{Name: "Test User", Email: "test@example.com", PasswordHash: "x"}
	db.Create(&user)

	t.Run("valid token is consumed once", func(t *testing.T) {
		token, err := CreateResetToken(db, user.ID, time.Hour)
		assert.NoError(t, err)

		consumed, err := ConsumeResetToken(db, token.Token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, consumed.UserID)
		assert.NotNil(t, consumed.UsedAt)

		// Second use fails
		_, err = ConsumeResetToken(db, token.Token)
		assert.ErrorIs(t, err, ErrResetTokenExpired)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := ConsumeResetToken(db, "no-such-token")
		assert.ErrorIs(t, err, ErrResetTokenInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := CreateResetToken(db, user.ID, -time.Minute)
		assert.NoError(t, err)

		_, err = ConsumeResetToken(db, token.Token)
		assert.ErrorIs(t, err, ErrResetTokenExpired)
	})
}

func TestCheckAndGrantRole(t *testing.T) {
	db := setupAuthTestDB(t)

	user := models.User{Name: "Test User", Email: "test@example.com", PasswordHash: "x"}
	db.Create(&user)

	has, err := CheckRole(db, user.ID, models.RoleAdmin)
	assert.NoError(t, err)
	assert.False(t, has)

	assert.NoError(t, GrantRole(db, user.ID, models.RoleAdmin))

	has, err = CheckRole(db, user.ID, models.RoleAdmin)
	assert.NoError(t, err)
	assert.True(t, has)

	// Granting again is idempotent
	assert.NoError(t, GrantRole(db, user.ID, models.RoleAdmin))

	var count int64
	db.Model(&models.UserRole{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
