package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sartoria/sartoria-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password reset failures surfaced to callers. The controller maps both to
// the same user-facing message so the endpoint does not leak token state.
var (
	ErrResetTokenInvalid = errors.New("reset token is invalid")
	ErrResetTokenExpired = errors.New("reset token is expired or already used")
)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CreateResetToken issues a single-use password reset token for a user.
// Any previously unused tokens for the user are invalidated first.
func CreateResetToken(db *gorm.DB, userID uint, ttl time.Duration) (*models.PasswordResetToken, error) {
	now := time.Now()
	token := &models.PasswordResetToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(ttl),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PasswordResetToken{}).
			Where("user_id = ? AND used_at IS NULL", userID).
			Update("used_at", now).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// ConsumeResetToken validates a reset token and marks it used.
func ConsumeResetToken(db *gorm.DB, token string) (*models.PasswordResetToken, error) {
	var reset models.PasswordResetToken
	if err := db.Where("token = ?", token).First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}

	if reset.UsedAt != nil || time.Now().After(reset.ExpiresAt) {
		return nil, ErrResetTokenExpired
	}

	now := time.Now()
	reset.UsedAt = &now
	if err := db.Model(&reset).Update("used_at", now).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}
