package controllers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/models"
	"github.com/sartoria/sartoria-api/realtime"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupControllerTestDB opens an in-memory database with every table
// migrated and installs it as the process database.
func setupControllerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.PasswordResetToken{},
		&models.Order{},
		&models.Measurement{},
		&models.Appointment{},
		&models.Fabric{},
		&models.Payment{},
		&models.Expense{},
		&models.Staff{},
		&models.Message{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(&config.Config{
		JWTSecret:      "test-secret",
		GoEnv:          "test",
		AccessTokenTTL: time.Hour,
		ResetTokenTTL:  time.Hour,
	})
	realtime.SetHub(realtime.NewHub())

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// mockAuthMiddleware stands in for the JWT middleware and injects the
// authenticated user id directly.
func mockAuthMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}
