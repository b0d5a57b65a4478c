package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/sartoria/sartoria-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReportTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Order{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestMonthlyRevenue(t *testing.T) {
	orders := []models.Order{
		{Amount: 100, Status: models.StatusCompleted},
		{Amount: 200, Status: models.StatusDelivered},
		{Amount: 999, Status: models.StatusPending},
		{Amount: 50, Status: models.StatusCutting},
		{Amount: 75, Status: models.StatusFitting},
		{Amount: 400, Status: models.StatusCancelled},
	}

	// Only completed and delivered amounts count
	assert.Equal(t, 300.0, MonthlyRevenue(orders))
}

func TestMonthlyRevenueEmpty(t *testing.T) {
	assert.Equal(t, 0.0, MonthlyRevenue(nil))
	assert.Equal(t, 0.0, MonthlyRevenue([]models.Order{}))
}

func TestMonthStart(t *testing.T) {
	now := time.Date(2026, time.August, 28, 15, 30, 45, 0, time.UTC)
	start := MonthStart(now)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestQueryMonthlyRevenue(t *testing.T) {
	db := setupReportTestDB(t)
	now := time.Now()

	// This month, revenue-bearing
	db.Create(&models.Order{OrderNumber: "ORD-2026-0001", CustomerName: "A", GarmentType: "suit", Amount: 500, Status: models.StatusCompleted})
	db.Create(&models.Order{OrderNumber: "ORD-2026-0002", CustomerName: "B", GarmentType: "shirt", Amount: 120, Status: models.StatusDelivered})
	// This month, not revenue-bearing
	db.Create(&models.Order{OrderNumber: "ORD-2026-0003", CustomerName: "C", GarmentType: "trousers", Amount: 80, Status: models.StatusStitching})

	// Last month's delivered order must not count
	old := models.Order{OrderNumber: "ORD-2026-0004", CustomerName: "D", GarmentType: "suit", Amount: 1000, Status: models.StatusDelivered}
	db.Create(&old)
	db.Model(&old).Update("created_at", MonthStart(now).AddDate(0, 0, -5))

	revenue, err := QueryMonthlyRevenue(db, now)
	assert.NoError(t, err)
	assert.Equal(t, 620.0, revenue)
}

func TestGetDashboardStats(t *testing.T) {
	db := setupReportTestDB(t)
	now := time.Now()

	db.Create(&models.User{Name: "Customer One", Email: "one@example.com", PasswordHash: "x"})
	db.Create(&models.User{Name: "Customer Two", Email: "two@example.com", PasswordHash: "x"})

	for i := 0; i < 12; i++ {
		order := models.Order{
			OrderNumber:  fmt.Sprintf("ORD-2026-10%02d", i),
			CustomerName: "Customer One",
			GarmentType:  "shirt",
			Amount:       10,
			Status:       models.StatusPending,
		}
		db.Create(&order)
	}
	db.Create(&models.Order{OrderNumber: "ORD-2026-0099", CustomerName: "Customer Two", GarmentType: "suit", Amount: 350, Status: models.StatusCompleted})

	stats, err := GetDashboardStats(db, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(13), stats.TotalOrders)
	assert.Equal(t, int64(12), stats.PendingOrders)
	assert.Equal(t, int64(2), stats.TotalCustomers)
	assert.Equal(t, 350.0, stats.MonthlyRevenue)
	assert.Len(t, stats.RecentOrders, RecentOrdersLimit)
}
