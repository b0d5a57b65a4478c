package services

import (
	"time"

	"github.com/sartoria/sartoria-api/models"
	"gorm.io/gorm"
)

// RecentOrdersLimit caps the dashboard's recent-orders list.
const RecentOrdersLimit = 10

// DashboardStats is the admin dashboard summary block.
type DashboardStats struct {
	TotalOrders    int64          `json:"total_orders"`
	PendingOrders  int64          `json:"pending_orders"`
	TotalCustomers int64          `json:"total_customers"`
	MonthlyRevenue float64        `json:"monthly_revenue"`
	RecentOrders   []models.Order `json:"recent_orders"`
}

// MonthStart returns the first instant of the calendar month containing t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthlyRevenue reduces a slice of orders to the sum of amounts for orders
// in a revenue-bearing status (completed or delivered). Pending and
// cancelled amounts never count, whatever they are.
func MonthlyRevenue(orders []models.Order) float64 {
	var total float64
	for _, order := range orders {
		if order.Status == models.StatusCompleted || order.Status == models.StatusDelivered {
			total += order.Amount
		}
	}
	return total
}

// QueryMonthlyRevenue fetches all orders created since the start of the
// current month and reduces them in memory.
func QueryMonthlyRevenue(db *gorm.DB, now time.Time) (float64, error) {
	var orders []models.Order
	if err := db.Where("created_at >= ?", MonthStart(now)).Find(&orders).Error; err != nil {
		return 0, err
	}
	return MonthlyRevenue(orders), nil
}

// GetDashboardStats assembles the admin dashboard summary.
func GetDashboardStats(db *gorm.DB, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.StatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}

	revenue, err := QueryMonthlyRevenue(db, now)
	if err != nil {
		return nil, err
	}
	stats.MonthlyRevenue = revenue

	if err := db.Order("created_at DESC").
		Limit(RecentOrdersLimit).
		Find(&stats.RecentOrders).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
