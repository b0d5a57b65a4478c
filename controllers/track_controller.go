package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/models"
	"gorm.io/gorm"
)

// Order number length bounds accepted by the public lookup.
const (
	trackNumberMinLen = 3
	trackNumberMaxLen = 50
)

// trackRequest deliberately binds loosely: the orderNumber field must be
// checked for being a string before anything else happens.
type trackRequest struct {
	OrderNumber any `json:"orderNumber"`
}

// trackedOrder is the public projection of an order. Customer email, phone
// and internal notes are never exposed here.
type trackedOrder struct {
	OrderNumber        string             `json:"orderNumber"`
	GarmentType        string             `json:"garmentType"`
	GarmentDescription string             `json:"garmentDescription"`
	Status             models.OrderStatus `json:"status"`
	CreatedAt          string             `json:"createdAt"`
	DueDate            *string            `json:"dueDate"`
}

// TrackOrder handles POST /api/v1/track-order - public, unauthenticated
// order status lookup by order number. Validation runs before any datastore
// query.
func TrackOrder(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order number is required"})
		return
	}

	raw, ok := req.OrderNumber.(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order number is required"})
		return
	}

	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if len(normalized) < trackNumberMinLen || len(normalized) > trackNumberMaxLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order number must be between 3 and 50 characters"})
		return
	}

	db := config.GetDB()
	var order models.Order
	err := db.Where("UPPER(order_number) = ?", normalized).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
				"found": false,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up order"})
		return
	}

	result := trackedOrder{
		OrderNumber:        order.OrderNumber,
		GarmentType:        order.GarmentType,
		GarmentDescription: order.GarmentDescription,
		Status:             order.Status,
		CreatedAt:          order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if order.DueDate != nil {
		due := order.DueDate.UTC().Format("2006-01-02")
		result.DueDate = &due
	}

	c.JSON(http.StatusOK, gin.H{
		"found": true,
		"order": result,
	})
}
