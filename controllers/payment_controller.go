package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/models"
)

var paymentMethods = map[string]bool{
	"cash":     true,
	"card":     true,
	"transfer": true,
}

// PaymentRequest represents the request body for recording a payment
// against an order
type PaymentRequest struct {
	OrderID uint    `json:"order_id" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Method  string  `json:"method" binding:"required"`
	PaidAt  string  `json:"paid_at" binding:"omitempty"` // YYYY-MM-DD, defaults to now
	Notes   string  `json:"notes" binding:"omitempty"`
}

// CreatePayment handles POST /api/v1/admin/payments
func CreatePayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if !paymentMethods[req.Method] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_METHOD",
				"message": "Method must be cash, card or transfer",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, req.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != "" {
		parsed, err := time.Parse("2006-01-02", req.PaidAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_DATE",
					"message": "paid_at must be formatted YYYY-MM-DD",
				},
			})
			return
		}
		paidAt = parsed
	}

	payment := models.Payment{
		OrderID: order.ID,
		Amount:  req.Amount,
		Method:  req.Method,
		PaidAt:  paidAt,
		Notes:   req.Notes,
	}

	if err := db.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to record payment",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    payment,
	})
}

// ListPayments handles GET /api/v1/admin/payments - optional ?order_id=
// filter; the response includes the outstanding balance when scoped to a
// single order
func ListPayments(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Payment{}).Order("paid_at DESC")

	orderID := c.Query("order_id")
	if orderID != "" {
		query = query.Where("order_id = ?", orderID)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch payments",
			},
		})
		return
	}

	var paid float64
	for _, p := range payments {
		paid += p.Amount
	}

	data := gin.H{
		"payments":   payments,
		"total_paid": paid,
	}
	if orderID != "" {
		var order models.Order
		if err := db.First(&order, orderID).Error; err == nil {
			data["balance"] = order.Amount - paid
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
