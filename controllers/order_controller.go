package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/middleware"
	"github.com/sartoria/sartoria-api/models"
	"github.com/sartoria/sartoria-api/realtime"
	"github.com/sartoria/sartoria-api/services"
	"gorm.io/gorm"
)

// CreateOrderRequest represents the request body for a customer placing an
// order. Price and status are never client-controlled: new orders start as
// pending with amount 0 until an operator quotes them.
type CreateOrderRequest struct {
	GarmentType        string `json:"garment_type" binding:"required"`
	GarmentDescription string `json:"garment_description" binding:"omitempty"`
	FabricDetails      string `json:"fabric_details" binding:"omitempty"`
	MeasurementID      *uint  `json:"measurement_id" binding:"omitempty"`
}

// AdminCreateOrderRequest represents the request body for an operator
// creating an order on behalf of a walk-in customer.
type AdminCreateOrderRequest struct {
	CustomerName       string     `json:"customer_name" binding:"required"`
	CustomerEmail      string     `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone      string     `json:"customer_phone" binding:"omitempty"`
	GarmentType        string     `json:"garment_type" binding:"required"`
	GarmentDescription string     `json:"garment_description" binding:"omitempty"`
	FabricDetails      string     `json:"fabric_details" binding:"omitempty"`
	Amount             float64    `json:"amount" binding:"omitempty,gte=0"`
	DueDate            *time.Time `json:"due_date" binding:"omitempty"`
	AssignedTailor     string     `json:"assigned_tailor" binding:"omitempty"`
}

// UpdateOrderRequest represents admin field edits. Status changes go through
// the dedicated status endpoint so the transition guard cannot be bypassed.
type UpdateOrderRequest struct {
	CustomerName       *string    `json:"customer_name"`
	CustomerEmail      *string    `json:"customer_email"`
	CustomerPhone      *string    `json:"customer_phone"`
	GarmentType        *string    `json:"garment_type"`
	GarmentDescription *string    `json:"garment_description"`
	FabricDetails      *string    `json:"fabric_details"`
	Amount             *float64   `json:"amount"`
	DueDate            *time.Time `json:"due_date"`
	AssignedTailor     *string    `json:"assigned_tailor"`
}

// UpdateOrderStatusRequest represents a requested status transition
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// generateOrderNumber produces the next human-readable order number for the
// current year, e.g. ORD-2026-0042.
func generateOrderNumber(db *gorm.DB) (string, error) {
	prefix := fmt.Sprintf("ORD-%d-", time.Now().Year())

	var count int64
	if err := db.Model(&models.Order{}).Unscoped().
		Where("order_number LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// createOrder inserts the order, retrying the number on a unique collision
// (two concurrent creates can count the same sequence value).
func createOrder(db *gorm.DB, order *models.Order) error {
	for attempt := 0; attempt < 3; attempt++ {
		number, err := generateOrderNumber(db)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		err = db.Create(order).Error
		if err == nil {
			return nil
		}
		errMsg := strings.ToLower(err.Error())
		if !strings.Contains(errMsg, "duplicate") && !strings.Contains(errMsg, "unique") {
			return err
		}
	}
	return fmt.Errorf("could not allocate a unique order number")
}

// CreateMyOrder handles POST /api/v1/orders - a customer places an order
func CreateMyOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found",
			},
		})
		return
	}

	var req CreateOrderRequest
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

	// Optional measurement link must belong to the requester
	if req.MeasurementID != nil {
		var measurement models.Measurement
		if err := db.Where("id = ? AND user_id = ?", *req.MeasurementID, user.ID).
			First(&measurement).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MEASUREMENT_NOT_FOUND",
					"message": "Measurement profile not found",
				},
			})
			return
		}
	}

	order := models.Order{
		CustomerName:       user.Name,
		CustomerEmail:      user.Email,
		CustomerPhone:      user.Phone,
		GarmentType:        req.GarmentType,
		GarmentDescription: req.GarmentDescription,
		FabricDetails:      req.FabricDetails,
		Amount:             0,
		Status:             models.StatusPending,
		UserID:             &user.ID,
		MeasurementID:      req.MeasurementID,
	}

	if err := createOrder(db, &order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	realtime.GetHub().Publish(realtime.ChangeEvent{
		Table: realtime.TableOrders,
		Type:  realtime.EventInsert,
		New:   order,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListMyOrders handles GET /api/v1/orders - lists the requester's orders
func ListMyOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	var orders []models.Order
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// AdminCreateOrder handles POST /api/v1/admin/orders - an operator creates
// an order for a walk-in customer (no account link)
func AdminCreateOrder(c *gin.Context) {
	var req AdminCreateOrderRequest
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

	order := models.Order{
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		GarmentType:        req.GarmentType,
		GarmentDescription: req.GarmentDescription,
		FabricDetails:      req.FabricDetails,
		Amount:             req.Amount,
		DueDate:            req.DueDate,
		Status:             models.StatusPending,
		AssignedTailor:     req.AssignedTailor,
	}

	db := config.GetDB()
	if err := createOrder(db, &order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	realtime.GetHub().Publish(realtime.ChangeEvent{
		Table: realtime.TableOrders,
		Type:  realtime.EventInsert,
		New:   order,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/admin/orders - lists orders with optional
// substring search over order number, customer name and garment type
func ListOrders(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Order{}).Order("created_at DESC")

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		pattern := "%" + strings.ToUpper(q) + "%"
		query = query.Where(
			"UPPER(order_number) LIKE ? OR UPPER(customer_name) LIKE ? OR UPPER(garment_type) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if status := c.Query("status"); status != "" {
		if !models.OrderStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Unknown order status",
				},
			})
			return
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/admin/orders/:id - full order detail with
// the timeline and the transitions currently offered
func GetOrder(c *gin.Context) {
	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	attachDesignImageURL(&order)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"order":        order,
			"cancelled":    order.Status == models.StatusCancelled,
			"timeline":     models.Timeline(order.Status),
			"allowed_next": models.AllowedNext(order.Status),
			"can_cancel":   models.CanTransition(order.Status, models.StatusCancelled),
		},
	})
}

// GetOrderTimeline handles GET /api/v1/admin/orders/:id/timeline
func GetOrderTimeline(c *gin.Context) {
	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	// A cancelled order renders as an alert block instead of the stage chain
	if order.Status == models.StatusCancelled {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"cancelled": true,
				"status":    order.Status,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"cancelled":    false,
			"status":       order.Status,
			"timeline":     models.Timeline(order.Status),
			"allowed_next": models.AllowedNext(order.Status),
			"can_cancel":   models.CanTransition(order.Status, models.StatusCancelled),
		},
	})
}

// UpdateOrder handles PATCH /api/v1/admin/orders/:id - field edits
func UpdateOrder(c *gin.Context) {
	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	var req UpdateOrderRequest
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

	updates := make(map[string]interface{})
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		updates["customer_email"] = *req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		updates["customer_phone"] = *req.CustomerPhone
	}
	if req.GarmentType != nil {
		updates["garment_type"] = *req.GarmentType
	}
	if req.GarmentDescription != nil {
		updates["garment_description"] = *req.GarmentDescription
	}
	if req.FabricDetails != nil {
		updates["fabric_details"] = *req.FabricDetails
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Amount cannot be negative",
				},
			})
			return
		}
		updates["amount"] = *req.Amount
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.AssignedTailor != nil {
		updates["assigned_tailor"] = *req.AssignedTailor
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    order,
		})
		return
	}

	if err := db.Model(&order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	if err := db.First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated order",
			},
		})
		return
	}

	realtime.GetHub().Publish(realtime.ChangeEvent{
		Table: realtime.TableOrders,
		Type:  realtime.EventUpdate,
		New:   order,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/:id/status - the only
// way a status changes. The transition guard runs server-side, so a direct
// API call cannot re-open a delivered or cancelled order.
func UpdateOrderStatus(c *gin.Context) {
	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	var req UpdateOrderStatusRequest
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

	target := models.OrderStatus(req.Status)
	if !target.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown order status",
			},
		})
		return
	}

	if !models.CanTransition(order.Status, target) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ILLEGAL_TRANSITION",
				"message": fmt.Sprintf("Cannot move order from %s to %s", order.Status, target),
			},
		})
		return
	}

	if err := db.Model(&order).Update("status", target).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	if err := db.First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated order",
			},
		})
		return
	}

	realtime.GetHub().Publish(realtime.ChangeEvent{
		Table: realtime.TableOrders,
		Type:  realtime.EventUpdate,
		New:   order,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"order":        order,
			"timeline":     models.Timeline(order.Status),
			"allowed_next": models.AllowedNext(order.Status),
			"can_cancel":   models.CanTransition(order.Status, models.StatusCancelled),
		},
	})
}

// DeleteOrder handles DELETE /api/v1/admin/orders/:id. Normal flows cancel
// instead of deleting; this exists for scrubbing test/mistaken entries.
func DeleteOrder(c *gin.Context) {
	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if err := db.Delete(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete order",
			},
		})
		return
	}

	realtime.GetHub().Publish(realtime.ChangeEvent{
		Table: realtime.TableOrders,
		Type:  realtime.EventDelete,
		Old:   order,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"deleted": true,
		},
	})
}

// attachDesignImageURL fills the computed presigned URL field when the order
// has a design photo and the image service is available.
func attachDesignImageURL(order *models.Order) {
	if order.DesignImageS3Key == nil || *order.DesignImageS3Key == "" {
		return
	}
	svc := services.GetImageService()
	if svc == nil {
		return
	}
	url, err := svc.GetImageURL(*order.DesignImageS3Key)
	if err != nil {
		log.Printf("failed to presign design image for order %d: %v", order.ID, err)
		return
	}
	order.DesignImageURL = &url
}
