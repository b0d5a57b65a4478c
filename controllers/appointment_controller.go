package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/middleware"
	"github.com/sartoria/sartoria-api/models"
)

// CreateAppointmentRequest represents the request body for booking a slot
type CreateAppointmentRequest struct {
	Type            string `json:"type" binding:"required"`
	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,gt=0"`
	Notes           string `json:"notes" binding:"omitempty"`
}

// UpdateAppointmentStatusRequest represents an appointment status change
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateAppointment handles POST /api/v1/appointments - books a slot for
// the authenticated customer
func CreateAppointment(c *gin.Context) {
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

	var req CreateAppointmentRequest
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

	if !models.ValidAppointmentType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TYPE",
				"message": "Unknown appointment type",
			},
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DATE",
				"message": "Date must be formatted YYYY-MM-DD",
			},
		})
		return
	}

	if _, err := time.Parse("15:04", req.StartTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TIME",
				"message": "Start time must be formatted HH:MM",
			},
		})
		return
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = 30
	}

	appointment := models.Appointment{
		UserID:          &user.ID,
		CustomerName:    user.Name,
		Type:            req.Type,
		Date:            date,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
		Status:          models.AppointmentPending,
		Notes:           req.Notes,
	}

	if err := db.Create(&appointment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create appointment",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    appointment,
	})
}

// ListMyAppointments handles GET /api/v1/appointments
func ListMyAppointments(c *gin.Context) {
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
	var appointments []models.Appointment
	if err := db.Where("user_id = ?", userID).
		Order("date ASC, start_time ASC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch appointments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointments,
	})
}

// ListAppointments handles GET /api/v1/admin/appointments
func ListAppointments(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Appointment{}).Order("date ASC, start_time ASC")

	if status := c.Query("status"); status != "" {
		if !models.ValidAppointmentStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Unknown appointment status",
				},
			})
			return
		}
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_DATE",
					"message": "Date must be formatted YYYY-MM-DD",
				},
			})
			return
		}
		query = query.Where("date = ?", parsed)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch appointments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointments,
	})
}

// UpdateAppointmentStatus handles PATCH /api/v1/admin/appointments/:id/status
func UpdateAppointmentStatus(c *gin.Context) {
	db := config.GetDB()
	var appointment models.Appointment
	if err := db.First(&appointment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "APPOINTMENT_NOT_FOUND",
				"message": "Appointment not found",
			},
		})
		return
	}

	var req UpdateAppointmentStatusRequest
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

	if !models.ValidAppointmentStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown appointment status",
			},
		})
		return
	}

	if err := db.Model(&appointment).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update appointment",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointment,
	})
}
