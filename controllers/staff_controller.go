package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/models"
)

// StaffRequest represents the request body for creating/updating a staff member
type StaffRequest struct {
	Name    string `json:"name" binding:"required"`
	Role    string `json:"role" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty"`
	HiredAt string `json:"hired_at" binding:"omitempty"` // YYYY-MM-DD
	Active  *bool  `json:"active"`
}

// CreateStaff handles POST /api/v1/admin/staff
func CreateStaff(c *gin.Context) {
	var req StaffRequest
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

	staff := models.Staff{
		Name:   req.Name,
		Role:   req.Role,
		Email:  req.Email,
		Phone:  req.Phone,
		Active: true,
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}
	if req.HiredAt != "" {
		hired, err := time.Parse("2006-01-02", req.HiredAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_DATE",
					"message": "hired_at must be formatted YYYY-MM-DD",
				},
			})
			return
		}
		staff.HiredAt = &hired
	}

	db := config.GetDB()
	if err := db.Create(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create staff member",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    staff,
	})
}

// ListStaff handles GET /api/v1/admin/staff - ?active=true narrows to the
// current roster
func ListStaff(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Staff{}).Order("name ASC")
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}

	var staff []models.Staff
	if err := query.Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch staff",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    staff,
	})
}

// UpdateStaff handles PUT /api/v1/admin/staff/:id. Leaving staff are
// deactivated here rather than deleted, so old orders keep their context.
func UpdateStaff(c *gin.Context) {
	db := config.GetDB()
	var staff models.Staff
	if err := db.First(&staff, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STAFF_NOT_FOUND",
				"message": "Staff member not found",
			},
		})
		return
	}

	var req StaffRequest
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

	staff.Name = req.Name
	staff.Role = req.Role
	staff.Email = req.Email
	staff.Phone = req.Phone
	if req.Active != nil {
		staff.Active = *req.Active
	}
	if req.HiredAt != "" {
		hired, err := time.Parse("2006-01-02", req.HiredAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_DATE",
					"message": "hired_at must be formatted YYYY-MM-DD",
				},
			})
			return
		}
		staff.HiredAt = &hired
	}

	if err := db.Save(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update staff member",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    staff,
	})
}
