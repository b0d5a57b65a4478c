package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/middleware"
	"github.com/sartoria/sartoria-api/models"
	"gorm.io/gorm"
)

// MeasurementRequest represents the request body for creating or updating a
// measurement profile. All body measurements are optional.
type MeasurementRequest struct {
	Label     string `json:"label" binding:"required"`
	Unit      string `json:"unit" binding:"omitempty"`
	IsDefault bool   `json:"is_default"`

	Neck          *float64 `json:"neck"`
	Chest         *float64 `json:"chest"`
	Waist         *float64 `json:"waist"`
	Hips          *float64 `json:"hips"`
	ShoulderWidth *float64 `json:"shoulder_width"`
	SleeveLength  *float64 `json:"sleeve_length"`
	Bicep         *float64 `json:"bicep"`
	Wrist         *float64 `json:"wrist"`
	BackLength    *float64 `json:"back_length"`
	FrontLength   *float64 `json:"front_length"`
	JacketLength  *float64 `json:"jacket_length"`
	ShirtLength   *float64 `json:"shirt_length"`
	TrouserWaist  *float64 `json:"trouser_waist"`
	Inseam        *float64 `json:"inseam"`
	Outseam       *float64 `json:"outseam"`
	Thigh         *float64 `json:"thigh"`
	Knee          *float64 `json:"knee"`
	Calf          *float64 `json:"calf"`
	Ankle         *float64 `json:"ankle"`
	Rise          *float64 `json:"rise"`
}

func (req *MeasurementRequest) apply(m *models.Measurement) {
	m.Label = req.Label
	if req.Unit != "" {
		m.Unit = req.Unit
	}
	m.Neck = req.Neck
	m.Chest = req.Chest
	m.Waist = req.Waist
	m.Hips = req.Hips
	m.ShoulderWidth = req.ShoulderWidth
	m.SleeveLength = req.SleeveLength
	m.Bicep = req.Bicep
	m.Wrist = req.Wrist
	m.BackLength = req.BackLength
	m.FrontLength = req.FrontLength
	m.JacketLength = req.JacketLength
	m.ShirtLength = req.ShirtLength
	m.TrouserWaist = req.TrouserWaist
	m.Inseam = req.Inseam
	m.Outseam = req.Outseam
	m.Thigh = req.Thigh
	m.Knee = req.Knee
	m.Calf = req.Calf
	m.Ankle = req.Ankle
	m.Rise = req.Rise
}

// setDefaultMeasurement clears every other default for the user and flags
// the given profile, in one transaction. The old client issued two
// sequential writes here, which could strand zero or two defaults.
func setDefaultMeasurement(db *gorm.DB, userID, measurementID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Measurement{}).
			Where("user_id = ? AND id <> ?", userID, measurementID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Measurement{}).
			Where("id = ? AND user_id = ?", measurementID, userID).
			Update("is_default", true).Error
	})
}

// CreateMeasurement handles POST /api/v1/measurements
func CreateMeasurement(c *gin.Context) {
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

	var req MeasurementRequest
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

	if req.Unit != "" && !models.ValidUnit(req.Unit) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_UNIT",
				"message": "Unit must be inches or centimeters",
			},
		})
		return
	}

	measurement := models.Measurement{UserID: userID, Unit: models.UnitInches}
	req.apply(&measurement)

	db := config.GetDB()
	if err := db.Create(&measurement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create measurement profile",
			},
		})
		return
	}

	if req.IsDefault {
		if err := setDefaultMeasurement(db, userID, measurement.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to set default profile",
				},
			})
			return
		}
		measurement.IsDefault = true
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    measurement,
	})
}

// ListMyMeasurements handles GET /api/v1/measurements
func ListMyMeasurements(c *gin.Context) {
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
	var measurements []models.Measurement
	if err := db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&measurements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch measurement profiles",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    measurements,
	})
}

// UpdateMeasurement handles PUT /api/v1/measurements/:id
func UpdateMeasurement(c *gin.Context) {
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
	var measurement models.Measurement
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&measurement).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MEASUREMENT_NOT_FOUND",
				"message": "Measurement profile not found",
			},
		})
		return
	}

	var req MeasurementRequest
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

	if req.Unit != "" && !models.ValidUnit(req.Unit) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_UNIT",
				"message": "Unit must be inches or centimeters",
			},
		})
		return
	}

	req.apply(&measurement)
	if err := db.Save(&measurement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update measurement profile",
			},
		})
		return
	}

	if req.IsDefault && !measurement.IsDefault {
		if err := setDefaultMeasurement(db, userID, measurement.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to set default profile",
				},
			})
			return
		}
		measurement.IsDefault = true
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    measurement,
	})
}

// SetDefaultMeasurement handles PUT /api/v1/measurements/:id/default
func SetDefaultMeasurement(c *gin.Context) {
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
	var measurement models.Measurement
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&measurement).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MEASUREMENT_NOT_FOUND",
				"message": "Measurement profile not found",
			},
		})
		return
	}

	if err := setDefaultMeasurement(db, userID, measurement.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to set default profile",
			},
		})
		return
	}

	measurement.IsDefault = true
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    measurement,
	})
}

// DeleteMeasurement handles DELETE /api/v1/measurements/:id?confirm=true.
// Deletion is the one destructive action that demands explicit confirmation.
func DeleteMeasurement(c *gin.Context) {
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

	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFIRMATION_REQUIRED",
				"message": "Deleting a measurement profile requires confirm=true",
			},
		})
		return
	}

	db := config.GetDB()
	var measurement models.Measurement
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&measurement).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MEASUREMENT_NOT_FOUND",
				"message": "Measurement profile not found",
			},
		})
		return
	}

	if err := db.Delete(&measurement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete measurement profile",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"deleted": true,
		},
	})
}
