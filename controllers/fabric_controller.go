package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/models"
)

// FabricRequest represents the request body for creating/updating a fabric
type FabricRequest struct {
	Name             string  `json:"name" binding:"required"`
	Color            string  `json:"color" binding:"omitempty"`
	Material         string  `json:"material" binding:"omitempty"`
	QuantityYards    float64 `json:"quantity_yards" binding:"omitempty,gte=0"`
	MinQuantityYards float64 `json:"min_quantity_yards" binding:"omitempty,gte=0"`
	PricePerYard     float64 `json:"price_per_yard" binding:"omitempty,gte=0"`
	Supplier         string  `json:"supplier" binding:"omitempty"`
	Active           *bool   `json:"active"`
}

// CreateFabric handles POST /api/v1/admin/fabrics
func CreateFabric(c *gin.Context) {
	var req FabricRequest
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

	fabric := models.Fabric{
		Name:             req.Name,
		Color:            req.Color,
		Material:         req.Material,
		QuantityYards:    req.QuantityYards,
		MinQuantityYards: req.MinQuantityYards,
		PricePerYard:     req.PricePerYard,
		Supplier:         req.Supplier,
		Active:           true,
	}
	if req.Active != nil {
		fabric.Active = *req.Active
	}

	db := config.GetDB()
	if err := db.Create(&fabric).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create fabric",
			},
		})
		return
	}

	fabric.LowStock = fabric.IsLowStock()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    fabric,
	})
}

// ListFabrics handles GET /api/v1/admin/fabrics - optional ?q= substring
// search and ?low_stock=true filter. Low stock is derived, so the filter
// runs over the fetched rows rather than a stored column.
func ListFabrics(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Fabric{}).Order("name ASC")

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name LIKE ? OR material LIKE ? OR supplier LIKE ?", pattern, pattern, pattern)
	}
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}

	var fabrics []models.Fabric
	if err := query.Find(&fabrics).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch fabrics",
			},
		})
		return
	}

	if c.Query("low_stock") == "true" {
		filtered := make([]models.Fabric, 0, len(fabrics))
		for _, f := range fabrics {
			if f.IsLowStock() {
				filtered = append(filtered, f)
			}
		}
		fabrics = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    fabrics,
	})
}

// UpdateFabric handles PUT /api/v1/admin/fabrics/:id
func UpdateFabric(c *gin.Context) {
	db := config.GetDB()
	var fabric models.Fabric
	if err := db.First(&fabric, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FABRIC_NOT_FOUND",
				"message": "Fabric not found",
			},
		})
		return
	}

	var req FabricRequest
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

	fabric.Name = req.Name
	fabric.Color = req.Color
	fabric.Material = req.Material
	fabric.QuantityYards = req.QuantityYards
	fabric.MinQuantityYards = req.MinQuantityYards
	fabric.PricePerYard = req.PricePerYard
	fabric.Supplier = req.Supplier
	if req.Active != nil {
		fabric.Active = *req.Active
	}

	if err := db.Save(&fabric).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update fabric",
			},
		})
		return
	}

	fabric.LowStock = fabric.IsLowStock()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    fabric,
	})
}

// DeleteFabric handles DELETE /api/v1/admin/fabrics/:id. Prefer flipping
// Active for fabrics that merely ran out; delete is for entries added by
// mistake.
func DeleteFabric(c *gin.Context) {
	db := config.GetDB()
	var fabric models.Fabric
	if err := db.First(&fabric, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FABRIC_NOT_FOUND",
				"message": "Fabric not found",
			},
		})
		return
	}

	if err := db.Delete(&fabric).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete fabric",
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
