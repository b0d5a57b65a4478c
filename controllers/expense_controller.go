package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/models"
)

// ExpenseRequest represents the request body for recording an expense
type ExpenseRequest struct {
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description" binding:"omitempty"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	IncurredAt  string  `json:"incurred_at" binding:"omitempty"` // YYYY-MM-DD, defaults to today
}

// CreateExpense handles POST /api/v1/admin/expenses
func CreateExpense(c *gin.Context) {
	var req ExpenseRequest
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

	incurredAt := time.Now().UTC().Truncate(24 * time.Hour)
	if req.IncurredAt != "" {
		parsed, err := time.Parse("2006-01-02", req.IncurredAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_DATE",
					"message": "incurred_at must be formatted YYYY-MM-DD",
				},
			})
			return
		}
		incurredAt = parsed
	}

	expense := models.Expense{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		IncurredAt:  incurredAt,
	}

	db := config.GetDB()
	if err := db.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to record expense",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    expense,
	})
}

// ListExpenses handles GET /api/v1/admin/expenses - optional ?category= and
// ?month=YYYY-MM filters
func ListExpenses(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Expense{}).Order("incurred_at DESC")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if month := c.Query("month"); month != "" {
		start, err := time.Parse("2006-01", month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_MONTH",
					"message": "month must be formatted YYYY-MM",
				},
			})
			return
		}
		query = query.Where("incurred_at >= ? AND incurred_at < ?", start, start.AddDate(0, 1, 0))
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch expenses",
			},
		})
		return
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"expenses": expenses,
			"total":    total,
		},
	})
}
