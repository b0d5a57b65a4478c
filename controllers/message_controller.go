package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/models"
)

// ContactMessageRequest represents a contact-form submission from the
// public site
type ContactMessageRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Text  string `json:"text" binding:"required"`
}

// CreateMessage handles POST /api/v1/messages - public, unauthenticated
func CreateMessage(c *gin.Context) {
	var req ContactMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name, email and message text are required",
				"details": err.Error(),
			},
		})
		return
	}

	message := models.Message{
		Name:  req.Name,
		Email: req.Email,
		Text:  req.Text,
	}

	db := config.GetDB()
	if err := db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save message",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"received": true,
		},
	})
}

// ListMessages handles GET /api/v1/admin/messages - ?unread=true narrows
// to messages nobody has looked at yet
func ListMessages(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Message{}).Order("created_at DESC")
	if c.Query("unread") == "true" {
		query = query.Where("read_at IS NULL")
	}

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch messages",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// MarkMessageRead handles PATCH /api/v1/admin/messages/:id/read
func MarkMessageRead(c *gin.Context) {
	db := config.GetDB()
	var message models.Message
	if err := db.First(&message, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MESSAGE_NOT_FOUND",
				"message": "Message not found",
			},
		})
		return
	}

	if message.ReadAt == nil {
		now := time.Now().UTC()
		if err := db.Model(&message).Update("read_at", now).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update message",
				},
			})
			return
		}
		message.ReadAt = &now
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    message,
	})
}
