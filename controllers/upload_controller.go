package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/models"
	"github.com/sartoria/sartoria-api/realtime"
	"github.com/sartoria/sartoria-api/services"
	"github.com/sartoria/sartoria-api/utils"
)

// UploadDesignImage handles POST /api/v1/admin/orders/:id/design-image -
// attaches a garment design reference photo to an order. Replacing an
// existing photo removes the old object from storage.
func UploadDesignImage(c *gin.Context) {
	svc := services.GetImageService()
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}

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

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_REQUIRED",
				"message": "An image file is required in the 'image' field",
			},
		})
		return
	}

	s3Key, err := svc.UploadImage(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to store image",
			},
		})
		return
	}

	oldKey := order.DesignImageS3Key
	if err := db.Model(&order).Update("design_image_s3_key", s3Key).Error; err != nil {
		// The object is orphaned in storage; clean it up before failing.
		if delErr := svc.DeleteImage(s3Key); delErr != nil {
			log.Printf("failed to remove orphaned design image %s: %v", s3Key, delErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to attach image to order",
			},
		})
		return
	}

	if oldKey != nil && *oldKey != "" && *oldKey != s3Key {
		if err := svc.DeleteImage(*oldKey); err != nil {
			log.Printf("failed to remove replaced design image %s: %v", *oldKey, err)
		}
	}

	order.DesignImageS3Key = &s3Key
	attachDesignImageURL(&order)

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

// DeleteDesignImage handles DELETE /api/v1/admin/orders/:id/design-image
func DeleteDesignImage(c *gin.Context) {
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

	if order.DesignImageS3Key == nil || *order.DesignImageS3Key == "" {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    order,
		})
		return
	}

	key := *order.DesignImageS3Key
	if err := db.Model(&order).Update("design_image_s3_key", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to detach image from order",
			},
		})
		return
	}

	if svc := services.GetImageService(); svc != nil {
		if err := svc.DeleteImage(key); err != nil {
			log.Printf("failed to remove design image %s: %v", key, err)
		}
	}

	order.DesignImageS3Key = nil
	order.DesignImageURL = nil

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
