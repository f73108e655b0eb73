package notificationControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iamkaranroushan/grocery-application-backend/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

// FetchNotifications returns a recipient's notifications, newest first.
func FetchNotifications(db *gorm.DB, recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAllNotificationsAsRead flips every unread notification for a recipient
// and reports how many rows changed.
func MarkAllNotificationsAsRead(db *gorm.DB, recipientID uint) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// MarkNotificationAsRead marks one notification read. The update is keyed by
// (id, recipient) so a user cannot mark another user's notification.
func MarkNotificationAsRead(db *gorm.DB, id, recipientID uint) error {
	result := db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// -------- Handlers --------

func GetNotificationsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipientID, err := strconv.ParseUint(c.Param("recipientId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"notifications": nil, "error": "recipientId must be a numeric id"})
			return
		}

		notifications, err := FetchNotifications(db, uint(recipientID))
		if err != nil {
			log.Printf("failed to fetch notifications: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"notifications": nil, "error": "Failed to fetch notifications"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": notifications, "error": nil})
	}
}

func MarkAllNotificationsAsReadHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipientID, err := strconv.ParseUint(c.Param("recipientId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "recipientId must be a numeric id"})
			return
		}

		count, err := MarkAllNotificationsAsRead(db, uint(recipientID))
		if err != nil {
			log.Printf("failed to mark notifications as read: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to mark notifications as read"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("%d notifications marked as read.", count),
		})
	}
}

func MarkNotificationAsReadHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "id must be a numeric id"})
			return
		}
		recipientID, err := strconv.ParseUint(c.Param("recipientId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "recipientId must be a numeric id"})
			return
		}

		if err := MarkNotificationAsRead(db, uint(id), uint(recipientID)); err != nil {
			if errors.Is(err, ErrNotificationNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Notification not found or you do not have permission to update it"})
				return
			}
			log.Printf("failed to mark notification as read: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update notification"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "error": nil})
	}
}
