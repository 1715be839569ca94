package notificationController

import (
	"fmt"
	"log"
	"time"

	"workmate/database"
	"workmate/middleware"
	"workmate/models"
	"workmate/utils"

	"github.com/gofiber/fiber/v2"
)

// requiredAvgThreshold is the minimum required-course average below which a
// training reminder is created.
const requiredAvgThreshold = 30

type notificationResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	Time      string    `json:"time"`
}

func List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var rows []models.Notification
	if err := database.Database.Db.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		log.Printf("Error listing notifications: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load notifications")
	}

	out := make([]notificationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, notificationResponse{
			ID:        rows[i].ID,
			UserID:    rows[i].UserID,
			Title:     rows[i].Title,
			Message:   rows[i].Message,
			Type:      rows[i].Type,
			Read:      rows[i].IsRead,
			CreatedAt: rows[i].CreatedAt,
			Time:      utils.RelativeTime(rows[i].CreatedAt),
		})
	}

	return c.JSON(fiber.Map{"notifications": out})
}

func Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	reqData := new(struct {
		Title   string `json:"title"`
		Message string `json:"message"`
		Type    string `json:"type"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	notifType := reqData.Type
	if !models.AllowedNotificationTypes[notifType] {
		notifType = models.DefaultNotificationType
	}

	row := models.Notification{
		UserID:  user.ID,
		Title:   reqData.Title,
		Message: reqData.Message,
		Type:    notifType,
	}

	if err := database.Database.Db.Create(&row).Error; err != nil {
		log.Printf("Error creating notification: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create notification")
	}

	return c.JSON(fiber.Map{
		"id":      row.ID,
		"message": "Notification created",
	})
}

// Update flips the read state of one notification
func Update(c *fiber.Ctx) error {
	notificationID := c.Locals("notificationID").(uint)

	reqData := new(struct {
		Read *bool `json:"read"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	read := true
	if reqData.Read != nil {
		read = *reqData.Read
	}

	result := database.Database.Db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", read)
	if result.Error != nil {
		log.Printf("Error updating notification: %v", result.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update notification")
	}
	if result.RowsAffected == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Notification not found")
	}

	return c.JSON(fiber.Map{"message": "Notification updated"})
}

func MarkAllRead(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	result := database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)
	if result.Error != nil {
		log.Printf("Error marking notifications read: %v", result.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update notifications")
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Marked %d notifications as read", result.RowsAffected),
	})
}

// UnreadCount is always computed from the rows, never cached
func UnreadCount(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var count int64
	if err := database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&count).Error; err != nil {
		log.Printf("Error counting unread notifications: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}

	return c.JSON(fiber.Map{"unread_count": count})
}

func Delete(c *fiber.Ctx) error {
	notificationID := c.Locals("notificationID").(uint)

	result := database.Database.Db.Unscoped().
		Where("id = ?", notificationID).
		Delete(&models.Notification{})
	if result.Error != nil {
		log.Printf("Error deleting notification: %v", result.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete notification")
	}
	if result.RowsAffected == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Notification not found")
	}

	return c.JSON(fiber.Map{"message": "Notification deleted"})
}

// CheckTrainingProgress creates a reminder when the caller's required-course
// average is below the threshold. Every call below the threshold creates a
// fresh reminder; there is no suppression window.
func CheckTrainingProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	reqData := new(struct {
		RequiredAvg float64 `json:"requiredAvg"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if reqData.RequiredAvg >= requiredAvgThreshold {
		return c.JSON(fiber.Map{"message": "Training progress is on track, no reminder needed"})
	}

	row := models.Notification{
		UserID:  user.ID,
		Title:   "課程進度提醒",
		Message: fmt.Sprintf("目前必修課程平均完成度為 %g%%，建議儘快完成必修課程以達到基本要求。", reqData.RequiredAvg),
		Type:    "warning",
	}

	if err := database.Database.Db.Create(&row).Error; err != nil {
		log.Printf("Error creating reminder: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create reminder")
	}

	return c.JSON(fiber.Map{
		"id":      row.ID,
		"message": "Training reminder sent",
	})
}
