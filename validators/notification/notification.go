package notificationValidator

import (
	"strconv"
	"strings"

	"workmate/middleware"

	"github.com/gofiber/fiber/v2"
)

// NotificationID validates the :id path param and stashes it for the controller
func NotificationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid notification ID")
		}

		c.Locals("notificationID", uint(id))
		return c.Next()
	}
}

// CreateNotification validator middleware
func CreateNotification() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title   string `json:"title"`
			Message string `json:"message"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(reqData.Title) == "" || strings.TrimSpace(reqData.Message) == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Title and message are required")
		}

		return c.Next()
	}
}

// CheckTrainingProgress validator middleware
func CheckTrainingProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RequiredAvg *float64 `json:"requiredAvg"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if reqData.RequiredAvg == nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "requiredAvg is required")
		}

		return c.Next()
	}
}
