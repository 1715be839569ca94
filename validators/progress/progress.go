package progressValidator

import (
	"strconv"
	"strings"

	"workmate/middleware"

	"github.com/gofiber/fiber/v2"
)

// CourseID validates the :courseId path param and stashes it for the controller
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("courseId"))

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course ID")
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// UpdateProgress validator middleware
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID    int      `json:"courseId"`
			WatchedTime *float64 `json:"watchedTime"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if reqData.CourseID <= 0 || reqData.WatchedTime == nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing required parameters")
		}

		return c.Next()
	}
}

// UpdateDuration validator middleware
func UpdateDuration() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID int     `json:"courseId"`
			Duration float64 `json:"duration"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if reqData.CourseID <= 0 || reqData.Duration <= 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing required parameters")
		}

		return c.Next()
	}
}
