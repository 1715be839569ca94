package postValidator

import (
	"strconv"
	"strings"

	"workmate/middleware"

	"github.com/gofiber/fiber/v2"
)

// PostID validates the :postId path param and stashes it for the controller
func PostID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		postIDStr := strings.TrimSpace(c.Params("postId"))

		postID, err := strconv.Atoi(postIDStr)
		if err != nil || postID <= 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid post ID")
		}

		c.Locals("postID", uint(postID))
		return c.Next()
	}
}

// CreatePost validator middleware
func CreatePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Content string `json:"content"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(reqData.Content) == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Content cannot be empty")
		}

		return c.Next()
	}
}

// AddComment validator middleware
func AddComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Content string `json:"content"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(reqData.Content) == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Comment cannot be empty")
		}

		return c.Next()
	}
}
