package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse replies with the conventional error envelope
func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error": message,
	})
}
