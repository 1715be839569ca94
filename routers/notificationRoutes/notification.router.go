package notificationRoutes

import (
	notificationControllers "workmate/controllers/notification"
	"workmate/middleware"
	notificationValidators "workmate/validators/notification"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/api/notifications", middleware.RequireAuth)

	notificationGroup.Get("/", notificationControllers.List)
	notificationGroup.Post("/", notificationValidators.CreateNotification(), notificationControllers.Create)
	notificationGroup.Get("/unread-count", notificationControllers.UnreadCount)
	notificationGroup.Post("/check-training-progress", notificationValidators.CheckTrainingProgress(), notificationControllers.CheckTrainingProgress)

	// mark-all-read must register before the :id routes
	notificationGroup.Put("/mark-all-read", notificationControllers.MarkAllRead)
	notificationGroup.Put("/:id", notificationValidators.NotificationID(), notificationControllers.Update)
	notificationGroup.Delete("/:id", notificationValidators.NotificationID(), notificationControllers.Delete)
}
