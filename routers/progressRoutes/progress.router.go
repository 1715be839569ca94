package progressRoutes

import (
	progressControllers "workmate/controllers/progress"
	"workmate/middleware"
	progressValidators "workmate/validators/progress"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/api/progress")

	// Static paths must register before the :courseId catch-all.
	progressGroup.Get("/all", middleware.RequireAuth, progressControllers.GetAll)
	progressGroup.Get("/stats/summary", middleware.RequireAuth, progressControllers.Stats)
	progressGroup.Get("/courses/list", progressControllers.ListCourses)
	progressGroup.Post("/update", middleware.RequireAuth, progressValidators.UpdateProgress(), progressControllers.Update)
	progressGroup.Post("/duration", middleware.RequireAuth, progressValidators.UpdateDuration(), progressControllers.UpdateDuration)
	progressGroup.Post("/reset/:courseId", middleware.RequireAuth, progressValidators.CourseID(), progressControllers.Reset)
	progressGroup.Get("/:courseId", middleware.RequireAuth, progressValidators.CourseID(), progressControllers.GetCourse)
}
