package authRoutes

import (
	authControllers "workmate/controllers/auth"
	"workmate/middleware"
	authValidators "workmate/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/logout", authControllers.Logout)
	authGroup.Get("/me", middleware.RequireAuth, authControllers.Me)
	authGroup.Post("/avatar", middleware.RequireAuth, authControllers.UploadAvatar)
}
