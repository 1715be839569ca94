package main

import (
	"log"

	"workmate/config"
	"workmate/database"
	authRoutes "workmate/routers/authRoutes"
	notificationRoutes "workmate/routers/notificationRoutes"
	postRoutes "workmate/routers/postRoutes"
	progressRoutes "workmate/routers/progressRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool { return true },
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve course videos and uploaded avatars from the public folder
	app.Static("/", "./public")

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	authRoutes.SetupAuthRoutes(app)
	postRoutes.SetupPostRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
