package postRoutes

import (
	postControllers "workmate/controllers/post"
	"workmate/middleware"
	postValidators "workmate/validators/post"

	"github.com/gofiber/fiber/v2"
)

func SetupPostRoutes(app *fiber.App) {
	postGroup := app.Group("/api/posts")

	postGroup.Get("/", middleware.OptionalAuth, postControllers.ListPosts)
	postGroup.Post("/", middleware.RequireAuth, postValidators.CreatePost(), postControllers.CreatePost)
	postGroup.Post("/:postId/like", middleware.RequireAuth, postValidators.PostID(), postControllers.ToggleLike)
	postGroup.Get("/:postId/like-status", middleware.RequireAuth, postValidators.PostID(), postControllers.LikeStatus)
	postGroup.Get("/:postId/comments", postValidators.PostID(), postControllers.ListComments)
	postGroup.Post("/:postId/comments", middleware.RequireAuth, postValidators.PostID(), postValidators.AddComment(), postControllers.AddComment)
}
