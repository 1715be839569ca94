package postController

import (
	"errors"
	"log"
	"strings"
	"time"

	"workmate/database"
	"workmate/middleware"
	"workmate/models"
	"workmate/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type postResponse struct {
	ID              uint      `json:"id"`
	Content         string    `json:"content"`
	ImageURL        string    `json:"imageUrl"`
	Board           string    `json:"board"`
	Tag             string    `json:"tag"`
	LikesCount      int       `json:"likes_count"`
	CommentsCount   int       `json:"comments_count"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	AuthorID        uint      `json:"authorId"`
	AuthorName      string    `json:"authorName"`
	AuthorAvatarURL string    `json:"authorAvatarUrl"`
	AuthorDept      string    `json:"authorDept"`
}

type commentResponse struct {
	ID   uint   `json:"id"`
	User string `json:"user"`
	Text string `json:"text"`
	Time string `json:"time"`
}

func toPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:              p.ID,
		Content:         p.Content,
		ImageURL:        p.ImageURL,
		Board:           p.Board,
		Tag:             p.Tag,
		LikesCount:      p.LikesCount,
		CommentsCount:   p.CommentsCount,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		AuthorID:        p.AuthorID,
		AuthorName:      p.Author.Name,
		AuthorAvatarURL: p.Author.AvatarURL,
		AuthorDept:      p.Author.Dept,
	}
}

// normalizeBoard folds invalid board names to the default
func normalizeBoard(raw string) string {
	board := strings.ToLower(strings.TrimSpace(raw))
	if models.AllowedBoards[board] {
		return board
	}
	return models.DefaultBoard
}

// normalizeTag folds invalid tags to the default
func normalizeTag(raw string) string {
	tag := strings.TrimSpace(raw)
	if models.AllowedTags[tag] {
		return tag
	}
	return models.DefaultTag
}

func CreatePost(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	reqData := new(struct {
		Content  string `json:"content"`
		ImageURL string `json:"imageUrl"`
		Board    string `json:"board"`
		Tag      string `json:"tag"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	newPost := models.Post{
		AuthorID: user.ID,
		Content:  strings.TrimSpace(reqData.Content),
		ImageURL: reqData.ImageURL,
		Board:    normalizeBoard(reqData.Board),
		Tag:      normalizeTag(reqData.Tag),
	}

	if err := db.Create(&newPost).Error; err != nil {
		log.Printf("Error saving post: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create post")
	}

	newPost.Author = *user
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": toPostResponse(&newPost)})
}

func ListPosts(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.Post{}).Preload("Author")

	if board := strings.ToLower(c.Query("board")); board != "" && board != "all" {
		query = query.Where("board = ?", board)
	}
	if tag := c.Query("tag"); tag != "" && tag != "all" {
		query = query.Where("tag = ?", tag)
	}

	var posts []models.Post
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		log.Printf("Error listing posts: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load posts")
	}

	out := make([]postResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i]))
	}

	return c.JSON(fiber.Map{"posts": out})
}

// ToggleLike creates the like if absent, removes it if present. The
// existence check, row mutation and counter update run in one transaction
// so a double-click cannot let the counter drift from the like rows.
func ToggleLike(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	postID := c.Locals("postID").(uint)

	db := database.Database.Db

	var liked bool
	err := db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			return err
		}

		var like models.PostLike
		findErr := tx.Where("post_id = ? AND user_id = ?", postID, user.ID).First(&like).Error

		if findErr == nil {
			// Hard delete so the (post, user) pair can be liked again later.
			if err := tx.Unscoped().Delete(&like).Error; err != nil {
				return err
			}
			// Floor at zero to tolerate counter drift.
			if err := tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error; err != nil {
				return err
			}
			liked = false
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		if err := tx.Create(&models.PostLike{PostID: postID, UserID: user.ID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Post not found")
		}
		// A concurrent toggle for the same pair lost the race on the unique
		// index; the client should re-read like status.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "Like already recorded")
		}
		log.Printf("Error toggling like: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to toggle like")
	}

	var post models.Post
	if err := db.First(&post, postID).Error; err != nil {
		log.Printf("Error reloading post: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to toggle like")
	}

	message := "Like removed"
	if liked {
		message = "Post liked"
	}

	return c.JSON(fiber.Map{
		"liked":       liked,
		"likes_count": post.LikesCount,
		"message":     message,
	})
}

func LikeStatus(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	postID := c.Locals("postID").(uint)

	var count int64
	if err := database.Database.Db.Model(&models.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, user.ID).
		Count(&count).Error; err != nil {
		log.Printf("Error reading like status: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load like status")
	}

	return c.JSON(fiber.Map{"liked": count > 0})
}

func ListComments(c *fiber.Ctx) error {
	postID := c.Locals("postID").(uint)

	var comments []models.PostComment
	if err := database.Database.Db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		log.Printf("Error listing comments: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load comments")
	}

	out := make([]commentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, commentResponse{
			ID:   comments[i].ID,
			User: comments[i].User.Name,
			Text: comments[i].Content,
			Time: utils.RelativeTime(comments[i].CreatedAt),
		})
	}

	return c.JSON(fiber.Map{"comments": out})
}

// AddComment inserts the comment and bumps the post counter together; the
// counter must never be durable without the row.
func AddComment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	postID := c.Locals("postID").(uint)

	reqData := new(struct {
		Content string `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	newComment := models.PostComment{
		PostID:  postID,
		UserID:  user.ID,
		Content: strings.TrimSpace(reqData.Content),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			return err
		}
		if err := tx.Create(&newComment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Post not found")
		}
		log.Printf("Error adding comment: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add comment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"comment": commentResponse{
			ID:   newComment.ID,
			User: user.Name,
			Text: newComment.Content,
			Time: "剛剛",
		},
		"message": "Comment added",
	})
}
