package authController

import (
	"errors"
	"log"

	"workmate/config"
	"workmate/database"
	"workmate/middleware"
	"workmate/models"
	"workmate/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// registerRequest carries the registration fields. Role and Dept are
// optional; empty values fall back to the documented defaults.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // default "Member"
	Dept     string `json:"dept"` // default "General"
}

func Register(c *fiber.Ctx) error {
	var reqData registerRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if reqData.Role == "" {
		reqData.Role = "Member"
	}
	if reqData.Dept == "" {
		reqData.Dept = "General"
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Email is already registered")
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request")
	}

	newUser := models.User{
		Name:         reqData.Name,
		Email:        reqData.Email,
		PasswordHash: string(hashedPassword),
		Role:         reqData.Role,
		Dept:         reqData.Dept,
	}

	if err := db.Create(&newUser).Error; err != nil {
		// A concurrent registration can slip past the existence check; the
		// unique constraint on email is authoritative.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "Email is already registered")
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to register user")
	}

	token, err := middleware.GenerateJWT(newUser.ID)
	if err != nil {
		log.Printf("Error signing session token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to register user")
	}
	middleware.SetAuthCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": newUser.ToProfile()})
}

func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Incorrect email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Incorrect email or password")
	}

	token, err := middleware.GenerateJWT(user.ID)
	if err != nil {
		log.Printf("Error signing session token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to log in")
	}
	middleware.SetAuthCookie(c, token)

	return c.JSON(fiber.Map{"user": user.ToProfile()})
}

func Logout(c *fiber.Ctx) error {
	middleware.ClearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{"user": user.ToProfile()})
}

// UploadAvatar stores a new avatar image and points the profile at it
func UploadAvatar(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Avatar file is required")
	}

	filename, err := utils.SaveUploadedFile(file, "./public/avatars")
	if err != nil {
		log.Printf("Error saving avatar: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save avatar")
	}

	user.AvatarURL = "/avatars/" + filename
	if err := database.Database.Db.Model(user).Update("avatar_url", user.AvatarURL).Error; err != nil {
		log.Printf("Error updating avatar URL: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save avatar")
	}

	return c.JSON(fiber.Map{"user": user.ToProfile()})
}
