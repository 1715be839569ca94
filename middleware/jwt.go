package middleware

import (
	"fmt"
	"strings"
	"time"

	"workmate/config"
	"workmate/database"
	"workmate/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// AuthCookieName is the HTTP-only cookie carrying the session token.
const AuthCookieName = "token"

// GenerateJWT issues a signed session token for the user. Expiry is fixed
// at issue time; verification never extends it.
func GenerateJWT(userID uint) (string, error) {
	ttl := time.Duration(config.AppConfig.TokenTTLHours) * time.Hour
	claims := jwt.MapClaims{
		"uid": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// VerifyJWT recovers the subject user id from a session token. Bad
// signature and expiry are indistinguishable to the caller.
func VerifyJWT(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["uid"] == nil {
		return 0, fmt.Errorf("invalid token payload")
	}

	uid, ok := claims["uid"].(float64) // numeric JWT claims decode as float64
	if !ok {
		return 0, fmt.Errorf("invalid token payload")
	}

	return uint(uid), nil
}

// SetAuthCookie delivers the session token to the client. The cookie is
// HTTP-only so client-side script can never read it.
func SetAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   config.AppConfig.TokenTTLHours * 3600,
	})
}

// ClearAuthCookie expires the session cookie
func ClearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   -1,
	})
}

// ExtractToken reads the session token from the request: cookie first, then
// the Authorization bearer header. Both carry the same credential.
func ExtractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(AuthCookieName); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func lookupUser(userID uint) (*models.User, error) {
	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RequireAuth fails the request with 401 unless it carries a valid session
// token whose subject still exists. The user row is re-read on every request
// so role changes and account deletion take effect immediately.
func RequireAuth(c *fiber.Ctx) error {
	tokenString := ExtractToken(c)
	if tokenString == "" {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Login required")
	}

	userID, err := VerifyJWT(tokenString)
	if err != nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Session expired, please log in again")
	}

	user, err := lookupUser(userID)
	if err != nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "No such user")
	}

	c.Locals("currentUser", user)
	return c.Next()
}

// OptionalAuth never fails the request. It attaches the resolved user when
// the token is present and valid, otherwise leaves no user in the context.
func OptionalAuth(c *fiber.Ctx) error {
	tokenString := ExtractToken(c)
	if tokenString == "" {
		return c.Next()
	}

	userID, err := VerifyJWT(tokenString)
	if err != nil {
		return c.Next()
	}

	if user, err := lookupUser(userID); err == nil {
		c.Locals("currentUser", user)
	}
	return c.Next()
}

// CurrentUser returns the user attached by RequireAuth/OptionalAuth, or nil
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}
