package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const emailLocal = "auth_email"

// GenerateToken signs a bearer token carrying the account email. Tokens
// expire after ttl.
func GenerateToken(email string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Middleware verifies the Authorization bearer token and stashes the email
// claim for downstream handlers. Missing, malformed, badly signed and
// expired tokens all map to 401; no partial trust is granted.
func Middleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized access")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized access")
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or Expired token")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or Expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or Expired token")
		}

		email, ok := claims["email"].(string)
		if !ok || strings.TrimSpace(email) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or Expired token")
		}

		c.Locals(emailLocal, email)
		return c.Next()
	}
}

// EmailFromCtx returns the verified claim email set by Middleware.
func EmailFromCtx(c *fiber.Ctx) (string, bool) {
	if v := c.Locals(emailLocal); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}
