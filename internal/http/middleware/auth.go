package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"skystash/internal/auth"
)

// UserIDLocalKey is the locals key holding the authenticated user id.
const UserIDLocalKey = "user_id"

// Auth rejects requests without a valid bearer credential with 401 and
// stores the verified user id under UserIDLocalKey.
func Auth(v auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "not authorized, no token")
		}

		userID, err := v.Verify(c.UserContext(), token)
		if err != nil || userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "not authorized, token failed")
		}

		c.Locals(UserIDLocalKey, userID)
		return c.Next()
	}
}

// GetUserID returns the id stored by Auth, or "".
func GetUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDLocalKey).(string)
	return id
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
