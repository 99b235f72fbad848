package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/yathra/yathra/pkg/auth"
	"github.com/yathra/yathra/pkg/util"
)

// EnsureValidToken checks the request carries a valid token, either as a
// bearer header or the session cookie, and optionally restricts which account
// roles may pass.
func EnsureValidToken(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies("token")

		if authorization := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(authorization, "Bearer ") {
			tokenString = strings.TrimPrefix(authorization, "Bearer ")
		}

		if tokenString == "" {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"error": "Missing authentication token",
			})
		}

		subject, role, err := auth.ParseToken(tokenString)
		if err != nil {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"error": "Invalid authentication token",
			})
		}

		if len(allowedRoles) > 0 && !util.ContainsString(allowedRoles, role) {
			c.SendStatus(fiber.StatusForbidden)
			return c.JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}

		c.Locals("subject", subject)
		c.Locals("role", role)

		return c.Next()
	}
}
