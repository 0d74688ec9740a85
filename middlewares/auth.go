package middlewares

import (
	"mitrabus/database"
	"mitrabus/models"

	"github.com/gofiber/fiber/v2"
)

// APIKeyAuth resolves the caller from X-Api-Key and stores the user in
// c.Locals for the handlers.
func APIKeyAuth(c *fiber.Ctx) error {
	apiKey := c.Get("X-Api-Key")
	if apiKey == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "API key required",
		})
	}

	var user models.User
	if err := database.DB.Where("api_key = ? AND status = ?", apiKey, models.UserStatusActive).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid API key",
		})
	}

	c.Locals("user", user)
	return c.Next()
}

func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthenticated",
			})
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Forbidden",
		})
	}
}

// CurrentUser returns the authenticated user set by APIKeyAuth.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals("user").(models.User)
	return user, ok
}
