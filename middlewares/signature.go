package middlewares

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/gofiber/fiber/v2"
)

// VerifySignature authenticates provider callbacks: X-Signature must be
// the hex HMAC-SHA256 of the raw request body under CALLBACK_SECRET.
func VerifySignature() fiber.Handler {
	secret := os.Getenv("CALLBACK_SECRET")

	return func(c *fiber.Ctx) error {
		signature := c.Get("X-Signature")
		if signature == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Signature required",
			})
		}

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(c.Body())
		expected := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(expected), []byte(signature)) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid signature",
			})
		}

		return c.Next()
	}
}
