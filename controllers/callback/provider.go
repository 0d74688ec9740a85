package callback

import (
	"log"

	"mitrabus/database"
	"mitrabus/helpers"
	"mitrabus/services"

	"github.com/gofiber/fiber/v2"
)

// Payment receives asynchronous payment notifications from the provider.
// Signature verification happens in middleware; re-deliveries for
// terminal transactions are acknowledged without side effects.
func Payment(c *fiber.Ctx) error {
	var cb services.PaymentCallback
	if err := c.BodyParser(&cb); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if cb.TrxCode == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "trx_code is required")
	}

	body := make([]byte, len(c.Body()))
	copy(body, c.Body())

	trx, err := services.ApplyPaymentCallback(database.DB, cb, body)
	if err != nil {
		log.Printf("[CALLBACK] payment %s (%s) rejected: %v", cb.TrxCode, cb.Status, err)
		return helpers.ServiceError(c, err)
	}

	log.Printf("[CALLBACK] payment %s -> %s", trx.TrxCode, trx.Status)
	return helpers.JSONSuccess(c, "Payment callback processed", fiber.Map{
		"trx_code": trx.TrxCode,
		"status":   trx.Status,
	})
}

// Ticket receives ticketing notifications (issued, cancelled, failed).
func Ticket(c *fiber.Ctx) error {
	var cb services.TicketCallback
	if err := c.BodyParser(&cb); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if cb.TrxCode == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "trx_code is required")
	}

	body := make([]byte, len(c.Body()))
	copy(body, c.Body())

	trx, err := services.ApplyTicketCallback(database.DB, cb, body)
	if err != nil {
		log.Printf("[CALLBACK] ticket %s (%s) rejected: %v", cb.TrxCode, cb.Status, err)
		return helpers.ServiceError(c, err)
	}

	log.Printf("[CALLBACK] ticket %s -> %s", trx.TrxCode, trx.Status)
	return helpers.JSONSuccess(c, "Ticket callback processed", fiber.Map{
		"trx_code": trx.TrxCode,
		"status":   trx.Status,
	})
}
