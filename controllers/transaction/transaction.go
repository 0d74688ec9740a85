package transaction

import (
	"time"

	"mitrabus/database"
	"mitrabus/helpers"
	"mitrabus/middlewares"
	"mitrabus/services"

	"github.com/gofiber/fiber/v2"
)

var pricing services.PriceQuoter = services.NewCatalogPricing()

type SearchRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	TravelDate  string `json:"travel_date"`
}

// Search returns the schedules for a route. The catalog is static until
// the upstream feed integration lands.
func Search(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if req.Origin == "" || req.Destination == "" || req.TravelDate == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "origin, destination and travel_date are required")
	}

	price, _ := pricing.SeatPrice("BUS001")
	schedules := []fiber.Map{
		{
			"provider_code":   "BUS001",
			"route":           req.Origin + " - " + req.Destination,
			"departure_time":  "08:00",
			"price":           price,
			"available_seats": 20,
		},
	}
	return helpers.JSONSuccess(c, "Bus schedules retrieved", schedules)
}

type SeatMapRequest struct {
	ProviderCode string `json:"provider_code"`
}

func SeatMap(c *fiber.Ctx) error {
	var req SeatMapRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if req.ProviderCode == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "provider_code is required")
	}

	seatMap := fiber.Map{
		"seats": []fiber.Map{
			{"number": "A1", "status": "available"},
			{"number": "A2", "status": "booked"},
		},
	}
	return helpers.JSONSuccess(c, "Seat map retrieved", seatMap)
}

type BookRequest struct {
	ProviderCode string                    `json:"provider_code"`
	Origin       string                    `json:"origin"`
	Destination  string                    `json:"destination"`
	TravelDate   string                    `json:"travel_date"`
	Seats        []string                  `json:"seats"`
	Passengers   []services.PassengerInput `json:"passengers"`
}

func Book(c *fiber.Ctx) error {
	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}

	travelDate, err := time.Parse("2006-01-02", req.TravelDate)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "travel_date must be YYYY-MM-DD")
	}

	user, _ := middlewares.CurrentUser(c)
	if user.MitraID == nil {
		return helpers.JSONError(c, fiber.StatusForbidden, "User has no mitra")
	}

	route := "Jakarta - Bandung"
	if req.Origin != "" && req.Destination != "" {
		route = req.Origin + " - " + req.Destination
	}

	trx, err := services.Book(database.DB, pricing, *user.MitraID, user.ID, services.BookingInput{
		ProviderCode: req.ProviderCode,
		Route:        route,
		TravelDate:   travelDate,
		Seats:        req.Seats,
		Passengers:   req.Passengers,
	})
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONCreated(c, "Booking successful", fiber.Map{
		"trx_code":   trx.TrxCode,
		"status":     trx.Status,
		"amount":     trx.Amount,
		"expired_at": trx.ExpiredAt,
	})
}

type PayRequest struct {
	TrxCode string `json:"trx_code"`
}

func Pay(c *fiber.Ctx) error {
	var req PayRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if req.TrxCode == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "trx_code is required")
	}

	user, _ := middlewares.CurrentUser(c)
	trx, entry, err := services.Pay(database.DB, req.TrxCode, services.PrincipalFromUser(user))
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Payment successful", fiber.Map{
		"trx_code":       trx.TrxCode,
		"status":         trx.Status,
		"balance_before": entry.BalanceBefore,
		"balance_after":  entry.BalanceAfter,
	})
}

func Issue(c *fiber.Ctx) error {
	trxCode := c.Params("trx_code")

	user, _ := middlewares.CurrentUser(c)
	trx, fee, err := services.Issue(database.DB, trxCode, services.PrincipalFromUser(user))
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Ticket issued successfully", fiber.Map{
		"trx_code":   trx.TrxCode,
		"status":     trx.Status,
		"fee_earned": fee.FeeAmount,
	})
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

func Cancel(c *fiber.Ctx) error {
	trxCode := c.Params("trx_code")

	var req CancelRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}

	user, _ := middlewares.CurrentUser(c)
	trx, refund, err := services.Cancel(database.DB, trxCode, services.PrincipalFromUser(user), req.Reason)
	if err != nil {
		return helpers.ServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Transaction cancelled", fiber.Map{
		"trx_code":      trx.TrxCode,
		"status":        trx.Status,
		"refund_amount": refund,
	})
}

func Show(c *fiber.Ctx) error {
	trxCode := c.Params("trx_code")

	user, _ := middlewares.CurrentUser(c)
	trx, err := services.GetTransaction(database.DB, trxCode, services.PrincipalFromUser(user))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Transaction retrieved", trx)
}
