package topup

import (
	"strconv"

	"mitrabus/database"
	"mitrabus/helpers"
	"mitrabus/middlewares"
	"mitrabus/models"
	"mitrabus/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateTopupRequest struct {
	MitraID       uint            `json:"mitra_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	ProofFile     string          `json:"proof_file"`
}

func Create(c *fiber.Ctx) error {
	var req CreateTopupRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}

	user, _ := middlewares.CurrentUser(c)

	mitraID := req.MitraID
	if user.Role == models.RoleMitra {
		if user.MitraID == nil {
			return helpers.JSONError(c, fiber.StatusForbidden, "User has no mitra")
		}
		mitraID = *user.MitraID
	}
	if mitraID == 0 {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Mitra ID is required")
	}

	topup, err := services.CreateTopup(database.DB, mitraID, req.Amount, req.PaymentMethod, req.ProofFile)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONCreated(c, "Topup request created successfully", topup)
}

func Index(c *fiber.Ctx) error {
	user, _ := middlewares.CurrentUser(c)

	perPage, _ := strconv.Atoi(c.Query("per_page", "10"))
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if perPage < 1 {
		perPage = 10
	}
	if page < 1 {
		page = 1
	}

	query := database.DB.Preload("Mitra").Order("created_at DESC")
	if user.Role == models.RoleMitra {
		query = query.Where("mitra_id = ?", user.MitraID)
	}

	var topups []models.Topup
	if err := query.Limit(perPage).Offset((page - 1) * perPage).Find(&topups).Error; err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Topups retrieved successfully", topups)
}

func Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid topup id")
	}

	var topup models.Topup
	if err := database.DB.Preload("Mitra").First(&topup, id).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusNotFound, "Topup not found")
	}

	user, _ := middlewares.CurrentUser(c)
	if user.Role == models.RoleMitra && (user.MitraID == nil || *user.MitraID != topup.MitraID) {
		return helpers.JSONError(c, fiber.StatusForbidden, "Unauthorized")
	}
	return helpers.JSONSuccess(c, "Topup retrieved successfully", topup)
}

func Approve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid topup id")
	}

	user, _ := middlewares.CurrentUser(c)
	topup, err := services.ApproveTopup(database.DB, uint(id), user.ID)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Topup approved successfully", topup)
}

type RejectTopupRequest struct {
	Reason string `json:"reason"`
}

func Reject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid topup id")
	}

	var req RejectTopupRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}

	user, _ := middlewares.CurrentUser(c)
	topup, err := services.RejectTopup(database.DB, uint(id), user.ID, req.Reason)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Topup rejected successfully", topup)
}
