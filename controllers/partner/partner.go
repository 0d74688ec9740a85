package partner

import (
	"strconv"

	"mitrabus/database"
	"mitrabus/helpers"
	"mitrabus/models"
	"mitrabus/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func Register(c *fiber.Ctx) error {
	var req services.RegisterMitraInput
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}

	mitra, err := services.RegisterMitra(database.DB, req)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONCreated(c, "Mitra registered successfully", mitra)
}

func Index(c *fiber.Ctx) error {
	perPage, _ := strconv.Atoi(c.Query("per_page", "20"))
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if perPage < 1 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}

	query := database.DB.Preload("Users").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var partners []models.Mitra
	if err := query.Limit(perPage).Offset((page - 1) * perPage).Find(&partners).Error; err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Mitra retrieved successfully", partners)
}

func Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid mitra id")
	}

	var mitra models.Mitra
	if err := database.DB.Preload("Users").First(&mitra, id).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusNotFound, "Mitra not found")
	}
	return helpers.JSONSuccess(c, "Mitra retrieved successfully", mitra)
}

func Approve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid mitra id")
	}

	mitra, err := services.ApproveMitra(database.DB, uint(id))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Mitra approved successfully", mitra)
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

func Reject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid mitra id")
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}

	mitra, err := services.RejectMitra(database.DB, uint(id), req.Reason)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Mitra rejected successfully", fiber.Map{
		"mitra":  mitra,
		"reason": req.Reason,
	})
}

func Deactivate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid mitra id")
	}

	mitra, err := services.DeactivateMitra(database.DB, uint(id))
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Mitra deactivated successfully", mitra)
}

type UpdateFeeRequest struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

func UpdateFee(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid mitra id")
	}

	var req UpdateFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}

	fee, err := services.UpsertPartnerFee(database.DB, uint(id), req.Type, req.Value)
	if err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Mitra fee updated successfully", fee)
}
