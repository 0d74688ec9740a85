package feeledger

import (
	"strconv"

	"mitrabus/database"
	"mitrabus/helpers"
	"mitrabus/middlewares"
	"mitrabus/models"

	"github.com/gofiber/fiber/v2"
)

func Index(c *fiber.Ctx) error {
	user, _ := middlewares.CurrentUser(c)

	perPage, _ := strconv.Atoi(c.Query("per_page", "15"))
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if perPage < 1 {
		perPage = 15
	}
	if page < 1 {
		page = 1
	}

	query := database.DB.Order("id DESC")
	if user.Role == models.RoleAdmin {
		if mitraID := c.Query("mitra_id"); mitraID != "" {
			query = query.Where("mitra_id = ?", mitraID)
		}
	} else {
		query = query.Where("mitra_id = ?", user.MitraID)
	}

	var ledgers []models.PartnerFeeLedger
	if err := query.Limit(perPage).Offset((page - 1) * perPage).Find(&ledgers).Error; err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Fee ledgers retrieved successfully", ledgers)
}

func Config(c *fiber.Ctx) error {
	user, _ := middlewares.CurrentUser(c)

	query := database.DB.Where("active = ?", true)
	if user.Role == models.RoleAdmin {
		if mitraID := c.Query("mitra_id"); mitraID != "" {
			query = query.Where("mitra_id = ?", mitraID)
		}
	} else {
		query = query.Where("mitra_id = ?", user.MitraID)
	}

	var fees []models.PartnerFee
	if err := query.Find(&fees).Error; err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Fee configuration retrieved successfully", fees)
}
