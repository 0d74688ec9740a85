package balance

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

	if user.Role == models.RoleAdmin {
		var balances []models.Mitra
		if err := database.DB.Select("id", "code", "name", "balance").Find(&balances).Error; err != nil {
			return helpers.ServiceError(c, err)
		}
		return helpers.JSONSuccess(c, "Balances retrieved successfully", balances)
	}

	if user.MitraID == nil {
		return helpers.JSONError(c, fiber.StatusNotFound, "Mitra not found")
	}

	var mitra models.Mitra
	if err := database.DB.First(&mitra, *user.MitraID).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusNotFound, "Mitra not found")
	}

	return helpers.JSONSuccess(c, "Balance retrieved successfully", fiber.Map{
		"mitra_id":   mitra.ID,
		"mitra_name": mitra.Name,
		"balance":    mitra.Balance,
	})
}

// Histories lists the balance ledger, newest first. Admins may filter by
// mitra_id; mitra users only ever see their own entries.
func Histories(c *fiber.Ctx) error {
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

	var histories []models.TopupHistory
	if err := query.Limit(perPage).Offset((page - 1) * perPage).Find(&histories).Error; err != nil {
		return helpers.ServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Balance histories retrieved successfully", histories)
}
