package routes

import (
	"mitrabus/controllers/balance"
	"mitrabus/controllers/callback"
	"mitrabus/controllers/feeledger"
	"mitrabus/controllers/partner"
	"mitrabus/controllers/topup"
	"mitrabus/controllers/transaction"
	"mitrabus/middlewares"
	"mitrabus/models"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	v1 := app.Group("/api/v1")

	authed := v1.Group("", middlewares.APIKeyAuth)

	// admin & mitra
	both := authed.Group("", middlewares.RequireRole(models.RoleAdmin, models.RoleMitra))
	both.Get("/balance", balance.Index)
	both.Get("/balance/histories", balance.Histories)
	both.Get("/fee/ledgers", feeledger.Index)
	both.Get("/fee/config", feeledger.Config)
	both.Get("/topups", topup.Index)
	both.Get("/topups/:id", topup.Show)
	both.Get("/transactions/:trx_code", transaction.Show)

	// admin only
	admin := authed.Group("", middlewares.RequireRole(models.RoleAdmin))
	admin.Post("/mitra/register", partner.Register)
	admin.Get("/mitra", partner.Index)
	admin.Get("/mitra/:id", partner.Show)
	admin.Post("/mitra/:id/approve", partner.Approve)
	admin.Post("/mitra/:id/reject", partner.Reject)
	admin.Post("/mitra/:id/deactivate", partner.Deactivate)
	admin.Put("/mitra/:id/fee", partner.UpdateFee)
	admin.Post("/topups/:id/approve", topup.Approve)
	admin.Post("/topups/:id/reject", topup.Reject)

	// mitra only
	mitra := authed.Group("", middlewares.RequireRole(models.RoleMitra))
	mitra.Post("/topups", topup.Create)
	mitra.Post("/transactions/search", transaction.Search)
	mitra.Post("/transactions/seat-map", transaction.SeatMap)
	mitra.Post("/transactions/book", transaction.Book)
	mitra.Post("/transactions/pay", transaction.Pay)
	mitra.Post("/transactions/:trx_code/issue", transaction.Issue)
	mitra.Post("/transactions/:trx_code/cancel", transaction.Cancel)

	// provider callbacks, HMAC-signed
	callbacks := v1.Group("/callbacks", middlewares.VerifySignature())
	callbacks.Post("/provider/payment", callback.Payment)
	callbacks.Post("/provider/ticket", callback.Ticket)
}
