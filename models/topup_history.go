package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopupHistory is the balance ledger. One row per balance mutation
// (topup credit, payment debit, refund credit), carrying before/after
// snapshots. Rows are append-only and never updated or deleted.
type TopupHistory struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	TopupID       *uint           `gorm:"index" json:"topup_id,omitempty"`
	TrxCode       string          `gorm:"size:32;index" json:"trx_code,omitempty"`
	MitraID       uint            `gorm:"index" json:"mitra_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2)" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(14,2)" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(14,2)" json:"balance_after"`
	Description   string          `gorm:"size:255" json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
}
