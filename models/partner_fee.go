package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	FeeLedgerCredit = "credit"
	FeeLedgerDebit  = "debit"
)

// PartnerFee is the per-mitra fee configuration. At most one active row
// per mitra; admins upsert it and issuance reads it.
type PartnerFee struct {
	gorm.Model

	MitraID uint            `gorm:"uniqueIndex" json:"mitra_id"`
	Mitra   Mitra           `json:"mitra,omitempty"`
	Type    string          `gorm:"size:16" json:"type"`
	Value   decimal.Decimal `gorm:"type:numeric(14,2)" json:"value"`
	Active  bool            `gorm:"default:true" json:"active"`
}

// PartnerFeeLedger tracks platform revenue per issued transaction.
// Append-only; fee credits never touch the mitra's spendable balance.
type PartnerFeeLedger struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	MitraID       uint            `gorm:"index" json:"mitra_id"`
	TransactionID uint            `gorm:"index" json:"transaction_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2)" json:"amount"`
	Type          string          `gorm:"size:8" json:"type"`
	Description   string          `gorm:"size:255" json:"description"`
}
