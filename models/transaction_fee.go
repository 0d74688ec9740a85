package models

import "github.com/shopspring/decimal"

const (
	FeeTypePercent = "percent"
	FeeTypeFlat    = "flat"
)

// TransactionFee is written exactly once, at issuance, and never updated.
type TransactionFee struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	TransactionID uint            `gorm:"uniqueIndex" json:"transaction_id"`
	MitraID       uint            `gorm:"index" json:"mitra_id"`
	FeeType       string          `gorm:"size:16" json:"fee_type"`
	FeeValue      decimal.Decimal `gorm:"type:numeric(14,2)" json:"fee_value"`
	FeeAmount     decimal.Decimal `gorm:"type:numeric(14,2)" json:"fee_amount"`
}
