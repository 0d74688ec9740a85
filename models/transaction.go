package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TrxStatusPending   = "pending"
	TrxStatusPaid      = "paid"
	TrxStatusIssued    = "issued"
	TrxStatusCancelled = "cancelled"
	TrxStatusFailed    = "failed"
)

type Transaction struct {
	gorm.Model

	TrxCode      string          `gorm:"uniqueIndex;size:32" json:"trx_code"`
	MitraID      uint            `gorm:"index" json:"mitra_id"`
	Mitra        Mitra           `json:"mitra,omitempty"`
	UserID       uint            `gorm:"index" json:"user_id"`
	ProviderCode string          `gorm:"size:32;index" json:"provider_code"`
	Route        string          `gorm:"size:255" json:"route"`
	TravelDate   time.Time       `json:"travel_date"`
	PaymentType  string          `gorm:"size:16;default:deposit" json:"payment_type"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2)" json:"amount"`
	Status       string          `gorm:"size:16;index;default:pending" json:"status"`
	CancelReason string          `gorm:"size:500" json:"cancel_reason,omitempty"`
	ExpiredAt    time.Time       `json:"expired_at"`

	Passengers []TransactionPassenger `json:"passengers,omitempty"`
	Fee        *TransactionFee        `json:"fee,omitempty"`
	Events     []ProviderEvent        `json:"events,omitempty"`
}

type TransactionPassenger struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	TransactionID  uint   `gorm:"index" json:"transaction_id"`
	Name           string `gorm:"size:255" json:"name"`
	IdentityNumber string `gorm:"size:64" json:"identity_number"`
	SeatNumber     string `gorm:"size:8" json:"seat_number"`
}
