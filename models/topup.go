package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TopupStatusPending  = "pending"
	TopupStatusSuccess  = "success"
	TopupStatusRejected = "rejected"
)

type Topup struct {
	gorm.Model

	MitraID       uint            `gorm:"index" json:"mitra_id"`
	Mitra         Mitra           `json:"mitra,omitempty"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2)" json:"amount"`
	PaymentMethod string          `gorm:"size:16" json:"payment_method"`
	Status        string          `gorm:"size:16;index;default:pending" json:"status"`
	ProofFile     string          `gorm:"size:255" json:"proof_file,omitempty"`
	ApprovedBy    *uint           `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	RejectReason  string          `gorm:"size:500" json:"reject_reason,omitempty"`
}
