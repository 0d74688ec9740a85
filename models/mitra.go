package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MitraStatusPending  = "pending"
	MitraStatusActive   = "active"
	MitraStatusRejected = "rejected"
	MitraStatusInactive = "inactive"
)

type Mitra struct {
	gorm.Model

	Code    string          `gorm:"uniqueIndex;size:16" json:"code"`
	Name    string          `gorm:"size:255" json:"name"`
	Email   string          `gorm:"uniqueIndex;size:255" json:"email"`
	Phone   string          `gorm:"size:32" json:"phone"`
	Status  string          `gorm:"size:16;index;default:pending" json:"status"`
	Balance decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"balance"`

	Users        []User             `gorm:"foreignKey:MitraID" json:"users,omitempty"`
	Topups       []Topup            `gorm:"foreignKey:MitraID" json:"-"`
	Transactions []Transaction      `gorm:"foreignKey:MitraID" json:"-"`
	FeeLedgers   []PartnerFeeLedger `gorm:"foreignKey:MitraID" json:"-"`
}
