package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ProviderEventPayment = "payment"
	ProviderEventTicket  = "ticket"
)

// ProviderEvent is an ordered, append-only log of provider callbacks per
// transaction. The raw callback body is kept as an opaque payload.
type ProviderEvent struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TransactionID uint           `gorm:"index" json:"transaction_id"`
	Kind          string         `gorm:"size:16;index" json:"kind"`
	Status        string         `gorm:"size:16" json:"status"`
	Reference     string         `gorm:"size:64" json:"reference,omitempty"`
	Payload       datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
