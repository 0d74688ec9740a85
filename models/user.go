package models

import "gorm.io/gorm"

const (
	RoleAdmin = "admin"
	RoleMitra = "mitra"

	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

type User struct {
	gorm.Model

	Name    string `gorm:"size:255" json:"name"`
	Email   string `gorm:"uniqueIndex;size:255" json:"email"`
	Role    string `gorm:"size:16;index" json:"role"`
	MitraID *uint  `gorm:"index" json:"mitra_id"`
	APIKey  string `gorm:"uniqueIndex;size:64;column:api_key" json:"-"`
	Status  string `gorm:"size:16;default:active" json:"status"`
}
