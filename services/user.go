package services

import (
	"errors"
	"log"
	"os"

	"mitrabus/models"

	"gorm.io/gorm"
)

// EnsureAdminUser bootstraps the first admin account so the API is
// reachable on a fresh database. The key comes from ADMIN_API_KEY or is
// generated and printed once.
func EnsureAdminUser(db *gorm.DB) error {
	var admin models.User
	err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	apiKey := os.Getenv("ADMIN_API_KEY")
	if apiKey == "" {
		apiKey = generateAPIKey()
		log.Printf("[BOOT] generated admin API key: %s", apiKey)
	}

	admin = models.User{
		Name:   "Administrator",
		Email:  "admin@mitrabus.local",
		Role:   models.RoleAdmin,
		APIKey: apiKey,
		Status: models.UserStatusActive,
	}
	return db.Create(&admin).Error
}
