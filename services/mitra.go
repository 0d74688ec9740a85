package services

import (
	"errors"
	"fmt"
	"strings"

	"mitrabus/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RegisterMitraInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func RegisterMitra(db *gorm.DB, in RegisterMitraInput) (*models.Mitra, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.Email == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: name, email and phone are required", ErrValidation)
	}

	var existing models.Mitra
	err := db.Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: email %s is already registered", ErrValidation, in.Email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	mitra := models.Mitra{
		Code:    generateMitraCode(),
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Status:  models.MitraStatusActive,
		Balance: decimal.Zero,
	}
	if err := db.Create(&mitra).Error; err != nil {
		return nil, err
	}
	return &mitra, nil
}

func findMitra(db *gorm.DB, mitraID uint) (*models.Mitra, error) {
	var mitra models.Mitra
	if err := db.First(&mitra, mitraID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: mitra %d", ErrNotFound, mitraID)
		}
		return nil, err
	}
	return &mitra, nil
}

func ApproveMitra(db *gorm.DB, mitraID uint) (*models.Mitra, error) {
	mitra, err := findMitra(db, mitraID)
	if err != nil {
		return nil, err
	}
	if mitra.Status == models.MitraStatusActive {
		return nil, fmt.Errorf("%w: mitra %s is already active", ErrAlreadyProcessed, mitra.Code)
	}
	if mitra.Status == models.MitraStatusRejected {
		return nil, fmt.Errorf("%w: cannot approve a rejected mitra", ErrValidation)
	}
	if err := db.Model(mitra).Update("status", models.MitraStatusActive).Error; err != nil {
		return nil, err
	}
	mitra.Status = models.MitraStatusActive
	return mitra, nil
}

// RejectMitra refuses a registration. A mitra that is active, owns
// transactions, or still holds funds cannot be rejected.
func RejectMitra(db *gorm.DB, mitraID uint, reason string) (*models.Mitra, error) {
	mitra, err := findMitra(db, mitraID)
	if err != nil {
		return nil, err
	}
	if mitra.Status == models.MitraStatusActive {
		return nil, fmt.Errorf("%w: cannot reject an active mitra", ErrValidation)
	}
	if mitra.Status == models.MitraStatusRejected {
		return nil, fmt.Errorf("%w: mitra %s is already rejected", ErrAlreadyProcessed, mitra.Code)
	}
	if err := ensureNoHoldings(db, mitra, "reject"); err != nil {
		return nil, err
	}
	if err := db.Model(mitra).Update("status", models.MitraStatusRejected).Error; err != nil {
		return nil, err
	}
	mitra.Status = models.MitraStatusRejected
	return mitra, nil
}

// DeactivateMitra retires an active mitra under the same holdings guard.
func DeactivateMitra(db *gorm.DB, mitraID uint) (*models.Mitra, error) {
	mitra, err := findMitra(db, mitraID)
	if err != nil {
		return nil, err
	}
	if mitra.Status != models.MitraStatusActive {
		return nil, fmt.Errorf("%w: mitra %s is %s", ErrAlreadyProcessed, mitra.Code, mitra.Status)
	}
	if err := ensureNoHoldings(db, mitra, "deactivate"); err != nil {
		return nil, err
	}
	if err := db.Model(mitra).Update("status", models.MitraStatusInactive).Error; err != nil {
		return nil, err
	}
	mitra.Status = models.MitraStatusInactive
	return mitra, nil
}

func ensureNoHoldings(db *gorm.DB, mitra *models.Mitra, verb string) error {
	var count int64
	if err := db.Model(&models.Transaction{}).Where("mitra_id = ?", mitra.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: cannot %s mitra with existing transactions", ErrValidation, verb)
	}
	if mitra.Balance.IsPositive() {
		return fmt.Errorf("%w: cannot %s mitra with balance", ErrValidation, verb)
	}
	return nil
}

// UpsertPartnerFee sets the single active fee configuration for a mitra.
func UpsertPartnerFee(db *gorm.DB, mitraID uint, feeType string, value decimal.Decimal) (*models.PartnerFee, error) {
	if feeType != models.FeeTypePercent && feeType != models.FeeTypeFlat {
		return nil, fmt.Errorf("%w: fee type must be percent or flat", ErrValidation)
	}
	if value.IsNegative() {
		return nil, fmt.Errorf("%w: fee value must not be negative", ErrValidation)
	}
	if _, err := findMitra(db, mitraID); err != nil {
		return nil, err
	}

	var fee models.PartnerFee
	err := db.Where("mitra_id = ?", mitraID).First(&fee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fee = models.PartnerFee{MitraID: mitraID, Type: feeType, Value: value, Active: true}
		if err := db.Create(&fee).Error; err != nil {
			return nil, err
		}
		return &fee, nil
	}
	if err != nil {
		return nil, err
	}

	fee.Type = feeType
	fee.Value = value
	fee.Active = true
	if err := db.Model(&fee).Updates(map[string]any{
		"type":   feeType,
		"value":  value,
		"active": true,
	}).Error; err != nil {
		return nil, err
	}
	return &fee, nil
}
