package services

import (
	"errors"
	"fmt"
	"time"

	"mitrabus/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var minTopupAmount = decimal.NewFromInt(10000)

var validPaymentMethods = map[string]bool{
	"transfer": true,
	"va":       true,
	"ewallet":  true,
}

func CreateTopup(db *gorm.DB, mitraID uint, amount decimal.Decimal, paymentMethod, proofFile string) (*models.Topup, error) {
	if amount.LessThan(minTopupAmount) {
		return nil, fmt.Errorf("%w: minimum topup amount is %s", ErrValidation, minTopupAmount)
	}
	if !validPaymentMethods[paymentMethod] {
		return nil, fmt.Errorf("%w: payment method must be transfer, va or ewallet", ErrValidation)
	}

	var mitra models.Mitra
	if err := db.First(&mitra, mitraID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: mitra %d", ErrNotFound, mitraID)
		}
		return nil, err
	}

	topup := models.Topup{
		MitraID:       mitraID,
		Amount:        amount,
		PaymentMethod: paymentMethod,
		Status:        models.TopupStatusPending,
		ProofFile:     proofFile,
	}
	if err := db.Create(&topup).Error; err != nil {
		return nil, err
	}
	return &topup, nil
}

// ApproveTopup moves a pending topup to success and credits the mitra's
// balance. Status change, balance update and ledger entry commit as one
// unit; re-approval of a processed topup is rejected, never re-applied.
func ApproveTopup(db *gorm.DB, topupID, approverID uint) (*models.Topup, error) {
	var topup models.Topup

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&topup, topupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: topup %d", ErrNotFound, topupID)
			}
			return err
		}
		if topup.Status != models.TopupStatusPending {
			return fmt.Errorf("%w: topup %d is already %s", ErrAlreadyProcessed, topupID, topup.Status)
		}

		mitra, err := LockMitra(tx, topup.MitraID)
		if err != nil {
			return err
		}
		if _, err := Credit(tx, mitra, topup.Amount, LedgerRef{TopupID: &topup.ID}, "Topup approved"); err != nil {
			return err
		}

		now := time.Now()
		topup.Status = models.TopupStatusSuccess
		topup.ApprovedBy = &approverID
		topup.ApprovedAt = &now
		return tx.Model(&topup).Updates(map[string]any{
			"status":      models.TopupStatusSuccess,
			"approved_by": approverID,
			"approved_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &topup, nil
}

// RejectTopup is terminal and has no balance effect.
func RejectTopup(db *gorm.DB, topupID, approverID uint, reason string) (*models.Topup, error) {
	var topup models.Topup

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&topup, topupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: topup %d", ErrNotFound, topupID)
			}
			return err
		}
		if topup.Status != models.TopupStatusPending {
			return fmt.Errorf("%w: topup %d is already %s", ErrAlreadyProcessed, topupID, topup.Status)
		}

		now := time.Now()
		topup.Status = models.TopupStatusRejected
		topup.ApprovedBy = &approverID
		topup.ApprovedAt = &now
		topup.RejectReason = reason
		return tx.Model(&topup).Updates(map[string]any{
			"status":        models.TopupStatusRejected,
			"approved_by":   approverID,
			"approved_at":   now,
			"reject_reason": reason,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &topup, nil
}
