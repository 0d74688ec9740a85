package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mitrabus/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultBookingExpiryMinutes = 30

type PassengerInput struct {
	Name           string `json:"name"`
	IdentityNumber string `json:"identity_number"`
}

type BookingInput struct {
	ProviderCode string           `json:"provider_code"`
	Route        string           `json:"route"`
	TravelDate   time.Time        `json:"travel_date"`
	Seats        []string         `json:"seats"`
	Passengers   []PassengerInput `json:"passengers"`
}

func (in BookingInput) validate() error {
	if strings.TrimSpace(in.ProviderCode) == "" {
		return fmt.Errorf("%w: provider_code is required", ErrValidation)
	}
	if in.TravelDate.IsZero() {
		return fmt.Errorf("%w: travel_date is required", ErrValidation)
	}
	if len(in.Seats) == 0 {
		return fmt.Errorf("%w: at least one seat is required", ErrValidation)
	}
	if len(in.Seats) != len(in.Passengers) {
		return fmt.Errorf("%w: passenger count (%d) does not match seat count (%d)",
			ErrValidation, len(in.Passengers), len(in.Seats))
	}
	for i, p := range in.Passengers {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.IdentityNumber) == "" {
			return fmt.Errorf("%w: passenger %d needs name and identity_number", ErrValidation, i+1)
		}
	}
	return nil
}

// Book creates a pending transaction with a unique trx code. Amount is
// seat count times the collaborator's unit price, fixed at booking time.
// No balance is touched until Pay.
func Book(db *gorm.DB, pricing PriceQuoter, mitraID, userID uint, in BookingInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var mitra models.Mitra
	if err := db.First(&mitra, mitraID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: mitra %d", ErrNotFound, mitraID)
		}
		return nil, err
	}
	if mitra.Status != models.MitraStatusActive {
		return nil, fmt.Errorf("%w: mitra %s is not active", ErrValidation, mitra.Code)
	}

	unitPrice, err := pricing.SeatPrice(in.ProviderCode)
	if err != nil {
		return nil, err
	}

	trx := models.Transaction{
		TrxCode:      generateTrxCode(),
		MitraID:      mitraID,
		UserID:       userID,
		ProviderCode: in.ProviderCode,
		Route:        in.Route,
		TravelDate:   in.TravelDate,
		PaymentType:  "deposit",
		Amount:       unitPrice.Mul(decimal.NewFromInt(int64(len(in.Seats)))),
		Status:       models.TrxStatusPending,
		ExpiredAt:    time.Now().Add(bookingExpiry()),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trx).Error; err != nil {
			return err
		}
		for i, p := range in.Passengers {
			passenger := models.TransactionPassenger{
				TransactionID:  trx.ID,
				Name:           p.Name,
				IdentityNumber: p.IdentityNumber,
				SeatNumber:     in.Seats[i],
			}
			if err := tx.Create(&passenger).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

// Pay debits the owning mitra's balance for the full amount and moves
// the transaction to paid. Debit and status change commit together.
func Pay(db *gorm.DB, trxCode string, caller Principal) (*models.Transaction, *models.TopupHistory, error) {
	var trx models.Transaction
	var entry *models.TopupHistory

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockTransaction(tx, trxCode, &trx); err != nil {
			return err
		}
		if !caller.OwnsMitra(trx.MitraID) {
			return fmt.Errorf("%w: transaction %s belongs to another mitra", ErrUnauthorized, trxCode)
		}
		if trx.Status != models.TrxStatusPending {
			return fmt.Errorf("%w: transaction %s is already %s", ErrAlreadyProcessed, trxCode, trx.Status)
		}

		mitra, err := LockMitra(tx, trx.MitraID)
		if err != nil {
			return err
		}
		entry, err = Debit(tx, mitra, trx.Amount, LedgerRef{TrxCode: trx.TrxCode}, "Payment for "+trx.TrxCode)
		if err != nil {
			return err
		}

		trx.Status = models.TrxStatusPaid
		return tx.Model(&trx).Update("status", models.TrxStatusPaid).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &trx, entry, nil
}

// Issue confirms a paid transaction with the provider and captures the
// platform fee: one TransactionFee row plus one fee ledger credit. The
// fee is platform revenue and does not touch the mitra's balance.
func Issue(db *gorm.DB, trxCode string, caller Principal) (*models.Transaction, *models.TransactionFee, error) {
	var trx models.Transaction
	var fee *models.TransactionFee

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockTransaction(tx, trxCode, &trx); err != nil {
			return err
		}
		if !caller.OwnsMitra(trx.MitraID) {
			return fmt.Errorf("%w: transaction %s belongs to another mitra", ErrUnauthorized, trxCode)
		}

		var err error
		fee, err = issueLocked(tx, &trx)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &trx, fee, nil
}

// issueLocked performs the paid->issued transition and fee capture on a
// transaction row the caller already holds locked. Shared with the
// ticket callback path so both apply identical rules.
func issueLocked(tx *gorm.DB, trx *models.Transaction) (*models.TransactionFee, error) {
	if trx.Status != models.TrxStatusPaid {
		return nil, fmt.Errorf("%w: transaction %s is %s", ErrNotPaid, trx.TrxCode, trx.Status)
	}

	quote, err := ComputeFee(tx, trx.MitraID, trx.Amount)
	if err != nil {
		return nil, err
	}

	fee := models.TransactionFee{
		TransactionID: trx.ID,
		MitraID:       trx.MitraID,
		FeeType:       quote.Type,
		FeeValue:      quote.Value,
		FeeAmount:     quote.Amount,
	}
	if err := tx.Create(&fee).Error; err != nil {
		return nil, err
	}

	ledger := models.PartnerFeeLedger{
		MitraID:       trx.MitraID,
		TransactionID: trx.ID,
		Amount:        quote.Amount,
		Type:          models.FeeLedgerCredit,
		Description:   "Fee from transaction " + trx.TrxCode,
	}
	if err := tx.Create(&ledger).Error; err != nil {
		return nil, err
	}

	trx.Status = models.TrxStatusIssued
	if err := tx.Model(trx).Update("status", models.TrxStatusIssued).Error; err != nil {
		return nil, err
	}
	return &fee, nil
}

// Cancel voids a pending or paid transaction. A paid transaction is
// refunded in full before the status flips; the reported refund is zero
// when nothing had been debited.
func Cancel(db *gorm.DB, trxCode string, caller Principal, reason string) (*models.Transaction, decimal.Decimal, error) {
	var trx models.Transaction
	refund := decimal.Zero

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockTransaction(tx, trxCode, &trx); err != nil {
			return err
		}
		if !caller.OwnsMitra(trx.MitraID) {
			return fmt.Errorf("%w: transaction %s belongs to another mitra", ErrUnauthorized, trxCode)
		}
		if trx.Status != models.TrxStatusPending && trx.Status != models.TrxStatusPaid {
			return fmt.Errorf("%w: transaction %s is %s", ErrCannotCancel, trxCode, trx.Status)
		}

		if trx.Status == models.TrxStatusPaid {
			mitra, err := LockMitra(tx, trx.MitraID)
			if err != nil {
				return err
			}
			if _, err := Credit(tx, mitra, trx.Amount, LedgerRef{TrxCode: trx.TrxCode}, "Refund for "+trx.TrxCode); err != nil {
				return err
			}
			refund = trx.Amount
		}

		trx.Status = models.TrxStatusCancelled
		trx.CancelReason = reason
		return tx.Model(&trx).Updates(map[string]any{
			"status":        models.TrxStatusCancelled,
			"cancel_reason": reason,
		}).Error
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return &trx, refund, nil
}

// GetTransaction loads a transaction with its passengers, fee and
// provider events, enforcing mitra ownership for non-admin callers.
func GetTransaction(db *gorm.DB, trxCode string, caller Principal) (*models.Transaction, error) {
	var trx models.Transaction
	err := db.Preload("Passengers").Preload("Fee").Preload("Events").Preload("Mitra").
		Where("trx_code = ?", trxCode).First(&trx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction %s", ErrNotFound, trxCode)
		}
		return nil, err
	}
	if !caller.OwnsMitra(trx.MitraID) {
		return nil, fmt.Errorf("%w: transaction %s belongs to another mitra", ErrUnauthorized, trxCode)
	}
	return &trx, nil
}

// ExpireStaleBookings cancels pending transactions whose booking window
// lapsed. Pending bookings hold no funds, so this is a pure status sweep.
func ExpireStaleBookings(db *gorm.DB) (int64, error) {
	res := db.Model(&models.Transaction{}).
		Where("status = ? AND expired_at < ?", models.TrxStatusPending, time.Now()).
		Updates(map[string]any{
			"status":        models.TrxStatusCancelled,
			"cancel_reason": "Booking expired",
		})
	return res.RowsAffected, res.Error
}

func lockTransaction(tx *gorm.DB, trxCode string, trx *models.Transaction) error {
	if err := forUpdate(tx).Where("trx_code = ?", trxCode).First(trx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: transaction %s", ErrNotFound, trxCode)
		}
		return err
	}
	return nil
}

func bookingExpiry() time.Duration {
	if raw := os.Getenv("BOOKING_EXPIRY_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultBookingExpiryMinutes * time.Minute
}
