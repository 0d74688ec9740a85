package services

import (
	"errors"
	"fmt"

	"mitrabus/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRef links a ledger entry back to the operation that produced it:
// a topup id for topup credits, a trx code for payments and refunds.
type LedgerRef struct {
	TopupID *uint
	TrxCode string
}

// forUpdate adds a row lock so concurrent balance mutations against the
// same mitra serialize on the database. SQLite (used by the test suite)
// has no FOR UPDATE; its single-writer lock gives the same guarantee.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// LockMitra fetches the mitra row FOR UPDATE. Every balance-affecting
// operation must go through this inside its db.Transaction so that no
// two writers ever compute balance_after from a stale balance_before.
func LockMitra(tx *gorm.DB, mitraID uint) (*models.Mitra, error) {
	var mitra models.Mitra
	if err := forUpdate(tx).First(&mitra, mitraID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: mitra %d", ErrNotFound, mitraID)
		}
		return nil, err
	}
	return &mitra, nil
}

// Credit adds amount to the mitra's balance and appends one ledger entry.
// The caller must hold the mitra row locked inside an open transaction.
func Credit(tx *gorm.DB, mitra *models.Mitra, amount decimal.Decimal, ref LedgerRef, description string) (*models.TopupHistory, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: credit amount must be positive", ErrValidation)
	}
	return appendEntry(tx, mitra, amount, ref, description)
}

// Debit subtracts amount from the mitra's balance. Fails with
// ErrInsufficientBalance before touching anything if the balance does
// not cover the amount; the ledger entry carries a signed (negative)
// amount so that balance_after = balance_before + amount always holds.
func Debit(tx *gorm.DB, mitra *models.Mitra, amount decimal.Decimal, ref LedgerRef, description string) (*models.TopupHistory, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: debit amount must be positive", ErrValidation)
	}
	if mitra.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance %s, need %s", ErrInsufficientBalance, mitra.Balance, amount)
	}
	return appendEntry(tx, mitra, amount.Neg(), ref, description)
}

func appendEntry(tx *gorm.DB, mitra *models.Mitra, amount decimal.Decimal, ref LedgerRef, description string) (*models.TopupHistory, error) {
	before := mitra.Balance
	after := before.Add(amount)

	if err := tx.Model(mitra).Update("balance", after).Error; err != nil {
		return nil, err
	}
	mitra.Balance = after

	entry := models.TopupHistory{
		TopupID:       ref.TopupID,
		TrxCode:       ref.TrxCode,
		MitraID:       mitra.ID,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   description,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
