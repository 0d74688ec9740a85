package services

import (
	"fmt"

	"mitrabus/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentCallback struct {
	TrxCode    string `json:"trx_code"`
	Status     string `json:"status"`
	PaymentRef string `json:"payment_ref"`
}

type TicketCallback struct {
	TrxCode      string `json:"trx_code"`
	Status       string `json:"status"`
	TicketNumber string `json:"ticket_number"`
	QRCode       string `json:"qr_code"`
}

func isTerminal(status string) bool {
	switch status {
	case models.TrxStatusIssued, models.TrxStatusCancelled, models.TrxStatusFailed:
		return true
	}
	return false
}

// ApplyPaymentCallback applies an asynchronous provider payment signal.
// It drives the same transitions as Pay, under the same atomic unit and
// the same balance rules. Re-delivery for a transaction that already
// reached a terminal state is a no-op, not an error.
func ApplyPaymentCallback(db *gorm.DB, cb PaymentCallback, payload []byte) (*models.Transaction, error) {
	if cb.Status != "success" && cb.Status != "failed" {
		return nil, fmt.Errorf("%w: payment status must be success or failed", ErrValidation)
	}

	var trx models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockTransaction(tx, cb.TrxCode, &trx); err != nil {
			return err
		}
		if isTerminal(trx.Status) {
			return nil
		}

		if cb.Status == "success" {
			// Re-delivered success for an already-paid transaction: the
			// debit already happened, acknowledge without a second entry.
			if trx.Status == models.TrxStatusPaid {
				return nil
			}
			mitra, err := LockMitra(tx, trx.MitraID)
			if err != nil {
				return err
			}
			if _, err := Debit(tx, mitra, trx.Amount, LedgerRef{TrxCode: trx.TrxCode}, "Payment for "+trx.TrxCode); err != nil {
				return err
			}
			trx.Status = models.TrxStatusPaid
			if err := tx.Model(&trx).Update("status", models.TrxStatusPaid).Error; err != nil {
				return err
			}
			return appendProviderEvent(tx, &trx, models.ProviderEventPayment, cb.Status, cb.PaymentRef, payload)
		}

		// Payment failed upstream: release the funds if they were taken.
		if trx.Status == models.TrxStatusPaid {
			mitra, err := LockMitra(tx, trx.MitraID)
			if err != nil {
				return err
			}
			if _, err := Credit(tx, mitra, trx.Amount, LedgerRef{TrxCode: trx.TrxCode}, "Refund for "+trx.TrxCode); err != nil {
				return err
			}
		}
		trx.Status = models.TrxStatusFailed
		if err := tx.Model(&trx).Update("status", models.TrxStatusFailed).Error; err != nil {
			return err
		}
		return appendProviderEvent(tx, &trx, models.ProviderEventPayment, cb.Status, cb.PaymentRef, payload)
	})
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

// ApplyTicketCallback applies an asynchronous ticketing signal, mirroring
// Issue and Cancel. Terminal transactions absorb re-deliveries silently.
func ApplyTicketCallback(db *gorm.DB, cb TicketCallback, payload []byte) (*models.Transaction, error) {
	if cb.Status != "issued" && cb.Status != "cancelled" && cb.Status != "failed" {
		return nil, fmt.Errorf("%w: ticket status must be issued, cancelled or failed", ErrValidation)
	}

	var trx models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockTransaction(tx, cb.TrxCode, &trx); err != nil {
			return err
		}
		if isTerminal(trx.Status) {
			return nil
		}

		switch cb.Status {
		case "issued":
			if _, err := issueLocked(tx, &trx); err != nil {
				return err
			}
		case "cancelled", "failed":
			if trx.Status == models.TrxStatusPaid {
				mitra, err := LockMitra(tx, trx.MitraID)
				if err != nil {
					return err
				}
				if _, err := Credit(tx, mitra, trx.Amount, LedgerRef{TrxCode: trx.TrxCode}, "Refund for "+trx.TrxCode); err != nil {
					return err
				}
			}
			next := models.TrxStatusCancelled
			if cb.Status == "failed" {
				next = models.TrxStatusFailed
			}
			trx.Status = next
			if err := tx.Model(&trx).Update("status", next).Error; err != nil {
				return err
			}
		}
		return appendProviderEvent(tx, &trx, models.ProviderEventTicket, cb.Status, cb.TicketNumber, payload)
	})
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

func appendProviderEvent(tx *gorm.DB, trx *models.Transaction, kind, status, reference string, payload []byte) error {
	event := models.ProviderEvent{
		TransactionID: trx.ID,
		Kind:          kind,
		Status:        status,
		Reference:     reference,
		Payload:       datatypes.JSON(payload),
	}
	return tx.Create(&event).Error
}
