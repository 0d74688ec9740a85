package services_test

import (
	"testing"

	"mitrabus/models"
	"mitrabus/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func providerEvents(t *testing.T, db *gorm.DB, trxID uint) []models.ProviderEvent {
	t.Helper()

	var events []models.ProviderEvent
	require.NoError(t, db.Where("transaction_id = ?", trxID).Order("id").Find(&events).Error)
	return events
}

func TestPaymentCallback_SuccessDebitsAndPays(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(500000))
	trx := bookTestTrx(t, db, mitra.ID, 1)

	payload := []byte(`{"trx_code":"` + trx.TrxCode + `","status":"success","payment_ref":"PAY-1"}`)
	result, err := services.ApplyPaymentCallback(db, services.PaymentCallback{
		TrxCode:    trx.TrxCode,
		Status:     "success",
		PaymentRef: "PAY-1",
	}, payload)
	require.NoError(t, err)

	assert.Equal(t, models.TrxStatusPaid, result.Status)
	assertDecimal(t, dec(350000), reloadMitra(t, db, mitra.ID).Balance)

	events := providerEvents(t, db, trx.ID)
	require.Len(t, events, 1)
	assert.Equal(t, models.ProviderEventPayment, events[0].Kind)
	assert.Equal(t, "success", events[0].Status)
	assert.Equal(t, "PAY-1", events[0].Reference)
	assert.JSONEq(t, string(payload), string(events[0].Payload))
}

func TestPaymentCallback_SuccessRedeliveredIsNoop(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(500000))
	trx := bookTestTrx(t, db, mitra.ID, 1)

	cb := services.PaymentCallback{TrxCode: trx.TrxCode, Status: "success", PaymentRef: "PAY-1"}
	_, err := services.ApplyPaymentCallback(db, cb, []byte(`{}`))
	require.NoError(t, err)

	result, err := services.ApplyPaymentCallback(db, cb, []byte(`{}`))
	require.NoError(t, err, "re-delivery must not be an error")
	assert.Equal(t, models.TrxStatusPaid, result.Status)

	assertDecimal(t, dec(350000), reloadMitra(t, db, mitra.ID).Balance, "no double debit")
	assert.Len(t, ledgerEntries(t, db, mitra.ID), 1)
	assert.Len(t, providerEvents(t, db, trx.ID), 1)
}

func TestPaymentCallback_FailedAfterPaidRefunds(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(500000))
	trx := bookTestTrx(t, db, mitra.ID, 1)
	_, _, err := services.Pay(db, trx.TrxCode, mitraPrincipal(mitra.ID))
	require.NoError(t, err)

	result, err := services.ApplyPaymentCallback(db, services.PaymentCallback{
		TrxCode: trx.TrxCode,
		Status:  "failed",
	}, []byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, models.TrxStatusFailed, result.Status)
	assertDecimal(t, dec(500000), reloadMitra(t, db, mitra.ID).Balance, "failed payment releases the debit")

	entries := ledgerEntries(t, db, mitra.ID)
	require.Len(t, entries, 2)
	assertDecimal(t, dec(150000), entries[1].Amount)
}

func TestPaymentCallback_InsufficientBalanceRejected(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(1000))
	trx := bookTestTrx(t, db, mitra.ID, 1)

	_, err := services.ApplyPaymentCallback(db, services.PaymentCallback{
		TrxCode: trx.TrxCode,
		Status:  "success",
	}, []byte(`{}`))
	assert.ErrorIs(t, err, services.ErrInsufficientBalance)

	var reloaded models.Transaction
	require.NoError(t, db.First(&reloaded, trx.ID).Error)
	assert.Equal(t, models.TrxStatusPending, reloaded.Status)
	assert.Empty(t, providerEvents(t, db, trx.ID), "aborted unit must leave no event behind")
}

func TestPaymentCallback_UnknownStatusRejected(t *testing.T) {
	db := newTestDB(t)

	_, err := services.ApplyPaymentCallback(db, services.PaymentCallback{
		TrxCode: "TRX1",
		Status:  "maybe",
	}, []byte(`{}`))
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestTicketCallback_IssuedCapturesFee(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(500000))
	_, err := services.UpsertPartnerFee(db, mitra.ID, models.FeeTypePercent, dec(5))
	require.NoError(t, err)

	trx := bookTestTrx(t, db, mitra.ID, 1)
	_, _, err = services.Pay(db, trx.TrxCode, mitraPrincipal(mitra.ID))
	require.NoError(t, err)

	result, err := services.ApplyTicketCallback(db, services.TicketCallback{
		TrxCode:      trx.TrxCode,
		Status:       "issued",
		TicketNumber: "TKT-42",
	}, []byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, models.TrxStatusIssued, result.Status)

	var fee models.TransactionFee
	require.NoError(t, db.Where("transaction_id = ?", trx.ID).First(&fee).Error)
	assertDecimal(t, dec(7500), fee.FeeAmount)

	events := providerEvents(t, db, trx.ID)
	require.Len(t, events, 1)
	assert.Equal(t, models.ProviderEventTicket, events[0].Kind)
	assert.Equal(t, "TKT-42", events[0].Reference)
}

func TestTicketCallback_IssuedBeforePaymentRejected(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(500000))
	trx := bookTestTrx(t, db, mitra.ID, 1)

	_, err := services.ApplyTicketCallback(db, services.TicketCallback{
		TrxCode: trx.TrxCode,
		Status:  "issued",
	}, []byte(`{}`))
	assert.ErrorIs(t, err, services.ErrNotPaid)
}

func TestTicketCallback_CancelledRefundsPaid(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(500000))
	trx := bookTestTrx(t, db, mitra.ID, 1)
	_, _, err := services.Pay(db, trx.TrxCode, mitraPrincipal(mitra.ID))
	require.NoError(t, err)

	result, err := services.ApplyTicketCallback(db, services.TicketCallback{
		TrxCode: trx.TrxCode,
		Status:  "cancelled",
	}, []byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, models.TrxStatusCancelled, result.Status)
	assertDecimal(t, dec(500000), reloadMitra(t, db, mitra.ID).Balance)
}

func TestTicketCallback_RedeliveryAfterTerminalIsNoop(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(500000))
	_, err := services.UpsertPartnerFee(db, mitra.ID, models.FeeTypeFlat, dec(2000))
	require.NoError(t, err)

	trx := bookTestTrx(t, db, mitra.ID, 1)
	_, _, err = services.Pay(db, trx.TrxCode, mitraPrincipal(mitra.ID))
	require.NoError(t, err)

	issueCb := services.TicketCallback{TrxCode: trx.TrxCode, Status: "issued"}
	_, err = services.ApplyTicketCallback(db, issueCb, []byte(`{}`))
	require.NoError(t, err)

	// re-delivered issue, then a late cancel: both must be absorbed
	result, err := services.ApplyTicketCallback(db, issueCb, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, models.TrxStatusIssued, result.Status)

	result, err = services.ApplyTicketCallback(db, services.TicketCallback{
		TrxCode: trx.TrxCode,
		Status:  "cancelled",
	}, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, models.TrxStatusIssued, result.Status, "terminal state wins over late callbacks")

	var fees []models.TransactionFee
	require.NoError(t, db.Where("transaction_id = ?", trx.ID).Find(&fees).Error)
	assert.Len(t, fees, 1)
	assert.Len(t, providerEvents(t, db, trx.ID), 1)
	assertDecimal(t, dec(350000), reloadMitra(t, db, mitra.ID).Balance, "no refund after issuance")
}

func TestTicketCallback_UnknownTransaction(t *testing.T) {
	db := newTestDB(t)

	_, err := services.ApplyTicketCallback(db, services.TicketCallback{
		TrxCode: "TRXMISSING",
		Status:  "issued",
	}, []byte(`{}`))
	assert.ErrorIs(t, err, services.ErrNotFound)
}
