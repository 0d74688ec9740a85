package services_test

import (
	"testing"

	"mitrabus/models"
	"mitrabus/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTopup_Pending(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(0))

	topup, err := services.CreateTopup(db, mitra.ID, dec(250000), "transfer", "")
	require.NoError(t, err)

	assert.Equal(t, models.TopupStatusPending, topup.Status)
	assertDecimal(t, dec(0), reloadMitra(t, db, mitra.ID).Balance, "creating a topup must not credit")
	assert.Empty(t, ledgerEntries(t, db, mitra.ID))
}

func TestCreateTopup_Validation(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(0))

	_, err := services.CreateTopup(db, mitra.ID, dec(5000), "transfer", "")
	assert.ErrorIs(t, err, services.ErrValidation, "below minimum amount")

	_, err = services.CreateTopup(db, mitra.ID, dec(50000), "cash", "")
	assert.ErrorIs(t, err, services.ErrValidation, "unknown payment method")

	_, err = services.CreateTopup(db, 9999, dec(50000), "transfer", "")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestApproveTopup_CreditsBalanceOnce(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(0))

	topup, err := services.CreateTopup(db, mitra.ID, dec(1000000), "transfer", "")
	require.NoError(t, err)

	approved, err := services.ApproveTopup(db, topup.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, models.TopupStatusSuccess, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, uint(1), *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	assertDecimal(t, dec(1000000), reloadMitra(t, db, mitra.ID).Balance)

	entries := ledgerEntries(t, db, mitra.ID)
	require.Len(t, entries, 1)
	assertDecimal(t, dec(0), entries[0].BalanceBefore)
	assertDecimal(t, dec(1000000), entries[0].BalanceAfter)
	require.NotNil(t, entries[0].TopupID)
	assert.Equal(t, topup.ID, *entries[0].TopupID)
	assert.Equal(t, "Topup approved", entries[0].Description)
}

func TestApproveTopup_SecondApproveRejected(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(0))

	topup, err := services.CreateTopup(db, mitra.ID, dec(1000000), "va", "")
	require.NoError(t, err)

	_, err = services.ApproveTopup(db, topup.ID, 1)
	require.NoError(t, err)

	_, err = services.ApproveTopup(db, topup.ID, 1)
	assert.ErrorIs(t, err, services.ErrAlreadyProcessed)

	assertDecimal(t, dec(1000000), reloadMitra(t, db, mitra.ID).Balance, "double approve must not double credit")
	assert.Len(t, ledgerEntries(t, db, mitra.ID), 1)
}

func TestRejectTopup_NoBalanceEffect(t *testing.T) {
	db := newTestDB(t)
	mitra := seedMitra(t, db, dec(0))

	topup, err := services.CreateTopup(db, mitra.ID, dec(500000), "ewallet", "")
	require.NoError(t, err)

	rejected, err := services.RejectTopup(db, topup.ID, 1, "proof unreadable")
	require.NoError(t, err)

	assert.Equal(t, models.TopupStatusRejected, rejected.Status)
	assert.Equal(t, "proof unreadable", rejected.RejectReason)
	assertDecimal(t, dec(0), reloadMitra(t, db, mitra.ID).Balance)
	assert.Empty(t, ledgerEntries(t, db, mitra.ID))

	// terminal either way
	_, err = services.ApproveTopup(db, topup.ID, 1)
	assert.ErrorIs(t, err, services.ErrAlreadyProcessed)
	_, err = services.RejectTopup(db, topup.ID, 1, "again")
	assert.ErrorIs(t, err, services.ErrAlreadyProcessed)
}
