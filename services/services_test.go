package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"mitrabus/database"
	"mitrabus/models"
	"mitrabus/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func seedMitra(t *testing.T, db *gorm.DB, balance decimal.Decimal) *models.Mitra {
	t.Helper()

	mitra := models.Mitra{
		Code:    fmt.Sprintf("MTR%06d", atomic.AddInt64(&dbSeq, 1)),
		Name:    "Test Mitra",
		Email:   fmt.Sprintf("mitra%d@example.com", atomic.AddInt64(&dbSeq, 1)),
		Phone:   "08123456789",
		Status:  models.MitraStatusActive,
		Balance: balance,
	}
	require.NoError(t, db.Create(&mitra).Error)
	return &mitra
}

func reloadMitra(t *testing.T, db *gorm.DB, id uint) *models.Mitra {
	t.Helper()

	var mitra models.Mitra
	require.NoError(t, db.First(&mitra, id).Error)
	return &mitra
}

func ledgerEntries(t *testing.T, db *gorm.DB, mitraID uint) []models.TopupHistory {
	t.Helper()

	var entries []models.TopupHistory
	require.NoError(t, db.Where("mitra_id = ?", mitraID).Order("id").Find(&entries).Error)
	return entries
}

func adminPrincipal() services.Principal {
	return services.Principal{UserID: 1, Role: models.RoleAdmin}
}

func mitraPrincipal(mitraID uint) services.Principal {
	id := mitraID
	return services.Principal{UserID: 2, MitraID: &id, Role: models.RoleMitra}
}

func assertDecimal(t *testing.T, want, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.Truef(t, want.Equal(got), "want %s, got %s (%v)", want, got, msgAndArgs)
}

func travelDate() time.Time {
	return time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
}

func bookTestTrx(t *testing.T, db *gorm.DB, mitraID uint, seats int) *models.Transaction {
	t.Helper()

	in := services.BookingInput{
		ProviderCode: "BUS001",
		Route:        "Jakarta - Bandung",
		TravelDate:   travelDate(),
	}
	for i := 0; i < seats; i++ {
		in.Seats = append(in.Seats, fmt.Sprintf("A%d", i+1))
		in.Passengers = append(in.Passengers, services.PassengerInput{
			Name:           fmt.Sprintf("Passenger %d", i+1),
			IdentityNumber: fmt.Sprintf("317%010d", i+1),
		})
	}
	trx, err := services.Book(db, services.NewCatalogPricing(), mitraID, 2, in)
	require.NoError(t, err)
	return trx
}
