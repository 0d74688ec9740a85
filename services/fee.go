package services

import (
	"errors"
	"os"

	"mitrabus/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

type FeeQuote struct {
	Type   string
	Value  decimal.Decimal
	Amount decimal.Decimal
}

// ComputeFee quotes the platform fee for a base amount from the mitra's
// active fee configuration, falling back to the system-wide default when
// none is configured. Percent fees round half-up to 2 decimal places.
func ComputeFee(db *gorm.DB, mitraID uint, base decimal.Decimal) (FeeQuote, error) {
	var cfg models.PartnerFee
	err := db.Where("mitra_id = ? AND active = ?", mitraID, true).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = defaultFeeConfig()
	} else if err != nil {
		return FeeQuote{}, err
	}

	quote := FeeQuote{Type: cfg.Type, Value: cfg.Value}
	switch cfg.Type {
	case models.FeeTypeFlat:
		quote.Amount = cfg.Value.Round(2)
	default:
		quote.Amount = base.Mul(cfg.Value).Div(oneHundred).Round(2)
	}
	return quote, nil
}

// defaultFeeConfig reads DEFAULT_FEE_TYPE / DEFAULT_FEE_VALUE, shipping
// with a 5 percent default when unset.
func defaultFeeConfig() models.PartnerFee {
	feeType := os.Getenv("DEFAULT_FEE_TYPE")
	if feeType != models.FeeTypeFlat {
		feeType = models.FeeTypePercent
	}
	value := decimal.NewFromInt(5)
	if raw := os.Getenv("DEFAULT_FEE_VALUE"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil && !v.IsNegative() {
			value = v
		}
	}
	return models.PartnerFee{Type: feeType, Value: value}
}
