package services

import "github.com/shopspring/decimal"

// PriceQuoter is the pricing collaborator consumed by Book. The core
// treats it as an opaque per-seat price source.
type PriceQuoter interface {
	SeatPrice(providerCode string) (decimal.Decimal, error)
}

// CatalogPricing is a static catalog with a fallback price, standing in
// for the upstream schedule/pricing feed.
type CatalogPricing struct {
	prices   map[string]decimal.Decimal
	fallback decimal.Decimal
}

func NewCatalogPricing() *CatalogPricing {
	return &CatalogPricing{
		prices: map[string]decimal.Decimal{
			"BUS001": decimal.NewFromInt(150000),
			"BUS002": decimal.NewFromInt(175000),
			"BUS003": decimal.NewFromInt(125000),
		},
		fallback: decimal.NewFromInt(150000),
	}
}

func (p *CatalogPricing) SeatPrice(providerCode string) (decimal.Decimal, error) {
	if price, ok := p.prices[providerCode]; ok {
		return price, nil
	}
	return p.fallback, nil
}
