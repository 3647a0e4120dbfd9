package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shakotgabriel/tanina/internal/apperrors"
	"github.com/shakotgabriel/tanina/internal/core/domain"
	portssvc "github.com/shakotgabriel/tanina/internal/core/ports/services"
)

// exchangeRateService resolves conversion rates from an injected table
// keyed by "{FROM}_{TO}". The table is configuration, not a hidden global;
// a production deployment would swap in a live feed behind the same facade.
type exchangeRateService struct {
	rates map[string]decimal.Decimal
}

// NewExchangeRateService creates an ExchangeRateService over the given
// rate table. The map is copied so later config mutation cannot leak in.
func NewExchangeRateService(rates map[string]decimal.Decimal) portssvc.ExchangeRateSvcFacade {
	table := make(map[string]decimal.Decimal, len(rates))
	for k, v := range rates {
		table[k] = v
	}
	return &exchangeRateService{rates: table}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// GetExchangeRate returns the conversion multiplier from one currency to
// another. Identical currencies always yield 1. Rates are directional:
// the reverse of a configured pair is not derived automatically.
func (s *exchangeRateService) GetExchangeRate(from, to domain.CurrencyCode) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	rate, ok := s.rates[domain.RatePairKey(from, to)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate configured for %s to %s", apperrors.ErrRateNotFound, from, to)
	}
	return rate, nil
}

// ConvertAmount converts amount from one currency to another using the
// configured rate. Decimal multiplication is exact; any rounding policy
// belongs to the caller-facing layer, not the ledger.
func (s *exchangeRateService) ConvertAmount(amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	rate, err := s.GetExchangeRate(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}
