package service

import (
	"fmt"
	"sync"
	"time"

	"fair-wager-core/internal/core/domain"
	"fair-wager-core/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// referenceScale is the precision of reference-currency (USD) amounts.
const referenceScale = 2

// RateServiceImpl implements ports.RateService with an in-memory rate table.
// Rates are pushed in by an external refresh schedule; reads are lock-guarded
// map lookups and never touch the network, so ledger transaction duration is
// dominated only by the persistence commit.
type RateServiceImpl struct {
	mu        sync.RWMutex
	rates     map[string]decimal.Decimal // asset -> reference units per 1 asset
	updatedAt time.Time
	log       zerolog.Logger
}

// NewRateService creates a RateServiceImpl seeded with an initial rate table.
func NewRateService(initial map[string]decimal.Decimal, log zerolog.Logger) *RateServiceImpl {
	rates := make(map[string]decimal.Decimal, len(initial))
	for asset, rate := range initial {
		rates[asset] = rate
	}
	return &RateServiceImpl{
		rates:     rates,
		updatedAt: time.Now().UTC(),
		log:       log,
	}
}

// SetRates atomically replaces the cached rate table.
func (s *RateServiceImpl) SetRates(rates map[string]decimal.Decimal) {
	next := make(map[string]decimal.Decimal, len(rates))
	for asset, rate := range rates {
		next[asset] = rate
	}

	s.mu.Lock()
	s.rates = next
	s.updatedAt = time.Now().UTC()
	s.mu.Unlock()

	s.log.Debug().Int("assets", len(next)).Msg("rate table refreshed")
}

// Rate returns the reference-currency rate for one unit of the asset.
func (s *RateServiceImpl) Rate(asset string) (decimal.Decimal, error) {
	if !domain.KnownAsset(asset) {
		return decimal.Zero, apperror.ErrUnknownAsset(asset)
	}

	s.mu.RLock()
	rate, ok := s.rates[asset]
	s.mu.RUnlock()

	if !ok {
		return decimal.Zero, apperror.ErrValidation(fmt.Sprintf("no rate cached for asset %q", asset))
	}
	if !rate.IsPositive() {
		return decimal.Zero, apperror.ErrValidation(fmt.Sprintf("cached rate for %q is not positive", asset))
	}
	return rate, nil
}

// ToReference converts an asset amount to the reference currency, truncated
// to reference precision. Truncation rounds in the operator's favor.
func (s *RateServiceImpl) ToReference(asset string, amount decimal.Decimal) (decimal.Decimal, error) {
	rate, err := s.Rate(asset)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Truncate(referenceScale), nil
}

// FromReference converts a reference-currency amount to the asset, truncated
// to the asset's smallest-unit scale.
func (s *RateServiceImpl) FromReference(asset string, amount decimal.Decimal) (decimal.Decimal, error) {
	rate, err := s.Rate(asset)
	if err != nil {
		return decimal.Zero, err
	}
	scale, _ := domain.AssetScale(asset)
	return amount.Div(rate).Truncate(scale), nil
}

// ToSmallestUnit converts a decimal asset amount into integral smallest
// units (e.g. BTC -> satoshi). Fractions below one unit are truncated.
func (s *RateServiceImpl) ToSmallestUnit(asset string, amount decimal.Decimal) (decimal.Decimal, error) {
	scale, ok := domain.AssetScale(asset)
	if !ok {
		return decimal.Zero, apperror.ErrUnknownAsset(asset)
	}
	return amount.Shift(scale).Truncate(0), nil
}

// FromSmallestUnit converts integral smallest units back to the decimal
// asset amount.
func (s *RateServiceImpl) FromSmallestUnit(asset string, units decimal.Decimal) (decimal.Decimal, error) {
	scale, ok := domain.AssetScale(asset)
	if !ok {
		return decimal.Zero, apperror.ErrUnknownAsset(asset)
	}
	return units.Shift(-scale), nil
}

// UpdatedAt reports when the rate table was last refreshed.
func (s *RateServiceImpl) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
