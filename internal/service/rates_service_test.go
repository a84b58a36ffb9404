package service

import (
	"testing"

	"fair-wager-core/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"BTC":  dec("60000"),
		"ETH":  dec("3000"),
		"USDT": dec("1"),
		"USD":  dec("1"),
	}
}

func TestRateService_Rate(t *testing.T) {
	svc := NewRateService(testRates(), zerolog.Nop())

	rate, err := svc.Rate("BTC")
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("60000")))

	_, err = svc.Rate("SHELLS")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_002", appErr.Code)

	// Known asset without a cached rate.
	_, err = svc.Rate("DOGE")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_001", appErr.Code)
}

func TestRateService_ToReferenceTruncates(t *testing.T) {
	svc := NewRateService(testRates(), zerolog.Nop())

	// 0.00015 BTC * 60000 = 9 USD exactly.
	out, err := svc.ToReference("BTC", dec("0.00015"))
	require.NoError(t, err)
	assert.True(t, out.Equal(dec("9")))

	// 0.00012345 BTC * 60000 = 7.407 USD, truncated to 7.40 not rounded to 7.41.
	out, err = svc.ToReference("BTC", dec("0.00012345"))
	require.NoError(t, err)
	assert.True(t, out.Equal(dec("7.40")))
}

func TestRateService_FromReferenceTruncatesToAssetScale(t *testing.T) {
	svc := NewRateService(testRates(), zerolog.Nop())

	// 10 USD / 60000 = 0.000166666... BTC, truncated at 8 decimals.
	out, err := svc.FromReference("BTC", dec("10"))
	require.NoError(t, err)
	assert.True(t, out.Equal(dec("0.00016666")), "got %s", out)
}

func TestRateService_SmallestUnitRoundTrip(t *testing.T) {
	svc := NewRateService(testRates(), zerolog.Nop())

	sats, err := svc.ToSmallestUnit("BTC", dec("0.00000001"))
	require.NoError(t, err)
	assert.True(t, sats.Equal(dec("1")), "one satoshi")

	sats, err = svc.ToSmallestUnit("BTC", dec("1.23456789"))
	require.NoError(t, err)
	assert.True(t, sats.Equal(dec("123456789")))

	back, err := svc.FromSmallestUnit("BTC", sats)
	require.NoError(t, err)
	assert.True(t, back.Equal(dec("1.23456789")))

	// Sub-unit fractions truncate.
	sats, err = svc.ToSmallestUnit("USD", dec("1.009"))
	require.NoError(t, err)
	assert.True(t, sats.Equal(dec("100")))
}

func TestRateService_SetRatesReplacesTable(t *testing.T) {
	svc := NewRateService(testRates(), zerolog.Nop())

	before := svc.UpdatedAt()
	svc.SetRates(map[string]decimal.Decimal{"BTC": dec("65000")})

	rate, err := svc.Rate("BTC")
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("65000")))

	// ETH was dropped by the replacement.
	_, err = svc.Rate("ETH")
	require.Error(t, err)
	assert.False(t, svc.UpdatedAt().Before(before))
}

func TestRateService_NonPositiveRateRejected(t *testing.T) {
	svc := NewRateService(map[string]decimal.Decimal{"BTC": decimal.Zero}, zerolog.Nop())

	_, err := svc.Rate("BTC")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_001", appErr.Code)
}
