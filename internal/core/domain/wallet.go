package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is the per-account, per-asset running balance. The balance is a
// materialized running total: it is mutated only inside a committed ledger
// transaction and always equals the signed sum of all committed journal
// entries for this (account, asset) pair.
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	AccountID uuid.UUID       `json:"account_id"`
	Asset     string          `json:"asset"`
	Balance   decimal.Decimal `json:"balance"`
	IsPrimary bool            `json:"is_primary"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// assetScales maps supported assets to their smallest-unit decimal places.
var assetScales = map[string]int32{
	"BTC":  8,
	"ETH":  8,
	"LTC":  8,
	"DOGE": 8,
	"USDT": 6,
	"USD":  2,
	"EUR":  2,
}

// AssetScale returns the smallest-unit scale for an asset and whether the
// asset is supported.
func AssetScale(asset string) (int32, bool) {
	scale, ok := assetScales[asset]
	return scale, ok
}

// KnownAsset reports whether the asset is supported by the ledger.
func KnownAsset(asset string) bool {
	_, ok := assetScales[asset]
	return ok
}
