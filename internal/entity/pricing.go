package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogPrice is the current cash price of a catalog item. The most recently
// created active row for an item (highest id) is the one that applies.
type CatalogPrice struct {
	ID        int64
	ItemID    int64
	CashPrice decimal.Decimal
	CreatedAt time.Time
}

// NegotiatedPrice is an insurer specific price and co-pay for a catalog item.
// At most one row exists per (item, insurer) pair.
type NegotiatedPrice struct {
	ID        int64
	ItemID    int64
	InsurerID int64
	SalePrice decimal.Decimal
	CoPay     decimal.Decimal
}

// PriceSource tells where a resolved price came from. PriceSourceCashFallback
// flags that insurance was selected but no negotiated price exists; callers
// surface it for reconciliation instead of treating it as an error.
type PriceSource string

const (
	PriceSourceInsurance    PriceSource = "insurance"
	PriceSourceCash         PriceSource = "cash"
	PriceSourceCashFallback PriceSource = "cash_fallback"
	PriceSourceUnknown      PriceSource = "unknown"
)

func (s PriceSource) String() string {
	return string(s)
}

type PricingResult struct {
	ListedAmount     decimal.Decimal
	PatientLiability decimal.Decimal
	Source           PriceSource
}
