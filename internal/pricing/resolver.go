// Package pricing resolves the price and patient liability of a billable
// item from the selected payment mode and already fetched price records.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/easymed/billing/internal/entity"
)

// Resolve decides the listed amount and patient liability for one billable
// item. It is a pure function of its arguments: callers fetch the payment
// mode, the item's current catalog price and, for insurance modes, the
// negotiated price, and pass them in.
//
// The fallback chain:
//
//  1. insurance mode with a negotiated price: listed = negotiated sale price,
//     liability = co-pay;
//  2. insurance mode without one (no negotiated record, or a mode row
//     missing its insurer): cash price for both, flagged cash_fallback so
//     the gap can be reconciled later;
//  3. any other mode: cash price for both;
//  4. no mode chosen yet: cash price for both, source unknown.
//
// Missing price data never fails resolution; it degrades to a zero cash
// price so that item creation always goes through.
func Resolve(mode *entity.PaymentMode, catalog *entity.CatalogPrice, negotiated *entity.NegotiatedPrice) entity.PricingResult {
	cashPrice := decimal.Zero
	if catalog != nil {
		cashPrice = catalog.CashPrice
	}

	if mode == nil {
		return entity.PricingResult{
			ListedAmount:     cashPrice,
			PatientLiability: cashPrice,
			Source:           entity.PriceSourceUnknown,
		}
	}

	if mode.Category == entity.PaymentCategoryInsurance {
		if mode.InsurerID != nil && negotiated != nil {
			// Liability never exceeds the listed amount, even if a contract
			// row carries a co-pay above its own sale price.
			liability := negotiated.CoPay
			if liability.GreaterThan(negotiated.SalePrice) {
				liability = negotiated.SalePrice
			}

			return entity.PricingResult{
				ListedAmount:     negotiated.SalePrice,
				PatientLiability: liability,
				Source:           entity.PriceSourceInsurance,
			}
		}

		return entity.PricingResult{
			ListedAmount:     cashPrice,
			PatientLiability: cashPrice,
			Source:           entity.PriceSourceCashFallback,
		}
	}

	return entity.PricingResult{
		ListedAmount:     cashPrice,
		PatientLiability: cashPrice,
		Source:           entity.PriceSourceCash,
	}
}
