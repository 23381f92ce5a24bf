package entity

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AllocationPlan is the outcome of spreading one payment across invoice
// items: the allocations to create, the amount to add to each invoice's
// cash_paid, and whatever surplus was left unapplied.
type AllocationPlan struct {
	Allocations []PaymentAllocation
	PerInvoice  map[int64]decimal.Decimal
	Remaining   decimal.Decimal
}

// PlanAllocation walks the given items strictly oldest first, id as the
// tie-break, and greedily applies funds against each item's outstanding
// patient liability. applied carries the sums already allocated to each item
// by earlier receipts. Items with nothing outstanding are skipped without
// consuming funds; once the amount is exhausted the remaining items are left
// untouched. Surplus beyond the total outstanding stays in Remaining.
//
// The walk order is the fairness guarantee: whoever was billed first gets
// paid first. The function is pure; given the same items, applied sums and
// amount it always produces the same plan.
func PlanAllocation(items []InvoiceItem, applied map[int64]decimal.Decimal, amount decimal.Decimal) AllocationPlan {
	ordered := make([]InvoiceItem, len(items))
	copy(ordered, items)

	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}

		return ordered[i].ID < ordered[j].ID
	})

	plan := AllocationPlan{
		PerInvoice: make(map[int64]decimal.Decimal),
		Remaining:  amount,
	}

	for _, item := range ordered {
		if !plan.Remaining.IsPositive() {
			break
		}

		outstanding := item.OutstandingLiability(applied[item.ID])
		if !outstanding.IsPositive() {
			continue
		}

		applyNow := decimal.Min(plan.Remaining, outstanding)

		plan.Allocations = append(plan.Allocations, PaymentAllocation{
			InvoiceItemID: item.ID,
			InvoiceID:     item.InvoiceID,
			AmountApplied: applyNow,
		})

		plan.Remaining = plan.Remaining.Sub(applyNow)
		plan.PerInvoice[item.InvoiceID] = plan.PerInvoice[item.InvoiceID].Add(applyNow)
	}

	return plan
}
