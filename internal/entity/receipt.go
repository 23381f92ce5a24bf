package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentReceipt records one payment event that may be allocated across
// multiple invoices and items. Exactly one of PatientID/InsurerID is set.
// Receipts are immutable once created; their allocations cannot outlive them.
type PaymentReceipt struct {
	ID              int64
	PatientID       *int64
	InsurerID       *int64
	PaymentModeID   int64
	TotalAmount     decimal.Decimal
	ReferenceNumber string
	PaymentDate     *time.Time
	CreatedAt       time.Time
	Allocations     []PaymentAllocation
}

// PaymentAllocation records that a specific amount from a receipt was applied
// to a specific invoice item. Created only by the allocation engine.
type PaymentAllocation struct {
	ID            int64
	ReceiptID     int64
	InvoiceItemID int64
	InvoiceID     int64
	AmountApplied decimal.Decimal
	AppliedAt     time.Time
}

// Allocated returns the sum of the receipt's allocations. The difference
// between TotalAmount and Allocated is surplus that was left unapplied.
func (r PaymentReceipt) Allocated() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Allocations {
		total = total.Add(a.AmountApplied)
	}

	return total
}

// InvoiceAllocations is the receipt's allocations for one invoice, in the
// order they were created.
type InvoiceAllocations struct {
	InvoiceID   int64
	Allocations []PaymentAllocation
}

// AllocationsByInvoice groups the receipt's allocations per distinct invoice,
// invoices ordered by first allocation, allocations keeping creation order.
func (r PaymentReceipt) AllocationsByInvoice() []InvoiceAllocations {
	idx := make(map[int64]int)

	var grouped []InvoiceAllocations

	for _, a := range r.Allocations {
		i, ok := idx[a.InvoiceID]
		if !ok {
			i = len(grouped)
			idx[a.InvoiceID] = i
			grouped = append(grouped, InvoiceAllocations{InvoiceID: a.InvoiceID})
		}

		grouped[i].Allocations = append(grouped[i].Allocations, a)
	}

	return grouped
}

// AllocationRequest is a request to apply one payment across invoices.
type AllocationRequest struct {
	PatientID       *int64
	InsurerID       *int64
	InvoiceIDs      []int64
	PaymentModeID   int64
	Amount          decimal.Decimal
	ReferenceNumber string
	PaymentDate     *time.Time
}

// Validate checks the request shape before any read or write happens.
func (r AllocationRequest) Validate() error {
	if r.PatientID == nil && r.InsurerID == nil {
		return fmt.Errorf("%w: either patient_id or insurer_id is required", ErrInvalidArgument)
	}

	if r.PatientID != nil && r.InsurerID != nil {
		return fmt.Errorf("%w: patient_id and insurer_id are mutually exclusive", ErrInvalidArgument)
	}

	if len(r.InvoiceIDs) == 0 {
		return fmt.Errorf("%w: invoice_ids must not be empty", ErrInvalidArgument)
	}

	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: amount %s must be positive", ErrInvalidArgument, r.Amount)
	}

	if r.ReferenceNumber == "" {
		return fmt.Errorf("%w: reference_number is required", ErrInvalidArgument)
	}

	return nil
}

// ReceiptFilter narrows receipt listings.
type ReceiptFilter struct {
	PatientID     *int64
	InsurerID     *int64
	CreatedAtFrom *time.Time
	Page          uint64
	Limit         uint64
}

// AllocationDrift reports an invoice whose accumulated cash_paid no longer
// matches the sum of allocations against its items. Surfaced by the
// reconciliation job for auditing; never auto-corrected.
type AllocationDrift struct {
	InvoiceID int64
	CashPaid  decimal.Decimal
	Allocated decimal.Decimal
}

// PaymentBreakdownRow is the per payment mode totals split by invoice status.
type PaymentBreakdownRow struct {
	PaymentModeID   int64
	PaymentModeName string
	Category        PaymentCategory
	TotalPaid       decimal.Decimal
	TotalPending    decimal.Decimal
	TotalAmount     decimal.Decimal
}
