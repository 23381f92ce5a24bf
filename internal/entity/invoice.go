package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

type InvoiceItemStatus string

const (
	InvoiceItemStatusPending InvoiceItemStatus = "pending"
	InvoiceItemStatusBilled  InvoiceItemStatus = "billed"
)

func (s InvoiceItemStatus) String() string {
	return string(s)
}

// Invoice aggregates billable items for one patient encounter. Amount and
// TotalCash are derived from the items and recomputed on every item save;
// CashPaid accumulates amounts applied by payment allocation.
type Invoice struct {
	ID          int64
	PatientID   int64
	Number      string
	Date        time.Time
	Amount      decimal.Decimal
	TotalCash   decimal.Decimal
	CashPaid    decimal.Decimal
	Status      InvoiceStatus
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InvoiceItem is one line item on an invoice. ListedAmount and
// PatientLiability are derived by pricing resolution at save time and are
// never accepted from callers.
type InvoiceItem struct {
	ID               int64
	InvoiceID        int64
	ItemID           int64
	PaymentModeID    *int64
	ListedAmount     decimal.Decimal
	PatientLiability decimal.Decimal
	Status           InvoiceItemStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OutstandingLiability returns how much of the item's patient liability is
// still unpaid after the given applied sum, never less than zero.
func (i InvoiceItem) OutstandingLiability(applied decimal.Decimal) decimal.Decimal {
	outstanding := i.PatientLiability.Sub(applied)
	if outstanding.IsNegative() {
		return decimal.Zero
	}

	return outstanding
}

const invoiceSeqDigits = 5

// FormatInvoiceNumber builds a human readable invoice number, e.g.
// DDLI00042-2026. The sequence is five digits and restarts at 1 every
// calendar year.
func FormatInvoiceNumber(prefix string, seq int, year int) string {
	return fmt.Sprintf("%s%0*d-%d", prefix, invoiceSeqDigits, seq, year)
}

// ParseInvoiceNumber extracts the sequence and year from an invoice number
// produced by FormatInvoiceNumber.
func ParseInvoiceNumber(prefix, number string) (seq int, year int, err error) {
	rest, ok := strings.CutPrefix(number, prefix)
	if !ok {
		return 0, 0, fmt.Errorf("%w: invoice number %q has no prefix %q", ErrInvalidArgument, number, prefix)
	}

	seqPart, yearPart, ok := strings.Cut(rest, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: invoice number %q has no year part", ErrInvalidArgument, number)
	}

	seq, err = strconv.Atoi(seqPart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invoice number %q sequence: %s", ErrInvalidArgument, number, err)
	}

	year, err = strconv.Atoi(yearPart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invoice number %q year: %s", ErrInvalidArgument, number, err)
	}

	return seq, year, nil
}
