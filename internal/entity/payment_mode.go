package entity

import (
	"fmt"
)

type PaymentCategory string

const (
	PaymentCategoryCash         PaymentCategory = "cash"
	PaymentCategoryInsurance    PaymentCategory = "insurance"
	PaymentCategoryMobileMoney  PaymentCategory = "mobile_money"
	PaymentCategoryCheque       PaymentCategory = "cheque"
	PaymentCategoryBankTransfer PaymentCategory = "bank_transfer"
)

func (c PaymentCategory) String() string {
	return string(c)
}

func (c PaymentCategory) IsValid() bool {
	switch c {
	case PaymentCategoryCash, PaymentCategoryInsurance, PaymentCategoryMobileMoney,
		PaymentCategoryCheque, PaymentCategoryBankTransfer:
		return true
	}

	return false
}

// PaymentMode identifies how a charge or payment is categorized. At most one
// mode per deployment is flagged as default; it is used when a billable item
// is created without an explicit mode.
type PaymentMode struct {
	ID        int64
	Name      string
	Category  PaymentCategory
	InsurerID *int64 // set only when Category is insurance
	IsDefault bool
}

// Validate checks the insurer linkage invariant: an insurance mode must
// reference an insurer and a non-insurance mode must not.
func (m PaymentMode) Validate() error {
	if !m.Category.IsValid() {
		return fmt.Errorf("%w: unknown payment category %q", ErrInvalidArgument, m.Category)
	}

	if m.Category == PaymentCategoryInsurance && m.InsurerID == nil {
		return fmt.Errorf("%w: insurance payment mode %q has no insurer", ErrInvalidArgument, m.Name)
	}

	if m.Category != PaymentCategoryInsurance && m.InsurerID != nil {
		return fmt.Errorf("%w: %s payment mode %q references insurer %d",
			ErrInvalidArgument, m.Category, m.Name, *m.InsurerID)
	}

	return nil
}
