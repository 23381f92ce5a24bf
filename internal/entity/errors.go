package entity

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNoMatchingInvoices = errors.New("no matching invoices for payer")
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
)
