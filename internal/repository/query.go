package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype/zeronull"

	"github.com/easymed/billing/internal/entity"
)

// querier is the slice of pgx shared by *pgxpool.Pool and pgx.Tx that the
// read helpers need.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const (
	selectPaymentMode = `SELECT
		id,
		name,
		category,
		insurer_id,
		is_default
	FROM payment_modes`

	selectInvoice = `SELECT
		id,
		patient_id,
		invoice_number,
		invoice_date,
		amount,
		total_cash,
		cash_paid,
		status,
		description,
		created_at,
		updated_at
	FROM invoices`

	selectInvoiceItem = `SELECT
		id,
		invoice_id,
		item_id,
		payment_mode_id,
		listed_amount,
		patient_liability,
		status,
		created_at,
		updated_at
	FROM invoice_items`

	selectReceipt = `SELECT
		id,
		patient_id,
		insurer_id,
		payment_mode_id,
		total_amount,
		reference_number,
		payment_date,
		created_at
	FROM payment_receipts`

	selectAllocation = `SELECT
		pa.id,
		pa.receipt_id,
		pa.invoice_item_id,
		ii.invoice_id,
		pa.amount_applied,
		pa.applied_at
	FROM payment_allocations pa
	JOIN invoice_items ii ON ii.id = pa.invoice_item_id`
)

func asEntityErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.ErrNotFound
	}

	return err
}

func scanPaymentMode(row pgx.Row) (entity.PaymentMode, error) {
	var m entity.PaymentMode

	err := row.Scan(&m.ID, &m.Name, &m.Category, &m.InsurerID, &m.IsDefault)
	if err != nil {
		return entity.PaymentMode{}, asEntityErr(err)
	}

	return m, nil
}

func scanInvoice(row pgx.Row) (entity.Invoice, error) {
	var inv entity.Invoice

	err := row.Scan(
		&inv.ID,
		&inv.PatientID,
		&inv.Number,
		&inv.Date,
		&inv.Amount,
		&inv.TotalCash,
		&inv.CashPaid,
		&inv.Status,
		(*zeronull.Text)(&inv.Description),
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return entity.Invoice{}, asEntityErr(err)
	}

	return inv, nil
}

func scanInvoiceItem(row pgx.Row) (entity.InvoiceItem, error) {
	var item entity.InvoiceItem

	err := row.Scan(
		&item.ID,
		&item.InvoiceID,
		&item.ItemID,
		&item.PaymentModeID,
		&item.ListedAmount,
		&item.PatientLiability,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return entity.InvoiceItem{}, asEntityErr(err)
	}

	return item, nil
}

func scanReceipt(row pgx.Row) (entity.PaymentReceipt, error) {
	var rc entity.PaymentReceipt

	err := row.Scan(
		&rc.ID,
		&rc.PatientID,
		&rc.InsurerID,
		&rc.PaymentModeID,
		&rc.TotalAmount,
		&rc.ReferenceNumber,
		&rc.PaymentDate,
		&rc.CreatedAt,
	)
	if err != nil {
		return entity.PaymentReceipt{}, asEntityErr(err)
	}

	return rc, nil
}
