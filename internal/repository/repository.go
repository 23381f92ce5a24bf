package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype/zeronull"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/easymed/billing/internal/entity"
)

type Repository struct {
	db            *pgxpool.Pool
	invoicePrefix string
}

func New(pool *pgxpool.Pool, invoicePrefix string) *Repository {
	return &Repository{
		db:            pool,
		invoicePrefix: invoicePrefix,
	}
}

func (r *Repository) PaymentMode(ctx context.Context, id int64) (entity.PaymentMode, error) {
	q := selectPaymentMode + " WHERE id = $1"
	return scanPaymentMode(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) DefaultPaymentMode(ctx context.Context) (entity.PaymentMode, error) {
	q := selectPaymentMode + " WHERE is_default ORDER BY id LIMIT 1"
	return scanPaymentMode(r.db.QueryRow(ctx, q))
}

func (r *Repository) PaymentModes(ctx context.Context) ([]entity.PaymentMode, error) {
	q := selectPaymentMode + " ORDER BY id"

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modes []entity.PaymentMode

	for rows.Next() {
		mode, err := scanPaymentMode(rows)
		if err != nil {
			return nil, err
		}

		modes = append(modes, mode)
	}

	return modes, rows.Err()
}

// CatalogPrice returns the current cash price for an item: the most recently
// created active row wins.
func (r *Repository) CatalogPrice(ctx context.Context, itemID int64) (entity.CatalogPrice, error) {
	const q = `SELECT id, item_id, cash_price, created_at
	FROM catalog_prices WHERE item_id = $1 ORDER BY id DESC LIMIT 1`

	var p entity.CatalogPrice

	err := r.db.QueryRow(ctx, q, itemID).Scan(&p.ID, &p.ItemID, &p.CashPrice, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.CatalogPrice{}, entity.ErrNotFound
		}

		return entity.CatalogPrice{}, err
	}

	return p, nil
}

func (r *Repository) NegotiatedPrice(ctx context.Context, itemID, insurerID int64) (entity.NegotiatedPrice, error) {
	const q = `SELECT id, item_id, insurer_id, sale_price, co_pay
	FROM negotiated_prices WHERE item_id = $1 AND insurer_id = $2`

	var p entity.NegotiatedPrice

	err := r.db.QueryRow(ctx, q, itemID, insurerID).Scan(&p.ID, &p.ItemID, &p.InsurerID, &p.SalePrice, &p.CoPay)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.NegotiatedPrice{}, entity.ErrNotFound
		}

		return entity.NegotiatedPrice{}, err
	}

	return p, nil
}

func (r *Repository) Invoice(ctx context.Context, id int64) (entity.Invoice, error) {
	q := selectInvoice + " WHERE id = $1"
	return scanInvoice(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) InvoicesByPatient(ctx context.Context, patientID int64) ([]entity.Invoice, error) {
	q := selectInvoice + " WHERE patient_id = $1 ORDER BY id DESC"
	return r.queryInvoices(ctx, q, patientID)
}

// InvoicesForPatient narrows the requested invoice set to those owned by the
// patient.
func (r *Repository) InvoicesForPatient(ctx context.Context, patientID int64, invoiceIDs []int64) ([]entity.Invoice, error) {
	q := selectInvoice + " WHERE patient_id = $1 AND id = ANY($2) ORDER BY id"
	return r.queryInvoices(ctx, q, patientID, invoiceIDs)
}

// InvoicesForInsurer narrows the requested invoice set to those carrying at
// least one item billed to one of the insurer's payment modes.
func (r *Repository) InvoicesForInsurer(ctx context.Context, insurerID int64, invoiceIDs []int64) ([]entity.Invoice, error) {
	q := `SELECT DISTINCT i.id, i.patient_id, i.invoice_number, i.invoice_date, i.amount, i.total_cash,
		i.cash_paid, i.status, i.description, i.created_at, i.updated_at
	FROM invoices i
	JOIN invoice_items ii ON ii.invoice_id = i.id
	JOIN payment_modes pm ON pm.id = ii.payment_mode_id
	WHERE i.id = ANY($1) AND pm.insurer_id = $2
	ORDER BY i.id`

	return r.queryInvoices(ctx, q, invoiceIDs, insurerID)
}

func (r *Repository) queryInvoices(ctx context.Context, q string, args ...any) ([]entity.Invoice, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []entity.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}

		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

// CreateInvoice inserts the invoice with a freshly generated number. Number
// generation runs inside the same transaction under an advisory lock, so two
// concurrent creations cannot draw the same sequence.
func (r *Repository) CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return entity.Invoice{}, err
	}

	defer tx.Rollback(ctx) //nolint:errcheck

	inv.Number, err = r.nextInvoiceNumber(ctx, tx, inv.Date.Year())
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("next invoice number: %w", err)
	}

	const q = `
	INSERT INTO invoices (
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
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id
	`

	err = tx.QueryRow(
		ctx,
		q,
		inv.PatientID,
		inv.Number,
		inv.Date,
		inv.Amount,
		inv.TotalCash,
		inv.CashPaid,
		inv.Status,
		zeronull.Text(inv.Description),
		inv.CreatedAt,
		inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		return entity.Invoice{}, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return entity.Invoice{}, err
	}

	return inv, nil
}

// invoiceNumberLockKey serializes invoice number generation across
// connections within one deployment.
const invoiceNumberLockKey = 7_431_002

func (r *Repository) nextInvoiceNumber(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, invoiceNumberLockKey)
	if err != nil {
		return "", err
	}

	const q = `SELECT invoice_number FROM invoices
	WHERE invoice_number LIKE $1 ORDER BY invoice_number DESC LIMIT 1`

	var last string

	err = tx.QueryRow(ctx, q, r.invoicePrefix+"%-"+fmt.Sprint(year)).Scan(&last)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return entity.FormatInvoiceNumber(r.invoicePrefix, 1, year), nil
	case err != nil:
		return "", err
	}

	seq, lastYear, err := entity.ParseInvoiceNumber(r.invoicePrefix, last)
	if err != nil || lastYear != year {
		// Sequence restarts at 1 every calendar year.
		return entity.FormatInvoiceNumber(r.invoicePrefix, 1, year), nil
	}

	return entity.FormatInvoiceNumber(r.invoicePrefix, seq+1, year), nil
}

func (r *Repository) InvoiceItem(ctx context.Context, id int64) (entity.InvoiceItem, error) {
	q := selectInvoiceItem + " WHERE id = $1"
	return scanInvoiceItem(r.db.QueryRow(ctx, q, id))
}

// InvoiceItems lists the invoice's items in the same order the allocation
// walk uses.
func (r *Repository) InvoiceItems(ctx context.Context, invoiceID int64) ([]entity.InvoiceItem, error) {
	q := selectInvoiceItem + " WHERE invoice_id = $1 ORDER BY created_at, id"

	rows, err := r.db.Query(ctx, q, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.InvoiceItem

	for rows.Next() {
		item, err := scanInvoiceItem(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

// SaveInvoiceItem inserts or updates the item and recomputes the owning
// invoice's derived totals in the same transaction.
func (r *Repository) SaveInvoiceItem(ctx context.Context, item entity.InvoiceItem) (entity.InvoiceItem, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return entity.InvoiceItem{}, err
	}

	defer tx.Rollback(ctx) //nolint:errcheck

	now := time.Now()
	item.UpdatedAt = now

	if item.ID == 0 {
		item.CreatedAt = now

		const q = `
		INSERT INTO invoice_items (
			invoice_id,
			item_id,
			payment_mode_id,
			listed_amount,
			patient_liability,
			status,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
		`

		err = tx.QueryRow(
			ctx,
			q,
			item.InvoiceID,
			item.ItemID,
			item.PaymentModeID,
			item.ListedAmount,
			item.PatientLiability,
			item.Status,
			item.CreatedAt,
			item.UpdatedAt,
		).Scan(&item.ID)
		if err != nil {
			return entity.InvoiceItem{}, err
		}
	} else {
		const q = `
		UPDATE invoice_items SET
			payment_mode_id = $1,
			listed_amount = $2,
			patient_liability = $3,
			status = $4,
			updated_at = $5
		WHERE id = $6
		RETURNING invoice_id, item_id, created_at
		`

		err = tx.QueryRow(
			ctx,
			q,
			item.PaymentModeID,
			item.ListedAmount,
			item.PatientLiability,
			item.Status,
			item.UpdatedAt,
			item.ID,
		).Scan(&item.InvoiceID, &item.ItemID, &item.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return entity.InvoiceItem{}, entity.ErrNotFound
			}

			return entity.InvoiceItem{}, err
		}
	}

	err = recomputeInvoiceTotals(ctx, tx, item.InvoiceID)
	if err != nil {
		return entity.InvoiceItem{}, fmt.Errorf("recompute invoice totals: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return entity.InvoiceItem{}, err
	}

	return item, nil
}

// recomputeInvoiceTotals rederives amount and total_cash from the invoice's
// items. Both are aggregates over patient_liability; total_cash counts only
// items billed to a cash category mode.
func recomputeInvoiceTotals(ctx context.Context, tx pgx.Tx, invoiceID int64) error {
	const q = `
	UPDATE invoices SET
		amount = (
			SELECT COALESCE(SUM(patient_liability), 0)
			FROM invoice_items WHERE invoice_id = $1
		),
		total_cash = (
			SELECT COALESCE(SUM(ii.patient_liability), 0)
			FROM invoice_items ii
			JOIN payment_modes pm ON pm.id = ii.payment_mode_id
			WHERE ii.invoice_id = $1 AND pm.category = $2
		),
		updated_at = now()
	WHERE id = $1
	`

	_, err := tx.Exec(ctx, q, invoiceID, entity.PaymentCategoryCash)

	return err
}

func (r *Repository) Receipt(ctx context.Context, id int64) (entity.PaymentReceipt, error) {
	q := selectReceipt + " WHERE id = $1"

	receipt, err := scanReceipt(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return entity.PaymentReceipt{}, err
	}

	receipt.Allocations, err = r.allocationsForReceipts(ctx, []int64{id})
	if err != nil {
		return entity.PaymentReceipt{}, err
	}

	return receipt, nil
}

func (r *Repository) Receipts(ctx context.Context, f entity.ReceiptFilter) ([]entity.PaymentReceipt, int, error) {
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit == 0 {
		f.Limit = 20
	}

	stmt := sq.Select(
		"id",
		"patient_id",
		"insurer_id",
		"payment_mode_id",
		"total_amount",
		"reference_number",
		"payment_date",
		"created_at",
		"COUNT(*) OVER() AS total_count",
	).From("payment_receipts").PlaceholderFormat(sq.Dollar)

	if f.PatientID != nil {
		stmt = stmt.Where(sq.Eq{"patient_id": *f.PatientID})
	}

	if f.InsurerID != nil {
		stmt = stmt.Where(sq.Eq{"insurer_id": *f.InsurerID})
	}

	if f.CreatedAtFrom != nil {
		stmt = stmt.Where(sq.GtOrEq{"created_at": *f.CreatedAtFrom})
	}

	stmt = stmt.OrderBy("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset(f.Page*f.Limit - f.Limit)

	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	receipts := make([]entity.PaymentReceipt, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var rc entity.PaymentReceipt

		err = rows.Scan(
			&rc.ID,
			&rc.PatientID,
			&rc.InsurerID,
			&rc.PaymentModeID,
			&rc.TotalAmount,
			&rc.ReferenceNumber,
			&rc.PaymentDate,
			&rc.CreatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, err
		}

		receipts = append(receipts, rc)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(receipts) == 0 {
		return receipts, totalCount, nil
	}

	ids := make([]int64, 0, len(receipts))
	for _, rc := range receipts {
		ids = append(ids, rc.ID)
	}

	allocations, err := r.allocationsForReceipts(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	byReceipt := make(map[int64][]entity.PaymentAllocation, len(receipts))
	for _, a := range allocations {
		byReceipt[a.ReceiptID] = append(byReceipt[a.ReceiptID], a)
	}

	for i := range receipts {
		receipts[i].Allocations = byReceipt[receipts[i].ID]
	}

	return receipts, totalCount, nil
}

func (r *Repository) allocationsForReceipts(ctx context.Context, receiptIDs []int64) ([]entity.PaymentAllocation, error) {
	q := selectAllocation + " WHERE pa.receipt_id = ANY($1) ORDER BY pa.id"

	rows, err := r.db.Query(ctx, q, receiptIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []entity.PaymentAllocation

	for rows.Next() {
		var a entity.PaymentAllocation

		err = rows.Scan(&a.ID, &a.ReceiptID, &a.InvoiceItemID, &a.InvoiceID, &a.AmountApplied, &a.AppliedAt)
		if err != nil {
			return nil, err
		}

		allocations = append(allocations, a)
	}

	return allocations, rows.Err()
}

// PaymentBreakdown aggregates billed item totals per payment mode split by
// owning invoice status.
func (r *Repository) PaymentBreakdown(ctx context.Context) ([]entity.PaymentBreakdownRow, error) {
	const q = `
	SELECT
		pm.id,
		pm.name,
		pm.category,
		COALESCE(SUM(ii.listed_amount) FILTER (WHERE i.status = 'paid'), 0) AS total_paid,
		COALESCE(SUM(ii.listed_amount) FILTER (WHERE i.status = 'pending'), 0) AS total_pending
	FROM payment_modes pm
	LEFT JOIN invoice_items ii ON ii.payment_mode_id = pm.id
	LEFT JOIN invoices i ON i.id = ii.invoice_id
	GROUP BY pm.id, pm.name, pm.category
	ORDER BY pm.id
	`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakdown []entity.PaymentBreakdownRow

	for rows.Next() {
		var row entity.PaymentBreakdownRow

		err = rows.Scan(&row.PaymentModeID, &row.PaymentModeName, &row.Category, &row.TotalPaid, &row.TotalPending)
		if err != nil {
			return nil, err
		}

		row.TotalAmount = row.TotalPaid.Add(row.TotalPending)

		breakdown = append(breakdown, row)
	}

	return breakdown, rows.Err()
}

// AllocationDrift finds invoices whose cash_paid no longer equals the sum of
// allocations against their items.
func (r *Repository) AllocationDrift(ctx context.Context) ([]entity.AllocationDrift, error) {
	const q = `
	SELECT i.id, i.cash_paid, COALESCE(SUM(pa.amount_applied), 0) AS allocated
	FROM invoices i
	LEFT JOIN invoice_items ii ON ii.invoice_id = i.id
	LEFT JOIN payment_allocations pa ON pa.invoice_item_id = ii.id
	GROUP BY i.id, i.cash_paid
	HAVING i.cash_paid <> COALESCE(SUM(pa.amount_applied), 0)
	ORDER BY i.id
	`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drifts []entity.AllocationDrift

	for rows.Next() {
		var d entity.AllocationDrift

		err = rows.Scan(&d.InvoiceID, &d.CashPaid, &d.Allocated)
		if err != nil {
			return nil, err
		}

		drifts = append(drifts, d)
	}

	return drifts, rows.Err()
}
