package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/easymed/billing/internal/entity"
)

// AllocatePayment runs the whole allocation as one transaction: insert the
// receipt, walk the invoices' items oldest first and spread the amount over
// their outstanding liabilities, then bump each touched invoice's cash_paid.
// The items are read FOR UPDATE so a concurrent allocation against the same
// invoices blocks until this one commits; without the lock both could read
// the same prior-allocation sums and spend the same liability twice.
func (r *Repository) AllocatePayment(ctx context.Context, receipt entity.PaymentReceipt, invoiceIDs []int64) (entity.PaymentReceipt, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return entity.PaymentReceipt{}, err
	}

	defer tx.Rollback(ctx) //nolint:errcheck

	const insertReceipt = `
	INSERT INTO payment_receipts (
		patient_id,
		insurer_id,
		payment_mode_id,
		total_amount,
		reference_number,
		payment_date,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id
	`

	err = tx.QueryRow(
		ctx,
		insertReceipt,
		receipt.PatientID,
		receipt.InsurerID,
		receipt.PaymentModeID,
		receipt.TotalAmount,
		receipt.ReferenceNumber,
		receipt.PaymentDate,
		receipt.CreatedAt,
	).Scan(&receipt.ID)
	if err != nil {
		return entity.PaymentReceipt{}, fmt.Errorf("insert receipt: %w", err)
	}

	const lockItems = `SELECT
		id,
		invoice_id,
		item_id,
		payment_mode_id,
		listed_amount,
		patient_liability,
		status,
		created_at,
		updated_at
	FROM invoice_items
	WHERE invoice_id = ANY($1)
	ORDER BY created_at, id
	FOR UPDATE`

	rows, err := tx.Query(ctx, lockItems, invoiceIDs)
	if err != nil {
		return entity.PaymentReceipt{}, fmt.Errorf("lock invoice items: %w", err)
	}

	var items []entity.InvoiceItem

	for rows.Next() {
		item, err := scanInvoiceItem(rows)
		if err != nil {
			rows.Close()
			return entity.PaymentReceipt{}, err
		}

		items = append(items, item)
	}

	rows.Close()

	if err = rows.Err(); err != nil {
		return entity.PaymentReceipt{}, err
	}

	applied, err := appliedSums(ctx, tx, items)
	if err != nil {
		return entity.PaymentReceipt{}, fmt.Errorf("sum prior allocations: %w", err)
	}

	plan := entity.PlanAllocation(items, applied, receipt.TotalAmount)

	appliedAt := time.Now()

	const insertAllocation = `
	INSERT INTO payment_allocations (receipt_id, invoice_item_id, amount_applied, applied_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id
	`

	for i := range plan.Allocations {
		a := &plan.Allocations[i]
		a.ReceiptID = receipt.ID
		a.AppliedAt = appliedAt

		err = tx.QueryRow(ctx, insertAllocation, a.ReceiptID, a.InvoiceItemID, a.AmountApplied, a.AppliedAt).Scan(&a.ID)
		if err != nil {
			return entity.PaymentReceipt{}, fmt.Errorf("insert allocation for item %d: %w", a.InvoiceItemID, err)
		}
	}

	// Invoice updates happen in id order so two overlapping allocations
	// cannot deadlock on each other's invoice rows.
	touched := make([]int64, 0, len(plan.PerInvoice))
	for invoiceID := range plan.PerInvoice {
		touched = append(touched, invoiceID)
	}

	sort.Slice(touched, func(i, j int) bool { return touched[i] < touched[j] })

	const bumpCashPaid = `UPDATE invoices SET cash_paid = cash_paid + $1, updated_at = now() WHERE id = $2`

	for _, invoiceID := range touched {
		amount := plan.PerInvoice[invoiceID]
		if !amount.IsPositive() {
			continue
		}

		_, err = tx.Exec(ctx, bumpCashPaid, amount, invoiceID)
		if err != nil {
			return entity.PaymentReceipt{}, fmt.Errorf("update invoice %d cash_paid: %w", invoiceID, err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return entity.PaymentReceipt{}, err
	}

	receipt.Allocations = plan.Allocations

	return receipt, nil
}

// appliedSums returns the already allocated total per item, across all
// receipts. Items with no allocations are absent from the map; the zero
// decimal stands in for them.
func appliedSums(ctx context.Context, q querier, items []entity.InvoiceItem) (map[int64]decimal.Decimal, error) {
	if len(items) == 0 {
		return map[int64]decimal.Decimal{}, nil
	}

	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}

	const query = `
	SELECT invoice_item_id, SUM(amount_applied)
	FROM payment_allocations
	WHERE invoice_item_id = ANY($1)
	GROUP BY invoice_item_id
	`

	rows, err := q.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int64]decimal.Decimal, len(items))

	for rows.Next() {
		var (
			itemID int64
			sum    decimal.Decimal
		)

		err = rows.Scan(&itemID, &sum)
		if err != nil {
			return nil, err
		}

		applied[itemID] = sum
	}

	return applied, rows.Err()
}
