package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/easymed/billing/internal/entity"
	"github.com/easymed/billing/internal/pricing"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Repository interface {
	PaymentMode(ctx context.Context, id int64) (entity.PaymentMode, error)
	DefaultPaymentMode(ctx context.Context) (entity.PaymentMode, error)
	PaymentModes(ctx context.Context) ([]entity.PaymentMode, error)
	CatalogPrice(ctx context.Context, itemID int64) (entity.CatalogPrice, error)
	NegotiatedPrice(ctx context.Context, itemID, insurerID int64) (entity.NegotiatedPrice, error)

	Invoice(ctx context.Context, id int64) (entity.Invoice, error)
	InvoicesByPatient(ctx context.Context, patientID int64) ([]entity.Invoice, error)
	CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error)
	InvoicesForPatient(ctx context.Context, patientID int64, invoiceIDs []int64) ([]entity.Invoice, error)
	InvoicesForInsurer(ctx context.Context, insurerID int64, invoiceIDs []int64) ([]entity.Invoice, error)

	InvoiceItem(ctx context.Context, id int64) (entity.InvoiceItem, error)
	InvoiceItems(ctx context.Context, invoiceID int64) ([]entity.InvoiceItem, error)
	SaveInvoiceItem(ctx context.Context, item entity.InvoiceItem) (entity.InvoiceItem, error)

	AllocatePayment(ctx context.Context, receipt entity.PaymentReceipt, invoiceIDs []int64) (entity.PaymentReceipt, error)
	Receipt(ctx context.Context, id int64) (entity.PaymentReceipt, error)
	Receipts(ctx context.Context, filter entity.ReceiptFilter) ([]entity.PaymentReceipt, int, error)

	PaymentBreakdown(ctx context.Context) ([]entity.PaymentBreakdownRow, error)
	AllocationDrift(ctx context.Context) ([]entity.AllocationDrift, error)
}

type Producer interface {
	SendPaymentAllocated(ctx context.Context, receipt entity.PaymentReceipt)
}

type Service struct {
	repo     Repository
	producer Producer
}

func New(repo Repository, producer Producer) *Service {
	return &Service{
		repo:     repo,
		producer: producer,
	}
}

// Allocate applies one incoming payment across the payer's invoices. The
// request is validated before anything is read; the receipt, its allocations
// and the invoice cash_paid updates are committed in a single repository
// transaction, with the targeted items row-locked so that two concurrent
// payments cannot both spend the same outstanding liability.
func (s *Service) Allocate(ctx context.Context, req entity.AllocationRequest) (entity.PaymentReceipt, error) {
	err := req.Validate()
	if err != nil {
		return entity.PaymentReceipt{}, err
	}

	mode, err := s.repo.PaymentMode(ctx, req.PaymentModeID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.PaymentReceipt{}, fmt.Errorf("%w: payment mode %d", entity.ErrInvalidPaymentMode, req.PaymentModeID)
		}

		return entity.PaymentReceipt{}, fmt.Errorf("get payment mode %d: %w", req.PaymentModeID, err)
	}

	invoices, err := s.payerInvoices(ctx, req)
	if err != nil {
		return entity.PaymentReceipt{}, err
	}

	if len(invoices) == 0 {
		return entity.PaymentReceipt{}, entity.ErrNoMatchingInvoices
	}

	invoiceIDs := make([]int64, 0, len(invoices))
	for _, inv := range invoices {
		invoiceIDs = append(invoiceIDs, inv.ID)
	}

	receipt := entity.PaymentReceipt{
		PatientID:       req.PatientID,
		InsurerID:       req.InsurerID,
		PaymentModeID:   mode.ID,
		TotalAmount:     req.Amount,
		ReferenceNumber: req.ReferenceNumber,
		PaymentDate:     req.PaymentDate,
		CreatedAt:       time.Now(),
	}

	receipt, err = s.repo.AllocatePayment(ctx, receipt, invoiceIDs)
	if err != nil {
		return entity.PaymentReceipt{}, fmt.Errorf("allocate payment: %w", err)
	}

	s.producer.SendPaymentAllocated(ctx, receipt)

	slog.InfoContext(ctx, "payment allocated",
		"receipt_id", receipt.ID,
		"reference", receipt.ReferenceNumber,
		"amount", receipt.TotalAmount.String(),
		"allocated", receipt.Allocated().String(),
		"allocations", len(receipt.Allocations),
	)

	return receipt, nil
}

// payerInvoices resolves the requested invoices to those the payer can
// actually settle: a patient pays invoices they own, an insurer pays
// invoices carrying at least one item billed to one of its payment modes.
func (s *Service) payerInvoices(ctx context.Context, req entity.AllocationRequest) ([]entity.Invoice, error) {
	if req.PatientID != nil {
		invoices, err := s.repo.InvoicesForPatient(ctx, *req.PatientID, req.InvoiceIDs)
		if err != nil {
			return nil, fmt.Errorf("get invoices for patient %d: %w", *req.PatientID, err)
		}

		return invoices, nil
	}

	invoices, err := s.repo.InvoicesForInsurer(ctx, *req.InsurerID, req.InvoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("get invoices for insurer %d: %w", *req.InsurerID, err)
	}

	return invoices, nil
}

// SaveInvoiceItem persists a billable item with its money fields re-derived
// from current pricing state. Callers never set listed_amount or
// patient_liability themselves; every save resolves them again so a changed
// catalog price or insurance contract is always reflected.
func (s *Service) SaveInvoiceItem(ctx context.Context, item entity.InvoiceItem) (entity.InvoiceItem, error) {
	if item.ID != 0 {
		existing, err := s.repo.InvoiceItem(ctx, item.ID)
		if err != nil {
			return entity.InvoiceItem{}, fmt.Errorf("get invoice item %d: %w", item.ID, err)
		}

		if existing.Status == entity.InvoiceItemStatusBilled {
			return entity.InvoiceItem{}, fmt.Errorf("%w: item %d is already billed", entity.ErrInvalidArgument, item.ID)
		}
	}

	if item.Status == "" {
		item.Status = entity.InvoiceItemStatusPending
	}

	mode, err := s.itemPaymentMode(ctx, &item)
	if err != nil {
		return entity.InvoiceItem{}, err
	}

	result, err := s.resolvePricing(ctx, item.ItemID, mode)
	if err != nil {
		return entity.InvoiceItem{}, err
	}

	if result.Source == entity.PriceSourceCashFallback {
		slog.WarnContext(ctx, "no negotiated price, falling back to cash price",
			"item_id", item.ItemID,
			"payment_mode_id", mode.ID,
		)
	}

	item.ListedAmount = result.ListedAmount
	item.PatientLiability = result.PatientLiability

	item, err = s.repo.SaveInvoiceItem(ctx, item)
	if err != nil {
		return entity.InvoiceItem{}, fmt.Errorf("save invoice item: %w", err)
	}

	return item, nil
}

// itemPaymentMode loads the item's payment mode, falling back to the
// deployment default when none was chosen. Returns nil when there is
// neither, which prices the item down the cash path.
func (s *Service) itemPaymentMode(ctx context.Context, item *entity.InvoiceItem) (*entity.PaymentMode, error) {
	if item.PaymentModeID == nil {
		mode, err := s.repo.DefaultPaymentMode(ctx)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return nil, nil
			}

			return nil, fmt.Errorf("get default payment mode: %w", err)
		}

		item.PaymentModeID = &mode.ID

		return &mode, nil
	}

	mode, err := s.repo.PaymentMode(ctx, *item.PaymentModeID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: payment mode %d", entity.ErrInvalidPaymentMode, *item.PaymentModeID)
		}

		return nil, fmt.Errorf("get payment mode %d: %w", *item.PaymentModeID, err)
	}

	return &mode, nil
}

// resolvePricing gathers catalog and negotiated price rows for the item and
// runs them through the pricing fallback chain. Missing rows are passed to
// the resolver as nil rather than treated as failures.
func (s *Service) resolvePricing(ctx context.Context, itemID int64, mode *entity.PaymentMode) (entity.PricingResult, error) {
	var catalog *entity.CatalogPrice

	cp, err := s.repo.CatalogPrice(ctx, itemID)

	switch {
	case err == nil:
		catalog = &cp
	case errors.Is(err, entity.ErrNotFound):
	default:
		return entity.PricingResult{}, fmt.Errorf("get catalog price for item %d: %w", itemID, err)
	}

	var negotiated *entity.NegotiatedPrice

	if mode != nil && mode.Category == entity.PaymentCategoryInsurance && mode.InsurerID != nil {
		np, err := s.repo.NegotiatedPrice(ctx, itemID, *mode.InsurerID)

		switch {
		case err == nil:
			negotiated = &np
		case errors.Is(err, entity.ErrNotFound):
		default:
			return entity.PricingResult{}, fmt.Errorf("get negotiated price for item %d insurer %d: %w",
				itemID, *mode.InsurerID, err)
		}
	}

	return pricing.Resolve(mode, catalog, negotiated), nil
}

func (s *Service) CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error) {
	if inv.PatientID == 0 {
		return entity.Invoice{}, fmt.Errorf("%w: patient_id is required", entity.ErrInvalidArgument)
	}

	now := time.Now()

	if inv.Date.IsZero() {
		inv.Date = now
	}

	inv.Status = entity.InvoiceStatusPending
	inv.CreatedAt = now
	inv.UpdatedAt = now

	inv, err := s.repo.CreateInvoice(ctx, inv)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}

	return inv, nil
}

func (s *Service) Invoice(ctx context.Context, id int64) (entity.Invoice, error) {
	inv, err := s.repo.Invoice(ctx, id)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get invoice %d: %w", id, err)
	}

	return inv, nil
}

// InvoiceItems lists an invoice's items oldest first. The invoice is
// fetched first so a missing id surfaces as ErrNotFound rather than an
// empty list.
func (s *Service) InvoiceItems(ctx context.Context, invoiceID int64) ([]entity.InvoiceItem, error) {
	_, err := s.repo.Invoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice %d: %w", invoiceID, err)
	}

	items, err := s.repo.InvoiceItems(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get items for invoice %d: %w", invoiceID, err)
	}

	return items, nil
}

func (s *Service) InvoicesByPatient(ctx context.Context, patientID int64) ([]entity.Invoice, error) {
	invoices, err := s.repo.InvoicesByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("get invoices for patient %d: %w", patientID, err)
	}

	return invoices, nil
}

func (s *Service) Receipt(ctx context.Context, id int64) (entity.PaymentReceipt, error) {
	receipt, err := s.repo.Receipt(ctx, id)
	if err != nil {
		return entity.PaymentReceipt{}, fmt.Errorf("get receipt %d: %w", id, err)
	}

	return receipt, nil
}

func (s *Service) Receipts(ctx context.Context, filter entity.ReceiptFilter) ([]entity.PaymentReceipt, int, error) {
	receipts, count, err := s.repo.Receipts(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("get receipts: %w", err)
	}

	return receipts, count, nil
}

func (s *Service) PaymentModes(ctx context.Context) ([]entity.PaymentMode, error) {
	modes, err := s.repo.PaymentModes(ctx)
	if err != nil {
		return nil, fmt.Errorf("get payment modes: %w", err)
	}

	return modes, nil
}

func (s *Service) PaymentBreakdown(ctx context.Context) ([]entity.PaymentBreakdownRow, error) {
	rows, err := s.repo.PaymentBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("get payment breakdown: %w", err)
	}

	return rows, nil
}

// ReportAllocationDrift logs every invoice whose cash_paid disagrees with
// the sum of allocations against its items. Run periodically as a job;
// audit-only, nothing is mutated.
func (s *Service) ReportAllocationDrift(ctx context.Context) error {
	drifts, err := s.repo.AllocationDrift(ctx)
	if err != nil {
		return fmt.Errorf("get allocation drift: %w", err)
	}

	for _, d := range drifts {
		slog.WarnContext(ctx, "invoice cash_paid drifted from allocations",
			"invoice_id", d.InvoiceID,
			"cash_paid", d.CashPaid.String(),
			"allocated", d.Allocated.String(),
		)
	}

	return nil
}
