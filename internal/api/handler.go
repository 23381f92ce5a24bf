package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/easymed/billing/internal/entity"
)

const dateLayout = "2006-01-02"

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=../mocks/handler.go -package=mocks

type Service interface {
	Allocate(ctx context.Context, req entity.AllocationRequest) (entity.PaymentReceipt, error)
	Receipt(ctx context.Context, id int64) (entity.PaymentReceipt, error)
	Receipts(ctx context.Context, filter entity.ReceiptFilter) ([]entity.PaymentReceipt, int, error)
	Invoice(ctx context.Context, id int64) (entity.Invoice, error)
	InvoicesByPatient(ctx context.Context, patientID int64) ([]entity.Invoice, error)
	CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error)
	SaveInvoiceItem(ctx context.Context, item entity.InvoiceItem) (entity.InvoiceItem, error)
	InvoiceItems(ctx context.Context, invoiceID int64) ([]entity.InvoiceItem, error)
	PaymentModes(ctx context.Context) ([]entity.PaymentMode, error)
	PaymentBreakdown(ctx context.Context) ([]entity.PaymentBreakdownRow, error)
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s: s}
}

type AllocatePaymentRequest struct {
	PatientID       *int64          `json:"patient_id"`
	InsurerID       *int64          `json:"insurer_id"`
	InvoiceIDs      []int64         `json:"invoice_ids"`
	PaymentModeID   int64           `json:"payment_mode_id"`
	Amount          decimal.Decimal `json:"amount"`
	ReferenceNumber string          `json:"reference_number"`
	PaymentDate     string          `json:"payment_date,omitempty"`
}

type AllocationResponse struct {
	ID            int64     `json:"id"`
	InvoiceItemID int64     `json:"invoice_item_id"`
	InvoiceID     int64     `json:"invoice_id"`
	AmountApplied string    `json:"amount_applied"`
	AppliedAt     time.Time `json:"applied_at"`
}

type InvoiceAllocationsResponse struct {
	InvoiceID   int64                `json:"invoice_id"`
	Applied     string               `json:"applied"`
	Allocations []AllocationResponse `json:"allocations"`
}

type ReceiptResponse struct {
	ID              int64                        `json:"id"`
	PatientID       *int64                       `json:"patient_id,omitempty"`
	InsurerID       *int64                       `json:"insurer_id,omitempty"`
	PaymentModeID   int64                        `json:"payment_mode_id"`
	TotalAmount     string                       `json:"total_amount"`
	Allocated       string                       `json:"allocated"`
	Unallocated     string                       `json:"unallocated"`
	ReferenceNumber string                       `json:"reference_number"`
	PaymentDate     string                       `json:"payment_date,omitempty"`
	CreatedAt       time.Time                    `json:"created_at"`
	Allocations     []AllocationResponse         `json:"allocations"`
	Invoices        []InvoiceAllocationsResponse `json:"invoices"`
}

func toReceiptResponse(rc entity.PaymentReceipt) ReceiptResponse {
	allocated := rc.Allocated()

	resp := ReceiptResponse{
		ID:              rc.ID,
		PatientID:       rc.PatientID,
		InsurerID:       rc.InsurerID,
		PaymentModeID:   rc.PaymentModeID,
		TotalAmount:     rc.TotalAmount.String(),
		Allocated:       allocated.String(),
		Unallocated:     rc.TotalAmount.Sub(allocated).String(),
		ReferenceNumber: rc.ReferenceNumber,
		CreatedAt:       rc.CreatedAt,
		Allocations:     make([]AllocationResponse, 0, len(rc.Allocations)),
	}

	if rc.PaymentDate != nil {
		resp.PaymentDate = rc.PaymentDate.Format(dateLayout)
	}

	for _, a := range rc.Allocations {
		resp.Allocations = append(resp.Allocations, AllocationResponse{
			ID:            a.ID,
			InvoiceItemID: a.InvoiceItemID,
			InvoiceID:     a.InvoiceID,
			AmountApplied: a.AmountApplied.String(),
			AppliedAt:     a.AppliedAt,
		})
	}

	for _, group := range rc.AllocationsByInvoice() {
		invResp := InvoiceAllocationsResponse{
			InvoiceID:   group.InvoiceID,
			Allocations: make([]AllocationResponse, 0, len(group.Allocations)),
		}

		applied := decimal.Zero

		for _, a := range group.Allocations {
			applied = applied.Add(a.AmountApplied)
			invResp.Allocations = append(invResp.Allocations, AllocationResponse{
				ID:            a.ID,
				InvoiceItemID: a.InvoiceItemID,
				InvoiceID:     a.InvoiceID,
				AmountApplied: a.AmountApplied.String(),
				AppliedAt:     a.AppliedAt,
			})
		}

		invResp.Applied = applied.String()
		resp.Invoices = append(resp.Invoices, invResp)
	}

	return resp
}

// AllocatePayment applies one payment across the outstanding liabilities of
// the listed invoices and returns the resulting receipt with its allocations.
func (h *Handler) AllocatePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Not authenticated")
		return
	}

	if user.Role.Name != entity.RoleCashier && user.Role.Name != entity.RoleAdmin {
		SendJSONErr(ctx, w, http.StatusForbidden, entity.ErrForbidden, "Only cashiers can allocate payments")
		return
	}

	var req AllocatePaymentRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	allocReq := entity.AllocationRequest{
		PatientID:       req.PatientID,
		InsurerID:       req.InsurerID,
		InvoiceIDs:      req.InvoiceIDs,
		PaymentModeID:   req.PaymentModeID,
		Amount:          req.Amount,
		ReferenceNumber: req.ReferenceNumber,
	}

	if req.PaymentDate != "" {
		paymentDate, err := time.Parse(dateLayout, req.PaymentDate)
		if err != nil {
			SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "payment_date must be YYYY-MM-DD")
			return
		}

		allocReq.PaymentDate = &paymentDate
	}

	receipt, err := h.s.Allocate(ctx, allocReq)
	if err != nil {
		h.sendServiceErr(ctx, w, err, "Failed to allocate payment")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, toReceiptResponse(receipt))
}

func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "Invalid receipt id")
		return
	}

	receipt, err := h.s.Receipt(ctx, id)
	if err != nil {
		h.sendServiceErr(ctx, w, err, "Failed to get receipt")
		return
	}

	SendJSON(ctx, w, http.StatusOK, toReceiptResponse(receipt))
}

type ReceiptsResponse struct {
	Receipts []ReceiptResponse `json:"receipts"`
	Total    int               `json:"total"`
}

func (h *Handler) Receipts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := receiptFilter(r)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "Invalid filter")
		return
	}

	receipts, total, err := h.s.Receipts(ctx, filter)
	if err != nil {
		h.sendServiceErr(ctx, w, err, "Failed to list receipts")
		return
	}

	resp := ReceiptsResponse{
		Receipts: make([]ReceiptResponse, 0, len(receipts)),
		Total:    total,
	}

	for _, rc := range receipts {
		resp.Receipts = append(resp.Receipts, toReceiptResponse(rc))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

func receiptFilter(r *http.Request) (entity.ReceiptFilter, error) {
	var filter entity.ReceiptFilter

	q := r.URL.Query()

	if v := q.Get("patient_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return entity.ReceiptFilter{}, fmt.Errorf("patient_id: %w", err)
		}

		filter.PatientID = &id
	}

	if v := q.Get("insurer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return entity.ReceiptFilter{}, fmt.Errorf("insurer_id: %w", err)
		}

		filter.InsurerID = &id
	}

	if v := q.Get("created_from"); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			return entity.ReceiptFilter{}, fmt.Errorf("created_from: %w", err)
		}

		filter.CreatedAtFrom = &from
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return entity.ReceiptFilter{}, fmt.Errorf("page: %w", err)
		}

		filter.Page = page
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return entity.ReceiptFilter{}, fmt.Errorf("limit: %w", err)
		}

		filter.Limit = limit
	}

	return filter, nil
}

type InvoiceResponse struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	Number      string    `json:"invoice_number"`
	Date        string    `json:"invoice_date"`
	Amount      string    `json:"amount"`
	TotalCash   string    `json:"total_cash"`
	CashPaid    string    `json:"cash_paid"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toInvoiceResponse(inv entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          inv.ID,
		PatientID:   inv.PatientID,
		Number:      inv.Number,
		Date:        inv.Date.Format(dateLayout),
		Amount:      inv.Amount.String(),
		TotalCash:   inv.TotalCash.String(),
		CashPaid:    inv.CashPaid.String(),
		Status:      inv.Status.String(),
		Description: inv.Description,
		CreatedAt:   inv.CreatedAt,
	}
}

func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "Invalid invoice id")
		return
	}

	invoice, err := h.s.Invoice(ctx, id)
	if err != nil {
		h.sendServiceErr(ctx, w, err, "Failed to get invoice")
		return
	}

	SendJSON(ctx, w, http.StatusOK, toInvoiceResponse(invoice))
}

// Invoices lists a patient's invoices, newest first.
func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	patientID, err := strconv.ParseInt(r.URL.Query().Get("patient_id"), 10, 64)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "patient_id is required")
		return
	}

	invoices, err := h.s.InvoicesByPatient(ctx, patientID)
	if err != nil {
		h.sendServiceErr(ctx, w, err, "Failed to list invoices")
		return
	}

	resp := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, toInvoiceResponse(inv))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

type CreateInvoiceRequest struct {
	PatientID   int64  `json:"patient_id"`
	Date        string `json:"invoice_date,omitempty"`
	Description string `json:"description,omitempty"`
}

func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateInvoiceRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	inv := entity.Invoice{
		PatientID:   req.PatientID,
		Description: req.Description,
	}

	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "invoice_date must be YYYY-MM-DD")
			return
		}

		inv.Date = date
	}

	invoice, err := h.s.CreateInvoice(ctx, inv)
	if err != nil {
		h.sendServiceErr(ctx, w, err, "Failed to create invoice")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, toInvoiceResponse(invoice))
}

type SaveInvoiceItemRequest struct {
	ID            int64  `json:"id,omitempty"`
	InvoiceID     int64  `json:"invoice_id"`
	ItemID        int64  `json:"item_id"`
	PaymentModeID *int64 `json:"payment_mode_id,omitempty"`
	Status        string `json:"status,omitempty"`
}

type InvoiceItemResponse struct {
	ID               int64  `json:"id"`
	InvoiceID        int64  `json:"invoice_id"`
	ItemID           int64  `json:"item_id"`
	PaymentModeID    *int64 `json:"payment_mode_id,omitempty"`
	ListedAmount     string `json:"listed_amount"`
	PatientLiability string `json:"patient_liability"`
	Status           string `json:"status"`
}

// SaveInvoiceItem creates or updates an invoice line item. The money fields
// are priced server side; values supplied by the caller are ignored.
func (h *Handler) SaveInvoiceItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SaveInvoiceItemRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	item, err := h.s.SaveInvoiceItem(ctx, entity.InvoiceItem{
		ID:            req.ID,
		InvoiceID:     req.InvoiceID,
		ItemID:        req.ItemID,
		PaymentModeID: req.PaymentModeID,
		Status:        entity.InvoiceItemStatus(req.Status),
	})
	if err != nil {
		h.sendServiceErr(ctx, w, err, "Failed to save invoice item")
		return
	}

	SendJSON(ctx, w, http.StatusOK, toInvoiceItemResponse(item))
}

func toInvoiceItemResponse(item entity.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ID:               item.ID,
		InvoiceID:        item.InvoiceID,
		ItemID:           item.ItemID,
		PaymentModeID:    item.PaymentModeID,
		ListedAmount:     item.ListedAmount.String(),
		PatientLiability: item.PatientLiability.String(),
		Status:           item.Status.String(),
	}
}

// InvoiceItems lists an invoice's line items oldest first.
func (h *Handler) InvoiceItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid invoice id")
		return
	}

	items, err := h.s.InvoiceItems(ctx, id)
	if err != nil {
		h.sendServiceErr(ctx, w, err, "Failed to list invoice items")
		return
	}

	resp := make([]InvoiceItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toInvoiceItemResponse(item))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

type PaymentModeResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	InsurerID *int64 `json:"insurer_id,omitempty"`
	IsDefault bool   `json:"is_default"`
}

func (h *Handler) PaymentModes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	modes, err := h.s.PaymentModes(ctx)
	if err != nil {
		h.sendServiceErr(ctx, w, err, "Failed to list payment modes")
		return
	}

	resp := make([]PaymentModeResponse, 0, len(modes))
	for _, m := range modes {
		resp = append(resp, PaymentModeResponse{
			ID:        m.ID,
			Name:      m.Name,
			Category:  m.Category.String(),
			InsurerID: m.InsurerID,
			IsDefault: m.IsDefault,
		})
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

type PaymentBreakdownResponse struct {
	PaymentModeID   int64  `json:"payment_mode_id"`
	PaymentModeName string `json:"payment_mode_name"`
	Category        string `json:"category"`
	TotalPaid       string `json:"total_paid"`
	TotalPending    string `json:"total_pending"`
	TotalAmount     string `json:"total_amount"`
}

// PaymentBreakdown reports billed totals per payment mode split by invoice
// status, for the cashier dashboard.
func (h *Handler) PaymentBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.s.PaymentBreakdown(ctx)
	if err != nil {
		h.sendServiceErr(ctx, w, err, "Failed to build payment breakdown")
		return
	}

	resp := make([]PaymentBreakdownResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, PaymentBreakdownResponse{
			PaymentModeID:   row.PaymentModeID,
			PaymentModeName: row.PaymentModeName,
			Category:        row.Category.String(),
			TotalPaid:       row.TotalPaid.String(),
			TotalPending:    row.TotalPending.String(),
			TotalAmount:     row.TotalAmount.String(),
		})
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	SendJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) sendServiceErr(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, entity.ErrInvalidArgument):
		SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "Invalid request")
	case errors.Is(err, entity.ErrNoMatchingInvoices):
		SendJSONErr(ctx, w, http.StatusNotFound, err, "No matching invoices for payer")
	case errors.Is(err, entity.ErrInvalidPaymentMode):
		SendJSONErr(ctx, w, http.StatusNotFound, err, "Unknown payment mode")
	case errors.Is(err, entity.ErrNotFound):
		SendJSONErr(ctx, w, http.StatusNotFound, err, "Not found")
	default:
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, fallback)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("path param %s: %w", name, err)
	}

	return id, nil
}
