package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/easymed/billing/internal/api"
	"github.com/easymed/billing/internal/entity"
	"github.com/easymed/billing/internal/mocks"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

type tester struct {
	server      *httptest.Server
	serviceMock *mocks.MockService
	authMock    *mocks.MockAuthService
}

func newTester(t *testing.T) tester {
	t.Helper()

	ctrl := gomock.NewController(t)
	serviceMock := mocks.NewMockService(ctrl)
	authMock := mocks.NewMockAuthService(ctrl)

	handler := api.NewHandler(serviceMock)
	mw := api.NewMiddleware(authMock, false, "dev")

	server := httptest.NewServer(api.NewRouter(handler, mw))
	t.Cleanup(server.Close)

	return tester{
		server:      server,
		serviceMock: serviceMock,
		authMock:    authMock,
	}
}

func (c tester) expectUser() {
	c.expectUserWithRole(entity.RoleCashier)
}

func (c tester) expectUserWithRole(role string) {
	user := entity.User{
		ID:        uuid.Must(uuid.NewV4()),
		FirstName: "Jane",
		LastName:  "Achieng",
		Email:     "cashier@example.com",
		Role:      entity.UserRole{Name: role},
	}

	c.authMock.EXPECT().User(gomock.Any(), "dev").Return(user, nil)
}

func (c tester) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reqBody bytes.Buffer

	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req, err := http.NewRequest(method, c.server.URL+path, &reqBody)
	require.NoError(t, err)

	req.Header.Set("Authorization", "Bearer dev")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestHandler_AllocatePayment(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	now := time.Now().Truncate(time.Second)

	receipt := entity.PaymentReceipt{
		ID:              55,
		PatientID:       ptr(int64(7)),
		PaymentModeID:   1,
		TotalAmount:     dec("1000"),
		ReferenceNumber: "MPESA-XYZ",
		CreatedAt:       now,
		Allocations: []entity.PaymentAllocation{
			{ID: 1, ReceiptID: 55, InvoiceItemID: 100, InvoiceID: 10, AmountApplied: dec("600"), AppliedAt: now},
			{ID: 2, ReceiptID: 55, InvoiceItemID: 200, InvoiceID: 20, AmountApplied: dec("300"), AppliedAt: now},
		},
	}

	c.serviceMock.EXPECT().Allocate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req entity.AllocationRequest) (entity.PaymentReceipt, error) {
			require.NotNil(t, req.PatientID)
			require.Equal(t, int64(7), *req.PatientID)
			require.Equal(t, []int64{10, 20}, req.InvoiceIDs)
			require.True(t, req.Amount.Equal(dec("1000")))
			return receipt, nil
		})

	resp := c.do(t, http.MethodPost, "/api/billing/allocate-payment", map[string]any{
		"patient_id":       7,
		"invoice_ids":      []int64{10, 20},
		"payment_mode_id":  1,
		"amount":           "1000",
		"reference_number": "MPESA-XYZ",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body api.ReceiptResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, int64(55), body.ID)
	require.Equal(t, "1000", body.TotalAmount)
	require.Equal(t, "900", body.Allocated)
	require.Equal(t, "100", body.Unallocated)
	require.Len(t, body.Allocations, 2)
	require.Equal(t, "600", body.Allocations[0].AmountApplied)
	require.Len(t, body.Invoices, 2)
	require.Equal(t, int64(10), body.Invoices[0].InvoiceID)
	require.Equal(t, "600", body.Invoices[0].Applied)
}

func TestHandler_AllocatePayment_ValidationError(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	c.serviceMock.EXPECT().Allocate(gomock.Any(), gomock.Any()).
		Return(entity.PaymentReceipt{}, fmt.Errorf("%w: amount must be positive", entity.ErrInvalidArgument))

	resp := c.do(t, http.MethodPost, "/api/billing/allocate-payment", map[string]any{
		"patient_id":       7,
		"invoice_ids":      []int64{10},
		"payment_mode_id":  1,
		"amount":           "0",
		"reference_number": "R-1",
	})

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandler_AllocatePayment_NoMatchingInvoices(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	c.serviceMock.EXPECT().Allocate(gomock.Any(), gomock.Any()).
		Return(entity.PaymentReceipt{}, entity.ErrNoMatchingInvoices)

	resp := c.do(t, http.MethodPost, "/api/billing/allocate-payment", map[string]any{
		"patient_id":       7,
		"invoice_ids":      []int64{99},
		"payment_mode_id":  1,
		"amount":           "100",
		"reference_number": "R-1",
	})

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_AllocatePayment_UnknownPaymentMode(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	c.serviceMock.EXPECT().Allocate(gomock.Any(), gomock.Any()).
		Return(entity.PaymentReceipt{}, fmt.Errorf("%w: payment mode 9", entity.ErrInvalidPaymentMode))

	resp := c.do(t, http.MethodPost, "/api/billing/allocate-payment", map[string]any{
		"patient_id":       7,
		"invoice_ids":      []int64{10},
		"payment_mode_id":  9,
		"amount":           "100",
		"reference_number": "R-1",
	})

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_AllocatePayment_BadJSON(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	req, err := http.NewRequest(http.MethodPost, c.server.URL+"/api/billing/allocate-payment",
		bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer dev")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_AllocatePayment_ForbiddenRole(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUserWithRole(entity.RoleDoctor)

	resp := c.do(t, http.MethodPost, "/api/billing/allocate-payment", map[string]any{
		"patient_id":       7,
		"invoice_ids":      []int64{10},
		"payment_mode_id":  1,
		"amount":           "100",
		"reference_number": "R-1",
	})

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHandler_AllocatePayment_Unauthorized(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	resp, err := http.Post(c.server.URL+"/api/billing/allocate-payment", "application/json",
		bytes.NewBufferString("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_Receipt(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	receipt := entity.PaymentReceipt{
		ID:              55,
		PatientID:       ptr(int64(7)),
		PaymentModeID:   1,
		TotalAmount:     dec("500"),
		ReferenceNumber: "R-55",
		CreatedAt:       time.Now(),
	}

	c.serviceMock.EXPECT().Receipt(gomock.Any(), int64(55)).Return(receipt, nil)

	resp := c.do(t, http.MethodGet, "/api/billing/receipts/55", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.ReceiptResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, int64(55), body.ID)
	require.Equal(t, "500", body.TotalAmount)
}

func TestHandler_Receipt_NotFound(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	c.serviceMock.EXPECT().Receipt(gomock.Any(), int64(99)).
		Return(entity.PaymentReceipt{}, entity.ErrNotFound)

	resp := c.do(t, http.MethodGet, "/api/billing/receipts/99", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_Receipts_Filter(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	c.serviceMock.EXPECT().Receipts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, filter entity.ReceiptFilter) ([]entity.PaymentReceipt, int, error) {
			require.NotNil(t, filter.PatientID)
			require.Equal(t, int64(7), *filter.PatientID)
			require.Equal(t, uint64(2), filter.Page)
			require.Equal(t, uint64(10), filter.Limit)
			return []entity.PaymentReceipt{{ID: 1, TotalAmount: dec("100")}}, 21, nil
		})

	resp := c.do(t, http.MethodGet, "/api/billing/receipts?patient_id=7&page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.ReceiptsResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 21, body.Total)
	require.Len(t, body.Receipts, 1)
}

func TestHandler_SaveInvoiceItem(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	c.serviceMock.EXPECT().SaveInvoiceItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, item entity.InvoiceItem) (entity.InvoiceItem, error) {
			require.Equal(t, int64(10), item.InvoiceID)
			require.Equal(t, int64(500), item.ItemID)
			item.ID = 1
			item.ListedAmount = dec("1500")
			item.PatientLiability = dec("200")
			item.Status = entity.InvoiceItemStatusPending
			return item, nil
		})

	resp := c.do(t, http.MethodPost, "/api/billing/invoice-items", map[string]any{
		"invoice_id":      10,
		"item_id":         500,
		"payment_mode_id": 2,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.InvoiceItemResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "1500", body.ListedAmount)
	require.Equal(t, "200", body.PatientLiability)
}

func TestHandler_InvoiceItems(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	items := []entity.InvoiceItem{
		{ID: 1, InvoiceID: 10, ItemID: 500, ListedAmount: dec("1000"), PatientLiability: dec("1000"), Status: entity.InvoiceItemStatusPending},
		{ID: 2, InvoiceID: 10, ItemID: 501, ListedAmount: dec("1500"), PatientLiability: dec("200"), Status: entity.InvoiceItemStatusBilled},
	}

	c.serviceMock.EXPECT().InvoiceItems(gomock.Any(), int64(10)).Return(items, nil)

	resp := c.do(t, http.MethodGet, "/api/billing/invoices/10/items", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []api.InvoiceItemResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	require.Equal(t, int64(1), body[0].ID)
	require.Equal(t, "1000", body[0].PatientLiability)
	require.Equal(t, "200", body[1].PatientLiability)
	require.Equal(t, "billed", body[1].Status)
}

func TestHandler_InvoiceItems_UnknownInvoice(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	c.serviceMock.EXPECT().InvoiceItems(gomock.Any(), int64(99)).
		Return(nil, entity.ErrNotFound)

	resp := c.do(t, http.MethodGet, "/api/billing/invoices/99/items", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_CreateInvoice(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	c.serviceMock.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, inv entity.Invoice) (entity.Invoice, error) {
			require.Equal(t, int64(7), inv.PatientID)
			inv.ID = 1
			inv.Number = "DDLI00001-2026"
			inv.Status = entity.InvoiceStatusPending
			return inv, nil
		})

	resp := c.do(t, http.MethodPost, "/api/billing/invoices", map[string]any{
		"patient_id": 7,
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body api.InvoiceResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "DDLI00001-2026", body.Number)
}

func TestHandler_PaymentModes(t *testing.T) {
	t.Parallel()

	c := newTester(t)
	c.expectUser()

	modes := []entity.PaymentMode{
		{ID: 1, Name: "Cash", Category: entity.PaymentCategoryCash, IsDefault: true},
		{ID: 2, Name: "NHIF", Category: entity.PaymentCategoryInsurance, InsurerID: ptr(int64(3))},
	}

	c.serviceMock.EXPECT().PaymentModes(gomock.Any()).Return(modes, nil)

	resp := c.do(t, http.MethodGet, "/api/billing/payment-modes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []api.PaymentModeResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	require.Equal(t, "insurance", body[1].Category)
}

func TestHandler_PaymentBreakdown(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	rows := []entity.PaymentBreakdownRow{
		{
			PaymentModeID:   1,
			PaymentModeName: "Cash",
			Category:        entity.PaymentCategoryCash,
			TotalPaid:       dec("1000"),
			TotalPending:    dec("250"),
			TotalAmount:     dec("1250"),
		},
	}

	c.serviceMock.EXPECT().PaymentBreakdown(gomock.Any()).Return(rows, nil)

	// API key middleware is disabled in the test harness.
	resp := c.do(t, http.MethodGet, "/api/internal/v1/billing/payment-breakdown", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []api.PaymentBreakdownResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	require.Equal(t, "1250", body[0].TotalAmount)
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	resp, err := http.Get(c.server.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}
