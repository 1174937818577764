package handler

import (
	"net/http"
	"testing"

	financeapp "github.com/erp/saleflow/internal/application/finance"
	mailapp "github.com/erp/saleflow/internal/application/mail"
	"github.com/erp/saleflow/internal/domain/mail"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type financeTestSetup struct {
	engine       *gin.Engine
	downPayments *MockDownPaymentService
	invoices     *MockInvoiceOpener
	messages     *MockMessageLister
	tenantID     uuid.UUID
}

func setupFinanceTestRouter() *financeTestSetup {
	s := &financeTestSetup{
		downPayments: new(MockDownPaymentService),
		invoices:     new(MockInvoiceOpener),
		messages:     new(MockMessageLister),
		tenantID:     uuid.New(),
	}
	h := NewFinanceHandler(s.downPayments, s.invoices, s.messages)

	s.engine = newTenantEngine(s.tenantID)
	s.engine.POST("/down-payments/amount-total", h.AmountTotal)
	s.engine.POST("/down-payments/inverse", h.InverseAmountTotal)
	s.engine.POST("/down-payments/invoices", h.CreateDownPaymentInvoices)
	s.engine.POST("/invoices/:id/open", h.OpenInvoice)
	s.engine.GET("/invoices/:id/messages", h.InvoiceMessages)
	return s
}

func TestFinanceHandler_AmountTotal(t *testing.T) {
	s := setupFinanceTestRouter()
	orderID := uuid.New()
	taxID := uuid.New()
	s.downPayments.On("ComputeAmountTotal", mock.Anything, s.tenantID, mock.MatchedBy(func(req financeapp.AmountTotalRequest) bool {
		return len(req.OrderIDs) == 1 && req.Amount.Equal(decimal.NewFromInt(100)) && len(req.DepositTaxIDs) == 1
	})).Return(&financeapp.DownPaymentAmounts{
		Amount:      decimal.NewFromInt(100),
		AmountTotal: decimal.NewFromInt(121),
	}, nil)

	w := doRequest(s.engine, http.MethodPost, "/down-payments/amount-total", map[string]any{
		"order_ids":       []uuid.UUID{orderID},
		"amount":          "100",
		"deposit_tax_ids": []uuid.UUID{taxID},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "121", decodeResponse(t, w).Data.(map[string]any)["amount_total"])
}

func TestFinanceHandler_InverseAmountTotal(t *testing.T) {
	s := setupFinanceTestRouter()
	s.downPayments.On("InverseAmountTotal", mock.Anything, s.tenantID, mock.Anything).Return(&financeapp.DownPaymentAmounts{
		Amount:      decimal.NewFromInt(100),
		AmountTotal: decimal.NewFromInt(121),
	}, nil)

	w := doRequest(s.engine, http.MethodPost, "/down-payments/inverse", map[string]any{"amount_total": "121"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "100", decodeResponse(t, w).Data.(map[string]any)["amount"])
}

func TestFinanceHandler_CreateDownPaymentInvoices(t *testing.T) {
	t.Run("creates invoices", func(t *testing.T) {
		s := setupFinanceTestRouter()
		orderID := uuid.New()
		s.downPayments.On("CreateInvoices", mock.Anything, s.tenantID, mock.MatchedBy(func(req financeapp.CreateDownPaymentInvoicesRequest) bool {
			return req.Method == financeapp.AdvancePaymentFixed
		})).Return([]financeapp.InvoiceResponse{{ID: uuid.New(), OrderID: orderID, Status: "draft"}}, nil)

		w := doRequest(s.engine, http.MethodPost, "/down-payments/invoices", map[string]any{
			"order_ids":              []uuid.UUID{orderID},
			"advance_payment_method": "fixed",
			"amount":                 "50",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, decodeResponse(t, w).Data, 1)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		s := setupFinanceTestRouter()

		w := doRequest(s.engine, http.MethodPost, "/down-payments/invoices", map[string]any{
			"order_ids":              []uuid.UUID{uuid.New()},
			"advance_payment_method": "lines",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		s.downPayments.AssertNotCalled(t, "CreateInvoices", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFinanceHandler_OpenInvoice(t *testing.T) {
	t.Run("opens", func(t *testing.T) {
		s := setupFinanceTestRouter()
		invoiceID := uuid.New()
		s.invoices.On("Open", mock.Anything, s.tenantID, invoiceID).
			Return(&financeapp.InvoiceResponse{ID: invoiceID, Status: "open", Number: "INV/0001"}, nil)

		w := doRequest(s.engine, http.MethodPost, "/invoices/"+invoiceID.String()+"/open", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "INV/0001", decodeResponse(t, w).Data.(map[string]any)["number"])
	})

	t.Run("negative total", func(t *testing.T) {
		s := setupFinanceTestRouter()
		invoiceID := uuid.New()
		s.invoices.On("Open", mock.Anything, s.tenantID, invoiceID).
			Return(nil, shared.NewDomainError("INVALID_AMOUNT", "You cannot validate an invoice with a negative total amount. You should create a credit note instead."))

		w := doRequest(s.engine, http.MethodPost, "/invoices/"+invoiceID.String()+"/open", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "INVALID_AMOUNT", decodeResponse(t, w).Error.Code)
	})
}

func TestFinanceHandler_InvoiceMessages(t *testing.T) {
	s := setupFinanceTestRouter()
	invoiceID := uuid.New()
	s.messages.On("List", mock.Anything, s.tenantID, mail.ResModelInvoice, invoiceID).
		Return([]mailapp.MessageResponse{}, nil)

	w := doRequest(s.engine, http.MethodGet, "/invoices/"+invoiceID.String()+"/messages", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	s.messages.AssertExpectations(t)
}
