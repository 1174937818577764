package handler

import (
	"context"

	financeapp "github.com/erp/saleflow/internal/application/finance"
	"github.com/erp/saleflow/internal/domain/mail"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DownPaymentService runs the down payment wizard
type DownPaymentService interface {
	ComputeAmountTotal(ctx context.Context, tenantID uuid.UUID, req financeapp.AmountTotalRequest) (*financeapp.DownPaymentAmounts, error)
	InverseAmountTotal(ctx context.Context, tenantID uuid.UUID, req financeapp.InverseAmountTotalRequest) (*financeapp.DownPaymentAmounts, error)
	CreateInvoices(ctx context.Context, tenantID uuid.UUID, req financeapp.CreateDownPaymentInvoicesRequest) ([]financeapp.InvoiceResponse, error)
}

// InvoiceOpener validates draft invoices
type InvoiceOpener interface {
	Open(ctx context.Context, tenantID, invoiceID uuid.UUID) (*financeapp.InvoiceResponse, error)
}

// FinanceHandler handles down payment and invoice endpoints
type FinanceHandler struct {
	BaseHandler
	downPayments DownPaymentService
	invoices     InvoiceOpener
	messages     MessageLister
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(downPayments DownPaymentService, invoices InvoiceOpener, messages MessageLister) *FinanceHandler {
	return &FinanceHandler{
		downPayments: downPayments,
		invoices:     invoices,
		messages:     messages,
	}
}

// AmountTotal godoc
// @Summary      Tax included amount of a down payment
// @Tags         down-payments
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body financeapp.AmountTotalRequest true "Down payment"
// @Success      200 {object} dto.Response{data=financeapp.DownPaymentAmounts}
// @Router       /down-payments/amount-total [post]
func (h *FinanceHandler) AmountTotal(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}

	var req financeapp.AmountTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	amounts, err := h.downPayments.ComputeAmountTotal(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, amounts)
}

// InverseAmountTotal godoc
// @Summary      Tax excluded amount matching a tax included total
// @Tags         down-payments
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body financeapp.InverseAmountTotalRequest true "Down payment"
// @Success      200 {object} dto.Response{data=financeapp.DownPaymentAmounts}
// @Router       /down-payments/inverse [post]
func (h *FinanceHandler) InverseAmountTotal(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}

	var req financeapp.InverseAmountTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	amounts, err := h.downPayments.InverseAmountTotal(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, amounts)
}

// CreateDownPaymentInvoices godoc
// @Summary      Create the invoices of the down payment wizard
// @Tags         down-payments
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body financeapp.CreateDownPaymentInvoicesRequest true "Wizard values"
// @Success      201 {object} dto.Response{data=[]financeapp.InvoiceResponse}
// @Router       /down-payments/invoices [post]
func (h *FinanceHandler) CreateDownPaymentInvoices(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}

	var req financeapp.CreateDownPaymentInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	invoices, err := h.downPayments.CreateInvoices(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoices)
}

// OpenInvoice godoc
// @Summary      Validate a draft invoice
// @Tags         invoices
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.InvoiceResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/open [post]
func (h *FinanceHandler) OpenInvoice(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}
	invoiceID, ok := h.uuidParam(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoices.Open(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// InvoiceMessages godoc
// @Summary      List the chatter messages of an invoice
// @Tags         invoices
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]mailapp.MessageResponse}
// @Router       /invoices/{id}/messages [get]
func (h *FinanceHandler) InvoiceMessages(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}
	invoiceID, ok := h.uuidParam(c, "id", "invoice")
	if !ok {
		return
	}

	messages, err := h.messages.List(c.Request.Context(), tenantID, mail.ResModelInvoice, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, messages)
}
