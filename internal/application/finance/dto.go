package finance

import (
	"time"

	"github.com/erp/saleflow/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvancePaymentMethod selects what the down payment wizard invoices
type AdvancePaymentMethod string

const (
	// AdvancePaymentDelivered invoices what is ready to invoice
	AdvancePaymentDelivered AdvancePaymentMethod = "delivered"
	// AdvancePaymentAll invoices everything and deducts the down payments
	AdvancePaymentAll AdvancePaymentMethod = "all"
	// AdvancePaymentPercentage invoices a down payment worth a percentage of the order
	AdvancePaymentPercentage AdvancePaymentMethod = "percentage"
	// AdvancePaymentFixed invoices a down payment of a fixed amount
	AdvancePaymentFixed AdvancePaymentMethod = "fixed"
)

// IsDownPayment reports whether the method adds a down payment line
func (m AdvancePaymentMethod) IsDownPayment() bool {
	return m == AdvancePaymentPercentage || m == AdvancePaymentFixed
}

// AmountTotalRequest asks for the tax-included amount of a down payment
type AmountTotalRequest struct {
	OrderIDs      []uuid.UUID     `json:"order_ids" binding:"required,min=1"`
	Amount        decimal.Decimal `json:"amount" binding:"gte=0"`
	DepositTaxIDs []uuid.UUID     `json:"deposit_tax_ids"`
}

// InverseAmountTotalRequest asks for the tax-excluded amount matching a tax-included total
type InverseAmountTotalRequest struct {
	AmountTotal   decimal.Decimal `json:"amount_total" binding:"gte=0"`
	DepositTaxIDs []uuid.UUID     `json:"deposit_tax_ids"`
}

// DownPaymentAmounts holds both sides of the down payment amount
type DownPaymentAmounts struct {
	Amount      decimal.Decimal `json:"amount"`
	AmountTotal decimal.Decimal `json:"amount_total"`
}

// CreateDownPaymentInvoicesRequest runs the down payment wizard on orders
type CreateDownPaymentInvoicesRequest struct {
	OrderIDs      []uuid.UUID          `json:"order_ids" binding:"required,min=1"`
	Method        AdvancePaymentMethod `json:"advance_payment_method" binding:"required,oneof=delivered all percentage fixed"`
	Amount        decimal.Decimal      `json:"amount" binding:"gte=0"`
	DepositTaxIDs []uuid.UUID          `json:"deposit_tax_ids"`
	ProductID     *uuid.UUID           `json:"product_id"`
}

// InvoiceHeader holds the header values an order contributes to its invoices
type InvoiceHeader struct {
	JournalID       uuid.UUID
	PayNowJournalID *uuid.UUID
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID              uuid.UUID             `json:"id"`
	OrderID         uuid.UUID             `json:"order_id"`
	Origin          string                `json:"origin"`
	Number          string                `json:"number,omitempty"`
	CustomerID      uuid.UUID             `json:"customer_id"`
	CustomerName    string                `json:"customer_name"`
	CurrencyCode    string                `json:"currency_code"`
	Status          string                `json:"status"`
	JournalID       uuid.UUID             `json:"journal_id"`
	PayNowJournalID *uuid.UUID            `json:"pay_now_journal_id,omitempty"`
	Lines           []InvoiceLineResponse `json:"lines"`
	AmountUntaxed   decimal.Decimal       `json:"amount_untaxed"`
	AmountTax       decimal.Decimal       `json:"amount_tax"`
	AmountTotal     decimal.Decimal       `json:"amount_total"`
	OpenedAt        *time.Time            `json:"opened_at,omitempty"`
	PaidAt          *time.Time            `json:"paid_at,omitempty"`
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	ID            uuid.UUID       `json:"id"`
	SaleLineID    *uuid.UUID      `json:"sale_line_id,omitempty"`
	ProductID     uuid.UUID       `json:"product_id"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxIDs        []uuid.UUID     `json:"tax_ids"`
	PriceSubtotal decimal.Decimal `json:"price_subtotal"`
	PriceTax      decimal.Decimal `json:"price_tax"`
	PriceTotal    decimal.Decimal `json:"price_total"`
}

// ToInvoiceResponse converts a domain invoice to its response
func ToInvoiceResponse(invoice *finance.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(invoice.Lines))
	for i, line := range invoice.Lines {
		lines[i] = InvoiceLineResponse{
			ID:            line.ID,
			SaleLineID:    line.SaleLineID,
			ProductID:     line.ProductID,
			Name:          line.Name,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			TaxIDs:        line.TaxIDs,
			PriceSubtotal: line.PriceSubtotal,
			PriceTax:      line.PriceTax,
			PriceTotal:    line.PriceTotal,
		}
	}
	return InvoiceResponse{
		ID:              invoice.ID,
		OrderID:         invoice.OrderID,
		Origin:          invoice.Origin,
		Number:          invoice.Number,
		CustomerID:      invoice.CustomerID,
		CustomerName:    invoice.CustomerName,
		CurrencyCode:    invoice.CurrencyCode,
		Status:          string(invoice.Status),
		JournalID:       invoice.JournalID,
		PayNowJournalID: invoice.PayNowJournalID,
		Lines:           lines,
		AmountUntaxed:   invoice.AmountUntaxed,
		AmountTax:       invoice.AmountTax,
		AmountTotal:     invoice.AmountTotal,
		OpenedAt:        invoice.OpenedAt,
		PaidAt:          invoice.PaidAt,
	}
}

// ToInvoiceResponses converts domain invoices to responses
func ToInvoiceResponses(invoices []*finance.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		responses[i] = ToInvoiceResponse(invoice)
	}
	return responses
}
