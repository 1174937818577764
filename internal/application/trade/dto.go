package trade

import (
	"time"

	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Sale Order Type DTOs ====================

// CreateSaleOrderTypeRequest represents a request to create a sale order type
type CreateSaleOrderTypeRequest struct {
	Name                  string                    `json:"name" binding:"required,min=1,max=100"`
	InvoicingAutomation   trade.InvoicingAutomation `json:"invoicing_automation" binding:"omitempty,oneof=none create_invoice validate_invoice try_validate_invoice"`
	PickingAutomation     trade.PickingAutomation   `json:"picking_automation" binding:"omitempty,oneof=none validate validate_no_force"`
	BookID                *uuid.UUID                `json:"book_id"`
	JournalID             *uuid.UUID                `json:"journal_id"`
	PaymentAutomation     bool                      `json:"payment_automation"`
	PaymentJournalID      *uuid.UUID                `json:"payment_journal_id"`
	SetDoneOnConfirmation bool                      `json:"set_done_on_confirmation"`
}

// SaleOrderTypeListFilter represents filter options for the sale order type list
type SaleOrderTypeListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SaleOrderTypeResponse represents a sale order type in API responses
type SaleOrderTypeResponse struct {
	ID                    uuid.UUID  `json:"id"`
	TenantID              uuid.UUID  `json:"tenant_id"`
	Name                  string     `json:"name"`
	InvoicingAutomation   string     `json:"invoicing_automation"`
	PickingAutomation     string     `json:"picking_automation"`
	BookID                *uuid.UUID `json:"book_id,omitempty"`
	JournalID             *uuid.UUID `json:"journal_id,omitempty"`
	PaymentAutomation     bool       `json:"payment_automation"`
	PaymentJournalID      *uuid.UUID `json:"payment_journal_id,omitempty"`
	SetDoneOnConfirmation bool       `json:"set_done_on_confirmation"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// ToSaleOrderTypeResponse converts a domain sale order type to a response
func ToSaleOrderTypeResponse(t *trade.SaleOrderType) SaleOrderTypeResponse {
	return SaleOrderTypeResponse{
		ID:                    t.ID,
		TenantID:              t.TenantID,
		Name:                  t.Name,
		InvoicingAutomation:   string(t.InvoicingAutomation),
		PickingAutomation:     string(t.PickingAutomation),
		BookID:                t.BookID,
		JournalID:             t.JournalID,
		PaymentAutomation:     t.PaymentAutomation,
		PaymentJournalID:      t.PaymentJournalID,
		SetDoneOnConfirmation: t.SetDoneOnConfirmation,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

// ==================== Sales Order DTOs ====================

// CreateSalesOrderRequest represents a request to create a quotation
type CreateSalesOrderRequest struct {
	CustomerID   uuid.UUID                   `json:"customer_id" binding:"required"`
	CustomerName string                      `json:"customer_name" binding:"required,min=1,max=200"`
	CurrencyCode string                      `json:"currency_code" binding:"omitempty,len=3"`
	TypeID       *uuid.UUID                  `json:"type_id"`
	Lines        []CreateSalesOrderLineInput `json:"lines" binding:"dive"`
}

// CreateSalesOrderLineInput represents a line in the create order request
type CreateSalesOrderLineInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"gt=0"`
}

// SalesOrderListFilter represents filter options for the sales order list
type SalesOrderListFilter struct {
	Search     string     `form:"search"`
	CustomerID *uuid.UUID `form:"-"`
	TypeID     *uuid.UUID `form:"-"`
	Status     string     `form:"status" binding:"omitempty,oneof=draft sale done cancel"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RunAutomationRequest selects the orders an automation runs on
type RunAutomationRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID                 uuid.UUID                `json:"id"`
	TenantID           uuid.UUID                `json:"tenant_id"`
	OrderNumber        string                   `json:"order_number"`
	CustomerID         uuid.UUID                `json:"customer_id"`
	CustomerName       string                   `json:"customer_name"`
	TypeID             *uuid.UUID               `json:"type_id,omitempty"`
	CurrencyCode       string                   `json:"currency_code"`
	Lines              []SalesOrderLineResponse `json:"lines"`
	AmountUntaxed      decimal.Decimal          `json:"amount_untaxed"`
	Status             string                   `json:"status"`
	ProcurementGroupID *uuid.UUID               `json:"procurement_group_id,omitempty"`
	ConfirmedAt        *time.Time               `json:"confirmed_at,omitempty"`
	DoneAt             *time.Time               `json:"done_at,omitempty"`
	CancelledAt        *time.Time               `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
	Version            int                      `json:"version"`
}

// SalesOrderLineResponse represents a sales order line in API responses
type SalesOrderLineResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	UomID         uuid.UUID       `json:"uom_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	QtyDelivered  decimal.Decimal `json:"qty_delivered"`
	QtyInvoiced   decimal.Decimal `json:"qty_invoiced"`
	QtyToInvoice  decimal.Decimal `json:"qty_to_invoice"`
	InvoicePolicy string          `json:"invoice_policy"`
	IsDownPayment bool            `json:"is_down_payment"`
	TaxIDs        []uuid.UUID     `json:"tax_ids"`
}

// SalesOrderListItemResponse represents a sales order in list responses, without lines
type SalesOrderListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	TypeID        *uuid.UUID      `json:"type_id,omitempty"`
	AmountUntaxed decimal.Decimal `json:"amount_untaxed"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PrintAction asks the client to print the voucher of a validated picking
type PrintAction struct {
	Type       string    `json:"type"`
	ReportName string    `json:"report_name"`
	ResModel   string    `json:"res_model"`
	ResID      uuid.UUID `json:"res_id"`
	Name       string    `json:"name"`
}

// AutomationResult groups the client actions produced by an automation run
type AutomationResult struct {
	Type    string        `json:"type,omitempty"`
	Actions []PrintAction `json:"actions"`
}

// HasActions reports whether the client has something to do
func (r *AutomationResult) HasActions() bool {
	return len(r.Actions) > 0
}

// ConfirmResponse is the result of confirming an order
type ConfirmResponse struct {
	Order  SalesOrderResponse `json:"order"`
	Result AutomationResult   `json:"result"`
}

// ToSalesOrderResponse converts a domain sales order to a response
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	lines := make([]SalesOrderLineResponse, len(o.Lines))
	for i := range o.Lines {
		line := &o.Lines[i]
		lines[i] = SalesOrderLineResponse{
			ID:            line.ID,
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			UomID:         line.UomID,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			Subtotal:      line.Subtotal(),
			QtyDelivered:  line.QtyDelivered,
			QtyInvoiced:   line.QtyInvoiced,
			QtyToInvoice:  line.QtyToInvoice(o.Status),
			InvoicePolicy: string(line.InvoicePolicy),
			IsDownPayment: line.IsDownPayment,
			TaxIDs:        line.TaxIDs,
		}
	}
	return SalesOrderResponse{
		ID:                 o.ID,
		TenantID:           o.TenantID,
		OrderNumber:        o.OrderNumber,
		CustomerID:         o.CustomerID,
		CustomerName:       o.CustomerName,
		TypeID:             o.TypeID,
		CurrencyCode:       o.CurrencyCode,
		Lines:              lines,
		AmountUntaxed:      o.AmountUntaxed,
		Status:             o.Status.String(),
		ProcurementGroupID: o.ProcurementGroupID,
		ConfirmedAt:        o.ConfirmedAt,
		DoneAt:             o.DoneAt,
		CancelledAt:        o.CancelledAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		Version:            o.Version,
	}
}

// ToSalesOrderListItemResponse converts a domain sales order to a list response
func ToSalesOrderListItemResponse(o *trade.SalesOrder) SalesOrderListItemResponse {
	return SalesOrderListItemResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		TypeID:        o.TypeID,
		AmountUntaxed: o.AmountUntaxed,
		Status:        o.Status.String(),
		CreatedAt:     o.CreatedAt,
	}
}

// ToSalesOrderListItemResponses converts a slice of domain sales orders to list responses
func ToSalesOrderListItemResponses(orders []trade.SalesOrder) []SalesOrderListItemResponse {
	responses := make([]SalesOrderListItemResponse, len(orders))
	for i := range orders {
		responses[i] = ToSalesOrderListItemResponse(&orders[i])
	}
	return responses
}
