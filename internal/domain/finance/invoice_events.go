package finance

import (
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceCreated          = "InvoiceCreated"
	EventTypeInvoiceOpened           = "InvoiceOpened"
	EventTypeInvoicePaid             = "InvoicePaid"
	EventTypeInvoiceValidationFailed = "InvoiceValidationFailed"
)

// InvoiceCreatedEvent is raised when a draft invoice is created from an order
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	OrderID     uuid.UUID       `json:"order_id"`
	AmountTotal decimal.Decimal `json:"amount_total"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(invoice *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, invoice.ID, invoice.TenantID),
		InvoiceID:       invoice.ID,
		OrderID:         invoice.OrderID,
		AmountTotal:     invoice.AmountTotal,
	}
}

// InvoiceOpenedEvent is raised when an invoice is validated
type InvoiceOpenedEvent struct {
	shared.BaseDomainEvent
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Number      string          `json:"number"`
	OrderID     uuid.UUID       `json:"order_id"`
	AmountTotal decimal.Decimal `json:"amount_total"`
}

// NewInvoiceOpenedEvent creates a new InvoiceOpenedEvent
func NewInvoiceOpenedEvent(invoice *Invoice) *InvoiceOpenedEvent {
	return &InvoiceOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceOpened, AggregateTypeInvoice, invoice.ID, invoice.TenantID),
		InvoiceID:       invoice.ID,
		Number:          invoice.Number,
		OrderID:         invoice.OrderID,
		AmountTotal:     invoice.AmountTotal,
	}
}

// InvoicePaidEvent is raised when an invoice is settled
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID       uuid.UUID  `json:"invoice_id"`
	Number          string     `json:"number"`
	PayNowJournalID *uuid.UUID `json:"pay_now_journal_id,omitempty"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(invoice *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, invoice.ID, invoice.TenantID),
		InvoiceID:       invoice.ID,
		Number:          invoice.Number,
		PayNowJournalID: invoice.PayNowJournalID,
	}
}

// InvoiceValidationFailedEvent is raised when automatic validation of created invoices failed
type InvoiceValidationFailedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID   `json:"order_id"`
	InvoiceIDs []uuid.UUID `json:"invoice_ids"`
	Reason     string      `json:"reason"`
}

// NewInvoiceValidationFailedEvent creates a new InvoiceValidationFailedEvent
func NewInvoiceValidationFailedEvent(tenantID, orderID uuid.UUID, invoiceIDs []uuid.UUID, reason string) *InvoiceValidationFailedEvent {
	return &InvoiceValidationFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceValidationFailed, AggregateTypeInvoice, orderID, tenantID),
		OrderID:         orderID,
		InvoiceIDs:      invoiceIDs,
		Reason:          reason,
	}
}
