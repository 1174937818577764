package event

import (
	"github.com/erp/saleflow/internal/domain/finance"
	"github.com/erp/saleflow/internal/domain/inventory"
	"github.com/erp/saleflow/internal/domain/trade"
)

// RegisterAllEvents registers every domain event the outbox may carry
func RegisterAllEvents(serializer *EventSerializer) {
	// Sales orders
	serializer.Register(trade.EventTypeSalesOrderCreated, &trade.SalesOrderCreatedEvent{})
	serializer.Register(trade.EventTypeSalesOrderConfirmed, &trade.SalesOrderConfirmedEvent{})
	serializer.Register(trade.EventTypeSalesOrderDone, &trade.SalesOrderDoneEvent{})
	serializer.Register(trade.EventTypeSalesOrderCancelled, &trade.SalesOrderCancelledEvent{})

	// Deliveries
	serializer.Register(inventory.EventTypePickingDone, &inventory.PickingDoneEvent{})

	// Invoices
	serializer.Register(finance.EventTypeInvoiceCreated, &finance.InvoiceCreatedEvent{})
	serializer.Register(finance.EventTypeInvoiceOpened, &finance.InvoiceOpenedEvent{})
	serializer.Register(finance.EventTypeInvoicePaid, &finance.InvoicePaidEvent{})
	serializer.Register(finance.EventTypeInvoiceValidationFailed, &finance.InvoiceValidationFailedEvent{})
}

// NewRegisteredSerializer returns a serializer that knows every domain event
func NewRegisteredSerializer() *EventSerializer {
	serializer := NewEventSerializer()
	RegisterAllEvents(serializer)
	return serializer
}
