package mail

import (
	"context"
	"fmt"

	"github.com/erp/saleflow/internal/domain/finance"
	"github.com/erp/saleflow/internal/domain/inventory"
	"github.com/erp/saleflow/internal/domain/mail"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"go.uber.org/zap"
)

// ChatterHandler logs the lifecycle of orders, deliveries and invoices in the chatter of the records
type ChatterHandler struct {
	chatter *ChatterService
	logger  *zap.Logger
}

// NewChatterHandler creates a new ChatterHandler
func NewChatterHandler(chatter *ChatterService, logger *zap.Logger) *ChatterHandler {
	return &ChatterHandler{
		chatter: chatter,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ChatterHandler) EventTypes() []string {
	return []string{
		trade.EventTypeSalesOrderConfirmed,
		trade.EventTypeSalesOrderDone,
		trade.EventTypeSalesOrderCancelled,
		inventory.EventTypePickingDone,
		finance.EventTypeInvoiceOpened,
		finance.EventTypeInvoicePaid,
	}
}

// Handle posts a note on the record the event belongs to
func (h *ChatterHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	resModel, body, ok := describe(event)
	if !ok {
		h.logger.Debug("No chatter note for event", zap.String("event_type", event.EventType()))
		return nil
	}

	if err := h.chatter.Post(ctx, event.TenantID(), resModel, event.AggregateID(), body, mail.LevelInfo); err != nil {
		h.logger.Error("Failed to post chatter note",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func describe(event shared.DomainEvent) (string, string, bool) {
	switch e := event.(type) {
	case *trade.SalesOrderConfirmedEvent:
		return mail.ResModelSalesOrder, fmt.Sprintf("Quotation %s confirmed", e.OrderNumber), true
	case *trade.SalesOrderDoneEvent:
		return mail.ResModelSalesOrder, fmt.Sprintf("Order %s locked", e.OrderNumber), true
	case *trade.SalesOrderCancelledEvent:
		return mail.ResModelSalesOrder, fmt.Sprintf("Order %s cancelled", e.OrderNumber), true
	case *inventory.PickingDoneEvent:
		return mail.ResModelPicking, fmt.Sprintf("Delivery %s validated", e.Name), true
	case *finance.InvoiceOpenedEvent:
		return mail.ResModelInvoice, fmt.Sprintf("Invoice %s validated", e.Number), true
	case *finance.InvoicePaidEvent:
		return mail.ResModelInvoice, fmt.Sprintf("Invoice %s paid", e.Number), true
	}
	return "", "", false
}
