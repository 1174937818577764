package trade

import (
	"fmt"
	"time"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusSale      OrderStatus = "sale"
	OrderStatusDone      OrderStatus = "done"
	OrderStatusCancelled OrderStatus = "cancel"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusSale, OrderStatusDone, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusSale || target == OrderStatusCancelled
	case OrderStatusSale:
		return target == OrderStatusDone || target == OrderStatusCancelled
	case OrderStatusDone, OrderStatusCancelled:
		return false
	}
	return false
}

// IsInvoiceable reports whether lines of an order in this status have something to invoice
func (s OrderStatus) IsInvoiceable() bool {
	return s == OrderStatusSale || s == OrderStatusDone
}

// SalesOrderLine is a product line of a sales order
type SalesOrderLine struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductID     uuid.UUID
	ProductName   string
	ProductType   catalog.ProductType
	UomID         uuid.UUID
	Quantity      decimal.Decimal // ordered quantity in UomID
	UnitPrice     decimal.Decimal
	QtyDelivered  decimal.Decimal
	QtyInvoiced   decimal.Decimal
	InvoicePolicy catalog.InvoicePolicy
	IsDownPayment bool
	TaxIDs        []uuid.UUID
	Sequence      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Subtotal returns quantity times unit price before taxes
func (l *SalesOrderLine) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// QtyToInvoice returns the quantity still to invoice for the line, given its order status.
// Down payment lines go negative once the down payment was invoiced, so a final invoice deducts them.
func (l *SalesOrderLine) QtyToInvoice(status OrderStatus) decimal.Decimal {
	if !status.IsInvoiceable() {
		return decimal.Zero
	}
	if l.IsDownPayment {
		return l.Quantity.Sub(l.QtyInvoiced)
	}
	if l.InvoicePolicy == catalog.InvoicePolicyDelivery {
		return l.QtyDelivered.Sub(l.QtyInvoiced)
	}
	return l.Quantity.Sub(l.QtyInvoiced)
}

// NeedsDelivery reports whether the line moves goods out of the warehouse
func (l *SalesOrderLine) NeedsDelivery() bool {
	return !l.IsDownPayment && l.ProductType.IsStockable() && l.Quantity.IsPositive()
}

// SalesOrder represents a sales order aggregate root
type SalesOrder struct {
	shared.TenantAggregateRoot
	OrderNumber        string
	CustomerID         uuid.UUID
	CustomerName       string
	TypeID             *uuid.UUID
	CurrencyCode       string
	Lines              []SalesOrderLine
	AmountUntaxed      decimal.Decimal
	Status             OrderStatus
	ProcurementGroupID *uuid.UUID
	ConfirmedAt        *time.Time
	DoneAt             *time.Time
	CancelledAt        *time.Time
}

// NewSalesOrder creates a new draft sales order (a quotation)
func NewSalesOrder(tenantID uuid.UUID, orderNumber string, customerID uuid.UUID, customerName, currencyCode string) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(currencyCode) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency code must have 3 letters")
	}

	order := &SalesOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		CurrencyCode:        currencyCode,
		Lines:               make([]SalesOrderLine, 0),
		AmountUntaxed:       decimal.Zero,
		Status:              OrderStatusDraft,
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))

	return order, nil
}

// SetType assigns the sale order type. Only allowed on draft orders.
func (o *SalesOrder) SetType(typeID *uuid.UUID) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot change the type of a non-draft order")
	}
	o.TypeID = nilIfEmpty(typeID)
	o.UpdatedAt = time.Now()
	return nil
}

// AddProduct adds a line selling qty of product in the product unit at its list price.
// Only allowed on draft orders.
func (o *SalesOrder) AddProduct(product *catalog.Product, qty decimal.Decimal) (*SalesOrderLine, error) {
	if o.Status != OrderStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add products to a non-draft order")
	}
	if product == nil || product.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product cannot be empty")
	}
	if !product.Active {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", fmt.Sprintf("Product %s is archived", product.Name))
	}
	if qty.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	now := time.Now()
	line := SalesOrderLine{
		ID:            uuid.New(),
		OrderID:       o.ID,
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductType:   product.Type,
		UomID:         product.UomID,
		Quantity:      qty,
		UnitPrice:     product.ListPrice,
		QtyDelivered:  decimal.Zero,
		QtyInvoiced:   decimal.Zero,
		InvoicePolicy: product.InvoicePolicy,
		TaxIDs:        append([]uuid.UUID(nil), product.TaxIDs...),
		Sequence:      o.nextSequence(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	o.Lines = append(o.Lines, line)
	o.recalculateTotals()
	o.UpdatedAt = now

	return &o.Lines[len(o.Lines)-1], nil
}

// AddDownPaymentLine records a down payment of amount on a confirmed order.
// The line has no ordered quantity; invoicing it sets QtyInvoiced to 1.
func (o *SalesOrder) AddDownPaymentLine(productID uuid.UUID, description string, amount decimal.Decimal, taxIDs []uuid.UUID) (*SalesOrderLine, error) {
	if o.Status != OrderStatusSale {
		return nil, shared.NewDomainError("INVALID_STATE", "Down payments can only be added to confirmed orders")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "The value of the down payment amount must be positive")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Down payment product cannot be empty")
	}

	now := time.Now()
	line := SalesOrderLine{
		ID:            uuid.New(),
		OrderID:       o.ID,
		ProductID:     productID,
		ProductName:   description,
		ProductType:   catalog.ProductTypeService,
		Quantity:      decimal.Zero,
		UnitPrice:     amount,
		QtyDelivered:  decimal.Zero,
		QtyInvoiced:   decimal.Zero,
		InvoicePolicy: catalog.InvoicePolicyOrder,
		IsDownPayment: true,
		TaxIDs:        append([]uuid.UUID(nil), taxIDs...),
		Sequence:      o.nextSequence(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	o.Lines = append(o.Lines, line)
	o.UpdatedAt = now

	return &o.Lines[len(o.Lines)-1], nil
}

// SetLineQuantity changes the ordered quantity of a line. Only allowed on draft orders.
func (o *SalesOrder) SetLineQuantity(lineID uuid.UUID, qty decimal.Decimal) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update lines of a non-draft order")
	}
	if qty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	line := o.GetLine(lineID)
	if line == nil {
		return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
	}
	line.Quantity = qty
	line.UpdatedAt = time.Now()
	o.recalculateTotals()
	o.UpdatedAt = line.UpdatedAt
	return nil
}

// RemoveLine deletes a line. Only allowed on draft orders.
func (o *SalesOrder) RemoveLine(lineID uuid.UUID) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove lines from a non-draft order")
	}
	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			o.Lines = append(o.Lines[:idx], o.Lines[idx+1:]...)
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
}

// Confirm turns the quotation into a sales order
func (o *SalesOrder) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusSale) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("NO_LINES", "Cannot confirm order without lines")
	}

	now := time.Now()
	o.Status = OrderStatusSale
	o.ConfirmedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderConfirmedEvent(o))

	return nil
}

// AttachProcurementGroup links the procurement group created when the order was confirmed
func (o *SalesOrder) AttachProcurementGroup(groupID uuid.UUID) {
	o.ProcurementGroupID = &groupID
	o.UpdatedAt = time.Now()
}

// Done locks a confirmed order
func (o *SalesOrder) Done() error {
	if !o.Status.CanTransitionTo(OrderStatusDone) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot lock order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusDone
	o.DoneAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderDoneEvent(o))

	return nil
}

// Cancel cancels a draft or confirmed order
func (o *SalesOrder) Cancel() error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	wasConfirmed := o.Status == OrderStatusSale
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderCancelledEvent(o, wasConfirmed))

	return nil
}

// RecordDelivery adds a delivered quantity, expressed in the line unit, to a line
func (o *SalesOrder) RecordDelivery(lineID uuid.UUID, qty decimal.Decimal) error {
	if !o.Status.IsInvoiceable() {
		return shared.NewDomainError("INVALID_STATE", "Deliveries can only be recorded on confirmed orders")
	}
	line := o.GetLine(lineID)
	if line == nil {
		return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
	}
	if !qty.IsPositive() {
		return nil
	}
	line.QtyDelivered = line.QtyDelivered.Add(qty)
	line.UpdatedAt = time.Now()
	o.UpdatedAt = line.UpdatedAt
	return nil
}

// RecordInvoiced adds qty to the invoiced quantity of a line
func (o *SalesOrder) RecordInvoiced(lineID uuid.UUID, qty decimal.Decimal) error {
	line := o.GetLine(lineID)
	if line == nil {
		return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
	}
	line.QtyInvoiced = line.QtyInvoiced.Add(qty)
	line.UpdatedAt = time.Now()
	o.UpdatedAt = line.UpdatedAt
	return nil
}

// HasQtyToInvoice reports whether any line has a non-zero quantity to invoice
func (o *SalesOrder) HasQtyToInvoice() bool {
	for idx := range o.Lines {
		if !o.Lines[idx].QtyToInvoice(o.Status).IsZero() {
			return true
		}
	}
	return false
}

// InvoiceableLines returns the lines to put on the next invoice.
// Regular invoices take positive quantities only; a final invoice also deducts invoiced down payments.
func (o *SalesOrder) InvoiceableLines(final bool) []*SalesOrderLine {
	lines := make([]*SalesOrderLine, 0, len(o.Lines))
	for idx := range o.Lines {
		line := &o.Lines[idx]
		qty := line.QtyToInvoice(o.Status)
		if qty.IsZero() {
			continue
		}
		if qty.IsNegative() && !(final && line.IsDownPayment) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// LinesForProduct returns the non down payment lines selling the product, in order
func (o *SalesOrder) LinesForProduct(productID uuid.UUID) []*SalesOrderLine {
	lines := make([]*SalesOrderLine, 0)
	for idx := range o.Lines {
		if o.Lines[idx].ProductID == productID && !o.Lines[idx].IsDownPayment {
			lines = append(lines, &o.Lines[idx])
		}
	}
	return lines
}

// GetLine returns a line by its ID
func (o *SalesOrder) GetLine(lineID uuid.UUID) *SalesOrderLine {
	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			return &o.Lines[idx]
		}
	}
	return nil
}

// DeliveryLines returns the lines that need a delivery picking
func (o *SalesOrder) DeliveryLines() []SalesOrderLine {
	lines := make([]SalesOrderLine, 0)
	for _, line := range o.Lines {
		if line.NeedsDelivery() {
			lines = append(lines, line)
		}
	}
	return lines
}

// LineCount returns the number of lines in the order
func (o *SalesOrder) LineCount() int {
	return len(o.Lines)
}

func (o *SalesOrder) recalculateTotals() {
	total := decimal.Zero
	for idx := range o.Lines {
		if o.Lines[idx].IsDownPayment {
			continue
		}
		total = total.Add(o.Lines[idx].Subtotal())
	}
	o.AmountUntaxed = total
}

func (o *SalesOrder) nextSequence() int {
	seq := 10
	for _, line := range o.Lines {
		if line.Sequence >= seq {
			seq = line.Sequence + 10
		}
	}
	return seq
}

var _ shared.AggregateRoot = (*SalesOrder)(nil)
