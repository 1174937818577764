package inventory

import (
	"time"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockQuant is the stock of one product held by a tenant, in the product unit.
// Reserved is the part promised to assigned pickings.
type StockQuant struct {
	shared.TenantAggregateRoot
	ProductID uuid.UUID
	OnHand    decimal.Decimal
	Reserved  decimal.Decimal
}

// NewStockQuant creates an empty quant for a product
func NewStockQuant(tenantID, productID uuid.UUID) (*StockQuant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	return &StockQuant{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		OnHand:              decimal.Zero,
		Reserved:            decimal.Zero,
	}, nil
}

// Available returns the quantity that can still be reserved
func (q *StockQuant) Available() decimal.Decimal {
	available := q.OnHand.Sub(q.Reserved)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// Receive increases the quantity on hand
func (q *StockQuant) Receive(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	q.OnHand = q.OnHand.Add(quantity)
	q.touch()
	return nil
}

// Reserve promises quantity to a picking
func (q *StockQuant) Reserve(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if q.Available().LessThan(quantity) {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient available stock to reserve")
	}
	q.Reserved = q.Reserved.Add(quantity)
	q.touch()
	return nil
}

// Deliver takes quantity out of stock, releasing up to reserved of the reservation.
// Forced deliveries may leave the quantity on hand negative.
func (q *StockQuant) Deliver(quantity, reserved decimal.Decimal) {
	q.OnHand = q.OnHand.Sub(quantity)
	release := decimal.Min(reserved, q.Reserved)
	if release.IsPositive() {
		q.Reserved = q.Reserved.Sub(release)
	}
	q.touch()
}

func (q *StockQuant) touch() {
	q.UpdatedAt = time.Now()
	q.IncrementVersion()
}
