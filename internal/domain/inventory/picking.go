package inventory

import (
	"fmt"
	"time"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PickingState represents the state of a picking or of one of its moves
type PickingState string

const (
	PickingStateDraft     PickingState = "draft"
	PickingStateWaiting   PickingState = "waiting"
	PickingStateConfirmed PickingState = "confirmed"
	PickingStateAssigned  PickingState = "assigned"
	PickingStateDone      PickingState = "done"
	PickingStateCancelled PickingState = "cancel"
)

// IsClosed reports whether nothing can happen to the picking any more
func (s PickingState) IsClosed() bool {
	return s == PickingStateDone || s == PickingStateCancelled
}

// StockMove moves one sale line worth of a product out of stock
type StockMove struct {
	ID            uuid.UUID
	PickingID     uuid.UUID
	SaleLineID    *uuid.UUID
	ProductID     uuid.UUID
	ProductName   string
	UomID         uuid.UUID
	ProductUomQty decimal.Decimal // demand in UomID
	ProductQty    decimal.Decimal // demand in the product unit
	ReservedQty   decimal.Decimal // reserved stock in the product unit
	QtyDone       decimal.Decimal // processed quantity in UomID
	State         PickingState
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DoneProductQty returns QtyDone converted to the product unit
func (m *StockMove) DoneProductQty() decimal.Decimal {
	switch {
	case m.ProductUomQty.IsZero():
		return m.QtyDone
	case m.QtyDone.Equal(m.ProductUomQty):
		return m.ProductQty
	}
	return m.ProductQty.Mul(m.QtyDone).Div(m.ProductUomQty)
}

// Picking is a delivery order created by the procurement of a sales order
type Picking struct {
	shared.TenantAggregateRoot
	Name               string
	OrderID            uuid.UUID
	ProcurementGroupID uuid.UUID
	State              PickingState
	BookID             *uuid.UUID
	VoucherRequired    bool
	Moves              []StockMove
	DoneAt             *time.Time
}

// NewPicking creates a draft delivery picking for an order
func NewPicking(tenantID uuid.UUID, name string, orderID, groupID uuid.UUID) (*Picking, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Picking name cannot be empty")
	}
	if orderID == uuid.Nil || groupID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORIGIN", "Picking needs an order and a procurement group")
	}
	return &Picking{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		OrderID:             orderID,
		ProcurementGroupID:  groupID,
		State:               PickingStateDraft,
		Moves:               make([]StockMove, 0),
	}, nil
}

// AddMove adds a move for a sale line. uomQty is in uomID, productQty in the product unit.
func (p *Picking) AddMove(saleLineID *uuid.UUID, productID uuid.UUID, productName string, uomID uuid.UUID, uomQty, productQty decimal.Decimal) error {
	if p.State != PickingStateDraft {
		return shared.NewDomainError("INVALID_STATE", "Moves can only be added to draft pickings")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !uomQty.IsPositive() || !productQty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Move quantity must be positive")
	}
	now := time.Now()
	p.Moves = append(p.Moves, StockMove{
		ID:            uuid.New(),
		PickingID:     p.ID,
		SaleLineID:    saleLineID,
		ProductID:     productID,
		ProductName:   productName,
		UomID:         uomID,
		ProductUomQty: uomQty,
		ProductQty:    productQty,
		ReservedQty:   decimal.Zero,
		QtyDone:       decimal.Zero,
		State:         PickingStateDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	p.UpdatedAt = now
	return nil
}

// Confirm moves a draft picking to confirmed, waiting for availability
func (p *Picking) Confirm() error {
	if p.State != PickingStateDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm picking in %s state", p.State))
	}
	if len(p.Moves) == 0 {
		return shared.NewDomainError("NO_MOVES", "Cannot confirm a picking without moves")
	}
	for idx := range p.Moves {
		p.Moves[idx].State = PickingStateConfirmed
	}
	p.State = PickingStateConfirmed
	p.UpdatedAt = time.Now()
	return nil
}

// SetBook writes the stock book on the picking
func (p *Picking) SetBook(book *StockBook) error {
	if p.State.IsClosed() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change the book of a closed picking")
	}
	if book == nil {
		p.BookID = nil
		p.VoucherRequired = false
	} else {
		id := book.ID
		p.BookID = &id
		p.VoucherRequired = book.VoucherRequired
	}
	p.UpdatedAt = time.Now()
	return nil
}

// BookRequired reports whether a voucher must be printed for the picking
func (p *Picking) BookRequired() bool {
	return p.BookID != nil && p.VoucherRequired
}

// Assign reserves stock for every move the available quantities fully cover.
// available is keyed by product, in the product unit, and is decremented by what gets reserved.
// It returns the quantity reserved per product.
func (p *Picking) Assign(available map[uuid.UUID]decimal.Decimal) (map[uuid.UUID]decimal.Decimal, error) {
	if p.State.IsClosed() || p.State == PickingStateDraft {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reserve picking in %s state", p.State))
	}

	reserved := make(map[uuid.UUID]decimal.Decimal)
	for idx := range p.Moves {
		move := &p.Moves[idx]
		if move.State == PickingStateAssigned || move.State.IsClosed() {
			continue
		}
		need := move.ProductQty.Sub(move.ReservedQty)
		stock := available[move.ProductID]
		if stock.LessThan(need) {
			continue
		}
		available[move.ProductID] = stock.Sub(need)
		reserved[move.ProductID] = reserved[move.ProductID].Add(need)
		move.ReservedQty = move.ProductQty
		move.State = PickingStateAssigned
		move.UpdatedAt = time.Now()
	}
	p.refreshState()
	return reserved, nil
}

// ForceAvailability marks every move available and fully processed, whatever the stock
func (p *Picking) ForceAvailability() error {
	if p.State.IsClosed() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot force availability of picking in %s state", p.State))
	}
	now := time.Now()
	for idx := range p.Moves {
		move := &p.Moves[idx]
		if move.State.IsClosed() {
			continue
		}
		move.State = PickingStateAssigned
		move.QtyDone = move.ProductUomQty
		move.UpdatedAt = now
	}
	p.State = PickingStateAssigned
	p.UpdatedAt = now
	return nil
}

// FillQtyDone sets the processed quantity of every open move to its demand
func (p *Picking) FillQtyDone() {
	now := time.Now()
	for idx := range p.Moves {
		move := &p.Moves[idx]
		if move.State.IsClosed() {
			continue
		}
		move.QtyDone = move.ProductUomQty
		move.UpdatedAt = now
	}
	p.UpdatedAt = now
}

// UnavailableProducts returns the names of the products whose moves are not reserved
func (p *Picking) UnavailableProducts() []string {
	names := make([]string, 0)
	seen := make(map[uuid.UUID]bool)
	for _, move := range p.Moves {
		if move.State == PickingStateAssigned || move.State.IsClosed() {
			continue
		}
		if seen[move.ProductID] {
			continue
		}
		seen[move.ProductID] = true
		names = append(names, move.ProductName)
	}
	return names
}

// IsAssigned reports whether the whole picking is reserved
func (p *Picking) IsAssigned() bool {
	return p.State == PickingStateAssigned
}

// Validate processes the picking: every move with a done quantity is closed and the picking is done
func (p *Picking) Validate() error {
	if p.State.IsClosed() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot validate picking in %s state", p.State))
	}
	processed := false
	for _, move := range p.Moves {
		if move.QtyDone.IsPositive() {
			processed = true
			break
		}
	}
	if !processed {
		return shared.NewDomainError("NOTHING_TO_PROCESS", "You cannot validate a transfer if no quantities are reserved nor done")
	}

	now := time.Now()
	for idx := range p.Moves {
		move := &p.Moves[idx]
		if move.QtyDone.IsPositive() {
			move.State = PickingStateDone
		} else {
			move.State = PickingStateCancelled
		}
		move.UpdatedAt = now
	}
	p.State = PickingStateDone
	p.DoneAt = &now
	p.UpdatedAt = now

	p.AddDomainEvent(NewPickingDoneEvent(p))

	return nil
}

func (p *Picking) refreshState() {
	allAssigned := len(p.Moves) > 0
	for _, move := range p.Moves {
		if move.State != PickingStateAssigned && !move.State.IsClosed() {
			allAssigned = false
			break
		}
	}
	if allAssigned {
		p.State = PickingStateAssigned
	} else {
		p.State = PickingStateConfirmed
	}
	p.UpdatedAt = time.Now()
}

var _ shared.AggregateRoot = (*Picking)(nil)
