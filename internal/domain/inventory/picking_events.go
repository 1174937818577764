package inventory

import (
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypePicking = "Picking"

// Event type constants
const (
	EventTypePickingDone = "PickingDone"
)

// PickingMoveInfo describes a processed move in events
type PickingMoveInfo struct {
	MoveID     uuid.UUID       `json:"move_id"`
	SaleLineID *uuid.UUID      `json:"sale_line_id,omitempty"`
	ProductID  uuid.UUID       `json:"product_id"`
	QtyDone    decimal.Decimal `json:"qty_done"`
}

// PickingDoneEvent is raised when a picking is validated
type PickingDoneEvent struct {
	shared.BaseDomainEvent
	PickingID uuid.UUID         `json:"picking_id"`
	Name      string            `json:"name"`
	OrderID   uuid.UUID         `json:"order_id"`
	Moves     []PickingMoveInfo `json:"moves"`
}

// NewPickingDoneEvent creates a new PickingDoneEvent
func NewPickingDoneEvent(p *Picking) *PickingDoneEvent {
	moves := make([]PickingMoveInfo, 0, len(p.Moves))
	for _, move := range p.Moves {
		if move.State != PickingStateDone {
			continue
		}
		moves = append(moves, PickingMoveInfo{
			MoveID:     move.ID,
			SaleLineID: move.SaleLineID,
			ProductID:  move.ProductID,
			QtyDone:    move.QtyDone,
		})
	}
	return &PickingDoneEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePickingDone, AggregateTypePicking, p.ID, p.TenantID),
		PickingID:       p.ID,
		Name:            p.Name,
		OrderID:         p.OrderID,
		Moves:           moves,
	}
}
