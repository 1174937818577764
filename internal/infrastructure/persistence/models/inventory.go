package models

import (
	"time"

	"github.com/erp/saleflow/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PickingModel is the persistence model for the Picking aggregate root.
type PickingModel struct {
	TenantAggregateModel
	Name               string                 `gorm:"type:varchar(50);not null"`
	OrderID            uuid.UUID              `gorm:"type:uuid;not null;index"`
	ProcurementGroupID uuid.UUID              `gorm:"type:uuid;not null;index"`
	State              inventory.PickingState `gorm:"type:varchar(20);not null;default:'draft'"`
	BookID             *uuid.UUID             `gorm:"type:uuid"`
	VoucherRequired    bool                   `gorm:"not null"`
	Moves              []StockMoveModel       `gorm:"foreignKey:PickingID;references:ID"`
	DoneAt             *time.Time
}

// TableName returns the table name for GORM
func (PickingModel) TableName() string {
	return "pickings"
}

// ToDomain converts the persistence model to a domain Picking.
func (m *PickingModel) ToDomain() *inventory.Picking {
	picking := &inventory.Picking{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		OrderID:             m.OrderID,
		ProcurementGroupID:  m.ProcurementGroupID,
		State:               m.State,
		BookID:              m.BookID,
		VoucherRequired:     m.VoucherRequired,
		DoneAt:              m.DoneAt,
		Moves:               make([]inventory.StockMove, len(m.Moves)),
	}
	for i := range m.Moves {
		picking.Moves[i] = m.Moves[i].ToDomain()
	}
	return picking
}

// PickingModelFromDomain creates a persistence model from a domain Picking.
func PickingModelFromDomain(p *inventory.Picking) *PickingModel {
	m := &PickingModel{
		Name:               p.Name,
		OrderID:            p.OrderID,
		ProcurementGroupID: p.ProcurementGroupID,
		State:              p.State,
		BookID:             p.BookID,
		VoucherRequired:    p.VoucherRequired,
		DoneAt:             p.DoneAt,
		Moves:              make([]StockMoveModel, len(p.Moves)),
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	for i, move := range p.Moves {
		m.Moves[i] = StockMoveModel{
			ID:            move.ID,
			PickingID:     p.ID,
			SaleLineID:    move.SaleLineID,
			ProductID:     move.ProductID,
			ProductName:   move.ProductName,
			UomID:         move.UomID,
			ProductUomQty: move.ProductUomQty,
			ProductQty:    move.ProductQty,
			ReservedQty:   move.ReservedQty,
			QtyDone:       move.QtyDone,
			State:         move.State,
			CreatedAt:     move.CreatedAt,
			UpdatedAt:     move.UpdatedAt,
		}
	}
	return m
}

// StockMoveModel is the persistence model for stock moves.
type StockMoveModel struct {
	ID            uuid.UUID              `gorm:"type:uuid;primary_key"`
	PickingID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	SaleLineID    *uuid.UUID             `gorm:"type:uuid;index"`
	ProductID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	ProductName   string                 `gorm:"type:varchar(200);not null"`
	UomID         uuid.UUID              `gorm:"type:uuid;not null"`
	ProductUomQty decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	ProductQty    decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	ReservedQty   decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	QtyDone       decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	State         inventory.PickingState `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time              `gorm:"not null"`
	UpdatedAt     time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockMoveModel) TableName() string {
	return "stock_moves"
}

// ToDomain converts the persistence model to a domain StockMove.
func (m *StockMoveModel) ToDomain() inventory.StockMove {
	return inventory.StockMove{
		ID:            m.ID,
		PickingID:     m.PickingID,
		SaleLineID:    m.SaleLineID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		UomID:         m.UomID,
		ProductUomQty: m.ProductUomQty,
		ProductQty:    m.ProductQty,
		ReservedQty:   m.ReservedQty,
		QtyDone:       m.QtyDone,
		State:         m.State,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// StockBookModel is the persistence model for stock books.
type StockBookModel struct {
	TenantAggregateModel
	Name            string `gorm:"type:varchar(100);not null"`
	VoucherRequired bool   `gorm:"not null"`
	Active          bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockBookModel) TableName() string {
	return "stock_books"
}

// ToDomain converts the persistence model to a domain StockBook.
func (m *StockBookModel) ToDomain() *inventory.StockBook {
	return &inventory.StockBook{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		VoucherRequired:     m.VoucherRequired,
		Active:              m.Active,
	}
}

// StockBookModelFromDomain creates a persistence model from a domain StockBook.
func StockBookModelFromDomain(b *inventory.StockBook) *StockBookModel {
	m := &StockBookModel{
		Name:            b.Name,
		VoucherRequired: b.VoucherRequired,
		Active:          b.Active,
	}
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	return m
}

// StockQuantModel is the persistence model for product stock levels.
type StockQuantModel struct {
	TenantAggregateModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OnHand    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Reserved  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockQuantModel) TableName() string {
	return "stock_quants"
}

// ToDomain converts the persistence model to a domain StockQuant.
func (m *StockQuantModel) ToDomain() *inventory.StockQuant {
	return &inventory.StockQuant{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		ProductID:           m.ProductID,
		OnHand:              m.OnHand,
		Reserved:            m.Reserved,
	}
}

// StockQuantModelFromDomain creates a persistence model from a domain StockQuant.
func StockQuantModelFromDomain(q *inventory.StockQuant) *StockQuantModel {
	m := &StockQuantModel{
		ProductID: q.ProductID,
		OnHand:    q.OnHand,
		Reserved:  q.Reserved,
	}
	m.FromDomainTenantAggregateRoot(q.TenantAggregateRoot)
	return m
}
