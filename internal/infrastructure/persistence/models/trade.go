package models

import (
	"time"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderModel is the persistence model for the SalesOrder aggregate root.
type SalesOrderModel struct {
	TenantAggregateModel
	OrderNumber        string                `gorm:"type:varchar(50);not null;index"`
	CustomerID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	CustomerName       string                `gorm:"type:varchar(200);not null"`
	TypeID             *uuid.UUID            `gorm:"type:uuid;index"`
	CurrencyCode       string                `gorm:"type:varchar(3);not null"`
	Lines              []SalesOrderLineModel `gorm:"foreignKey:OrderID;references:ID"`
	AmountUntaxed      decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Status             trade.OrderStatus     `gorm:"type:varchar(20);not null;default:'draft'"`
	ProcurementGroupID *uuid.UUID            `gorm:"type:uuid;index"`
	ConfirmedAt        *time.Time            `gorm:"index"`
	DoneAt             *time.Time
	CancelledAt        *time.Time
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the persistence model to a domain SalesOrder.
func (m *SalesOrderModel) ToDomain() *trade.SalesOrder {
	order := &trade.SalesOrder{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		OrderNumber:         m.OrderNumber,
		CustomerID:          m.CustomerID,
		CustomerName:        m.CustomerName,
		TypeID:              m.TypeID,
		CurrencyCode:        m.CurrencyCode,
		AmountUntaxed:       m.AmountUntaxed,
		Status:              m.Status,
		ProcurementGroupID:  m.ProcurementGroupID,
		ConfirmedAt:         m.ConfirmedAt,
		DoneAt:              m.DoneAt,
		CancelledAt:         m.CancelledAt,
		Lines:               make([]trade.SalesOrderLine, len(m.Lines)),
	}
	for i := range m.Lines {
		order.Lines[i] = m.Lines[i].ToDomain()
	}
	return order
}

// SalesOrderModelFromDomain creates a persistence model from a domain SalesOrder.
func SalesOrderModelFromDomain(o *trade.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{
		OrderNumber:        o.OrderNumber,
		CustomerID:         o.CustomerID,
		CustomerName:       o.CustomerName,
		TypeID:             o.TypeID,
		CurrencyCode:       o.CurrencyCode,
		AmountUntaxed:      o.AmountUntaxed,
		Status:             o.Status,
		ProcurementGroupID: o.ProcurementGroupID,
		ConfirmedAt:        o.ConfirmedAt,
		DoneAt:             o.DoneAt,
		CancelledAt:        o.CancelledAt,
		Lines:              make([]SalesOrderLineModel, len(o.Lines)),
	}
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	for i := range o.Lines {
		m.Lines[i] = SalesOrderLineModelFromDomain(&o.Lines[i])
	}
	return m
}

// SalesOrderLineModel is the persistence model for sales order lines.
type SalesOrderLineModel struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	ProductName   string                `gorm:"type:varchar(200);not null"`
	ProductType   catalog.ProductType   `gorm:"type:varchar(20);not null"`
	UomID         uuid.UUID             `gorm:"type:uuid;not null"`
	Quantity      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	UnitPrice     decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	QtyDelivered  decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	QtyInvoiced   decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	InvoicePolicy catalog.InvoicePolicy `gorm:"type:varchar(20);not null"`
	IsDownPayment bool                  `gorm:"not null"`
	TaxIDs        []uuid.UUID           `gorm:"serializer:json;type:text"`
	Sequence      int                   `gorm:"not null"`
	CreatedAt     time.Time             `gorm:"not null"`
	UpdatedAt     time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesOrderLineModel) TableName() string {
	return "sales_order_lines"
}

// ToDomain converts the persistence model to a domain SalesOrderLine.
func (m *SalesOrderLineModel) ToDomain() trade.SalesOrderLine {
	return trade.SalesOrderLine{
		ID:            m.ID,
		OrderID:       m.OrderID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		ProductType:   m.ProductType,
		UomID:         m.UomID,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		QtyDelivered:  m.QtyDelivered,
		QtyInvoiced:   m.QtyInvoiced,
		InvoicePolicy: m.InvoicePolicy,
		IsDownPayment: m.IsDownPayment,
		TaxIDs:        m.TaxIDs,
		Sequence:      m.Sequence,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// SalesOrderLineModelFromDomain creates a persistence model from a domain SalesOrderLine.
func SalesOrderLineModelFromDomain(l *trade.SalesOrderLine) SalesOrderLineModel {
	return SalesOrderLineModel{
		ID:            l.ID,
		OrderID:       l.OrderID,
		ProductID:     l.ProductID,
		ProductName:   l.ProductName,
		ProductType:   l.ProductType,
		UomID:         l.UomID,
		Quantity:      l.Quantity,
		UnitPrice:     l.UnitPrice,
		QtyDelivered:  l.QtyDelivered,
		QtyInvoiced:   l.QtyInvoiced,
		InvoicePolicy: l.InvoicePolicy,
		IsDownPayment: l.IsDownPayment,
		TaxIDs:        l.TaxIDs,
		Sequence:      l.Sequence,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// SaleOrderTypeModel is the persistence model for the SaleOrderType aggregate.
type SaleOrderTypeModel struct {
	TenantAggregateModel
	Name                  string                    `gorm:"type:varchar(100);not null"`
	InvoicingAutomation   trade.InvoicingAutomation `gorm:"type:varchar(30);not null;default:'none'"`
	PickingAutomation     trade.PickingAutomation   `gorm:"type:varchar(30);not null;default:'none'"`
	BookID                *uuid.UUID                `gorm:"type:uuid"`
	JournalID             *uuid.UUID                `gorm:"type:uuid"`
	PaymentAutomation     bool                      `gorm:"not null"`
	PaymentJournalID      *uuid.UUID                `gorm:"type:uuid"`
	SetDoneOnConfirmation bool                      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleOrderTypeModel) TableName() string {
	return "sale_order_types"
}

// ToDomain converts the persistence model to a domain SaleOrderType.
func (m *SaleOrderTypeModel) ToDomain() *trade.SaleOrderType {
	return &trade.SaleOrderType{
		TenantAggregateRoot:   m.ToDomainTenantAggregateRoot(),
		Name:                  m.Name,
		InvoicingAutomation:   m.InvoicingAutomation,
		PickingAutomation:     m.PickingAutomation,
		BookID:                m.BookID,
		JournalID:             m.JournalID,
		PaymentAutomation:     m.PaymentAutomation,
		PaymentJournalID:      m.PaymentJournalID,
		SetDoneOnConfirmation: m.SetDoneOnConfirmation,
	}
}

// SaleOrderTypeModelFromDomain creates a persistence model from a domain SaleOrderType.
func SaleOrderTypeModelFromDomain(t *trade.SaleOrderType) *SaleOrderTypeModel {
	m := &SaleOrderTypeModel{
		Name:                  t.Name,
		InvoicingAutomation:   t.InvoicingAutomation,
		PickingAutomation:     t.PickingAutomation,
		BookID:                t.BookID,
		JournalID:             t.JournalID,
		PaymentAutomation:     t.PaymentAutomation,
		PaymentJournalID:      t.PaymentJournalID,
		SetDoneOnConfirmation: t.SetDoneOnConfirmation,
	}
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	return m
}
