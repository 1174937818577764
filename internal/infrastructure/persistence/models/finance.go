package models

import (
	"time"

	"github.com/erp/saleflow/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	TenantAggregateModel
	OrderID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	Origin          string                `gorm:"type:varchar(100)"`
	Number          string                `gorm:"type:varchar(50);index"`
	CustomerID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	CustomerName    string                `gorm:"type:varchar(200);not null"`
	CurrencyCode    string                `gorm:"type:varchar(3);not null"`
	Status          finance.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	JournalID       uuid.UUID             `gorm:"type:uuid;not null"`
	PayNowJournalID *uuid.UUID            `gorm:"type:uuid"`
	Lines           []InvoiceLineModel    `gorm:"foreignKey:InvoiceID;references:ID"`
	AmountUntaxed   decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	AmountTax       decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	AmountTotal     decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	OpenedAt        *time.Time
	PaidAt          *time.Time
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
func (m *InvoiceModel) ToDomain() *finance.Invoice {
	invoice := &finance.Invoice{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		OrderID:             m.OrderID,
		Origin:              m.Origin,
		Number:              m.Number,
		CustomerID:          m.CustomerID,
		CustomerName:        m.CustomerName,
		CurrencyCode:        m.CurrencyCode,
		Status:              m.Status,
		JournalID:           m.JournalID,
		PayNowJournalID:     m.PayNowJournalID,
		AmountUntaxed:       m.AmountUntaxed,
		AmountTax:           m.AmountTax,
		AmountTotal:         m.AmountTotal,
		OpenedAt:            m.OpenedAt,
		PaidAt:              m.PaidAt,
		Lines:               make([]finance.InvoiceLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		invoice.Lines[i] = finance.InvoiceLine{
			ID:            line.ID,
			InvoiceID:     line.InvoiceID,
			SaleLineID:    line.SaleLineID,
			ProductID:     line.ProductID,
			Name:          line.Name,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			TaxIDs:        line.TaxIDs,
			PriceSubtotal: line.PriceSubtotal,
			PriceTax:      line.PriceTax,
			PriceTotal:    line.PriceTotal,
			Sequence:      line.Sequence,
		}
	}
	return invoice
}

// InvoiceModelFromDomain creates a persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *finance.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		OrderID:         inv.OrderID,
		Origin:          inv.Origin,
		Number:          inv.Number,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		CurrencyCode:    inv.CurrencyCode,
		Status:          inv.Status,
		JournalID:       inv.JournalID,
		PayNowJournalID: inv.PayNowJournalID,
		AmountUntaxed:   inv.AmountUntaxed,
		AmountTax:       inv.AmountTax,
		AmountTotal:     inv.AmountTotal,
		OpenedAt:        inv.OpenedAt,
		PaidAt:          inv.PaidAt,
		Lines:           make([]InvoiceLineModel, len(inv.Lines)),
	}
	m.FromDomainTenantAggregateRoot(inv.TenantAggregateRoot)
	for i, line := range inv.Lines {
		m.Lines[i] = InvoiceLineModel{
			ID:            line.ID,
			InvoiceID:     inv.ID,
			SaleLineID:    line.SaleLineID,
			ProductID:     line.ProductID,
			Name:          line.Name,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			TaxIDs:        line.TaxIDs,
			PriceSubtotal: line.PriceSubtotal,
			PriceTax:      line.PriceTax,
			PriceTotal:    line.PriceTotal,
			Sequence:      line.Sequence,
		}
	}
	return m
}

// InvoiceLineModel is the persistence model for invoice lines.
type InvoiceLineModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleLineID    *uuid.UUID      `gorm:"type:uuid;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxIDs        []uuid.UUID     `gorm:"serializer:json;type:text"`
	PriceSubtotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PriceTax      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PriceTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Sequence      int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// TaxModel is the persistence model for taxes.
type TaxModel struct {
	TenantAggregateModel
	Name         string                `gorm:"type:varchar(100);not null"`
	AmountType   finance.TaxAmountType `gorm:"type:varchar(20);not null"`
	Amount       decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	PriceInclude bool                  `gorm:"not null"`
	Sequence     int                   `gorm:"not null"`
	Active       bool                  `gorm:"not null"`
	ChildIDs     []uuid.UUID           `gorm:"serializer:json;type:text"`
}

// TableName returns the table name for GORM
func (TaxModel) TableName() string {
	return "taxes"
}

// ToDomain converts the persistence model to a domain Tax without its children.
func (m *TaxModel) ToDomain() *finance.Tax {
	return &finance.Tax{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		AmountType:          m.AmountType,
		Amount:              m.Amount,
		PriceInclude:        m.PriceInclude,
		Sequence:            m.Sequence,
		Active:              m.Active,
		ChildIDs:            m.ChildIDs,
	}
}

// TaxModelFromDomain creates a persistence model from a domain Tax.
func TaxModelFromDomain(t *finance.Tax) *TaxModel {
	m := &TaxModel{
		Name:         t.Name,
		AmountType:   t.AmountType,
		Amount:       t.Amount,
		PriceInclude: t.PriceInclude,
		Sequence:     t.Sequence,
		Active:       t.Active,
		ChildIDs:     t.ChildIDs,
	}
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	return m
}

// JournalModel is the persistence model for journals.
type JournalModel struct {
	TenantAggregateModel
	Name   string              `gorm:"type:varchar(100);not null"`
	Code   string              `gorm:"type:varchar(5);not null"`
	Type   finance.JournalType `gorm:"type:varchar(20);not null;index"`
	Active bool                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JournalModel) TableName() string {
	return "journals"
}

// ToDomain converts the persistence model to a domain Journal.
func (m *JournalModel) ToDomain() *finance.Journal {
	return &finance.Journal{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Code:                m.Code,
		Type:                m.Type,
		Active:              m.Active,
	}
}

// JournalModelFromDomain creates a persistence model from a domain Journal.
func JournalModelFromDomain(j *finance.Journal) *JournalModel {
	m := &JournalModel{
		Name:   j.Name,
		Code:   j.Code,
		Type:   j.Type,
		Active: j.Active,
	}
	m.FromDomainTenantAggregateRoot(j.TenantAggregateRoot)
	return m
}

// CurrencyModel is the persistence model for currencies.
type CurrencyModel struct {
	Code          string `gorm:"type:varchar(3);primary_key"`
	Name          string `gorm:"type:varchar(50);not null"`
	Symbol        string `gorm:"type:varchar(5);not null"`
	DecimalPlaces int32  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToDomain converts the persistence model to a domain Currency.
func (m *CurrencyModel) ToDomain() *finance.Currency {
	return &finance.Currency{
		Code:          m.Code,
		Name:          m.Name,
		Symbol:        m.Symbol,
		DecimalPlaces: m.DecimalPlaces,
	}
}
