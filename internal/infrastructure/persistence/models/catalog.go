package models

import (
	"time"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate.
type ProductModel struct {
	TenantAggregateModel
	Code          string                `gorm:"type:varchar(50);not null;index"`
	Name          string                `gorm:"type:varchar(200);not null"`
	Type          catalog.ProductType   `gorm:"type:varchar(20);not null"`
	UomID         uuid.UUID             `gorm:"type:uuid;not null"`
	ListPrice     decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	InvoicePolicy catalog.InvoicePolicy `gorm:"type:varchar(20);not null;default:'order'"`
	TaxIDs        []uuid.UUID           `gorm:"serializer:json;type:text"`
	Active        bool                  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Type:                m.Type,
		UomID:               m.UomID,
		ListPrice:           m.ListPrice,
		InvoicePolicy:       m.InvoicePolicy,
		TaxIDs:              m.TaxIDs,
		Active:              m.Active,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Code:          p.Code,
		Name:          p.Name,
		Type:          p.Type,
		UomID:         p.UomID,
		ListPrice:     p.ListPrice,
		InvoicePolicy: p.InvoicePolicy,
		TaxIDs:        p.TaxIDs,
		Active:        p.Active,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}

// UnitOfMeasureModel is the persistence model for units of measure.
type UnitOfMeasureModel struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name     string          `gorm:"type:varchar(50);not null"`
	Category string          `gorm:"type:varchar(50);not null"`
	Factor   decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1"`
	Rounding decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0.01"`
	Active   bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UnitOfMeasureModel) TableName() string {
	return "units_of_measure"
}

// ToDomain converts the persistence model to a domain UnitOfMeasure.
func (m *UnitOfMeasureModel) ToDomain() *catalog.UnitOfMeasure {
	return &catalog.UnitOfMeasure{
		ID:       m.ID,
		TenantID: m.TenantID,
		Name:     m.Name,
		Category: m.Category,
		Factor:   m.Factor,
		Rounding: m.Rounding,
		Active:   m.Active,
	}
}

// UnitOfMeasureModelFromDomain creates a persistence model from a domain UnitOfMeasure.
func UnitOfMeasureModelFromDomain(u *catalog.UnitOfMeasure) *UnitOfMeasureModel {
	return &UnitOfMeasureModel{
		ID:       u.ID,
		TenantID: u.TenantID,
		Name:     u.Name,
		Category: u.Category,
		Factor:   u.Factor,
		Rounding: u.Rounding,
		Active:   u.Active,
	}
}

// ViewModel stores the XML arch of a model view.
type ViewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_view_tenant_model_type,priority:1"`
	Model     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_view_tenant_model_type,priority:2"`
	ViewType  string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_view_tenant_model_type,priority:3"`
	Arch      string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ViewModel) TableName() string {
	return "views"
}

// ToDomain converts the persistence model to a domain View.
func (m *ViewModel) ToDomain() *catalog.View {
	return &catalog.View{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Model:     m.Model,
		ViewType:  m.ViewType,
		Arch:      m.Arch,
		UpdatedAt: m.UpdatedAt,
	}
}

// ViewModelFromDomain creates a persistence model from a domain View.
func ViewModelFromDomain(v *catalog.View) *ViewModel {
	return &ViewModel{
		ID:        v.ID,
		TenantID:  v.TenantID,
		Model:     v.Model,
		ViewType:  v.ViewType,
		Arch:      v.Arch,
		UpdatedAt: v.UpdatedAt,
	}
}
