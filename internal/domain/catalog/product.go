package catalog

import (
	"strings"
	"time"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductType determines whether a product moves through the warehouse
type ProductType string

const (
	ProductTypeStorable   ProductType = "storable"
	ProductTypeConsumable ProductType = "consumable"
	ProductTypeService    ProductType = "service"
)

// IsValid checks if the type is known
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeStorable, ProductTypeConsumable, ProductTypeService:
		return true
	}
	return false
}

// IsStockable reports whether the product needs delivery pickings
func (t ProductType) IsStockable() bool {
	return t == ProductTypeStorable || t == ProductTypeConsumable
}

// InvoicePolicy decides which quantity of a sold product is invoiceable
type InvoicePolicy string

const (
	// InvoicePolicyOrder invoices the ordered quantity
	InvoicePolicyOrder InvoicePolicy = "order"
	// InvoicePolicyDelivery invoices the delivered quantity
	InvoicePolicyDelivery InvoicePolicy = "delivery"
)

// IsValid checks if the policy is known
func (p InvoicePolicy) IsValid() bool {
	return p == InvoicePolicyOrder || p == InvoicePolicyDelivery
}

// Product represents a sellable product
type Product struct {
	shared.TenantAggregateRoot
	Code          string
	Name          string
	Type          ProductType
	UomID         uuid.UUID
	ListPrice     decimal.Decimal
	InvoicePolicy InvoicePolicy
	TaxIDs        []uuid.UUID
	Active        bool
}

// NewProduct creates a new active product
func NewProduct(tenantID uuid.UUID, code, name string, productType ProductType, uomID uuid.UUID) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if !productType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRODUCT_TYPE", "Product type must be storable, consumable or service")
	}
	if uomID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UOM", "Product unit of measure cannot be empty")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Type:                productType,
		UomID:               uomID,
		ListPrice:           decimal.Zero,
		InvoicePolicy:       InvoicePolicyOrder,
		Active:              true,
	}, nil
}

// Rename changes the display name
func (p *Product) Rename(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// SetListPrice sets the default sale price
func (p *Product) SetListPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}
	p.ListPrice = price
	p.UpdatedAt = time.Now()
	return nil
}

// SetInvoicePolicy sets how sold quantities of this product are invoiced
func (p *Product) SetInvoicePolicy(policy InvoicePolicy) error {
	if !policy.IsValid() {
		return shared.NewDomainError("INVALID_INVOICE_POLICY", "Invoice policy must be order or delivery")
	}
	p.InvoicePolicy = policy
	p.UpdatedAt = time.Now()
	return nil
}

// SetTaxes sets the default customer taxes
func (p *Product) SetTaxes(taxIDs []uuid.UUID) {
	p.TaxIDs = append([]uuid.UUID(nil), taxIDs...)
	p.UpdatedAt = time.Now()
}

// SetActive archives or restores the product
func (p *Product) SetActive(active bool) {
	p.Active = active
	p.UpdatedAt = time.Now()
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
