package quotation

import (
	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductQuantityResponse is the quantity of a product in the active quotation
type ProductQuantityResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Qty       decimal.Decimal `json:"qty"`
}

// WriteProductRequest holds the product values to write. Nil fields are left unchanged.
type WriteProductRequest struct {
	Qty       *decimal.Decimal `json:"qty,omitempty"`
	Name      *string          `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	ListPrice *decimal.Decimal `json:"list_price,omitempty"`
	Active    *bool            `json:"active,omitempty"`
}

// OnlyQty reports whether qty is the only value written
func (r WriteProductRequest) OnlyQty() bool {
	return r.Qty != nil && r.Name == nil && r.ListPrice == nil && r.Active == nil
}

// ProductResponse represents a product
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	UomID         uuid.UUID       `json:"uom_id"`
	ListPrice     decimal.Decimal `json:"list_price"`
	InvoicePolicy string          `json:"invoice_policy"`
	Active        bool            `json:"active"`
}

// WindowAction opens a record in a view
type WindowAction struct {
	Type     string    `json:"type"`
	ResModel string    `json:"res_model"`
	ResID    uuid.UUID `json:"res_id"`
	ViewMode string    `json:"view_mode"`
	Target   string    `json:"target"`
}

// ViewResponse is a view arch ready for rendering
type ViewResponse struct {
	Model    string `json:"model"`
	ViewType string `json:"view_type"`
	Arch     string `json:"arch"`
}

// ToProductResponse converts a domain Product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Type:          string(p.Type),
		UomID:         p.UomID,
		ListPrice:     p.ListPrice,
		InvoicePolicy: string(p.InvoicePolicy),
		Active:        p.Active,
	}
}
