package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByIDForTenant finds a product by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}

// UnitOfMeasureRepository defines the interface for unit of measure persistence
type UnitOfMeasureRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*UnitOfMeasure, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]UnitOfMeasure, error)
	Save(ctx context.Context, uom *UnitOfMeasure) error
}
