package inventory

import (
	"context"

	"github.com/google/uuid"
)

// PickingRepository defines the interface for picking persistence
type PickingRepository interface {
	// FindByIDForTenant finds a picking with its moves
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Picking, error)

	// FindByProcurementGroup finds the pickings of a procurement group, oldest first
	FindByProcurementGroup(ctx context.Context, tenantID, groupID uuid.UUID) ([]Picking, error)

	// Save creates or updates a picking and its moves
	Save(ctx context.Context, picking *Picking) error

	// GenerateName generates the next delivery reference for a tenant
	GenerateName(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// StockBookRepository defines the interface for stock book persistence
type StockBookRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StockBook, error)
	Save(ctx context.Context, book *StockBook) error
}

// StockQuantRepository defines the interface for stock quantity persistence
type StockQuantRepository interface {
	// FindByProducts returns the quants of the given products. Products without stock are absent.
	FindByProducts(ctx context.Context, tenantID uuid.UUID, productIDs []uuid.UUID) ([]StockQuant, error)

	// Save creates or updates a quant
	Save(ctx context.Context, quant *StockQuant) error
}
