package catalog

import (
	"context"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UomConverter converts quantities between stored units of measure
type UomConverter struct {
	uomRepo catalog.UnitOfMeasureRepository
}

// NewUomConverter creates a new UomConverter
func NewUomConverter(uomRepo catalog.UnitOfMeasureRepository) *UomConverter {
	return &UomConverter{uomRepo: uomRepo}
}

// Convert converts qty from one unit to another. Units are only loaded when they differ.
func (c *UomConverter) Convert(ctx context.Context, tenantID uuid.UUID, qty decimal.Decimal, fromID, toID uuid.UUID) (decimal.Decimal, error) {
	if fromID == toID {
		return qty, nil
	}
	uoms, err := c.uomRepo.FindByIDs(ctx, tenantID, []uuid.UUID{fromID, toID})
	if err != nil {
		return decimal.Zero, err
	}

	var from, to *catalog.UnitOfMeasure
	for i := range uoms {
		switch uoms[i].ID {
		case fromID:
			from = &uoms[i]
		case toID:
			to = &uoms[i]
		}
	}
	if from == nil || to == nil {
		return decimal.Zero, shared.NewDomainError("UOM_NOT_FOUND", "Unit of measure not found")
	}
	return from.ComputeQuantity(qty, to)
}
