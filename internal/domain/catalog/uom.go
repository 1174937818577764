package catalog

import (
	"fmt"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitOfMeasure is a unit within a category of convertible units.
// Factor is the number of this unit per reference unit of the category,
// so the reference unit itself has Factor 1, a dozen has 1/12 and a gram
// (in a kg category) has 1000.
type UnitOfMeasure struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
	Category string
	Factor   decimal.Decimal
	Rounding decimal.Decimal
	Active   bool
}

// NewUnitOfMeasure creates a unit of measure
func NewUnitOfMeasure(tenantID uuid.UUID, name, category string, factor, rounding decimal.Decimal) (*UnitOfMeasure, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_UOM_NAME", "Unit name cannot be empty")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_UOM_CATEGORY", "Unit category cannot be empty")
	}
	if factor.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_UOM_FACTOR", "Unit factor must be positive")
	}
	if rounding.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UOM_ROUNDING", "Unit rounding cannot be negative")
	}
	return &UnitOfMeasure{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     name,
		Category: category,
		Factor:   factor,
		Rounding: rounding,
		Active:   true,
	}, nil
}

// ComputeQuantity converts qty expressed in u into the target unit.
// The result is rounded up to the target unit's rounding precision.
func (u *UnitOfMeasure) ComputeQuantity(qty decimal.Decimal, to *UnitOfMeasure) (decimal.Decimal, error) {
	if to == nil || u.ID == to.ID {
		return qty, nil
	}
	if u.Category != to.Category {
		return decimal.Zero, shared.NewDomainError("UOM_CATEGORY_MISMATCH",
			fmt.Sprintf("Cannot convert %s to %s: units belong to different categories", u.Name, to.Name))
	}
	converted := qty.Div(u.Factor).Mul(to.Factor)
	return RoundUp(converted, to.Rounding), nil
}

// RoundUp rounds value up (away from zero) to a multiple of precision.
// A zero precision leaves the value untouched. The value is first
// normalised to 10 places so division residue (12.0000000000000048)
// does not push it to the next step.
func RoundUp(value, precision decimal.Decimal) decimal.Decimal {
	if precision.IsZero() {
		return value
	}
	steps := value.Round(10).Div(precision).Round(10)
	if steps.IsNegative() {
		steps = steps.Floor()
	} else {
		steps = steps.Ceil()
	}
	return steps.Mul(precision)
}
