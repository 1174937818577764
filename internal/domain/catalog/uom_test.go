package catalog

import (
	"testing"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUom(t *testing.T, name, category, factor, rounding string) *UnitOfMeasure {
	uom, err := NewUnitOfMeasure(uuid.New(), name, category,
		decimal.RequireFromString(factor), decimal.RequireFromString(rounding))
	require.NoError(t, err)
	return uom
}

func TestNewUnitOfMeasure(t *testing.T) {
	t.Run("creates valid unit", func(t *testing.T) {
		uom := newTestUom(t, "Units", "Unit", "1", "0.01")
		assert.Equal(t, "Units", uom.Name)
		assert.True(t, uom.Active)
	})

	t.Run("rejects non-positive factor", func(t *testing.T) {
		_, err := NewUnitOfMeasure(uuid.New(), "Bad", "Unit", decimal.Zero, decimal.NewFromFloat(0.01))
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "INVALID_UOM_FACTOR"))
	})

	t.Run("rejects empty category", func(t *testing.T) {
		_, err := NewUnitOfMeasure(uuid.New(), "Bad", "", decimal.NewFromInt(1), decimal.Zero)
		assert.True(t, shared.IsDomainError(err, "INVALID_UOM_CATEGORY"))
	})
}

func TestUnitOfMeasure_ComputeQuantity(t *testing.T) {
	units := newTestUom(t, "Units", "Unit", "1", "0.01")
	dozens := newTestUom(t, "Dozens", "Unit", "0.0833333333333333", "0.01")
	kg := newTestUom(t, "kg", "Weight", "1", "0.001")

	t.Run("same unit returns quantity unchanged", func(t *testing.T) {
		qty, err := units.ComputeQuantity(decimal.NewFromInt(7), units)
		require.NoError(t, err)
		assert.True(t, qty.Equal(decimal.NewFromInt(7)))
	})

	t.Run("nil target returns quantity unchanged", func(t *testing.T) {
		qty, err := units.ComputeQuantity(decimal.NewFromInt(7), nil)
		require.NoError(t, err)
		assert.True(t, qty.Equal(decimal.NewFromInt(7)))
	})

	t.Run("dozens to units", func(t *testing.T) {
		qty, err := dozens.ComputeQuantity(decimal.NewFromInt(2), units)
		require.NoError(t, err)
		assert.Equal(t, "24", qty.String())
	})

	t.Run("units to dozens rounds up to precision", func(t *testing.T) {
		qty, err := units.ComputeQuantity(decimal.NewFromInt(6), dozens)
		require.NoError(t, err)
		assert.Equal(t, "0.5", qty.String())
	})

	t.Run("different categories fail", func(t *testing.T) {
		_, err := units.ComputeQuantity(decimal.NewFromInt(1), kg)
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "UOM_CATEGORY_MISMATCH"))
	})
}

func TestRoundUp(t *testing.T) {
	tests := []struct {
		value     string
		precision string
		expected  string
	}{
		{"1.231", "0.01", "1.24"},
		{"1.23", "0.01", "1.23"},
		{"12.0000000000000048", "0.01", "12"},
		{"-1.231", "0.01", "-1.24"},
		{"5", "0", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.value+"/"+tt.precision, func(t *testing.T) {
			got := RoundUp(decimal.RequireFromString(tt.value), decimal.RequireFromString(tt.precision))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "got %s", got)
		})
	}
}
