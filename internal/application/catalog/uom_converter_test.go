package catalog

import (
	"context"
	"testing"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUnitOfMeasureRepository is a mock implementation of catalog.UnitOfMeasureRepository
type MockUnitOfMeasureRepository struct {
	mock.Mock
}

func (m *MockUnitOfMeasureRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.UnitOfMeasure, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.UnitOfMeasure), args.Error(1)
}

func (m *MockUnitOfMeasureRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.UnitOfMeasure, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.UnitOfMeasure), args.Error(1)
}

func (m *MockUnitOfMeasureRepository) Save(ctx context.Context, uom *catalog.UnitOfMeasure) error {
	args := m.Called(ctx, uom)
	return args.Error(0)
}

func TestUomConverter_Convert(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	unit, err := catalog.NewUnitOfMeasure(tenantID, "Units", "Unit", decimal.NewFromInt(12), decimal.NewFromInt(1))
	require.NoError(t, err)
	dozen, err := catalog.NewUnitOfMeasure(tenantID, "Dozens", "Unit", decimal.NewFromInt(1), decimal.RequireFromString("0.01"))
	require.NoError(t, err)
	kg, err := catalog.NewUnitOfMeasure(tenantID, "kg", "Weight", decimal.NewFromInt(1), decimal.RequireFromString("0.001"))
	require.NoError(t, err)

	t.Run("same unit needs no lookup", func(t *testing.T) {
		repo := new(MockUnitOfMeasureRepository)
		converter := NewUomConverter(repo)

		qty, err := converter.Convert(ctx, tenantID, decimal.NewFromInt(7), unit.ID, unit.ID)
		require.NoError(t, err)
		assert.Equal(t, "7", qty.String())
		repo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("dozens to units", func(t *testing.T) {
		repo := new(MockUnitOfMeasureRepository)
		repo.On("FindByIDs", ctx, tenantID, []uuid.UUID{dozen.ID, unit.ID}).
			Return([]catalog.UnitOfMeasure{*unit, *dozen}, nil)
		converter := NewUomConverter(repo)

		qty, err := converter.Convert(ctx, tenantID, decimal.NewFromInt(2), dozen.ID, unit.ID)
		require.NoError(t, err)
		assert.Equal(t, "24", qty.String())
		repo.AssertExpectations(t)
	})

	t.Run("units to dozens rounds up", func(t *testing.T) {
		repo := new(MockUnitOfMeasureRepository)
		repo.On("FindByIDs", ctx, tenantID, []uuid.UUID{unit.ID, dozen.ID}).
			Return([]catalog.UnitOfMeasure{*unit, *dozen}, nil)
		converter := NewUomConverter(repo)

		qty, err := converter.Convert(ctx, tenantID, decimal.NewFromInt(13), unit.ID, dozen.ID)
		require.NoError(t, err)
		assert.Equal(t, "1.09", qty.String())
	})

	t.Run("missing unit", func(t *testing.T) {
		repo := new(MockUnitOfMeasureRepository)
		repo.On("FindByIDs", ctx, tenantID, mock.Anything).Return([]catalog.UnitOfMeasure{*unit}, nil)
		converter := NewUomConverter(repo)

		_, err := converter.Convert(ctx, tenantID, decimal.NewFromInt(1), unit.ID, uuid.New())
		assert.True(t, shared.IsDomainError(err, "UOM_NOT_FOUND"))
	})

	t.Run("different categories", func(t *testing.T) {
		repo := new(MockUnitOfMeasureRepository)
		repo.On("FindByIDs", ctx, tenantID, mock.Anything).Return([]catalog.UnitOfMeasure{*unit, *kg}, nil)
		converter := NewUomConverter(repo)

		_, err := converter.Convert(ctx, tenantID, decimal.NewFromInt(1), unit.ID, kg.ID)
		assert.True(t, shared.IsDomainError(err, "UOM_CATEGORY_MISMATCH"))
	})
}
