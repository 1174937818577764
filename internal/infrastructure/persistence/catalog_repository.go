package persistence

import (
	"context"
	"errors"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := Conn(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := Conn(ctx, r.db).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return Conn(ctx, r.db).Save(models.ProductModelFromDomain(product)).Error
}

// GormUnitOfMeasureRepository implements catalog.UnitOfMeasureRepository using GORM
type GormUnitOfMeasureRepository struct {
	db *gorm.DB
}

// NewGormUnitOfMeasureRepository creates a new GormUnitOfMeasureRepository
func NewGormUnitOfMeasureRepository(db *gorm.DB) *GormUnitOfMeasureRepository {
	return &GormUnitOfMeasureRepository{db: db}
}

// FindByID finds a unit of measure by ID
func (r *GormUnitOfMeasureRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.UnitOfMeasure, error) {
	var model models.UnitOfMeasureModel
	if err := Conn(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds units of measure by their IDs
func (r *GormUnitOfMeasureRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.UnitOfMeasure, error) {
	if len(ids) == 0 {
		return []catalog.UnitOfMeasure{}, nil
	}
	var rows []models.UnitOfMeasureModel
	if err := Conn(ctx, r.db).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	uoms := make([]catalog.UnitOfMeasure, len(rows))
	for i := range rows {
		uoms[i] = *rows[i].ToDomain()
	}
	return uoms, nil
}

// Save creates or updates a unit of measure
func (r *GormUnitOfMeasureRepository) Save(ctx context.Context, uom *catalog.UnitOfMeasure) error {
	return Conn(ctx, r.db).Save(models.UnitOfMeasureModelFromDomain(uom)).Error
}

// GormViewRepository implements catalog.ViewRepository using GORM
type GormViewRepository struct {
	db *gorm.DB
}

// NewGormViewRepository creates a new GormViewRepository
func NewGormViewRepository(db *gorm.DB) *GormViewRepository {
	return &GormViewRepository{db: db}
}

// Find returns the view of a model
func (r *GormViewRepository) Find(ctx context.Context, tenantID uuid.UUID, model, viewType string) (*catalog.View, error) {
	var row models.ViewModel
	if err := Conn(ctx, r.db).
		Where("tenant_id = ? AND model = ? AND view_type = ?", tenantID, model, viewType).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Save creates the view or replaces the arch of the existing one
func (r *GormViewRepository) Save(ctx context.Context, view *catalog.View) error {
	return Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "model"}, {Name: "view_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"arch", "updated_at"}),
	}).Create(models.ViewModelFromDomain(view)).Error
}

var (
	_ catalog.ProductRepository       = (*GormProductRepository)(nil)
	_ catalog.UnitOfMeasureRepository = (*GormUnitOfMeasureRepository)(nil)
	_ catalog.ViewRepository          = (*GormViewRepository)(nil)
)
