package persistence

import (
	"context"
	"errors"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/erp/saleflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleOrderTypeRepository implements trade.SaleOrderTypeRepository using GORM
type GormSaleOrderTypeRepository struct {
	db *gorm.DB
}

// NewGormSaleOrderTypeRepository creates a new GormSaleOrderTypeRepository
func NewGormSaleOrderTypeRepository(db *gorm.DB) *GormSaleOrderTypeRepository {
	return &GormSaleOrderTypeRepository{db: db}
}

// FindByIDForTenant finds a sale order type by ID within a tenant
func (r *GormSaleOrderTypeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.SaleOrderType, error) {
	var model models.SaleOrderTypeModel
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

// FindAllForTenant lists the sale order types of a tenant
func (r *GormSaleOrderTypeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.SaleOrderType, error) {
	var rows []models.SaleOrderTypeModel
	query := Conn(ctx, r.db).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	query = applyPagination(query, filter, SaleOrderTypeSortFields, "name")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	types := make([]trade.SaleOrderType, len(rows))
	for i := range rows {
		types[i] = *rows[i].ToDomain()
	}
	return types, nil
}

// Save creates or updates a sale order type
func (r *GormSaleOrderTypeRepository) Save(ctx context.Context, orderType *trade.SaleOrderType) error {
	return Conn(ctx, r.db).Save(models.SaleOrderTypeModelFromDomain(orderType)).Error
}

var _ trade.SaleOrderTypeRepository = (*GormSaleOrderTypeRepository)(nil)
