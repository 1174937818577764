package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/saleflow/internal/domain/inventory"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPickingRepository implements inventory.PickingRepository using GORM
type GormPickingRepository struct {
	db *gorm.DB
}

// NewGormPickingRepository creates a new GormPickingRepository
func NewGormPickingRepository(db *gorm.DB) *GormPickingRepository {
	return &GormPickingRepository{db: db}
}

func preloadMoves(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// FindByIDForTenant finds a picking with its moves
func (r *GormPickingRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Picking, error) {
	var model models.PickingModel
	if err := Conn(ctx, r.db).
		Preload("Moves", preloadMoves).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProcurementGroup finds the pickings of a procurement group, oldest first
func (r *GormPickingRepository) FindByProcurementGroup(ctx context.Context, tenantID, groupID uuid.UUID) ([]inventory.Picking, error) {
	var rows []models.PickingModel
	if err := Conn(ctx, r.db).
		Preload("Moves", preloadMoves).
		Where("tenant_id = ? AND procurement_group_id = ?", tenantID, groupID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	pickings := make([]inventory.Picking, len(rows))
	for i := range rows {
		pickings[i] = *rows[i].ToDomain()
	}
	return pickings, nil
}

// Save creates or updates a picking and its moves
func (r *GormPickingRepository) Save(ctx context.Context, picking *inventory.Picking) error {
	model := models.PickingModelFromDomain(picking)
	return Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Moves").Save(model).Error; err != nil {
			return err
		}
		for i := range model.Moves {
			if err := tx.Save(&model.Moves[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GenerateName generates the next delivery reference for a tenant
// Format: WH/OUT/NNNNN
func (r *GormPickingRepository) GenerateName(ctx context.Context, tenantID uuid.UUID) (string, error) {
	const prefix = "WH/OUT/"
	next, err := nextSequenceNumber(Conn(ctx, r.db).Model(&models.PickingModel{}).
		Where("tenant_id = ? AND name LIKE ?", tenantID, prefix+"%"),
		"name", prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%05d", prefix, next), nil
}

// GormStockBookRepository implements inventory.StockBookRepository using GORM
type GormStockBookRepository struct {
	db *gorm.DB
}

// NewGormStockBookRepository creates a new GormStockBookRepository
func NewGormStockBookRepository(db *gorm.DB) *GormStockBookRepository {
	return &GormStockBookRepository{db: db}
}

// FindByIDForTenant finds a stock book by ID within a tenant
func (r *GormStockBookRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockBook, error) {
	var model models.StockBookModel
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

// Save creates or updates a stock book
func (r *GormStockBookRepository) Save(ctx context.Context, book *inventory.StockBook) error {
	return Conn(ctx, r.db).Save(models.StockBookModelFromDomain(book)).Error
}

// GormStockQuantRepository implements inventory.StockQuantRepository using GORM
type GormStockQuantRepository struct {
	db *gorm.DB
}

// NewGormStockQuantRepository creates a new GormStockQuantRepository
func NewGormStockQuantRepository(db *gorm.DB) *GormStockQuantRepository {
	return &GormStockQuantRepository{db: db}
}

// FindByProducts returns the quants of the given products
func (r *GormStockQuantRepository) FindByProducts(ctx context.Context, tenantID uuid.UUID, productIDs []uuid.UUID) ([]inventory.StockQuant, error) {
	if len(productIDs) == 0 {
		return []inventory.StockQuant{}, nil
	}
	var rows []models.StockQuantModel
	if err := Conn(ctx, r.db).
		Where("tenant_id = ? AND product_id IN ?", tenantID, productIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	quants := make([]inventory.StockQuant, len(rows))
	for i := range rows {
		quants[i] = *rows[i].ToDomain()
	}
	return quants, nil
}

// Save creates or updates a quant. An update only applies over an older version.
func (r *GormStockQuantRepository) Save(ctx context.Context, quant *inventory.StockQuant) error {
	model := models.StockQuantModelFromDomain(quant)
	db := Conn(ctx, r.db)

	var exists int64
	if err := db.Model(&models.StockQuantModel{}).Where("id = ?", quant.ID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return db.Create(model).Error
	}

	result := db.Model(&models.StockQuantModel{}).
		Where("id = ? AND version < ?", quant.ID, quant.Version).
		Updates(map[string]any{
			"on_hand":    quant.OnHand,
			"reserved":   quant.Reserved,
			"version":    quant.Version,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The stock level has been modified by another operation")
	}
	return nil
}

var (
	_ inventory.PickingRepository    = (*GormPickingRepository)(nil)
	_ inventory.StockBookRepository  = (*GormStockBookRepository)(nil)
	_ inventory.StockQuantRepository = (*GormStockQuantRepository)(nil)
)
