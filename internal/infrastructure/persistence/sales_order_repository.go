package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/erp/saleflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalesOrderRepository implements trade.SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

func preloadOrderLines(db *gorm.DB) *gorm.DB {
	return db.Order("sequence ASC")
}

// FindByIDForTenant finds a sales order with its lines by ID within a tenant
func (r *GormSalesOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.SalesOrder, error) {
	var model models.SalesOrderModel
	if err := Conn(ctx, r.db).
		Preload("Lines", preloadOrderLines).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds sales orders with their lines, keeping the order of ids.
// Unknown IDs are skipped.
func (r *GormSalesOrderRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]trade.SalesOrder, error) {
	if len(ids) == 0 {
		return []trade.SalesOrder{}, nil
	}
	var rows []models.SalesOrderModel
	if err := Conn(ctx, r.db).
		Preload("Lines", preloadOrderLines).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.SalesOrderModel, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	orders := make([]trade.SalesOrder, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			orders = append(orders, *row.ToDomain())
			delete(byID, id)
		}
	}
	return orders, nil
}

// FindAllForTenant finds sales orders for a tenant with filtering, without lines
func (r *GormSalesOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	var rows []models.SalesOrderModel
	query := r.applyFilter(Conn(ctx, r.db).Model(&models.SalesOrderModel{}).Where("tenant_id = ?", tenantID), filter)
	query = applyPagination(query, filter, SalesOrderSortFields, "created_at")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]trade.SalesOrder, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// CountForTenant counts sales orders for a tenant with optional filters
func (r *GormSalesOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(Conn(ctx, r.db).Model(&models.SalesOrderModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a sales order and replaces its lines
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	model := models.SalesOrderModelFromDomain(order)
	return Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}

		lineIDs := make([]uuid.UUID, len(model.Lines))
		for i := range model.Lines {
			model.Lines[i].OrderID = model.ID
			lineIDs[i] = model.Lines[i].ID
		}

		stale := tx.Where("order_id = ?", model.ID)
		if len(lineIDs) > 0 {
			stale = stale.Where("id NOT IN ?", lineIDs)
		}
		if err := stale.Delete(&models.SalesOrderLineModel{}).Error; err != nil {
			return err
		}

		for i := range model.Lines {
			if err := tx.Save(&model.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GenerateOrderNumber generates a unique order number for a tenant
// Format: SO-YYYY-NNNNN (e.g., SO-2026-00001)
func (r *GormSalesOrderRepository) GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	prefix := fmt.Sprintf("SO-%d-", time.Now().Year())
	next, err := nextSequenceNumber(Conn(ctx, r.db).Model(&models.SalesOrderModel{}).
		Where("tenant_id = ? AND order_number LIKE ?", tenantID, prefix+"%"),
		"order_number", prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%05d", prefix, next), nil
}

// applyFilter applies the search and the status/customer/type filters
func (r *GormSalesOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ?", search, search)
	}
	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID, ok := filter.Filters["customer_id"]; ok && customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if typeID, ok := filter.Filters["type_id"]; ok && typeID != "" {
		query = query.Where("type_id = ?", typeID)
	}
	return query
}

// nextSequenceNumber returns the number following the highest "<prefix><n>" value of column
func nextSequenceNumber(query *gorm.DB, column, prefix string) (int64, error) {
	var last string
	err := query.Select(column).Order(column + " DESC").Limit(1).Scan(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if last == "" {
		return 1, nil
	}
	var num int64
	if _, err := fmt.Sscanf(strings.TrimPrefix(last, prefix), "%d", &num); err != nil {
		return 1, nil
	}
	return num + 1, nil
}

var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
