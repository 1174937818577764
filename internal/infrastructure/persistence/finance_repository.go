package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/erp/saleflow/internal/domain/finance"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements finance.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func preloadInvoiceLines(db *gorm.DB) *gorm.DB {
	return db.Order("sequence ASC")
}

// FindByIDForTenant finds an invoice with its lines
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Invoice, error) {
	var model models.InvoiceModel
	if err := Conn(ctx, r.db).
		Preload("Lines", preloadInvoiceLines).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrder finds the invoices created from an order, oldest first
func (r *GormInvoiceRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]finance.Invoice, error) {
	var rows []models.InvoiceModel
	if err := Conn(ctx, r.db).
		Preload("Lines", preloadInvoiceLines).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	invoices := make([]finance.Invoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices, nil
}

// Save creates or updates an invoice and replaces its lines
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *finance.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}

		lineIDs := make([]uuid.UUID, len(model.Lines))
		for i := range model.Lines {
			lineIDs[i] = model.Lines[i].ID
		}
		stale := tx.Where("invoice_id = ?", model.ID)
		if len(lineIDs) > 0 {
			stale = stale.Where("id NOT IN ?", lineIDs)
		}
		if err := stale.Delete(&models.InvoiceLineModel{}).Error; err != nil {
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

// GenerateNumber generates the next invoice number of a journal
// Format: CODE/YYYY/NNNN (e.g., INV/2026/0001)
func (r *GormInvoiceRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID, journal *finance.Journal) (string, error) {
	prefix := fmt.Sprintf("%s/%d/", journal.Code, time.Now().Year())
	next, err := nextSequenceNumber(Conn(ctx, r.db).Model(&models.InvoiceModel{}).
		Where("tenant_id = ? AND number LIKE ?", tenantID, prefix+"%"),
		"number", prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, next), nil
}

// GormTaxRepository implements finance.TaxRepository using GORM
type GormTaxRepository struct {
	db *gorm.DB
}

// NewGormTaxRepository creates a new GormTaxRepository
func NewGormTaxRepository(db *gorm.DB) *GormTaxRepository {
	return &GormTaxRepository{db: db}
}

// FindByIDs finds taxes with the children of group taxes loaded, keeping the order of ids
func (r *GormTaxRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]finance.Tax, error) {
	if len(ids) == 0 {
		return []finance.Tax{}, nil
	}
	loaded, err := r.load(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	var childIDs []uuid.UUID
	for _, tax := range loaded {
		if tax.AmountType == finance.TaxAmountGroup {
			childIDs = append(childIDs, tax.ChildIDs...)
		}
	}
	children, err := r.load(ctx, tenantID, childIDs)
	if err != nil {
		return nil, err
	}

	taxes := make([]finance.Tax, 0, len(ids))
	for _, id := range ids {
		tax, ok := loaded[id]
		if !ok {
			continue
		}
		if tax.AmountType == finance.TaxAmountGroup {
			for _, childID := range tax.ChildIDs {
				if child, ok := children[childID]; ok {
					tax.Children = append(tax.Children, *child)
				}
			}
			sort.SliceStable(tax.Children, func(i, j int) bool {
				return tax.Children[i].Sequence < tax.Children[j].Sequence
			})
		}
		taxes = append(taxes, *tax)
	}
	return taxes, nil
}

func (r *GormTaxRepository) load(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*finance.Tax, error) {
	result := make(map[uuid.UUID]*finance.Tax, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rows []models.TaxModel
	if err := Conn(ctx, r.db).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		result[rows[i].ID] = rows[i].ToDomain()
	}
	return result, nil
}

// Save creates or updates a tax
func (r *GormTaxRepository) Save(ctx context.Context, tax *finance.Tax) error {
	return Conn(ctx, r.db).Save(models.TaxModelFromDomain(tax)).Error
}

// GormJournalRepository implements finance.JournalRepository using GORM
type GormJournalRepository struct {
	db *gorm.DB
}

// NewGormJournalRepository creates a new GormJournalRepository
func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

// FindByIDForTenant finds a journal by ID within a tenant
func (r *GormJournalRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Journal, error) {
	var model models.JournalModel
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

// FindDefault returns the oldest active journal of a type
func (r *GormJournalRepository) FindDefault(ctx context.Context, tenantID uuid.UUID, journalType finance.JournalType) (*finance.Journal, error) {
	var model models.JournalModel
	if err := Conn(ctx, r.db).
		Where("tenant_id = ? AND type = ? AND active = ?", tenantID, journalType, true).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a journal
func (r *GormJournalRepository) Save(ctx context.Context, journal *finance.Journal) error {
	return Conn(ctx, r.db).Save(models.JournalModelFromDomain(journal)).Error
}

// GormCurrencyRepository implements finance.CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByCode finds a currency by its ISO code
func (r *GormCurrencyRepository) FindByCode(ctx context.Context, code string) (*finance.Currency, error) {
	var model models.CurrencyModel
	if err := Conn(ctx, r.db).Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var (
	_ finance.InvoiceRepository  = (*GormInvoiceRepository)(nil)
	_ finance.TaxRepository      = (*GormTaxRepository)(nil)
	_ finance.JournalRepository  = (*GormJournalRepository)(nil)
	_ finance.CurrencyRepository = (*GormCurrencyRepository)(nil)
)
