package finance

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/domain/finance"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/erp/saleflow/internal/infrastructure/persistence"
	"github.com/erp/saleflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingPublisher keeps the published events in memory
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

type fixture struct {
	db          *gorm.DB
	tenantID    uuid.UUID
	journal     *finance.Journal
	orderRepo   *persistence.GormSalesOrderRepository
	typeRepo    *persistence.GormSaleOrderTypeRepository
	invoiceRepo *persistence.GormInvoiceRepository
	taxRepo     *persistence.GormTaxRepository
	publisher   *recordingPublisher
	invoicing   *InvoicingService
	downPayment *DownPaymentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.SalesOrderModel{},
		&models.SalesOrderLineModel{},
		&models.SaleOrderTypeModel{},
		&models.InvoiceModel{},
		&models.InvoiceLineModel{},
		&models.TaxModel{},
		&models.JournalModel{},
		&models.CurrencyModel{},
	))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Create(&models.CurrencyModel{Code: "EUR", Name: "Euro", Symbol: "€", DecimalPlaces: 2}).Error)

	f := &fixture{
		db:          db,
		tenantID:    uuid.New(),
		orderRepo:   persistence.NewGormSalesOrderRepository(db),
		typeRepo:    persistence.NewGormSaleOrderTypeRepository(db),
		invoiceRepo: persistence.NewGormInvoiceRepository(db),
		taxRepo:     persistence.NewGormTaxRepository(db),
		publisher:   &recordingPublisher{},
	}

	journalRepo := persistence.NewGormJournalRepository(db)
	f.journal, err = finance.NewJournal(f.tenantID, "Customer Invoices", "INV", finance.JournalTypeSale)
	require.NoError(t, err)
	require.NoError(t, journalRepo.Save(context.Background(), f.journal))

	txManager := persistence.NewGormTransactionManager(db)
	currencyRepo := persistence.NewGormCurrencyRepository(db)
	f.invoicing = NewInvoicingService(txManager, f.invoiceRepo, f.orderRepo, f.typeRepo, journalRepo, f.taxRepo, currencyRepo, zap.NewNop())
	f.invoicing.SetEventPublisher(f.publisher)
	f.downPayment = NewDownPaymentService(txManager, f.orderRepo, f.taxRepo, currencyRepo, f.invoicing, zap.NewNop())
	return f
}

func (f *fixture) tax(t *testing.T, name string, amountType finance.TaxAmountType, amount int64) *finance.Tax {
	t.Helper()
	tax, err := finance.NewTax(f.tenantID, name, amountType, decimal.NewFromInt(amount))
	require.NoError(t, err)
	require.NoError(t, f.taxRepo.Save(context.Background(), tax))
	return tax
}

func (f *fixture) product(t *testing.T, code string, price int64, policy catalog.InvoicePolicy, taxIDs ...uuid.UUID) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(f.tenantID, code, "Product "+code, catalog.ProductTypeConsumable, uuid.New())
	require.NoError(t, err)
	require.NoError(t, product.SetListPrice(decimal.NewFromInt(price)))
	require.NoError(t, product.SetInvoicePolicy(policy))
	product.SetTaxes(taxIDs)
	return product
}

// confirmedOrder saves a confirmed order selling qty of each product
func (f *fixture) confirmedOrder(t *testing.T, qty int64, products ...*catalog.Product) *trade.SalesOrder {
	t.Helper()
	ctx := context.Background()
	number, err := f.orderRepo.GenerateOrderNumber(ctx, f.tenantID)
	require.NoError(t, err)
	order, err := trade.NewSalesOrder(f.tenantID, number, uuid.New(), "Azure Interior", "EUR")
	require.NoError(t, err)
	for _, product := range products {
		_, err := order.AddProduct(product, decimal.NewFromInt(qty))
		require.NoError(t, err)
	}
	require.NoError(t, order.Confirm())
	require.NoError(t, f.orderRepo.Save(ctx, order))
	return order
}

func (f *fixture) reload(t *testing.T, orderID uuid.UUID) *trade.SalesOrder {
	t.Helper()
	order, err := f.orderRepo.FindByIDForTenant(context.Background(), f.tenantID, orderID)
	require.NoError(t, err)
	return order
}
