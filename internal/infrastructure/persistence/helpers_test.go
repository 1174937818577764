package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory SQLite database with every table migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ProductModel{},
		&models.UnitOfMeasureModel{},
		&models.ViewModel{},
		&models.SalesOrderModel{},
		&models.SalesOrderLineModel{},
		&models.SaleOrderTypeModel{},
		&models.PickingModel{},
		&models.StockMoveModel{},
		&models.StockBookModel{},
		&models.StockQuantModel{},
		&models.InvoiceModel{},
		&models.InvoiceLineModel{},
		&models.TaxModel{},
		&models.JournalModel{},
		&models.CurrencyModel{},
		&models.MessageModel{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestProduct(t *testing.T, db *gorm.DB, tenantID uuid.UUID, code string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, code, "Product "+code, catalog.ProductTypeStorable, uuid.New())
	require.NoError(t, err)
	require.NoError(t, product.SetListPrice(decimal.NewFromInt(10)))
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), product))
	return product
}
