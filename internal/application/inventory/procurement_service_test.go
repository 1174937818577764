package inventory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	catalogapp "github.com/erp/saleflow/internal/application/catalog"
	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/domain/inventory"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/erp/saleflow/internal/infrastructure/persistence"
	"github.com/erp/saleflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

type procurementFixture struct {
	tenantID    uuid.UUID
	unit        *catalog.UnitOfMeasure
	dozen       *catalog.UnitOfMeasure
	productRepo *persistence.GormProductRepository
	pickingRepo *persistence.GormPickingRepository
	quantRepo   *persistence.GormStockQuantRepository
	publisher   *recordingPublisher
	service     *ProcurementService
}

func newProcurementFixture(t *testing.T, reserveOnCreate bool) *procurementFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ProductModel{},
		&models.UnitOfMeasureModel{},
		&models.PickingModel{},
		&models.StockMoveModel{},
		&models.StockQuantModel{},
	))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	f := &procurementFixture{
		tenantID:    uuid.New(),
		productRepo: persistence.NewGormProductRepository(db),
		pickingRepo: persistence.NewGormPickingRepository(db),
		quantRepo:   persistence.NewGormStockQuantRepository(db),
		publisher:   &recordingPublisher{},
	}

	uomRepo := persistence.NewGormUnitOfMeasureRepository(db)
	f.unit, err = catalog.NewUnitOfMeasure(f.tenantID, "Units", "Unit", decimal.NewFromInt(12), decimal.NewFromInt(1))
	require.NoError(t, err)
	require.NoError(t, uomRepo.Save(ctx, f.unit))
	f.dozen, err = catalog.NewUnitOfMeasure(f.tenantID, "Dozens", "Unit", decimal.NewFromInt(1), decimal.RequireFromString("0.01"))
	require.NoError(t, err)
	require.NoError(t, uomRepo.Save(ctx, f.dozen))

	f.service = NewProcurementService(
		persistence.NewGormTransactionManager(db),
		f.pickingRepo,
		f.quantRepo,
		f.productRepo,
		catalogapp.NewUomConverter(uomRepo),
		reserveOnCreate,
		zap.NewNop(),
	)
	f.service.SetEventPublisher(f.publisher)
	return f
}

func (f *procurementFixture) product(t *testing.T, code string, productType catalog.ProductType, onHand int64) *catalog.Product {
	t.Helper()
	ctx := context.Background()
	product, err := catalog.NewProduct(f.tenantID, code, "Product "+code, productType, f.unit.ID)
	require.NoError(t, err)
	require.NoError(t, product.SetListPrice(decimal.NewFromInt(10)))
	require.NoError(t, f.productRepo.Save(ctx, product))
	if onHand > 0 {
		quant, err := inventory.NewStockQuant(f.tenantID, product.ID)
		require.NoError(t, err)
		require.NoError(t, quant.Receive(decimal.NewFromInt(onHand)))
		require.NoError(t, f.quantRepo.Save(ctx, quant))
	}
	return product
}

func (f *procurementFixture) order(t *testing.T, qty int64, products ...*catalog.Product) *trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder(f.tenantID, "SO"+uuid.NewString()[:8], uuid.New(), "Deco Addict", "EUR")
	require.NoError(t, err)
	for _, product := range products {
		_, err := order.AddProduct(product, decimal.NewFromInt(qty))
		require.NoError(t, err)
	}
	require.NoError(t, order.Confirm())
	return order
}

func (f *procurementFixture) quant(t *testing.T, productID uuid.UUID) inventory.StockQuant {
	t.Helper()
	quants, err := f.quantRepo.FindByProducts(context.Background(), f.tenantID, []uuid.UUID{productID})
	require.NoError(t, err)
	require.Len(t, quants, 1)
	return quants[0]
}

func TestProcurementService_Launch(t *testing.T) {
	f := newProcurementFixture(t, false)
	ctx := context.Background()
	desk := f.product(t, "DESK", catalog.ProductTypeStorable, 5)
	service := f.product(t, "INSTALL", catalog.ProductTypeService, 0)
	order := f.order(t, 2, desk, service)

	picking, err := f.service.Launch(ctx, order)
	require.NoError(t, err)
	require.NotNil(t, picking)
	assert.Equal(t, "WH/OUT/00001", picking.Name)
	assert.Equal(t, inventory.PickingStateConfirmed, picking.State)
	require.Len(t, picking.Moves, 1, "services are not delivered")
	assert.Equal(t, order.Lines[0].ID, *picking.Moves[0].SaleLineID)
	require.NotNil(t, order.ProcurementGroupID)
	assert.Equal(t, picking.ProcurementGroupID, *order.ProcurementGroupID)

	open, err := f.service.OpenPickings(ctx, order)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, picking.ID, open[0].ID)
	assert.True(t, f.quant(t, desk.ID).Reserved.IsZero())
}

func TestProcurementService_Launch_NothingToDeliver(t *testing.T) {
	f := newProcurementFixture(t, false)
	order := f.order(t, 1, f.product(t, "INSTALL", catalog.ProductTypeService, 0))

	picking, err := f.service.Launch(context.Background(), order)
	require.NoError(t, err)
	assert.Nil(t, picking)
	assert.Nil(t, order.ProcurementGroupID)
}

func TestProcurementService_Launch_ReserveOnCreate(t *testing.T) {
	f := newProcurementFixture(t, true)
	desk := f.product(t, "DESK", catalog.ProductTypeStorable, 5)
	order := f.order(t, 2, desk)

	picking, err := f.service.Launch(context.Background(), order)
	require.NoError(t, err)
	assert.True(t, picking.IsAssigned())
	assert.True(t, f.quant(t, desk.ID).Reserved.Equal(decimal.NewFromInt(2)))
}

func TestProcurementService_Launch_ConvertsUnits(t *testing.T) {
	f := newProcurementFixture(t, false)
	desk := f.product(t, "DESK", catalog.ProductTypeStorable, 0)
	order, err := trade.NewSalesOrder(f.tenantID, "SO-DOZEN", uuid.New(), "Deco Addict", "EUR")
	require.NoError(t, err)
	line, err := order.AddProduct(desk, decimal.NewFromInt(2))
	require.NoError(t, err)
	line.UomID = f.dozen.ID
	require.NoError(t, order.Confirm())

	picking, err := f.service.Launch(context.Background(), order)
	require.NoError(t, err)
	require.Len(t, picking.Moves, 1)
	assert.Equal(t, "2", picking.Moves[0].ProductUomQty.String())
	assert.Equal(t, "24", picking.Moves[0].ProductQty.String())
}

func TestProcurementService_Reserve(t *testing.T) {
	f := newProcurementFixture(t, false)
	ctx := context.Background()
	desk := f.product(t, "DESK", catalog.ProductTypeStorable, 3)

	first, err := f.service.Launch(ctx, f.order(t, 2, desk))
	require.NoError(t, err)
	second, err := f.service.Launch(ctx, f.order(t, 2, desk))
	require.NoError(t, err)

	require.NoError(t, f.service.Reserve(ctx, f.tenantID, []*inventory.Picking{first, second}))
	assert.True(t, first.IsAssigned())
	assert.False(t, second.IsAssigned(), "one unit left is not enough")
	assert.Equal(t, []string{"Product DESK"}, second.UnavailableProducts())

	quant := f.quant(t, desk.ID)
	assert.True(t, quant.Reserved.Equal(decimal.NewFromInt(2)))
	assert.True(t, quant.Available().Equal(decimal.NewFromInt(1)))

	stored, err := f.pickingRepo.FindByIDForTenant(ctx, f.tenantID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, inventory.PickingStateAssigned, stored.State)
}

func TestProcurementService_Validate(t *testing.T) {
	f := newProcurementFixture(t, true)
	ctx := context.Background()
	desk := f.product(t, "DESK", catalog.ProductTypeStorable, 5)
	chair := f.product(t, "CHAIR", catalog.ProductTypeConsumable, 0)

	picking, err := f.service.Launch(ctx, f.order(t, 2, desk, chair))
	require.NoError(t, err)
	assert.False(t, picking.IsAssigned())

	err = f.service.Validate(ctx, picking)
	assert.True(t, shared.IsDomainError(err, "NOTHING_TO_PROCESS"))

	require.NoError(t, picking.ForceAvailability())
	require.NoError(t, f.service.Validate(ctx, picking))
	assert.Equal(t, inventory.PickingStateDone, picking.State)
	assert.Empty(t, picking.GetDomainEvents())
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, inventory.EventTypePickingDone, f.publisher.events[0].EventType())

	deskQuant := f.quant(t, desk.ID)
	assert.Equal(t, "3", deskQuant.OnHand.String())
	assert.True(t, deskQuant.Reserved.IsZero())
	assert.Equal(t, "-2", f.quant(t, chair.ID).OnHand.String())

	stored, err := f.pickingRepo.FindByIDForTenant(ctx, f.tenantID, picking.ID)
	require.NoError(t, err)
	assert.Equal(t, inventory.PickingStateDone, stored.State)
}
