package inventory

import (
	"context"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/domain/inventory"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UnitConverter converts quantities between units of measure
type UnitConverter interface {
	Convert(ctx context.Context, tenantID uuid.UUID, qty decimal.Decimal, fromID, toID uuid.UUID) (decimal.Decimal, error)
}

// ProcurementService creates the delivery pickings of confirmed orders and moves their stock
type ProcurementService struct {
	txManager       shared.TransactionManager
	pickingRepo     inventory.PickingRepository
	quantRepo       inventory.StockQuantRepository
	productRepo     catalog.ProductRepository
	converter       UnitConverter
	eventPublisher  shared.EventPublisher
	reserveOnCreate bool
	logger          *zap.Logger
}

// NewProcurementService creates a new ProcurementService.
// With reserveOnCreate, stock is reserved as soon as a picking is created.
func NewProcurementService(
	txManager shared.TransactionManager,
	pickingRepo inventory.PickingRepository,
	quantRepo inventory.StockQuantRepository,
	productRepo catalog.ProductRepository,
	converter UnitConverter,
	reserveOnCreate bool,
	logger *zap.Logger,
) *ProcurementService {
	return &ProcurementService{
		txManager:       txManager,
		pickingRepo:     pickingRepo,
		quantRepo:       quantRepo,
		productRepo:     productRepo,
		converter:       converter,
		reserveOnCreate: reserveOnCreate,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProcurementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ReservesOnCreate reports whether pickings are reserved when they are created
func (s *ProcurementService) ReservesOnCreate() bool {
	return s.reserveOnCreate
}

// Launch creates a confirmed delivery picking for the lines of order that move goods
// and links the order to its procurement group. The caller saves the order.
// Orders without such lines get no picking.
func (s *ProcurementService) Launch(ctx context.Context, order *trade.SalesOrder) (*inventory.Picking, error) {
	lines := order.DeliveryLines()
	if len(lines) == 0 {
		return nil, nil
	}

	var picking *inventory.Picking
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		products, err := s.loadProducts(txCtx, order.TenantID, lines)
		if err != nil {
			return err
		}

		name, err := s.pickingRepo.GenerateName(txCtx, order.TenantID)
		if err != nil {
			return err
		}
		groupID := uuid.New()
		picking, err = inventory.NewPicking(order.TenantID, name, order.ID, groupID)
		if err != nil {
			return err
		}

		for _, line := range lines {
			product, ok := products[line.ProductID]
			if !ok {
				return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product "+line.ProductName+" not found")
			}
			productQty, err := s.converter.Convert(txCtx, order.TenantID, line.Quantity, line.UomID, product.UomID)
			if err != nil {
				return err
			}
			saleLineID := line.ID
			if err := picking.AddMove(&saleLineID, line.ProductID, line.ProductName, line.UomID, line.Quantity, productQty); err != nil {
				return err
			}
		}
		if err := picking.Confirm(); err != nil {
			return err
		}
		if err := s.pickingRepo.Save(txCtx, picking); err != nil {
			return err
		}
		order.AttachProcurementGroup(groupID)

		if s.reserveOnCreate {
			return s.Reserve(txCtx, order.TenantID, []*inventory.Picking{picking})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Delivery created",
		zap.String("order_number", order.OrderNumber),
		zap.String("picking", picking.Name),
		zap.Int("moves", len(picking.Moves)),
	)
	return picking, nil
}

// OpenPickings returns the pickings of an order's procurement group that are not done or cancelled
func (s *ProcurementService) OpenPickings(ctx context.Context, order *trade.SalesOrder) ([]*inventory.Picking, error) {
	if order.ProcurementGroupID == nil {
		return nil, nil
	}
	found, err := s.pickingRepo.FindByProcurementGroup(ctx, order.TenantID, *order.ProcurementGroupID)
	if err != nil {
		return nil, err
	}
	pickings := make([]*inventory.Picking, 0, len(found))
	for i := range found {
		if !found[i].State.IsClosed() {
			pickings = append(pickings, &found[i])
		}
	}
	return pickings, nil
}

// Reserve reserves the available stock for the moves of the pickings, in order
func (s *ProcurementService) Reserve(ctx context.Context, tenantID uuid.UUID, pickings []*inventory.Picking) error {
	return s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		quants, err := s.loadQuants(txCtx, tenantID, pickings)
		if err != nil {
			return err
		}
		available := make(map[uuid.UUID]decimal.Decimal, len(quants))
		for productID, quant := range quants {
			available[productID] = quant.Available()
		}

		touched := make(map[uuid.UUID]bool)
		for _, picking := range pickings {
			if picking.State.IsClosed() || picking.State == inventory.PickingStateDraft {
				continue
			}
			reserved, err := picking.Assign(available)
			if err != nil {
				return err
			}
			for productID, qty := range reserved {
				if err := quants[productID].Reserve(qty); err != nil {
					return err
				}
				touched[productID] = true
			}
			if err := s.pickingRepo.Save(txCtx, picking); err != nil {
				return err
			}
		}

		for productID := range touched {
			if err := s.quantRepo.Save(txCtx, quants[productID]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Validate processes a picking: the done quantities leave the stock and the picking is done
func (s *ProcurementService) Validate(ctx context.Context, picking *inventory.Picking) error {
	return s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := picking.Validate(); err != nil {
			return err
		}

		quants, err := s.loadQuants(txCtx, picking.TenantID, []*inventory.Picking{picking})
		if err != nil {
			return err
		}
		delivered := make(map[uuid.UUID]*inventory.StockQuant)
		for idx := range picking.Moves {
			move := &picking.Moves[idx]
			if move.State != inventory.PickingStateDone {
				continue
			}
			quant, ok := quants[move.ProductID]
			if !ok {
				quant, err = inventory.NewStockQuant(picking.TenantID, move.ProductID)
				if err != nil {
					return err
				}
				quants[move.ProductID] = quant
			}
			quant.Deliver(move.DoneProductQty(), move.ReservedQty)
			delivered[move.ProductID] = quant
		}
		for _, quant := range delivered {
			if err := s.quantRepo.Save(txCtx, quant); err != nil {
				return err
			}
		}

		if err := s.pickingRepo.Save(txCtx, picking); err != nil {
			return err
		}
		return s.publish(txCtx, picking)
	})
}

func (s *ProcurementService) loadProducts(ctx context.Context, tenantID uuid.UUID, lines []trade.SalesOrderLine) (map[uuid.UUID]catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	found, err := s.productRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[uuid.UUID]catalog.Product, len(found))
	for _, product := range found {
		products[product.ID] = product
	}
	return products, nil
}

func (s *ProcurementService) loadQuants(ctx context.Context, tenantID uuid.UUID, pickings []*inventory.Picking) (map[uuid.UUID]*inventory.StockQuant, error) {
	ids := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)
	for _, picking := range pickings {
		for _, move := range picking.Moves {
			if !seen[move.ProductID] {
				seen[move.ProductID] = true
				ids = append(ids, move.ProductID)
			}
		}
	}
	found, err := s.quantRepo.FindByProducts(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	quants := make(map[uuid.UUID]*inventory.StockQuant, len(found))
	for i := range found {
		quants[found[i].ProductID] = &found[i]
	}
	return quants, nil
}

func (s *ProcurementService) publish(ctx context.Context, picking *inventory.Picking) error {
	events := picking.GetDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return nil
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		return err
	}
	picking.ClearDomainEvents()
	return nil
}
