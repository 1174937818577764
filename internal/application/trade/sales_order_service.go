package trade

import (
	"context"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCurrencyCode is used for quotations created without a currency
const DefaultCurrencyCode = "EUR"

// SalesOrderService handles sales order business operations
type SalesOrderService struct {
	orderRepo      trade.SalesOrderRepository
	typeRepo       trade.SaleOrderTypeRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orderRepo trade.SalesOrderRepository,
	typeRepo trade.SaleOrderTypeRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:   orderRepo,
		typeRepo:    typeRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new quotation
func (s *SalesOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = DefaultCurrencyCode
	}
	order, err := trade.NewSalesOrder(tenantID, orderNumber, req.CustomerID, req.CustomerName, currency)
	if err != nil {
		return nil, err
	}

	if req.TypeID != nil {
		// the type must exist for the tenant
		if _, err := s.typeRepo.FindByIDForTenant(ctx, tenantID, *req.TypeID); err != nil {
			return nil, err
		}
		if err := order.SetType(req.TypeID); err != nil {
			return nil, err
		}
	}

	if len(req.Lines) > 0 {
		products, err := s.loadProducts(ctx, tenantID, req.Lines)
		if err != nil {
			return nil, err
		}
		for _, input := range req.Lines {
			product, ok := products[input.ProductID]
			if !ok {
				return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found: "+input.ProductID.String())
			}
			if _, err := order.AddProduct(product, input.Quantity); err != nil {
				return nil, err
			}
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	if err := s.publish(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Quotation created",
		zap.String("order_number", order.OrderNumber),
		zap.Int("lines", order.LineCount()),
	)
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves a list of sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, tenantID uuid.UUID, filter SalesOrderListFilter) ([]SalesOrderListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = filter.CustomerID.String()
	}
	if filter.TypeID != nil {
		domainFilter.Filters["type_id"] = filter.TypeID.String()
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSalesOrderListItemResponses(orders), total, nil
}

// Cancel cancels a quotation or a confirmed order
func (s *SalesOrderService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	if err := s.publish(ctx, order); err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

func (s *SalesOrderService) loadProducts(ctx context.Context, tenantID uuid.UUID, lines []CreateSalesOrderLineInput) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}
	found, err := s.productRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		products[found[i].ID] = &found[i]
	}
	return products, nil
}

func (s *SalesOrderService) publish(ctx context.Context, order *trade.SalesOrder) error {
	events := order.GetDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return nil
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		return err
	}
	order.ClearDomainEvents()
	return nil
}
