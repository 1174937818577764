package quotation

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductModel is the model name of products in views and actions
const ProductModel = "product.product"

// ActionTypeWindow opens a view of a model
const ActionTypeWindow = "ir.actions.act_window"

// DefaultProductTreeArch is seeded for tenants without a stored product list view
const DefaultProductTreeArch = `<tree string="Products">` +
	`<field name="default_code"/>` +
	`<field name="name"/>` +
	`<field name="lst_price"/>` +
	`<field name="uom_id"/>` +
	`</tree>`

// DefaultProductFormArch is seeded for tenants without a stored product form view
const DefaultProductFormArch = `<form string="Product">` +
	`<group>` +
	`<field name="default_code"/>` +
	`<field name="name"/>` +
	`<field name="type"/>` +
	`<field name="lst_price"/>` +
	`<field name="uom_id"/>` +
	`<field name="active"/>` +
	`</group>` +
	`</form>`

// UnitConverter converts quantities between units of measure
type UnitConverter interface {
	Convert(ctx context.Context, tenantID uuid.UUID, qty decimal.Decimal, fromID, toID uuid.UUID) (decimal.Decimal, error)
}

// ProductService lets users pick products and their quantities from within a quotation
type ProductService struct {
	txManager   shared.TransactionManager
	orderRepo   trade.SalesOrderRepository
	productRepo catalog.ProductRepository
	viewRepo    catalog.ViewRepository
	viewCache   catalog.ViewCache
	converter   UnitConverter
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	txManager shared.TransactionManager,
	orderRepo trade.SalesOrderRepository,
	productRepo catalog.ProductRepository,
	viewRepo catalog.ViewRepository,
	viewCache catalog.ViewCache,
	converter UnitConverter,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		txManager:   txManager,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		viewRepo:    viewRepo,
		viewCache:   viewCache,
		converter:   converter,
		logger:      logger,
	}
}

// ComputeQuantities returns the quantity of each product in the order, expressed in the product unit.
// Without an order every quantity is zero.
func (s *ProductService) ComputeQuantities(ctx context.Context, tenantID uuid.UUID, orderID *uuid.UUID, productIDs []uuid.UUID) ([]ProductQuantityResponse, error) {
	result := make([]ProductQuantityResponse, len(productIDs))
	for i, id := range productIDs {
		result[i] = ProductQuantityResponse{ProductID: id, Qty: decimal.Zero}
	}
	if orderID == nil || len(productIDs) == 0 {
		return result, nil
	}

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, *orderID)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindByIDs(ctx, tenantID, productIDs)
	if err != nil {
		return nil, err
	}
	uoms := make(map[uuid.UUID]uuid.UUID, len(products))
	for i := range products {
		uoms[products[i].ID] = products[i].UomID
	}

	for i := range result {
		productUom, ok := uoms[result[i].ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found: "+result[i].ProductID.String())
		}
		total := decimal.Zero
		for _, line := range order.LinesForProduct(result[i].ProductID) {
			qty, err := s.converter.Convert(ctx, tenantID, line.Quantity, line.UomID, productUom)
			if err != nil {
				return nil, err
			}
			total = total.Add(qty)
		}
		result[i].Qty = total
	}
	return result, nil
}

// SetQuantity sets the quantity of a product in the order, qty being in the product unit.
// The product ends up on a single line. Without an order nothing happens.
func (s *ProductService) SetQuantity(ctx context.Context, tenantID uuid.UUID, orderID *uuid.UUID, productID uuid.UUID, qty decimal.Decimal) error {
	if orderID == nil {
		return nil
	}

	return s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.FindByIDForTenant(txCtx, tenantID, *orderID)
		if err != nil {
			return err
		}
		product, err := s.productRepo.FindByIDForTenant(txCtx, tenantID, productID)
		if err != nil {
			return err
		}

		lines := order.LinesForProduct(productID)
		if len(lines) == 0 {
			if _, err := order.AddProduct(product, qty); err != nil {
				return err
			}
			return s.orderRepo.Save(txCtx, order)
		}

		// line pointers do not survive RemoveLine
		keepID, keepUom := lines[0].ID, lines[0].UomID
		removeIDs := make([]uuid.UUID, 0, len(lines)-1)
		for _, line := range lines[1:] {
			removeIDs = append(removeIDs, line.ID)
		}
		for _, id := range removeIDs {
			if err := order.RemoveLine(id); err != nil {
				return err
			}
		}

		lineQty := qty
		if keepUom != product.UomID {
			lineQty, err = s.converter.Convert(txCtx, tenantID, qty, product.UomID, keepUom)
			if err != nil {
				return err
			}
		}
		if err := order.SetLineQuantity(keepID, lineQty); err != nil {
			return err
		}
		if err := s.orderRepo.Save(txCtx, order); err != nil {
			return err
		}

		s.logger.Debug("Quotation quantity updated",
			zap.String("order_number", order.OrderNumber),
			zap.String("product_id", productID.String()),
			zap.Int("removed_lines", len(removeIDs)),
		)
		return nil
	})
}

// Write updates a product. In quotation context a write of the quantity alone only
// changes the order, so users without product rights can still edit it.
func (s *ProductService) Write(ctx context.Context, tenantID uuid.UUID, orderID *uuid.UUID, quotationContext bool, productID uuid.UUID, req WriteProductRequest) (*ProductResponse, error) {
	if quotationContext && req.OnlyQty() {
		if err := s.SetQuantity(ctx, tenantID, orderID, productID, *req.Qty); err != nil {
			return nil, err
		}
		product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
		if err != nil {
			return nil, err
		}
		response := ToProductResponse(product)
		return &response, nil
	}

	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ListPrice != nil {
		if err := product.SetListPrice(*req.ListPrice); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		product.SetActive(*req.Active)
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// ProductFormAction returns the action opening the product form
func (s *ProductService) ProductFormAction(ctx context.Context, tenantID, productID uuid.UUID) (*WindowAction, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	return &WindowAction{
		Type:     ActionTypeWindow,
		ResModel: ProductModel,
		ResID:    product.ID,
		ViewMode: catalog.ViewTypeForm,
		Target:   "current",
	}, nil
}

// ProductView returns the product view of a tenant, adapted for quotations when asked.
// Adapted archs are cached.
func (s *ProductService) ProductView(ctx context.Context, tenantID uuid.UUID, viewType string, quotationContext bool) (*ViewResponse, error) {
	key := viewCacheKey(tenantID, viewType, quotationContext)
	if arch, ok, err := s.viewCache.Get(ctx, key); err != nil {
		s.logger.Warn("View cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return &ViewResponse{Model: ProductModel, ViewType: viewType, Arch: arch}, nil
	}

	view, err := s.loadView(ctx, tenantID, viewType)
	if err != nil {
		return nil, err
	}
	arch, err := FieldsViewGet(view.Arch, viewType, quotationContext)
	if err != nil {
		return nil, err
	}
	if err := s.viewCache.Set(ctx, key, arch); err != nil {
		s.logger.Warn("View cache write failed", zap.String("key", key), zap.Error(err))
	}
	return &ViewResponse{Model: ProductModel, ViewType: viewType, Arch: arch}, nil
}

// SaveProductView replaces the stored product view of a tenant and drops its cached archs
func (s *ProductService) SaveProductView(ctx context.Context, tenantID uuid.UUID, viewType, arch string) (*ViewResponse, error) {
	if viewType == catalog.ViewTypeTree {
		// reject archs the quotation list could not use
		if _, err := FieldsViewGet(arch, viewType, true); err != nil {
			return nil, err
		}
	}
	view, err := catalog.NewView(tenantID, ProductModel, viewType, arch)
	if err != nil {
		return nil, err
	}
	if err := s.viewRepo.Save(ctx, view); err != nil {
		return nil, err
	}
	for _, quotationContext := range []bool{false, true} {
		key := viewCacheKey(tenantID, viewType, quotationContext)
		if err := s.viewCache.Delete(ctx, key); err != nil {
			s.logger.Warn("View cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
	return &ViewResponse{Model: ProductModel, ViewType: viewType, Arch: view.Arch}, nil
}

func (s *ProductService) loadView(ctx context.Context, tenantID uuid.UUID, viewType string) (*catalog.View, error) {
	view, err := s.viewRepo.Find(ctx, tenantID, ProductModel, viewType)
	if err == nil {
		return view, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var arch string
	switch viewType {
	case catalog.ViewTypeTree:
		arch = DefaultProductTreeArch
	case catalog.ViewTypeForm:
		arch = DefaultProductFormArch
	default:
		return nil, shared.NewDomainError("INVALID_VIEW", "Unsupported view type: "+viewType)
	}
	view, err = catalog.NewView(tenantID, ProductModel, viewType, arch)
	if err != nil {
		return nil, err
	}
	if err := s.viewRepo.Save(ctx, view); err != nil {
		return nil, err
	}
	s.logger.Info("Default product view seeded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("view_type", viewType),
	)
	return view, nil
}

func viewCacheKey(tenantID uuid.UUID, viewType string, quotationContext bool) string {
	return fmt.Sprintf("%s:%s:%s:%t", tenantID, ProductModel, viewType, quotationContext)
}
