package trade

import (
	"context"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/google/uuid"
)

// SaleOrderTypeService manages the sale order types and their automation settings
type SaleOrderTypeService struct {
	typeRepo trade.SaleOrderTypeRepository
}

// NewSaleOrderTypeService creates a new SaleOrderTypeService
func NewSaleOrderTypeService(typeRepo trade.SaleOrderTypeRepository) *SaleOrderTypeService {
	return &SaleOrderTypeService{typeRepo: typeRepo}
}

// Create creates a sale order type
func (s *SaleOrderTypeService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSaleOrderTypeRequest) (*SaleOrderTypeResponse, error) {
	orderType, err := trade.NewSaleOrderType(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := orderType.SetInvoicingAutomation(req.InvoicingAutomation); err != nil {
		return nil, err
	}
	if err := orderType.SetPickingAutomation(req.PickingAutomation); err != nil {
		return nil, err
	}
	if err := orderType.SetPaymentAutomation(req.PaymentAutomation, req.PaymentJournalID); err != nil {
		return nil, err
	}
	orderType.SetBook(req.BookID)
	orderType.SetJournal(req.JournalID)
	orderType.SetDoneOnConfirm(req.SetDoneOnConfirmation)

	if err := s.typeRepo.Save(ctx, orderType); err != nil {
		return nil, err
	}
	response := ToSaleOrderTypeResponse(orderType)
	return &response, nil
}

// GetByID retrieves a sale order type by ID
func (s *SaleOrderTypeService) GetByID(ctx context.Context, tenantID, typeID uuid.UUID) (*SaleOrderTypeResponse, error) {
	orderType, err := s.typeRepo.FindByIDForTenant(ctx, tenantID, typeID)
	if err != nil {
		return nil, err
	}
	response := ToSaleOrderTypeResponse(orderType)
	return &response, nil
}

// List retrieves the sale order types of a tenant
func (s *SaleOrderTypeService) List(ctx context.Context, tenantID uuid.UUID, filter SaleOrderTypeListFilter) ([]SaleOrderTypeResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	types, err := s.typeRepo.FindAllForTenant(ctx, tenantID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
	})
	if err != nil {
		return nil, err
	}
	responses := make([]SaleOrderTypeResponse, len(types))
	for i := range types {
		responses[i] = ToSaleOrderTypeResponse(&types[i])
	}
	return responses, nil
}
