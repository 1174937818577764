package handler

import (
	"context"

	financeapp "github.com/erp/saleflow/internal/application/finance"
	mailapp "github.com/erp/saleflow/internal/application/mail"
	quotationapp "github.com/erp/saleflow/internal/application/quotation"
	tradeapp "github.com/erp/saleflow/internal/application/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSalesOrderService struct {
	mock.Mock
}

func (m *MockSalesOrderService) Create(ctx context.Context, tenantID uuid.UUID, req tradeapp.CreateSalesOrderRequest) (*tradeapp.SalesOrderResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.SalesOrderResponse), args.Error(1)
}

func (m *MockSalesOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*tradeapp.SalesOrderResponse, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.SalesOrderResponse), args.Error(1)
}

func (m *MockSalesOrderService) List(ctx context.Context, tenantID uuid.UUID, filter tradeapp.SalesOrderListFilter) ([]tradeapp.SalesOrderListItemResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]tradeapp.SalesOrderListItemResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockSalesOrderService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID) (*tradeapp.SalesOrderResponse, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.SalesOrderResponse), args.Error(1)
}

type MockOrderAutomation struct {
	mock.Mock
}

func (m *MockOrderAutomation) Confirm(ctx context.Context, tenantID, orderID uuid.UUID) (*tradeapp.ConfirmResponse, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.ConfirmResponse), args.Error(1)
}

func (m *MockOrderAutomation) RunInvoicingAutomation(ctx context.Context, tenantID uuid.UUID, orderIDs []uuid.UUID) error {
	args := m.Called(ctx, tenantID, orderIDs)
	return args.Error(0)
}

func (m *MockOrderAutomation) RunPickingAutomation(ctx context.Context, tenantID uuid.UUID, orderIDs []uuid.UUID) (*tradeapp.AutomationResult, error) {
	args := m.Called(ctx, tenantID, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.AutomationResult), args.Error(1)
}

type MockMessageLister struct {
	mock.Mock
}

func (m *MockMessageLister) List(ctx context.Context, tenantID uuid.UUID, resModel string, resID uuid.UUID) ([]mailapp.MessageResponse, error) {
	args := m.Called(ctx, tenantID, resModel, resID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mailapp.MessageResponse), args.Error(1)
}

type MockSaleOrderTypeService struct {
	mock.Mock
}

func (m *MockSaleOrderTypeService) Create(ctx context.Context, tenantID uuid.UUID, req tradeapp.CreateSaleOrderTypeRequest) (*tradeapp.SaleOrderTypeResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.SaleOrderTypeResponse), args.Error(1)
}

func (m *MockSaleOrderTypeService) GetByID(ctx context.Context, tenantID, typeID uuid.UUID) (*tradeapp.SaleOrderTypeResponse, error) {
	args := m.Called(ctx, tenantID, typeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.SaleOrderTypeResponse), args.Error(1)
}

func (m *MockSaleOrderTypeService) List(ctx context.Context, tenantID uuid.UUID, filter tradeapp.SaleOrderTypeListFilter) ([]tradeapp.SaleOrderTypeResponse, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tradeapp.SaleOrderTypeResponse), args.Error(1)
}

type MockQuotationProductService struct {
	mock.Mock
}

func (m *MockQuotationProductService) ComputeQuantities(ctx context.Context, tenantID uuid.UUID, orderID *uuid.UUID, productIDs []uuid.UUID) ([]quotationapp.ProductQuantityResponse, error) {
	args := m.Called(ctx, tenantID, orderID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quotationapp.ProductQuantityResponse), args.Error(1)
}

func (m *MockQuotationProductService) Write(ctx context.Context, tenantID uuid.UUID, orderID *uuid.UUID, quotationContext bool, productID uuid.UUID, req quotationapp.WriteProductRequest) (*quotationapp.ProductResponse, error) {
	args := m.Called(ctx, tenantID, orderID, quotationContext, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotationapp.ProductResponse), args.Error(1)
}

func (m *MockQuotationProductService) ProductFormAction(ctx context.Context, tenantID, productID uuid.UUID) (*quotationapp.WindowAction, error) {
	args := m.Called(ctx, tenantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotationapp.WindowAction), args.Error(1)
}

func (m *MockQuotationProductService) ProductView(ctx context.Context, tenantID uuid.UUID, viewType string, quotationContext bool) (*quotationapp.ViewResponse, error) {
	args := m.Called(ctx, tenantID, viewType, quotationContext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotationapp.ViewResponse), args.Error(1)
}

func (m *MockQuotationProductService) SaveProductView(ctx context.Context, tenantID uuid.UUID, viewType, arch string) (*quotationapp.ViewResponse, error) {
	args := m.Called(ctx, tenantID, viewType, arch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotationapp.ViewResponse), args.Error(1)
}

type MockDownPaymentService struct {
	mock.Mock
}

func (m *MockDownPaymentService) ComputeAmountTotal(ctx context.Context, tenantID uuid.UUID, req financeapp.AmountTotalRequest) (*financeapp.DownPaymentAmounts, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financeapp.DownPaymentAmounts), args.Error(1)
}

func (m *MockDownPaymentService) InverseAmountTotal(ctx context.Context, tenantID uuid.UUID, req financeapp.InverseAmountTotalRequest) (*financeapp.DownPaymentAmounts, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financeapp.DownPaymentAmounts), args.Error(1)
}

func (m *MockDownPaymentService) CreateInvoices(ctx context.Context, tenantID uuid.UUID, req financeapp.CreateDownPaymentInvoicesRequest) ([]financeapp.InvoiceResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]financeapp.InvoiceResponse), args.Error(1)
}

type MockInvoiceOpener struct {
	mock.Mock
}

func (m *MockInvoiceOpener) Open(ctx context.Context, tenantID, invoiceID uuid.UUID) (*financeapp.InvoiceResponse, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financeapp.InvoiceResponse), args.Error(1)
}
