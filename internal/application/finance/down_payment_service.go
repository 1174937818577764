package finance

import (
	"context"
	"fmt"

	"github.com/erp/saleflow/internal/domain/finance"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

// DownPaymentService backs the wizard that invoices sales orders in advance
type DownPaymentService struct {
	txManager    shared.TransactionManager
	orderRepo    trade.SalesOrderRepository
	taxRepo      finance.TaxRepository
	currencyRepo finance.CurrencyRepository
	invoicing    *InvoicingService
	logger       *zap.Logger
}

// NewDownPaymentService creates a new DownPaymentService
func NewDownPaymentService(
	txManager shared.TransactionManager,
	orderRepo trade.SalesOrderRepository,
	taxRepo finance.TaxRepository,
	currencyRepo finance.CurrencyRepository,
	invoicing *InvoicingService,
	logger *zap.Logger,
) *DownPaymentService {
	return &DownPaymentService{
		txManager:    txManager,
		orderRepo:    orderRepo,
		taxRepo:      taxRepo,
		currencyRepo: currencyRepo,
		invoicing:    invoicing,
		logger:       logger,
	}
}

// ComputeAmountTotal returns the down payment amount with the deposit taxes applied.
// The first order gives the currency. Without taxes the total is the amount.
func (s *DownPaymentService) ComputeAmountTotal(ctx context.Context, tenantID uuid.UUID, req AmountTotalRequest) (*DownPaymentAmounts, error) {
	if len(req.OrderIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_ORDER", "No sales order selected")
	}
	amounts := &DownPaymentAmounts{Amount: req.Amount, AmountTotal: req.Amount}
	if len(req.DepositTaxIDs) == 0 {
		return amounts, nil
	}

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, req.OrderIDs[0])
	if err != nil {
		return nil, err
	}
	currency, err := s.currencyRepo.FindByCode(ctx, order.CurrencyCode)
	if err != nil {
		return nil, err
	}
	taxes, err := s.depositTaxes(ctx, tenantID, req.DepositTaxIDs)
	if err != nil {
		return nil, err
	}

	amounts.AmountTotal = finance.ComputeAll(taxes, req.Amount, *currency, decimal.NewFromInt(1)).TotalIncluded
	return amounts, nil
}

// InverseAmountTotal returns the amount that gives amountTotal once the deposit taxes are applied.
// Only percentage taxes can be inverted.
func (s *DownPaymentService) InverseAmountTotal(ctx context.Context, tenantID uuid.UUID, req InverseAmountTotalRequest) (*DownPaymentAmounts, error) {
	taxes, err := s.depositTaxes(ctx, tenantID, req.DepositTaxIDs)
	if err != nil {
		return nil, err
	}
	amount, err := InverseAmount(taxes, req.AmountTotal)
	if err != nil {
		return nil, err
	}
	return &DownPaymentAmounts{Amount: amount, AmountTotal: req.AmountTotal}, nil
}

// depositTaxes loads the requested taxes and fails when any of them is unknown to the tenant
func (s *DownPaymentService) depositTaxes(ctx context.Context, tenantID uuid.UUID, taxIDs []uuid.UUID) ([]finance.Tax, error) {
	if len(taxIDs) == 0 {
		return []finance.Tax{}, nil
	}
	ids := shared.UniqueIDs(taxIDs)
	taxes, err := s.taxRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	if len(taxes) != len(ids) {
		return nil, shared.NewDomainError("TAX_NOT_FOUND", "One or more deposit taxes do not exist")
	}
	return taxes, nil
}

// InverseAmount divides amountTotal by one plus the rate of the taxes not included in the price
func InverseAmount(taxes []finance.Tax, amountTotal decimal.Decimal) (decimal.Decimal, error) {
	if !finance.AllPercent(taxes) {
		return decimal.Zero, shared.NewDomainError("VALIDATION_ERROR", "You can only set amount total if taxes are of type percentage")
	}
	percentage := decimal.Zero
	for _, tax := range taxes {
		if !tax.PriceInclude {
			percentage = percentage.Add(tax.Amount)
		}
	}
	divisor := decimal.NewFromInt(1).Add(percentage.Div(hundred))
	if divisor.IsZero() {
		divisor = decimal.NewFromInt(1)
	}
	return amountTotal.Div(divisor), nil
}

// CreateInvoices runs the wizard on the selected orders and returns the created invoices
func (s *DownPaymentService) CreateInvoices(ctx context.Context, tenantID uuid.UUID, req CreateDownPaymentInvoicesRequest) ([]InvoiceResponse, error) {
	if req.Method.IsDownPayment() {
		if !req.Amount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "The value of the down payment amount must be positive")
		}
		if req.ProductID == nil || *req.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Please select a down payment product")
		}
	}

	var invoices []*finance.Invoice
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		orderIDs := shared.UniqueIDs(req.OrderIDs)
		found, err := s.orderRepo.FindByIDs(txCtx, tenantID, orderIDs)
		if err != nil {
			return err
		}
		if len(found) != len(orderIDs) {
			return shared.ErrNotFound
		}
		orders := make([]*trade.SalesOrder, len(found))
		for i := range found {
			orders[i] = &found[i]
		}

		switch req.Method {
		case AdvancePaymentDelivered:
			invoices, err = s.invoicing.CreateInvoices(txCtx, orders, false)
		case AdvancePaymentAll:
			invoices, err = s.invoicing.CreateInvoices(txCtx, orders, true)
		case AdvancePaymentPercentage, AdvancePaymentFixed:
			invoices, err = s.createDownPayments(txCtx, orders, req)
		default:
			return shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Unknown advance payment method: %s", req.Method))
		}
		if err == nil && len(invoices) == 0 {
			return shared.NewDomainError("NO_INVOICEABLE_LINE", "There is no invoiceable line.")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}

func (s *DownPaymentService) createDownPayments(ctx context.Context, orders []*trade.SalesOrder, req CreateDownPaymentInvoicesRequest) ([]*finance.Invoice, error) {
	invoices := make([]*finance.Invoice, 0, len(orders))
	for _, order := range orders {
		amount := req.Amount
		description := "Down payment"
		if req.Method == AdvancePaymentPercentage {
			amount = order.AmountUntaxed.Mul(req.Amount).Div(hundred)
			description = fmt.Sprintf("Down payment of %s%%", req.Amount.String())
		}

		line, err := order.AddDownPaymentLine(*req.ProductID, description, amount, req.DepositTaxIDs)
		if err != nil {
			return nil, err
		}
		invoice, err := s.invoicing.CreateDownPaymentInvoice(ctx, order, line.ID)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Down payment invoiced",
			zap.String("order_number", order.OrderNumber),
			zap.String("amount", amount.String()),
		)
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}
