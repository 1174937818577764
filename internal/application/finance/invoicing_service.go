package finance

import (
	"context"

	"github.com/erp/saleflow/internal/domain/finance"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoicingService creates customer invoices from sales orders and validates them
type InvoicingService struct {
	txManager      shared.TransactionManager
	invoiceRepo    finance.InvoiceRepository
	orderRepo      trade.SalesOrderRepository
	typeRepo       trade.SaleOrderTypeRepository
	journalRepo    finance.JournalRepository
	taxRepo        finance.TaxRepository
	currencyRepo   finance.CurrencyRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewInvoicingService creates a new InvoicingService
func NewInvoicingService(
	txManager shared.TransactionManager,
	invoiceRepo finance.InvoiceRepository,
	orderRepo trade.SalesOrderRepository,
	typeRepo trade.SaleOrderTypeRepository,
	journalRepo finance.JournalRepository,
	taxRepo finance.TaxRepository,
	currencyRepo finance.CurrencyRepository,
	logger *zap.Logger,
) *InvoicingService {
	return &InvoicingService{
		txManager:    txManager,
		invoiceRepo:  invoiceRepo,
		orderRepo:    orderRepo,
		typeRepo:     typeRepo,
		journalRepo:  journalRepo,
		taxRepo:      taxRepo,
		currencyRepo: currencyRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InvoicingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// PrepareInvoice returns the header values of the invoices of an order.
// The sale journal comes from the order type when it sets one, else it is the default sale journal.
// The pay-now journal is set when the type automates payments.
func (s *InvoicingService) PrepareInvoice(ctx context.Context, order *trade.SalesOrder) (*InvoiceHeader, error) {
	var defaults trade.InvoiceDefaults
	if order.TypeID != nil {
		orderType, err := s.typeRepo.FindByIDForTenant(ctx, order.TenantID, *order.TypeID)
		if err != nil {
			return nil, err
		}
		defaults = orderType.InvoiceDefaults()
	}

	header := &InvoiceHeader{PayNowJournalID: defaults.PayNowJournalID}
	if defaults.JournalID != nil {
		header.JournalID = *defaults.JournalID
		return header, nil
	}

	journal, err := s.journalRepo.FindDefault(ctx, order.TenantID, finance.JournalTypeSale)
	if err != nil {
		if shared.IsDomainError(err, "NOT_FOUND") {
			return nil, shared.NewDomainError("NO_SALE_JOURNAL", "Please define an accounting sales journal for this company")
		}
		return nil, err
	}
	header.JournalID = journal.ID
	return header, nil
}

// CreateInvoices creates one draft invoice per order with the quantities left to invoice.
// A final invoice also deducts the down payments already invoiced.
// Orders with nothing to invoice get no invoice. The orders are saved with their invoiced quantities.
func (s *InvoicingService) CreateInvoices(ctx context.Context, orders []*trade.SalesOrder, final bool) ([]*finance.Invoice, error) {
	invoices := make([]*finance.Invoice, 0, len(orders))
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, order := range orders {
			invoice, err := s.createInvoice(txCtx, order, final)
			if err != nil {
				return err
			}
			if invoice != nil {
				invoices = append(invoices, invoice)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *InvoicingService) createInvoice(ctx context.Context, order *trade.SalesOrder, final bool) (*finance.Invoice, error) {
	lines := order.InvoiceableLines(final)
	if len(lines) == 0 {
		return nil, nil
	}

	invoice, currency, err := s.newInvoice(ctx, order)
	if err != nil {
		return nil, err
	}
	taxes, err := s.loadTaxes(ctx, order.TenantID, lines)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		qty := line.QtyToInvoice(order.Status)
		lineTaxes := pickTaxes(taxes, line.TaxIDs)
		result := finance.ComputeAll(lineTaxes, line.UnitPrice, *currency, qty)
		saleLineID := line.ID
		if err := invoice.AddLine(&saleLineID, line.ProductID, line.ProductName, qty, line.UnitPrice, line.TaxIDs, result); err != nil {
			return nil, err
		}
		if err := order.RecordInvoiced(line.ID, qty); err != nil {
			return nil, err
		}
	}

	if err := s.saveCreated(ctx, order, invoice); err != nil {
		return nil, err
	}
	s.logger.Info("Invoice created",
		zap.String("order_number", order.OrderNumber),
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int("lines", len(invoice.Lines)),
		zap.Bool("final", final),
	)
	return invoice, nil
}

// CreateDownPaymentInvoice invoices one unit of a down payment line of the order
func (s *InvoicingService) CreateDownPaymentInvoice(ctx context.Context, order *trade.SalesOrder, lineID uuid.UUID) (*finance.Invoice, error) {
	line := order.GetLine(lineID)
	if line == nil || !line.IsDownPayment {
		return nil, shared.NewDomainError("LINE_NOT_FOUND", "Down payment line not found")
	}

	var invoice *finance.Invoice
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, currency, err := s.newInvoice(txCtx, order)
		if err != nil {
			return err
		}
		taxes, err := s.loadTaxes(txCtx, order.TenantID, []*trade.SalesOrderLine{line})
		if err != nil {
			return err
		}

		one := decimal.NewFromInt(1)
		result := finance.ComputeAll(pickTaxes(taxes, line.TaxIDs), line.UnitPrice, *currency, one)
		saleLineID := line.ID
		if err := created.AddLine(&saleLineID, line.ProductID, line.ProductName, one, line.UnitPrice, line.TaxIDs, result); err != nil {
			return err
		}
		if err := order.RecordInvoiced(line.ID, one); err != nil {
			return err
		}
		if err := s.saveCreated(txCtx, order, created); err != nil {
			return err
		}
		invoice = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// OpenInvoice validates a draft invoice with the next number of its journal.
// An invoice with a pay-now journal is paid right away.
func (s *InvoicingService) OpenInvoice(ctx context.Context, invoice *finance.Invoice) error {
	return s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		journal, err := s.journalRepo.FindByIDForTenant(txCtx, invoice.TenantID, invoice.JournalID)
		if err != nil {
			return err
		}
		number, err := s.invoiceRepo.GenerateNumber(txCtx, invoice.TenantID, journal)
		if err != nil {
			return err
		}
		if err := invoice.Open(number); err != nil {
			return err
		}
		if invoice.PayNowJournalID != nil {
			if err := invoice.MarkPaid(); err != nil {
				return err
			}
		}
		if err := s.invoiceRepo.Save(txCtx, invoice); err != nil {
			return err
		}
		return s.publish(txCtx, invoice)
	})
}

// Open validates an invoice by ID
func (s *InvoicingService) Open(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		invoice, err := s.invoiceRepo.FindByIDForTenant(txCtx, tenantID, invoiceID)
		if err != nil {
			return err
		}
		if err := s.OpenInvoice(txCtx, invoice); err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *InvoicingService) newInvoice(ctx context.Context, order *trade.SalesOrder) (*finance.Invoice, *finance.Currency, error) {
	header, err := s.PrepareInvoice(ctx, order)
	if err != nil {
		return nil, nil, err
	}
	currency, err := s.currencyRepo.FindByCode(ctx, order.CurrencyCode)
	if err != nil {
		return nil, nil, err
	}
	invoice, err := finance.NewInvoice(order.TenantID, order.ID, order.OrderNumber, order.CustomerID, order.CustomerName, order.CurrencyCode, header.JournalID)
	if err != nil {
		return nil, nil, err
	}
	invoice.SetPayNowJournal(header.PayNowJournalID)
	return invoice, currency, nil
}

func (s *InvoicingService) saveCreated(ctx context.Context, order *trade.SalesOrder, invoice *finance.Invoice) error {
	invoice.AddDomainEvent(finance.NewInvoiceCreatedEvent(invoice))
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return err
	}
	return s.publish(ctx, invoice)
}

func (s *InvoicingService) loadTaxes(ctx context.Context, tenantID uuid.UUID, lines []*trade.SalesOrderLine) (map[uuid.UUID]finance.Tax, error) {
	ids := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)
	for _, line := range lines {
		for _, id := range line.TaxIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	taxes := make(map[uuid.UUID]finance.Tax, len(ids))
	if len(ids) == 0 {
		return taxes, nil
	}
	found, err := s.taxRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	for _, tax := range found {
		taxes[tax.ID] = tax
	}
	return taxes, nil
}

func (s *InvoicingService) publish(ctx context.Context, invoice *finance.Invoice) error {
	events := invoice.GetDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return nil
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		return err
	}
	invoice.ClearDomainEvents()
	return nil
}

func pickTaxes(taxes map[uuid.UUID]finance.Tax, ids []uuid.UUID) []finance.Tax {
	picked := make([]finance.Tax, 0, len(ids))
	for _, id := range ids {
		if tax, ok := taxes[id]; ok {
			picked = append(picked, tax)
		}
	}
	return picked
}
