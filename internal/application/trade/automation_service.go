package trade

import (
	"context"
	"fmt"
	"strings"

	financeapp "github.com/erp/saleflow/internal/application/finance"
	inventoryapp "github.com/erp/saleflow/internal/application/inventory"
	mailapp "github.com/erp/saleflow/internal/application/mail"
	"github.com/erp/saleflow/internal/domain/finance"
	"github.com/erp/saleflow/internal/domain/inventory"
	"github.com/erp/saleflow/internal/domain/mail"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client action types returned by the automation
const (
	ActionTypeMulti  = "ir.actions.act_multi"
	ActionTypeReport = "ir.actions.report"

	// VoucherReportName is the report printed for pickings of a book that requires vouchers
	VoucherReportName = "stock.report_picking_voucher"
)

// AutomationService runs the invoicing and picking automation configured on sale order types
type AutomationService struct {
	txManager      shared.TransactionManager
	orderRepo      trade.SalesOrderRepository
	typeRepo       trade.SaleOrderTypeRepository
	bookRepo       inventory.StockBookRepository
	procurement    *inventoryapp.ProcurementService
	invoicing      *financeapp.InvoicingService
	chatter        *mailapp.ChatterService
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAutomationService creates a new AutomationService
func NewAutomationService(
	txManager shared.TransactionManager,
	orderRepo trade.SalesOrderRepository,
	typeRepo trade.SaleOrderTypeRepository,
	bookRepo inventory.StockBookRepository,
	procurement *inventoryapp.ProcurementService,
	invoicing *financeapp.InvoicingService,
	chatter *mailapp.ChatterService,
	logger *zap.Logger,
) *AutomationService {
	return &AutomationService{
		txManager:   txManager,
		orderRepo:   orderRepo,
		typeRepo:    typeRepo,
		bookRepo:    bookRepo,
		procurement: procurement,
		invoicing:   invoicing,
		chatter:     chatter,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *AutomationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Confirm confirms a quotation and runs the automation of its type:
// procurement, then pickings, then invoices, then the lock when the type asks for it.
func (s *AutomationService) Confirm(ctx context.Context, tenantID, orderID uuid.UUID) (*ConfirmResponse, error) {
	var response ConfirmResponse
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.FindByIDForTenant(txCtx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := order.Confirm(); err != nil {
			return err
		}
		if _, err := s.procurement.Launch(txCtx, order); err != nil {
			return err
		}
		if err := s.orderRepo.Save(txCtx, order); err != nil {
			return err
		}

		orders := []*trade.SalesOrder{order}
		types, err := s.loadTypes(txCtx, tenantID, orders)
		if err != nil {
			return err
		}
		result, err := s.runPickingAutomation(txCtx, orders, types)
		if err != nil {
			return err
		}
		if err := s.runInvoicingAutomation(txCtx, orders, types); err != nil {
			return err
		}

		if orderType := types[typeKey(order)]; orderType != nil && orderType.SetDoneOnConfirmation {
			if err := order.Done(); err != nil {
				return err
			}
		}
		if err := s.orderRepo.Save(txCtx, order); err != nil {
			return err
		}
		if err := s.publish(txCtx, order); err != nil {
			return err
		}

		response = ConfirmResponse{Order: ToSalesOrderResponse(order), Result: *result}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sales order confirmed",
		zap.String("order_number", response.Order.OrderNumber),
		zap.String("status", response.Order.Status),
		zap.Int("print_actions", len(response.Result.Actions)),
	)
	return &response, nil
}

// RunInvoicingAutomation creates, and depending on the type validates, the invoices of the orders
func (s *AutomationService) RunInvoicingAutomation(ctx context.Context, tenantID uuid.UUID, orderIDs []uuid.UUID) error {
	return s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		orders, err := s.loadOrders(txCtx, tenantID, orderIDs)
		if err != nil {
			return err
		}
		types, err := s.loadTypes(txCtx, tenantID, orders)
		if err != nil {
			return err
		}
		return s.runInvoicingAutomation(txCtx, orders, types)
	})
}

// RunPickingAutomation validates the open pickings of the orders and returns the vouchers to print
func (s *AutomationService) RunPickingAutomation(ctx context.Context, tenantID uuid.UUID, orderIDs []uuid.UUID) (*AutomationResult, error) {
	var result *AutomationResult
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		orders, err := s.loadOrders(txCtx, tenantID, orderIDs)
		if err != nil {
			return err
		}
		types, err := s.loadTypes(txCtx, tenantID, orders)
		if err != nil {
			return err
		}
		result, err = s.runPickingAutomation(txCtx, orders, types)
		if err != nil {
			return err
		}
		for _, order := range orders {
			if err := s.orderRepo.Save(txCtx, order); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *AutomationService) runInvoicingAutomation(ctx context.Context, orders []*trade.SalesOrder, types map[uuid.UUID]*trade.SaleOrderType) error {
	for _, order := range orders {
		orderType := types[typeKey(order)]
		if orderType == nil || !orderType.InvoicingAutomation.Enabled() {
			continue
		}
		if !order.HasQtyToInvoice() {
			s.logger.Warn("Nothing to invoice", zap.String("order_number", order.OrderNumber))
			continue
		}

		invoices, err := s.invoicing.CreateInvoices(ctx, []*trade.SalesOrder{order}, true)
		if err != nil {
			return err
		}
		if len(invoices) == 0 {
			continue
		}

		switch orderType.InvoicingAutomation {
		case trade.InvoicingAutomationValidate:
			for _, invoice := range invoices {
				if err := s.invoicing.OpenInvoice(ctx, invoice); err != nil {
					return err
				}
			}
		case trade.InvoicingAutomationTryValidate:
			for _, invoice := range invoices {
				if err := s.invoicing.OpenInvoice(ctx, invoice); err != nil {
					if err := s.reportValidationFailure(ctx, order, invoices, err); err != nil {
						return err
					}
					break
				}
			}
		}
	}
	return nil
}

// reportValidationFailure leaves a note on the invoices and the order when they could not be validated
func (s *AutomationService) reportValidationFailure(ctx context.Context, order *trade.SalesOrder, invoices []*finance.Invoice, cause error) error {
	ids := make([]uuid.UUID, len(invoices))
	for i, invoice := range invoices {
		ids[i] = invoice.ID
	}
	message := ValidationFailureMessage(ids, cause)

	s.logger.Warn("Automatic invoice validation failed",
		zap.String("order_number", order.OrderNumber),
		zap.Error(cause),
	)
	for _, invoice := range invoices {
		if err := s.chatter.Post(ctx, order.TenantID, mail.ResModelInvoice, invoice.ID, message, mail.LevelWarning); err != nil {
			return err
		}
	}
	if err := s.chatter.Post(ctx, order.TenantID, mail.ResModelSalesOrder, order.ID, message, mail.LevelWarning); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		event := finance.NewInvoiceValidationFailedEvent(order.TenantID, order.ID, ids, cause.Error())
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// ValidationFailureMessage is the note posted when created invoices could not be validated
func ValidationFailureMessage(invoiceIDs []uuid.UUID, cause error) string {
	ids := make([]string, len(invoiceIDs))
	for i, id := range invoiceIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("We couldn't validate the automatically created invoices (ids [%s]), "+
		"you will need to validate them manually. This is what we get: %s",
		strings.Join(ids, ", "), cause.Error())
}

func (s *AutomationService) runPickingAutomation(ctx context.Context, orders []*trade.SalesOrder, types map[uuid.UUID]*trade.SaleOrderType) (*AutomationResult, error) {
	result := &AutomationResult{Actions: make([]PrintAction, 0)}
	for _, order := range orders {
		orderType := types[typeKey(order)]
		if orderType == nil || !orderType.PickingAutomation.Enabled() || order.ProcurementGroupID == nil {
			continue
		}
		actions, err := s.processPickings(ctx, order, orderType)
		if err != nil {
			return nil, err
		}
		result.Actions = append(result.Actions, actions...)
	}
	if result.HasActions() {
		result.Type = ActionTypeMulti
	}
	return result, nil
}

func (s *AutomationService) processPickings(ctx context.Context, order *trade.SalesOrder, orderType *trade.SaleOrderType) ([]PrintAction, error) {
	pickings, err := s.procurement.OpenPickings(ctx, order)
	if err != nil {
		return nil, err
	}
	if len(pickings) == 0 {
		return nil, nil
	}

	if orderType.BookID != nil {
		book, err := s.bookRepo.FindByIDForTenant(ctx, order.TenantID, *orderType.BookID)
		if err != nil {
			return nil, err
		}
		for _, picking := range pickings {
			if err := picking.SetBook(book); err != nil {
				return nil, err
			}
		}
	}

	if !s.procurement.ReservesOnCreate() {
		if err := s.procurement.Reserve(ctx, order.TenantID, pickings); err != nil {
			return nil, err
		}
	}

	actions := make([]PrintAction, 0)
	for _, picking := range assignedFirst(pickings) {
		switch orderType.PickingAutomation {
		case trade.PickingAutomationValidate:
			if err := picking.ForceAvailability(); err != nil {
				return nil, err
			}
		case trade.PickingAutomationValidateNoForce:
			if missing := picking.UnavailableProducts(); len(missing) > 0 {
				return nil, shared.NewDomainError("PRODUCTS_NOT_AVAILABLE", fmt.Sprintf(
					"The following products are not available, we suggest to check stock "+
						"or to use a sale type that force availability.\nProducts:\n* %s",
					strings.Join(missing, "\n* ")))
			}
			picking.FillQtyDone()
		}

		if err := s.procurement.Validate(ctx, picking); err != nil {
			return nil, err
		}
		for _, move := range picking.Moves {
			if move.State != inventory.PickingStateDone || move.SaleLineID == nil {
				continue
			}
			if err := order.RecordDelivery(*move.SaleLineID, move.QtyDone); err != nil {
				return nil, err
			}
		}

		if picking.BookRequired() {
			actions = append(actions, PrintAction{
				Type:       ActionTypeReport,
				ReportName: VoucherReportName,
				ResModel:   mail.ResModelPicking,
				ResID:      picking.ID,
				Name:       picking.Name,
			})
		}
	}
	return actions, nil
}

// assignedFirst orders the pickings ready to ship before the others, keeping their relative order
func assignedFirst(pickings []*inventory.Picking) []*inventory.Picking {
	ordered := make([]*inventory.Picking, 0, len(pickings))
	for _, picking := range pickings {
		if picking.IsAssigned() {
			ordered = append(ordered, picking)
		}
	}
	for _, picking := range pickings {
		if !picking.IsAssigned() {
			ordered = append(ordered, picking)
		}
	}
	return ordered
}

func (s *AutomationService) loadOrders(ctx context.Context, tenantID uuid.UUID, orderIDs []uuid.UUID) ([]*trade.SalesOrder, error) {
	orderIDs = shared.UniqueIDs(orderIDs)
	found, err := s.orderRepo.FindByIDs(ctx, tenantID, orderIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(orderIDs) {
		return nil, shared.ErrNotFound
	}
	orders := make([]*trade.SalesOrder, len(found))
	for i := range found {
		orders[i] = &found[i]
	}
	return orders, nil
}

func (s *AutomationService) loadTypes(ctx context.Context, tenantID uuid.UUID, orders []*trade.SalesOrder) (map[uuid.UUID]*trade.SaleOrderType, error) {
	types := make(map[uuid.UUID]*trade.SaleOrderType)
	for _, order := range orders {
		if order.TypeID == nil {
			continue
		}
		if _, ok := types[*order.TypeID]; ok {
			continue
		}
		orderType, err := s.typeRepo.FindByIDForTenant(ctx, tenantID, *order.TypeID)
		if err != nil {
			return nil, err
		}
		types[orderType.ID] = orderType
	}
	return types, nil
}

// typeKey returns the map key of an order's type; orders without type map to uuid.Nil, which is never set
func typeKey(order *trade.SalesOrder) uuid.UUID {
	if order.TypeID == nil {
		return uuid.Nil
	}
	return *order.TypeID
}

func (s *AutomationService) publish(ctx context.Context, order *trade.SalesOrder) error {
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
