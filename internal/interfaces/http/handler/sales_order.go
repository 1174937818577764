package handler

import (
	"context"

	mailapp "github.com/erp/saleflow/internal/application/mail"
	tradeapp "github.com/erp/saleflow/internal/application/trade"
	"github.com/erp/saleflow/internal/domain/mail"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalesOrderService is the part of the sales order application service used over HTTP
type SalesOrderService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req tradeapp.CreateSalesOrderRequest) (*tradeapp.SalesOrderResponse, error)
	GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*tradeapp.SalesOrderResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter tradeapp.SalesOrderListFilter) ([]tradeapp.SalesOrderListItemResponse, int64, error)
	Cancel(ctx context.Context, tenantID, orderID uuid.UUID) (*tradeapp.SalesOrderResponse, error)
}

// OrderAutomation confirms orders and runs the sale type automations
type OrderAutomation interface {
	Confirm(ctx context.Context, tenantID, orderID uuid.UUID) (*tradeapp.ConfirmResponse, error)
	RunInvoicingAutomation(ctx context.Context, tenantID uuid.UUID, orderIDs []uuid.UUID) error
	RunPickingAutomation(ctx context.Context, tenantID uuid.UUID, orderIDs []uuid.UUID) (*tradeapp.AutomationResult, error)
}

// MessageLister lists the chatter messages of a record
type MessageLister interface {
	List(ctx context.Context, tenantID uuid.UUID, resModel string, resID uuid.UUID) ([]mailapp.MessageResponse, error)
}

// SalesOrderHandler handles sales order-related API endpoints
type SalesOrderHandler struct {
	BaseHandler
	orderService SalesOrderService
	automation   OrderAutomation
	messages     MessageLister
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orderService SalesOrderService, automation OrderAutomation, messages MessageLister) *SalesOrderHandler {
	return &SalesOrderHandler{
		orderService: orderService,
		automation:   automation,
		messages:     messages,
	}
}

// Create godoc
// @Summary      Create a quotation
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body tradeapp.CreateSalesOrderRequest true "Quotation"
// @Success      201 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales-orders [post]
func (h *SalesOrderHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}

	var req tradeapp.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get sales order by ID
// @Tags         sales-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales-orders/{id} [get]
func (h *SalesOrderHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List godoc
// @Summary      List sales orders
// @Tags         sales-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        type_id query string false "Sale order type ID" format(uuid)
// @Param        status query string false "Status" Enums(draft, sale, done, cancel)
// @Success      200 {object} dto.Response{data=[]tradeapp.SalesOrderListItemResponse,meta=dto.Meta}
// @Router       /sales-orders [get]
func (h *SalesOrderHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}

	var filter tradeapp.SalesOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		filter.CustomerID = &customerID
	}
	if raw := c.Query("type_id"); raw != "" {
		typeID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid type ID format")
			return
		}
		filter.TypeID = &typeID
	}

	orders, total, err := h.orderService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Confirm godoc
// @Summary      Confirm a quotation
// @Description  Confirms the order, creates its delivery and runs the automations of its sale type
// @Tags         sales-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.ConfirmResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales-orders/{id}/confirm [post]
func (h *SalesOrderHandler) Confirm(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "id", "order")
	if !ok {
		return
	}

	result, err := h.automation.Confirm(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel godoc
// @Summary      Cancel a sales order
// @Tags         sales-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Router       /sales-orders/{id}/cancel [post]
func (h *SalesOrderHandler) Cancel(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// RunInvoicingAutomation godoc
// @Summary      Run the invoicing automation of the given orders
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body tradeapp.RunAutomationRequest true "Orders"
// @Success      200 {object} dto.Response
// @Router       /sales-orders/automation/invoicing [post]
func (h *SalesOrderHandler) RunInvoicingAutomation(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}

	var req tradeapp.RunAutomationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.automation.RunInvoicingAutomation(c.Request.Context(), tenantID, req.OrderIDs); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"order_ids": req.OrderIDs})
}

// RunPickingAutomation godoc
// @Summary      Run the picking automation of the given orders
// @Description  Returns the report actions to print, if any
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body tradeapp.RunAutomationRequest true "Orders"
// @Success      200 {object} dto.Response{data=tradeapp.AutomationResult}
// @Router       /sales-orders/automation/picking [post]
func (h *SalesOrderHandler) RunPickingAutomation(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}

	var req tradeapp.RunAutomationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.automation.RunPickingAutomation(c.Request.Context(), tenantID, req.OrderIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Messages godoc
// @Summary      List the chatter messages of a sales order
// @Tags         sales-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]mailapp.MessageResponse}
// @Router       /sales-orders/{id}/messages [get]
func (h *SalesOrderHandler) Messages(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "id", "order")
	if !ok {
		return
	}

	messages, err := h.messages.List(c.Request.Context(), tenantID, mail.ResModelSalesOrder, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, messages)
}
