package handler

import (
	"context"

	tradeapp "github.com/erp/saleflow/internal/application/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleOrderTypeService manages sale order types
type SaleOrderTypeService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req tradeapp.CreateSaleOrderTypeRequest) (*tradeapp.SaleOrderTypeResponse, error)
	GetByID(ctx context.Context, tenantID, typeID uuid.UUID) (*tradeapp.SaleOrderTypeResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter tradeapp.SaleOrderTypeListFilter) ([]tradeapp.SaleOrderTypeResponse, error)
}

// SaleOrderTypeHandler handles sale order type endpoints
type SaleOrderTypeHandler struct {
	BaseHandler
	typeService SaleOrderTypeService
}

// NewSaleOrderTypeHandler creates a new SaleOrderTypeHandler
func NewSaleOrderTypeHandler(typeService SaleOrderTypeService) *SaleOrderTypeHandler {
	return &SaleOrderTypeHandler{typeService: typeService}
}

// Create godoc
// @Summary      Create a sale order type
// @Tags         sale-order-types
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body tradeapp.CreateSaleOrderTypeRequest true "Sale order type"
// @Success      201 {object} dto.Response{data=tradeapp.SaleOrderTypeResponse}
// @Router       /sale-order-types [post]
func (h *SaleOrderTypeHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}

	var req tradeapp.CreateSaleOrderTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	orderType, err := h.typeService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, orderType)
}

// GetByID godoc
// @Summary      Get a sale order type
// @Tags         sale-order-types
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sale order type ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.SaleOrderTypeResponse}
// @Router       /sale-order-types/{id} [get]
func (h *SaleOrderTypeHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}
	typeID, ok := h.uuidParam(c, "id", "type")
	if !ok {
		return
	}

	orderType, err := h.typeService.GetByID(c.Request.Context(), tenantID, typeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orderType)
}

// List godoc
// @Summary      List sale order types
// @Tags         sale-order-types
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Success      200 {object} dto.Response{data=[]tradeapp.SaleOrderTypeResponse}
// @Router       /sale-order-types [get]
func (h *SaleOrderTypeHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}

	var filter tradeapp.SaleOrderTypeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	types, err := h.typeService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, types)
}
