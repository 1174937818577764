package handler

import (
	"context"
	"strconv"
	"strings"

	quotationapp "github.com/erp/saleflow/internal/application/quotation"
	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuotationProductService edits product quantities from within a quotation
type QuotationProductService interface {
	ComputeQuantities(ctx context.Context, tenantID uuid.UUID, orderID *uuid.UUID, productIDs []uuid.UUID) ([]quotationapp.ProductQuantityResponse, error)
	Write(ctx context.Context, tenantID uuid.UUID, orderID *uuid.UUID, quotationContext bool, productID uuid.UUID, req quotationapp.WriteProductRequest) (*quotationapp.ProductResponse, error)
	ProductFormAction(ctx context.Context, tenantID, productID uuid.UUID) (*quotationapp.WindowAction, error)
	ProductView(ctx context.Context, tenantID uuid.UUID, viewType string, quotationContext bool) (*quotationapp.ViewResponse, error)
	SaveProductView(ctx context.Context, tenantID uuid.UUID, viewType, arch string) (*quotationapp.ViewResponse, error)
}

// SaveViewRequest replaces the stored arch of a product view
type SaveViewRequest struct {
	ViewType string `json:"view_type" binding:"required,oneof=tree form"`
	Arch     string `json:"arch" binding:"required"`
}

// QuotationHandler handles product selection inside quotations
type QuotationHandler struct {
	BaseHandler
	productService QuotationProductService
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(productService QuotationProductService) *QuotationHandler {
	return &QuotationHandler{productService: productService}
}

// ProductQuantities godoc
// @Summary      Quantities of products in a quotation
// @Tags         quotations
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Quotation ID" format(uuid)
// @Param        product_ids query string true "Comma separated product IDs"
// @Success      200 {object} dto.Response{data=[]quotationapp.ProductQuantityResponse}
// @Router       /quotations/{id}/products [get]
func (h *QuotationHandler) ProductQuantities(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "id", "quotation")
	if !ok {
		return
	}
	productIDs, err := parseUUIDList(c.QueryArray("product_ids"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	quantities, err := h.productService.ComputeQuantities(c.Request.Context(), tenantID, &orderID, productIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quantities)
}

// WriteQuotationProduct godoc
// @Summary      Write a product from a quotation
// @Description  A qty alone only changes the quotation lines
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Quotation ID" format(uuid)
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        request body quotationapp.WriteProductRequest true "Values"
// @Success      200 {object} dto.Response{data=quotationapp.ProductResponse}
// @Router       /quotations/{id}/products/{product_id} [put]
func (h *QuotationHandler) WriteQuotationProduct(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "id", "quotation")
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "product_id", "product")
	if !ok {
		return
	}

	var req quotationapp.WriteProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.productService.Write(c.Request.Context(), tenantID, &orderID, true, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ProductView godoc
// @Summary      Product view arch
// @Tags         quotations
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        view_type query string false "View type" Enums(tree, form)
// @Param        quotation query bool false "Adapt the view for quotation editing"
// @Success      200 {object} dto.Response{data=quotationapp.ViewResponse}
// @Router       /quotations/products/view [get]
func (h *QuotationHandler) ProductView(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}
	quotationContext, err := parseFlag(c.Query("quotation"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation flag")
		return
	}

	view, err := h.productService.ProductView(c.Request.Context(), tenantID, c.DefaultQuery("view_type", catalog.ViewTypeTree), quotationContext)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// SaveProductView godoc
// @Summary      Replace a product view arch
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body SaveViewRequest true "View"
// @Success      200 {object} dto.Response{data=quotationapp.ViewResponse}
// @Router       /products/view [put]
func (h *QuotationHandler) SaveProductView(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}

	var req SaveViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	view, err := h.productService.SaveProductView(c.Request.Context(), tenantID, req.ViewType, req.Arch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// WriteProduct godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Product ID" format(uuid)
// @Param        order_id query string false "Active quotation" format(uuid)
// @Param        quotation query bool false "Quotation context"
// @Param        request body quotationapp.WriteProductRequest true "Values"
// @Success      200 {object} dto.Response{data=quotationapp.ProductResponse}
// @Router       /products/{id} [patch]
func (h *QuotationHandler) WriteProduct(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "id", "product")
	if !ok {
		return
	}
	quotationContext, err := parseFlag(c.Query("quotation"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation flag")
		return
	}
	var orderID *uuid.UUID
	if raw := c.Query("order_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid order ID format")
			return
		}
		orderID = &id
	}

	var req quotationapp.WriteProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.productService.Write(c.Request.Context(), tenantID, orderID, quotationContext, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ProductFormAction godoc
// @Summary      Action opening the product form
// @Tags         products
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=quotationapp.WindowAction}
// @Router       /products/{id}/form-action [get]
func (h *QuotationHandler) ProductFormAction(c *gin.Context) {
	tenantID, ok := h.tenantOrAbort(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "id", "product")
	if !ok {
		return
	}

	action, err := h.productService.ProductFormAction(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, action)
}

// parseUUIDList accepts repeated and comma separated values
func parseUUIDList(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func parseFlag(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
