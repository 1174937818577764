package router

import (
	"github.com/erp/saleflow/internal/infrastructure/config"
	"github.com/erp/saleflow/internal/infrastructure/logger"
	"github.com/erp/saleflow/internal/interfaces/http/handler"
	"github.com/erp/saleflow/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by New
type Handlers struct {
	System        *handler.SystemHandler
	SaleOrderType *handler.SaleOrderTypeHandler
	SalesOrder    *handler.SalesOrderHandler
	Quotation     *handler.QuotationHandler
	Finance       *handler.FinanceHandler
}

// New builds the gin engine with the request logging, recovery, body limit and tenant
// middleware and every API route mounted under /api/v1.
func New(log *zap.Logger, cfg config.HTTPConfig, h Handlers) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.BodyLimit(cfg.MaxBodyBytes),
		middleware.TenantMiddlewareWithConfig(middleware.TenantMiddlewareConfig{
			SkipPaths: middleware.DefaultTenantConfig().SkipPaths,
			Logger:    log,
		}),
	)

	NewRouter(engine, WithLogger(log)).Register(DomainGroups(h)...).Setup()
	return engine
}

// DomainGroups returns the route groups of every resource
func DomainGroups(h Handlers) []RouteRegistrar {
	health := NewDomainGroup("system", "/health").
		GET("", h.System.Health)

	orderTypes := NewDomainGroup("sale-order-types", "/sale-order-types").
		POST("", h.SaleOrderType.Create).
		GET("", h.SaleOrderType.List).
		GET("/:id", h.SaleOrderType.GetByID)

	orders := NewDomainGroup("sales-orders", "/sales-orders").
		POST("", h.SalesOrder.Create).
		GET("", h.SalesOrder.List).
		GET("/:id", h.SalesOrder.GetByID).
		POST("/:id/confirm", h.SalesOrder.Confirm).
		POST("/:id/cancel", h.SalesOrder.Cancel).
		GET("/:id/messages", h.SalesOrder.Messages)
	orders.Group("automation", "/automation").
		POST("/invoicing", h.SalesOrder.RunInvoicingAutomation).
		POST("/picking", h.SalesOrder.RunPickingAutomation)

	quotations := NewDomainGroup("quotations", "/quotations").
		GET("/:id/products", h.Quotation.ProductQuantities).
		PUT("/:id/products/:product_id", h.Quotation.WriteQuotationProduct).
		GET("/products/view", h.Quotation.ProductView)

	products := NewDomainGroup("products", "/products").
		PUT("/view", h.Quotation.SaveProductView).
		PATCH("/:id", h.Quotation.WriteProduct).
		GET("/:id/form-action", h.Quotation.ProductFormAction)

	downPayments := NewDomainGroup("down-payments", "/down-payments").
		POST("/amount-total", h.Finance.AmountTotal).
		POST("/inverse", h.Finance.InverseAmountTotal).
		POST("/invoices", h.Finance.CreateDownPaymentInvoices)

	invoices := NewDomainGroup("invoices", "/invoices").
		POST("/:id/open", h.Finance.OpenInvoice).
		GET("/:id/messages", h.Finance.InvoiceMessages)

	return []RouteRegistrar{health, orderTypes, orders, quotations, products, downPayments, invoices}
}
