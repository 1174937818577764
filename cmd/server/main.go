package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/erp/saleflow/internal/application/catalog"
	financeapp "github.com/erp/saleflow/internal/application/finance"
	inventoryapp "github.com/erp/saleflow/internal/application/inventory"
	mailapp "github.com/erp/saleflow/internal/application/mail"
	quotationapp "github.com/erp/saleflow/internal/application/quotation"
	tradeapp "github.com/erp/saleflow/internal/application/trade"
	"github.com/erp/saleflow/internal/infrastructure/cache"
	"github.com/erp/saleflow/internal/infrastructure/config"
	"github.com/erp/saleflow/internal/infrastructure/event"
	"github.com/erp/saleflow/internal/infrastructure/logger"
	"github.com/erp/saleflow/internal/infrastructure/persistence"
	"github.com/erp/saleflow/internal/interfaces/http/handler"
	"github.com/erp/saleflow/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Saleflow API
//	@version		1.0
//	@description	Sales order automation, quotation editing and down payment invoicing
//	@BasePath		/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.ConfigForEnvironment(cfg.App.Env)
	logCfg.Level = cfg.Log.Level
	if cfg.Log.Format != "" {
		logCfg.Format = cfg.Log.Format
	}
	logCfg.Output = cfg.Log.Output
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting saleflow",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Strings("modules", cfg.Modules.Installed),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	txManager := persistence.NewGormTransactionManager(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	uomRepo := persistence.NewGormUnitOfMeasureRepository(db.DB)
	viewRepo := persistence.NewGormViewRepository(db.DB)
	orderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	typeRepo := persistence.NewGormSaleOrderTypeRepository(db.DB)
	pickingRepo := persistence.NewGormPickingRepository(db.DB)
	bookRepo := persistence.NewGormStockBookRepository(db.DB)
	quantRepo := persistence.NewGormStockQuantRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	taxRepo := persistence.NewGormTaxRepository(db.DB)
	journalRepo := persistence.NewGormJournalRepository(db.DB)
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Domain events are written to the outbox inside the business transaction
	// and dispatched to the bus by the outbox processor.
	serializer := event.NewRegisteredSerializer()
	outboxPublisher := event.NewOutboxPublisher(outboxRepo, serializer)
	eventBus := event.NewInMemoryEventBus(log)

	// Application services
	converter := catalogapp.NewUomConverter(uomRepo)
	chatterService := mailapp.NewChatterService(messageRepo)
	typeService := tradeapp.NewSaleOrderTypeService(typeRepo)

	orderService := tradeapp.NewSalesOrderService(orderRepo, typeRepo, productRepo, log)
	orderService.SetEventPublisher(outboxPublisher)

	procurementService := inventoryapp.NewProcurementService(
		txManager, pickingRepo, quantRepo, productRepo, converter,
		cfg.Modules.IsInstalled(config.ModuleProcurementJIT), log,
	)
	procurementService.SetEventPublisher(outboxPublisher)

	invoicingService := financeapp.NewInvoicingService(
		txManager, invoiceRepo, orderRepo, typeRepo, journalRepo, taxRepo, currencyRepo, log,
	)
	invoicingService.SetEventPublisher(outboxPublisher)

	automationService := tradeapp.NewAutomationService(
		txManager, orderRepo, typeRepo, bookRepo, procurementService, invoicingService, chatterService, log,
	)
	automationService.SetEventPublisher(outboxPublisher)

	downPaymentService := financeapp.NewDownPaymentService(txManager, orderRepo, taxRepo, currencyRepo, invoicingService, log)

	viewCache := cache.NewViewCache(cfg.Redis, log)
	productService := quotationapp.NewProductService(txManager, orderRepo, productRepo, viewRepo, viewCache, converter, log)

	// Event handlers
	eventBus.Subscribe(mailapp.NewChatterHandler(chatterService, log))
	if cfg.Kafka.Enabled {
		forwarder := event.NewKafkaForwarder(event.NewKafkaWriter(cfg.Kafka), serializer, log)
		eventBus.Subscribe(forwarder)
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Error("Error closing Kafka writer", zap.Error(err))
			}
		}()
		log.Info("Forwarding domain events to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	if err := eventBus.Start(rootCtx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	processor := event.NewOutboxProcessor(outboxRepo, eventBus, serializer, event.OutboxProcessorConfigFrom(cfg.Event), log)
	if cfg.Event.ProcessorEnabled {
		if err := processor.Start(rootCtx); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
	} else {
		log.Warn("Outbox processor disabled, domain events stay pending")
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.New(log, cfg.HTTP, router.Handlers{
		System:        handler.NewSystemHandler(cfg.App.Name, db),
		SaleOrderType: handler.NewSaleOrderTypeHandler(typeService),
		SalesOrder:    handler.NewSalesOrderHandler(orderService, automationService, chatterService),
		Quotation:     handler.NewQuotationHandler(productService),
		Finance:       handler.NewFinanceHandler(downPaymentService, invoicingService, chatterService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if cfg.Event.ProcessorEnabled {
		if err := processor.Stop(ctx); err != nil {
			log.Error("Outbox processor did not stop in time", zap.Error(err))
		}
	}
	if err := eventBus.Stop(ctx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
