package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gamecp/provisioner/internal/config"
	"github.com/gamecp/provisioner/internal/database"
	"github.com/gamecp/provisioner/internal/handlers"
	"github.com/gamecp/provisioner/internal/logger"
	"github.com/gamecp/provisioner/internal/panel"
	"github.com/gamecp/provisioner/internal/queue"
	"github.com/gamecp/provisioner/internal/repository"
	"github.com/gamecp/provisioner/internal/router"
	"github.com/gamecp/provisioner/internal/services"
)

func main() {

	ctx := context.Background()

	// Load application configuration
	cfg := config.New()
	logger.Init(cfg.LogLevel)
	log.Println("Configuration loaded successfully")

	// Optional per-product game catalog
	catalog, err := config.LoadGameCatalog(cfg.GameCatalogPath)
	if err != nil {
		log.Fatalf("Failed to load game catalog: %v", err)
	}
	if cfg.GameCatalogPath != "" {
		log.Printf("Game catalog loaded from %s (%d products)", cfg.GameCatalogPath, len(catalog.Products))
	}

	// Billing store client
	dbClient, err := database.NewClient(ctx, cfg.AWSRegion)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}
	for _, table := range []string{
		cfg.ServicesTableName,
		cfg.PanelServersTableName,
		cfg.ProductsTableName,
		cfg.CallLogsTableName,
	} {
		dbClient.VerifyTable(ctx, table)
	}
	log.Println("DynamoDB client initialized successfully")

	// Billing store operations and repositories
	serviceRepo := repository.NewServiceRepository(
		database.NewServiceOperations(dbClient, cfg.ServicesTableName))
	panelServerRepo := repository.NewPanelServerRepository(
		database.NewPanelServerOperations(dbClient, cfg.PanelServersTableName))
	productRepo := repository.NewProductRepository(
		database.NewProductOperations(dbClient, cfg.ProductsTableName))
	callLogRepo := repository.NewCallLogRepository(
		database.NewCallLogOperations(dbClient, cfg.CallLogsTableName))
	log.Println("Repositories initialized with DynamoDB backend")

	// Call log queue and worker: call logging never blocks a hook
	callLogQueue := queue.NewCallLogQueue(cfg.CallLogBuffer)
	callLogWorker := queue.NewWorker(callLogQueue, callLogRepo)
	callLogWorker.Start()
	callLogger := services.NewCallLogger(callLogQueue)
	log.Println("Call log worker started")

	// Panel API gateway
	gateway := panel.NewClient(cfg.PanelConnectTimeout, cfg.PanelRequestTimeout, callLogger)

	// Orchestration services
	credResolver := services.NewCredentialResolver(panelServerRepo, productRepo)
	naming := services.NewNamingService(productRepo, catalog)
	provisioning := services.NewProvisioningService(gateway, serviceRepo, credResolver, naming, callLogger)
	lifecycle := services.NewLifecycleService(gateway, serviceRepo, credResolver, callLogger)
	status := services.NewStatusService(gateway, serviceRepo, credResolver)
	sso := services.NewSSOService(gateway, panelServerRepo, credResolver)
	tester := services.NewConnectionTester(gateway, credResolver)
	log.Println("Provisioning services initialized")

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	provisionHandler := handlers.NewProvisionHandler(serviceRepo, provisioning, lifecycle)
	statusHandler := handlers.NewStatusHandler(serviceRepo, status, lifecycle)
	ssoHandler := handlers.NewSSOHandler(serviceRepo, sso)
	panelHandler := handlers.NewPanelHandler(tester)
	log.Println("Handlers initialized")

	// Setup router
	r := router.Setup(cfg.HookTokenSecret, healthHandler, provisionHandler, statusHandler, ssoHandler, panelHandler)

	// Setup graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down gracefully...")

		// Stop accepting call log entries, then drain what is buffered
		callLogQueue.Close()
		callLogWorker.Wait()
		log.Println("Call log queue drained")

		os.Exit(0)
	}()

	// Start server
	log.Printf("Starting provisioning bridge on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
