package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/activity"
	activitydb "github.com/pradiptamal/crm-management/internal/activity/postgres"
	"github.com/pradiptamal/crm-management/internal/auth"
	authdb "github.com/pradiptamal/crm-management/internal/auth/postgres"
	"github.com/pradiptamal/crm-management/internal/catalog"
	catalogdb "github.com/pradiptamal/crm-management/internal/catalog/postgres"
	"github.com/pradiptamal/crm-management/internal/company"
	companydb "github.com/pradiptamal/crm-management/internal/company/postgres"
	"github.com/pradiptamal/crm-management/internal/contact"
	contactdb "github.com/pradiptamal/crm-management/internal/contact/postgres"
	"github.com/pradiptamal/crm-management/internal/contract"
	contractdb "github.com/pradiptamal/crm-management/internal/contract/postgres"
	"github.com/pradiptamal/crm-management/internal/core/events"
	"github.com/pradiptamal/crm-management/internal/customer"
	customerdb "github.com/pradiptamal/crm-management/internal/customer/postgres"
	"github.com/pradiptamal/crm-management/internal/deal"
	dealdb "github.com/pradiptamal/crm-management/internal/deal/postgres"
	"github.com/pradiptamal/crm-management/internal/functions"
	"github.com/pradiptamal/crm-management/internal/layout"
	layoutdb "github.com/pradiptamal/crm-management/internal/layout/postgres"
	"github.com/pradiptamal/crm-management/internal/permission"
	permissiondb "github.com/pradiptamal/crm-management/internal/permission/postgres"
	"github.com/pradiptamal/crm-management/internal/quote"
	quotedb "github.com/pradiptamal/crm-management/internal/quote/postgres"
	"github.com/pradiptamal/crm-management/internal/relationship"
	relationshipdb "github.com/pradiptamal/crm-management/internal/relationship/postgres"
	"github.com/pradiptamal/crm-management/internal/site"
	sitedb "github.com/pradiptamal/crm-management/internal/site/postgres"
	"github.com/pradiptamal/crm-management/internal/tenant"
	tenantdb "github.com/pradiptamal/crm-management/internal/tenant/postgres"
	"github.com/pradiptamal/crm-management/internal/transport/rest"
	"github.com/pradiptamal/crm-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config    *internal.Config
	DB        *sqlx.DB
	GormDB    *gorm.DB
	Router    *chi.Mux
	Functions *functions.Client
	Logger    *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		deps.Functions.Shutdown()
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	lg := deps.Logger
	gdb := deps.GormDB

	// Repositories
	authRepo := authdb.NewRepository(gdb)
	tenantRepo := tenantdb.NewTenantRepository(gdb)
	permissionRepo := permissiondb.NewPermissionRepository(gdb)
	relationshipRepo := relationshipdb.NewRelationshipRepository(gdb)
	dealRepo := dealdb.NewDealRepository(gdb)
	contractRepo := contractdb.NewContractRepository(gdb)
	siteRepo := sitedb.NewSiteRepository(gdb)
	companyRepo := companydb.NewCompanyRepository(gdb)
	contactRepo := contactdb.NewContactRepository(gdb)
	customerRepo := customerdb.NewCustomerRepository(gdb)
	catalogRepo := catalogdb.NewCatalogRepository(gdb)
	quoteRepo := quotedb.NewQuoteRepository(gdb)
	layoutRepo := layoutdb.NewLayoutRepository(gdb)
	activityRepo := activitydb.NewActivityRepository(gdb)

	// Event bus with the audit-log subscriber attached before anything publishes
	eventBus := events.NewEventBus(lg)
	activityService := activity.NewService(activityRepo, lg)
	activityService.RegisterSubscribers(eventBus)

	// Services
	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, cfg.Security.BCryptCost)
	tenantService := tenant.NewService(tenantRepo, deps.Functions, eventBus, lg)
	permissionResolver := permission.NewResolver(permissionRepo, lg)
	relationshipService := relationship.NewService(relationshipRepo, eventBus, lg)
	dealService := deal.NewService(dealRepo, eventBus, lg)
	contractService := contract.NewService(contractRepo, lg)
	siteService := site.NewService(siteRepo, lg)
	companyService := company.NewService(companyRepo, lg)
	contactService := contact.NewService(contactRepo, lg)
	customerService := customer.NewService(customerRepo, lg)
	catalogService := catalog.NewService(catalogRepo, lg)
	quoteService := quote.NewService(quoteRepo, catalogService, lg)
	layoutService := layout.NewService(layoutRepo, lg)

	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService),
		Tenant:       tenant.NewHandler(tenantService),
		Permission:   permission.NewHandler(permissionRepo),
		Relationship: relationship.NewHandler(relationshipService),
		Deal:         deal.NewHandler(dealService),
		Contract:     contract.NewHandler(contractService),
		Site:         site.NewHandler(siteService),
		Company:      company.NewHandler(companyService),
		Contact:      contact.NewHandler(contactService),
		Customer:     customer.NewHandler(customerService),
		Catalog:      catalog.NewHandler(catalogService),
		Quote:        quote.NewHandler(quoteService, tenantService),
		Layout:       layout.NewHandler(layoutService),
		Activity:     activity.NewHandler(activityService),
	}

	rbac := permission.NewRBACAuthorization(lg)
	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, tenantService, permissionResolver, rbac, lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over pgx connection: %w", err)
	}

	fnClient := functions.NewClient(functions.Config{
		BaseURL:       config.Functions.BaseURL,
		APIKey:        config.Functions.APIKey,
		InvokeTimeout: config.Functions.InvokeTimeout,
		MaxWorkers:    config.Functions.DispatchPool,
		JobQueueSize:  config.Functions.DispatchBuffer,
	}, logger.LoggerWrapper())

	return &Dependencies{
		Config:    config,
		Logger:    logger.LoggerWrapper(),
		DB:        db,
		GormDB:    gdb,
		Router:    chi.NewRouter(),
		Functions: fnClient,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
