// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"

	"github.com/finance-tracker/lucapp/config"
	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/application/usecase/auth"
	"github.com/finance-tracker/lucapp/internal/application/usecase/dashboard"
	"github.com/finance-tracker/lucapp/internal/application/usecase/statistics"
	"github.com/finance-tracker/lucapp/internal/application/usecase/transaction"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
	"github.com/finance-tracker/lucapp/internal/infra/server/router"
	"github.com/finance-tracker/lucapp/internal/integration/adapters"
	"github.com/finance-tracker/lucapp/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/lucapp/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/lucapp/internal/integration/persistence"
	"github.com/finance-tracker/lucapp/internal/integration/worker"
)

// Options carries the collaborators that differ between production and tests.
type Options struct {
	Store         adapter.KeyValueStore
	StorageDriver string
	HealthCheck   func() bool
	Clock         adapter.Clock
}

// Injector holds all application dependencies.
type Injector struct {
	Config          *config.Config
	Router          *router.Router
	MigrationWorker *worker.MigrationWorker
	Engine          *statistics.Engine
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, opts Options) (*Injector, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("key-value store: %w", domainerror.ErrMissingCollaborator)
	}
	clock := opts.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}
	location := cfg.Locale.Location()

	// Create repositories
	userRepo := persistence.NewUserRepository(opts.Store, cfg.Storage.KeyPrefix)
	transactionRepo := persistence.NewTransactionRepository(opts.Store, cfg.Storage.KeyPrefix, location)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, clock)
	formatter := adapters.NewLabelFormatter(cfg.Locale.Language, cfg.Locale.Currency)

	// Create statistics engine
	resolver, err := statistics.NewResolver(clock, formatter, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create period resolver: %w", err)
	}
	engine, err := statistics.NewEngine(resolver, formatter)
	if err != nil {
		return nil, fmt.Errorf("failed to create statistics engine: %w", err)
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, clock)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, location)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, clock)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	migrateLegacyUseCase := transaction.NewMigrateLegacyUseCase(transactionRepo)

	// Create statistics use cases
	getStatisticsUseCase := statistics.NewGetStatisticsUseCase(transactionRepo, engine)
	comparePeriodsUseCase := statistics.NewComparePeriodsUseCase(transactionRepo, engine)
	getTrendUseCase := statistics.NewGetTrendUseCase(transactionRepo, engine, cfg.Statistics.TrendWindow)
	getTopCategoriesUseCase := statistics.NewGetTopCategoriesUseCase(transactionRepo, engine, cfg.Statistics.TopCategoryLimit)
	exportStatisticsUseCase := statistics.NewExportStatisticsUseCase(transactionRepo, engine)

	// Create dashboard use cases
	monthlyDashboardUseCase := dashboard.NewGetMonthlyDashboardUseCase(transactionRepo, engine, formatter)

	// Create controllers
	healthController := controller.NewHealthController(opts.StorageDriver, opts.HealthCheck)
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		deleteTransactionUseCase,
		migrateLegacyUseCase,
		location,
	)
	statisticsController := controller.NewStatisticsController(
		getStatisticsUseCase,
		comparePeriodsUseCase,
		getTrendUseCase,
		getTopCategoriesUseCase,
		exportStatisticsUseCase,
		resolver,
	)
	dashboardController := controller.NewDashboardController(monthlyDashboardUseCase)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.LoginAttempts, cfg.RateLimit.Window)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		transactionController,
		statisticsController,
		dashboardController,
		loginRateLimiter,
		authMiddleware,
	)

	// Create background workers
	migrationWorker := worker.NewMigrationWorker(userRepo, migrateLegacyUseCase, worker.WorkerConfig{
		Schedule: cfg.Worker.Schedule,
		Location: location,
		Timeout:  cfg.Worker.Timeout,
	})

	return &Injector{
		Config:          cfg,
		Router:          r,
		MigrationWorker: migrationWorker,
		Engine:          engine,
	}, nil
}
