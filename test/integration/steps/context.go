// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/lucapp/config"
	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/infra/dependency"
	"github.com/finance-tracker/lucapp/internal/integration/persistence"
	"github.com/finance-tracker/lucapp/internal/integration/persistence/model"
	"github.com/finance-tracker/lucapp/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken   string
	currentUserID string

	// Storage
	store    adapter.KeyValueStore
	driver   string
	db       *mock.Db
	timeMock *mock.Time

	// Config
	cfg *config.Config
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := &TestContext{
			requestHeaders: make(map[string]string),
			cfg:            testConfig(),
			timeMock:       mock.NewTime(),
		}

		if err := tc.openStore(sc); err != nil {
			return ctx, err
		}

		injector, err := dependency.NewInjector(tc.cfg, dependency.Options{
			Store:         tc.store,
			StorageDriver: tc.driver,
			HealthCheck:   func() bool { return true },
			Clock:         tc.timeMock,
		})
		if err != nil {
			return ctx, fmt.Errorf("failed to build application: %w", err)
		}

		tc.engine = injector.Router.Setup(tc.cfg.Server.Environment)
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerDataSteps(ctx)
	registerResponseSteps(ctx)
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = "integration-secret"
	cfg.Locale.Timezone = "America/Santiago"
	cfg.Locale.Currency = "CLP"
	cfg.Locale.Language = "es"
	cfg.Storage.KeyPrefix = "lucapp_test"
	cfg.RateLimit.LoginAttempts = 0
	cfg.Worker.Enabled = false
	return cfg
}

// openStore picks the backing store from the scenario tags. SQLite is the default.
func (tc *TestContext) openStore(sc *godog.Scenario) error {
	tc.driver = config.StorageDriverSQLite
	for _, tag := range sc.Tags {
		switch tag.Name {
		case "@memory":
			tc.driver = config.StorageDriverMemory
		case "@redis":
			tc.driver = config.StorageDriverRedis
		}
	}

	switch tc.driver {
	case config.StorageDriverMemory:
		tc.store = persistence.NewMemoryStore()
	case config.StorageDriverRedis:
		server, err := mock.SharedRedis()
		if err != nil {
			return err
		}
		server.Reset()
		tc.store = persistence.NewRedisStore(server.Client)
	default:
		tc.db = mock.NewDb(map[string]any{
			"kv_entries": &model.KVEntryModel{},
		})
		if err := tc.db.ClearDB(); err != nil {
			return err
		}
		tc.store = persistence.NewGormStore(tc.db.DbConn)
	}
	return nil
}
