package dependency

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finance-tracker/lucapp/config"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
	"github.com/finance-tracker/lucapp/internal/integration/persistence"
)

func TestNewInjector_RequiresStore(t *testing.T) {
	_, err := NewInjector(config.Load(), Options{})
	if !errors.Is(err, domainerror.ErrMissingCollaborator) {
		t.Errorf("expected ErrMissingCollaborator, got %v", err)
	}
}

func TestNewInjector_WiresRoutes(t *testing.T) {
	injector, err := NewInjector(config.Load(), Options{
		Store:         persistence.NewMemoryStore(),
		StorageDriver: config.StorageDriverMemory,
		HealthCheck:   func() bool { return true },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if injector.MigrationWorker == nil || injector.Engine == nil {
		t.Fatal("expected worker and engine to be wired")
	}

	engine := injector.Router.Setup("test")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected health 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected statistics without token to be 401, got %d", rec.Code)
	}
}
