package statistics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

func newStubRepository() *stubTransactionRepository {
	return &stubTransactionRepository{
		byOwner: map[string][]entity.Transaction{"user_1": marchHistory()},
	}
}

func TestGetStatisticsUseCase_Execute(t *testing.T) {
	uc := NewGetStatisticsUseCase(newStubRepository(), newTestEngine(t, day(2024, time.March, 20)))

	result, err := uc.Execute(context.Background(), GetStatisticsInput{
		UserID:   "user_1",
		Selector: NewMonthSelector(2024, time.March),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	amountEquals(t, "income", result.Totals.Income, 2000)

	t.Run("missing user", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), GetStatisticsInput{Selector: NewMonthSelector(2024, time.March)})
		if !errors.Is(err, domainerror.ErrMissingOwner) {
			t.Errorf("expected ErrMissingOwner, got %v", err)
		}
	})

	t.Run("unknown user yields zeros", func(t *testing.T) {
		result, err := uc.Execute(context.Background(), GetStatisticsInput{
			UserID:   "user_2",
			Selector: NewMonthSelector(2024, time.March),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		amountEquals(t, "balance", result.Totals.Balance, 0)
	})
}

func TestGetStatisticsUseCase_RepositoryFailure(t *testing.T) {
	storageErr := errors.New("connection refused")
	repo := &stubTransactionRepository{err: storageErr}
	uc := NewGetStatisticsUseCase(repo, newTestEngine(t, day(2024, time.March, 20)))

	_, err := uc.Execute(context.Background(), GetStatisticsInput{
		UserID:   "user_1",
		Selector: NewMonthSelector(2024, time.March),
	})
	if !errors.Is(err, storageErr) {
		t.Errorf("expected storage error to be wrapped, got %v", err)
	}
}

func TestComparePeriodsUseCase_Execute(t *testing.T) {
	uc := NewComparePeriodsUseCase(newStubRepository(), newTestEngine(t, day(2024, time.March, 20)))

	comparison, err := uc.Execute(context.Background(), ComparePeriodsInput{
		UserID:   "user_1",
		Selector: NewMonthSelector(2024, time.January),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comparison.Previous.Period.Year != 2023 || comparison.Previous.Period.Month != 12 {
		t.Errorf("expected previous period December 2023, got %d-%d",
			comparison.Previous.Period.Year, comparison.Previous.Period.Month)
	}
}

func TestGetTrendUseCase_DefaultWindow(t *testing.T) {
	uc := NewGetTrendUseCase(newStubRepository(), newTestEngine(t, day(2024, time.March, 20)), 4)

	output, err := uc.Execute(context.Background(), GetTrendInput{UserID: "user_1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Window != 4 || len(output.Points) != 4 {
		t.Errorf("expected 4 points, got window=%d points=%d", output.Window, len(output.Points))
	}

	output, err = uc.Execute(context.Background(), GetTrendInput{UserID: "user_1", Window: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Points) != 2 {
		t.Errorf("expected 2 points, got %d", len(output.Points))
	}
}

func TestGetTopCategoriesUseCase_Execute(t *testing.T) {
	repo := newStubRepository()
	repo.byOwner["user_1"] = append(repo.byOwner["user_1"],
		tx("tx_3", "Transporte", 400, entity.TransactionTypeExpense, day(2024, time.March, 7)),
		tx("tx_4", "Ocio", 250, entity.TransactionTypeExpense, day(2024, time.March, 8)),
	)
	uc := NewGetTopCategoriesUseCase(repo, newTestEngine(t, day(2024, time.March, 20)), 5)

	tests := []struct {
		name     string
		txType   entity.TransactionType
		limit    int
		expected []string
	}{
		{"all categories", "", 0, []string{"Ingreso", "Transporte", "Ocio", "Comida"}},
		{"expenses limited", entity.TransactionTypeExpense, 2, []string{"Transporte", "Ocio"}},
		{"income only", entity.TransactionTypeIncome, 5, []string{"Ingreso"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := uc.Execute(context.Background(), GetTopCategoriesInput{
				UserID:   "user_1",
				Selector: NewMonthSelector(2024, time.March),
				Type:     tt.txType,
				Limit:    tt.limit,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(output.Categories) != len(tt.expected) {
				t.Fatalf("expected %d categories, got %d", len(tt.expected), len(output.Categories))
			}
			for i, name := range tt.expected {
				if output.Categories[i].Category != name {
					t.Errorf("position %d: expected %s, got %s", i, name, output.Categories[i].Category)
				}
			}
		})
	}

	t.Run("invalid type", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), GetTopCategoriesInput{
			UserID:   "user_1",
			Selector: NewMonthSelector(2024, time.March),
			Type:     "transfer",
		})
		if !errors.Is(err, domainerror.ErrInvalidTransactionType) {
			t.Errorf("expected ErrInvalidTransactionType, got %v", err)
		}
	})
}

func TestExportStatisticsUseCase_CSV(t *testing.T) {
	uc := NewExportStatisticsUseCase(newStubRepository(), newTestEngine(t, day(2024, time.March, 20)))

	output, err := uc.Execute(context.Background(), ExportStatisticsInput{
		UserID:   "user_1",
		Selector: NewMonthSelector(2024, time.March),
		Format:   ExportFormatCSV,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Categoría,Tipo,Monto,Transacciones,Porcentaje\n" +
		"Comida,Gasto,100,1,5\n" +
		"Ingreso,Ingreso,2000,1,95\n"
	if string(output.Data) != expected {
		t.Errorf("unexpected csv:\n%s\nexpected:\n%s", output.Data, expected)
	}
	if output.Filename != "estadisticas_month_2024-03-01.csv" {
		t.Errorf("unexpected filename %s", output.Filename)
	}
}

func TestExportStatisticsUseCase_JSON(t *testing.T) {
	uc := NewExportStatisticsUseCase(newStubRepository(), newTestEngine(t, day(2024, time.March, 20)))

	output, err := uc.Execute(context.Background(), ExportStatisticsInput{
		UserID:   "user_1",
		Selector: NewMonthSelector(2024, time.March),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		Totals struct {
			Balance string `json:"balance"`
		} `json:"totals"`
		Transactions []struct {
			Type string `json:"type"`
		} `json:"transactions"`
	}
	if err := json.Unmarshal(output.Data, &doc); err != nil {
		t.Fatalf("expected valid json: %v", err)
	}
	if doc.Totals.Balance != "1900" {
		t.Errorf("expected balance 1900, got %s", doc.Totals.Balance)
	}
	if len(doc.Transactions) != 2 || doc.Transactions[0].Type != "income" {
		t.Errorf("expected classified transactions in export, got %+v", doc.Transactions)
	}
}

func TestExportStatisticsUseCase_EmptyAndUnsupported(t *testing.T) {
	uc := NewExportStatisticsUseCase(newStubRepository(), newTestEngine(t, day(2024, time.March, 20)))

	output, err := uc.Execute(context.Background(), ExportStatisticsInput{
		UserID:   "user_1",
		Selector: NewMonthSelector(2023, time.March),
		Format:   ExportFormatCSV,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Data) != 0 {
		t.Errorf("expected empty csv for an empty period, got %q", output.Data)
	}

	_, err = uc.Execute(context.Background(), ExportStatisticsInput{
		UserID:   "user_1",
		Selector: NewMonthSelector(2024, time.March),
		Format:   "xml",
	})
	if !errors.Is(err, domainerror.ErrUnsupportedExportFormat) {
		t.Errorf("expected ErrUnsupportedExportFormat, got %v", err)
	}
}

func TestEncodeJSON_LocalDay(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	engine := newTestEngine(t, time.Date(2024, time.March, 20, 12, 0, 0, 0, santiago))

	lastEvening := time.Date(2024, time.April, 1, 2, 0, 0, 0, time.UTC)
	result, err := engine.BuildStatistics([]entity.Transaction{
		tx("tx_1", "Comida", 100, entity.TransactionTypeExpense, lastEvening),
	}, NewMonthSelector(2024, time.March))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := EncodeJSON(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc struct {
		Transactions []struct {
			Date string `json:"date"`
		} `json:"transactions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("expected valid json: %v", err)
	}
	if len(doc.Transactions) != 1 || doc.Transactions[0].Date != "2024-03-31" {
		t.Errorf("expected the local day 2024-03-31, got %+v", doc.Transactions)
	}
}
