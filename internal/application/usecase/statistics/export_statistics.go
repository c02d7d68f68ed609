package statistics

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

// ExportFormat identifies the encoding of an export.
type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
)

// csvHeader is the header row of category exports.
var csvHeader = []string{"Categoría", "Tipo", "Monto", "Transacciones", "Porcentaje"}

// ExportStatisticsInput represents the input for exporting statistics.
type ExportStatisticsInput struct {
	UserID   string
	Selector Selector
	Format   ExportFormat
}

// ExportStatisticsOutput represents an encoded export.
type ExportStatisticsOutput struct {
	ContentType string
	Filename    string
	Data        []byte
}

// exportDocument is the JSON export layout.
type exportDocument struct {
	Period       Period              `json:"period"`
	Totals       Totals              `json:"totals"`
	Categories   CategoryViews       `json:"categories"`
	Charts       Charts              `json:"charts"`
	Undated      int                 `json:"undated"`
	Transactions []exportTransaction `json:"transactions"`
}

type exportTransaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
}

// ExportStatisticsUseCase handles encoding period statistics for download.
type ExportStatisticsUseCase struct {
	transactionRepo adapter.TransactionRepository
	engine          *Engine
}

// NewExportStatisticsUseCase creates a new ExportStatisticsUseCase instance.
func NewExportStatisticsUseCase(transactionRepo adapter.TransactionRepository, engine *Engine) *ExportStatisticsUseCase {
	return &ExportStatisticsUseCase{
		transactionRepo: transactionRepo,
		engine:          engine,
	}
}

// Execute builds the statistics of the selected period and encodes them.
func (uc *ExportStatisticsUseCase) Execute(ctx context.Context, input ExportStatisticsInput) (*ExportStatisticsOutput, error) {
	format := ExportFormat(strings.ToLower(string(input.Format)))
	if format == "" {
		format = ExportFormatJSON
	}
	if format != ExportFormatJSON && format != ExportFormatCSV {
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeUnsupportedExportFormat,
			fmt.Sprintf("unsupported export format %q", input.Format),
			domainerror.ErrUnsupportedExportFormat,
		)
	}

	transactions, err := loadTransactions(ctx, uc.transactionRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	result, err := uc.engine.BuildStatistics(transactions, input.Selector)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("estadisticas_%s_%s.%s",
		result.Period.Kind, result.Period.Start.Format("2006-01-02"), format)

	if format == ExportFormatCSV {
		data, err := EncodeCSV(result)
		if err != nil {
			return nil, fmt.Errorf("failed to encode csv export: %w", err)
		}
		return &ExportStatisticsOutput{
			ContentType: "text/csv; charset=utf-8",
			Filename:    filename,
			Data:        data,
		}, nil
	}

	data, err := EncodeJSON(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json export: %w", err)
	}
	return &ExportStatisticsOutput{
		ContentType: "application/json; charset=utf-8",
		Filename:    filename,
		Data:        data,
	}, nil
}

// EncodeJSON renders the full result, transactions included, as indented JSON.
// Transaction dates are the local day in the period's location.
func EncodeJSON(result *StatisticsResult) ([]byte, error) {
	loc := result.Period.Start.Location()
	doc := exportDocument{
		Period:       result.Period,
		Totals:       result.Totals,
		Categories:   result.Categories,
		Charts:       result.Charts,
		Undated:      result.Undated,
		Transactions: make([]exportTransaction, 0, len(result.Transactions)),
	}
	for _, tx := range result.Transactions {
		doc.Transactions = append(doc.Transactions, exportTransaction{
			ID:          tx.ID,
			Description: tx.Description,
			Amount:      tx.Amount,
			Category:    tx.Category,
			Type:        string(Classify(tx)),
			Date:        tx.Date.In(loc).Format(time.DateOnly),
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// EncodeCSV renders one row per category. A period without categories
// encodes to an empty document.
func EncodeCSV(result *StatisticsResult) ([]byte, error) {
	if len(result.Categories.All) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, category := range result.Categories.All {
		kind := entity.LegacyCategoryExpense
		if category.HasIncome() {
			kind = entity.LegacyCategoryIncome
		}
		row := []string{
			category.Category,
			kind,
			category.Amount.String(),
			strconv.Itoa(category.TransactionCount),
			strconv.Itoa(category.Percentage),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
