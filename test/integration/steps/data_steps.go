package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/lucapp/config"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	"github.com/finance-tracker/lucapp/internal/integration/persistence"
)

// registerDataSteps registers steps that prepare or inspect stored data.
func registerDataSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^today is "([^"]*)"$`, todayIs)
	ctx.Step(`^I have the following transactions:$`, iHaveTheFollowingTransactions)
	ctx.Step(`^my stored collection is:$`, myStoredCollectionIs)
	ctx.Step(`^my stored collection should have (\d+) transactions?$`, myStoredCollectionShouldHave)
	ctx.Step(`^every stored transaction should have a type$`, everyStoredTransactionShouldHaveAType)
	ctx.Step(`^the stored transaction "([^"]*)" field "([^"]*)" should be "([^"]*)"$`, theStoredTransactionFieldShouldBe)
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
}

// todayIs freezes the application clock at local noon of the given day.
func todayIs(ctx context.Context, day string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	date, err := time.ParseInLocation(time.DateOnly, day, tc.cfg.Locale.Location())
	if err != nil {
		return ctx, fmt.Errorf("invalid date %q: %w", day, err)
	}
	tc.timeMock.SetCurrentTime(date.Add(12 * time.Hour))
	return ctx, nil
}

// iHaveTheFollowingTransactions stores a table of transactions for the current user.
// Columns: description, amount, category, type (may be empty), date (may be empty).
func iHaveTheFollowingTransactions(ctx context.Context, table *godog.Table) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if tc.currentUserID == "" {
		return ctx, fmt.Errorf("no user is logged in")
	}
	if len(table.Rows) < 2 {
		return ctx, fmt.Errorf("transaction table needs a header and at least one row")
	}

	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cell.Value)
		}
		rows = append(rows, cells)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[name] = i
	}
	value := func(row []string, column string) string {
		if i, ok := columns[column]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	transactions := make([]entity.Transaction, 0, len(rows)-1)
	for _, row := range rows[1:] {
		amount, err := decimal.NewFromString(value(row, "amount"))
		if err != nil {
			return ctx, fmt.Errorf("invalid amount %q: %w", value(row, "amount"), err)
		}

		var date time.Time
		if raw := value(row, "date"); raw != "" {
			date, err = time.ParseInLocation(time.DateOnly, raw, tc.cfg.Locale.Location())
			if err != nil {
				return ctx, fmt.Errorf("invalid date %q: %w", raw, err)
			}
		}

		tx := entity.NewTransaction(
			tc.currentUserID,
			value(row, "description"),
			amount,
			entity.TransactionType(value(row, "type")),
			value(row, "category"),
			date,
		)
		transactions = append(transactions, *tx)
	}

	repo := persistence.NewTransactionRepository(tc.store, tc.cfg.Storage.KeyPrefix, tc.cfg.Locale.Location())
	if err := repo.SaveAll(context.Background(), tc.currentUserID, transactions); err != nil {
		return ctx, fmt.Errorf("failed to store transactions: %w", err)
	}
	return ctx, nil
}

// myStoredCollectionIs writes a raw JSON collection for the current user, as older clients did.
func myStoredCollectionIs(ctx context.Context, body *godog.DocString) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	key := persistence.TransactionsKey(tc.cfg.Storage.KeyPrefix, tc.currentUserID)
	if err := tc.store.Set(context.Background(), key, []byte(body.Content)); err != nil {
		return ctx, fmt.Errorf("failed to store collection: %w", err)
	}
	return ctx, nil
}

func myStoredCollectionShouldHave(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	records, err := tc.storedRecords()
	if err != nil {
		return err
	}
	if len(records) != expected {
		return fmt.Errorf("expected %d stored transactions, got %d", expected, len(records))
	}
	return nil
}

func everyStoredTransactionShouldHaveAType(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	records, err := tc.storedRecords()
	if err != nil {
		return err
	}
	for _, record := range records {
		switch record["type"] {
		case string(entity.TransactionTypeIncome), string(entity.TransactionTypeExpense):
		default:
			return fmt.Errorf("transaction %v has type %v", record["id"], record["type"])
		}
	}
	return nil
}

func theStoredTransactionFieldShouldBe(ctx context.Context, id, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	records, err := tc.storedRecords()
	if err != nil {
		return err
	}
	for _, record := range records {
		if record["id"] != id {
			continue
		}
		if got := fmt.Sprint(record[field]); got != expected {
			return fmt.Errorf("expected %s of %s to be %q, got %q", field, id, expected, got)
		}
		return nil
	}
	return fmt.Errorf("stored transaction %s not found", id)
}

func theDbShouldContainObjectsInTheTable(ctx context.Context, expected int, table string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.driver != config.StorageDriverSQLite || tc.db == nil {
		return fmt.Errorf("scenario is not backed by the sql store")
	}
	count, err := tc.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}

func (tc *TestContext) storedRecords() ([]map[string]any, error) {
	key := persistence.TransactionsKey(tc.cfg.Storage.KeyPrefix, tc.currentUserID)
	data, err := tc.store.Get(context.Background(), key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("stored collection is not valid JSON: %w", err)
	}
	return records, nil
}
