package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

func TestTransactionRepository_Lifecycle(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewTransactionRepository(factory(t), "lucapp", time.UTC)

			empty, err := repo.GetAllTransactions(ctx, "user_1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(empty) != 0 {
				t.Fatalf("expected no transactions, got %d", len(empty))
			}

			date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
			first := entity.NewTransaction("user_1", "Sueldo marzo", decimal.NewFromInt(1000), entity.TransactionTypeIncome, "Sueldo", date)
			second := entity.NewTransaction("user_1", "Almuerzo", decimal.RequireFromString("12.50"), entity.TransactionTypeExpense, "Comida", date)
			for _, tx := range []*entity.Transaction{first, second} {
				if err := repo.CreateTransaction(ctx, tx); err != nil {
					t.Fatalf("unexpected error creating: %v", err)
				}
			}

			all, err := repo.GetAllTransactions(ctx, "user_1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(all) != 2 {
				t.Fatalf("expected 2 transactions, got %d", len(all))
			}
			if !all[1].Amount.Equal(decimal.RequireFromString("12.5")) {
				t.Errorf("expected amount 12.5, got %s", all[1].Amount)
			}
			if !all[0].Date.Equal(date) {
				t.Errorf("expected date %s, got %s", date, all[0].Date)
			}

			other, _ := repo.GetAllTransactions(ctx, "user_2")
			if len(other) != 0 {
				t.Errorf("expected owners to be isolated, got %d transactions", len(other))
			}

			found, err := repo.FindByID(ctx, "user_1", second.ID)
			if err != nil || found.Description != "Almuerzo" {
				t.Fatalf("expected to find second transaction, got %v %v", found, err)
			}

			if err := repo.DeleteTransaction(ctx, "user_1", first.ID); err != nil {
				t.Fatalf("unexpected error deleting: %v", err)
			}
			if err := repo.DeleteTransaction(ctx, "user_1", first.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
				t.Errorf("expected ErrTransactionNotFound, got %v", err)
			}
			if _, err := repo.FindByID(ctx, "user_1", first.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
				t.Errorf("expected ErrTransactionNotFound, got %v", err)
			}

			if err := repo.SaveAll(ctx, "user_1", nil); err != nil {
				t.Fatalf("unexpected error on save all: %v", err)
			}
			remaining, _ := repo.GetAllTransactions(ctx, "user_1")
			if len(remaining) != 0 {
				t.Errorf("expected empty collection after SaveAll(nil), got %d", len(remaining))
			}
		})
	}
}

func TestTransactionRepository_LegacyCollection(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	raw := `[
		{"id":"1","description":"Pago","amount":"1500","category":"Sueldo","date":"2024-03-01"},
		{"id":"2","description":"Pan","amount":2.5,"category":"Comida","type":"expense","date":"2024-03-02T10:00:00.000Z"},
		{"id":"3","description":"Sin fecha","amount":"abc","category":"Comida"}
	]`
	_ = store.Set(ctx, TransactionsKey("lucapp", "legacy"), []byte(raw))

	repo := NewTransactionRepository(store, "lucapp", time.UTC)
	txs, err := repo.GetAllTransactions(ctx, "legacy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	if txs[0].UserID != "legacy" {
		t.Errorf("expected owner to be filled in, got %q", txs[0].UserID)
	}
	if txs[0].Type != "" {
		t.Errorf("expected legacy record to keep an empty type, got %q", txs[0].Type)
	}
	if !txs[0].Amount.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected string amount to parse, got %s", txs[0].Amount)
	}
	if !txs[1].Amount.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("expected numeric amount to parse, got %s", txs[1].Amount)
	}
	if !txs[2].Amount.IsZero() || txs[2].HasDate() {
		t.Errorf("expected malformed record to have zero amount and no date, got %s %s", txs[2].Amount, txs[2].Date)
	}
}

func TestTransactionRepository_CorruptCollection(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Set(ctx, TransactionsKey("lucapp", "user_1"), []byte("{not json"))

	repo := NewTransactionRepository(store, "lucapp", time.UTC)
	_, err := repo.GetAllTransactions(ctx, "user_1")

	var storageErr *domainerror.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if storageErr.Code != domainerror.ErrCodeCorruptRecord {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeCorruptRecord, storageErr.Code)
	}
	if !errors.Is(err, domainerror.ErrCorruptRecord) {
		t.Error("expected error to wrap ErrCorruptRecord")
	}
}

func TestUserRepository_Lifecycle(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewUserRepository(factory(t), "lucapp")

			user := entity.NewUser("maria", "maria@example.com", "Maria Soto", "hash")
			if err := repo.Create(ctx, user); err != nil {
				t.Fatalf("unexpected error creating: %v", err)
			}

			duplicate := entity.NewUser("MARIA", "other@example.com", "", "hash")
			if err := repo.Create(ctx, duplicate); !errors.Is(err, domainerror.ErrUsernameAlreadyExists) {
				t.Errorf("expected ErrUsernameAlreadyExists, got %v", err)
			}

			exists, err := repo.ExistsByEmail(ctx, "Maria@Example.com")
			if err != nil || !exists {
				t.Errorf("expected email to exist, got %v %v", exists, err)
			}
			exists, _ = repo.ExistsByUsername(ctx, "pedro")
			if exists {
				t.Error("expected unknown username to not exist")
			}

			found, err := repo.FindByLogin(ctx, "maria@example.com")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if found.ID != user.ID {
				t.Errorf("expected id %s, got %s", user.ID, found.ID)
			}

			at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
			found.TouchLastLogin(at)
			if err := repo.Update(ctx, found); err != nil {
				t.Fatalf("unexpected error updating: %v", err)
			}
			reloaded, _ := repo.FindByID(ctx, user.ID)
			if reloaded.LastLogin == nil || !reloaded.LastLogin.Equal(at) {
				t.Errorf("expected last login %s, got %v", at, reloaded.LastLogin)
			}

			if _, err := repo.FindByID(ctx, "user_missing"); !errors.Is(err, domainerror.ErrUserNotFound) {
				t.Errorf("expected ErrUserNotFound, got %v", err)
			}
			if err := repo.Update(ctx, duplicate); !errors.Is(err, domainerror.ErrUserNotFound) {
				t.Errorf("expected ErrUserNotFound on update, got %v", err)
			}

			users, err := repo.FindAll(ctx)
			if err != nil || len(users) != 1 {
				t.Errorf("expected one user, got %d %v", len(users), err)
			}
		})
	}
}
