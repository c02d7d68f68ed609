package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransactionType_IsValid(t *testing.T) {
	tests := []struct {
		value    TransactionType
		expected bool
	}{
		{TransactionTypeIncome, true},
		{TransactionTypeExpense, true},
		{"", false},
		{"transfer", false},
		{"Income", false},
	}

	for _, tt := range tests {
		if got := tt.value.IsValid(); got != tt.expected {
			t.Errorf("IsValid(%q) = %v, expected %v", tt.value, got, tt.expected)
		}
	}
}

func TestNewTransaction(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	tx := NewTransaction("user_1", "Almuerzo", decimal.NewFromInt(100), TransactionTypeExpense, "Comida", date)

	if !strings.HasPrefix(tx.ID, TransactionIDPrefix) {
		t.Errorf("expected id with prefix %s, got %s", TransactionIDPrefix, tx.ID)
	}
	if !tx.HasDate() {
		t.Error("expected transaction to have a date")
	}
	if tx.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	other := NewTransaction("user_1", "Almuerzo", decimal.NewFromInt(100), TransactionTypeExpense, "Comida", date)
	if other.ID == tx.ID {
		t.Error("expected distinct ids for distinct transactions")
	}
}

func TestUser_Matches(t *testing.T) {
	user := NewUser("  Maria_01 ", "Maria@Example.COM", " Maria Soto ", "hash")

	if user.Username != "maria_01" {
		t.Errorf("expected normalized username, got %q", user.Username)
	}
	if user.FullName != "Maria Soto" {
		t.Errorf("expected trimmed full name, got %q", user.FullName)
	}
	if !user.Matches("MARIA_01") {
		t.Error("expected username match to be case-insensitive")
	}
	if !user.Matches("maria@example.com") {
		t.Error("expected email match")
	}
	if user.Matches("someone") {
		t.Error("expected no match for unrelated term")
	}
}

func TestUser_TouchLastLogin(t *testing.T) {
	user := NewUser("maria", "maria@example.com", "Maria", "hash")
	if user.LastLogin != nil {
		t.Fatal("expected no last login on a new user")
	}

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CLT", -3*3600))
	user.TouchLastLogin(at)

	if user.LastLogin == nil || !user.LastLogin.Equal(at) {
		t.Errorf("expected last login %s, got %v", at, user.LastLogin)
	}
	if user.LastLogin.Location() != time.UTC {
		t.Error("expected last login stored in UTC")
	}
}
