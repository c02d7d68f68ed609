package adapters

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := newPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := svc.HashPassword("secreto1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secreto1" {
		t.Fatal("expected hash to differ from the plain password")
	}
	if err := svc.VerifyPassword(hash, "secreto1"); err != nil {
		t.Errorf("expected password to verify, got %v", err)
	}
	if err := svc.VerifyPassword(hash, "otro"); err == nil {
		t.Error("expected wrong password to fail verification")
	}
}

func TestPasswordService_ValidatePasswordStrength(t *testing.T) {
	svc := NewPasswordService()
	tests := []struct {
		password string
		valid    bool
	}{
		{"12345", false},
		{"123456", true},
		{strings.Repeat("a", 50), true},
		{strings.Repeat("a", 51), false},
	}

	for _, tt := range tests {
		err := svc.ValidatePasswordStrength(tt.password)
		if (err == nil) != tt.valid {
			t.Errorf("ValidatePasswordStrength(len=%d) error = %v, expected valid=%v", len(tt.password), err, tt.valid)
		}
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Now()}
	svc := NewTokenService("secret", time.Hour, clock)

	token, err := svc.GenerateAccessToken(ctx, "user_1", "maria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !token.ExpiresAt.After(clock.now) {
		t.Errorf("expected expiry after now, got %s", token.ExpiresAt)
	}

	claims, err := svc.ValidateAccessToken(ctx, token.Token)
	if err != nil {
		t.Fatalf("unexpected error validating: %v", err)
	}
	if claims.UserID != "user_1" || claims.Username != "maria" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestTokenService_Rejects(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Now()}
	svc := NewTokenService("secret", time.Hour, clock)
	token, _ := svc.GenerateAccessToken(ctx, "user_1", "maria")

	other := NewTokenService("another-secret", time.Hour, clock)
	if _, err := other.ValidateAccessToken(ctx, token.Token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}

	if _, err := svc.ValidateAccessToken(ctx, "not-a-token"); err == nil {
		t.Error("expected malformed token to be rejected")
	}

	clock.now = clock.now.Add(2 * time.Hour)
	if _, err := svc.ValidateAccessToken(ctx, token.Token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestLabelFormatter_Labels(t *testing.T) {
	f := NewLabelFormatter("es", "CLP")

	if got := f.MonthName(time.March); got != "marzo" {
		t.Errorf("expected marzo, got %q", got)
	}
	if got := f.MonthName(time.Month(13)); got != "" {
		t.Errorf("expected empty name for invalid month, got %q", got)
	}
	if got := f.MonthLabel(2024, time.March); got != "marzo de 2024" {
		t.Errorf("expected 'marzo de 2024', got %q", got)
	}
	if got := f.ShortMonthLabel(2024, time.December); got != "dic 2024" {
		t.Errorf("expected 'dic 2024', got %q", got)
	}
	if got := f.YearLabel(2024); got != "2024" {
		t.Errorf("expected '2024', got %q", got)
	}

	start := time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if got := f.WeekLabel(start, end); got != "26 feb - 4 mar 2024" {
		t.Errorf("unexpected week label %q", got)
	}

	start = time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC)
	end = time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	if got := f.WeekLabel(start, end); got != "28 dic 2023 - 4 ene 2024" {
		t.Errorf("unexpected week label across years %q", got)
	}
}

func TestLabelFormatter_FormatCurrency(t *testing.T) {
	f := NewLabelFormatter("es-CL", "CLP")

	got := f.FormatCurrency(decimal.RequireFromString("1234567.4"))
	if got != "$1.234.567" {
		t.Errorf("expected $1.234.567, got %q", got)
	}

	got = f.FormatCurrency(decimal.NewFromInt(-2500000))
	if !strings.HasPrefix(got, "-$") {
		t.Errorf("expected negative amount to start with -$, got %q", got)
	}

	if got := f.FormatCurrency(decimal.Zero); got != "$0" {
		t.Errorf("expected $0, got %q", got)
	}
}
