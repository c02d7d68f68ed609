// Package model defines database models for persistence layer.
package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/lucapp/internal/domain/entity"
)

// localDateLayouts are the offset-less date encodings found in stored
// collections. They carry wall-clock time and are read in the owner's location.
var localDateLayouts = []string{
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// TransactionRecord is the JSON shape of a transaction inside a stored collection.
// Amount is kept raw so malformed or missing values decode to zero instead of
// failing the whole collection.
type TransactionRecord struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId,omitempty"`
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount,omitempty"`
	Category    string          `json:"category"`
	Type        string          `json:"type,omitempty"`
	Date        string          `json:"date,omitempty"`
	CreatedAt   string          `json:"createdAt,omitempty"`
}

// ToEntity converts a TransactionRecord to a domain Transaction entity.
// ownerID fills in records stored without an owner; dates without an offset
// are read in loc.
func (r *TransactionRecord) ToEntity(ownerID string, loc *time.Location) entity.Transaction {
	userID := r.UserID
	if userID == "" {
		userID = ownerID
	}
	return entity.Transaction{
		ID:          r.ID,
		UserID:      userID,
		Description: r.Description,
		Amount:      parseAmount(r.Amount),
		Category:    r.Category,
		Type:        entity.TransactionType(r.Type),
		Date:        ParseDate(r.Date, loc),
		CreatedAt:   ParseDate(r.CreatedAt, loc),
	}
}

// TransactionRecordFromEntity creates a TransactionRecord from a domain Transaction entity.
func TransactionRecordFromEntity(tx entity.Transaction) TransactionRecord {
	amount, _ := json.Marshal(tx.Amount)
	return TransactionRecord{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Description: tx.Description,
		Amount:      amount,
		Category:    tx.Category,
		Type:        string(tx.Type),
		Date:        formatDate(tx.Date),
		CreatedAt:   formatDate(tx.CreatedAt),
	}
}

// ParseDate decodes a stored date into loc (UTC when nil). RFC 3339 values
// are absolute instants; values without an offset are wall-clock times in loc.
// Empty or unparseable input yields the zero time.
func ParseDate(value string, loc *time.Location) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc)
	}
	for _, layout := range localDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

// WithType returns entry with its "type" field set to transactionType. Every
// other field, known or not, is kept byte for byte.
func WithType(entry json.RawMessage, transactionType entity.TransactionType) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage, 1)
	}
	encoded, err := json.Marshal(string(transactionType))
	if err != nil {
		return nil, err
	}
	fields["type"] = encoded
	return json.Marshal(fields)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

// parseAmount accepts JSON numbers and numeric strings; anything else is zero.
func parseAmount(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero
	}
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(raw); err != nil {
		return decimal.Zero
	}
	return amount.Abs()
}
