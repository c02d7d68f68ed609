package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
	"github.com/finance-tracker/lucapp/internal/integration/persistence/model"
)

// transactionRepository implements adapter.TransactionRepository by storing
// each owner's transactions as one JSON array under <prefix>_transactions_<owner>.
// Writes other than SaveAll edit the stored entries in place, so fields this
// version does not understand survive.
type transactionRepository struct {
	store    adapter.KeyValueStore
	prefix   string
	location *time.Location
	mu       sync.Mutex
}

// NewTransactionRepository creates a new transaction repository instance.
// Stored dates without an offset are read as wall-clock dates in location.
func NewTransactionRepository(store adapter.KeyValueStore, prefix string, location *time.Location) adapter.TransactionRepository {
	if location == nil {
		location = time.UTC
	}
	return &transactionRepository{
		store:    store,
		prefix:   prefix,
		location: location,
	}
}

// TransactionsKey returns the storage key of an owner's transaction collection.
func TransactionsKey(prefix, ownerID string) string {
	return prefix + "_transactions_" + ownerID
}

// GetAllTransactions retrieves every transaction owned by ownerID.
func (r *transactionRepository) GetAllTransactions(ctx context.Context, ownerID string) ([]entity.Transaction, error) {
	records, err := r.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	transactions := make([]entity.Transaction, 0, len(records))
	for i := range records {
		transactions = append(transactions, records[i].ToEntity(ownerID, r.location))
	}
	return transactions, nil
}

// CreateTransaction appends a transaction to its owner's collection.
func (r *transactionRepository) CreateTransaction(ctx context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.loadEntries(ctx, transaction.UserID)
	if err != nil {
		return err
	}
	entry, err := json.Marshal(model.TransactionRecordFromEntity(*transaction))
	if err != nil {
		return fmt.Errorf("failed to encode transaction %s: %w", transaction.ID, err)
	}
	entries = append(entries, entry)
	return saveCollection(ctx, r.store, TransactionsKey(r.prefix, transaction.UserID), entries)
}

// DeleteTransaction removes a transaction by ID from the owner's collection.
func (r *transactionRepository) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.loadEntries(ctx, ownerID)
	if err != nil {
		return err
	}

	kept := make([]json.RawMessage, 0, len(entries))
	for _, entry := range entries {
		var ref struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(entry, &ref); err == nil && ref.ID == id {
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) == len(entries) {
		return domainerror.ErrTransactionNotFound
	}
	return saveCollection(ctx, r.store, TransactionsKey(r.prefix, ownerID), kept)
}

// FindByID retrieves a single transaction of the owner.
func (r *transactionRepository) FindByID(ctx context.Context, ownerID, id string) (*entity.Transaction, error) {
	records, err := r.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			tx := records[i].ToEntity(ownerID, r.location)
			return &tx, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

// SaveAll replaces the owner's whole collection.
func (r *transactionRepository) SaveAll(ctx context.Context, ownerID string, transactions []entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]model.TransactionRecord, 0, len(transactions))
	for _, tx := range transactions {
		records = append(records, model.TransactionRecordFromEntity(tx))
	}
	return saveCollection(ctx, r.store, TransactionsKey(r.prefix, ownerID), records)
}

// AssignTypes patches the "type" field of the entries assign selects. Nothing
// is written when no entry changes.
func (r *transactionRepository) AssignTypes(ctx context.Context, ownerID string, assign adapter.TypeAssigner) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := TransactionsKey(r.prefix, ownerID)
	entries, err := r.loadEntries(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	changed := make([]string, 0)
	for i, entry := range entries {
		if bytes.Equal(bytes.TrimSpace(entry), []byte("null")) {
			continue
		}
		var record model.TransactionRecord
		if err := json.Unmarshal(entry, &record); err != nil {
			return nil, corruptEntry(key, i, err)
		}
		transactionType, ok := assign(record.ToEntity(ownerID, r.location))
		if !ok {
			continue
		}
		patched, err := model.WithType(entry, transactionType)
		if err != nil {
			return nil, corruptEntry(key, i, err)
		}
		entries[i] = patched
		changed = append(changed, record.ID)
	}

	if len(changed) == 0 {
		return changed, nil
	}
	if err := saveCollection(ctx, r.store, key, entries); err != nil {
		return nil, err
	}
	return changed, nil
}

func (r *transactionRepository) load(ctx context.Context, ownerID string) ([]model.TransactionRecord, error) {
	var records []model.TransactionRecord
	if err := loadCollection(ctx, r.store, TransactionsKey(r.prefix, ownerID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// loadEntries returns the stored array with each element left undecoded.
func (r *transactionRepository) loadEntries(ctx context.Context, ownerID string) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	if err := loadCollection(ctx, r.store, TransactionsKey(r.prefix, ownerID), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func corruptEntry(key string, index int, err error) error {
	return domainerror.NewStorageError(
		domainerror.ErrCodeCorruptRecord,
		fmt.Sprintf("failed to decode %s[%d]", key, index),
		fmt.Errorf("%w: %v", domainerror.ErrCorruptRecord, err),
	)
}
