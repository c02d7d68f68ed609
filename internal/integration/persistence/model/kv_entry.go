// Package model defines database models for persistence layer.
package model

import "time"

// KVEntryModel represents the kv_entries table backing the SQL key-value store.
type KVEntryModel struct {
	Key       string    `gorm:"column:entry_key;type:varchar(255);primaryKey"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the KVEntryModel.
func (KVEntryModel) TableName() string {
	return "kv_entries"
}
