// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/finance-tracker/lucapp/internal/domain/entity"
)

// UserRecord is the JSON shape of a user inside the stored user collection.
type UserRecord struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullName,omitempty"`
	PasswordHash string `json:"passwordHash"`
	CreatedAt    string `json:"createdAt,omitempty"`
	LastLogin    string `json:"lastLogin,omitempty"`
}

// ToEntity converts a UserRecord to a domain User entity.
func (r *UserRecord) ToEntity() *entity.User {
	user := &entity.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		FullName:     r.FullName,
		PasswordHash: r.PasswordHash,
		CreatedAt:    ParseDate(r.CreatedAt, time.UTC),
	}
	if lastLogin := ParseDate(r.LastLogin, time.UTC); !lastLogin.IsZero() {
		user.LastLogin = &lastLogin
	}
	return user
}

// UserRecordFromEntity creates a UserRecord from a domain User entity.
func UserRecordFromEntity(user *entity.User) UserRecord {
	record := UserRecord{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		PasswordHash: user.PasswordHash,
		CreatedAt:    formatDate(user.CreatedAt),
	}
	if user.LastLogin != nil {
		record.LastLogin = formatDate(*user.LastLogin)
	}
	return record
}
