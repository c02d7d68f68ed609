package persistence

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
	"github.com/finance-tracker/lucapp/internal/integration/persistence/model"
)

// userRepository implements adapter.UserRepository on a single JSON array
// stored under <prefix>_users.
type userRepository struct {
	store  adapter.KeyValueStore
	prefix string
	mu     sync.Mutex
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(store adapter.KeyValueStore, prefix string) adapter.UserRepository {
	return &userRepository{
		store:  store,
		prefix: prefix,
	}
}

// UsersKey returns the storage key of the user collection.
func UsersKey(prefix string) string {
	return prefix + "_users"
}

// Create stores a new user.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, record := range records {
		if strings.EqualFold(record.Username, user.Username) {
			return domainerror.ErrUsernameAlreadyExists
		}
		if strings.EqualFold(record.Email, user.Email) {
			return domainerror.ErrEmailAlreadyExists
		}
	}
	records = append(records, model.UserRecordFromEntity(user))
	return saveCollection(ctx, r.store, UsersKey(r.prefix), records)
}

// FindByID retrieves a user by their ID.
func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.find(ctx, func(u *entity.User) bool { return u.ID == id })
}

// FindByLogin retrieves a user by username or email.
func (r *userRepository) FindByLogin(ctx context.Context, usernameOrEmail string) (*entity.User, error) {
	return r.find(ctx, func(u *entity.User) bool { return u.Matches(usernameOrEmail) })
}

// Update replaces the stored record carrying the same ID.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == user.ID {
			records[i] = model.UserRecordFromEntity(user)
			return saveCollection(ctx, r.store, UsersKey(r.prefix), records)
		}
	}
	return domainerror.ErrUserNotFound
}

// ExistsByUsername checks if a user with the given username exists.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, func(u *entity.User) bool { return strings.EqualFold(u.Username, strings.TrimSpace(username)) })
}

// ExistsByEmail checks if a user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, func(u *entity.User) bool { return strings.EqualFold(u.Email, strings.TrimSpace(email)) })
}

// FindAll retrieves every registered user.
func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]*entity.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].ToEntity())
	}
	return users, nil
}

func (r *userRepository) find(ctx context.Context, match func(*entity.User) bool) (*entity.User, error) {
	users, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if match(user) {
			return user, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *userRepository) exists(ctx context.Context, match func(*entity.User) bool) (bool, error) {
	_, err := r.find(ctx, match)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domainerror.ErrUserNotFound) {
		return false, nil
	}
	return false, err
}

func (r *userRepository) load(ctx context.Context) ([]model.UserRecord, error) {
	var records []model.UserRecord
	if err := loadCollection(ctx, r.store, UsersKey(r.prefix), &records); err != nil {
		return nil, err
	}
	return records, nil
}
