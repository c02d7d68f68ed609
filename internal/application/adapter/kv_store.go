// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// KeyValueStore is the only storage contract the application depends on.
// Values are opaque byte slices; repositories decide the encoding.
type KeyValueStore interface {
	// Get returns the value stored under key, or domainerror.ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
