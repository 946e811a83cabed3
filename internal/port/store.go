package port

import "context"

// KeyValueStore persists small string values under fixed keys
type KeyValueStore interface {
	// Get returns the value for key; ok is false when the key was never set
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
}
