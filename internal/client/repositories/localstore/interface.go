package localstore

import "context"

// Repository is a durable string key–value store with the semantics of a
// browser's localStorage: reading a missing key is not an error.
type Repository interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
