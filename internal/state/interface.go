// internal/state/interface.go
package state

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("state store closed")

// Store is a persistent key-value store. Values are opaque bytes; callers
// own their encoding.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Verify implementations satisfy Store at compile time.
var (
	_ Store = (*Manager)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*Mock)(nil)
)
