package state

import (
	"context"
	"fmt"
)

// Backend names accepted by OpenBackend.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// OpenBackend opens the store named by backend at path.
func OpenBackend(ctx context.Context, backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		return Open(ctx, path)
	case BackendFile:
		return OpenFile(path)
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
