// Package fsaccess is the boundary between the library and the documents it
// references. Everything outside this package treats a Ref as an opaque
// capability and goes through a Provider to use it.
package fsaccess

import (
	"context"
	"errors"
	"time"
)

// Errors returned by providers. Callers match them with errors.Is.
var (
	ErrPermissionDenied = errors.New("read permission denied")
	ErrStaleReference   = errors.New("file no longer available")
)

// Ref is an opaque reference to a file or directory.
type Ref string

// Kind distinguishes directory entries.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "directory"
	}
	return "file"
}

// DirEntry is one child of a directory.
type DirEntry struct {
	Name string
	Kind Kind
	Ref  Ref
}

// FileInfo is the provenance of a file at the time it was inspected.
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// ModTimeMillis returns the modification time in epoch milliseconds.
func (fi FileInfo) ModTimeMillis() int64 {
	return fi.ModTime.UnixMilli()
}

// Reader materializes the current content behind a reference.
type Reader interface {
	Read(ctx context.Context, ref Ref) ([]byte, error)
}

// Provider is the full file-access contract.
type Provider interface {
	Reader

	// RequestPermission reports whether ref can be read. A false result
	// with a nil error means the user or the system refused access.
	RequestPermission(ctx context.Context, ref Ref) (bool, error)

	// ReadDir lists the direct children of a directory reference.
	ReadDir(ctx context.Context, ref Ref) ([]DirEntry, error)

	// Stat describes a file reference.
	Stat(ctx context.Context, ref Ref) (FileInfo, error)
}
