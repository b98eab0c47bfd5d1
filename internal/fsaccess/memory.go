package fsaccess

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-memory provider. References are slash-separated paths
// rooted at "/". It is safe for concurrent use so fetches can run off the
// UI loop in tests.
type Memory struct {
	mu      sync.Mutex
	files   map[Ref]memFile
	denied  map[Ref]bool
	readErr map[Ref]error
}

type memFile struct {
	data    []byte
	modTime time.Time
}

// NewMemory returns an empty in-memory provider.
func NewMemory() *Memory {
	return &Memory{
		files:   make(map[Ref]memFile),
		denied:  make(map[Ref]bool),
		readErr: make(map[Ref]error),
	}
}

// AddFile stores a file and returns its reference.
func (m *Memory) AddFile(p string, data []byte, modTime time.Time) Ref {
	m.mu.Lock()
	defer m.mu.Unlock()
	ref := Ref(path.Clean("/" + p))
	m.files[ref] = memFile{data: data, modTime: modTime}
	return ref
}

// RefFor returns the reference of a slash-separated path.
func (m *Memory) RefFor(p string) (Ref, error) {
	return Ref(path.Clean("/" + p)), nil
}

// Path is the inverse of RefFor.
func (m *Memory) Path(ref Ref) string {
	return string(ref)
}

// RemoveFile deletes a file, leaving any reference to it stale.
func (m *Memory) RemoveFile(ref Ref) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, ref)
}

// Deny makes RequestPermission refuse ref.
func (m *Memory) Deny(ref Ref) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.denied[ref] = true
}

// FailRead makes Read on ref return err.
func (m *Memory) FailRead(ref Ref, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr[ref] = err
}

func (m *Memory) RequestPermission(ctx context.Context, ref Ref) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.denied[ref], nil
}

func (m *Memory) ReadDir(ctx context.Context, ref Ref) ([]DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.denied[ref] {
		return nil, fmt.Errorf("%s: %w", ref, ErrPermissionDenied)
	}

	prefix := strings.TrimSuffix(string(ref), "/") + "/"
	seen := make(map[string]Kind)
	for r := range m.files {
		rest, ok := strings.CutPrefix(string(r), prefix)
		if !ok {
			continue
		}
		name, _, nested := strings.Cut(rest, "/")
		if nested {
			seen[name] = KindDir
		} else if _, dup := seen[name]; !dup {
			seen[name] = KindFile
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("%s: %w", ref, ErrStaleReference)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]DirEntry, 0, len(names))
	for _, name := range names {
		out = append(out, DirEntry{Name: name, Kind: seen[name], Ref: Ref(prefix + name)})
	}
	return out, nil
}

func (m *Memory) Stat(ctx context.Context, ref Ref) (FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return FileInfo{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[ref]
	if !ok {
		return FileInfo{}, fmt.Errorf("%s: %w", ref, ErrStaleReference)
	}
	return FileInfo{Name: path.Base(string(ref)), Size: int64(len(f.data)), ModTime: f.modTime}, nil
}

func (m *Memory) Read(ctx context.Context, ref Ref) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readErr[ref]; err != nil {
		return nil, err
	}
	f, ok := m.files[ref]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ref, ErrStaleReference)
	}
	return append([]byte(nil), f.data...), nil
}
