// internal/state/mock.go
package state

import (
	"context"
	"sync"
)

// Mock is an in-memory Store for tests. Errors can be injected per
// operation to exercise failure paths.
type Mock struct {
	mu     sync.Mutex
	values map[string][]byte
	closed bool

	// Injected failures, returned by the next matching call when non-nil.
	GetErr    error
	SetErr    error
	DeleteErr error

	Sets    int
	Deletes int
}

// NewMock creates an empty mock store.
func NewMock() *Mock {
	return &Mock{values: make(map[string][]byte)}
}

func (m *Mock) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Mock) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Sets++
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *Mock) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deletes++
	delete(m.values, key)
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Raw returns the stored bytes for key without going through Get.
func (m *Mock) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Put stores bytes directly, bypassing error injection and counters.
func (m *Mock) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
