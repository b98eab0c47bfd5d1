//go:build !linux

package mpris

// Adapter has no bus to serve on outside Linux. Media keys do nothing.
type Adapter struct{}

// New ignores controls.
func New(Controls) (*Adapter, error) { return &Adapter{}, nil }

// Close does nothing.
func (*Adapter) Close() error { return nil }
