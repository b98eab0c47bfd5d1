//go:build windows

// Package stderr is a no-op on Windows.
package stderr

import "os"

// Capture is an inactive redirection.
type Capture struct{}

// Start returns a capture that leaves stderr alone.
func Start(func(line string)) (*Capture, error) {
	return &Capture{}, nil
}

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop does nothing.
func (c *Capture) Stop() {}
