//go:build !windows

// Package stderr redirects file descriptor 2 while the terminal UI runs.
// Stray writes there would corrupt the screen, so captured lines are handed
// to a sink instead.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"
)

// Capture is an active redirection.
type Capture struct {
	orig  int
	read  *os.File
	write *os.File
	done  chan struct{}
	once  sync.Once
}

// Start redirects stderr and calls sink for every non-empty line written
// to it. sink runs on a dedicated goroutine.
// If the redirection cannot be set up, stderr is left untouched.
func Start(sink func(line string)) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, read: r, write: w, done: make(chan struct{})}
	go c.pump(sink)
	return c, nil
}

func (c *Capture) pump(sink func(string)) {
	defer close(c.done)
	scanner := bufio.NewScanner(c.read)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			sink(line)
		}
	}
}

// WriteOriginal writes to the terminal's stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = syscall.Write(c.orig, []byte(msg))
}

// Stop restores stderr and waits for captured lines to be delivered.
func (c *Capture) Stop() {
	c.once.Do(func() {
		_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
		_ = syscall.Close(c.orig)
		c.write.Close()
		<-c.done
		c.read.Close()
	})
}
