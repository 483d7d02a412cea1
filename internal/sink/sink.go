// Package sink provides diagnostic sink implementations for discovery.
package sink

import (
	"io"
	"sync"

	"github.com/fatih/color"
)

// Writer emits diagnostics to an io.Writer, one line per message, in the
// warning color. Safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a Writer sink
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Emit writes one diagnostic line. Write failures are swallowed: a broken
// sink must never affect discovery results.
func (w *Writer) Emit(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = color.New(color.FgYellow).Fprintln(w.out, message)
}

// Capture records emitted messages in memory. Safe for concurrent use.
type Capture struct {
	mu       sync.Mutex
	messages []string
}

// NewCapture creates a Capture sink
func NewCapture() *Capture {
	return &Capture{}
}

// Emit appends the message to the captured list
func (c *Capture) Emit(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
}

// Messages returns a copy of everything emitted so far
func (c *Capture) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}
