// Package memory keeps the bounded conversation window shared by all
// transports. The window only adds context to prompts; nothing depends on it
// for correctness.
package memory

import (
	"strings"
	"sync"

	"github.com/sandevgo/provostbot/internal/core"
)

// Window is a FIFO buffer of the last N turns. Reads and appends from
// concurrent pipeline runs go through one mutex so turn ordering and the
// capacity bound survive interleaving.
type Window struct {
	mu       sync.Mutex
	turns    []core.Turn
	capacity int
}

func NewWindow(capacity int) *Window {
	if capacity < 2 {
		capacity = 2
	}
	return &Window{capacity: capacity}
}

// Append adds turns in order, evicting the oldest when over capacity.
func (w *Window) Append(turns ...core.Turn) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.turns = append(w.turns, turns...)
	if over := len(w.turns) - w.capacity; over > 0 {
		w.turns = append(w.turns[:0:0], w.turns[over:]...)
	}
}

// Turns returns a snapshot of the window, oldest first.
func (w *Window) Turns() []core.Turn {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]core.Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.turns)
}

// Render formats turns as "{role}: {content}" lines for prompt embedding.
func Render(turns []core.Turn) string {
	lines := make([]string, len(turns))
	for i, t := range turns {
		lines[i] = t.Role + ": " + t.Content
	}
	return strings.Join(lines, "\n")
}
