package worker

import (
	"sync"

	"github.com/snapcore/prompting-client/prompt"
)

// activeCell is the single-writer/multi-reader "active prompt" slot. The
// Worker is the only writer; readers take a cheap snapshot under a read
// lock, since reads (GetCurrentPrompt) vastly outnumber writes.
type activeCell struct {
	mu  sync.RWMutex
	cur *prompt.UiInput
}

// Get returns the current snapshot, or nil if the queue is empty.
func (c *activeCell) Get() *prompt.UiInput {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cur
}

// Set installs a new snapshot (or clears it, with nil).
func (c *activeCell) Set(u *prompt.UiInput) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = u
}
