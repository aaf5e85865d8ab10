package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/memoryxin/battlechess/internal/dependencies/clock"
)

// Audit appends one human-readable line per user event (signin, signup,
// match, quit) to its writer: "2006-01-02 15:04:05 : <name> <op>。"
type Audit struct {
	mu    sync.Mutex
	w     io.Writer
	clock clock.Clock
}

// NewAudit creates an audit log writing to w
func NewAudit(w io.Writer, clk clock.Clock) *Audit {
	return &Audit{w: w, clock: clk}
}

// Nop returns an audit log that discards everything, for tests
func Nop() *Audit {
	return NewAudit(io.Discard, clock.New())
}

// Event records that a user (or pair of users) did something
func (a *Audit) Event(name, op string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := a.clock.Now().Format("2006-01-02 15:04:05")
	// Write errors are deliberately ignored; the audit log must never take
	// the server down
	_, _ = fmt.Fprintf(a.w, "%s : %s %s。\n", now, name, op)
}
