// Package panel models the contended output panel the periodic tasks drive:
// fan and lamp level indicators, the motion flash, the heartbeat, and the
// overheat alert.
package panel

import "sync"

// State is the output panel snapshot.
type State struct {
	FanLevel  int  // 0..3, driven by temperature
	LampLevel int  // 0..3, driven by ambient light
	Flash     bool // motion override: everything lit
	Heartbeat bool // clock blink
	Alert     bool // overheat warning active
}

// Board holds the shared panel state. Its mutex only prevents torn reads by
// the renderer; exclusion between producer tasks is exactly as good as the
// ceiling discipline wrapped around each update. The degraded fallback path
// writes without one.
type Board struct {
	mu    sync.Mutex
	state State
}

// NewBoard creates a Board with everything off.
func NewBoard() *Board {
	return &Board{}
}

// Update mutates the panel state in place. fn must not block.
func (b *Board) Update(fn func(*State)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.state)
}

// Snapshot returns a copy of the current state.
func (b *Board) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
