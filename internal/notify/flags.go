package notify

import (
	"context"
	"sync"
	"time"

	"github.com/Iron-Ham/hestia/internal/registry"
)

// Flag names one boolean wake condition a producer can set for a consumer.
type Flag string

// Flags is the event-flag hub. Each recipient task has its own pending set
// and wake channel; setting a flag for one recipient never disturbs another.
type Flags struct {
	mu    sync.Mutex
	state map[registry.TaskID]*flagState
}

type flagState struct {
	pending map[Flag]bool
	wake    chan struct{} // capacity 1; a token means "pending set changed"
}

// NewFlags creates an empty flag hub.
func NewFlags() *Flags {
	return &Flags{state: make(map[registry.TaskID]*flagState)}
}

// stateFor returns the recipient's state, creating it on first touch.
// Callers must hold f.mu.
func (f *Flags) stateFor(recipient registry.TaskID) *flagState {
	st, ok := f.state[recipient]
	if !ok {
		st = &flagState{
			pending: make(map[Flag]bool),
			wake:    make(chan struct{}, 1),
		}
		f.state[recipient] = st
	}
	return st
}

// Set marks flag pending for recipient and wakes its waiter if one is
// blocked. Setting an already-pending flag coalesces; flags set before the
// recipient ever waits stay pending until consumed.
func (f *Flags) Set(recipient registry.TaskID, flag Flag) {
	f.mu.Lock()
	st := f.stateFor(recipient)
	st.pending[flag] = true
	f.mu.Unlock()

	select {
	case st.wake <- struct{}{}:
	default:
	}
}

// Wait blocks until any of the listed flags is pending for recipient, the
// timeout elapses, or ctx is done. Every pending listed flag is consumed on
// wake. The report is true on wake and false on timeout, never saying which
// flag fired; the consumer re-checks shared state.
func (f *Flags) Wait(ctx context.Context, recipient registry.TaskID, timeout time.Duration, flags ...Flag) bool {
	if len(flags) == 0 {
		return false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	f.mu.Lock()
	wake := f.stateFor(recipient).wake
	f.mu.Unlock()

	for {
		if f.consume(recipient, flags) {
			return true
		}

		select {
		case <-wake:
			// Re-check: the token may be for a flag outside our set, or one
			// already consumed. The timer keeps the overall wait bounded.
		case <-timer.C:
			return false
		case <-ctx.Done():
			return false
		}
	}
}

// consume clears every pending flag from the given set and reports whether
// any was pending.
func (f *Flags) consume(recipient registry.TaskID, flags []Flag) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := f.stateFor(recipient)
	hit := false
	for _, fl := range flags {
		if st.pending[fl] {
			delete(st.pending, fl)
			hit = true
		}
	}
	return hit
}
