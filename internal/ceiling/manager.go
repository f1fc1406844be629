package ceiling

import (
	"context"
	"sync"
	"time"

	"github.com/Iron-Ham/hestia/internal/registry"
)

// DefaultBackoff is the delay between immediate-ceiling claim retries.
const DefaultBackoff = 5 * time.Millisecond

// PriorityLookup resolves a task's base priority at admission time.
// *registry.Registry satisfies it.
type PriorityLookup interface {
	BasePriority(registry.TaskID) registry.Priority
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackoff overrides the retry delay used by Claim. Tests set this near
// zero for determinism. Non-positive values are ignored.
func WithBackoff(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.backoff = d
		}
	}
}

// Manager holds the system-wide ceiling state: the immediate-ceiling owner
// and the original-ceiling system ceiling, both guarded by one mutex. The
// zero state (no owner, no ceiling) means the protected region is free.
type Manager struct {
	prios   PriorityLookup
	backoff time.Duration

	mu      sync.Mutex
	owner   registry.TaskID
	ceiling registry.Priority
}

// New creates a Manager resolving priorities through prios, which must be
// non-nil. The retry backoff defaults to DefaultBackoff.
func New(prios PriorityLookup, opts ...Option) *Manager {
	m := &Manager{
		prios:   prios,
		backoff: DefaultBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TryClaim attempts the immediate-ceiling acquisition: if no owner is
// recorded, task becomes the owner and TryClaim reports true. Any recorded
// owner, the caller included, makes it report false. The empty TaskID never
// acquires.
func (m *Manager) TryClaim(task registry.TaskID) bool {
	if task == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owner != "" {
		return false
	}
	m.owner = task
	return true
}

// Claim retries TryClaim with the configured backoff until it succeeds or
// ctx is done. This is the retry loop producers sit in when the protected
// region is busy; it has no overall deadline of its own.
func (m *Manager) Claim(ctx context.Context, task registry.TaskID) error {
	for {
		if m.TryClaim(task) {
			return nil
		}

		timer := time.NewTimer(m.backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// Release clears the owner only when it equals task; any other call is a
// no-op reporting false. Non-owner releases never change the owner.
func (m *Manager) Release(task registry.TaskID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if task == "" || m.owner != task {
		return false
	}
	m.owner = ""
	return true
}

// Owner returns the current immediate-ceiling owner, or empty when free.
func (m *Manager) Owner() registry.TaskID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owner
}

// Raise attempts the original-ceiling acquisition for a resource with the
// given ceiling: the caller's base priority must dominate the resource
// ceiling, and the system ceiling must be unset or dominated as well. On
// grant the resource ceiling becomes the system ceiling. A caller unknown to
// the registry resolves to None and is always refused.
func (m *Manager) Raise(task registry.TaskID, resource registry.Priority) bool {
	// Resolve before taking the state lock; the lookup has its own lock and
	// nothing may hold both at once.
	prio := m.prios.BasePriority(task)

	m.mu.Lock()
	defer m.mu.Unlock()

	if !prio.AtLeast(resource) {
		return false
	}
	if m.ceiling.Known() && !prio.AtLeast(m.ceiling) {
		return false
	}
	m.ceiling = resource
	return true
}

// Lower clears the system ceiling only when it equals resource, reporting
// whether it did. The releasing task is not consulted; only the ceiling
// match decides. Nested holds and two same-valued ceilings held at once
// cannot be expressed in this model.
func (m *Manager) Lower(task registry.TaskID, resource registry.Priority) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !resource.Known() || m.ceiling != resource {
		return false
	}
	m.ceiling = registry.None
	return true
}

// SystemCeiling returns the current system ceiling, or None when unset.
func (m *Manager) SystemCeiling() registry.Priority {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ceiling
}
