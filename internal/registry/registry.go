package registry

import (
	"errors"
	"fmt"
	"sync"
)

// TaskID identifies a task. IDs are opaque strings chosen at registration.
type TaskID string

// DefaultCapacity bounds the registry when no explicit capacity is given.
const DefaultCapacity = 12

// Sentinel errors returned by registry operations.
var (
	// ErrRegistryFull is returned when registering a new task at capacity.
	ErrRegistryFull = errors.New("task registry is full")

	// ErrInvalidPriority is returned when registering with the None priority.
	ErrInvalidPriority = errors.New("base priority must be a known value")
)

// Entry pairs a task identity with its registered base priority.
type Entry struct {
	ID   TaskID
	Base Priority
}

// Option configures a Registry.
type Option func(*Registry)

// WithCapacity overrides the maximum number of registrable tasks.
// Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.capacity = n
		}
	}
}

// Registry maps task identities to static base priorities. Entries are
// written once at startup and read on every admission check afterwards.
type Registry struct {
	mu       sync.RWMutex
	capacity int
	base     map[TaskID]Priority
	order    []TaskID
}

// New creates an empty Registry with DefaultCapacity unless overridden.
func New(opts ...Option) *Registry {
	r := &Registry{
		capacity: DefaultCapacity,
		base:     make(map[TaskID]Priority),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register records a task's base priority. Re-registering a known task
// replaces its priority without consuming capacity. Registering a new task
// at capacity returns ErrRegistryFull; callers log and continue, since an
// unregistered task resolves to None and fails admission checks from then
// on rather than breaking anything.
func (r *Registry) Register(id TaskID, base Priority) error {
	if !base.Known() {
		return fmt.Errorf("%w: task %q", ErrInvalidPriority, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.base[id]; ok {
		r.base[id] = base
		return nil
	}
	if len(r.base) >= r.capacity {
		return fmt.Errorf("%w: capacity %d, dropping %q", ErrRegistryFull, r.capacity, id)
	}
	r.base[id] = base
	r.order = append(r.order, id)
	return nil
}

// BasePriority returns the registered priority for id, or None if the task
// was never registered. No side effects.
func (r *Registry) BasePriority(id TaskID) Priority {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.base[id]
}

// Entries returns the registered tasks in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, Entry{ID: id, Base: r.base[id]})
	}
	return entries
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.base)
}

// Capacity returns the maximum number of registrable tasks.
func (r *Registry) Capacity() int {
	return r.capacity
}
