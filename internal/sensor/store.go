// Package sensor holds the shared sensor snapshot behind a bounded-wait lock.
package sensor

import (
	"context"
	"errors"
	"time"
)

// Reading is the shared sensor snapshot. A single instance lives in a Store
// and is mutated only while the store lock is held, so consumers always see
// fields from fully completed updates, never a mix.
type Reading struct {
	Temperature int  // degrees Celsius
	Light       int  // 0 = bright, 100 = dark
	Motion      bool // motion currently detected
}

// ErrLockTimeout is returned when the store lock was not acquired within the
// bounded wait. Writers drop the update; readers skip the cycle and keep
// their stale snapshot.
var ErrLockTimeout = errors.New("sensor store lock timed out")

// DefaultLockTimeout bounds lock acquisition when no override is given.
const DefaultLockTimeout = 50 * time.Millisecond

// Option configures a Store.
type Option func(*Store)

// WithLockTimeout overrides the bounded wait for lock acquisition.
// Non-positive values are ignored.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithInitial seeds the store with a starting reading.
func WithInitial(r Reading) Option {
	return func(s *Store) {
		s.reading = r
	}
}

// Store guards one Reading with an exclusive lock whose acquisition is
// timeout-bounded. A single short-hold lock, not an RWMutex: contention here
// is low-frequency and the bounded wait is the point of the design.
//
// The lock is a buffered channel of capacity 1; holding the token is holding
// the lock. Acquisition races a timer and the caller's context.
type Store struct {
	sem     chan struct{}
	timeout time.Duration
	reading Reading
}

// NewStore creates a Store with DefaultLockTimeout unless overridden.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sem:     make(chan struct{}, 1),
		timeout: DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update acquires the lock with the bounded wait, runs fn against the shared
// reading, and releases. fn runs while the lock is held and must not block.
// Returns ErrLockTimeout when the wait elapsed, or the context error when the
// caller was cancelled first; in both cases the update did not take effect.
func (s *Store) Update(ctx context.Context, fn func(*Reading)) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	fn(&s.reading)
	return nil
}

// Write replaces the whole shared reading under the same discipline as Update.
func (s *Store) Write(ctx context.Context, r Reading) error {
	return s.Update(ctx, func(cur *Reading) { *cur = r })
}

// Read returns a consistent snapshot of the shared reading. On timeout the
// zero Reading and ErrLockTimeout are returned and the caller skips its
// consumption cycle.
func (s *Store) Read(ctx context.Context) (Reading, error) {
	if err := s.acquire(ctx); err != nil {
		return Reading{}, err
	}
	defer s.release()

	return s.reading, nil
}

func (s *Store) acquire(ctx context.Context) error {
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case s.sem <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrLockTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.sem
}
