package notify

import (
	"context"
	"time"
)

// DefaultQueueCapacity bounds the log queue when no explicit size is given.
const DefaultQueueCapacity = 5

// Queue is the bounded FIFO log channel between producer tasks and the one
// draining consumer. A buffered channel provides the capacity bound, the
// ordering, and the internal synchronization.
type Queue struct {
	ch chan Record
}

// NewQueue creates a Queue with the given capacity, or
// DefaultQueueCapacity when capacity is not positive.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{ch: make(chan Record, capacity)}
}

// TryEnqueue appends r and reports true, or reports false without blocking
// when the queue is full. A false return means the log line was dropped;
// producers treat that as an ordinary outcome.
func (q *Queue) TryEnqueue(r Record) bool {
	select {
	case q.ch <- r:
		return true
	default:
		return false
	}
}

// Dequeue waits up to timeout for the next record. The second return is
// false when the timeout elapsed or ctx was done first; the consumer takes
// no action and retries later.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (Record, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-q.ch:
		return r, true
	case <-timer.C:
		return Record{}, false
	case <-ctx.Done():
		return Record{}, false
	}
}

// TryDequeue returns the next record without waiting, or false when none is
// available yet.
func (q *Queue) TryDequeue() (Record, bool) {
	select {
	case r := <-q.ch:
		return r, true
	default:
		return Record{}, false
	}
}

// Len returns the number of queued records.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Cap returns the fixed capacity.
func (q *Queue) Cap() int {
	return cap(q.ch)
}
