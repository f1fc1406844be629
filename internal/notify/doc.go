// Package notify carries the two fixed-topology signals between producer
// and consumer tasks: named event flags and a bounded log queue.
//
// This is not a pub/sub framework. The topology is fixed at wiring time:
// producers set flags for known recipients and push records into one queue
// drained by one consumer.
//
// # Event Flags
//
// [Flags] keeps a set of named boolean flags per recipient task. Producers
// call [Flags.Set]; the recipient blocks in [Flags.Wait] on the logical OR
// of the flags it cares about, with a bounded timeout doubling as a periodic
// poll fallback. The wake carries no flag identity; the consumer re-reads
// shared state itself. Flags set before the wait are not lost; they stay
// pending until consumed. Each recipient is expected to have one waiting
// task.
//
// # Log Queue
//
// [Queue] is a fixed-capacity FIFO of [Record] values. [Queue.TryEnqueue]
// never blocks: a full queue means the record is dropped and the producer
// carries on. A dropped log line is an accepted cost, never a fault.
// [Queue.Dequeue] gives the draining consumer a bounded wait, and
// [Queue.TryDequeue] is the pull accessor for collaborators that poll.
// Records are delivered in enqueue-success order; producers racing each
// other resolve their interleaving only by who enqueued first.
//
// # Thread Safety
//
// All methods on [Flags] and [Queue] are safe for concurrent use.
package notify
