package notify

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestQueueFIFOAndCapacity(t *testing.T) {
	q := NewQueue(DefaultQueueCapacity)

	// Fill to capacity; every enqueue succeeds in order.
	var want []string
	for i := 0; i < q.Cap(); i++ {
		text := fmt.Sprintf("Temp:%dC Fan:1", 20+i)
		want = append(want, text)
		if !q.TryEnqueue(NewRecord("temperature", text)) {
			t.Fatalf("TryEnqueue %d should succeed below capacity", i)
		}
	}

	// The (capacity+1)-th enqueue fails without a dequeue.
	if q.TryEnqueue(NewRecord("temperature", "overflow")) {
		t.Fatal("enqueue beyond capacity should fail")
	}
	if got := q.Len(); got != q.Cap() {
		t.Errorf("Len() = %d, want %d", got, q.Cap())
	}

	// Dequeue yields production order.
	for i, text := range want {
		r, ok := q.TryDequeue()
		if !ok {
			t.Fatalf("TryDequeue %d returned no record", i)
		}
		if r.Text != text {
			t.Errorf("record %d = %q, want %q", i, r.Text, text)
		}
		if r.Source != "temperature" {
			t.Errorf("record %d source = %q, want %q", i, r.Source, "temperature")
		}
	}

	if _, ok := q.TryDequeue(); ok {
		t.Error("TryDequeue on a drained queue should report false")
	}
}

func TestNewQueueDefaultCapacity(t *testing.T) {
	if got := NewQueue(0).Cap(); got != DefaultQueueCapacity {
		t.Errorf("Cap() = %d, want %d", got, DefaultQueueCapacity)
	}
	if got := NewQueue(-3).Cap(); got != DefaultQueueCapacity {
		t.Errorf("Cap() = %d, want %d", got, DefaultQueueCapacity)
	}
	if got := NewQueue(8).Cap(); got != 8 {
		t.Errorf("Cap() = %d, want 8", got)
	}
}

func TestDequeueTimeout(t *testing.T) {
	q := NewQueue(0)

	start := time.Now()
	_, ok := q.Dequeue(context.Background(), 30*time.Millisecond)
	if ok {
		t.Fatal("Dequeue on an empty queue should time out")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Dequeue returned after %v, expected it to wait out the timeout", elapsed)
	}
}

func TestDequeueReceivesConcurrentEnqueue(t *testing.T) {
	q := NewQueue(0)

	go func() {
		time.Sleep(10 * time.Millisecond)
		q.TryEnqueue(NewRecord("light", "Light:55 Level:2"))
	}()

	r, ok := q.Dequeue(context.Background(), time.Second)
	if !ok {
		t.Fatal("Dequeue should receive the concurrently enqueued record")
	}
	if r.Text != "Light:55 Level:2" {
		t.Errorf("record text = %q, want %q", r.Text, "Light:55 Level:2")
	}
}

func TestDequeueContextCancelled(t *testing.T) {
	q := NewQueue(0)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool, 1)
	go func() {
		_, ok := q.Dequeue(ctx, time.Second)
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case ok := <-done:
		if ok {
			t.Error("cancelled Dequeue should report false")
		}
	case <-time.After(time.Second):
		t.Fatal("cancelled Dequeue did not return")
	}
}

func TestNewRecordClipsText(t *testing.T) {
	long := strings.Repeat("x", MaxTextLen+25)
	r := NewRecord("logger", long)

	if got := len([]rune(r.Text)); got != MaxTextLen {
		t.Errorf("clipped text length = %d, want %d", got, MaxTextLen)
	}
	if r.At.IsZero() {
		t.Error("record timestamp should be set")
	}

	short := NewRecord("logger", "Temp:23C Fan:1")
	if short.Text != "Temp:23C Fan:1" {
		t.Errorf("short text modified: %q", short.Text)
	}
}
