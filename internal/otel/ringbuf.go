package otel

import "sync"

// DefaultRingSize is the ring capacity used when a non-positive size is given.
const DefaultRingSize = 512

// RingBuffer keeps the most recent events in a fixed-size circular buffer.
// Safe for concurrent use.
type RingBuffer struct {
	mu    sync.Mutex
	buf   []Event
	next  int // next write position
	count int
}

// NewRingBuffer creates a ring buffer holding up to size events.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{buf: make([]Event, size)}
}

// Push adds an event, evicting the oldest when full. The Extra map is
// copied so later mutation by the caller does not leak into the buffer.
func (r *RingBuffer) Push(e Event) {
	if e.Extra != nil {
		extra := make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			extra[k] = v
		}
		e.Extra = extra
	}

	r.mu.Lock()
	r.buf[r.next] = e
	r.next = (r.next + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	r.mu.Unlock()
}

// Snapshot returns every buffered event, oldest first.
func (r *RingBuffer) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tailLocked(r.count)
}

// Last returns the n most recent events, oldest first. Returns nil for n <= 0.
func (r *RingBuffer) Last(n int) []Event {
	if n <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > r.count {
		n = r.count
	}
	return r.tailLocked(n)
}

func (r *RingBuffer) tailLocked(n int) []Event {
	if n == 0 {
		return nil
	}
	size := len(r.buf)
	out := make([]Event, n)
	start := (r.next - n + size) % size
	for i := 0; i < n; i++ {
		out[i] = r.buf[(start+i)%size]
	}
	return out
}

// Len returns the number of buffered events.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int {
	return len(r.buf)
}

// Stats counts buffered events by kind.
func (r *RingBuffer) Stats() map[EventKind]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[EventKind]int)
	for _, e := range r.tailLocked(r.count) {
		counts[e.Kind]++
	}
	return counts
}
