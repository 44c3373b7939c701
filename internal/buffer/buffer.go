// Package buffer holds log entries between the dispatcher and the file sink.
package buffer

import (
	"sync"

	"github.com/tungetti/daylog/internal/record"
)

// Buffer is an unbounded, ordered, concurrency-safe queue of entries.
// Producers Append; the sink Drains everything at once. The lock is held
// only for the slice operation.
type Buffer struct {
	mu      sync.Mutex
	entries []record.Entry
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Append adds e to the tail.
func (b *Buffer) Append(e record.Entry) {
	b.mu.Lock()
	b.entries = append(b.entries, e)
	b.mu.Unlock()
}

// Drain removes and returns every held entry in insertion order. It returns
// nil when the buffer is empty.
func (b *Buffer) Drain() []record.Entry {
	b.mu.Lock()
	entries := b.entries
	b.entries = nil
	b.mu.Unlock()
	return entries
}

// Len returns the number of held entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
