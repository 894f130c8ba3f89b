// Package scrollback holds a bounded FIFO of rows that scrolled off a screen.
package scrollback

// Buffer is a ring of at most Cap() entries. Pushing onto a full buffer
// evicts the oldest entry. Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	items    []T
	start    int
	capacity int
}

// New returns an empty buffer holding at most capacity entries.
// A negative capacity is treated as zero.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer[T]{capacity: capacity}
}

// Len returns the number of stored entries.
func (b *Buffer[T]) Len() int { return len(b.items) }

// Cap returns the maximum number of entries.
func (b *Buffer[T]) Cap() int { return b.capacity }

// Push appends v as the newest entry and reports whether the oldest entry
// was evicted to make room.
func (b *Buffer[T]) Push(v T) (evicted bool) {
	if b.capacity == 0 {
		return true
	}
	if len(b.items) < b.capacity {
		b.items = append(b.items, v)
		return false
	}
	b.items[b.start] = v
	b.start = (b.start + 1) % b.capacity
	return true
}

// At returns the i-th entry, 0 being the oldest.
func (b *Buffer[T]) At(i int) T {
	if i < 0 || i >= len(b.items) {
		panic("scrollback: index out of range")
	}
	return b.items[(b.start+i)%len(b.items)]
}

// Newest returns the most recently pushed entry.
func (b *Buffer[T]) Newest() (T, bool) {
	var zero T
	if len(b.items) == 0 {
		return zero, false
	}
	return b.At(len(b.items) - 1), true
}

// Slice returns the entries oldest first in a new slice.
func (b *Buffer[T]) Slice() []T {
	out := make([]T, len(b.items))
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}

// Clear drops every entry and keeps the capacity.
func (b *Buffer[T]) Clear() {
	b.items = nil
	b.start = 0
}

// SetCapacity changes the bound, dropping the oldest entries that no longer
// fit. It returns how many entries were dropped.
func (b *Buffer[T]) SetCapacity(capacity int) (dropped int) {
	if capacity < 0 {
		capacity = 0
	}
	all := b.Slice()
	if len(all) > capacity {
		dropped = len(all) - capacity
		all = all[dropped:]
	}
	b.items = all
	b.start = 0
	b.capacity = capacity
	return dropped
}
