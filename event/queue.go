package event

import (
	"sync/atomic"
)

// DefaultQueueSize is the capacity used when NewQueue gets a non power of two
const DefaultQueueSize = 256

// Queue is a lock-free MPSC ring buffer handing items to the frame loop
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Drain/TryPop: Single consumer (frame loop), never block
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest items overwritten when full
type Queue[T any] struct {
	items     []T
	published []atomic.Bool // True = slot fully written
	mask      uint64
	size      uint64
	head      atomic.Uint64 // Read index
	tail      atomic.Uint64 // Write index
	dropped   atomic.Uint64
}

// NewQueue creates a queue; size must be a power of two
func NewQueue[T any](size int) *Queue[T] {
	if size <= 0 || size&(size-1) != 0 {
		size = DefaultQueueSize
	}
	return &Queue[T]{
		items:     make([]T, size),
		published: make([]atomic.Bool, size),
		mask:      uint64(size - 1),
		size:      uint64(size),
	}
}

// Push adds an item; returns false if an unread item was overwritten
func (q *Queue[T]) Push(item T) bool {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & q.mask

			q.items[idx] = item
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread items
			currentHead := q.head.Load()
			if nextTail-currentHead > q.size {
				q.head.CompareAndSwap(currentHead, nextTail-q.size)
				q.dropped.Add(1)
				return false
			}
			return true
		}
	}
}

// Drain returns all pending items in FIFO order and advances head
func (q *Queue[T]) Drain() []T {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > q.size {
			maxAvailable = q.size
			currentHead = currentTail - q.size
		}

		result := make([]T, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & q.mask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.items[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// TryPop removes the oldest item if one is ready
func (q *Queue[T]) TryPop() (T, bool) {
	var zero T
	for {
		currentHead := q.head.Load()
		if q.tail.Load() == currentHead {
			return zero, false
		}

		idx := currentHead & q.mask
		if !q.published[idx].Load() {
			return zero, false
		}
		item := q.items[idx]

		if q.head.CompareAndSwap(currentHead, currentHead+1) {
			q.published[idx].Store(false)
			q.items[idx] = zero
			return item, true
		}
	}
}

// Len returns the approximate number of pending items
func (q *Queue[T]) Len() int {
	n := q.tail.Load() - q.head.Load()
	if n > q.size {
		n = q.size
	}
	return int(n)
}

// Dropped returns how many items were overwritten before being read
func (q *Queue[T]) Dropped() uint64 {
	return q.dropped.Load()
}
