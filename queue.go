// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import "github.com/rs/zerolog"

// DefaultCapacity is the initial capacity used when none is given.
const DefaultCapacity = 16

// Queue is an unbounded FIFO queue backed by a growable circular buffer.
//
// Enqueue and Dequeue are amortized O(1). When the buffer is full, Enqueue
// doubles the capacity and moves the shorter of the two wrapped segments,
// so a single growth copies at most half of the old capacity.
//
// Queue is not safe for concurrent use. It is owned by whichever component
// embeds it.
//
// Memory: O(peak length), the buffer never shrinks until Clear
type Queue[T any] struct {
	buffer   []T
	head     int // Oldest element
	tail     int // Newest element, -1 before the first Enqueue
	length   int
	capacity int // Capacity to allocate after Clear
	log      *zerolog.Logger
}

// NewQueue creates a new queue with the given initial capacity.
// Panics if capacity < 1.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		panic("emit: capacity must be >= 1")
	}
	return &Queue[T]{
		buffer:   make([]T, capacity),
		tail:     -1,
		capacity: capacity,
	}
}

// Enqueue appends item at the tail, growing the buffer if it is full.
func (q *Queue[T]) Enqueue(item T) {
	if q.length == len(q.buffer) {
		q.grow()
	}
	q.tail = (q.tail + 1) % len(q.buffer)
	q.buffer[q.tail] = item
	q.length++
}

// Dequeue removes and returns the element at the head.
// Returns (zero-value, ErrEmptyQueue) if the queue is empty.
func (q *Queue[T]) Dequeue() (T, error) {
	var zero T
	if q.length == 0 {
		return zero, ErrEmptyQueue
	}
	item := q.buffer[q.head]
	q.buffer[q.head] = zero
	q.head = (q.head + 1) % len(q.buffer)
	q.length--
	return item, nil
}

// Peek returns the element at the head without removing it.
// Returns (zero-value, ErrEmptyQueue) if the queue is empty.
func (q *Queue[T]) Peek() (T, error) {
	if q.length == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}
	return q.buffer[q.head], nil
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	return q.length
}

// Cap returns the current capacity of the backing buffer.
func (q *Queue[T]) Cap() int {
	return len(q.buffer)
}

// Clear drops all elements and releases the backing buffer.
// The queue stays usable: the next Enqueue allocates the initial capacity again.
func (q *Queue[T]) Clear() {
	q.buffer = nil
	q.head = 0
	q.tail = -1
	q.length = 0
}

// grow doubles the capacity of a full buffer.
//
// The live run is [head, prev) followed by [0, head). After doubling, one of
// the two segments must move so the run is contiguous modulo the new size:
//
//	head <= prev/2: move [0, head) to [prev, prev+head), tail += prev
//	head >  prev/2: move [head, prev) to [prev+head, 2*prev), head += prev
func (q *Queue[T]) grow() {
	prev := len(q.buffer)
	if prev == 0 {
		q.buffer = make([]T, q.capacity)
		q.head, q.tail = 0, -1
		return
	}

	buf := make([]T, prev*2)
	copy(buf, q.buffer)
	var zero T
	if q.head*2 <= prev {
		if q.head != 0 {
			for i := 0; i < q.head; i++ {
				buf[prev+i] = buf[i]
				buf[i] = zero
			}
			q.tail += prev
		}
	} else {
		for i := q.tail + 1; i < prev; i++ {
			buf[prev+i] = buf[i]
			buf[i] = zero
		}
		q.head += prev
	}
	q.buffer = buf

	logger(q.log).Debug().
		Int("from", prev).
		Int("to", len(buf)).
		Int("head", q.head).
		Msg("queue grow")
}
