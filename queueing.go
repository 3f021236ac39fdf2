// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import (
	"context"
	"iter"
)

// QueueingEmitter is an Emitter that keeps emissions made while nobody is
// listening and delivers them, in order, as soon as a listener subscribes.
//
// Once all listeners unsubscribe it resumes queueing. The backlog is a
// [Queue], so it grows without bound while there are no listeners.
//
// Thread safety: Emit and Subscribe must be called from the same goroutine,
// otherwise a direct emission can overtake the backlog.
type QueueingEmitter[T any] struct {
	Emitter[T]
	qmu     spinLock
	backlog *Queue[T]
}

// NewQueueingEmitter creates an empty queueing emitter.
// The zero value is also ready to use.
func NewQueueingEmitter[T any]() *QueueingEmitter[T] {
	return &QueueingEmitter[T]{backlog: NewQueue[T](DefaultCapacity)}
}

// Emit delivers v to every listener, or queues it if there are none.
func (e *QueueingEmitter[T]) Emit(v T) {
	if e.HasListeners() {
		e.Emitter.Emit(v)
		return
	}
	e.qmu.lock()
	e.queue().Enqueue(v)
	e.qmu.unlock()
}

// Subscribe registers l, then drains the backlog to every listener.
//
// A panicking listener does not stop the drain. After the backlog is empty,
// the last recovered panic is raised again from Subscribe.
func (e *QueueingEmitter[T]) Subscribe(l *Listener[T]) (*Listener[T], error) {
	if _, err := e.Emitter.Subscribe(l); err != nil {
		return nil, err
	}
	if p, ok := e.drain(); ok {
		panic(p)
	}
	return l, nil
}

// Backlog returns the number of queued emissions.
func (e *QueueingEmitter[T]) Backlog() int {
	e.qmu.lock()
	n := e.queue().Len()
	e.qmu.unlock()
	return n
}

// queue returns the backlog, allocating it on first use.
// Callers hold qmu.
func (e *QueueingEmitter[T]) queue() *Queue[T] {
	if e.backlog == nil {
		e.backlog = NewQueue[T](DefaultCapacity)
	}
	return e.backlog
}

func (e *QueueingEmitter[T]) drain() (last any, panicked bool) {
	e.qmu.lock()
	if e.queue().Len() == 0 {
		e.qmu.unlock()
		return nil, false
	}
	e.qmu.unlock()

	for {
		e.qmu.lock()
		v, err := e.backlog.Dequeue()
		e.qmu.unlock()
		if err != nil {
			break
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					last, panicked = r, true
				}
			}()
			e.Emitter.Emit(v)
		}()
	}

	// Release a backlog that grew while nobody was listening.
	e.qmu.lock()
	e.backlog.Clear()
	e.qmu.unlock()
	return last, panicked
}

// Iterator returns a new Iterator subscribed to e.
// Queued emissions become its first values.
func (e *QueueingEmitter[T]) Iterator() *Iterator[T] {
	return mustIterator[T](e, e.options())
}

// All ranges over the backlog followed by every later emission.
func (e *QueueingEmitter[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return all[T](ctx, e, e.options())
}

var (
	_ Source[int] = (*QueueingEmitter[int])(nil)
	_ Sink[int]   = (*QueueingEmitter[int])(nil)
)
