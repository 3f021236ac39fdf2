// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import (
	"context"
	"iter"
	"slices"

	"github.com/rs/zerolog"
)

// Emitter fans a single kind of event out to its listeners.
//
// Emit calls every listener synchronously, in subscription order, on the
// caller's goroutine. Subscribing the same listener twice and unsubscribing
// a listener that is not listening both fail.
//
// Fan-out walks the live listener list by index. A listener subscribed
// during Emit receives the value being emitted. Unsubscribing a listener at
// or before the current position shifts the rest down by one, so the
// listener right after it misses that emission. Listeners may subscribe and
// unsubscribe re-entrantly.
//
// The zero value is ready to use.
//
// Thread safety: Subscribe, Unsubscribe and HasListeners are safe from any
// goroutine. Emit must be called from a single goroutine at a time to keep
// emission order.
type Emitter[T any] struct {
	mu        spinLock
	listeners []*Listener[T]
	log       *zerolog.Logger
}

// NewEmitter creates an empty emitter.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// Emit delivers v to every listener.
func (e *Emitter[T]) Emit(v T) {
	for i := 0; ; i++ {
		e.mu.lock()
		if i >= len(e.listeners) {
			e.mu.unlock()
			return
		}
		l := e.listeners[i]
		e.mu.unlock()
		l.Call(v)
	}
}

// Subscribe registers l and returns it.
// Returns ErrAlreadySubscribed if l is already listening.
func (e *Emitter[T]) Subscribe(l *Listener[T]) (*Listener[T], error) {
	if l == nil {
		return nil, misuse(e.log, ErrNilListener)
	}
	e.mu.lock()
	if slices.Contains(e.listeners, l) {
		e.mu.unlock()
		return nil, misuse(e.log, ErrAlreadySubscribed)
	}
	e.listeners = append(e.listeners, l)
	e.mu.unlock()
	return l, nil
}

// Unsubscribe removes l.
// Returns ErrNotSubscribed if l is not listening.
func (e *Emitter[T]) Unsubscribe(l *Listener[T]) error {
	e.mu.lock()
	i := slices.Index(e.listeners, l)
	if i == -1 {
		e.mu.unlock()
		return misuse(e.log, ErrNotSubscribed)
	}
	e.listeners = slices.Delete(e.listeners, i, i+1)
	e.mu.unlock()
	return nil
}

// HasListeners reports whether at least one listener is subscribed.
func (e *Emitter[T]) HasListeners() bool {
	return e.Len() != 0
}

// Len returns the number of subscribed listeners.
func (e *Emitter[T]) Len() int {
	e.mu.lock()
	n := len(e.listeners)
	e.mu.unlock()
	return n
}

// Iterator returns a new Iterator subscribed to e.
func (e *Emitter[T]) Iterator() *Iterator[T] {
	return mustIterator[T](e, e.options())
}

// All returns a sequence of every value emitted from the moment ranging
// starts. See [Iterator.All] for termination rules.
//
// Example:
//
//	for v, err := range e.All(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    if v == 3 {
//	        break // unsubscribes
//	    }
//	}
func (e *Emitter[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return all[T](ctx, e, e.options())
}

func (e *Emitter[T]) options() Options {
	return Options{capacity: DefaultCapacity, log: e.log}
}

// misuse logs err at warn level and returns it.
func misuse(log *zerolog.Logger, err error) error {
	logger(log).Warn().Err(err).Msg("emit: misuse")
	return err
}
