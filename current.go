// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import (
	"context"
	"iter"
)

// CurrentEmitter is an Emitter that always holds a current value.
//
// It starts with an initial value, records every emission as the new
// current value, and calls each new listener with the current value as
// soon as it subscribes.
type CurrentEmitter[T any] struct {
	Emitter[T]
	cmu     spinLock
	current T
}

// NewCurrentEmitter creates an emitter whose current value is initial.
func NewCurrentEmitter[T any](initial T) *CurrentEmitter[T] {
	return &CurrentEmitter[T]{current: initial}
}

// Emit records v as the current value, then delivers it to every listener.
func (e *CurrentEmitter[T]) Emit(v T) {
	e.cmu.lock()
	e.current = v
	e.cmu.unlock()
	e.Emitter.Emit(v)
}

// Subscribe registers l, then calls it with the current value.
func (e *CurrentEmitter[T]) Subscribe(l *Listener[T]) (*Listener[T], error) {
	if _, err := e.Emitter.Subscribe(l); err != nil {
		return nil, err
	}
	l.Call(e.Current())
	return l, nil
}

// Current returns the current value.
func (e *CurrentEmitter[T]) Current() T {
	e.cmu.lock()
	v := e.current
	e.cmu.unlock()
	return v
}

// Iterator returns a new Iterator subscribed to e.
// Its first value is the current value.
func (e *CurrentEmitter[T]) Iterator() *Iterator[T] {
	return mustIterator[T](e, e.options())
}

// All ranges over the current value followed by every later emission.
func (e *CurrentEmitter[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return all[T](ctx, e, e.options())
}

// OptionalCurrentEmitter is like CurrentEmitter, but may start without a
// current value. Until the first Emit, new listeners receive nothing.
//
// The zero value of T is a valid current value: use
// NewOptionalCurrentEmitterOf(zero) to replay it.
type OptionalCurrentEmitter[T any] struct {
	Emitter[T]
	cmu     spinLock
	current T
	has     bool
}

// NewOptionalCurrentEmitter creates an emitter without a current value.
func NewOptionalCurrentEmitter[T any]() *OptionalCurrentEmitter[T] {
	return &OptionalCurrentEmitter[T]{}
}

// NewOptionalCurrentEmitterOf creates an emitter whose current value is initial.
func NewOptionalCurrentEmitterOf[T any](initial T) *OptionalCurrentEmitter[T] {
	return &OptionalCurrentEmitter[T]{current: initial, has: true}
}

// Emit records v as the current value, then delivers it to every listener.
func (e *OptionalCurrentEmitter[T]) Emit(v T) {
	e.cmu.lock()
	e.current, e.has = v, true
	e.cmu.unlock()
	e.Emitter.Emit(v)
}

// Subscribe registers l, then calls it with the current value if there is one.
func (e *OptionalCurrentEmitter[T]) Subscribe(l *Listener[T]) (*Listener[T], error) {
	if _, err := e.Emitter.Subscribe(l); err != nil {
		return nil, err
	}
	if v, ok := e.Current(); ok {
		l.Call(v)
	}
	return l, nil
}

// Current returns the current value and whether one has been set.
func (e *OptionalCurrentEmitter[T]) Current() (T, bool) {
	e.cmu.lock()
	v, ok := e.current, e.has
	e.cmu.unlock()
	return v, ok
}

// Iterator returns a new Iterator subscribed to e.
func (e *OptionalCurrentEmitter[T]) Iterator() *Iterator[T] {
	return mustIterator[T](e, e.options())
}

// All ranges over the current value, if any, followed by every later emission.
func (e *OptionalCurrentEmitter[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return all[T](ctx, e, e.options())
}

var (
	_ SourceWithCurrent[int] = (*CurrentEmitter[int])(nil)
	_ Sink[int]              = (*CurrentEmitter[int])(nil)
	_ Source[int]            = (*OptionalCurrentEmitter[int])(nil)
	_ Sink[int]              = (*OptionalCurrentEmitter[int])(nil)
)
