// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

// Listener is a subscription handle wrapping a callback of one argument.
//
// Listener identity is the pointer, not the callback: two handles created
// from the same function are distinct listeners, and a handle can be
// subscribed to a source at most once at a time.
//
// Example:
//
//	l := emit.NewListener(func(v int) { fmt.Println(v) })
//	if _, err := e.Subscribe(l); err != nil {
//	    return err
//	}
//	defer e.Unsubscribe(l)
type Listener[T any] struct {
	fn func(T)
}

// NewListener returns a new listener handle for fn.
func NewListener[T any](fn func(T)) *Listener[T] {
	return &Listener[T]{fn: fn}
}

// Call invokes the callback with v.
func (l *Listener[T]) Call(v T) {
	l.fn(v)
}

// Source is the subscribe/unsubscribe capability of an event source.
//
// Implementations must fail loudly on misuse:
//   - Subscribe returns ErrAlreadySubscribed for a listener already registered
//   - Unsubscribe returns ErrNotSubscribed for a listener not registered
//
// Subscribing, unsubscribing, then subscribing the same listener again
// must succeed.
type Source[T any] interface {
	// Subscribe registers l and returns it.
	Subscribe(l *Listener[T]) (*Listener[T], error)

	// Unsubscribe removes l.
	Unsubscribe(l *Listener[T]) error
}

// Sink accepts emissions.
type Sink[T any] interface {
	// Emit delivers v synchronously to every current listener.
	Emit(v T)
}

// SourceWithCurrent is a Source that always holds a current value and
// replays it to each new listener.
type SourceWithCurrent[T any] interface {
	Source[T]
	Current() T
}

// Result is the outcome of one pull from an Iterator.
//
// Done is true only once the iterator has been terminated with Return;
// Value is then the zero value.
type Result[T any] struct {
	Value T
	Done  bool
}
