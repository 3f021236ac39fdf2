// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import (
	"context"
	"errors"
	"iter"

	"code.hybscloud.com/atomix"
	"github.com/rs/zerolog"
)

// Iterator turns a push-based Source into a pull-based sequence.
//
// At construction the iterator subscribes one listener to the source and
// keeps it until it is terminated. Each emission either settles the oldest
// pending Next or, if nobody is waiting, is buffered. Each Next either takes
// the oldest buffered value or waits for the next emission.
//
// Invariant: buffered values and pending requests never coexist. Memory is
// bounded by the difference between emissions and pulls, not their sum.
//
// Ordering: the values observed by successive Next calls are exactly the
// values emitted while the iterator was subscribed, in emission order, with
// no drops and no duplicates.
//
// Termination: Return and Throw unsubscribe, discard both queues and move
// the iterator to its terminal state. Pending futures are abandoned, never
// settled. Next after termination yields ErrClosed.
//
// Thread safety: all methods are safe from any goroutine. The producer's
// Emit settles futures synchronously on the producer's goroutine.
type Iterator[T any] struct {
	mu       spinLock
	src      Source[T]
	listener *Listener[T]
	values   *Queue[T]
	pending  *Queue[*Future[T]]
	closed   atomix.Bool
	log      *zerolog.Logger
}

// NewIterator creates an iterator subscribed to src.
// A subscribe failure is returned unchanged.
func NewIterator[T any](src Source[T]) (*Iterator[T], error) {
	return newIterator(src, defaultOptions)
}

func newIterator[T any](src Source[T], opts Options) (*Iterator[T], error) {
	it := &Iterator[T]{
		src:     src,
		values:  NewQueue[T](opts.capacity),
		pending: NewQueue[*Future[T]](opts.capacity),
		log:     opts.log,
	}
	it.values.log, it.pending.log = opts.log, opts.log
	it.listener = NewListener(it.onEmit)
	if _, err := src.Subscribe(it.listener); err != nil {
		return nil, err
	}
	logger(it.log).Debug().Msg("iterator subscribed")
	return it, nil
}

func mustIterator[T any](src Source[T], opts Options) *Iterator[T] {
	it, err := newIterator(src, opts)
	if err != nil {
		// The listener is fresh, so only a broken Source gets here.
		panic(err)
	}
	return it
}

// onEmit is the only listener the iterator ever subscribes.
func (it *Iterator[T]) onEmit(v T) {
	it.mu.lock()
	defer it.mu.unlock()
	if it.closed.Load() {
		// Emit read the listener before Return unsubscribed it.
		return
	}
	if f, err := it.pending.Dequeue(); err == nil {
		f.settle(Result[T]{Value: v}, nil)
		return
	}
	it.values.Enqueue(v)
}

// Next requests the next value.
//
// If a value is buffered, the returned future is already settled with it.
// Otherwise the future settles with the next emission that no earlier
// request is waiting for: the Nth pending Next receives the Nth later
// emission.
//
// After termination the future is rejected with ErrClosed.
func (it *Iterator[T]) Next() *Future[T] {
	it.mu.lock()
	defer it.mu.unlock()
	if it.closed.Load() {
		return rejected[T](misuse(it.log, ErrClosed))
	}
	if v, err := it.values.Dequeue(); err == nil {
		return resolved(Result[T]{Value: v})
	}
	f := newFuture[T]()
	it.pending.Enqueue(f)
	return f
}

// TryNext takes a buffered value without waiting.
// Returns ErrWouldBlock if no value is buffered, ErrClosed after termination.
// TryNext never queues a request.
func (it *Iterator[T]) TryNext() (T, error) {
	var zero T
	it.mu.lock()
	defer it.mu.unlock()
	if it.closed.Load() {
		return zero, ErrClosed
	}
	v, err := it.values.Dequeue()
	if err != nil {
		return zero, ErrWouldBlock
	}
	return v, nil
}

// Return terminates the iterator.
//
// The returned future is settled with Done set. If the source refuses the
// unsubscribe, the future is rejected with that error instead; the
// iterator is terminated either way. Calling Return on a terminated
// iterator has no effect.
func (it *Iterator[T]) Return() *Future[T] {
	if err := it.terminate("return", nil); err != nil {
		return rejected[T](err)
	}
	return resolved(Result[T]{Done: true})
}

// Throw terminates the iterator like Return, but the returned future is
// rejected with err. A nil err is replaced by ErrClosed. An unsubscribe
// failure is joined to err.
func (it *Iterator[T]) Throw(err error) *Future[T] {
	if err == nil {
		err = ErrClosed
	}
	if uerr := it.terminate("throw", err); uerr != nil {
		return rejected[T](errors.Join(err, uerr))
	}
	return rejected[T](err)
}

// Close is Return reporting only the unsubscribe error.
func (it *Iterator[T]) Close() error {
	_, err := it.Return().Result()
	return err
}

// terminate runs at most once per iterator. Later calls return nil.
func (it *Iterator[T]) terminate(reason string, cause error) error {
	it.mu.lock()
	if it.closed.Load() {
		it.mu.unlock()
		return nil
	}
	it.closed.Store(true)
	it.mu.unlock()

	err := it.src.Unsubscribe(it.listener)

	it.mu.lock()
	buffered, pending := it.values.Len(), it.pending.Len()
	it.values.Clear()
	it.pending.Clear()
	it.mu.unlock()

	ev := logger(it.log).Debug().
		Str("reason", reason).
		Int("buffered", buffered).
		Int("pending", pending)
	if cause != nil {
		ev = ev.AnErr("cause", cause)
	}
	ev.Err(err).Msg("iterator terminated")
	return err
}

// Buffered returns the number of values waiting for a Next.
func (it *Iterator[T]) Buffered() int {
	it.mu.lock()
	n := it.values.Len()
	it.mu.unlock()
	return n
}

// Pending returns the number of Next requests waiting for a value.
func (it *Iterator[T]) Pending() int {
	it.mu.lock()
	n := it.pending.Len()
	it.mu.unlock()
	return n
}

// Closed reports whether the iterator has been terminated.
func (it *Iterator[T]) Closed() bool {
	return it.closed.Load()
}

// All returns a single-use sequence over the iterator's values.
//
// Every pair carries a nil error except possibly the last:
//   - breaking out of the loop, or a panic in its body, calls Return
//   - ctx cancellation calls Throw with the context's cause and yields
//     (zero-value, cause)
//   - if the iterator was terminated elsewhere the sequence yields
//     (zero-value, ErrClosed) or the rejection error
//
// Exactly one of Return or Throw is called on the way out.
//
// Example:
//
//	for v, err := range it.All(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    handle(v)
//	}
func (it *Iterator[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		finished := false
		defer func() {
			if !finished {
				it.Return()
			}
		}()
		for {
			r, err := it.Next().Await(ctx)
			if err != nil {
				finished = true
				if ctx.Err() != nil {
					it.Throw(err)
				}
				yield(zero, err)
				return
			}
			if r.Done {
				finished = true
				return
			}
			if !yield(r.Value, nil) {
				return
			}
		}
	}
}

// all subscribes a fresh iterator to src when ranging starts.
func all[T any](ctx context.Context, src Source[T], opts Options) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it, err := newIterator(src, opts)
		if err != nil {
			var zero T
			yield(zero, err)
			return
		}
		it.All(ctx)(yield)
	}
}
