// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import (
	"context"

	"code.hybscloud.com/atomix"
)

// settled is shared by every future created already settled.
var settled = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Future is the eventual outcome of a pull from an Iterator.
//
// A Future settles exactly once, either resolved with a Result or rejected
// with an error. It can be observed from any goroutine.
//
// Example:
//
//	f := it.Next()
//	r, err := f.Await(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(r.Value)
type Future[T any] struct {
	done  chan struct{}
	state atomix.Bool
	res   Result[T]
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func resolved[T any](r Result[T]) *Future[T] {
	f := &Future[T]{done: settled, res: r}
	f.state.Store(true)
	return f
}

func rejected[T any](err error) *Future[T] {
	f := &Future[T]{done: settled, err: err}
	f.state.Store(true)
	return f
}

// settle stores the outcome and wakes waiters.
// Panics if the future has already settled.
func (f *Future[T]) settle(r Result[T], err error) {
	if f.state.Load() {
		panic("emit: future settled twice")
	}
	f.res, f.err = r, err
	f.state.Store(true)
	close(f.done)
}

// Done returns a channel that is closed once the future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the future has settled.
func (f *Future[T]) Settled() bool {
	return f.state.Load()
}

// Result returns the outcome without blocking.
// Returns ErrWouldBlock if the future has not settled yet.
func (f *Future[T]) Result() (Result[T], error) {
	select {
	case <-f.done:
		return f.res, f.err
	default:
		return Result[T]{}, ErrWouldBlock
	}
}

// Await blocks until the future settles or ctx is done.
// On ctx expiry it returns the context's cause; the future itself stays
// pending and will still consume the next emission addressed to it.
func (f *Future[T]) Await(ctx context.Context) (Result[T], error) {
	select {
	case <-f.done:
		return f.res, f.err
	default:
	}
	select {
	case <-f.done:
		return f.res, f.err
	case <-ctx.Done():
		return Result[T]{}, context.Cause(ctx)
	}
}
