// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates a non-blocking pull found nothing to return.
//
// For [Iterator.TryNext]: no value is buffered
// For [Future.Result]: the future has not settled yet
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry later or switch to the blocking [Future.Await].
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    v, err := it.TryNext()
//	    if err == nil {
//	        backoff = iox.Backoff{}
//	        handle(v)
//	        continue
//	    }
//	    if emit.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err // ErrClosed
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// Misuse errors. They are returned to the offending caller unchanged and are
// never retried internally.
var (
	// ErrEmptyQueue is returned by Dequeue and Peek on an empty Queue.
	ErrEmptyQueue = errors.New("emit: dequeue from empty queue")

	// ErrAlreadySubscribed is returned when a listener is subscribed twice.
	ErrAlreadySubscribed = errors.New("emit: listener already subscribed")

	// ErrNotSubscribed is returned when unsubscribing a listener that is not listening.
	ErrNotSubscribed = errors.New("emit: listener not subscribed")

	// ErrNilListener is returned when a nil listener is subscribed.
	ErrNilListener = errors.New("emit: nil listener")

	// ErrClosed is returned when pulling from a terminated Iterator.
	ErrClosed = errors.New("emit: iterator closed")
)

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil and ErrWouldBlock.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
