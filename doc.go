// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package emit provides single-event emitters and a bridge that lets
// pull-based consumers read values from push-based producers.
//
// The package offers:
//
//   - Emitter: synchronous fan-out to listeners, identity-checked
//   - CurrentEmitter: replays the current value to each new listener
//   - OptionalCurrentEmitter: replays the current value once one exists
//   - QueueingEmitter: keeps emissions until the first listener arrives
//   - Iterator: pull-based sequence over any Source
//   - Queue: growable circular buffer backing the above
//
// # Quick Start
//
//	e := emit.NewEmitter[int]()
//	l := emit.NewListener(func(v int) { fmt.Println(v) })
//	e.Subscribe(l)
//	e.Emit(1) // prints 1
//	e.Unsubscribe(l)
//
// # Push to Pull
//
// An Iterator subscribes one listener to a Source and turns emissions into
// pulls. It owns two queues: values emitted before anyone asked for them,
// and requests made before anything was emitted. At most one of the two is
// non-empty at any time.
//
//	it := e.Iterator()
//
//	// Values first: buffered, Next settles immediately
//	e.Emit(1)
//	r, _ := it.Next().Result() // {Value: 1}
//
//	// Requests first: Next returns a pending future
//	f := it.Next()
//	e.Emit(2) // settles f on this goroutine
//	r, _ = f.Result() // {Value: 2}
//
//	it.Return() // unsubscribes and drops both queues
//
// A consumer on another goroutine blocks in [Future.Await] or ranges over
// [Iterator.All]:
//
//	go func() {
//	    for v, err := range it.All(ctx) {
//	        if err != nil {
//	            return
//	        }
//	        handle(v)
//	    }
//	}()
//
// Leaving the loop by break, panic or ctx cancellation terminates the
// iterator exactly once.
//
// # Error Handling
//
// Misuse is reported as errors, never swallowed:
//
//	emit.ErrAlreadySubscribed // Subscribe with a listener already listening
//	emit.ErrNotSubscribed     // Unsubscribe with a listener not listening
//	emit.ErrEmptyQueue        // Dequeue from an empty Queue
//	emit.ErrClosed            // Next after Return or Throw
//
// Non-blocking polls return [ErrWouldBlock], sourced from
// [code.hybscloud.com/iox] for ecosystem consistency:
//
//	v, err := it.TryNext()
//	if emit.IsWouldBlock(err) {
//	    // Nothing buffered - try again later
//	}
//
// # Queue Growth
//
// Queue doubles its capacity when full. Because the live run may wrap
// around the end of the buffer, one of the two segments must move after
// doubling; Queue moves the shorter one, so a growth copies at most half of
// the old capacity and Enqueue stays amortized O(1).
//
// # Thread Safety
//
// Emitters and iterators guard their state with short spin locks and never
// hold them while calling listeners. Emission order is only defined for a
// single emitting goroutine. Queue itself is not safe for concurrent use.
//
// # Race Detection
//
// The spin locks are built from atomix operations, which the race detector
// cannot observe as synchronization. Concurrent tests are skipped when
// [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, [code.hybscloud.com/spin] for CPU pause instructions,
// and [github.com/rs/zerolog] for optional debug logging.
package emit
