// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import "github.com/rs/zerolog"

// Options configures queue, emitter and iterator creation.
type Options struct {
	// Initial capacity of every ring buffer built from these options
	capacity int

	// Debug trace sink, nil means silent
	log *zerolog.Logger
}

// Builder creates queues, emitters and iterators with fluent configuration.
//
// Example:
//
//	log := zerolog.New(os.Stderr).Level(zerolog.DebugLevel)
//	b := emit.New(64).Logger(log)
//
//	e := emit.BuildEmitter[Event](b)
//	it, err := emit.BuildIterator[Event](b, e)
type Builder struct {
	opts Options
}

// New creates a builder with the given initial ring buffer capacity.
//
// The capacity is not rounded: queues grow by doubling from exactly this
// size. Panics if capacity < 1.
//
// Example:
//
//	q := emit.BuildQueue[int](emit.New(5))
//	q.Cap() // 5
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("emit: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Logger attaches a zerolog logger for debug tracing.
//
// Queue growth, iterator subscription and termination are logged at debug
// level. Misuse errors returned to callers are logged at warn level.
func (b *Builder) Logger(log zerolog.Logger) *Builder {
	b.opts.log = &log
	return b
}

// BuildQueue creates a Queue[T] with the configured capacity.
func BuildQueue[T any](b *Builder) *Queue[T] {
	q := NewQueue[T](b.opts.capacity)
	q.log = b.opts.log
	return q
}

// BuildEmitter creates an empty Emitter[T].
func BuildEmitter[T any](b *Builder) *Emitter[T] {
	return &Emitter[T]{log: b.opts.log}
}

// BuildQueueingEmitter creates a QueueingEmitter[T] whose backlog starts
// at the configured capacity.
func BuildQueueingEmitter[T any](b *Builder) *QueueingEmitter[T] {
	e := &QueueingEmitter[T]{backlog: BuildQueue[T](b)}
	e.log = b.opts.log
	return e
}

// BuildIterator creates an Iterator[T] subscribed to src.
// Both internal queues start at the configured capacity.
// A subscribe failure is returned unchanged.
func BuildIterator[T any](b *Builder, src Source[T]) (*Iterator[T], error) {
	return newIterator(src, b.opts)
}

// defaultOptions are used by the plain constructors.
var defaultOptions = Options{capacity: DefaultCapacity}

var nopLogger = zerolog.Nop()

// logger returns l, or a disabled logger when l is nil.
func logger(l *zerolog.Logger) *zerolog.Logger {
	if l == nil {
		return &nopLogger
	}
	return l
}
