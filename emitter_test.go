// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit_test

import (
	"errors"
	"slices"
	"testing"

	"code.hybscloud.com/emit"
)

// recorder collects every value its listener receives.
type recorder[T any] struct {
	got []T
	l   *emit.Listener[T]
}

func newRecorder[T any]() *recorder[T] {
	r := &recorder[T]{}
	r.l = emit.NewListener(func(v T) { r.got = append(r.got, v) })
	return r
}

func (r *recorder[T]) last() (T, bool) {
	if len(r.got) == 0 {
		var zero T
		return zero, false
	}
	return r.got[len(r.got)-1], true
}

// =============================================================================
// Emitter
// =============================================================================

// TestEmitterDeliversToListeners tests fan-out to every subscribed listener.
func TestEmitterDeliversToListeners(t *testing.T) {
	e := emit.NewEmitter[int]()
	r1, r2 := newRecorder[int](), newRecorder[int]()
	if _, ok := r1.last(); ok {
		t.Fatal("listener called before any emission")
	}
	if l, err := e.Subscribe(r1.l); err != nil || l != r1.l {
		t.Fatalf("Subscribe: got (%p, %v), want (%p, nil)", l, err, r1.l)
	}
	if _, err := e.Subscribe(r2.l); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if e.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", e.Len())
	}

	e.Emit(2)
	if v, _ := r1.last(); v != 2 {
		t.Fatalf("listener 1: got %d, want 2", v)
	}
	if v, _ := r2.last(); v != 2 {
		t.Fatalf("listener 2: got %d, want 2", v)
	}
}

// TestEmitterUnsubscribe tests that an unsubscribed listener stops receiving.
func TestEmitterUnsubscribe(t *testing.T) {
	var e emit.Emitter[int] // zero value is ready
	r1, r2 := newRecorder[int](), newRecorder[int]()
	e.Subscribe(r1.l)
	e.Subscribe(r2.l)

	e.Emit(2)
	if err := e.Unsubscribe(r2.l); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
	e.Emit(3)

	if !slices.Equal(r1.got, []int{2, 3}) {
		t.Fatalf("listener 1: got %v, want [2 3]", r1.got)
	}
	if !slices.Equal(r2.got, []int{2}) {
		t.Fatalf("listener 2: got %v, want [2]", r2.got)
	}
}

// TestEmitterMisuse tests duplicate subscription and unknown unsubscription.
func TestEmitterMisuse(t *testing.T) {
	e := emit.NewEmitter[int]()
	l1 := emit.NewListener(func(int) {})
	l2 := emit.NewListener(func(int) {})

	if _, err := e.Subscribe(l1); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if _, err := e.Subscribe(l1); !errors.Is(err, emit.ErrAlreadySubscribed) {
		t.Fatalf("Subscribe twice: got %v, want ErrAlreadySubscribed", err)
	}
	if e.Len() != 1 {
		t.Fatalf("Len after duplicate: got %d, want 1", e.Len())
	}
	if err := e.Unsubscribe(l2); !errors.Is(err, emit.ErrNotSubscribed) {
		t.Fatalf("Unsubscribe unknown: got %v, want ErrNotSubscribed", err)
	}
	if _, err := e.Subscribe(nil); !errors.Is(err, emit.ErrNilListener) {
		t.Fatalf("Subscribe(nil): got %v, want ErrNilListener", err)
	}
}

// TestEmitterResubscribe tests subscribe, unsubscribe, subscribe again.
func TestEmitterResubscribe(t *testing.T) {
	e := emit.NewEmitter[int]()
	r := newRecorder[int]()
	if _, err := e.Subscribe(r.l); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := e.Unsubscribe(r.l); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
	if e.HasListeners() {
		t.Fatal("HasListeners: got true after Unsubscribe")
	}
	if err := e.Unsubscribe(r.l); !errors.Is(err, emit.ErrNotSubscribed) {
		t.Fatalf("Unsubscribe twice: got %v, want ErrNotSubscribed", err)
	}
	if _, err := e.Subscribe(r.l); err != nil {
		t.Fatalf("Subscribe again: %v", err)
	}
	e.Emit(7)
	if !slices.Equal(r.got, []int{7}) {
		t.Fatalf("got %v, want [7]", r.got)
	}
}

// TestEmitterIdentityNotFunction tests that two handles for one function
// are distinct listeners.
func TestEmitterIdentityNotFunction(t *testing.T) {
	e := emit.NewEmitter[int]()
	n := 0
	fn := func(int) { n++ }
	if _, err := e.Subscribe(emit.NewListener(fn)); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if _, err := e.Subscribe(emit.NewListener(fn)); err != nil {
		t.Fatalf("Subscribe second handle: %v", err)
	}
	e.Emit(0)
	if n != 2 {
		t.Fatalf("calls: got %d, want 2", n)
	}
}

// TestEmitterLiveSubscribeDuringEmit tests that a listener added during
// Emit receives the value being emitted.
func TestEmitterLiveSubscribeDuringEmit(t *testing.T) {
	e := emit.NewEmitter[int]()
	late := newRecorder[int]()
	adder := emit.NewListener(func(v int) {
		if v == 1 {
			e.Subscribe(late.l)
		}
	})
	e.Subscribe(adder)

	e.Emit(1)
	e.Emit(2)
	if !slices.Equal(late.got, []int{1, 2}) {
		t.Fatalf("late listener: got %v, want [1 2]", late.got)
	}
}

// TestEmitterLiveUnsubscribeDuringEmit tests that a listener removing itself
// during Emit shifts the list, so the next listener misses that emission.
func TestEmitterLiveUnsubscribeDuringEmit(t *testing.T) {
	e := emit.NewEmitter[int]()
	var self *emit.Listener[int]
	self = emit.NewListener(func(int) {
		e.Unsubscribe(self)
	})
	after := newRecorder[int]()
	e.Subscribe(self)
	e.Subscribe(after.l)

	e.Emit(1)
	e.Emit(2)
	if !slices.Equal(after.got, []int{2}) {
		t.Fatalf("listener after self-remover: got %v, want [2]", after.got)
	}
	if e.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", e.Len())
	}
}

// TestEmitterReentrantEmit tests that a listener may emit from inside Emit.
func TestEmitterReentrantEmit(t *testing.T) {
	e := emit.NewEmitter[int]()
	var got []int
	e.Subscribe(emit.NewListener(func(v int) {
		got = append(got, v)
		if v < 3 {
			e.Emit(v + 1)
		}
	}))
	e.Emit(1)
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}
