// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fiber is the runtime collaborator consumed by [code.hybscloud.com/corobus]:
// a single-threaded cooperative scheduler for user-space coroutines, built
// on real goroutines.
//
// corobus treats this package purely as an implementation of four
// primitives — identify the current coroutine, suspend it, mark one
// runnable, yield once — and never reaches into its internals. Go has no
// goroutine-local storage, so "identify the current coroutine" is made
// explicit here: [Scheduler.Spawn] hands the coroutine its own *[Coroutine]
// handle as an argument, the same way [code.hybscloud.com/sess]'s Exec/
// Advance thread an explicit *Endpoint through every call instead of
// relying on ambient state.
//
// At most one coroutine's user code ever runs at a time: [Scheduler.Run]
// dispatches exactly one runnable coroutine, then blocks until that
// coroutine suspends, yields, or returns, before dispatching the next. This
// reproduces the non-preemptive scheduling the core's invariants assume,
// even though each coroutine is backed by a real, preemptible goroutine.
package fiber

import "sync"

// Coroutine is an opaque handle to one cooperatively scheduled unit of
// execution. The zero value is not usable; obtain one from [Scheduler.Spawn].
type Coroutine struct {
	sch    *Scheduler
	id     uint32
	turn   chan struct{}
	queued bool
	done   bool
}

// ID returns a diagnostic identifier for the coroutine, stable for its
// lifetime. Not part of the scheduling contract.
func (co *Coroutine) ID() uint32 { return co.id }

// Scheduler is a FIFO run queue of coroutines, plus the single handback
// channel through which the currently running coroutine returns control.
type Scheduler struct {
	mu       sync.Mutex
	nextID   uint32
	queue    []*Coroutine
	handback chan struct{}
}

// New creates an empty scheduler with no runnable coroutines.
func New() *Scheduler {
	return &Scheduler{handback: make(chan struct{})}
}

// Spawn creates a coroutine that will run fn(co) the first time the
// scheduler dispatches it, and appends it to the tail of the run queue.
// fn receives its own handle, standing in for the consumed current()
// primitive: there is no implicit way to recover "the calling coroutine"
// in Go, so callers thread co explicitly into every blocking operation
// they perform, exactly as corobus's API requires.
func (sch *Scheduler) Spawn(fn func(co *Coroutine)) *Coroutine {
	co := &Coroutine{sch: sch, turn: make(chan struct{})}
	sch.mu.Lock()
	sch.nextID++
	co.id = sch.nextID
	co.queued = true
	sch.queue = append(sch.queue, co)
	sch.mu.Unlock()

	go func() {
		<-co.turn
		fn(co)
		sch.mu.Lock()
		co.done = true
		sch.mu.Unlock()
		sch.handback <- struct{}{}
	}()
	return co
}

// Run dispatches runnable coroutines strictly in FIFO order, one at a
// time, until the run queue is empty. Each dispatched coroutine runs
// until it calls Suspend, Yield, or returns from its task function;
// Run then dispatches the next entry.
func (sch *Scheduler) Run() {
	for {
		sch.mu.Lock()
		if len(sch.queue) == 0 {
			sch.mu.Unlock()
			return
		}
		co := sch.queue[0]
		sch.queue = sch.queue[1:]
		co.queued = false
		sch.mu.Unlock()

		co.turn <- struct{}{}
		<-sch.handback
	}
}

// Wakeup marks co runnable: appends it to the tail of the run queue
// unless it is already queued or has already finished. Safe to call on
// an already-runnable coroutine (idempotent), and safe to call from
// within the currently running coroutine (the only caller that can
// legally touch the scheduler between two Run dispatches).
func (sch *Scheduler) Wakeup(co *Coroutine) {
	sch.mu.Lock()
	defer sch.mu.Unlock()
	if co.done || co.queued {
		return
	}
	co.queued = true
	sch.queue = append(sch.queue, co)
}

// Wakeup marks co runnable on its own scheduler. Equivalent to
// co.sch.Wakeup(co), exposed as a method on the handle itself so callers
// that only hold a *Coroutine (such as [code.hybscloud.com/corobus]'s
// waiter lists) never need a separate reference to the scheduler.
func (co *Coroutine) Wakeup() {
	co.sch.Wakeup(co)
}

// Suspend deschedules co until some other coroutine calls Wakeup(co).
// Must be called only from within co's own task function (the fn passed
// to Spawn), never from another coroutine. This is one of the two
// suspension points in the whole module: the other is Yield below.
func (co *Coroutine) Suspend() {
	co.sch.handback <- struct{}{}
	<-co.turn
}

// Yield puts co at the tail of the run queue and descends control back
// to the scheduler. Because Run drains the queue strictly FIFO and Yield
// appends after every coroutine runnable at the moment of the call, co
// resumes only after each of those has had exactly one turn — coroutines
// that become runnable later (woken during that same cycle) are enqueued
// after co and so do not jump ahead of it.
func (co *Coroutine) Yield() {
	co.sch.mu.Lock()
	if !co.queued && !co.done {
		co.queued = true
		co.sch.queue = append(co.sch.queue, co)
	}
	co.sch.mu.Unlock()
	co.Suspend()
}
