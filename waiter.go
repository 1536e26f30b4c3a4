// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import "code.hybscloud.com/corobus/fiber"

// waiter is a transient record for one coroutine suspended on a channel
// condition. It is never owned by the channel: the channel only links to
// it while the owning coroutine is suspended. It is allocated by the
// blocking call (it escapes to the heap through the list links), linked
// into exactly one waiterList, and unlinked again before that call
// returns, so no list ever holds a waiter whose call has finished.
type waiter struct {
	co         *fiber.Coroutine
	prev, next *waiter
}

// waiterList is an intrusive FIFO of waiters: O(1) append-tail, O(1)
// peek-head, O(1) self-removal regardless of position. Mirrors the shape
// of the Go runtime's own channel waitq/sudog list (first/last pointers,
// prev/next links, idempotent unlink), adapted here for a list that can
// hold more than one live waiter at a time rather than one sudog per
// blocked goroutine.
type waiterList struct {
	first, last *waiter
}

func (q *waiterList) isEmpty() bool {
	return q.first == nil
}

func (q *waiterList) appendTail(w *waiter) {
	w.next = nil
	last := q.last
	if last == nil {
		w.prev = nil
		q.first = w
		q.last = w
		return
	}
	w.prev = last
	last.next = w
	q.last = w
}

// head returns the FIFO-head waiter without removing it, or nil if empty.
func (q *waiterList) head() *waiter {
	return q.first
}

// remove unlinks w from q. Safe to call whether or not w is currently
// linked (idempotent): a waiter woken and then resumed always calls
// remove on its own frame exactly once, but remove tolerates being called
// on an already-unlinked waiter so callers never need to track link state
// separately.
func (q *waiterList) remove(w *waiter) {
	if w.prev == nil && w.next == nil && q.first != w {
		// Either never linked, or already removed.
		return
	}
	if w.prev != nil {
		w.prev.next = w.next
	} else if q.first == w {
		q.first = w.next
	}
	if w.next != nil {
		w.next.prev = w.prev
	} else if q.last == w {
		q.last = w.prev
	}
	w.prev = nil
	w.next = nil
}
