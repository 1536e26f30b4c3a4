// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"code.hybscloud.com/corobus/fiber"
	"code.hybscloud.com/iox"
)

// TrySendV enqueues as many of vs, in order, as currently fit — up to
// min(len(vs), capacity-len(queue)) — in one step, and returns that
// count. For a non-empty vs it either transfers at least one element or
// fails; an empty vs on an open channel with free room returns 0 and nil.
// Per spec.md §4.7 the capacity
// check is against the channel as a whole, not per element: a channel
// with any free room accepts a partial batch rather than blocking.
//
//   - Invalid id or closed channel: ErrNoChannel.
//   - Channel already full: iox.ErrWouldBlock.
//   - Otherwise: count >= 1 elements are enqueued and, if a receiver is
//     waiting, its FIFO head is woken once (not once per element).
func (b *Bus) TrySendV(co *fiber.Coroutine, id int, vs []uint32) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trySendVLocked(co, id, vs)
}

func (b *Bus) trySendVLocked(co *fiber.Coroutine, id int, vs []uint32) (int, error) {
	ch, err := b.resolve(id)
	if err != nil {
		setErrno(co, err)
		return 0, err
	}
	if ch.closed {
		setErrno(co, ErrNoChannel)
		return 0, ErrNoChannel
	}
	if ch.full() {
		setErrno(co, iox.ErrWouldBlock)
		return 0, iox.ErrWouldBlock
	}
	n := len(vs)
	if room := ch.capacity - ch.len(); n > room {
		n = room
	}
	for i := 0; i < n; i++ {
		ch.push(vs[i])
	}
	if w := ch.recvWaiters.head(); w != nil {
		ch.recvWaiters.remove(w)
		w.co.Wakeup()
	}
	return n, nil
}

// TryRecvV dequeues as many messages as currently available — up to
// min(len(out), len(queue)) — in one step, filling out from index 0, and
// returns that count.
//
//   - Invalid id: ErrNoChannel.
//   - Empty and closed: ErrNoChannel.
//   - Empty and open: iox.ErrWouldBlock.
//   - Otherwise: min(len(out), len(queue)) messages are dequeued into out
//     (at least one unless out is empty) and, if a sender is waiting, its
//     FIFO head is woken once.
func (b *Bus) TryRecvV(co *fiber.Coroutine, id int, out []uint32) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tryRecvVLocked(co, id, out)
}

func (b *Bus) tryRecvVLocked(co *fiber.Coroutine, id int, out []uint32) (int, error) {
	ch, err := b.resolve(id)
	if err != nil {
		setErrno(co, err)
		return 0, err
	}
	if ch.empty() {
		if ch.closed {
			setErrno(co, ErrNoChannel)
			return 0, ErrNoChannel
		}
		setErrno(co, iox.ErrWouldBlock)
		return 0, iox.ErrWouldBlock
	}
	n := len(out)
	if avail := ch.len(); n > avail {
		n = avail
	}
	for i := 0; i < n; i++ {
		out[i] = ch.pop()
	}
	if w := ch.sendWaiters.head(); w != nil {
		ch.sendWaiters.remove(w)
		w.co.Wakeup()
	}
	return n, nil
}

// SendV is the blocking variant of TrySendV: the same condition loop as
// [Bus.Send], but returning the count transferred on the first
// non-blocking attempt that made any progress, per spec.md §4.7's
// partial-transfer-on-wakeup contract. A caller wanting to transfer
// exactly len(vs) elements must loop until the running total reaches it.
func (b *Bus) SendV(co *fiber.Coroutine, id int, vs []uint32) (int, error) {
	b.mu.Lock()
	for {
		ch, err := b.resolve(id)
		if err != nil {
			setErrno(co, err)
			b.mu.Unlock()
			return 0, err
		}
		if ch.closed {
			setErrno(co, ErrNoChannel)
			b.mu.Unlock()
			return 0, ErrNoChannel
		}
		if n, err := b.trySendVLocked(co, id, vs); err == nil {
			if w := ch.sendWaiters.head(); w != nil && !ch.full() {
				ch.sendWaiters.remove(w)
				w.co.Wakeup()
			}
			b.mu.Unlock()
			return n, nil
		} else if !iox.IsWouldBlock(err) {
			b.mu.Unlock()
			return 0, err
		}

		w := &waiter{co: co}
		ch.sendWaiters.appendTail(w)
		b.mu.Unlock()

		co.Suspend()

		b.mu.Lock()
		ch.sendWaiters.remove(w)
	}
}

// RecvV is the blocking variant of TryRecvV, symmetric to SendV.
func (b *Bus) RecvV(co *fiber.Coroutine, id int, out []uint32) (int, error) {
	b.mu.Lock()
	for {
		ch, err := b.resolve(id)
		if err != nil {
			setErrno(co, err)
			b.mu.Unlock()
			return 0, err
		}
		if ch.closed && ch.empty() {
			setErrno(co, ErrNoChannel)
			b.mu.Unlock()
			return 0, ErrNoChannel
		}
		if n, err := b.tryRecvVLocked(co, id, out); err == nil {
			if w := ch.recvWaiters.head(); w != nil && !ch.empty() {
				ch.recvWaiters.remove(w)
				w.co.Wakeup()
			}
			b.mu.Unlock()
			return n, nil
		} else if !iox.IsWouldBlock(err) {
			b.mu.Unlock()
			return 0, err
		}

		w := &waiter{co: co}
		ch.recvWaiters.appendTail(w)
		b.mu.Unlock()

		co.Suspend()

		b.mu.Lock()
		ch.recvWaiters.remove(w)
	}
}
