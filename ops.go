// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"code.hybscloud.com/corobus/fiber"
	"code.hybscloud.com/iox"
)

// TrySend attempts to enqueue v on channel id without blocking.
//
//   - Invalid id or empty slot: ErrNoChannel.
//   - Channel closed: ErrNoChannel.
//   - Channel full: iox.ErrWouldBlock.
//   - Otherwise: v is appended and, if a receiver is waiting, its FIFO
//     head is woken.
func (b *Bus) TrySend(co *fiber.Coroutine, id int, v uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trySendLocked(co, id, v)
}

// trySendLocked is TrySend's body, callable with b.mu already held (used
// by the blocking Send loop).
func (b *Bus) trySendLocked(co *fiber.Coroutine, id int, v uint32) error {
	ch, err := b.resolve(id)
	if err != nil {
		setErrno(co, err)
		return err
	}
	if ch.closed {
		setErrno(co, ErrNoChannel)
		return ErrNoChannel
	}
	if ch.full() {
		setErrno(co, iox.ErrWouldBlock)
		return iox.ErrWouldBlock
	}
	ch.push(v)
	if w := ch.recvWaiters.head(); w != nil {
		ch.recvWaiters.remove(w)
		w.co.Wakeup()
	}
	return nil
}

// TryRecv attempts to dequeue one message from channel id without
// blocking.
//
//   - Invalid id or empty slot: ErrNoChannel.
//   - Channel empty and closed: ErrNoChannel (the normalized behavior
//     spec.md §4.2.2 adopts — a closed-but-nonempty channel still yields
//     its remaining messages before callers see ErrNoChannel).
//   - Channel empty and open: iox.ErrWouldBlock.
//   - Otherwise: the FIFO head message is returned and, if a sender is
//     waiting, its FIFO head is woken.
func (b *Bus) TryRecv(co *fiber.Coroutine, id int) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tryRecvLocked(co, id)
}

func (b *Bus) tryRecvLocked(co *fiber.Coroutine, id int) (uint32, error) {
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
	v := ch.pop()
	if w := ch.sendWaiters.head(); w != nil {
		ch.sendWaiters.remove(w)
		w.co.Wakeup()
	}
	return v, nil
}

// Send enqueues v on channel id, suspending co until there is room or
// the channel closes. Returns ErrNoChannel if id is invalid or the
// channel closes before or during the wait; never returns
// iox.ErrWouldBlock (that outcome drives suspension instead of being
// surfaced, per spec.md §7).
func (b *Bus) Send(co *fiber.Coroutine, id int, v uint32) error {
	b.mu.Lock()
	for {
		ch, err := b.resolve(id)
		if err != nil {
			setErrno(co, err)
			b.mu.Unlock()
			return err
		}
		if ch.closed {
			setErrno(co, ErrNoChannel)
			b.mu.Unlock()
			return ErrNoChannel
		}
		if err := b.trySendLocked(co, id, v); err == nil {
			// Wake-chain per spec.md §4.2.3: under invariant I3 this is a
			// no-op (send_waiters is empty whenever capacity is free),
			// kept because the source ships it unconditionally.
			if w := ch.sendWaiters.head(); w != nil && !ch.full() {
				ch.sendWaiters.remove(w)
				w.co.Wakeup()
			}
			b.mu.Unlock()
			return nil
		} else if !iox.IsWouldBlock(err) {
			b.mu.Unlock()
			return err
		}

		w := &waiter{co: co}
		ch.sendWaiters.appendTail(w)
		b.mu.Unlock()

		co.Suspend()

		b.mu.Lock()
		ch.sendWaiters.remove(w)
	}
}

// Recv dequeues one message from channel id, suspending co until a
// message is available or the channel closes with nothing left.
func (b *Bus) Recv(co *fiber.Coroutine, id int) (uint32, error) {
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
		if v, err := b.tryRecvLocked(co, id); err == nil {
			if w := ch.recvWaiters.head(); w != nil && !ch.empty() {
				ch.recvWaiters.remove(w)
				w.co.Wakeup()
			}
			b.mu.Unlock()
			return v, nil
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
