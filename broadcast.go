// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"code.hybscloud.com/corobus/fiber"
	"code.hybscloud.com/iox"
)

// TryBroadcast atomically enqueues v on every live (open, not-closed)
// channel, or fails leaving every channel untouched. "Atomic" here means
// no suspension point occurs between the scan and the mutation — a
// property automatically satisfied by holding b.mu across the whole call.
//
//   - No live channel exists: ErrNoChannel.
//   - Any live channel is full: iox.ErrWouldBlock, no channel mutated.
//   - Otherwise: v is appended to every live channel's queue, and each
//     such channel's FIFO-head receiver (if any) is woken.
func (b *Bus) TryBroadcast(co *fiber.Coroutine, v uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tryBroadcastLocked(co, v)
}

func (b *Bus) tryBroadcastLocked(co *fiber.Coroutine, v uint32) error {
	hasLive := false
	for _, ch := range b.channels {
		if ch == nil || ch.closed {
			continue
		}
		hasLive = true
		if ch.full() {
			setErrno(co, iox.ErrWouldBlock)
			return iox.ErrWouldBlock
		}
	}
	if !hasLive {
		setErrno(co, ErrNoChannel)
		return ErrNoChannel
	}
	for _, ch := range b.channels {
		if ch == nil || ch.closed {
			continue
		}
		ch.push(v)
		if w := ch.recvWaiters.head(); w != nil {
			ch.recvWaiters.remove(w)
			w.co.Wakeup()
		}
	}
	return nil
}

// firstFullLiveChannel returns the first live channel currently at
// capacity, or nil if none (e.g. a race where the blocking channel
// closed or drained between TryBroadcast failing and this lookup).
func (b *Bus) firstFullLiveChannel() *channel {
	for _, ch := range b.channels {
		if ch != nil && !ch.closed && ch.full() {
			return ch
		}
	}
	return nil
}

// Broadcast is the blocking variant of TryBroadcast. It parks the caller
// on a single arbitrary full live channel rather than multiplexing across
// all full channels (spec.md §4.6/§9): any progress anywhere (a receive
// draining that channel, or its close) re-triggers the retry. This is
// O(channels) per attempt, acceptable for the expected small channel
// count, and deliberately simpler than a multi-wait.
func (b *Bus) Broadcast(co *fiber.Coroutine, v uint32) error {
	b.mu.Lock()
	for {
		if err := b.tryBroadcastLocked(co, v); err == nil {
			for _, ch := range b.channels {
				if ch == nil {
					continue
				}
				if w := ch.sendWaiters.head(); w != nil && !ch.full() {
					ch.sendWaiters.remove(w)
					w.co.Wakeup()
				}
			}
			b.mu.Unlock()
			return nil
		} else if !iox.IsWouldBlock(err) {
			b.mu.Unlock()
			return err
		}

		ch := b.firstFullLiveChannel()
		if ch == nil {
			setErrno(co, ErrNoChannel)
			b.mu.Unlock()
			return ErrNoChannel
		}
		w := &waiter{co: co}
		ch.sendWaiters.appendTail(w)
		b.mu.Unlock()

		co.Suspend()

		b.mu.Lock()
		ch.sendWaiters.remove(w)
	}
}
