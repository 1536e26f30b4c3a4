// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"sync"

	"code.hybscloud.com/corobus/fiber"
)

// Bus is a sparse table of channel slots, indexed by small non-negative
// ids stable for the lifetime of the channel they hold. The bus owns its
// channels exclusively: [Bus.Delete] closes every remaining one.
//
// Every operation on a Bus is serialized on a single mutex. The source
// this module was distilled from assumes a single OS thread running
// strictly non-preemptive coroutines, so it needs no locks at all; here
// coroutines are real, preemptible goroutines ([code.hybscloud.com/corobus/fiber]),
// so the bus lock is what reproduces "every sequence of non-suspending
// steps is atomic w.r.t. other coroutines." It is released at exactly the
// two suspension points spec.md identifies: inside a blocking op right
// after linking a waiter, and inside Close's single Yield.
type Bus struct {
	mu       sync.Mutex
	channels []*channel
	serial   Serial
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{serial: nextBusSerial()}
}

// Serial returns the serial number assigned to this bus, for diagnostics.
func (b *Bus) Serial() Serial {
	return b.serial
}

// resolve validates id and returns its channel. Must be called with
// b.mu held. Identical validation is used by every operation per
// spec.md §4.2: out-of-range or empty slot fails NO_CHANNEL.
func (b *Bus) resolve(id int) (*channel, error) {
	if id < 0 || id >= len(b.channels) || b.channels[id] == nil {
		return nil, ErrNoChannel
	}
	return b.channels[id], nil
}

// Open allocates a channel with the given capacity (which must be > 0)
// and returns its id. The lowest currently empty slot is reused; if none
// is empty, the slot table grows by one. Open never fails.
func (b *Bus) Open(capacity int) int {
	if capacity <= 0 {
		panic("corobus: channel capacity must be positive")
	}
	ch := newChannel(capacity)

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, slot := range b.channels {
		if slot == nil {
			b.channels[i] = ch
			return i
		}
	}
	b.channels = append(b.channels, ch)
	return len(b.channels) - 1
}

// Close runs the close protocol (spec.md §4.4) for id: silently does
// nothing if id is invalid or already closed. Otherwise it marks the
// channel closed, wakes every linked waiter (send and recv, in order),
// yields once so the scheduler's FIFO run queue guarantees each woken
// coroutine gets a turn to observe closed (and, for a receiver, drain
// whatever the channel still holds) before the slot is freed.
//
// co is the calling coroutine, used only for the Yield step; Close never
// itself blocks on a channel condition, so it never registers a waiter.
func (b *Bus) Close(co *fiber.Coroutine, id int) {
	b.mu.Lock()
	ch, err := b.resolve(id)
	if err != nil || ch.closed {
		b.mu.Unlock()
		return
	}
	ch.markClosed()

	for w := ch.sendWaiters.head(); w != nil; w = ch.sendWaiters.head() {
		ch.sendWaiters.remove(w)
		w.co.Wakeup()
	}
	for w := ch.recvWaiters.head(); w != nil; w = ch.recvWaiters.head() {
		ch.recvWaiters.remove(w)
		w.co.Wakeup()
	}
	b.mu.Unlock()

	// Give every coroutine just made runnable a turn before the slot is
	// freed, so a receiver still sees the channel (closed, possibly
	// nonempty) rather than a nil slot and can drain it per the
	// normalized try_recv semantics (spec.md §4.2.2) before observing
	// ErrNoChannel. If the scheduler did not guarantee a newly-woken
	// coroutine runs before the next Yield returns, this would need to
	// loop until both waiter lists (captured above) are empty instead of
	// a single Yield; fiber.Scheduler does provide that guarantee (see
	// fiber.Coroutine.Yield).
	co.Yield()

	b.mu.Lock()
	b.channels[id] = nil
	b.mu.Unlock()
}

// Delete closes every remaining channel and releases the bus. Any
// coroutine blocked on any channel observes ErrNoChannel and unwinds its
// bus operation before this call returns.
func (b *Bus) Delete(co *fiber.Coroutine) {
	b.mu.Lock()
	n := len(b.channels)
	b.mu.Unlock()
	for id := 0; id < n; id++ {
		b.Close(co, id)
	}
}
