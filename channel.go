// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfq"
)

// channel is a bounded FIFO of uint32 messages paired with send- and
// recv-waiter lists and a closed flag. Storage is a lock-free MPMC queue
// ([lfq.MPMC]) gated by an exact length counter: lfq rounds a requested
// capacity up to the next power of two internally, but channel callers
// requested an exact capacity (spec.md invariant I1), so length is
// tracked independently and every enqueue is refused once length reaches
// capacity, regardless of how much headroom the underlying ring still has.
type channel struct {
	capacity int
	length   atomix.Int32
	queue    *lfq.MPMC[uint32]

	sendWaiters waiterList
	recvWaiters waiterList

	closed bool
}

func newChannel(capacity int) *channel {
	ringCapacity := capacity
	if ringCapacity < 2 {
		// lfq.MPMC panics below capacity 2; the exact length gate below
		// keeps the channel's own capacity (which may be 1) honest
		// regardless of how much headroom the ring actually has.
		ringCapacity = 2
	}
	return &channel{
		capacity: capacity,
		queue:    lfq.NewMPMC[uint32](ringCapacity),
	}
}

func (ch *channel) len() int {
	return int(ch.length.Load())
}

func (ch *channel) full() bool {
	return ch.len() >= ch.capacity
}

func (ch *channel) empty() bool {
	return ch.len() == 0
}

// push enqueues v. Caller must have already checked !full() under the
// bus lock; push itself never blocks.
func (ch *channel) push(v uint32) {
	if err := ch.queue.Enqueue(&v); err != nil {
		// The length gate guarantees the ring always has room; reaching
		// here would mean length and the ring disagree.
		panic("corobus: channel ring rejected enqueue under free capacity: " + err.Error())
	}
	ch.length.Add(1)
}

// pop dequeues the head message. Caller must have already checked
// !empty() under the bus lock.
func (ch *channel) pop() uint32 {
	v, err := ch.queue.Dequeue()
	if err != nil {
		panic("corobus: channel ring rejected dequeue under nonzero length: " + err.Error())
	}
	ch.length.Add(-1)
	return v
}

// markClosed sets closed and, per lfq's documented shutdown contract,
// hints the ring that no further enqueues will occur so that subsequent
// drains are never held up by the ring's livelock-prevention threshold.
func (ch *channel) markClosed() {
	ch.closed = true
	ch.queue.Drain()
}
