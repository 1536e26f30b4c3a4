// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package corobus implements a bounded, many-to-many message bus for
// cooperatively scheduled coroutines ([code.hybscloud.com/corobus/fiber]).
//
// A [Bus] is a sparse table of channel slots. [Bus.Open] allocates a
// channel with a fixed capacity and returns a stable small-integer id;
// the per-channel operations — [Bus.Send], [Bus.Recv], [Bus.TrySend],
// [Bus.TryRecv], [Bus.SendV], [Bus.RecvV] and their Try variants, and
// [Bus.Close] — address a channel by that id, so multiple coroutines can
// share a channel without sharing a Go value. [Bus.Broadcast] and
// [Bus.TryBroadcast] take no id and address every live channel at once.
//
// Every operation takes the calling coroutine's *fiber.Coroutine as its
// first argument. Two things ride on it: the blocking operations suspend
// and resume that exact coroutine, and [Errno] records the last failure
// seen by that coroutine specifically, mirroring errno's traditional
// per-thread semantics one level down at per-coroutine granularity
// (spec.md §4.8's Go-idiomatic refinement — real errno is one cell per
// OS thread, and a coroutine is this module's thread analogue).
//
// Failures come in two flavors, distinguished by [IsWouldBlock]:
// iox.ErrWouldBlock means try now, later, or register as a waiter;
// [ErrNoChannel] means the id is invalid, the slot is empty, or the
// channel is closed with nothing left to drain, and is terminal for that
// id. Blocking operations never return iox.ErrWouldBlock themselves —
// that outcome drives suspension internally instead.
//
// [Bus.Close] marks a channel closed, wakes every coroutine parked on it
// in FIFO order, and frees the slot; any coroutine already or
// subsequently operating on that id observes [ErrNoChannel], except that
// a recv against a closed-but-nonempty channel still drains its
// remaining messages first (§4.2.2's normalized try_recv semantics).
// [Bus.Delete] runs this for every remaining channel.
package corobus
