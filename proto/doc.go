// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package proto composes bus sends and receives into session-typed
// protocols using kont's algebraic effects, instead of calling
// [code.hybscloud.com/corobus] directly at every step.
//
// A [Port] binds one coroutine to one bus channel. [Send], [Recv] and
// [Close] are effect operations dispatched against a Port by [Handler];
// [SendThen], [RecvBind] and [CloseDone] fuse the common Perform+Bind/Then
// shapes into single calls, and [Loop] expresses a recursive protocol as
// a step function returning kont.Either a continuation state or a final
// result.
//
// Unlike a transport where both ends are plain queues with no failure
// mode, a bus channel can close mid-protocol. [Port]'s effects call
// straight through to [corobus.Bus]'s blocking operations, which already
// suspend the calling coroutine via fiber.Coroutine.Suspend/Wakeup; there
// is no polling boundary left for a handler to retry across, so
// [Handler.Dispatch] makes exactly one dispatch attempt per effect and
// records any resulting corobus.ErrNoChannel for [Run] to surface once
// the whole computation unwinds.
package proto
