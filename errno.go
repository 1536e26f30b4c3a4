// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"errors"
	"sync"

	"code.hybscloud.com/corobus/fiber"
	"code.hybscloud.com/iox"
)

// ErrNoChannel reports that a channel id is invalid, the channel is closed
// with nothing left to give, or (for Broadcast) the bus has no live
// channels. It is terminal: the caller must not retry.
//
// WOULD_BLOCK has no analogous sentinel of its own here: it is
// [iox.ErrWouldBlock], reused directly from the ecosystem convention every
// other non-blocking boundary in this module's dependency graph already
// uses (see [code.hybscloud.com/lfq]).
var ErrNoChannel = errors.New("corobus: no such channel")

// errnoSlot is the last-error cell. The source keeps one process-wide
// global; this module keeps one per coroutine, as spec.md's Design Notes
// recommend for a runtime that can multiplex multiple buses and callers.
// A program with a single coroutine observes identical behavior to the
// original global slot.
var (
	errnoMu   sync.Mutex
	errnoByCo = map[*fiber.Coroutine]error{}
)

// setErrno records err as the last error observed by co. Called by every
// operation that returns a failure, and by the blocking operations each
// time an internal attempt finds the channel full or empty (recording
// iox.ErrWouldBlock even when the operation later succeeds). A success
// never clears a coroutine's last error (per spec.md §4.8, the slot is
// read only on a failing return).
func setErrno(co *fiber.Coroutine, err error) {
	if co == nil || err == nil {
		return
	}
	errnoMu.Lock()
	errnoByCo[co] = err
	errnoMu.Unlock()
}

// Errno returns the last error recorded for co, or nil if co has never
// failed a corobus operation. Corresponds to the spec's errno().
func Errno(co *fiber.Coroutine) error {
	errnoMu.Lock()
	defer errnoMu.Unlock()
	return errnoByCo[co]
}

// ErrnoSet forces co's last-error cell to err. Corresponds to errno_set().
func ErrnoSet(co *fiber.Coroutine, err error) {
	errnoMu.Lock()
	errnoByCo[co] = err
	errnoMu.Unlock()
}

// IsWouldBlock reports whether err is the WOULD_BLOCK sentinel.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
