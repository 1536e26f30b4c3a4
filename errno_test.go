// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/corobus"
	"code.hybscloud.com/corobus/fiber"
	"code.hybscloud.com/iox"
)

func TestErrnoPerCoroutine(t *testing.T) {
	bus := corobus.New()
	sch := fiber.New()
	id := bus.Open(1)

	var co1, co2 *fiber.Coroutine
	sch.Spawn(func(co *fiber.Coroutine) {
		co1 = co
		_, err := bus.TryRecv(co, id) // empty, open: WouldBlock
		if !errors.Is(err, iox.ErrWouldBlock) {
			t.Fatalf("co1 recv err = %v", err)
		}
	})
	sch.Spawn(func(co *fiber.Coroutine) {
		co2 = co
		_, err := bus.TryRecv(co, 99) // invalid id: NoChannel
		if !errors.Is(err, corobus.ErrNoChannel) {
			t.Fatalf("co2 recv err = %v", err)
		}
	})
	sch.Run()

	if !errors.Is(corobus.Errno(co1), iox.ErrWouldBlock) {
		t.Fatalf("Errno(co1) = %v, want WouldBlock", corobus.Errno(co1))
	}
	if !errors.Is(corobus.Errno(co2), corobus.ErrNoChannel) {
		t.Fatalf("Errno(co2) = %v, want ErrNoChannel", corobus.Errno(co2))
	}
}

func TestErrnoNotClearedOnSuccess(t *testing.T) {
	bus := corobus.New()
	sch := fiber.New()
	id := bus.Open(1)

	var co *fiber.Coroutine
	sch.Spawn(func(c *fiber.Coroutine) {
		co = c
		_, _ = bus.TryRecv(c, id) // fails: WouldBlock
		_ = bus.TrySend(c, id, 1) // succeeds
	})
	sch.Run()

	if !errors.Is(corobus.Errno(co), iox.ErrWouldBlock) {
		t.Fatalf("Errno(co) = %v, want the earlier WouldBlock to survive a success", corobus.Errno(co))
	}
}
