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

func TestPingPong(t *testing.T) {
	bus := corobus.New()
	sch := fiber.New()
	id := bus.Open(1)

	var x, y, z uint32

	sch.Spawn(func(co *fiber.Coroutine) {
		mustSend(t, bus, co, id, 42)
		mustSend(t, bus, co, id, 43)
		x = mustRecv(t, bus, co, id)
	})
	sch.Spawn(func(co *fiber.Coroutine) {
		y = mustRecv(t, bus, co, id)
		mustSend(t, bus, co, id, y+1)
		z = mustRecv(t, bus, co, id)
	})

	sch.Run()

	if y != 42 {
		t.Fatalf("y = %d, want 42", y)
	}
	if x != 43 {
		t.Fatalf("x = %d, want 43", x)
	}
	if z != 43 {
		t.Fatalf("z = %d, want 43", z)
	}
}

func TestBackpressure(t *testing.T) {
	bus := corobus.New()
	sch := fiber.New()
	id := bus.Open(2)

	sch.Spawn(func(co *fiber.Coroutine) {
		for _, v := range []uint32{1, 2, 3, 4} {
			mustSend(t, bus, co, id, v)
		}
	})

	var got []uint32
	sch.Spawn(func(co *fiber.Coroutine) {
		for i := 0; i < 4; i++ {
			got = append(got, mustRecv(t, bus, co, id))
		}
	})

	sch.Run()

	want := []uint32{1, 2, 3, 4}
	if !equalSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCloseDrainsRecv(t *testing.T) {
	bus := corobus.New()
	sch := fiber.New()
	id := bus.Open(4)

	sch.Spawn(func(co *fiber.Coroutine) {
		for _, v := range []uint32{10, 20, 30} {
			mustSend(t, bus, co, id, v)
		}
		bus.Close(co, id)
	})

	var got []uint32
	var lastErr error
	sch.Spawn(func(co *fiber.Coroutine) {
		for i := 0; i < 4; i++ {
			v, err := bus.Recv(co, id)
			if err != nil {
				lastErr = err
				continue
			}
			got = append(got, v)
		}
	})

	sch.Run()

	if !equalSlices(got, []uint32{10, 20, 30}) {
		t.Fatalf("got %v, want [10 20 30]", got)
	}
	if !errors.Is(lastErr, corobus.ErrNoChannel) {
		t.Fatalf("lastErr = %v, want ErrNoChannel", lastErr)
	}
}

func TestCloseWakesSenders(t *testing.T) {
	bus := corobus.New()
	sch := fiber.New()
	id := bus.Open(1)

	var p1Err, p2Err error
	sch.Spawn(func(co *fiber.Coroutine) {
		p1Err = bus.Send(co, id, 1)
	})
	sch.Spawn(func(co *fiber.Coroutine) {
		p2Err = bus.Send(co, id, 2)
	})
	sch.Spawn(func(co *fiber.Coroutine) {
		bus.Close(co, id)
	})

	sch.Run()

	if p1Err != nil {
		t.Fatalf("p1 send: %v, want nil", p1Err)
	}
	if !errors.Is(p2Err, corobus.ErrNoChannel) {
		t.Fatalf("p2 send: %v, want ErrNoChannel", p2Err)
	}
}

func TestBroadcastOneFullChannel(t *testing.T) {
	bus := corobus.New()
	sch := fiber.New()
	a := bus.Open(1)
	b := bus.Open(1)

	var broadcastErr error
	sch.Spawn(func(co *fiber.Coroutine) {
		if err := bus.TrySend(co, a, 9); err != nil {
			t.Fatalf("try_send(A, 9): %v", err)
		}
		broadcastErr = bus.TryBroadcast(co, 7)
	})

	sch.Run()

	if !errors.Is(broadcastErr, iox.ErrWouldBlock) {
		t.Fatalf("try_broadcast err = %v, want WouldBlock", broadcastErr)
	}

	var av, bv uint32
	var aErr, bErr error
	sch2 := fiber.New()
	sch2.Spawn(func(co *fiber.Coroutine) {
		av, aErr = bus.TryRecv(co, a)
		_, bErr = bus.TryRecv(co, b)
	})
	sch2.Run()

	if aErr != nil || av != 9 {
		t.Fatalf("A.queue = [%d] (err=%v), want [9]", av, aErr)
	}
	if !errors.Is(bErr, iox.ErrWouldBlock) {
		t.Fatalf("B.queue not empty: err = %v", bErr)
	}
	_ = bv
}

func TestBatchPartial(t *testing.T) {
	bus := corobus.New()
	sch := fiber.New()
	id := bus.Open(3)

	var n1, n2 int
	var err2 error
	sch.Spawn(func(co *fiber.Coroutine) {
		var err error
		n1, err = bus.TrySendV(co, id, []uint32{1, 2, 3, 4, 5})
		if err != nil {
			t.Fatalf("try_send_v: %v", err)
		}
		n2, err2 = bus.TrySendV(co, id, []uint32{4})
	})
	sch.Run()

	if n1 != 3 {
		t.Fatalf("n1 = %d, want 3", n1)
	}
	if !errors.Is(err2, iox.ErrWouldBlock) {
		t.Fatalf("second try_send_v err = %v, want WouldBlock", err2)
	}
	if n2 != 0 {
		t.Fatalf("n2 = %d, want 0", n2)
	}

	var out [3]uint32
	var got int
	sch2 := fiber.New()
	sch2.Spawn(func(co *fiber.Coroutine) {
		var err error
		got, err = bus.TryRecvV(co, id, out[:])
		if err != nil {
			t.Fatalf("try_recv_v: %v", err)
		}
	})
	sch2.Run()

	if got != 3 || out != [3]uint32{1, 2, 3} {
		t.Fatalf("drained %v (n=%d), want [1 2 3] (n=3)", out, got)
	}
}

func TestIdReuse(t *testing.T) {
	bus := corobus.New()
	sch := fiber.New()

	a := bus.Open(1)
	_ = bus.Open(1)
	if a != 0 {
		t.Fatalf("A id = %d, want 0", a)
	}

	sch.Spawn(func(co *fiber.Coroutine) {
		bus.Close(co, a)
	})
	sch.Run()

	c := bus.Open(1)
	if c != 0 {
		t.Fatalf("C id = %d, want 0 (reused A's slot)", c)
	}
}

func mustSend(t *testing.T, bus *corobus.Bus, co *fiber.Coroutine, id int, v uint32) {
	t.Helper()
	if err := bus.Send(co, id, v); err != nil {
		t.Fatalf("send(%d): %v", v, err)
	}
}

func mustRecv(t *testing.T, bus *corobus.Bus, co *fiber.Coroutine, id int) uint32 {
	t.Helper()
	v, err := bus.Recv(co, id)
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	return v
}

func equalSlices(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
