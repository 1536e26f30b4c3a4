// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus_test

import (
	"reflect"
	"testing"
	"testing/quick"

	"code.hybscloud.com/corobus"
	"code.hybscloud.com/corobus/fiber"
)

// TestPropertyFIFOPerChannel proves that for any arbitrarily generated
// sequence of values sent in order by a single producer, a single
// consumer on the same channel dequeues exactly that sequence in order.
func TestPropertyFIFOPerChannel(t *testing.T) {
	propertyFIFO := func(payload []uint32) bool {
		bus := corobus.New()
		sch := fiber.New()
		id := bus.Open(4)

		sch.Spawn(func(co *fiber.Coroutine) {
			for _, v := range payload {
				if err := bus.Send(co, id, v); err != nil {
					panic(err)
				}
			}
			bus.Close(co, id)
		})

		var got []uint32
		sch.Spawn(func(co *fiber.Coroutine) {
			for {
				v, err := bus.Recv(co, id)
				if err != nil {
					return
				}
				got = append(got, v)
			}
		})

		sch.Run()

		if len(payload) == 0 && len(got) == 0 {
			return true
		}
		return reflect.DeepEqual(payload, got)
	}

	if err := quick.Check(propertyFIFO, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyBoundedQueue proves that a channel's length never exceeds
// its declared capacity, regardless of how many non-blocking sends race
// to fill it.
func TestPropertyBoundedQueue(t *testing.T) {
	propertyBounded := func(capacity uint8, attempts uint8) bool {
		cap := int(capacity%8) + 1
		n := int(attempts % 32)

		bus := corobus.New()
		sch := fiber.New()
		id := bus.Open(cap)

		accepted := 0
		sch.Spawn(func(co *fiber.Coroutine) {
			for i := 0; i < n; i++ {
				if err := bus.TrySend(co, id, uint32(i)); err == nil {
					accepted++
				}
			}
		})
		sch.Run()

		return accepted <= cap
	}

	if err := quick.Check(propertyBounded, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyIdStability proves that every operation against an id
// refers to the same channel until that id's close returns: two
// back-to-back sends on the same id are observed, in order, by a
// receiver on that same id.
func TestPropertyIdStability(t *testing.T) {
	propertyStable := func(a, b uint32) bool {
		bus := corobus.New()
		sch := fiber.New()
		id := bus.Open(2)

		sch.Spawn(func(co *fiber.Coroutine) {
			_ = bus.Send(co, id, a)
			_ = bus.Send(co, id, b)
		})

		var got [2]uint32
		sch.Spawn(func(co *fiber.Coroutine) {
			got[0], _ = bus.Recv(co, id)
			got[1], _ = bus.Recv(co, id)
		})

		sch.Run()
		return got[0] == a && got[1] == b
	}

	if err := quick.Check(propertyStable, nil); err != nil {
		t.Error(err)
	}
}
