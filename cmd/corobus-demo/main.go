// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command corobus-demo runs a small producer/consumer pair over a
// [code.hybscloud.com/corobus] channel to exercise the bus, the fiber
// scheduler, and the proto effect layer end to end.
package main

import (
	"log"

	"code.hybscloud.com/corobus"
	"code.hybscloud.com/corobus/fiber"
	"code.hybscloud.com/corobus/proto"
	"code.hybscloud.com/kont"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("corobus-demo: ")

	bus := corobus.New()
	sch := fiber.New()

	const n = 5
	id := bus.Open(2)

	sch.Spawn(func(co *fiber.Coroutine) {
		port := &proto.Port{Bus: bus, Co: co, ID: id}
		for i := uint32(0); i < n; i++ {
			if _, err := proto.Run[struct{}](port, proto.SendThen(i, kont.Pure(struct{}{}))); err != nil {
				log.Printf("producer: send %d: %v", i, err)
				return
			}
			log.Printf("producer: sent %d", i)
		}
		bus.Close(co, id)
		log.Printf("producer: closed channel %d", id)
	})

	sch.Spawn(func(co *fiber.Coroutine) {
		port := &proto.Port{Bus: bus, Co: co, ID: id}
		for {
			v, err := proto.Run[uint32](port, kont.Perform(proto.Recv{}))
			if err != nil {
				log.Printf("consumer: channel %d drained: %v", id, err)
				return
			}
			log.Printf("consumer: received %d", v)
		}
	})

	sch.Run()
	log.Printf("done")
}
