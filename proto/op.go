// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proto

import (
	"code.hybscloud.com/kont"
)

// Send is the effect operation for sending one uint32 on a Port's
// channel. Unlike sess's Send[T], there is no type parameter: a bus
// channel only ever carries uint32 (spec.md's wire type), so there is
// nothing generic left to parameterize over.
type Send struct {
	kont.Phantom[struct{}]
	Value uint32
}

// DispatchPort sends Value on p's channel, suspending p.Co until there is
// room or the channel closes.
func (s Send) DispatchPort(p *Port) (kont.Resumed, error) {
	if err := p.Bus.Send(p.Co, p.ID, s.Value); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// Recv is the effect operation for receiving one uint32 from a Port's
// channel.
type Recv struct {
	kont.Phantom[uint32]
}

// DispatchPort receives one value from p's channel, suspending p.Co until
// one is available or the channel closes with nothing left.
func (Recv) DispatchPort(p *Port) (kont.Resumed, error) {
	v, err := p.Bus.Recv(p.Co, p.ID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Close is the effect operation for closing a Port's channel.
type Close struct {
	kont.Phantom[struct{}]
}

// DispatchPort runs the bus close protocol on p's channel. Unlike sess's
// Close (an atomic counter increment that never blocks), corobus's Close
// yields once internally so every coroutine it wakes gets a turn before
// returning; DispatchPort never fails.
func (Close) DispatchPort(p *Port) (kont.Resumed, error) {
	p.Bus.Close(p.Co, p.ID)
	return struct{}{}, nil
}
