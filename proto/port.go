// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proto

import (
	"code.hybscloud.com/corobus"
	"code.hybscloud.com/corobus/fiber"
	"code.hybscloud.com/kont"
)

// Port binds one coroutine to one bus channel: the unit every effect in
// this package dispatches against. Unlike sess's Endpoint, a Port does
// not own the transport — the Bus does — so a Port is a cheap, disposable
// view, and nothing prevents a coroutine from holding more than one.
type Port struct {
	Bus *corobus.Bus
	Co  *fiber.Coroutine
	ID  int
}

// portDispatcher is the structural interface every effect in this
// package implements, mirroring sess's sessionDispatcher.
type portDispatcher interface {
	DispatchPort(p *Port) (kont.Resumed, error)
}

// Handler implements kont.Handler against a single Port. R is carried
// only so Go can infer the handler's type parameter at the call site in
// [Run], the same reason sess.sessionHandler is parameterized by R even
// though its Dispatch method never mentions it.
type Handler[R any] struct {
	port *Port
	err  error
}

// NewHandler creates a Handler dispatching every effect against port.
func NewHandler[R any](port *Port) *Handler[R] {
	return &Handler[R]{port: port}
}

// Dispatch implements kont.Handler via structural interface assertion,
// exactly as sessionHandler.Dispatch does. A corobus operation is already
// blocking, so unlike dispatchWait there is nothing to back off and
// retry: DispatchPort either returns a value or a terminal error, and a
// terminal error is recorded on h rather than returned through Dispatch's
// (Resumed, bool) signature, which has no slot for one.
func (h *Handler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	pop, ok := op.(portDispatcher)
	if !ok {
		panic("proto: unhandled effect in Handler")
	}
	v, err := pop.DispatchPort(h.port)
	if err != nil {
		h.err = err
		var zero R
		return zero, false
	}
	return v, true
}

// Run evaluates comp against port and returns its result, or the first
// corobus error any effect in comp encountered.
func Run[R any](port *Port, comp kont.Eff[R]) (R, error) {
	h := NewHandler[R](port)
	result := kont.Handle(comp, h)
	if h.err != nil {
		var zero R
		return zero, h.err
	}
	return result, nil
}
