// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proto

import (
	"code.hybscloud.com/kont"
)

// SendThen sends v and then continues with next.
// Fuses Perform(Send{Value: v}) + Then.
func SendThen[B any](v uint32, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Send{Value: v}), next)
}

// RecvBind receives a value and passes it to f.
// Fuses Perform(Recv{}) + Bind.
func RecvBind[B any](f func(uint32) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Recv{}), f)
}

// CloseDone closes the port's channel and returns a.
// Fuses Perform(Close{}) + Then + Pure.
func CloseDone[A any](a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Close{}), kont.Pure(a))
}
