// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"os/exec"
	"syscall"
)

// signalNumber extracts the terminating signal number from exitErr, for
// the 128+signal exit-status convention. The source this package is
// ported from reads WTERMSIG(status) directly; syscall.WaitStatus is the
// Go standard library's equivalent view onto the same wait(2) status
// word.
func signalNumber(exitErr *exec.ExitError) int {
	ws, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return 0
	}
	return int(ws.Signal())
}
