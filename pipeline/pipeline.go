// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pipeline is a small shell pipeline executor: command lines
// joined by && and ||, commands within a line chained by |, output
// optionally redirected to a file, and a trailing & to run the whole
// line in the background.
//
// It shares nothing at the code level with [code.hybscloud.com/corobus]
// beyond the repository's error-reporting convention: a [Shell] keeps a
// last-error cell read via [Shell.Errno] and written via
// [Shell.ErrnoSet], the same one-cell-per-caller shape corobus uses for
// WOULD_BLOCK/NO_CHANNEL, applied here to parse, redirection, cd and
// process-start errors. The last exit status is kept separately and read
// via [Shell.Status].
package pipeline

import "errors"

// ErrExit is returned by Run when the line invoked the exit builtin.
// Code carries the status the caller should terminate with.
type ErrExit struct {
	Code int
}

func (e ErrExit) Error() string { return "pipeline: exit requested" }

// errNotFound mirrors execvp's ENOENT path: the named executable could
// not be resolved on PATH.
var errNotFound = errors.New("pipeline: command not found")
