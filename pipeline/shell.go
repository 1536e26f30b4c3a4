// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"bufio"
	"io"
	"sync"
)

// Shell runs shell lines against a fixed set of standard streams,
// carrying the exit status of the last line executed forward as input to
// the next (mirroring the source's last_status threaded through
// execute_command_line calls) and a last-error cell in the same spirit as
// corobus's per-coroutine errno, scoped per Shell instead of per
// coroutine since a pipeline has no concept of suspension to key on.
type Shell struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	mu         sync.Mutex
	lastStatus int
	lastErr    error
}

// New creates a Shell wired to the given standard streams.
func New(stdin io.Reader, stdout, stderr io.Writer) *Shell {
	return &Shell{Stdin: stdin, Stdout: stdout, Stderr: stderr}
}

// Errno returns the last error this Shell recorded, or nil.
func (sh *Shell) Errno() error {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.lastErr
}

// ErrnoSet records err as the Shell's last error.
func (sh *Shell) ErrnoSet(err error) {
	sh.mu.Lock()
	sh.lastErr = err
	sh.mu.Unlock()
}

// Status returns the exit status of the most recently executed line.
func (sh *Shell) Status() int {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.lastStatus
}

// Run parses and executes one input line, updating and returning the
// Shell's exit status. A parse error leaves the status unchanged and is
// also recorded via ErrnoSet.
func (sh *Shell) Run(input string) (int, error) {
	ln, err := parse(input)
	if err != nil {
		sh.ErrnoSet(err)
		return sh.Status(), err
	}
	status, err := sh.executeLine(ln)
	if err != nil {
		if exitErr, ok := err.(ErrExit); ok {
			sh.mu.Lock()
			sh.lastStatus = exitErr.Code
			sh.mu.Unlock()
			return exitErr.Code, err
		}
		return sh.Status(), err
	}
	sh.mu.Lock()
	sh.lastStatus = status
	sh.mu.Unlock()
	return status, nil
}

// executeLine ports execute_command_line: it splits the line's exprs on
// && / || into pipe-only groups, runs each group via executePipeline
// unless the preceding connector's short-circuit condition says to skip
// it, and folds the connector's own true/false decision from the
// previous group's exit status.
func (sh *Shell) executeLine(ln *line) (int, error) {
	if len(ln.exprs) == 0 {
		return sh.Status(), nil
	}

	status := sh.Status()
	var group []command
	skipNext := false

	flush := func() (int, error) {
		if len(group) == 0 {
			return status, nil
		}
		defer func() { group = nil }()
		if skipNext {
			return status, nil
		}
		return sh.executePipeline(group, ln.isBackground, ln.outFile, ln.outType, status)
	}

	for _, e := range ln.exprs {
		switch e.typ {
		case exprAnd, exprOr:
			s, err := flush()
			if err != nil {
				return s, err
			}
			status = s
			if e.typ == exprAnd {
				skipNext = status != 0
			} else {
				skipNext = status == 0
			}
		case exprCommand:
			group = append(group, e.cmd)
		case exprPipe:
			// exprPipe tokens only separate commands within a group;
			// executePipeline itself wires the | chain.
		}
	}
	s, err := flush()
	if err != nil {
		return s, err
	}
	return s, nil
}

// REPL reads newline-terminated lines from r, executes each with Run, and
// returns the final exit status once r is exhausted. Parse errors are
// reported to Stderr and do not stop the loop, mirroring main()'s
// printf("Error: %d\n", err) handling.
func (sh *Shell) REPL(r io.Reader) int {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		status, err := sh.Run(scanner.Text())
		if err != nil {
			if _, ok := err.(ErrExit); ok {
				return status
			}
			io.WriteString(sh.Stderr, "pipeline: "+err.Error()+"\n")
			continue
		}
	}
	return sh.Status()
}
