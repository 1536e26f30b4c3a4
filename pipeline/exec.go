// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"io"
	"os"
	"os/exec"
	"strconv"
)

// executePipeline runs one |-chained group of commands (no && or ||
// inside it), wiring each command's stdout to the next's stdin via
// os/exec's pipe plumbing — the Go standard library's direct analog of
// the source's fork+pipe+dup2+execvp sequence. If background is true,
// the chain is started but not waited on; a detached goroutine reaps it
// instead of main-line cleanup_zombies-style polling.
func (sh *Shell) executePipeline(cmds []command, background bool, outFile string, outType outputType, currentStatus int) (int, error) {
	if len(cmds) == 0 {
		return currentStatus, nil
	}

	if len(cmds) == 1 {
		switch cmds[0].exe {
		case "exit":
			code := currentStatus
			if len(cmds[0].args) > 0 {
				if n, err := strconv.Atoi(cmds[0].args[0]); err == nil {
					code = n
				}
			}
			return code, ErrExit{Code: code}
		case "cd":
			if len(cmds[0].args) == 0 {
				return 0, nil
			}
			if err := os.Chdir(cmds[0].args[0]); err != nil {
				sh.ErrnoSet(err)
				return 1, nil
			}
			return 0, nil
		}
	}

	procs := make([]*exec.Cmd, len(cmds))
	var prevStdout io.ReadCloser

	for i, c := range cmds {
		cmd := exec.Command(c.exe, c.args...)
		cmd.Stderr = sh.Stderr

		if i == 0 {
			cmd.Stdin = sh.Stdin
		} else {
			cmd.Stdin = prevStdout
		}

		last := i == len(cmds)-1
		if last {
			if outType == outputStdout {
				cmd.Stdout = sh.Stdout
			} else {
				flags := os.O_WRONLY | os.O_CREATE
				if outType == outputFileAppend {
					flags |= os.O_APPEND
				} else {
					flags |= os.O_TRUNC
				}
				f, err := os.OpenFile(outFile, flags, 0644)
				if err != nil {
					sh.ErrnoSet(err)
					return 1, nil
				}
				defer f.Close()
				cmd.Stdout = f
			}
		} else {
			pipe, err := cmd.StdoutPipe()
			if err != nil {
				sh.ErrnoSet(err)
				return 1, nil
			}
			prevStdout = pipe
		}

		if err := cmd.Start(); err != nil {
			sh.ErrnoSet(errNotFound)
			procs[i] = nil
			continue
		}
		procs[i] = cmd
	}

	if background {
		go func(ps []*exec.Cmd) {
			for _, p := range ps {
				if p != nil {
					p.Wait()
				}
			}
		}(procs)
		return 0, nil
	}

	status := currentStatus
	for _, p := range procs {
		if p == nil {
			continue
		}
		status = waitStatus(p)
	}
	return status, nil
}

// waitStatus waits for p and translates its termination into a shell
// exit status: the process's own exit code, or 128+signal if it was
// killed by a signal, mirroring WIFEXITED/WEXITSTATUS/WIFSIGNALED/
// WTERMSIG in the source.
func waitStatus(p *exec.Cmd) int {
	err := p.Wait()
	if err == nil {
		return 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return 1
	}
	if exitErr.ExitCode() == -1 {
		// Negative ExitCode means the process was terminated by a signal.
		return 128 + signalNumber(exitErr)
	}
	return exitErr.ExitCode()
}
