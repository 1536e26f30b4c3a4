// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"strings"
)

// exprType tags one element of a parsed line: either a command to run or
// one of the connectors between commands.
type exprType int

const (
	exprCommand exprType = iota
	exprPipe
	exprAnd
	exprOr
)

// command is one executable with its argument vector, exe in argv[0]
// position.
type command struct {
	exe  string
	args []string
}

// expr is one token of a parsed line: a command, or a | && || connector
// between two commands.
type expr struct {
	typ exprType
	cmd command
}

type outputType int

const (
	outputStdout outputType = iota
	outputFileNew
	outputFileAppend
)

// line is a fully parsed command line: a flat sequence of command and
// connector exprs, plus the line-level output redirection and background
// flag, mirroring struct command_line from the source this package is
// ported from.
type line struct {
	exprs        []expr
	isBackground bool
	outFile      string
	outType      outputType
}

// parse tokenizes and parses one input line into a line. The grammar
// recognized is: words separated by whitespace; | && || as standalone
// connector tokens; a single trailing > file or >> file redirecting the
// whole line's final stdout; a trailing & marking the line background.
// There is no quoting, globbing, or variable expansion.
func parse(s string) (*line, error) {
	fields := tokenize(s)
	if len(fields) == 0 {
		return &line{}, nil
	}

	ln := &line{outType: outputStdout}

	if fields[len(fields)-1] == "&" {
		ln.isBackground = true
		fields = fields[:len(fields)-1]
	}

	if n := len(fields); n >= 2 && (fields[n-2] == ">" || fields[n-2] == ">>") {
		ln.outFile = fields[n-1]
		if fields[n-2] == ">>" {
			ln.outType = outputFileAppend
		} else {
			ln.outType = outputFileNew
		}
		fields = fields[:n-2]
	}

	var cur command
	flush := func() {
		if cur.exe != "" {
			ln.exprs = append(ln.exprs, expr{typ: exprCommand, cmd: cur})
			cur = command{}
		}
	}

	for _, f := range fields {
		switch f {
		case "|":
			flush()
			ln.exprs = append(ln.exprs, expr{typ: exprPipe})
		case "&&":
			flush()
			ln.exprs = append(ln.exprs, expr{typ: exprAnd})
		case "||":
			flush()
			ln.exprs = append(ln.exprs, expr{typ: exprOr})
		default:
			if cur.exe == "" {
				cur.exe = f
			} else {
				cur.args = append(cur.args, f)
			}
		}
	}
	flush()

	if len(ln.exprs) == 0 {
		return nil, fmt.Errorf("pipeline: empty command line")
	}
	return ln, nil
}

func tokenize(s string) []string {
	var out []string
	for _, raw := range strings.Fields(s) {
		// Split a token like "cmd|grep" or "a&&b" apart from its
		// neighbors only when the connector is glued to a word; the
		// common case (connectors surrounded by spaces) needs no split.
		out = append(out, splitGlued(raw)...)
	}
	return out
}

// splitGlued breaks a single whitespace-delimited field into words and
// connector tokens when a user wrote them without surrounding spaces,
// e.g. "ls|wc" or "true&&echo".
func splitGlued(tok string) []string {
	var out []string
	i := 0
	for i < len(tok) {
		switch {
		case strings.HasPrefix(tok[i:], "&&"):
			out = append(out, "&&")
			i += 2
		case strings.HasPrefix(tok[i:], "||"):
			out = append(out, "||")
			i += 2
		case strings.HasPrefix(tok[i:], ">>"):
			out = append(out, ">>")
			i += 2
		case tok[i] == '|' || tok[i] == '>' || tok[i] == '&':
			out = append(out, string(tok[i]))
			i++
		default:
			j := i
			for j < len(tok) {
				if strings.ContainsRune("|>&", rune(tok[j])) {
					break
				}
				j++
			}
			out = append(out, tok[i:j])
			i = j
		}
	}
	return out
}
