// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"code.hybscloud.com/corobus/pipeline"
)

func TestRunSimpleCommand(t *testing.T) {
	var out bytes.Buffer
	sh := pipeline.New(strings.NewReader(""), &out, &out)

	status, err := sh.Run("echo hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if got := strings.TrimSpace(out.String()); got != "hello" {
		t.Fatalf("output = %q, want %q", got, "hello")
	}
}

func TestRunPipeline(t *testing.T) {
	var out bytes.Buffer
	sh := pipeline.New(strings.NewReader(""), &out, &out)

	_, err := sh.Run("echo hello | tr a-z A-Z")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "HELLO" {
		t.Fatalf("output = %q, want %q", got, "HELLO")
	}
}

func TestRunAndShortCircuit(t *testing.T) {
	var out bytes.Buffer
	sh := pipeline.New(strings.NewReader(""), &out, &out)

	status, err := sh.Run("false && echo unreachable")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if status == 0 {
		t.Fatalf("status = %d, want nonzero from false", status)
	}
	if strings.Contains(out.String(), "unreachable") {
		t.Fatalf("output = %q, && right side ran despite left failing", out.String())
	}
}

func TestRunOrShortCircuit(t *testing.T) {
	var out bytes.Buffer
	sh := pipeline.New(strings.NewReader(""), &out, &out)

	status, err := sh.Run("true || echo unreachable")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if strings.Contains(out.String(), "unreachable") {
		t.Fatalf("output = %q, || right side ran despite left succeeding", out.String())
	}
}

func TestRunRedirect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	var out bytes.Buffer
	sh := pipeline.New(strings.NewReader(""), &out, &out)

	if _, err := sh.Run("echo redirected > " + path); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "redirected" {
		t.Fatalf("file content = %q, want %q", got, "redirected")
	}
}

func TestRunCd(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	defer os.Chdir(wd)

	var out bytes.Buffer
	sh := pipeline.New(strings.NewReader(""), &out, &out)

	status, err := sh.Run("cd " + dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}

	got, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if resolved, _ := filepath.EvalSymlinks(got); resolved != mustEvalSymlinks(t, dir) {
		t.Fatalf("cwd = %q, want %q", got, dir)
	}
}

func TestRunExit(t *testing.T) {
	var out bytes.Buffer
	sh := pipeline.New(strings.NewReader(""), &out, &out)

	status, err := sh.Run("exit 7")
	if status != 7 {
		t.Fatalf("status = %d, want 7", status)
	}
	if _, ok := err.(pipeline.ErrExit); !ok {
		t.Fatalf("err = %v, want ErrExit", err)
	}
}

func mustEvalSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	return resolved
}
