package config

import (
	"bytes"
	"errors"
	"testing"
)

func captureExit(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var buf bytes.Buffer
	code := -1
	prevStderr, prevExit := stderr, exit
	stderr = &buf
	exit = func(c int) { code = c }
	t.Cleanup(func() {
		stderr = prevStderr
		exit = prevExit
	})
	return &buf, &code
}

func TestExitfWritesMessageAndExitsWithCode1(t *testing.T) {
	buf, code := captureExit(t)

	Exitf("fatal: %s", "something broke")

	if *code != 1 {
		t.Fatalf("exit code = %d, want 1", *code)
	}
	if got := buf.String(); got != "fatal: something broke\n" {
		t.Fatalf("stderr = %q", got)
	}
}

func TestExitOnErrorSkipsNil(t *testing.T) {
	buf, code := captureExit(t)

	ExitOnError("mount routes", nil)

	if *code != -1 {
		t.Fatalf("exit called with %d", *code)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected stderr %q", buf.String())
	}
}

func TestExitOnErrorLabelsStep(t *testing.T) {
	buf, code := captureExit(t)

	ExitOnError("mount routes", errors.New("route /a has no scene"))

	if *code != 1 {
		t.Fatalf("exit code = %d, want 1", *code)
	}
	if got := buf.String(); got != "mount routes: route /a has no scene\n" {
		t.Fatalf("stderr = %q", got)
	}
}
