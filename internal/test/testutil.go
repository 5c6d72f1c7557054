// Copyright 2026 Vladimir Kostic. All rights reserved.

// Package shmtesting drives helper programs for cross-process
// shared memory tests.
package shmtesting

import (
	"bytes"
	"encoding/hex"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// AppResult is the outcome of a 'go run' helper program launch.
type AppResult struct {
	Output string
	Err    error
}

// BytesToHex renders data as upper-case hex, two symbols per byte,
// the form the helper programs take on their command line.
func BytesToHex(data []byte) string {
	return strings.ToUpper(hex.EncodeToString(data))
}

// HexToBytes parses the helper programs' hex form back into bytes.
func HexToBytes(input string) ([]byte, error) {
	data, err := hex.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex input")
	}
	return data, nil
}

// RunTestApp launches a helper program via 'go run' and waits for it.
func RunTestApp(args ...string) AppResult {
	cmd := exec.Command("go", append([]string{"run"}, args...)...)
	buff := bytes.NewBuffer(nil)
	cmd.Stdout = buff
	cmd.Stderr = buff
	err := cmd.Run()
	if err != nil {
		err = errors.Wrapf(err, "helper program failed: %s", buff.String())
	}
	return AppResult{Output: buff.String(), Err: err}
}

// RunTestAppAsync launches a helper program and returns a channel
// delivering its result.
func RunTestAppAsync(args ...string) <-chan AppResult {
	ch := make(chan AppResult, 1)
	go func() {
		ch <- RunTestApp(args...)
	}()
	return ch
}

// WaitForAppResult waits for a helper program result with a timeout.
func WaitForAppResult(ch <-chan AppResult, d time.Duration) (AppResult, bool) {
	select {
	case result := <-ch:
		return result, true
	case <-time.After(d):
		return AppResult{}, false
	}
}
