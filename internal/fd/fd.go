// Copyright 2026 Vladimir Kostic. All rights reserved.

//go:build linux

// Package fd provides a single-owner wrapper over a raw file descriptor.
package fd

import (
	"golang.org/x/sys/unix"
)

// Invalid is the sentinel value of an FD which owns nothing.
const Invalid = -1

// FD owns a raw kernel file descriptor and closes it exactly once.
// It must not be copied; ownership moves only through Release.
type FD struct {
	raw int
}

// New takes ownership of raw. Pass Invalid to create an empty FD.
func New(raw int) *FD {
	return &FD{raw: raw}
}

// Raw returns the underlying descriptor without transferring ownership.
func (f *FD) Raw() int {
	return f.raw
}

// Valid reports whether f currently owns a descriptor.
func (f *FD) Valid() bool {
	return f.raw >= 0
}

// Release transfers the descriptor to the caller, leaving f empty.
// Closing f afterwards is a no-op.
func (f *FD) Release() int {
	raw := f.raw
	f.raw = Invalid
	return raw
}

// Close releases the descriptor, if any. It is idempotent. A close
// failure is swallowed: there is nothing useful the caller can do
// with it at this point, and the descriptor is gone either way.
func (f *FD) Close() {
	if f.raw >= 0 {
		unix.Close(f.raw)
		f.raw = Invalid
	}
}
