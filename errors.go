// Copyright 2026 Vladimir Kostic. All rights reserved.

//go:build linux

package shm

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ErrKind identifies which shared memory operation failed.
type ErrKind int

const (
	// KindOpen is a failure to create or attach to a named object.
	KindOpen ErrKind = iota
	// KindTruncate is a failure to set the object's size.
	KindTruncate
	// KindMap is a failure to map the object into the address space.
	KindMap
	// KindStat is a failure to query the object's size.
	KindStat
)

func (k ErrKind) String() string {
	switch k {
	case KindOpen:
		return "shared memory open failed"
	case KindTruncate:
		return "shared memory truncate failed"
	case KindMap:
		return "shared memory map failed"
	case KindStat:
		return "shared memory stat failed"
	default:
		return "unknown shared memory error"
	}
}

// Error is a failed shared memory operation paired with the system
// error code captured at the failure site. Two errors are equal iff
// both the kind and the code are equal.
type Error struct {
	Kind ErrKind
	Code unix.Errno
}

func newError(kind ErrKind, code unix.Errno) *Error {
	return &Error{Kind: kind, Code: code}
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Code.Error()
}

// Is makes errors.Is match two Errors by kind and code.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && *e == *other
}

// errnoOf extracts the system error code from an error returned by a
// unix syscall wrapper.
func errnoOf(err error) unix.Errno {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return 0
}
