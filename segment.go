// Copyright 2026 Vladimir Kostic. All rights reserved.

//go:build linux

package shm

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/kostic-vladimir/shared-memory/internal/fd"
)

// Mode governs both the permission bits of a created object and the
// memory protection of its mapping.
type Mode int

const (
	// ModeRead creates a user-readable object with a read-only mapping.
	ModeRead Mode = iota
	// ModeWrite creates a user-writable object with a write-only mapping.
	ModeWrite
	// ModeReadWrite creates a user-readable and writable object with a
	// read-write mapping.
	ModeReadWrite
)

func (m Mode) perm() uint32 {
	switch m {
	case ModeRead:
		return 0400
	case ModeWrite:
		return 0200
	default:
		return 0600
	}
}

func (m Mode) prot() int {
	switch m {
	case ModeRead:
		return unix.PROT_READ
	case ModeWrite:
		return unix.PROT_WRITE
	default:
		return unix.PROT_READ | unix.PROT_WRITE
	}
}

// Segment is a named shared memory object mapped into the process'
// address space. At most one Segment in the system should be created
// with unlinkOnClose set for a given name; that one removes the name
// when it is closed, all others release only their own mapping.
//
// A Segment is not safe for unsynchronized mutation from multiple
// goroutines; byte-level synchronization inside the mapping is the
// caller's business.
//
// Warning. A finalizer unmaps the region when the Segment is gc'ed,
// so do not keep slices obtained from Bytes() or View() alive past
// the Segment itself. SegmentReader/SegmentWriter hold the Segment
// for you and are the safer option.
type Segment struct {
	name   string
	data   []byte
	unlink bool
}

// Create makes a new shared memory object of exactly size bytes and maps
// it. The name must not already exist. If unlinkOnClose is set, the
// returned Segment removes the name when closed. On any failure after
// the name is created, the name is removed before the error is returned.
func Create(name string, size int, mode Mode, unlinkOnClose bool) (*Segment, error) {
	path, pathErrno := objectPath(name)
	if pathErrno != 0 {
		return nil, newError(KindOpen, pathErrno)
	}
	raw, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, mode.perm())
	if err != nil {
		return nil, newError(KindOpen, errnoOf(err))
	}
	shmFd := fd.New(raw)
	defer shmFd.Close()
	if err = unix.Ftruncate(shmFd.Raw(), int64(size)); err != nil {
		unix.Unlink(path)
		return nil, newError(KindTruncate, errnoOf(err))
	}
	data, err := unix.Mmap(shmFd.Raw(), 0, size, mode.prot(), unix.MAP_SHARED)
	if err != nil {
		unix.Unlink(path)
		return nil, newError(KindMap, errnoOf(err))
	}
	return newSegment(name, data, unlinkOnClose), nil
}

// Open attaches to an existing shared memory object, discovers its
// current size and maps the whole of it read-write. The returned
// Segment is non-owning: closing it never removes the name.
func Open(name string) (*Segment, error) {
	path, pathErrno := objectPath(name)
	if pathErrno != 0 {
		return nil, newError(KindOpen, pathErrno)
	}
	raw, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, newError(KindOpen, errnoOf(err))
	}
	shmFd := fd.New(raw)
	defer shmFd.Close()
	var st unix.Stat_t
	if err = unix.Fstat(shmFd.Raw(), &st); err != nil {
		return nil, newError(KindStat, errnoOf(err))
	}
	data, err := unix.Mmap(shmFd.Raw(), 0, int(st.Size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, newError(KindMap, errnoOf(err))
	}
	return newSegment(name, data, false), nil
}

func newSegment(name string, data []byte, unlink bool) *Segment {
	seg := &Segment{name: name, data: data, unlink: unlink}
	runtime.SetFinalizer(seg, func(s *Segment) {
		s.Close()
	})
	return seg
}

// Name returns the name the segment was created or opened with.
// It is empty for an empty segment.
func (s *Segment) Name() string {
	return s.name
}

// Size returns the length of the mapping in bytes.
func (s *Segment) Size() int {
	return len(s.data)
}

// Empty reports whether the segment holds no mapping.
func (s *Segment) Empty() bool {
	return len(s.data) == 0
}

// Bytes returns the whole mapping. See the Segment warning about
// slice lifetime.
func (s *Segment) Bytes() []byte {
	return s.data
}

// View returns the sub-region [offset, offset+count) of the mapping,
// or nil if the range is not fully contained in it. A zero-length view
// at a valid offset is non-nil.
func (s *Segment) View(offset, count int) []byte {
	if !s.boundsValid(offset, count) {
		return nil
	}
	return s.data[offset : offset+count : offset+count]
}

// Write copies p into the mapping at offset. It reports whether the
// destination range was fully contained in the mapping; nothing is
// written otherwise.
func (s *Segment) Write(offset int, p []byte) bool {
	if !s.boundsValid(offset, len(p)) {
		return false
	}
	copy(s.data[offset:], p)
	return true
}

// boundsValid checks [offset, offset+count) without ever computing
// offset+count on unchecked input, so the sum cannot overflow.
func (s *Segment) boundsValid(offset, count int) bool {
	if offset < 0 || count < 0 {
		return false
	}
	return count <= len(s.data) && offset <= len(s.data)-count
}

// Flush syncs the mapped bytes with the backing object.
func (s *Segment) Flush(async bool) error {
	if s.data == nil {
		return nil
	}
	flag := unix.MS_SYNC
	if async {
		flag = unix.MS_ASYNC
	}
	if err := unix.Msync(s.data, flag); err != nil {
		return errors.Wrap(err, "msync failed")
	}
	return nil
}

// Move transfers the mapping and the unlink responsibility into a fresh
// Segment and leaves s empty. Closing s afterwards is a no-op.
func (s *Segment) Move() *Segment {
	moved := newSegment(s.name, s.data, s.unlink)
	s.name = ""
	s.data = nil
	s.unlink = false
	return moved
}

// Close unmaps the region and, if the segment owns the name, removes
// it. It is idempotent; calling it on an empty segment does nothing.
func (s *Segment) Close() error {
	var result error
	if s.data != nil {
		if err := unix.Munmap(s.data); err != nil {
			result = errors.Wrap(err, "munmap failed")
		}
		s.data = nil
	}
	if s.unlink {
		s.unlink = false
		if err := Unlink(s.name); err != nil && result == nil {
			result = err
		}
	}
	s.name = ""
	return result
}

// Unlink removes a name from the shared memory namespace. The backing
// pages survive until every mapping and descriptor is gone. A name
// which does not exist is not an error.
func Unlink(name string) error {
	path, pathErrno := objectPath(name)
	if pathErrno != 0 {
		return errors.Wrap(pathErrno, "invalid shared memory name")
	}
	if err := unix.Unlink(path); err != nil && err != unix.ENOENT {
		return errors.Wrap(err, "unlink failed")
	}
	return nil
}
