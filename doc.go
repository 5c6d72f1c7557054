// Copyright 2026 Vladimir Kostic. All rights reserved.

// Package shm manages named POSIX shared memory segments on Linux.
// A Segment couples the kernel name, the mapping and the unlink
// responsibility into one handle: Create makes a fresh object and maps
// it, Open attaches to an existing one, Close tears everything down
// deterministically. Bounds-checked byte access is provided by View and
// Write; readers and writers over a segment are in reader_writer.go.
// The package provides no cross-process synchronization; put your own
// primitives inside the segment.
package shm
