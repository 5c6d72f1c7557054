// Copyright 2026 Vladimir Kostic. All rights reserved.

//go:build linux

package shm

import (
	"bytes"
	"io"
)

// SegmentReader reads the bytes of a shared memory segment. It holds a
// reference to the segment, so the mapping cannot be finalized while
// the reader is in use.
type SegmentReader struct {
	segment *Segment
	*bytes.Reader
}

// NewSegmentReader creates a reader over the segment's current mapping.
func NewSegmentReader(segment *Segment) *SegmentReader {
	return &SegmentReader{
		segment: segment,
		Reader:  bytes.NewReader(segment.Bytes()),
	}
}

// SegmentWriter writes into a shared memory segment. It holds a
// reference to the segment, so the mapping cannot be finalized while
// the writer is in use.
type SegmentWriter struct {
	segment *Segment
	pos     int64
}

// NewSegmentWriter creates a writer over the segment's current mapping.
func NewSegmentWriter(segment *Segment) *SegmentWriter {
	return &SegmentWriter{segment: segment}
}

// WriteAt implements io.WriterAt. A write which runs past the end of
// the mapping is truncated and reported as io.EOF.
func (w *SegmentWriter) WriteAt(p []byte, off int64) (n int, err error) {
	data := w.segment.Bytes()
	if off >= 0 && off <= int64(len(data)) {
		n = copy(data[off:], p)
	}
	if n < len(p) {
		err = io.EOF
	}
	return n, err
}

// Write implements io.Writer.
func (w *SegmentWriter) Write(p []byte) (n int, err error) {
	n, err = w.WriteAt(p, w.pos)
	w.pos += int64(n)
	return n, err
}
