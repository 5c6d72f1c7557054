// Copyright 2026 Vladimir Kostic. All rights reserved.

//go:build linux

package shm

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentReadWriteAt(t *testing.T) {
	a := assert.New(t)
	name := uniqueShmName()
	creator, err := Create(name, 1024, ModeReadWrite, true)
	if !a.NoError(err) {
		return
	}
	defer creator.Close()
	opener, err := Open(name)
	if !a.NoError(err) {
		return
	}
	defer opener.Close()

	writer := NewSegmentWriter(creator)
	reader := NewSegmentReader(opener)

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	written, err := writer.WriteAt(data, 128)
	a.NoError(err)
	a.Equal(len(data), written)

	actual := make([]byte, len(data))
	read, err := reader.ReadAt(actual, 128)
	a.NoError(err)
	a.Equal(len(data), read)
	a.Equal(data, actual)
}

func TestSegmentWriterTruncatesAtEnd(t *testing.T) {
	a := assert.New(t)
	seg, err := Create(uniqueShmName(), 16, ModeReadWrite, true)
	if !a.NoError(err) {
		return
	}
	defer seg.Close()

	writer := NewSegmentWriter(seg)
	n, err := writer.WriteAt(make([]byte, 8), 12)
	a.Equal(4, n)
	a.Equal(io.EOF, err)
	n, err = writer.WriteAt([]byte{1}, 16)
	a.Equal(0, n)
	a.Equal(io.EOF, err)
	n, err = writer.WriteAt([]byte{1}, -1)
	a.Equal(0, n)
	a.Equal(io.EOF, err)
}

func TestSegmentWriterSequential(t *testing.T) {
	a := assert.New(t)
	seg, err := Create(uniqueShmName(), 8, ModeReadWrite, true)
	if !a.NoError(err) {
		return
	}
	defer seg.Close()

	writer := NewSegmentWriter(seg)
	n, err := writer.Write([]byte{1, 2, 3, 4})
	a.NoError(err)
	a.Equal(4, n)
	n, err = writer.Write([]byte{5, 6, 7, 8})
	a.NoError(err)
	a.Equal(4, n)
	a.Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8}, seg.Bytes())

	_, err = writer.Write([]byte{9})
	a.Equal(io.EOF, err)
}

func TestSegmentReaderCopy(t *testing.T) {
	a := assert.New(t)
	src, err := Create(uniqueShmName(), 256, ModeReadWrite, true)
	if !a.NoError(err) {
		return
	}
	defer src.Close()
	dst, err := Create(uniqueShmName(), 256, ModeReadWrite, true)
	if !a.NoError(err) {
		return
	}
	defer dst.Close()

	for i := range src.Bytes() {
		src.Bytes()[i] = byte(i)
	}
	copied, err := io.Copy(NewSegmentWriter(dst), NewSegmentReader(src))
	a.NoError(err)
	a.Equal(int64(256), copied)
	a.Equal(src.Bytes(), dst.Bytes())
}
