// Copyright 2026 Vladimir Kostic. All rights reserved.

//go:build linux

package shm_test

import (
	"fmt"

	shm "github.com/kostic-vladimir/shared-memory"
)

func ExampleCreate() {
	// cleanup objects from previous runs.
	shm.Unlink("/example-seg")
	// the creator owns the name and removes it on Close.
	creator, err := shm.Create("/example-seg", 1024, shm.ModeReadWrite, true)
	if err != nil {
		panic(err)
	}
	defer creator.Close()
	if !creator.Write(0, []byte("hello")) {
		panic("write")
	}
	// any other process (or handle) attaches by name.
	attached, err := shm.Open("/example-seg")
	if err != nil {
		panic(err)
	}
	defer attached.Close()
	fmt.Println(string(attached.View(0, 5)))
	// Output: hello
}

func ExampleNewSegmentWriter() {
	shm.Unlink("/example-rw")
	seg, err := shm.Create("/example-rw", 1024, shm.ModeReadWrite, true)
	if err != nil {
		panic(err)
	}
	defer seg.Close()
	// readers and writers keep the segment alive, which is safer than
	// holding raw slices from Bytes().
	writer := shm.NewSegmentWriter(seg)
	if _, err = writer.WriteAt([]byte{1, 2, 3, 4}, 128); err != nil {
		panic(err)
	}
	reader := shm.NewSegmentReader(seg)
	buf := make([]byte, 4)
	if _, err = reader.ReadAt(buf, 128); err != nil {
		panic(err)
	}
	fmt.Println(buf)
	// Output: [1 2 3 4]
}
