// Copyright 2026 Vladimir Kostic. All rights reserved.

//go:build linux

// shmtest is a helper program for cross-process shared memory tests.
// Usage:
//
//	shmtest -object=NAME create SIZE
//	shmtest -object=NAME destroy
//	shmtest -object=NAME read OFFSET LEN
//	shmtest -object=NAME write OFFSET HEXDATA
//	shmtest -object=NAME test OFFSET HEXDATA
//
// read prints the requested range as upper-case hex. test exits with
// a non-zero status if the segment's bytes differ from HEXDATA.
package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	shm "github.com/kostic-vladimir/shared-memory"
)

var objName = flag.String("object", "", "name of the shared memory object")

func main() {
	flag.Parse()
	if err := run(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(*objName) == 0 {
		return fmt.Errorf("object name is required")
	}
	if len(args) == 0 {
		return fmt.Errorf("no command given")
	}
	switch args[0] {
	case "create":
		return doCreate(args[1:])
	case "destroy":
		return shm.Unlink(*objName)
	case "read":
		return doRead(args[1:])
	case "write":
		return doWrite(args[1:])
	case "test":
		return doTest(args[1:])
	default:
		return fmt.Errorf("unknown command '%s'", args[0])
	}
}

func doCreate(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("create requires a size")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	seg, err := shm.Create(*objName, size, shm.ModeReadWrite, false)
	if err != nil {
		return err
	}
	return seg.Close()
}

func doRead(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("read requires an offset and a length")
	}
	offset, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	length, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	seg, err := shm.Open(*objName)
	if err != nil {
		return err
	}
	defer seg.Close()
	data := seg.View(offset, length)
	if data == nil {
		return fmt.Errorf("range [%d, %d) is out of bounds", offset, offset+length)
	}
	fmt.Print(strings.ToUpper(hex.EncodeToString(data)))
	return nil
}

func doWrite(args []string) error {
	offset, data, err := offsetAndData(args)
	if err != nil {
		return err
	}
	seg, err := shm.Open(*objName)
	if err != nil {
		return err
	}
	defer seg.Close()
	if !seg.Write(offset, data) {
		return fmt.Errorf("write at %d is out of bounds", offset)
	}
	return nil
}

func doTest(args []string) error {
	offset, expected, err := offsetAndData(args)
	if err != nil {
		return err
	}
	seg, err := shm.Open(*objName)
	if err != nil {
		return err
	}
	defer seg.Close()
	actual := seg.View(offset, len(expected))
	if !bytes.Equal(expected, actual) {
		return fmt.Errorf("expected %X, got %X", expected, actual)
	}
	return nil
}

func offsetAndData(args []string) (int, []byte, error) {
	if len(args) != 2 {
		return 0, nil, fmt.Errorf("an offset and hex data are required")
	}
	offset, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, nil, err
	}
	data, err := hex.DecodeString(args[1])
	if err != nil {
		return 0, nil, err
	}
	return offset, data, nil
}
