// Copyright 2026 Vladimir Kostic. All rights reserved.

package shmtesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexRoundTrip(t *testing.T) {
	a := assert.New(t)
	data := []byte{0x00, 0x01, 0x0F, 0xAB, 0xFF}
	encoded := BytesToHex(data)
	a.Equal("00010FABFF", encoded)
	decoded, err := HexToBytes(encoded)
	a.NoError(err)
	a.Equal(data, decoded)
}

func TestHexToBytesRejectsGarbage(t *testing.T) {
	a := assert.New(t)
	_, err := HexToBytes("XYZ")
	a.Error(err)
	_, err = HexToBytes("ABC")
	a.Error(err)
}
