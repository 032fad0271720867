// Package convert turns fixed-width protocol fields into network byte
// order bytes and back. Every multi-byte field on the wire is big-endian;
// nothing here ever memcpys a native struct onto a socket.
package convert

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// ErrShort is returned when a byte slice is too small for the requested
// field width.
var ErrShort = errors.New("buffer too short for conversion")

// Uint8FromBytes reads a single byte as a uint8.
func Uint8FromBytes(b []byte) (uint8, error) {
	if len(b) < 1 {
		return 0, ErrShort
	}
	return b[0], nil
}

// Uint8ToBytes writes a uint8 as a single byte.
func Uint8ToBytes(v uint8) []byte {
	return []byte{v}
}

// Uint16FromBytes reads a big-endian uint16.
func Uint16FromBytes(b []byte) (uint16, error) {
	if len(b) < 2 {
		return 0, ErrShort
	}
	return binary.BigEndian.Uint16(b), nil
}

// Uint16ToBytes writes a big-endian uint16.
func Uint16ToBytes(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

// Uint32FromBytes reads a big-endian uint32.
func Uint32FromBytes(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, ErrShort
	}
	return binary.BigEndian.Uint32(b), nil
}

// Uint32ToBytes writes a big-endian uint32.
func Uint32ToBytes(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// Uint64FromBytes reads a big-endian uint64.
func Uint64FromBytes(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, ErrShort
	}
	return binary.BigEndian.Uint64(b), nil
}

// Uint64ToBytes writes a big-endian uint64.
func Uint64ToBytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
