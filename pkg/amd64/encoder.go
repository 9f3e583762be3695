// Package amd64 provides x86_64 (AMD64) machine code encoding utilities for
// minicomp's fixed, non-standard calling convention: parameters are passed
// on the stack rather than in registers, with the k-th parameter living at
// [rbp + 0x10 + 8*k]. This package has no dependency on compiler internals
// and can be used standalone for generating the byte sequences minicomp
// emits.
//
// It is not a general-purpose assembler: every function here returns the
// exact, fixed-width byte encoding for one specific instruction shape used
// by the code generator and entry-point emitter.
package amd64

import "encoding/binary"

// writeLE32 writes a 32-bit value in little-endian order.
func writeLE32(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf, v)
}

// writeLE64 writes a 64-bit value in little-endian order.
func writeLE64(buf []byte, v uint64) {
	binary.LittleEndian.PutUint64(buf, v)
}
