package amd64

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrologueAndEpilogue(t *testing.T) {
	require.Equal(t, []byte{0x55, 0x48, 0x89, 0xE5}, Prologue())
	require.Equal(t, []byte{0x5D, 0xC3}, Epilogue())
}

func TestArgLoadRcxAndRepair(t *testing.T) {
	code := ArgLoadRcx(0x10)
	require.Equal(t, []byte{0x48, 0x8B, 0x4D, 0x10}, code)

	RepairArgLoadToRax(code)
	require.Equal(t, []byte{0x48, 0x8B, 0x45, 0x10}, code)
}

func TestMovEcxImm32(t *testing.T) {
	require.Equal(t, []byte{0xB9, 0x02, 0x00, 0x00, 0x00}, MovEcxImm32(2))
}

func TestArithmeticEncodings(t *testing.T) {
	require.Equal(t, []byte{0x59}, PopRcx())
	require.Equal(t, []byte{0x50}, PushRax())
	require.Equal(t, []byte{0x48, 0x01, 0xC8}, AddRaxRcx())
	require.Equal(t, []byte{0x48, 0xF7, 0xE1}, MulRcx())
	require.Equal(t, []byte{0x48, 0xF7, 0xF1}, DivRcx())
}

func TestPushImm8(t *testing.T) {
	require.Equal(t, []byte{0x6A, 0x64}, PushImm8(100))
}

func TestCallRel32(t *testing.T) {
	require.Equal(t, []byte{0xE8, 0xFB, 0xFF, 0xFF, 0xFF}, CallRel32(-5))
}

func TestMovAlToAbs32(t *testing.T) {
	require.Equal(t, []byte{0x88, 0x04, 0x25, 0x00, 0x00, 0x00, 0x00}, MovAlToAbs32(0))
}

func TestSyscallEncoding(t *testing.T) {
	require.Equal(t, []byte{0x0F, 0x05}, Syscall())
}
