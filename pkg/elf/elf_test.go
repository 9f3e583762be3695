package elf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHeader64Identification(t *testing.T) {
	hdr := NewHeader64(LoadVA + 0x200)

	require.Equal(t, byte(0x7f), hdr.Ident[0])
	require.Equal(t, byte('E'), hdr.Ident[1])
	require.Equal(t, byte('L'), hdr.Ident[2])
	require.Equal(t, byte('F'), hdr.Ident[3])
	require.Equal(t, byte(2), hdr.Ident[4])
	require.Equal(t, byte(1), hdr.Ident[5])
	require.Equal(t, uint16(ET_EXEC), hdr.Type)
	require.Equal(t, uint16(EM_X86_64), hdr.Machine)
	require.Equal(t, uint64(ProgramHeaderOffset), hdr.PhOff)
	require.Equal(t, uint64(SectionHeaderOffset), hdr.ShOff)
	require.Equal(t, uint16(ShstrtabIndex), hdr.ShStrNdx)
}

func TestWriteHeader64ProducesFixedSize(t *testing.T) {
	out := WriteHeader64(nil, NewHeader64(0))
	require.Len(t, out, ELF64HeaderSize)
}

func TestWritePhdr64ProducesFixedSize(t *testing.T) {
	out := WritePhdr64(nil, NewLoadPhdr64(0x1000))
	require.Len(t, out, ELF64PhdrSize)
}

func TestWriteShdr64ProducesFixedSize(t *testing.T) {
	out := WriteShdr64(nil, Shdr64{})
	require.Len(t, out, ELF64ShdrSize)
}

func TestWriteSym64ProducesFixedSize(t *testing.T) {
	out := WriteSym64(nil, Sym64{})
	require.Len(t, out, ELF64SymSize)
}

func TestStringTableLayout(t *testing.T) {
	st := NewStringTable()
	epOff := st.Add("entry_point")
	fnOff := st.Add("avg")

	require.Equal(t, uint32(1), epOff)
	require.Equal(t, uint32(1+len("entry_point")+1), fnOff)
	require.Equal(t, `\0entry_point\0avg\0`, st.String())
}

func TestLoadVAIsPageAlignedConstant(t *testing.T) {
	require.Equal(t, uint64(4096*40), uint64(LoadVA))
}
