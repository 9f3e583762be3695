// Package elf provides ELF64 binary format building utilities: the header,
// program header, section header and symbol-table struct shapes plus their
// little-endian byte writers. This package has no dependency on compiler
// internals and can be used standalone for generating ELF executables.
package elf

import "encoding/binary"

// ELF64 constants
const (
	// ELF identification
	ELFMAG0       = 0x7f
	ELFMAG1       = 'E'
	ELFMAG2       = 'L'
	ELFMAG3       = 'F'
	ELFCLASS64    = 2
	ELFDATA2LSB   = 1 // Little endian
	EV_CURRENT    = 1
	ELFOSABI_NONE = 0

	// ELF types
	ET_EXEC = 2 // Executable file

	// Machine types
	EM_X86_64 = 0x3e

	// Program header types
	PT_LOAD = 1

	// Program header flags
	PF_X = 0x1 // Execute
	PF_W = 0x2 // Write
	PF_R = 0x4 // Read

	// Section header types
	SHT_NULL     = 0
	SHT_PROGBITS = 1
	SHT_SYMTAB   = 2
	SHT_STRTAB   = 3

	// Section header flags
	SHF_WRITE     = 0x1
	SHF_ALLOC     = 0x2
	SHF_EXECINSTR = 0x4

	// Symbol binding/type: STB_GLOBAL (1) << 4 | STT_NOTYPE (0)
	STT_FUNC_INFO = 0x10

	// Sizes
	ELF64HeaderSize = 64
	ELF64PhdrSize   = 0x38
	ELF64ShdrSize   = 0x40
	ELF64SymSize    = 24

	// Fixed file offsets, per the format's header field semantics.
	ProgramHeaderOffset = 0x40
	SectionHeaderOffset = 0x78
	NumSectionHeaders   = 5 // null, .text, .shstrtab, .symtab, .strtab
	ShstrtabIndex       = 2

	SegmentAlign = 0x200000

	// LoadVA is the fixed, page-aligned virtual address at which the
	// single loadable segment is mapped. All runtime addresses are
	// LoadVA + file_offset.
	LoadVA = 4096 * 40
)

// Header64 represents the ELF64 file header.
type Header64 struct {
	Ident     [16]byte
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint64
	PhOff     uint64
	ShOff     uint64
	Flags     uint32
	EhSize    uint16
	PhEntSize uint16
	PhNum     uint16
	ShEntSize uint16
	ShNum     uint16
	ShStrNdx  uint16
}

// NewHeader64 builds the fixed ELF64 executable header, differing from call
// to call only in Entry — everything else is constant for this compiler's
// single-segment, fixed-section-count output.
func NewHeader64(entry uint64) Header64 {
	hdr := Header64{
		Type:      ET_EXEC,
		Machine:   EM_X86_64,
		Version:   EV_CURRENT,
		Entry:     entry,
		PhOff:     ProgramHeaderOffset,
		ShOff:     SectionHeaderOffset,
		EhSize:    ELF64HeaderSize,
		PhEntSize: ELF64PhdrSize,
		PhNum:     1,
		ShEntSize: ELF64ShdrSize,
		ShNum:     NumSectionHeaders,
		ShStrNdx:  ShstrtabIndex,
	}
	hdr.Ident[0] = ELFMAG0
	hdr.Ident[1] = ELFMAG1
	hdr.Ident[2] = ELFMAG2
	hdr.Ident[3] = ELFMAG3
	hdr.Ident[4] = ELFCLASS64
	hdr.Ident[5] = ELFDATA2LSB
	hdr.Ident[6] = EV_CURRENT
	hdr.Ident[7] = ELFOSABI_NONE
	return hdr
}

// WriteHeader64 appends the ELF64 header's bytes to out.
func WriteHeader64(out []byte, hdr Header64) []byte {
	out = append(out, hdr.Ident[:]...)
	out = appendLE16(out, hdr.Type)
	out = appendLE16(out, hdr.Machine)
	out = appendLE32(out, hdr.Version)
	out = appendLE64(out, hdr.Entry)
	out = appendLE64(out, hdr.PhOff)
	out = appendLE64(out, hdr.ShOff)
	out = appendLE32(out, hdr.Flags)
	out = appendLE16(out, hdr.EhSize)
	out = appendLE16(out, hdr.PhEntSize)
	out = appendLE16(out, hdr.PhNum)
	out = appendLE16(out, hdr.ShEntSize)
	out = appendLE16(out, hdr.ShNum)
	out = appendLE16(out, hdr.ShStrNdx)
	return out
}

// Phdr64 represents an ELF64 program header.
type Phdr64 struct {
	Type   uint32
	Flags  uint32
	Off    uint64
	VAddr  uint64
	PAddr  uint64
	FileSz uint64
	MemSz  uint64
	Align  uint64
}

// NewLoadPhdr64 builds the single PT_LOAD segment covering the whole file.
func NewLoadPhdr64(fileSize uint64) Phdr64 {
	return Phdr64{
		Type:   PT_LOAD,
		Flags:  PF_R | PF_W | PF_X,
		Off:    0,
		VAddr:  LoadVA,
		PAddr:  LoadVA,
		FileSz: fileSize,
		MemSz:  fileSize,
		Align:  SegmentAlign,
	}
}

// WritePhdr64 appends a program header's bytes to out.
func WritePhdr64(out []byte, ph Phdr64) []byte {
	out = appendLE32(out, ph.Type)
	out = appendLE32(out, ph.Flags)
	out = appendLE64(out, ph.Off)
	out = appendLE64(out, ph.VAddr)
	out = appendLE64(out, ph.PAddr)
	out = appendLE64(out, ph.FileSz)
	out = appendLE64(out, ph.MemSz)
	out = appendLE64(out, ph.Align)
	return out
}

// Shdr64 represents an ELF64 section header.
type Shdr64 struct {
	Name      uint32
	Type      uint32
	Flags     uint64
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	AddrAlign uint64
	EntSize   uint64
}

// WriteShdr64 appends a section header's bytes to out.
func WriteShdr64(out []byte, sh Shdr64) []byte {
	out = appendLE32(out, sh.Name)
	out = appendLE32(out, sh.Type)
	out = appendLE64(out, sh.Flags)
	out = appendLE64(out, sh.Addr)
	out = appendLE64(out, sh.Offset)
	out = appendLE64(out, sh.Size)
	out = appendLE32(out, sh.Link)
	out = appendLE32(out, sh.Info)
	out = appendLE64(out, sh.AddrAlign)
	out = appendLE64(out, sh.EntSize)
	return out
}

// Sym64 represents an ELF64 symbol table entry.
type Sym64 struct {
	Name  uint32
	Info  uint8
	Other uint8
	Shndx uint16
	Value uint64
	Size  uint64
}

// WriteSym64 appends a symbol table entry's bytes to out.
func WriteSym64(out []byte, sym Sym64) []byte {
	out = appendLE32(out, sym.Name)
	out = append(out, sym.Info, sym.Other)
	out = appendLE16(out, sym.Shndx)
	out = appendLE64(out, sym.Value)
	out = appendLE64(out, sym.Size)
	return out
}

// Little-endian append helpers.
func appendLE16(out []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(out, buf[:]...)
}

func appendLE32(out []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(out, buf[:]...)
}

func appendLE64(out []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(out, buf[:]...)
}
