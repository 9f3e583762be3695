// Package compiler ties the lexer/parser, code generator, fixed driver and
// ELF layout engine together into the single entry point: turn a
// definitions string into a runnable ELF64 executable's bytes.
package compiler

import (
	"github.com/pkg/errors"

	"github.com/lcox74/minicomp/internal/codegen"
	"github.com/lcox74/minicomp/internal/driver"
	"github.com/lcox74/minicomp/internal/lang"
	"github.com/lcox74/minicomp/pkg/elf"
)

// textStartOffset is the fixed file offset .text begins at: right after
// the ELF header, the single program header, and the five section headers.
const textStartOffset = uint64(elf.SectionHeaderOffset) + uint64(elf.NumSectionHeaders)*elf.ELF64ShdrSize

// Compile parses input as a set of equation definitions and assembles a
// complete ELF64 executable that calls the first two in file order via the
// fixed driver. It returns a *lang.LexError or *lang.ParseError (wrapped)
// for malformed input; no output is produced in that case.
func Compile(input string) ([]byte, error) {
	equations, err := lang.ParseDefinitions(input)
	if err != nil {
		return nil, errors.Wrap(err, "parsing definitions")
	}

	plans, err := driver.DefaultPlan(equations)
	if err != nil {
		return nil, errors.Wrap(err, "planning fixed driver")
	}

	funcsCode := make([][]byte, len(equations))
	for i, eq := range equations {
		funcsCode[i] = codegen.Generate(eq)
	}

	out, _ := assemble(equations, funcsCode, plans)
	return out, nil
}

// assemble runs the two-pass layout discipline: pass one builds the file
// with a zero-valued placeholder Layout (every offset it computes is
// final, since every field in this format is fixed-width regardless of
// the address values embedded in it), pass two rebuilds using pass one's
// discovered Layout so the fixed driver's embedded message-buffer address
// is the real one. The header, section headers and symbol values are
// computed from each pass's own content and are already correct in pass one.
func assemble(equations []lang.Equation, funcsCode [][]byte, plans [2]driver.Plan) ([]byte, elf.Layout) {
	_, discovered := build(equations, funcsCode, plans, elf.Layout{})
	out, final := build(equations, funcsCode, plans, discovered)
	return out, final
}

// build lays out one complete file. placeholder supplies the message
// buffer's file offset to embed into the fixed driver's code; every other
// value it returns in the discovered Layout is computed fresh from the
// actual content of this call, so it is correct on the very first pass —
// only the driver's embedded addresses need a second pass to settle.
func build(equations []lang.Equation, funcsCode [][]byte, plans [2]driver.Plan, placeholder elf.Layout) ([]byte, elf.Layout) {
	funcOffsets := make(map[string]int, len(equations))
	var functionsBytes []byte
	pos := int(textStartOffset)
	for i, eq := range equations {
		funcOffsets[eq.Name] = pos
		functionsBytes = append(functionsBytes, funcsCode[i]...)
		pos += len(funcsCode[i])
	}
	driverStart := pos

	driverCode := driver.Emit(plans, funcOffsets, driverStart, int(placeholder.MessageBufferOffset))
	messageBufferOffset := driverStart + len(driverCode)

	var textBytes []byte
	textBytes = append(textBytes, functionsBytes...)
	textBytes = append(textBytes, driverCode...)
	textBytes = append(textBytes, driver.MessageTemplate[:]...)
	textSize := uint64(len(textBytes))

	shNames := elf.NewStringTable()
	textNameOff := shNames.Add(".text")
	shstrtabNameOff := shNames.Add(".shstrtab")
	symtabNameOff := shNames.Add(".symtab")
	strtabNameOff := shNames.Add(".strtab")
	shstrtabBytes := shNames.Bytes()

	symNames := elf.NewStringTable()
	epNameOff := symNames.Add("entry_point")
	fnNameOffs := make([]uint32, len(equations))
	for i, eq := range equations {
		fnNameOffs[i] = symNames.Add(eq.Name)
	}
	strtabBytes := symNames.Bytes()

	shstrtabOffset := textStartOffset + textSize
	symtabOffset := shstrtabOffset + uint64(len(shstrtabBytes))

	var symtabBytes []byte
	symtabBytes = elf.WriteSym64(symtabBytes, elf.Sym64{}) // index 0: the null entry every STN_UNDEF ref points at
	symtabBytes = elf.WriteSym64(symtabBytes, elf.Sym64{
		Name:  epNameOff,
		Info:  elf.STT_FUNC_INFO,
		Shndx: 1, // .text
		Value: elf.LoadVA + uint64(driverStart),
	})
	for i, eq := range equations {
		symtabBytes = elf.WriteSym64(symtabBytes, elf.Sym64{
			Name:  fnNameOffs[i],
			Info:  elf.STT_FUNC_INFO,
			Shndx: 1,
			Value: elf.LoadVA + uint64(funcOffsets[eq.Name]),
		})
	}
	symtabSize := uint64(len(symtabBytes))

	strtabOffset := symtabOffset + symtabSize
	strtabSize := uint64(len(strtabBytes))
	fileSize := strtabOffset + strtabSize

	discovered := elf.Layout{
		EntryPointOffset:    uint64(driverStart),
		MessageBufferOffset: uint64(messageBufferOffset),
		TextOffset:          textStartOffset,
		TextSize:            textSize,
		ShstrtabOffset:      shstrtabOffset,
		ShstrtabSize:        uint64(len(shstrtabBytes)),
		SymtabOffset:        symtabOffset,
		SymtabSize:          symtabSize,
		StrtabOffset:        strtabOffset,
		StrtabSize:          strtabSize,
		FileSize:            fileSize,
	}

	header := elf.NewHeader64(discovered.EntryVA())
	phdr := elf.NewLoadPhdr64(discovered.FileSize)

	var out []byte
	out = elf.WriteHeader64(out, header)
	out = elf.WritePhdr64(out, phdr)
	out = elf.WriteShdr64(out, elf.Shdr64{}) // index 0: SHT_NULL
	out = elf.WriteShdr64(out, elf.Shdr64{
		Name:      textNameOff,
		Type:      elf.SHT_PROGBITS,
		Flags:     elf.SHF_ALLOC | elf.SHF_EXECINSTR,
		Addr:      elf.LoadVA + textStartOffset,
		Offset:    textStartOffset,
		Size:      textSize,
		AddrAlign: 1,
	})
	out = elf.WriteShdr64(out, elf.Shdr64{
		Name:      shstrtabNameOff,
		Type:      elf.SHT_STRTAB,
		Offset:    shstrtabOffset,
		Size:      uint64(len(shstrtabBytes)),
		AddrAlign: 1,
	})
	out = elf.WriteShdr64(out, elf.Shdr64{
		Name:      symtabNameOff,
		Type:      elf.SHT_SYMTAB,
		Offset:    symtabOffset,
		Size:      symtabSize,
		Link:      4, // .strtab's section index
		Info:      1, // one past the last local index: only the null entry is local, the rest are STB_GLOBAL
		AddrAlign: 8,
		EntSize:   elf.ELF64SymSize,
	})
	out = elf.WriteShdr64(out, elf.Shdr64{
		Name:      strtabNameOff,
		Type:      elf.SHT_STRTAB,
		Offset:    strtabOffset,
		Size:      strtabSize,
		AddrAlign: 1,
	})

	out = append(out, textBytes...)
	out = append(out, shstrtabBytes...)
	out = append(out, symtabBytes...)
	out = append(out, strtabBytes...)

	return out, discovered
}
