package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcox74/minicomp/internal/codegen"
	"github.com/lcox74/minicomp/internal/driver"
	"github.com/lcox74/minicomp/internal/lang"
	"github.com/lcox74/minicomp/pkg/elf"
)

const twoFuncDefs = "avg(x,y)=(x+y)/2;quad(a,b,c,d)=2*2*a+30*b+4"

func TestCompileProducesValidELFHeader(t *testing.T) {
	out, err := Compile(twoFuncDefs)
	require.NoError(t, err)

	require.Equal(t, byte(0x7f), out[0])
	require.Equal(t, byte('E'), out[1])
	require.Equal(t, byte('L'), out[2])
	require.Equal(t, byte('F'), out[3])
}

func TestCompileIsDeterministic(t *testing.T) {
	first, err := Compile(twoFuncDefs)
	require.NoError(t, err)
	second, err := Compile(twoFuncDefs)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestCompileRejectsMalformedInput(t *testing.T) {
	out, err := Compile("f(x)=x+")
	require.Nil(t, out)
	require.Error(t, err)

	var parseErr *lang.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestCompileRejectsSingleEquation(t *testing.T) {
	out, err := Compile("f(x)=x")
	require.Nil(t, out)
	require.Error(t, err)
}

func TestAssembleStrtabListsEntryPointAndEquationNamesInOrder(t *testing.T) {
	out, err := Compile(twoFuncDefs)
	require.NoError(t, err)
	require.Contains(t, string(out), "entry_point\x00avg\x00quad\x00")
}

func TestAssembleLayoutPassesAgreeOnEveryLength(t *testing.T) {
	equations, funcsCode, plans := buildInputs(t, twoFuncDefs)

	_, passOne := build(equations, funcsCode, plans, elf.Layout{})
	_, passTwo := build(equations, funcsCode, plans, passOne)

	require.Equal(t, passOne.TextSize, passTwo.TextSize)
	require.Equal(t, passOne.ShstrtabSize, passTwo.ShstrtabSize)
	require.Equal(t, passOne.SymtabSize, passTwo.SymtabSize)
	require.Equal(t, passOne.StrtabSize, passTwo.StrtabSize)
	require.Equal(t, passOne.FileSize, passTwo.FileSize)

	out, _ := build(equations, funcsCode, plans, passOne)
	require.Len(t, out, int(passTwo.FileSize))
}

func TestAssembleSymtabHasNullEntryPointAndOneEntryPerEquation(t *testing.T) {
	equations, funcsCode, plans := buildInputs(t, twoFuncDefs)

	_, layout := build(equations, funcsCode, plans, elf.Layout{})

	wantEntries := 2 + len(equations) // null + entry_point + per-equation
	require.Equal(t, uint64(wantEntries*elf.ELF64SymSize), layout.SymtabSize)
}

func TestAssembleSingleLoadSegmentCoversWholeFile(t *testing.T) {
	out, err := Compile(twoFuncDefs)
	require.NoError(t, err)

	phdr := out[elf.ProgramHeaderOffset : elf.ProgramHeaderOffset+elf.ELF64PhdrSize]
	fileSz := leU64(phdr[0x20:0x28]) // Phdr64: Type,Flags (8) + Off,VAddr,PAddr (24) precede FileSz
	require.Equal(t, uint64(len(out)), fileSz)
}

func TestAssembleTextStartsRightAfterFixedHeaders(t *testing.T) {
	equations, funcsCode, plans := buildInputs(t, twoFuncDefs)
	_, layout := build(equations, funcsCode, plans, elf.Layout{})

	require.Equal(t, textStartOffset, layout.TextOffset)
}

func buildInputs(t *testing.T, defs string) ([]lang.Equation, [][]byte, [2]driver.Plan) {
	t.Helper()

	equations, err := lang.ParseDefinitions(defs)
	require.NoError(t, err)

	plans, err := driver.DefaultPlan(equations)
	require.NoError(t, err)

	funcsCode := make([][]byte, len(equations))
	for i, eq := range equations {
		funcsCode[i] = codegen.Generate(eq)
	}

	return equations, funcsCode, plans
}

func leU64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
