package codegen

import (
	"fmt"
	"strings"

	"github.com/lcox74/minicomp/internal/lang"
)

// DumpHex renders one equation's generated machine code as commented hex,
// one instruction-shaped chunk per line with the mnemonic it corresponds
// to. It is not re-assemblable GAS syntax — this compiler's calling
// convention (stack-passed arguments, no System V register usage) has no
// assembler that would accept it back — but it gives a miscompile the
// same kind of side-by-side byte/mnemonic view the teacher's GAS text
// dump gives a Brainfuck miscompile, which is why this file keeps that
// package's name in spirit (a debug-only secondary codegen backend).
func DumpHex(eq lang.Equation) string {
	var out strings.Builder

	fmt.Fprintf(&out, "; %s(%s)\n", eq.Name, string(eq.Params))

	code := Generate(eq)
	for i := 0; i < len(code); {
		mnemonic, width := describe(code[i:])
		if width > len(code)-i {
			width = len(code) - i
		}
		fmt.Fprintf(&out, "%04x: % x\t%s\n", i, code[i:i+width], mnemonic)
		i += width
	}

	return out.String()
}

// describe matches the fixed-width instruction shapes this package's
// lowering table and amd64 encoders produce, returning a short mnemonic
// and the instruction's byte width. Anything unrecognised is dumped one
// byte at a time rather than guessed at.
func describe(rest []byte) (string, int) {
	switch {
	case hasPrefix(rest, 0x55, 0x48, 0x89, 0xE5):
		return "push rbp; mov rbp, rsp", 4
	case hasPrefix(rest, 0x5D, 0xC3):
		return "pop rbp; ret", 2
	case hasPrefix(rest, 0xB9):
		return "mov ecx, imm32", 5
	case hasPrefix(rest, 0x48, 0x8B, 0x4D):
		return "mov rcx, [rbp+off]", 4
	case hasPrefix(rest, 0x48, 0x8B, 0x45):
		return "mov rax, [rbp+off] (collision-repaired)", 4
	case hasPrefix(rest, 0x59):
		return "pop rcx", 1
	case hasPrefix(rest, 0x50):
		return "push rax", 1
	case hasPrefix(rest, 0x48, 0x01, 0xC8):
		return "add rax, rcx", 3
	case hasPrefix(rest, 0x48, 0xF7, 0xE1):
		return "mul rcx", 3
	case hasPrefix(rest, 0x48, 0xF7, 0xF1):
		return "div rcx", 3
	default:
		return "db", 1
	}
}

func hasPrefix(b []byte, prefix ...byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if b[i] != p {
			return false
		}
	}
	return true
}
