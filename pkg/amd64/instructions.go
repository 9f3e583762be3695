package amd64

// This file contains x86_64 instruction encoders used by the expression
// code generator, the entry-point emitter, and the function prologue and
// epilogue. Each function returns the fixed-width machine code bytes for
// one specific instruction shape.
//
// For details on x86-64 instruction encoding (REX prefixes, ModRM, SIB
// bytes), see: https://wiki.osdev.org/X86-64_Instruction_Encoding

// Prologue encodes: push rbp; mov rbp, rsp (55 48 89 E5)
// Establishes the stack frame every compiled function begins with.
func Prologue() []byte {
	return []byte{0x55, 0x48, 0x89, 0xE5}
}

// Epilogue encodes: pop rbp; ret (5D C3)
// Tears down the stack frame every compiled function ends with.
func Epilogue() []byte {
	return []byte{0x5D, 0xC3}
}

// MovEcxImm32 encodes: mov ecx, imm32 (B9 <imm32>)
// Loads a literal value into ECX/RCX's low 32 bits.
func MovEcxImm32(imm32 uint32) []byte {
	buf := make([]byte, 5)
	buf[0] = 0xB9
	writeLE32(buf[1:], imm32)
	return buf
}

// ArgLoadRcx encodes: mov rcx, [rbp+off] (48 8B 4D <off>)
// Loads a parameter from its fixed stack slot into RCX. off is
// 0x10 + 8*index_of(param) per the calling convention's parameter layout.
func ArgLoadRcx(off uint8) []byte {
	return []byte{0x48, 0x8B, 0x4D, off}
}

// RepairArgLoadToRax rewrites an ArgLoadRcx sequence in place so it targets
// RAX instead of RCX (mov rax, [rbp+off], bytes 48 8B 45 <off>), by flipping
// the ModRM byte from 0x4D to 0x45. Used by the register-collision repair:
// when two sibling argument loads would emit identical byte prefixes, the
// second is redirected into RAX so they land in distinct registers.
func RepairArgLoadToRax(code []byte) {
	code[2] = 0x45
}

// PopRcx encodes: pop rcx (59)
func PopRcx() []byte {
	return []byte{0x59}
}

// PushRax encodes: push rax (50)
func PushRax() []byte {
	return []byte{0x50}
}

// AddRaxRcx encodes: add rax, rcx (48 01 C8)
func AddRaxRcx() []byte {
	return []byte{0x48, 0x01, 0xC8}
}

// MulRcx encodes: mul rcx (48 F7 E1)
// Unsigned multiply: rax := rax * rcx (high bits discarded into rdx).
func MulRcx() []byte {
	return []byte{0x48, 0xF7, 0xE1}
}

// DivRcx encodes: div rcx (48 F7 F1)
// Unsigned divide: rax := rax / rcx.
func DivRcx() []byte {
	return []byte{0x48, 0xF7, 0xF1}
}

// PushImm8 encodes: push imm8 (6A <imm8>)
// Used by the entry-point emitter to pass literal arguments on the stack.
func PushImm8(imm8 uint8) []byte {
	return []byte{0x6A, imm8}
}

// CallRel32 encodes: call rel32 (E8 <rel32>)
// rel32 is relative to the address immediately following this instruction.
func CallRel32(rel32 int32) []byte {
	buf := make([]byte, 5)
	buf[0] = 0xE8
	writeLE32(buf[1:], uint32(rel32))
	return buf
}

// MovAlToAbs32 encodes: mov [abs32], al (88 04 25 <abs32>)
// Stores the one-byte result in AL to an absolute 32-bit address.
func MovAlToAbs32(abs32 uint32) []byte {
	buf := make([]byte, 7)
	buf[0] = 0x88
	buf[1] = 0x04
	buf[2] = 0x25
	writeLE32(buf[3:], abs32)
	return buf
}

// MovEaxImm32 encodes: mov eax, imm32 (B8 <imm32>)
func MovEaxImm32(imm32 uint32) []byte {
	buf := make([]byte, 5)
	buf[0] = 0xB8
	writeLE32(buf[1:], imm32)
	return buf
}

// MovEdiImm32 encodes: mov edi, imm32 (BF <imm32>)
func MovEdiImm32(imm32 uint32) []byte {
	buf := make([]byte, 5)
	buf[0] = 0xBF
	writeLE32(buf[1:], imm32)
	return buf
}

// MovEdxImm32 encodes: mov edx, imm32 (BA <imm32>)
func MovEdxImm32(imm32 uint32) []byte {
	buf := make([]byte, 5)
	buf[0] = 0xBA
	writeLE32(buf[1:], imm32)
	return buf
}

// MovabsRsi encodes: movabs imm64, rsi (48 BE <imm64>)
// Loads a 64-bit virtual address into RSI.
func MovabsRsi(imm64 uint64) []byte {
	buf := make([]byte, 10)
	buf[0] = 0x48 // REX.W
	buf[1] = 0xBE // mov rsi, imm64
	writeLE64(buf[2:], imm64)
	return buf
}

// CallRel32Size is the fixed size in bytes of a CallRel32 instruction.
const CallRel32Size = 5

// Syscall encodes: syscall (0F 05)
func Syscall() []byte {
	return []byte{0x0F, 0x05}
}
