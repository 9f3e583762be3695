package elf

// Layout holds the offsets discovered in pass one of assembly and consumed
// in pass two. Every offset field equals the cumulative byte length of all
// content emitted before that point in pass one, and every size field is the
// byte length of its section — none of them can change between passes,
// since every encoded field in this format is fixed-width.
type Layout struct {
	EntryPointOffset    uint64 // start of the fixed driver, within .text
	MessageBufferOffset uint64 // start of the 14-byte message buffer
	TextOffset          uint64 // start of .text
	TextSize            uint64
	ShstrtabOffset      uint64
	ShstrtabSize        uint64
	SymtabOffset        uint64
	SymtabSize          uint64
	StrtabOffset        uint64
	StrtabSize          uint64
	FileSize            uint64
}

// EntryVA returns the runtime virtual address of the fixed driver.
func (l Layout) EntryVA() uint64 {
	return LoadVA + l.EntryPointOffset
}

// MessageVA returns the runtime virtual address of the message buffer.
func (l Layout) MessageVA() uint64 {
	return LoadVA + l.MessageBufferOffset
}
