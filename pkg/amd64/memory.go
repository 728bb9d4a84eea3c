package amd64

import "encoding/binary"

// Memory is a symbolic or absolute memory reference: a named label awaiting
// back-patch, or an already-resolved displacement when Label is empty. It
// serializes as its 4-byte little-endian Displacement only — this system
// never emits a ModR/M byte for a memory operand; memory operands appear
// only as control-transfer targets (PC-relative) and in MOV reg, mem
// absolute addressing.
type Memory struct {
	Label        string
	Displacement int32
}

// Addr creates a memory reference awaiting back-patch resolution of name.
func Addr(name string) Memory { return Memory{Label: name} }

// Abs creates an already-resolved absolute memory reference.
func Abs(displacement int32) Memory { return Memory{Displacement: displacement} }

// Resolved reports whether this reference needs no further back-patching.
func (m Memory) Resolved() bool { return m.Label == "" }

func (Memory) isOperand() {}

func (m Memory) encode() []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(m.Displacement))
	return buf
}
