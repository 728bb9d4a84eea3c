package amd64

import "encoding/binary"

// Width identifies the bit width of an Immediate operand. The encoder uses
// Width, never the value itself, to choose between short and long opcode
// forms (e.g. ADD's 83/81 split).
type Width int

const (
	Width8 Width = iota
	Width16
	Width32
)

// Immediate is a tagged signed value of exactly one width. Callers supply
// the width explicitly; there is no implicit widening.
type Immediate struct {
	width Width
	value int32
}

// Imm8 constructs an 8-bit immediate.
func Imm8(v int8) Immediate { return Immediate{Width8, int32(v)} }

// Imm16 constructs a 16-bit immediate.
func Imm16(v int16) Immediate { return Immediate{Width16, int32(v)} }

// Imm32 constructs a 32-bit immediate.
func Imm32(v int32) Immediate { return Immediate{Width32, v} }

// Width reports the tagged width of this immediate.
func (i Immediate) Width() Width { return i.width }

// Value reports the immediate's signed value.
func (i Immediate) Value() int32 { return i.value }

func (Immediate) isOperand() {}

// encode serializes the immediate as native little-endian bytes at its
// tagged width.
func (i Immediate) encode() []byte {
	switch i.width {
	case Width8:
		return []byte{byte(int8(i.value))}
	case Width16:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(int16(i.value)))
		return buf
	default:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(i.value))
		return buf
	}
}
