package amd64

// Mnemonic is the closed sum of supported instructions. Each variant is a
// pointer-typed struct carrying its operand payload and its own Encode
// method. BranchTarget and MovTarget type-switch on it, and the program's
// back-patcher relies on these being pointers so embedded Memory targets
// stay mutable in place after appending.
type Mnemonic interface {
	// Encode returns this mnemonic's REX-prefixed byte sequence, or an
	// *UnsupportedOperandError if the operand shape is not in the table.
	Encode() ([]byte, error)
	isMnemonic()
}

// Add, Sub and Xor share ADD/SUB's register-or-immediate shape; Xor only
// accepts the register form (see Xor.Encode below).
type (
	Add struct {
		Dst Register
		Src Operand
	}
	Sub struct {
		Dst Register
		Src Operand
	}
	Xor struct {
		Dst Register
		Src Operand
	}
	Cmp struct {
		Dst Register
		Src Operand
	}
	Imul struct {
		Dst Register
		Src Operand
	}
	Inc struct{ Reg Register }
	Dec struct{ Reg Register }
	Pop struct{ Reg Register }
	Push struct {
		Src Operand
	}
	Mov struct {
		Dst Register
		Src Operand
	}
	Call    struct{ Target Memory }
	Jmp     struct{ Target Memory }
	Je      struct{ Target Memory }
	Jne     struct{ Target Memory }
	Jg      struct{ Target Memory }
	Jge     struct{ Target Memory }
	Jl      struct{ Target Memory }
	Jle     struct{ Target Memory }
	Label   struct{ Name string }
	Ret     struct{}
	Syscall struct{}
)

func (*Add) isMnemonic()     {}
func (*Sub) isMnemonic()     {}
func (*Xor) isMnemonic()     {}
func (*Cmp) isMnemonic()     {}
func (*Imul) isMnemonic()    {}
func (*Inc) isMnemonic()     {}
func (*Dec) isMnemonic()     {}
func (*Pop) isMnemonic()     {}
func (*Push) isMnemonic()    {}
func (*Mov) isMnemonic()     {}
func (*Call) isMnemonic()    {}
func (*Jmp) isMnemonic()     {}
func (*Je) isMnemonic()      {}
func (*Jne) isMnemonic()     {}
func (*Jg) isMnemonic()      {}
func (*Jge) isMnemonic()     {}
func (*Jl) isMnemonic()      {}
func (*Jle) isMnemonic()     {}
func (*Label) isMnemonic()   {}
func (*Ret) isMnemonic()     {}
func (*Syscall) isMnemonic() {}

// regImmReg encodes the ADD/SUB shape: imm8 under opcodeImm8 with ModR/M
// digit, imm16/32 under opcodeImm1632 with the same digit, or reg/reg under
// opcodeReg with dst's field folded into the reg position of src's byte
// (reg=dst, rm=src, the non-reversed RM-form convention).
func regImmReg(name string, dst Register, src Operand, opcodeImm8, opcodeImm1632, digit, opcodeReg byte) ([]byte, error) {
	switch v := src.(type) {
	case Immediate:
		if v.Width() == Width8 {
			return newInstruction(opcodeImm8).extendDigit(dst, digit).operand(v).bytes(), nil
		}
		return newInstruction(opcodeImm1632).extendDigit(dst, digit).operand(v).bytes(), nil
	case Register:
		return newInstruction(opcodeReg).extendReg(dst, v).bytes(), nil
	default:
		return nil, &UnsupportedOperandError{Mnemonic: name, Shape: "memory"}
	}
}

func (m *Add) Encode() ([]byte, error) {
	return regImmReg("ADD", m.Dst, m.Src, 0x83, 0x81, 0, 0x03)
}

func (m *Sub) Encode() ([]byte, error) {
	return regImmReg("SUB", m.Dst, m.Src, 0x83, 0x81, 5, 0x2B)
}

// Xor only supports the register/register shape; the table has no XOR
// r, imm row.
func (m *Xor) Encode() ([]byte, error) {
	r, ok := m.Src.(Register)
	if !ok {
		return nil, &UnsupportedOperandError{Mnemonic: "XOR", Shape: "immediate or memory"}
	}
	return newInstruction(0x33).extendReg(m.Dst, r).bytes(), nil
}

// Cmp only supports the imm16/imm32 shape; the table's single CMP row
// documents imm32 and no reg/reg or imm8 form.
func (m *Cmp) Encode() ([]byte, error) {
	imm, ok := m.Src.(Immediate)
	if !ok || imm.Width() == Width8 {
		return nil, &UnsupportedOperandError{Mnemonic: "CMP", Shape: "register, memory, or 8-bit immediate"}
	}
	return newInstruction(0x81).extendDigit(m.Dst, 7).operand(imm).bytes(), nil
}

// Imul's immediate forms encode as a two-operand imul (r64, r64, imm) where
// the single register occupies both the ModR/M reg and rm fields; its
// register form places the destination's field into the reg position of the
// source's byte (reg=dst, rm=src) like the other reg/reg shapes in this
// table.
func (m *Imul) Encode() ([]byte, error) {
	switch v := m.Src.(type) {
	case Immediate:
		if v.Width() == Width8 {
			return newInstruction(0x6B).extendReg(m.Dst, m.Dst).operand(v).bytes(), nil
		}
		return newInstruction(0x69).extendReg(m.Dst, m.Dst).operand(v).bytes(), nil
	case Register:
		return newInstruction(0x0F, 0xAF).extendReg(m.Dst, v).bytes(), nil
	default:
		return nil, &UnsupportedOperandError{Mnemonic: "IMUL", Shape: "memory"}
	}
}

func (m *Inc) Encode() ([]byte, error) { return newInstruction(0xFF).extendDigit(m.Reg, 0).bytes(), nil }
func (m *Dec) Encode() ([]byte, error) { return newInstruction(0xFF).extendDigit(m.Reg, 1).bytes(), nil }
func (m *Pop) Encode() ([]byte, error) { return newInstruction(0x8F).extendDigit(m.Reg, 0).bytes(), nil }

func (m *Push) Encode() ([]byte, error) {
	switch v := m.Src.(type) {
	case Register:
		return newInstruction(0xFF).extendDigit(v, 6).bytes(), nil
	case Immediate:
		if v.Width() == Width8 {
			return newInstruction(0x6A).operand(v).bytes(), nil
		}
		return newInstruction(0x68).operand(v).bytes(), nil
	default:
		return nil, &UnsupportedOperandError{Mnemonic: "PUSH", Shape: "memory"}
	}
}

func (m *Mov) Encode() ([]byte, error) {
	switch v := m.Src.(type) {
	case Immediate:
		if v.Width() == Width8 {
			return nil, &UnsupportedOperandError{Mnemonic: "MOV", Shape: "8-bit immediate"}
		}
		return newInstruction(0xC7).operand(m.Dst).operand(v).bytes(), nil
	case Memory:
		return newInstruction(0xC7).operand(m.Dst).operand(v).bytes(), nil
	case Register:
		// Reversed form (0x89: MOV r/m64, r64) per the resolved Design
		// Note: destination in the rm field, source in reg — swap
		// extendReg's argument order since it puts its first argument
		// in reg and its second in rm.
		return newInstruction(0x89).extendReg(v, m.Dst).bytes(), nil
	default:
		return nil, &UnsupportedOperandError{Mnemonic: "MOV", Shape: "unrecognised operand"}
	}
}

func (m *Call) Encode() ([]byte, error) { return newInstruction(0xE8).operand(m.Target).bytes(), nil }
func (m *Jmp) Encode() ([]byte, error)  { return newInstruction(0xE9).operand(m.Target).bytes(), nil }
func (m *Je) Encode() ([]byte, error) {
	return newInstruction(0x0F, 0x84).operand(m.Target).bytes(), nil
}
func (m *Jne) Encode() ([]byte, error) {
	return newInstruction(0x0F, 0x85).operand(m.Target).bytes(), nil
}
func (m *Jg) Encode() ([]byte, error) {
	return newInstruction(0x0F, 0x8F).operand(m.Target).bytes(), nil
}
func (m *Jge) Encode() ([]byte, error) {
	return newInstruction(0x0F, 0x8D).operand(m.Target).bytes(), nil
}
func (m *Jl) Encode() ([]byte, error) {
	return newInstruction(0x0F, 0x8C).operand(m.Target).bytes(), nil
}
func (m *Jle) Encode() ([]byte, error) {
	return newInstruction(0x0F, 0x8E).operand(m.Target).bytes(), nil
}

// Label emits zero bytes; it exists purely to be seen by the back-patcher.
func (m *Label) Encode() ([]byte, error) { return nil, nil }

func (m *Ret) Encode() ([]byte, error) { return newInstruction(0xC3).bytes(), nil }

// Syscall is the sole exception to "always emit REX.W": two bytes, no
// prefix.
func (m *Syscall) Encode() ([]byte, error) { return []byte{0x0F, 0x05}, nil }

// BranchTarget returns the mutable memory reference of a control-transfer
// mnemonic for back-patching, or nil if m is not one.
func BranchTarget(m Mnemonic) *Memory {
	switch v := m.(type) {
	case *Call:
		return &v.Target
	case *Jmp:
		return &v.Target
	case *Je:
		return &v.Target
	case *Jne:
		return &v.Target
	case *Jg:
		return &v.Target
	case *Jge:
		return &v.Target
	case *Jl:
		return &v.Target
	case *Jle:
		return &v.Target
	default:
		return nil
	}
}

// MovTarget returns the label-bearing memory reference m's source names, and
// a setter that writes a resolved displacement back into m, or (Memory{},
// nil) if m is not a MOV with a memory source.
func MovTarget(m Mnemonic) (mem Memory, set func(int32)) {
	mv, ok := m.(*Mov)
	if !ok {
		return Memory{}, nil
	}
	mem, ok = mv.Src.(Memory)
	if !ok {
		return Memory{}, nil
	}
	return mem, func(disp int32) {
		mem.Displacement = disp
		mv.Src = mem
	}
}
