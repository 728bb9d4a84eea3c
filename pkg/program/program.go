// Package program assembles an ordered sequence of amd64.Mnemonic values
// plus a DataSection, and resolves label-bearing memory references to
// concrete PC-relative or absolute displacements via a two-pass
// back-patcher.
package program

import "github.com/nmeum/tinyelf/pkg/amd64"

// Program is an ordered sequence of mnemonics plus a DataSection. Label
// mnemonics must carry distinct names, and every branch or data reference
// must name an existing label. Backpatch reports a reference to a missing
// label; duplicate label names are not detected (the last definition wins).
type Program struct {
	instructions []amd64.Mnemonic
	data         *DataSection
}

// New creates an empty program.
func New() *Program {
	return &Program{data: NewDataSection()}
}

// Add appends a mnemonic and returns p, for chaining.
func (p *Program) Add(m amd64.Mnemonic) *Program {
	p.instructions = append(p.instructions, m)
	return p
}

// Label appends a LABEL mnemonic named name.
func (p *Program) Label(name string) *Program {
	return p.Add(&amd64.Label{Name: name})
}

// Func emits a label named name followed by the standard frame-pointer
// prologue (push rbp; mov rbp, rsp), a thin convenience sugar over existing
// mnemonics.
func (p *Program) Func(name string) *Program {
	return p.Label(name).
		Add(&amd64.Push{Src: amd64.RBP}).
		Add(&amd64.Mov{Dst: amd64.RBP, Src: amd64.RSP})
}

// FuncEnd emits the matching epilogue for Func (mov rsp, rbp; pop rbp; ret).
func (p *Program) FuncEnd() *Program {
	return p.Add(&amd64.Mov{Dst: amd64.RSP, Src: amd64.RBP}).
		Add(&amd64.Pop{Reg: amd64.RBP}).
		Add(&amd64.Ret{})
}

// InsertData appends a named data entry to the program's data section.
func (p *Program) InsertData(key string, value []byte) *Program {
	p.data.Insert(key, value)
	return p
}

// Instructions returns the program's mnemonics in append order.
func (p *Program) Instructions() []amd64.Mnemonic { return p.instructions }

// Data returns the program's data section.
func (p *Program) Data() *DataSection { return p.data }

// Bytes encodes every instruction in order and concatenates the result.
// Before Backpatch has run, label-bearing memory references encode with a
// zero displacement; per the stable-size invariant this does not change the
// length of the output, only its content.
func (p *Program) Bytes() ([]byte, error) {
	var out []byte
	for _, inst := range p.instructions {
		b, err := inst.Encode()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}
