// Package disasm renders a *program.Program as NASM-style assembly text,
// for the human-readable dump.asm sidecar produced alongside an ELF image.
package disasm

import (
	"fmt"
	"strings"

	"github.com/nmeum/tinyelf/pkg/amd64"
	"github.com/nmeum/tinyelf/pkg/program"
)

// Generator renders a program's instructions and data section to text.
type Generator struct {
	p   *program.Program
	out strings.Builder
}

// NewGenerator creates a generator for p.
func NewGenerator(p *program.Program) *Generator {
	return &Generator{p: p}
}

// Dump renders p to NASM-style assembly text in one call.
func Dump(p *program.Program) string {
	return NewGenerator(p).Generate()
}

// Generate produces the complete assembly text.
func (g *Generator) Generate() string {
	g.emitHeader()
	for _, inst := range g.p.Instructions() {
		g.emitMnemonic(inst)
	}
	g.emitData()
	return g.out.String()
}

func (g *Generator) emitHeader() {
	fmt.Fprintf(&g.out, "GLOBAL _start\n\n")
	fmt.Fprintf(&g.out, "SECTION .text\n")
}

func (g *Generator) emitMnemonic(inst amd64.Mnemonic) {
	switch v := inst.(type) {
	case *amd64.Label:
		fmt.Fprintf(&g.out, "%s:\n", v.Name)
	case *amd64.Add:
		g.emitBinop("add", v.Dst, v.Src)
	case *amd64.Sub:
		g.emitBinop("sub", v.Dst, v.Src)
	case *amd64.Xor:
		g.emitBinop("xor", v.Dst, v.Src)
	case *amd64.Cmp:
		g.emitBinop("cmp", v.Dst, v.Src)
	case *amd64.Imul:
		g.emitBinop("imul", v.Dst, v.Src)
	case *amd64.Inc:
		fmt.Fprintf(&g.out, "    inc %s\n", v.Reg)
	case *amd64.Dec:
		fmt.Fprintf(&g.out, "    dec %s\n", v.Reg)
	case *amd64.Pop:
		fmt.Fprintf(&g.out, "    pop %s\n", v.Reg)
	case *amd64.Push:
		fmt.Fprintf(&g.out, "    push %s\n", operandText(v.Src))
	case *amd64.Mov:
		g.emitBinop("mov", v.Dst, v.Src)
	case *amd64.Call:
		fmt.Fprintf(&g.out, "    call %s\n", branchText(v.Target))
	case *amd64.Jmp:
		fmt.Fprintf(&g.out, "    jmp %s\n", branchText(v.Target))
	case *amd64.Je:
		fmt.Fprintf(&g.out, "    je %s\n", branchText(v.Target))
	case *amd64.Jne:
		fmt.Fprintf(&g.out, "    jne %s\n", branchText(v.Target))
	case *amd64.Jg:
		fmt.Fprintf(&g.out, "    jg %s\n", branchText(v.Target))
	case *amd64.Jge:
		fmt.Fprintf(&g.out, "    jge %s\n", branchText(v.Target))
	case *amd64.Jl:
		fmt.Fprintf(&g.out, "    jl %s\n", branchText(v.Target))
	case *amd64.Jle:
		fmt.Fprintf(&g.out, "    jle %s\n", branchText(v.Target))
	case *amd64.Ret:
		fmt.Fprintf(&g.out, "    ret\n")
	case *amd64.Syscall:
		fmt.Fprintf(&g.out, "    syscall\n")
	default:
		fmt.Fprintf(&g.out, "    ; unrecognised mnemonic\n")
	}
}

func (g *Generator) emitBinop(name string, dst amd64.Register, src amd64.Operand) {
	fmt.Fprintf(&g.out, "    %s %s, %s\n", name, dst, operandText(src))
}

func operandText(op amd64.Operand) string {
	switch v := op.(type) {
	case amd64.Register:
		return v.String()
	case amd64.Immediate:
		return fmt.Sprintf("%d", v.Value())
	case amd64.Memory:
		return branchText(v)
	default:
		return "?"
	}
}

func branchText(m amd64.Memory) string {
	if !m.Resolved() {
		return m.Label
	}
	return fmt.Sprintf("%d", m.Displacement)
}

func (g *Generator) emitData() {
	entries := g.p.Data().Entries()
	if len(entries) == 0 {
		return
	}

	fmt.Fprintf(&g.out, "\nSECTION .data\n")
	for _, e := range entries {
		fmt.Fprintf(&g.out, "%s\n", dataEntryText(e))
	}
}

// dataEntryText renders one data entry as a NASM db directive. Only '\n' is
// escaped into a separate byte literal; other control characters pass
// through unescaped.
//
// TODO: other chars (tabs, quotes, non-ASCII) should be escaped too.
func dataEntryText(e program.DataEntry) string {
	escaped := strings.ReplaceAll(string(e.Value), "\n", `", 10, "`)
	return fmt.Sprintf("%s db \"%s\"", e.Key, escaped)
}
