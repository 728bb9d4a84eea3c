package disasm_test

import (
	"strings"
	"testing"

	"github.com/nmeum/tinyelf/internal/disasm"
	"github.com/nmeum/tinyelf/pkg/amd64"
	"github.com/nmeum/tinyelf/pkg/program"
)

func TestDumpRendersInstructions(t *testing.T) {
	p := program.New().
		Label("_start").
		Add(&amd64.Mov{Dst: amd64.RAX, Src: amd64.Imm32(60)}).
		Add(&amd64.Xor{Dst: amd64.RDI, Src: amd64.RDI}).
		Add(&amd64.Syscall{}).
		Add(&amd64.Ret{})

	out := disasm.Dump(p)

	for _, want := range []string{
		"GLOBAL _start",
		"_start:",
		"mov rax, 60",
		"xor rdi, rdi",
		"syscall",
		"ret",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() missing %q in:\n%s", want, out)
		}
	}
}

func TestDumpRendersDataSection(t *testing.T) {
	p := program.New().
		Add(&amd64.Ret{}).
		InsertData("msg", []byte("hi"))

	out := disasm.Dump(p)
	if !strings.Contains(out, "SECTION .data") {
		t.Errorf("Dump() missing data section header:\n%s", out)
	}
	if !strings.Contains(out, `msg db "hi"`) {
		t.Errorf("Dump() missing msg entry:\n%s", out)
	}
}

func TestDumpEscapesNewlines(t *testing.T) {
	p := program.New().InsertData("msg", []byte("a\nb"))

	out := disasm.Dump(p)
	if !strings.Contains(out, `"a", 10, "b"`) {
		t.Errorf("Dump() did not escape newline:\n%s", out)
	}
}

func TestDumpRendersUnresolvedBranchLabel(t *testing.T) {
	p := program.New().Add(&amd64.Jmp{Target: amd64.Addr("L")}).Label("L")

	out := disasm.Dump(p)
	if !strings.Contains(out, "jmp L") {
		t.Errorf("Dump() missing unresolved jmp target:\n%s", out)
	}
}
