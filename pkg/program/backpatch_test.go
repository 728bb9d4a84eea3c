package program_test

import (
	"bytes"
	"testing"

	"github.com/nmeum/tinyelf/pkg/amd64"
	"github.com/nmeum/tinyelf/pkg/program"
)

// TestBackwardBranch pins scenario 6: [LABEL("L"), JMP("L")] backpatches to
// a displacement of 0 - 6 = -6.
func TestBackwardBranch(t *testing.T) {
	p := program.New().Label("L").Add(&amd64.Jmp{Target: amd64.Addr("L")})

	if err := p.Backpatch(0); err != nil {
		t.Fatalf("Backpatch() error = %v", err)
	}

	got, err := p.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	want := []byte{0x48, 0xE9, 0xFA, 0xFF, 0xFF, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("Bytes() = % X, want % X", got, want)
	}
}

// TestForwardBranch pins scenario 7: [JMP("L"), LABEL("L"), RET] backpatches
// to a displacement of 6 - 6 = 0.
func TestForwardBranch(t *testing.T) {
	p := program.New().
		Add(&amd64.Jmp{Target: amd64.Addr("L")}).
		Label("L").
		Add(&amd64.Ret{})

	if err := p.Backpatch(0); err != nil {
		t.Fatalf("Backpatch() error = %v", err)
	}

	got, err := p.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	want := []byte{0x48, 0xE9, 0x00, 0x00, 0x00, 0x00, 0x48, 0xC3}
	if !bytes.Equal(got, want) {
		t.Errorf("Bytes() = % X, want % X", got, want)
	}
}

func TestUnresolvedLabel(t *testing.T) {
	p := program.New().Add(&amd64.Jmp{Target: amd64.Addr("nowhere")})

	err := p.Backpatch(0)
	if err == nil {
		t.Fatal("Backpatch() error = nil, want *UnresolvedLabelError")
	}
	if _, ok := err.(*program.UnresolvedLabelError); !ok {
		t.Errorf("Backpatch() error type = %T, want *UnresolvedLabelError", err)
	}
}

func TestMovDataBackpatch(t *testing.T) {
	p := program.New().
		Add(&amd64.Mov{Dst: amd64.RSI, Src: amd64.Addr("msg")}).
		InsertData("msg", []byte("hi"))

	const dataBase = 0x401000
	if err := p.Backpatch(dataBase); err != nil {
		t.Fatalf("Backpatch() error = %v", err)
	}

	mov := p.Instructions()[0].(*amd64.Mov)
	mem := mov.Src.(amd64.Memory)
	if mem.Displacement != dataBase {
		t.Errorf("Displacement = %#x, want %#x", mem.Displacement, dataBase)
	}
}

func TestFuncFuncEnd(t *testing.T) {
	p := program.New().Func("f").FuncEnd()
	insts := p.Instructions()

	if len(insts) != 6 {
		t.Fatalf("len(Instructions()) = %d, want 6", len(insts))
	}
	if _, ok := insts[0].(*amd64.Label); !ok {
		t.Errorf("insts[0] = %T, want *amd64.Label", insts[0])
	}
	if push, ok := insts[1].(*amd64.Push); !ok || push.Src != amd64.Operand(amd64.RBP) {
		t.Errorf("insts[1] = %#v, want push rbp", insts[1])
	}
	if mov, ok := insts[2].(*amd64.Mov); !ok || mov.Dst != amd64.RBP || mov.Src != amd64.Operand(amd64.RSP) {
		t.Errorf("insts[2] = %#v, want mov rbp, rsp", insts[2])
	}
	if mov, ok := insts[3].(*amd64.Mov); !ok || mov.Dst != amd64.RSP || mov.Src != amd64.Operand(amd64.RBP) {
		t.Errorf("insts[3] = %#v, want mov rsp, rbp", insts[3])
	}
	if pop, ok := insts[4].(*amd64.Pop); !ok || pop.Reg != amd64.RBP {
		t.Errorf("insts[4] = %#v, want pop rbp", insts[4])
	}
	if _, ok := insts[5].(*amd64.Ret); !ok {
		t.Errorf("insts[5] = %T, want *amd64.Ret", insts[5])
	}
}

func TestDataSectionAddresses(t *testing.T) {
	d := program.NewDataSection()
	d.Insert("a", []byte("ab"))
	d.Insert("b", []byte("cde"))

	addrs := d.Addresses(0x1000)
	if addrs["a"] != 0x1000 {
		t.Errorf("addrs[a] = %#x, want 0x1000", addrs["a"])
	}
	if addrs["b"] != 0x1002 {
		t.Errorf("addrs[b] = %#x, want 0x1002", addrs["b"])
	}
	if d.Len() != 5 {
		t.Errorf("Len() = %d, want 5", d.Len())
	}
}
