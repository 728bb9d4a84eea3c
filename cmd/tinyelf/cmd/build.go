package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmeum/tinyelf/internal/disasm"
	"github.com/nmeum/tinyelf/internal/image"
	"github.com/nmeum/tinyelf/pkg/amd64"
	"github.com/nmeum/tinyelf/pkg/program"
)

var dumpPath string

var buildCmd = &cobra.Command{
	Use:   "build [message] [output]",
	Short: "Assemble the sample write/exit program into an ELF64 executable",
	Long: `build assembles a small demonstration program that writes message
to standard output and exits, exercising a broad slice of the supported
instruction set along the way. message defaults to a greeting; output
defaults to "bin".`,
	Args: cobra.MaximumNArgs(2),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&dumpPath, "dump", "dump.asm", "path to write the disassembly text")
}

func runBuild(cmd *cobra.Command, args []string) error {
	message := "Hello World, this is my tiny executable\n"
	if len(args) > 0 {
		message = args[0]
	}

	outFile := "bin"
	if len(args) > 1 {
		outFile = args[1]
	}

	p := samplePlan(message)

	binary, err := image.Compose(p)
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}

	if err := os.WriteFile(dumpPath, []byte(disasm.Dump(p)), 0o644); err != nil {
		return err
	}

	if err := os.WriteFile(outFile, binary, 0o755); err != nil {
		return err
	}

	fmt.Printf("wrote %d bytes to %s (disassembly: %s)\n", len(binary), outFile, dumpPath)
	return nil
}

// samplePlan builds a small program that exercises most of the mnemonic
// table before writing message to standard output and exiting: an
// arithmetic scratch sequence (IMUL/ADD/SUB/INC/DEC/PUSH/POP), a countdown
// loop (CMP/JNE), and a print helper invoked via CALL/RET.
func samplePlan(message string) *program.Program {
	p := program.New()

	p.Label("_start").
		Add(&amd64.Mov{Dst: amd64.RAX, Src: amd64.Imm32(2)}).
		Add(&amd64.Imul{Dst: amd64.RAX, Src: amd64.Imm32(3)}).
		Add(&amd64.Add{Dst: amd64.RAX, Src: amd64.Imm32(4)}).
		Add(&amd64.Sub{Dst: amd64.RAX, Src: amd64.Imm8(1)}).
		Add(&amd64.Inc{Reg: amd64.RAX}).
		Add(&amd64.Dec{Reg: amd64.RAX}).
		Add(&amd64.Push{Src: amd64.RAX}).
		Add(&amd64.Pop{Reg: amd64.RBX}).
		Add(&amd64.Mov{Dst: amd64.RCX, Src: amd64.Imm32(3)}).
		Label("countdown").
		Add(&amd64.Dec{Reg: amd64.RCX}).
		Add(&amd64.Cmp{Dst: amd64.RCX, Src: amd64.Imm32(0)}).
		Add(&amd64.Jne{Target: amd64.Addr("countdown")}).
		Add(&amd64.Call{Target: amd64.Addr("print_msg")}).
		Add(&amd64.Mov{Dst: amd64.RAX, Src: amd64.Imm32(60)}).
		Add(&amd64.Xor{Dst: amd64.RDI, Src: amd64.RDI}).
		Add(&amd64.Syscall{})

	p.Func("print_msg").
		Add(&amd64.Mov{Dst: amd64.RAX, Src: amd64.Imm32(1)}).
		Add(&amd64.Mov{Dst: amd64.RDI, Src: amd64.Imm32(1)}).
		Add(&amd64.Mov{Dst: amd64.RSI, Src: amd64.Addr("msg")}).
		Add(&amd64.Mov{Dst: amd64.RDX, Src: amd64.Imm32(int32(len(message)))}).
		Add(&amd64.Syscall{}).
		FuncEnd()

	p.InsertData("msg", []byte(message))
	return p
}
