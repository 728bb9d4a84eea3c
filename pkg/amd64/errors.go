package amd64

import "fmt"

// UnsupportedOperandError is raised by the encoder when a mnemonic/operand
// combination is not in the mnemonic encoding table (e.g. ADD r, mem; MOV r,
// imm8). Fatal; there is no recovery.
type UnsupportedOperandError struct {
	Mnemonic string
	Shape    string
}

func (e *UnsupportedOperandError) Error() string {
	return fmt.Sprintf("amd64: unsupported operand shape for %s: %s", e.Mnemonic, e.Shape)
}
