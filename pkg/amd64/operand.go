package amd64

// Operand is the closed sum {Register, Immediate, Memory}. Encoding
// decisions branch on the concrete type via a type switch; there is no
// extension mechanism, and no type outside this package implements it.
type Operand interface {
	isOperand()
	encode() []byte
}
