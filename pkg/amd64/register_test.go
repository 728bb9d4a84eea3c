package amd64_test

import (
	"testing"

	"github.com/nmeum/tinyelf/pkg/amd64"
)

// TestCanonicalRegisterByte checks canonical_modrm_byte(R) = 0xC0 + field(R)
// for every register, with field always in 0..7 even for the extended set.
func TestCanonicalRegisterByte(t *testing.T) {
	tests := []struct {
		reg      amd64.Register
		field    byte
		extended bool
	}{
		{amd64.RAX, 0, false},
		{amd64.RCX, 1, false},
		{amd64.RDX, 2, false},
		{amd64.RBX, 3, false},
		{amd64.RSP, 4, false},
		{amd64.RBP, 5, false},
		{amd64.RSI, 6, false},
		{amd64.RDI, 7, false},
		{amd64.R8, 0, true},
		{amd64.R9, 1, true},
		{amd64.R10, 2, true},
		{amd64.R11, 3, true},
		{amd64.R12, 4, true},
		{amd64.R13, 5, true},
		{amd64.R14, 6, true},
		{amd64.R15, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.reg.String(), func(t *testing.T) {
			if tt.reg.Field != tt.field {
				t.Errorf("Field = %d, want %d", tt.reg.Field, tt.field)
			}
			if tt.reg.Extended != tt.extended {
				t.Errorf("Extended = %v, want %v", tt.reg.Extended, tt.extended)
			}
			want := 0xC0 + tt.field
			if got := tt.reg.ModRM(); got != want {
				t.Errorf("ModRM() = %#x, want %#x", got, want)
			}
		})
	}
}
