package amd64_test

import (
	"testing"

	"github.com/nmeum/tinyelf/pkg/amd64"
)

func TestImmediateWidthAndValue(t *testing.T) {
	tests := []struct {
		name  string
		imm   amd64.Immediate
		width amd64.Width
		value int32
	}{
		{"Imm8", amd64.Imm8(-5), amd64.Width8, -5},
		{"Imm16", amd64.Imm16(1000), amd64.Width16, 1000},
		{"Imm32", amd64.Imm32(70000), amd64.Width32, 70000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.imm.Width() != tt.width {
				t.Errorf("Width() = %v, want %v", tt.imm.Width(), tt.width)
			}
			if tt.imm.Value() != tt.value {
				t.Errorf("Value() = %d, want %d", tt.imm.Value(), tt.value)
			}
		})
	}
}

func TestMemoryResolved(t *testing.T) {
	if amd64.Addr("x").Resolved() {
		t.Error("Addr(x).Resolved() = true, want false")
	}
	if !amd64.Abs(10).Resolved() {
		t.Error("Abs(10).Resolved() = false, want true")
	}
}
