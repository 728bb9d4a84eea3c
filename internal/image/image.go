// Package image is the ELF composer: it ties a *program.Program to
// pkg/elf's Builder, invoking the back-patcher at finalization per §4.7.
package image

import (
	"github.com/nmeum/tinyelf/pkg/elf"
	"github.com/nmeum/tinyelf/pkg/program"
)

// Compose encodes p's instructions, lays out the code and (if present) data
// segments, back-patches every label-bearing reference against the
// resulting data address, and serializes the complete ELF64 image.
func Compose(p *program.Program) ([]byte, error) {
	code, err := p.Bytes()
	if err != nil {
		return nil, err
	}

	builder := elf.NewBuilder(code)

	data := p.Data()
	if data.Len() > 0 {
		builder.AddData(data.Bytes(), elf.PF_R)
	}

	if err := p.Backpatch(builder.DataAddr()); err != nil {
		return nil, err
	}

	code, err = p.Bytes()
	if err != nil {
		return nil, err
	}
	builder.SetCode(code)

	return builder.Build(), nil
}
