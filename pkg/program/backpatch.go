package program

import "github.com/nmeum/tinyelf/pkg/amd64"

// Backpatch resolves every label-bearing memory reference in the program:
// control-transfer targets to a PC-relative displacement, and MOV-from-data
// targets to the absolute virtual address dataAddr + the entry's offset
// within the data section.
//
// Pass 1 builds a label -> byte-offset table by walking the instructions
// once, advancing a running counter by each instruction's encoded size and
// recording the counter's value whenever a LABEL mnemonic is seen. Pass 2
// walks again, and for every control transfer or MOV referencing a label,
// rewrites its displacement in place. Instruction size does not depend on
// operand value (only on operand width/shape), so the two passes agree —
// see the stable-size invariant.
func (p *Program) Backpatch(dataAddr uint64) error {
	labels := make(map[string]int)
	dataLabels := p.data.Addresses(dataAddr)

	c := 0
	for _, inst := range p.instructions {
		if lbl, ok := inst.(*amd64.Label); ok {
			labels[lbl.Name] = c
		}
		b, err := inst.Encode()
		if err != nil {
			return err
		}
		c += len(b)
	}

	c = 0
	for _, inst := range p.instructions {
		b, err := inst.Encode()
		if err != nil {
			return err
		}
		c += len(b)

		if mem := amd64.BranchTarget(inst); mem != nil && !mem.Resolved() {
			target, ok := labels[mem.Label]
			if !ok {
				return &UnresolvedLabelError{Label: mem.Label}
			}
			mem.Displacement = int32(target - c)
			continue
		}

		if mem, set := amd64.MovTarget(inst); set != nil && !mem.Resolved() {
			addr, ok := dataLabels[mem.Label]
			if !ok {
				return &UnresolvedLabelError{Label: mem.Label}
			}
			set(addr)
		}
	}
	return nil
}
