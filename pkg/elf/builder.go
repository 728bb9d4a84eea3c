package elf

// Builder constructs an ELF64 executable: one code segment plus zero or
// more data segments, following §4.5-4.7's fixed header values and
// incremental phnum/entry bookkeeping.
type Builder struct {
	phnum       uint16
	entry       uint64
	codeHeader  Phdr64
	code        []byte
	dataHeaders []Phdr64
	dataBlobs   [][]byte
}

// NewBuilder starts a builder for a code payload. The code program header
// is built immediately: flags R|X, vaddr=paddr=VAddrStart, offset=0,
// filesz=memsz=len(code).
func NewBuilder(code []byte) *Builder {
	b := &Builder{
		entry: VAddrStart + HeaderSize,
		code:  code,
	}
	b.codeHeader = Phdr64{
		Type:   PT_LOAD,
		Flags:  PF_R | PF_X,
		Off:    0,
		VAddr:  VAddrStart,
		PAddr:  VAddrStart,
		FileSz: uint64(len(code)),
		MemSz:  uint64(len(code)),
	}
	b.phnum++
	b.entry += PhdrSize
	return b
}

// AddData appends a data segment. Its offset is the sum of the code and
// every previously added data blob's size; its vaddr/paddr are
// VAddrStart+offset.
func (b *Builder) AddData(data []byte, flags uint32) {
	b.phnum++
	b.entry += PhdrSize

	offset := uint64(len(b.code))
	for _, d := range b.dataBlobs {
		offset += uint64(len(d))
	}
	vaddr := VAddrStart + offset

	b.dataHeaders = append(b.dataHeaders, Phdr64{
		Type:   PT_LOAD,
		Flags:  flags,
		Off:    offset,
		VAddr:  vaddr,
		PAddr:  vaddr,
		FileSz: uint64(len(data)),
		MemSz:  uint64(len(data)),
	})
	b.dataBlobs = append(b.dataBlobs, data)
}

// Entry reports the resolved entry point address: VAddrStart + 0x40 +
// phnum*0x38, the byte offset immediately past the header array.
func (b *Builder) Entry() uint64 { return b.entry }

// DataAddr reports the absolute virtual address at which the first data
// segment byte will reside once the image is serialized — the value the
// back-patcher must be given to resolve MOV r, mem absolute addressing.
func (b *Builder) DataAddr() uint64 {
	return VAddrStart + uint64(HeaderSize) + uint64(b.phnum)*uint64(PhdrSize) + uint64(len(b.code))
}

// SetCode replaces the code payload bytes (used after back-patching
// rewrites embedded displacements; the stable-size invariant guarantees the
// length, and therefore every header already computed, does not change).
func (b *Builder) SetCode(code []byte) {
	b.code = code
	b.codeHeader.FileSz = uint64(len(code))
	b.codeHeader.MemSz = uint64(len(code))
}

// Build serializes the ELF header, code program header, data program
// headers, code bytes, and data bytes, in that order.
func (b *Builder) Build() []byte {
	hdr := Header64{
		Ident:     newIdent(),
		Type:      ET_EXEC,
		Machine:   EM_X86_64,
		Version:   EV_CURRENT,
		Entry:     b.entry,
		PhOff:     HeaderSize,
		ShOff:     0,
		Flags:     0,
		EhSize:    HeaderSize,
		PhEntSize: PhdrSize,
		PhNum:     b.phnum,
		ShEntSize: 0,
		ShNum:     0,
		ShStrNdx:  0,
	}

	total := HeaderSize + int(b.phnum)*PhdrSize + len(b.code)
	for _, d := range b.dataBlobs {
		total += len(d)
	}

	out := make([]byte, 0, total)
	out = appendHeader(out, hdr)
	out = appendPhdr(out, b.codeHeader)
	for _, h := range b.dataHeaders {
		out = appendPhdr(out, h)
	}
	out = append(out, b.code...)
	for _, d := range b.dataBlobs {
		out = append(out, d...)
	}
	return out
}
