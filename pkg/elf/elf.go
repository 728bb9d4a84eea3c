// Package elf provides ELF64 binary format building utilities. This package
// has no dependencies on the instruction encoder or program internals and
// can be used standalone for generating ELF64 executables.
package elf

import "encoding/binary"

// ELF64 constants.
const (
	// ELF identification
	ELFMAG0       = 0x7f
	ELFMAG1       = 'E'
	ELFMAG2       = 'L'
	ELFMAG3       = 'F'
	ELFCLASS64    = 2
	ELFDATA2LSB   = 1 // Little endian
	EV_CURRENT    = 1
	ELFOSABI_NONE = 0

	// ELF type
	ET_EXEC = 2 // Executable file

	// Machine type
	EM_X86_64 = 62

	// Program header type
	PT_LOAD = 1

	// Program header flags
	PF_X = 0x1 // Execute
	PF_W = 0x2 // Write
	PF_R = 0x4 // Read

	// Sizes
	HeaderSize = 64
	PhdrSize   = 56

	// VAddrStart is the fixed base virtual address at which the image is
	// loaded.
	VAddrStart = 0x400000
)

// Header64 represents the ELF64 file header.
type Header64 struct {
	Ident     [16]byte // ELF identification
	Type      uint16   // Object file type
	Machine   uint16   // Machine type
	Version   uint32   // Object file version
	Entry     uint64   // Entry point address
	PhOff     uint64   // Program header offset
	ShOff     uint64   // Section header offset
	Flags     uint32   // Processor-specific flags
	EhSize    uint16   // ELF header size
	PhEntSize uint16   // Program header entry size
	PhNum     uint16   // Number of program headers
	ShEntSize uint16   // Section header entry size
	ShNum     uint16   // Number of section headers
	ShStrNdx  uint16   // Section name string table index
}

// Phdr64 represents an ELF64 program header, in ELF64 field order.
type Phdr64 struct {
	Type   uint32 // Segment type
	Flags  uint32 // Segment flags
	Off    uint64 // File offset
	VAddr  uint64 // Virtual address
	PAddr  uint64 // Physical address
	FileSz uint64 // Size in file
	MemSz  uint64 // Size in memory
	Align  uint64 // Alignment
}

func newIdent() [16]byte {
	var ident [16]byte
	ident[0] = ELFMAG0
	ident[1] = ELFMAG1
	ident[2] = ELFMAG2
	ident[3] = ELFMAG3
	ident[4] = ELFCLASS64
	ident[5] = ELFDATA2LSB
	ident[6] = EV_CURRENT
	ident[7] = ELFOSABI_NONE
	// Ident[8..15] are padding (already zero)
	return ident
}

// appendHeader writes the ELF64 header.
func appendHeader(out []byte, hdr Header64) []byte {
	out = append(out, hdr.Ident[:]...)
	out = appendLE16(out, hdr.Type)
	out = appendLE16(out, hdr.Machine)
	out = appendLE32(out, hdr.Version)
	out = appendLE64(out, hdr.Entry)
	out = appendLE64(out, hdr.PhOff)
	out = appendLE64(out, hdr.ShOff)
	out = appendLE32(out, hdr.Flags)
	out = appendLE16(out, hdr.EhSize)
	out = appendLE16(out, hdr.PhEntSize)
	out = appendLE16(out, hdr.PhNum)
	out = appendLE16(out, hdr.ShEntSize)
	out = appendLE16(out, hdr.ShNum)
	out = appendLE16(out, hdr.ShStrNdx)
	return out
}

// appendPhdr writes one program header, in ELF64 field order.
func appendPhdr(out []byte, p Phdr64) []byte {
	out = appendLE32(out, p.Type)
	out = appendLE32(out, p.Flags)
	out = appendLE64(out, p.Off)
	out = appendLE64(out, p.VAddr)
	out = appendLE64(out, p.PAddr)
	out = appendLE64(out, p.FileSz)
	out = appendLE64(out, p.MemSz)
	out = appendLE64(out, p.Align)
	return out
}

// Little-endian append helpers.
func appendLE16(out []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(out, buf[:]...)
}

func appendLE32(out []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(out, buf[:]...)
}

func appendLE64(out []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(out, buf[:]...)
}
