package program

// DataEntry is one (label, bytes) pair of a DataSection, in insertion order.
type DataEntry struct {
	Key   string
	Value []byte
}

// DataSection is an ordered collection of (label, bytes) entries. The
// address of entry i is base + the sum of the lengths of all entries before
// it; values serialize as their raw bytes, concatenated.
type DataSection struct {
	entries []DataEntry
}

// NewDataSection creates an empty data section.
func NewDataSection() *DataSection { return &DataSection{} }

// Insert appends a (key, value) pair, preserving insertion order.
func (d *DataSection) Insert(key string, value []byte) {
	d.entries = append(d.entries, DataEntry{Key: key, Value: value})
}

// Entries returns the data section's entries in insertion order.
func (d *DataSection) Entries() []DataEntry { return d.entries }

// Len reports the total byte length of all entries concatenated.
func (d *DataSection) Len() int {
	n := 0
	for _, e := range d.entries {
		n += len(e.Value)
	}
	return n
}

// Bytes concatenates every entry's value, in insertion order.
func (d *DataSection) Bytes() []byte {
	out := make([]byte, 0, d.Len())
	for _, e := range d.entries {
		out = append(out, e.Value...)
	}
	return out
}

// Addresses computes the absolute virtual address of every entry, given the
// base address at which the data section is loaded.
func (d *DataSection) Addresses(base uint64) map[string]int32 {
	addrs := make(map[string]int32, len(d.entries))
	offset := uint64(0)
	for _, e := range d.entries {
		addrs[e.Key] = int32(base + offset)
		offset += uint64(len(e.Value))
	}
	return addrs
}
