package emu

// SharedRAM is the byte-wide RAM between the primary CPU and the sound CPU.
// The primary reaches it through the low byte lane of its data bus only.
type SharedRAM struct {
	data []byte
}

// NewSharedRAM allocates size bytes. size must be a power of two.
func NewSharedRAM(size int) *SharedRAM {
	return &SharedRAM{data: make([]byte, size)}
}

// Size returns the RAM size in bytes.
func (r *SharedRAM) Size() int { return len(r.data) }

func (r *SharedRAM) index(offset uint32) uint32 {
	return offset & uint32(len(r.data)-1)
}

// Read returns the byte at offset.
func (r *SharedRAM) Read(offset uint32) uint8 {
	return r.data[r.index(offset)]
}

// Write stores a byte at offset.
func (r *SharedRAM) Write(offset uint32, val uint8) {
	r.data[r.index(offset)] = val
}

// Write16 handles a 16-bit bus write. Only the low byte lane is connected,
// so the write lands only when mask enables bits 0-7.
func (r *SharedRAM) Write16(offset uint32, val uint16, mask uint16) {
	if mask&0x00FF == 0 {
		return
	}
	r.data[r.index(offset)] = uint8(val)
}

// Bytes returns a copy of the RAM contents.
func (r *SharedRAM) Bytes() []byte {
	out := make([]byte, len(r.data))
	copy(out, r.data)
	return out
}

// Load copies data into the RAM.
func (r *SharedRAM) Load(data []byte) {
	copy(r.data, data)
}

// Clear zeroes the RAM.
func (r *SharedRAM) Clear() {
	clear(r.data)
}
