package cpu

// Memory layout constants.
const (
	MemoryCapacity = 0x1000 // Total memory capacity in bytes.
	FontStart      = 0x050  // Load address of the builtin font table.
	ProgramStart   = 0x200  // Load address for program images.
	GlyphSize      = 5      // Size of a single font glyph in bytes.
)

// Memory defines the system's memory bank. Addresses wrap to the
// 12-bit address space.
type Memory []byte

// U8 returns the byte at the given address.
func (m Memory) U8(addr uint16) byte {
	return m[addr&0x0fff]
}

// SetU8 sets the byte at the given address.
func (m Memory) SetU8(addr uint16, value byte) {
	m[addr&0x0fff] = value
}

// U16 returns the big-endian 16-bit value at the given address.
func (m Memory) U16(addr uint16) uint16 {
	return uint16(m.U8(addr))<<8 | uint16(m.U8(addr+1))
}

// Write writes len(p) bytes from p into memory, starting at the given address.
func (m Memory) Write(addr uint16, p []byte) {
	copy(m[addr:], p)
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m Memory) Read(addr uint16, p []byte) {
	copy(p, m[addr:])
}

// fontTable holds the bitmap glyphs for the hexadecimal digits 0-F.
// FX29 expects these exact values at FontStart.
var fontTable = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}
