// Package arch defines the CHIP-8 instruction set along with
// some related helper functions.
package arch

// Op identifies a single operation variant of the instruction set.
type Op int

// Known operations.
const (
	Unknown Op = iota

	CLS  // 00E0: clear the display.
	RET  // 00EE: return from subroutine.
	JMP  // 1NNN: jump to NNN.
	CALL // 2NNN: call subroutine at NNN.

	SKE   // 3XNN: skip next instruction if VX == NN.
	SKNE  // 4XNN: skip next instruction if VX != NN.
	SKRE  // 5XY0: skip next instruction if VX == VY.
	SKRNE // 9XY0: skip next instruction if VX != VY.

	LOAD // 6XNN: VX = NN.
	ADD  // 7XNN: VX += NN, no carry flag.
	MOVE // 8XY0: VX = VY.

	OR   // 8XY1: VX |= VY.
	AND  // 8XY2: VX &= VY.
	XOR  // 8XY3: VX ^= VY.
	ADDR // 8XY4: VX += VY, VF = carry.
	SUBR // 8XY5: VX -= VY, VF = no-borrow.
	SHR  // 8XY6: VX = VY >> 1, VF = shifted-out bit.
	RSUB // 8XY7: VX = VY - VX, VF = no-borrow.
	SHL  // 8XYE: VX = VY << 1, VF = shifted-out bit.

	LOADI // ANNN: I = NNN.
	JMPV0 // BNNN: jump to NNN + V0.
	RAND  // CXNN: VX = random byte & NN.
	DRAW  // DXYN: draw N-row sprite from [I] at (VX, VY).

	SKPR // EX9E: skip next instruction if key VX is pressed.
	SKNP // EXA1: skip next instruction if key VX is not pressed.

	MOVED   // FX07: VX = delay timer.
	WAITK   // FX0A: wait for a key release, store key in VX.
	LOADD   // FX15: delay timer = VX.
	LOADS   // FX18: sound timer = VX.
	ADDI    // FX1E: I += VX, wrapped to 12 bits.
	FONT    // FX29: I = font glyph address for digit VX.
	BCD     // FX33: store decimal digits of VX at [I..I+2].
	SAVE    // FX55: store V0..VX at [I], I += X+1.
	RESTORE // FX65: load V0..VX from [I], I += X+1.
)

// Name returns the mnemonic for the given operation.
// Returns false if the operation is not recognized.
func Name(op Op) (string, bool) {
	switch op {
	case CLS:
		return "CLS", true
	case RET:
		return "RET", true
	case JMP:
		return "JMP", true
	case CALL:
		return "CALL", true

	case SKE:
		return "SKE", true
	case SKNE:
		return "SKNE", true
	case SKRE:
		return "SKRE", true
	case SKRNE:
		return "SKRNE", true

	case LOAD:
		return "LOAD", true
	case ADD:
		return "ADD", true
	case MOVE:
		return "MOVE", true

	case OR:
		return "OR", true
	case AND:
		return "AND", true
	case XOR:
		return "XOR", true
	case ADDR:
		return "ADDR", true
	case SUBR:
		return "SUBR", true
	case SHR:
		return "SHR", true
	case RSUB:
		return "RSUB", true
	case SHL:
		return "SHL", true

	case LOADI:
		return "LOADI", true
	case JMPV0:
		return "JMPV0", true
	case RAND:
		return "RAND", true
	case DRAW:
		return "DRAW", true

	case SKPR:
		return "SKPR", true
	case SKNP:
		return "SKNP", true

	case MOVED:
		return "MOVED", true
	case WAITK:
		return "WAITK", true
	case LOADD:
		return "LOADD", true
	case LOADS:
		return "LOADS", true
	case ADDI:
		return "ADDI", true
	case FONT:
		return "FONT", true
	case BCD:
		return "BCD", true
	case SAVE:
		return "SAVE", true
	case RESTORE:
		return "RESTORE", true
	}

	return "", false
}
