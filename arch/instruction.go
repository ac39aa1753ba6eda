package arch

import "fmt"

// Instruction defines a decoded instruction word.
type Instruction struct {
	Addr uint16 // Address the word was fetched from.
	Word uint16 // Raw instruction word.
	Op   Op     // Decoded operation variant.
	X    byte   // Register selector from the second nibble.
	Y    byte   // Register selector from the third nibble.
	N    byte   // Low nibble.
	NN   byte   // Low byte.
	NNN  uint16 // Low 12 bits.
}

// Decode decodes the given instruction word, fetched from the given address.
// All operand fields are extracted regardless of the operation; undecodable
// words yield Unknown.
func Decode(addr, word uint16) Instruction {
	return Instruction{
		Addr: addr,
		Word: word,
		Op:   opcode(word),
		X:    byte(word >> 8 & 0xf),
		Y:    byte(word >> 4 & 0xf),
		N:    byte(word & 0xf),
		NN:   byte(word),
		NNN:  word & 0xfff,
	}
}

// opcode maps an instruction word to its operation variant.
func opcode(word uint16) Op {
	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00e0:
			return CLS
		case 0x00ee:
			return RET
		}
	case 0x1:
		return JMP
	case 0x2:
		return CALL
	case 0x3:
		return SKE
	case 0x4:
		return SKNE
	case 0x5:
		if word&0xf == 0 {
			return SKRE
		}
	case 0x6:
		return LOAD
	case 0x7:
		return ADD
	case 0x8:
		switch word & 0xf {
		case 0x0:
			return MOVE
		case 0x1:
			return OR
		case 0x2:
			return AND
		case 0x3:
			return XOR
		case 0x4:
			return ADDR
		case 0x5:
			return SUBR
		case 0x6:
			return SHR
		case 0x7:
			return RSUB
		case 0xe:
			return SHL
		}
	case 0x9:
		if word&0xf == 0 {
			return SKRNE
		}
	case 0xa:
		return LOADI
	case 0xb:
		return JMPV0
	case 0xc:
		return RAND
	case 0xd:
		return DRAW
	case 0xe:
		switch word & 0xff {
		case 0x9e:
			return SKPR
		case 0xa1:
			return SKNP
		}
	case 0xf:
		switch word & 0xff {
		case 0x07:
			return MOVED
		case 0x0a:
			return WAITK
		case 0x15:
			return LOADD
		case 0x18:
			return LOADS
		case 0x1e:
			return ADDI
		case 0x29:
			return FONT
		case 0x33:
			return BCD
		case 0x55:
			return SAVE
		case 0x65:
			return RESTORE
		}
	}
	return Unknown
}

// String returns a disassembled representation of the instruction,
// suitable for trace output.
func (i Instruction) String() string {
	name, ok := Name(i.Op)
	if !ok {
		return fmt.Sprintf("???? %04x", i.Word)
	}

	switch i.Op {
	case CLS, RET:
		return name
	case JMP, CALL, LOADI, JMPV0:
		return fmt.Sprintf("%s 0x%03x", name, i.NNN)
	case SKE, SKNE, LOAD, ADD, RAND:
		return fmt.Sprintf("%s V%X, 0x%02x", name, i.X, i.NN)
	case SKRE, SKRNE, MOVE, OR, AND, XOR, ADDR, SUBR, SHR, RSUB, SHL:
		return fmt.Sprintf("%s V%X, V%X", name, i.X, i.Y)
	case DRAW:
		return fmt.Sprintf("%s V%X, V%X, %d", name, i.X, i.Y, i.N)
	}

	// Remaining operations take a single VX operand.
	return fmt.Sprintf("%s V%X", name, i.X)
}
