// Package cpu implements the CHIP-8 interpreter core.
package cpu

import (
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/hexaflex/c8vm/arch"
)

// NumKeys is the number of logical keypad keys.
const NumKeys = 16

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*arch.Instruction)

// CPU implements the interpreter runtime. It owns the complete machine
// state and is mutated exclusively through Step, Execute, TickTimers and
// SetKeys, invoked synchronously by a single driver.
type CPU struct {
	memory   Memory        // System memory.
	display  Display       // Display bitmap.
	stack    []uint16      // Subroutine return addresses.
	rng      *rand.Rand    // Random number generator for RAND.
	trace    TraceFunc     // Handler for debug trace output.
	logger   *log.Logger   // Diagnostics sink.
	v        [16]byte      // General purpose registers V0-VF.
	keys     [NumKeys]bool // Current-frame key state.
	prevKeys [NumKeys]bool // Previous-frame key state.
	i        uint16        // Index register.
	pc       uint16        // Program counter.
	delay    byte          // Delay timer.
	sound    byte          // Sound timer.
}

// New creates a new CPU with the given program image loaded at ProgramStart
// and the builtin font table at FontStart. Optionally with the given debug
// trace handler.
//
// Returns ErrProgramTooLarge if the image does not fit in memory.
func New(program []byte, logger *log.Logger, trace TraceFunc) (*CPU, error) {
	if len(program) > MemoryCapacity-ProgramStart {
		return nil, ErrProgramTooLarge
	}

	if trace == nil {
		trace = func(*arch.Instruction) { /* nop */ }
	}

	c := &CPU{
		memory: make(Memory, MemoryCapacity),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		trace:  trace,
		logger: logger,
		pc:     ProgramStart,
	}

	c.memory.Write(FontStart, fontTable[:])
	c.memory.Write(ProgramStart, program)
	return c, nil
}

// Memory returns the cpu's internal memory bank.
func (c *CPU) Memory() Memory {
	return c.memory
}

// Display returns the cpu's display bitmap.
func (c *CPU) Display() *Display {
	return &c.display
}

// DelayTimer returns the current delay timer value.
func (c *CPU) DelayTimer() byte {
	return c.delay
}

// SoundTimer returns the current sound timer value.
// Sound is audible while the value is non-zero.
func (c *CPU) SoundTimer() byte {
	return c.sound
}

// TickTimers decrements the delay- and sound timers by one, flooring at
// zero. The driver calls this once per intended 60 Hz tick.
func (c *CPU) TickTimers() {
	if c.delay > 0 {
		c.delay--
	}
	if c.sound > 0 {
		c.sound--
	}
}

// SetKeys replaces the current-frame key state with the given snapshot.
// The prior current state becomes the previous-frame state, which is what
// WAITK consults for release edges.
func (c *CPU) SetKeys(keys [NumKeys]bool) {
	c.prevKeys = c.keys
	c.keys = keys
}

// Execute performs exactly n execution steps in sequence. It never
// suspends for real time; pacing is the caller's responsibility.
//
// Execution stops early only on a stack underflow, which is returned as an
// *Error. Unknown opcodes are reported and consumed as no-ops.
func (c *CPU) Execute(n int) error {
	for ; n > 0; n-- {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step performs a single fetch-decode-execute step.
func (c *CPU) Step() error {
	in := arch.Decode(c.pc, c.memory.U16(c.pc))
	c.pc += 2

	c.trace(&in)

	switch in.Op {
	case arch.Unknown:
		c.logger.Warn("unknown opcode",
			log.Hex("address", in.Addr),
			log.Hex("word", in.Word))

	case arch.CLS:
		c.display.clear()
	case arch.RET:
		if len(c.stack) == 0 {
			c.logger.Error("stack underflow",
				log.Hex("address", in.Addr))
			return NewError(in, ErrStackUnderflow)
		}
		c.pc = c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]
	case arch.JMP:
		c.pc = in.NNN
	case arch.CALL:
		c.stack = append(c.stack, c.pc)
		c.pc = in.NNN

	case arch.SKE:
		if c.v[in.X] == in.NN {
			c.pc += 2
		}
	case arch.SKNE:
		if c.v[in.X] != in.NN {
			c.pc += 2
		}
	case arch.SKRE:
		if c.v[in.X] == c.v[in.Y] {
			c.pc += 2
		}
	case arch.SKRNE:
		if c.v[in.X] != c.v[in.Y] {
			c.pc += 2
		}

	case arch.LOAD:
		c.v[in.X] = in.NN
	case arch.ADD:
		c.v[in.X] += in.NN
	case arch.MOVE:
		c.v[in.X] = c.v[in.Y]

	// VF doubles as the flag output of the arithmetic-, shift- and draw
	// instructions below. The flag is always written after the result so
	// that X == 0xF leaves the flag, not the result, in VF.
	case arch.OR:
		c.v[in.X] |= c.v[in.Y]
		c.v[0xf] = 0
	case arch.AND:
		c.v[in.X] &= c.v[in.Y]
		c.v[0xf] = 0
	case arch.XOR:
		c.v[in.X] ^= c.v[in.Y]
		c.v[0xf] = 0
	case arch.ADDR:
		sum := uint16(c.v[in.X]) + uint16(c.v[in.Y])
		c.v[in.X] = byte(sum)
		c.v[0xf] = _bool(sum > 0xff)
	case arch.SUBR:
		vx, vy := c.v[in.X], c.v[in.Y]
		c.v[in.X] = vx - vy
		c.v[0xf] = _bool(vx >= vy)
	case arch.RSUB:
		vx, vy := c.v[in.X], c.v[in.Y]
		c.v[in.X] = vy - vx
		c.v[0xf] = _bool(vy >= vx)

	// The legacy shift quirk: VY is the source operand and VF receives
	// its pre-shift boundary bit.
	case arch.SHR:
		vy := c.v[in.Y]
		c.v[in.X] = vy >> 1
		c.v[0xf] = vy & 1
	case arch.SHL:
		vy := c.v[in.Y]
		c.v[in.X] = vy << 1
		c.v[0xf] = vy >> 7

	case arch.LOADI:
		c.i = in.NNN
	case arch.JMPV0:
		c.pc = in.NNN + uint16(c.v[0])
	case arch.RAND:
		c.v[in.X] = byte(c.rng.Intn(256)) & in.NN
	case arch.DRAW:
		collision := c.display.draw(c.memory, c.i, c.v[in.X], c.v[in.Y], in.N)
		c.v[0xf] = collision

	case arch.SKPR:
		if c.keys[c.v[in.X]&0xf] {
			c.pc += 2
		}
	case arch.SKNP:
		if !c.keys[c.v[in.X]&0xf] {
			c.pc += 2
		}

	case arch.MOVED:
		c.v[in.X] = c.delay
	case arch.WAITK:
		// Busy-wait via pc rewind: without a press-to-release edge the
		// same instruction is re-fetched on the next step. The driver's
		// loop cadence provides the retry interval.
		released := false
		for key := 0; key < NumKeys; key++ {
			if c.prevKeys[key] && !c.keys[key] {
				c.v[in.X] = byte(key)
				released = true
				break
			}
		}
		if !released {
			c.pc -= 2
		}
	case arch.LOADD:
		c.delay = c.v[in.X]
	case arch.LOADS:
		c.sound = c.v[in.X]

	case arch.ADDI:
		c.i = (c.i + uint16(c.v[in.X])) & 0x0fff
	case arch.FONT:
		c.i = FontStart + uint16(c.v[in.X])*GlyphSize
	case arch.BCD:
		vx := c.v[in.X]
		c.memory.SetU8(c.i, vx/100)
		c.memory.SetU8(c.i+1, vx/10%10)
		c.memory.SetU8(c.i+2, vx%10)
	case arch.SAVE:
		for j := uint16(0); j <= uint16(in.X); j++ {
			c.memory.SetU8(c.i+j, c.v[j])
		}
		c.i += uint16(in.X) + 1
	case arch.RESTORE:
		for j := uint16(0); j <= uint16(in.X); j++ {
			c.v[j] = c.memory.U8(c.i + j)
		}
		c.i += uint16(in.X) + 1
	}

	return nil
}

func _bool(v bool) byte {
	if v {
		return 1
	}
	return 0
}
