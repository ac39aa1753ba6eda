package cpu

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"github.com/hexaflex/c8vm/arch"
)

func TestNew(t *testing.T) {
	c := load(t, 0x1200)

	assert.Equal(t, uint16(ProgramStart), c.pc)
	assert.Equal(t, uint16(0), c.i)
	assert.Equal(t, 0, len(c.stack))
	assert.Equal(t, byte(0), c.delay)
	assert.Equal(t, byte(0), c.sound)
	assert.False(t, c.display.Dirty())

	// Font table at FontStart, program image at ProgramStart.
	assert.Equal(t, byte(0xf0), c.memory.U8(FontStart))
	assert.Equal(t, byte(0x80), c.memory.U8(FontStart+79))
	assert.Equal(t, byte(0x12), c.memory.U8(ProgramStart))

	for _, v := range c.v {
		assert.Equal(t, byte(0), v, "register not zeroed")
	}
}

func TestNewProgramTooLarge(t *testing.T) {
	program := make([]byte, MemoryCapacity-ProgramStart+1)
	_, err := New(program, log.NewTestLogger(t), nil)
	assert.True(t, errors.Is(err, ErrProgramTooLarge))

	// The largest image that still fits loads fine.
	_, err = New(program[1:], log.NewTestLogger(t), nil)
	assert.NoError(t, err)
}

func TestLOAD(t *testing.T) {
	//   LOAD V0, $7b

	c := run(t, 1, 0x607b)
	assert.Equal(t, byte(0x7b), c.v[0])
	assert.Equal(t, uint16(0x202), c.pc)
}

func TestADD(t *testing.T) {
	//   LOAD V0, $fe
	//    ADD V0, $03

	c := run(t, 2, 0x60fe, 0x7003)
	assert.Equal(t, byte(1), c.v[0])
	assert.Equal(t, byte(0), c.v[0xf], "ADD must not touch VF")
}

func TestMOVE(t *testing.T) {
	//   LOAD V5, $2a
	//   MOVE V1, V5

	c := run(t, 2, 0x652a, 0x8150)
	assert.Equal(t, byte(0x2a), c.v[1])
}

func TestORANDXORResetVF(t *testing.T) {
	//   LOAD V0, $0c  LOAD V1, $0a  OR   V0, V1
	c := run(t, 3, 0x600c, 0x610a, 0x8011)
	assert.Equal(t, byte(0x0e), c.v[0])
	assert.Equal(t, byte(0), c.v[0xf])

	//   LOAD V0, $0c  LOAD V1, $0a  AND  V0, V1
	c = run(t, 3, 0x600c, 0x610a, 0x8012)
	assert.Equal(t, byte(0x08), c.v[0])
	assert.Equal(t, byte(0), c.v[0xf])

	//   LOAD V0, $0c  LOAD V1, $0a  XOR  V0, V1
	c = run(t, 3, 0x600c, 0x610a, 0x8013)
	assert.Equal(t, byte(0x06), c.v[0])
	assert.Equal(t, byte(0), c.v[0xf])
}

func TestADDR(t *testing.T) {
	//   LOAD V0, $0a
	//   LOAD V1, $05
	//   ADDR V0, V1

	c := run(t, 3, 0x600a, 0x6105, 0x8014)
	assert.Equal(t, byte(15), c.v[0])
	assert.Equal(t, byte(0), c.v[0xf])
	assert.Equal(t, uint16(0x206), c.pc)
}

func TestADDRCarry(t *testing.T) {
	//   LOAD V0, $c8
	//   LOAD V1, $64
	//   ADDR V0, V1

	c := run(t, 3, 0x60c8, 0x6164, 0x8014)
	assert.Equal(t, byte(44), c.v[0])
	assert.Equal(t, byte(1), c.v[0xf])
}

func TestADDRFlagWrittenLast(t *testing.T) {
	// With X == F the flag must survive, not the sum.
	//   LOAD VF, $ff
	//   LOAD V1, $01
	//   ADDR VF, V1

	c := run(t, 3, 0x6fff, 0x6101, 0x8f14)
	assert.Equal(t, byte(1), c.v[0xf])
}

func TestSUBR(t *testing.T) {
	//   LOAD V0, $0a
	//   LOAD V1, $03
	//   SUBR V0, V1

	c := run(t, 3, 0x600a, 0x6103, 0x8015)
	assert.Equal(t, byte(7), c.v[0])
	assert.Equal(t, byte(1), c.v[0xf], "no borrow sets VF")
}

func TestSUBRBorrow(t *testing.T) {
	//   LOAD V0, $03
	//   LOAD V1, $0a
	//   SUBR V0, V1

	c := run(t, 3, 0x6003, 0x610a, 0x8015)
	assert.Equal(t, byte(249), c.v[0], "result wraps modulo 256")
	assert.Equal(t, byte(0), c.v[0xf])
}

func TestSUBREqualOperands(t *testing.T) {
	//   LOAD V0, $07
	//   LOAD V1, $07
	//   SUBR V0, V1

	c := run(t, 3, 0x6007, 0x6107, 0x8015)
	assert.Equal(t, byte(0), c.v[0])
	assert.Equal(t, byte(1), c.v[0xf], "equal minuend means no borrow")
}

func TestRSUB(t *testing.T) {
	//   LOAD V0, $03
	//   LOAD V1, $0a
	//   RSUB V0, V1

	c := run(t, 3, 0x6003, 0x610a, 0x8017)
	assert.Equal(t, byte(7), c.v[0])
	assert.Equal(t, byte(1), c.v[0xf])
}

func TestRSUBBorrow(t *testing.T) {
	//   LOAD V0, $0a
	//   LOAD V1, $03
	//   RSUB V0, V1

	c := run(t, 3, 0x600a, 0x6103, 0x8017)
	assert.Equal(t, byte(249), c.v[0])
	assert.Equal(t, byte(0), c.v[0xf])
}

func TestSHR(t *testing.T) {
	// VY is the shift source and VF receives its pre-shift bit 0.
	//   LOAD V1, $05
	//   SHR  V0, V1

	c := run(t, 2, 0x6105, 0x8016)
	assert.Equal(t, byte(2), c.v[0])
	assert.Equal(t, byte(1), c.v[0xf])
	assert.Equal(t, byte(5), c.v[1], "source register is left untouched")
}

func TestSHL(t *testing.T) {
	// VY is the shift source and VF receives its pre-shift bit 7.
	//   LOAD V1, $81
	//   SHL  V0, V1

	c := run(t, 2, 0x6181, 0x801e)
	assert.Equal(t, byte(2), c.v[0])
	assert.Equal(t, byte(1), c.v[0xf])
}

func TestSHLNoCarry(t *testing.T) {
	//   LOAD V1, $41
	//   SHL  V0, V1

	c := run(t, 2, 0x6141, 0x801e)
	assert.Equal(t, byte(0x82), c.v[0])
	assert.Equal(t, byte(0), c.v[0xf])
}

func TestJMP(t *testing.T) {
	//   JMP 0x300

	c := run(t, 1, 0x1300)
	assert.Equal(t, uint16(0x300), c.pc)
}

func TestJMPV0(t *testing.T) {
	//   LOAD  V0, $05
	//   JMPV0 0x300

	c := run(t, 2, 0x6005, 0xb300)
	assert.Equal(t, uint16(0x305), c.pc)
}

func TestCALLRET(t *testing.T) {
	//   0x200: CALL 0x204
	//   0x202: LOAD V1, $05   ; skipped by the call
	//   0x204: RET

	c := load(t, 0x2204, 0x6105, 0x00ee)

	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0x204), c.pc)
	assert.Equal(t, 1, len(c.stack))
	assert.Equal(t, uint16(0x202), c.stack[0])

	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0x202), c.pc)
	assert.Equal(t, 0, len(c.stack))
	assert.Equal(t, byte(0), c.v[1])
}

func TestRETUnderflow(t *testing.T) {
	//   RET  ; with an empty call stack

	c := load(t, 0x00ee)
	err := c.Execute(1)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	var cerr *Error
	assert.True(t, errors.As(err, &cerr))
	assert.Equal(t, uint16(0x200), cerr.Instruction.Addr)
}

func TestUnknownOpcodeIsConsumed(t *testing.T) {
	//   0x200: (undecodable)
	//   0x202: LOAD V0, $01

	c := load(t, 0xffff, 0x6001)
	assert.NoError(t, c.Execute(2))
	assert.Equal(t, byte(1), c.v[0])
	assert.Equal(t, uint16(0x204), c.pc)
}

func TestSKE(t *testing.T) {
	//   LOAD V0, $05
	//   SKE  V0, $05
	//   LOAD V1, $01   ; skipped

	c := run(t, 2, 0x6005, 0x3005, 0x6101)
	assert.Equal(t, uint16(0x206), c.pc)

	//   SKE V0, $06 does not skip
	c = run(t, 2, 0x6005, 0x3006)
	assert.Equal(t, uint16(0x204), c.pc)
}

func TestSKNE(t *testing.T) {
	c := run(t, 2, 0x6005, 0x4006)
	assert.Equal(t, uint16(0x206), c.pc)

	c = run(t, 2, 0x6005, 0x4005)
	assert.Equal(t, uint16(0x204), c.pc)
}

func TestSKRE(t *testing.T) {
	//   LOAD V0, $05
	//   LOAD V1, $05
	//   SKRE V0, V1

	c := run(t, 3, 0x6005, 0x6105, 0x5010)
	assert.Equal(t, uint16(0x208), c.pc)

	c = run(t, 3, 0x6005, 0x6106, 0x5010)
	assert.Equal(t, uint16(0x206), c.pc)
}

func TestSKRNE(t *testing.T) {
	c := run(t, 3, 0x6005, 0x6106, 0x9010)
	assert.Equal(t, uint16(0x208), c.pc)

	c = run(t, 3, 0x6005, 0x6105, 0x9010)
	assert.Equal(t, uint16(0x206), c.pc)
}

func TestLOADI(t *testing.T) {
	//   LOADI 0x300

	c := run(t, 1, 0xa300)
	assert.Equal(t, uint16(0x300), c.i)
}

func TestRAND(t *testing.T) {
	//   RAND V0, $0f

	c := load(t, 0xc00f)
	c.rng = rand.New(rand.NewSource(1))
	assert.NoError(t, c.Execute(1))
	assert.Equal(t, byte(0), c.v[0]&^0x0f, "result must be masked by NN")
}

func TestSKPR(t *testing.T) {
	//   LOAD V0, $04
	//   SKPR V0

	c := load(t, 0x6004, 0xe09e)
	var keys [NumKeys]bool
	keys[4] = true
	c.SetKeys(keys)

	assert.NoError(t, c.Execute(2))
	assert.Equal(t, uint16(0x206), c.pc)
}

func TestSKNP(t *testing.T) {
	//   LOAD V0, $04
	//   SKNP V0

	c := load(t, 0x6004, 0xe0a1)
	assert.NoError(t, c.Execute(2))
	assert.Equal(t, uint16(0x206), c.pc, "unpressed key skips")

	c = load(t, 0x6004, 0xe0a1)
	var keys [NumKeys]bool
	keys[4] = true
	c.SetKeys(keys)
	assert.NoError(t, c.Execute(2))
	assert.Equal(t, uint16(0x204), c.pc)
}

func TestWAITK(t *testing.T) {
	//   WAITK V3

	c := load(t, 0xf30a)

	// No edge: the instruction keeps re-fetching itself.
	assert.NoError(t, c.Execute(1))
	assert.Equal(t, uint16(0x200), c.pc)
	assert.Equal(t, byte(0), c.v[3])

	// A fresh press is not a release edge.
	var keys [NumKeys]bool
	keys[7] = true
	c.SetKeys(keys)
	assert.NoError(t, c.Execute(1))
	assert.Equal(t, uint16(0x200), c.pc)

	// Press-to-release transition between two snapshots completes the wait.
	c.SetKeys([NumKeys]bool{})
	assert.NoError(t, c.Execute(1))
	assert.Equal(t, uint16(0x202), c.pc)
	assert.Equal(t, byte(7), c.v[3])
}

func TestTimers(t *testing.T) {
	//   LOAD  V0, $02
	//   LOADD V0
	//   LOAD  V1, $01
	//   LOADS V1

	c := run(t, 4, 0x6002, 0xf015, 0x6101, 0xf118)
	assert.Equal(t, byte(2), c.DelayTimer())
	assert.Equal(t, byte(1), c.SoundTimer())

	c.TickTimers()
	assert.Equal(t, byte(1), c.DelayTimer())
	assert.Equal(t, byte(0), c.SoundTimer())

	// Timers floor at zero.
	c.TickTimers()
	c.TickTimers()
	assert.Equal(t, byte(0), c.DelayTimer())
	assert.Equal(t, byte(0), c.SoundTimer())
}

func TestMOVED(t *testing.T) {
	//   LOAD  V0, $30
	//   LOADD V0
	//   MOVED V1

	c := run(t, 3, 0x6030, 0xf015, 0xf107)
	assert.Equal(t, byte(0x30), c.v[1])
}

func TestADDI(t *testing.T) {
	//   LOADI 0xfff
	//   LOAD  V0, $02
	//   ADDI  V0

	c := run(t, 3, 0xafff, 0x6002, 0xf01e)
	assert.Equal(t, uint16(1), c.i, "index register wraps modulo 0x1000")
	assert.Equal(t, byte(0), c.v[0xf], "index overflow does not set VF")
}

func TestFONT(t *testing.T) {
	//   LOAD V0, $0a
	//   FONT V0

	c := run(t, 2, 0x600a, 0xf029)
	assert.Equal(t, uint16(FontStart+0xa*GlyphSize), c.i)

	// The glyph behind I is the 'A' bitmap.
	assert.Equal(t, byte(0xf0), c.memory.U8(c.i))
}

func TestBCD(t *testing.T) {
	//   LOAD  V0, $fe
	//   LOADI 0x300
	//   BCD   V0

	c := run(t, 3, 0x60fe, 0xa300, 0xf033)
	assert.Equal(t, byte(2), c.memory.U8(0x300))
	assert.Equal(t, byte(5), c.memory.U8(0x301))
	assert.Equal(t, byte(4), c.memory.U8(0x302))
	assert.Equal(t, uint16(0x300), c.i, "BCD leaves I unchanged")
}

func TestSAVE(t *testing.T) {
	//   LOAD  V0, $01
	//   LOAD  V1, $02
	//   LOAD  V2, $03
	//   LOADI 0x300
	//   SAVE  V2

	c := run(t, 5, 0x6001, 0x6102, 0x6203, 0xa300, 0xf255)
	assert.Equal(t, byte(1), c.memory.U8(0x300))
	assert.Equal(t, byte(2), c.memory.U8(0x301))
	assert.Equal(t, byte(3), c.memory.U8(0x302))
	assert.Equal(t, byte(0), c.memory.U8(0x303))
	assert.Equal(t, uint16(0x303), c.i)
}

func TestRESTORE(t *testing.T) {
	//   LOADI   0x300
	//   RESTORE V2

	c := load(t, 0xa300, 0xf265)
	c.memory.Write(0x300, []byte{9, 8, 7, 6})

	assert.NoError(t, c.Execute(2))
	assert.Equal(t, byte(9), c.v[0])
	assert.Equal(t, byte(8), c.v[1])
	assert.Equal(t, byte(7), c.v[2])
	assert.Equal(t, byte(0), c.v[3])
	assert.Equal(t, uint16(0x303), c.i)
}

func TestTrace(t *testing.T) {
	var traced int
	trace := func(*arch.Instruction) { traced++ }

	c, err := New(words(0x6001, 0x6102), log.NewTestLogger(t), trace)
	assert.NoError(t, err)
	assert.NoError(t, c.Execute(2))
	assert.Equal(t, 2, traced)
}

// load creates a CPU with the given instruction words as program image.
func load(t *testing.T, instructions ...uint16) *CPU {
	t.Helper()

	c, err := New(words(instructions...), log.NewTestLogger(t), nil)
	assert.NoError(t, err)
	return c
}

// run loads the given instruction words and executes the given number of steps.
func run(t *testing.T, steps int, instructions ...uint16) *CPU {
	t.Helper()

	c := load(t, instructions...)
	assert.NoError(t, c.Execute(steps))
	return c
}

// words encodes instruction words into a big-endian program image.
func words(instructions ...uint16) []byte {
	var program bytes.Buffer
	for _, w := range instructions {
		program.WriteByte(byte(w >> 8))
		program.WriteByte(byte(w))
	}
	return program.Bytes()
}
