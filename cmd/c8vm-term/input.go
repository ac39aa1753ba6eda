package main

import (
	"io"
	"os"

	"github.com/hexaflex/c8vm/cpu"
)

// mapping maps input bytes to logical keypad values, using the same 4x4
// QWERTY block as the windowed driver.
var mapping = map[byte]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// input turns raw stdin bytes into keypad state. Terminals report
// keypresses but no releases, so every read byte holds its key for a fixed
// number of frames; the decay provides the release edges the interpreter's
// key-wait instruction needs.
type input struct {
	hold       [cpu.NumKeys]int
	holdFrames int
	buf        [64]byte
}

func newInput(holdFrames int) *input {
	return &input{holdFrames: holdFrames}
}

// poll consumes pending stdin bytes and ages held keys by one frame.
// Returns true if the user asked to quit (lone ESC byte).
func (in *input) poll() (quit bool, err error) {
	for i := range in.hold {
		if in.hold[i] > 0 {
			in.hold[i]--
		}
	}

	// With VMIN=0 an idle tty reads zero bytes, which Go reports as EOF.
	n, err := os.Stdin.Read(in.buf[:])
	if err != nil && err != io.EOF {
		return false, err
	}

	for _, b := range in.buf[:n] {
		if b == 0x1b && n == 1 {
			return true, nil
		}
		if value, ok := mapping[b]; ok {
			in.hold[value] = in.holdFrames
		}
	}

	return false, nil
}

// snapshot returns the current pressed state of all keys.
func (in *input) snapshot() [cpu.NumKeys]bool {
	var keys [cpu.NumKeys]bool
	for i, h := range in.hold {
		keys[i] = h > 0
	}
	return keys
}
