// Package keypad implements the 16-key hexadecimal keypad.
package keypad

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/c8vm/cpu"
)

// mapping maps physical keys to logical keypad values, using the
// conventional 4x4 block on the left side of a QWERTY layout:
//
//	1 2 3 4        1 2 3 C
//	q w e r   ->   4 5 6 D
//	a s d f        7 8 9 E
//	z x c v        A 0 B F
var mapping = map[glfw.Key]byte{
	glfw.Key1: 0x1,
	glfw.Key2: 0x2,
	glfw.Key3: 0x3,
	glfw.Key4: 0xc,
	glfw.KeyQ: 0x4,
	glfw.KeyW: 0x5,
	glfw.KeyE: 0x6,
	glfw.KeyR: 0xd,
	glfw.KeyA: 0x7,
	glfw.KeyS: 0x8,
	glfw.KeyD: 0x9,
	glfw.KeyF: 0xe,
	glfw.KeyZ: 0xa,
	glfw.KeyX: 0x0,
	glfw.KeyC: 0xb,
	glfw.KeyV: 0xf,
}

// Device tracks the raw pressed state of the 16 logical keys. Edge
// detection between frames is the interpreter's business; the device only
// reports the latest state.
type Device struct {
	state [cpu.NumKeys]bool
}

// New creates a new device.
func New() *Device {
	return &Device{}
}

// HandleKey updates key state from a keyboard event. Unmapped keys and
// repeat events are ignored.
func (d *Device) HandleKey(key glfw.Key, action glfw.Action) {
	value, ok := mapping[key]
	if !ok {
		return
	}

	switch action {
	case glfw.Press:
		d.state[value] = true
	case glfw.Release:
		d.state[value] = false
	}
}

// Snapshot returns the current pressed state of all keys.
func (d *Device) Snapshot() [cpu.NumKeys]bool {
	return d.state
}

// Reset releases all keys.
func (d *Device) Reset() {
	d.state = [cpu.NumKeys]bool{}
}
