package main

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"github.com/hexaflex/c8vm/cpu"
)

func TestExecuteFrame(t *testing.T) {
	//   LOAD V0, $01
	//   JMP  0x200

	c := newTestController(t, 0x60, 0x01, 0x12, 0x00)
	c.Start()

	assert.NoError(t, c.ExecuteFrame(11))
	assert.True(t, c.Running())
	assert.Equal(t, uint64(11), c.cycleCount)
}

func TestExecuteFrameFaultMidBudget(t *testing.T) {
	// The second step underflows the call stack. Execution pauses and only
	// the completed step counts towards the frequency readout.
	//   LOAD V0, $01
	//   RET

	c := newTestController(t, 0x60, 0x01, 0x00, 0xee)
	c.Start()

	assert.Error(t, c.ExecuteFrame(11))
	assert.False(t, c.Running())
	assert.Equal(t, uint64(1), c.cycleCount)
}

func TestStepFault(t *testing.T) {
	//   RET

	c := newTestController(t, 0x00, 0xee)
	c.Start()

	assert.Error(t, c.Step())
	assert.False(t, c.Running())
	assert.Equal(t, uint64(0), c.cycleCount)
}

// newTestController creates a controller around a machine loaded with the
// given program bytes.
func newTestController(t *testing.T, program ...byte) *Controller {
	t.Helper()

	machine, err := cpu.New(program, log.NewTestLogger(t), nil)
	assert.NoError(t, err)

	c := NewController(log.NewTestLogger(t), nil)
	c.machine = machine
	return c
}
