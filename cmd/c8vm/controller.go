package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"

	"github.com/hexaflex/c8vm/cpu"
)

// Controller controls the execution of an interpreter session.
type Controller struct {
	machine    *cpu.CPU
	logger     *log.Logger
	trace      cpu.TraceFunc
	start      time.Time
	cycleCount uint64
	running    bool
}

// NewController creates a new controller.
// Optionally with the given debug trace handler.
func NewController(logger *log.Logger, trace cpu.TraceFunc) *Controller {
	return &Controller{
		logger: logger,
		trace:  trace,
	}
}

// Load reads the program image at the given path and starts a fresh
// interpreter session for it. Any prior session state is discarded.
func (c *Controller) Load(path string) error {
	program, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %q", path)
	}

	machine, err := cpu.New(program, c.logger, c.trace)
	if err != nil {
		return errors.Wrapf(err, "failed to load %q", path)
	}

	c.machine = machine
	c.cycleCount = 0
	c.start = time.Now()
	return nil
}

// Machine returns the current interpreter session.
func (c *Controller) Machine() *cpu.CPU {
	return c.machine
}

// Running returns true if the interpreter is currently running.
func (c *Controller) Running() bool {
	return c.running
}

// Frequency returns the current emulated clock frequency in herz.
func (c *Controller) Frequency() float64 {
	if !c.running {
		return 0
	}
	return float64(c.cycleCount) / time.Since(c.start).Seconds()
}

// ToggleRun starts or stops program execution.
func (c *Controller) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *Controller) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *Controller) Stop() {
	c.setRunning(false)
}

// Step performs a single execution step.
func (c *Controller) Step() error {
	if c.machine == nil {
		return nil
	}

	if err := c.machine.Execute(1); err != nil {
		c.running = false
		return err
	}

	c.cycleCount++
	return nil
}

// ExecuteFrame consumes one frame's instruction budget.
// Execution is paused when the interpreter reports an error; only the
// steps that completed count towards the frequency readout.
func (c *Controller) ExecuteFrame(n int) error {
	if c.machine == nil {
		return nil
	}

	for ; n > 0; n-- {
		if err := c.machine.Execute(1); err != nil {
			c.running = false
			return err
		}
		c.cycleCount++
	}
	return nil
}

// setRunning determines if the interpreter is running or is paused.
func (c *Controller) setRunning(v bool) {
	c.running = v
	c.start = time.Now()
	c.cycleCount = 0
}
