// Command c8vm-term runs programs in a terminal instead of a window.
// The display is rendered with ANSI half-block characters and keypad input
// is read from raw stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/hexaflex/c8vm/cpu"
)

// frameTime is the duration of a single 60 Hz frame.
const frameTime = time.Second / 60

// Config defines program configuration.
type Config struct {
	Program      string // Path to the program image to load.
	Instructions int    // Instructions executed per 60 Hz frame.
	HoldFrames   int    // Frames a key stays pressed after a read byte.
	Debug        bool   // Enable debug log output.
}

func main() {
	config := parseArgs()

	cfg := log.DefaultConfig()
	if config.Debug {
		cfg.Level = log.DebugLevel
	}
	logger := log.NewWithConfig(cfg)

	if err := run(app.Context(), config, logger); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func parseArgs() *Config {
	var c Config
	c.Instructions = 11
	c.HoldFrames = 6

	flag.Usage = func() {
		fmt.Printf("%s [options] <program image>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.Instructions, "ipf", c.Instructions, "Instructions executed per frame.")
	flag.IntVar(&c.HoldFrames, "hold", c.HoldFrames, "Frames a key is held after a keypress.")
	flag.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug log output.")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	c.Program = flag.Arg(0)
	return &c
}

func run(ctx context.Context, config *Config, logger *log.Logger) error {
	program, err := os.ReadFile(config.Program)
	if err != nil {
		return err
	}

	machine, err := cpu.New(program, logger, nil)
	if err != nil {
		return err
	}

	if err := enterRawTerm(); err != nil {
		return err
	}
	defer exitRawTerm()

	input := newInput(config.HoldFrames)
	var wasAudible bool

	for ctx.Err() == nil {
		start := time.Now()

		quit, err := input.poll()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		machine.SetKeys(input.snapshot())
		machine.TickTimers()

		if err := machine.Execute(config.Instructions); err != nil {
			return err
		}

		if machine.Display().Dirty() {
			render(machine.Display())
			machine.Display().ClearDirty()
		}

		// Terminals have no tone generator; ring the bell once per
		// audible period instead.
		audible := machine.SoundTimer() > 0
		if audible && !wasAudible {
			os.Stdout.WriteString("\a")
		}
		wasAudible = audible

		if d := frameTime - time.Since(start); d > 0 {
			time.Sleep(d)
		}
	}

	return nil
}
