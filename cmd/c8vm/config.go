package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Program      string // Path to the program image to load.
	ScaleFactor  int    // Amount by which each emulated pixel is scaled.
	Instructions int    // Instructions executed per 60 Hz frame.
	Fullscreen   bool   // Run in fullscreen?
	PrintTrace   bool   // Print instruction trace data?
	Debug        bool   // Enable debug log output?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the
// program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 16
	c.Instructions = 11

	flag.Usage = func() {
		fmt.Printf("%s [options] <program image>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.IntVar(&c.Instructions, "ipf", c.Instructions, "Instructions executed per frame.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data.")
	flag.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug log output.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	c.Program = flag.Arg(0)
	return &c
}
