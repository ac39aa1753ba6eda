package main

import (
	"os"
	"runtime"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	config := parseArgs()

	app := NewApp(config)
	if err := app.Run(); err != nil {
		app.logger.Error(err.Error())
		os.Exit(1)
	}
}
