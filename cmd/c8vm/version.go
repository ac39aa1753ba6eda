package main

import (
	"fmt"

	"github.com/retroenv/retrogolib/buildinfo"
)

// AppName identifies this driver in window titles and version output.
const AppName = "c8vm"

// Set by the linker at build time.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Version returns program version information.
func Version() string {
	return fmt.Sprintf("%s %s", AppName, buildinfo.Version(version, commit, date))
}
