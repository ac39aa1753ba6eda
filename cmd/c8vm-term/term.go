package main

import (
	"os"

	"golang.org/x/sys/unix"
)

var termRestore *unix.Termios

// enterRawTerm puts the terminal into raw, non-blocking mode and prepares
// the screen for rendering.
func enterRawTerm() error {
	termios, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), unix.TCGETS)
	if err != nil {
		return err
	}

	saved := *termios
	termRestore = &saved

	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB
	termios.Cflag |= unix.CS8

	// Non-blocking reads: poll returns immediately when no input is pending.
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, termios); err != nil {
		return err
	}

	// Clear the screen and hide the cursor.
	os.Stdout.WriteString("\x1b[2J\x1b[?25l")
	return nil
}

// exitRawTerm restores the terminal to its previous state.
func exitRawTerm() {
	os.Stdout.WriteString("\x1b[?25h\x1b[0m\n")

	if termRestore != nil {
		unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, termRestore)
	}
}
