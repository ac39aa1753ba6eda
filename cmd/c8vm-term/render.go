package main

import (
	"os"
	"strings"

	"github.com/hexaflex/c8vm/cpu"
)

// render draws the display bitmap with half-block characters, packing two
// pixel rows into each terminal line.
func render(d *cpu.Display) {
	var sb strings.Builder
	sb.Grow(cpu.DisplayWidth*cpu.DisplayHeight + 64)

	// Home the cursor instead of clearing to avoid flicker.
	sb.WriteString("\x1b[H")

	for y := 0; y < cpu.DisplayHeight; y += 2 {
		for x := 0; x < cpu.DisplayWidth; x++ {
			top := d.Pixel(x, y) == 1
			bottom := d.Pixel(x, y+1) == 1

			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteString("\r\n")
	}

	os.Stdout.WriteString(sb.String())
}
