package cpu

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display defines the monochrome display bitmap. Each cell holds 0 or 1.
//
// The dirty flag is set whenever the bitmap changes and is cleared only by
// the rendering collaborator through ClearDirty. This is the sole hand-off
// point between the interpreter and the renderer.
type Display struct {
	pixels [DisplayWidth * DisplayHeight]byte
	dirty  bool
}

// Pixels returns the bitmap as a flat, row-major buffer of
// DisplayWidth*DisplayHeight cells.
func (d *Display) Pixels() []byte {
	return d.pixels[:]
}

// Pixel returns the state of the pixel at the given coordinate.
func (d *Display) Pixel(x, y int) byte {
	return d.pixels[y*DisplayWidth+x]
}

// Dirty returns true if the bitmap changed since the last call to ClearDirty.
func (d *Display) Dirty() bool {
	return d.dirty
}

// ClearDirty marks the bitmap as consumed by the renderer.
func (d *Display) ClearDirty() {
	d.dirty = false
}

// clear switches all pixels off.
func (d *Display) clear() {
	for i := range d.pixels {
		d.pixels[i] = 0
	}
	d.dirty = true
}

// draw XOR-composites an 8-pixel-wide, n-row sprite read from mem at addr
// onto the bitmap at origin (x, y). The origin wraps around the display
// edges; sprite rows and columns falling outside the display are clipped.
// Returns 1 if any toggled pixel was previously on.
func (d *Display) draw(mem Memory, addr uint16, x, y, n byte) byte {
	ox := int(x) % DisplayWidth
	oy := int(y) % DisplayHeight

	rows := int(n)
	if rows > DisplayHeight-oy {
		rows = DisplayHeight - oy
	}
	cols := 8
	if cols > DisplayWidth-ox {
		cols = DisplayWidth - ox
	}

	var collision byte
	for row := 0; row < rows; row++ {
		sprite := mem.U8(addr + uint16(row))
		base := (oy+row)*DisplayWidth + ox

		for col := 0; col < cols; col++ {
			if sprite>>(7-col)&1 == 0 {
				continue
			}
			collision |= d.pixels[base+col]
			d.pixels[base+col] ^= 1
		}
	}

	d.dirty = true
	return collision
}
