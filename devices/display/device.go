// Package display renders the interpreter's monochrome display bitmap.
package display

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/cpu"
)

// Display dimensions in emulated pixels.
const (
	Width  = cpu.DisplayWidth
	Height = cpu.DisplayHeight
)

// Device defines all internal doodads for the display. It owns a single
// texture holding the bitmap and draws it as a fullscreen quad.
type Device struct {
	texels      [Width * Height]byte
	shader      uint32
	vao         uint32
	vbo         uint32
	texture     uint32
	initialized bool
}

// New creates a new device.
func New() *Device {
	return &Device{}
}

// Startup initializes device resources. It requires a current OpenGL context.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.texture = makeTexture()
	d.initialized = true

	uploadTexture(d.texture, Width, Height, d.texels[:])
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	d.initialized = false
	gl.DeleteTextures(1, &d.texture)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// Update uploads a new bitmap. Each cell in pixels holds 0 or 1, row-major,
// Width*Height cells.
func (d *Device) Update(pixels []byte) {
	if !d.initialized {
		return
	}

	// Expand the 0/1 cells to full byte range for the RED channel.
	for i, p := range pixels {
		d.texels[i] = p * 0xff
	}

	uploadTexture(d.texture, Width, Height, d.texels[:])
}

// Draw renders the display contents.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)
	gl.BindVertexArray(d.vao)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)

	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
