package render

import (
	"image"
	"image/color"
	"time"
)

// Frame is one materialized snapshot: a row-major RGBA buffer plus the
// timestamp it represents. The scheduler reuses a single frame between
// emissions, so sinks must finish with it before Write returns.
type Frame struct {
	Time   time.Time
	width  int
	height int
	pix    []uint8
}

// NewFrame allocates a transparent frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

// Pix returns the raw RGBA bytes, 4 per pixel, rows top to bottom.
func (f *Frame) Pix() []uint8 { return f.pix }

// Set writes one pixel. Coordinates are frame-local.
func (f *Frame) Set(x, y int, c color.NRGBA) {
	i := (y*f.width + x) * 4
	f.pix[i+0] = c.R
	f.pix[i+1] = c.G
	f.pix[i+2] = c.B
	f.pix[i+3] = c.A
}

// At reads one pixel back.
func (f *Frame) At(x, y int) color.NRGBA {
	i := (y*f.width + x) * 4
	return color.NRGBA{R: f.pix[i+0], G: f.pix[i+1], B: f.pix[i+2], A: f.pix[i+3]}
}

// ToImage copies the frame into a standard image for encoding.
func (f *Frame) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	copy(img.Pix, f.pix)
	return img
}
