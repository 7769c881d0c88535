// Package image565 provides the 16-bit RGB565 pixel format used by the Push 3 display.
//
// Pixels are stored little-endian, two bytes per pixel. The Image type allows a
// byte stride larger than the pixel row, which maps directly onto the display's
// padded scanline layout.
package image565

import (
	"image"
	"image/color"
)

// RGB565 represents a 16-bit color with 5 bits red, 6 bits green and 5 bits blue,
// packed high-to-low as r<<11 | g<<5 | b.
type RGB565 uint16

// New packs 8-bit channels into an RGB565 value by truncating the low 3 bits of
// red and blue and the low 2 bits of green. The mapping is lossy and one-way.
func New(r, g, b uint8) RGB565 {
	return RGB565(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGBA converts the RGB565 color to standard RGBA.
// Channel values are expanded by bit replication so that full-scale 5/6-bit
// values map to full-scale 8-bit values.
func (c RGB565) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c>>11) & 0x1F
	g6 := uint32(c>>5) & 0x3F
	b5 := uint32(c) & 0x1F

	r8 := r5<<3 | r5>>2
	g8 := g6<<2 | g6>>4
	b8 := b5<<3 | b5>>2
	return r8 * 0x101, g8 * 0x101, b8 * 0x101, 0xFFFF
}

// toRGB565 converts any color.Color to RGB565.
func toRGB565(c color.Color) color.Color {
	if v, ok := c.(RGB565); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return New(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// RGB565Model converts colors to RGB565.
var RGB565Model = color.ModelFunc(toRGB565)

// Image is an in-memory RGB565 image with little-endian pixels.
// Stride is in bytes and may exceed Rect.Dx()*2; the extra bytes at the end of
// each row are padding and stay untouched by Set.
type Image struct {
	Pix    []byte          // Pixel data, 2 bytes per pixel plus row padding
	Stride int             // Bytes per row, including padding
	Rect   image.Rectangle // Image bounds
}

// NewImage creates a tightly packed RGB565 image with the specified bounds.
func NewImage(r image.Rectangle) *Image {
	return NewImageWithStride(r, r.Dx()*2)
}

// NewImageWithStride creates an RGB565 image whose rows are stride bytes long.
// The stride must cover at least the pixel data of one row.
func NewImageWithStride(r image.Rectangle, stride int) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r}
	}
	if stride < w*2 {
		panic("image565: stride smaller than pixel row")
	}
	return &Image{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return RGB565Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the RGB565 color of the pixel at (x, y).
func (p *Image) RGB565At(x, y int) RGB565 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return 0
	}
	n := p.PixOffset(x, y)
	return RGB565(uint16(p.Pix[n]) | uint16(p.Pix[n+1])<<8)
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB565(x, y, RGB565Model.Convert(c).(RGB565))
}

// SetRGB565 sets the RGB565 color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Image) SetRGB565(x, y int, c RGB565) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	n := p.PixOffset(x, y)
	p.Pix[n] = byte(c)
	p.Pix[n+1] = byte(c >> 8)
}

// PixOffset returns the byte offset of the first byte of the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}
