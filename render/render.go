// Package render composes text and status pages sized for the Push 3 display.
//
// Pages are drawn into the display's native image format, ready to hand to
// push3.Dev.Draw or push3.Encode. Text uses the Go Regular typeface from
// golang.org/x/image.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"periph.io/x/devices/v3/push3"
	"periph.io/x/devices/v3/push3/image565"
)

// Palette used by the status pages.
var (
	Black     = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	White     = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	Blue      = color.RGBA{0x00, 0x64, 0xFF, 0xFF}
	Green     = color.RGBA{0x00, 0xFF, 0x64, 0xFF}
	Red       = color.RGBA{0xFF, 0x32, 0x32, 0xFF}
	Yellow    = color.RGBA{0xFF, 0xFF, 0x00, 0xFF}
	Gray      = color.RGBA{0x80, 0x80, 0x80, 0xFF}
	DarkGray  = color.RGBA{0x40, 0x40, 0x40, 0xFF}
	LightBlue = color.RGBA{0x64, 0x96, 0xFF, 0xFF}
	Orange    = color.RGBA{0xFF, 0xA5, 0x00, 0xFF}
	Cyan      = color.RGBA{0x00, 0xFF, 0xFF, 0xFF}
)

// Renderer draws pages for the display. It is safe to reuse across pages but
// not for concurrent use.
type Renderer struct {
	small  font.Face
	medium font.Face
	large  font.Face
	huge   font.Face
}

// New creates a renderer with the Go Regular typeface at the page font sizes.
func New() (*Renderer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}

	r := &Renderer{}
	for _, s := range []struct {
		face *font.Face
		size float64
	}{
		{&r.small, 12},
		{&r.medium, 16},
		{&r.large, 24},
		{&r.huge, 32},
	} {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    s.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, err
		}
		*s.face = face
	}
	return r, nil
}

// newPage allocates a full-frame image filled with the background color.
func newPage(background color.Color) *image565.Image {
	img := push3.Framebuffer()
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return img
}

// text draws s with its top-left corner at (x, y).
func (r *Renderer) text(dst draw.Image, x, y int, face font.Face, c color.Color, s string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}

// fillRect fills the rectangle with a solid color.
func fillRect(dst draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// hline draws a 1-pixel horizontal line from (x0, y) to (x1, y).
func hline(dst draw.Image, x0, x1, y int, c color.Color) {
	fillRect(dst, image.Rect(x0, y, x1, y+1), c)
}

// TextPage lays out lines of text evenly over the page. colors may be nil for
// all-white text, or shorter than lines; missing entries default to white.
// The font size shrinks for long lines so they stay on screen.
func (r *Renderer) TextPage(lines []string, colors []color.Color) *image565.Image {
	img := newPage(Black)
	if len(lines) == 0 {
		return img
	}

	lineHeight := push3.Height / len(lines)
	for i, line := range lines {
		c := color.Color(White)
		if i < len(colors) && colors[i] != nil {
			c = colors[i]
		}

		face := r.large
		switch {
		case len(line) > 50:
			face = r.small
		case len(line) > 30:
			face = r.medium
		}

		r.text(img, 10, i*lineHeight+10, face, c, line)
	}
	return img
}
