package push3

import (
	"image"

	"periph.io/x/devices/v3/push3/image565"
)

// Framebuffer allocates an empty full-frame image in the display's padded
// scanline layout. Its Pix field can be passed to SendFrame or Dev.Write
// without any conversion.
func Framebuffer() *image565.Image {
	return image565.NewImageWithStride(image.Rect(0, 0, Width, Height), Pitch)
}

// Encode converts a source image into the display's framebuffer layout: for
// each scanline, Width little-endian RGB565 pixels followed by LinePadding
// zero bytes. The result is always exactly FrameLen bytes.
//
// The source must already be sized to the display raster; any other bounds
// fail with ErrInvalidGeometry. Scaling and color-space handling are up to
// the caller.
func Encode(src image.Image) ([]byte, error) {
	b := src.Bounds()
	if b.Dx() != Width || b.Dy() != Height {
		return nil, ErrInvalidGeometry
	}

	// Fast path: source already in display layout.
	if img, ok := src.(*image565.Image); ok && img.Stride == Pitch && len(img.Pix) == FrameLen {
		out := make([]byte, FrameLen)
		copy(out, img.Pix)
		return out, nil
	}

	fb := Framebuffer()
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			fb.SetRGB565(x, y, image565.New(uint8(r>>8), uint8(g>>8), uint8(bl>>8)))
		}
	}
	return fb.Pix, nil
}
