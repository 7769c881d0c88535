// Package image565 provides a 16-bit RGB565 image format for the Push 3 display.
//
// The Push 3 display expects pixels packed as 5 bits red, 6 bits green and
// 5 bits blue, serialized little-endian:
//
//	bit 15                               bit 0
//	| r4 r3 r2 r1 r0 | g5 g4 g3 g2 g1 g0 | b4 b3 b2 b1 b0 |
//	wire order: low byte first
//
// Byte layout example for a single red pixel (R=255, G=0, B=0 gives 0xF800):
//
//	Pix: 0x00 0xF8
//
// This package provides:
//
// - RGB565: a color type holding the packed 16-bit value
// - RGB565Model: a color model for converting standard Go colors to RGB565
// - Image: an image.Image implementation with a byte stride that may carry
//   trailing row padding, matching the display's scanline pitch
//
// Example usage:
//
//	// Create a 960x160 image
//	img := image565.NewImage(image.Rect(0, 0, 960, 160))
//
//	// Set a pixel
//	img.SetRGB565(10, 20, image565.New(255, 0, 0))
//
//	// Get a pixel
//	c := img.RGB565At(10, 20)
//	println(uint16(c)) // Output: 63488 (0xF800)
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image565.New(0, 0, 255)), image.Point{}, draw.Src)
package image565
