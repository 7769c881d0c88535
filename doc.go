// Package push3 drives the Ableton Push 3 display over USB.
//
// The Push 3 carries a 960x160 pixel RGB565 display fed over a USB bulk
// endpoint with a proprietary framed protocol. This driver implements the
// display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 960x160 pixels, 16-bit RGB565 color, little-endian on the wire
// - Scanlines padded to a fixed 2048-byte pitch (128 zero bytes per line)
// - Frames delivered as a 16-byte header plus a masked 327,680-byte payload
// - Payload split into 16,384-byte chunks, 20 per frame
// - Fire-and-forget: the device sends no acknowledgements
//
// The payload mask is a 4-byte repeating XOR pattern required by the device's
// receive logic. It is a protocol constant, not an encryption scheme.
//
// # Basic Usage
//
// Example of displaying an image:
//
//	package main
//
//	import (
//		"image"
//		"log"
//
//		"periph.io/x/devices/v3/push3"
//		"periph.io/x/devices/v3/push3/image565"
//	)
//
//	func main() {
//		dev, err := push3.NewUSB(nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Close()
//
//		// Compose a frame in the display's native format.
//		img := push3.Framebuffer()
//		for y := 0; y < 160; y++ {
//			for x := 0; x < 960; x++ {
//				img.SetRGB565(x, y, image565.New(uint8(x*255/960), 0, uint8(y*255/160)))
//			}
//		}
//
//		if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// Any image.Image can be drawn; sources in other color models are converted
// through image565.RGB565Model. Sources must match the display raster; use
// golang.org/x/image/draw to scale beforehand.
//
// # Stateless Pipeline
//
// The frame encoding pipeline is exposed as pure functions so it can be
// exercised without hardware:
//
//	fb, err := push3.Encode(img)          // padded RGB565 framebuffer
//	err = push3.SendFrame(t, fb, nil)     // mask, frame, chunk, write
//
// Transport is a small interface; the virtual subpackage provides an
// in-memory implementation that decodes frames back into images, which the
// driver's own tests use in place of a USB stack.
//
// # Error Handling
//
// A frame is atomic: if any transport write fails, no further chunks are
// attempted and SendFrame returns a *WriteError carrying the failed stage and
// the payload bytes delivered so far. The device only updates the panel on
// full receipt, so a failed frame leaves the previous image showing. There is
// no retry at this layer; callers re-encode and resend.
//
// # Related Hardware Surfaces
//
// The display shares the device with a MIDI control surface. The midi
// subpackage covers LED control and the user-mode handshake; the render
// subpackage composes text and status pages sized for this display.
package push3
