// Package virtual implements the receive side of the Push 3 display protocol.
//
// A Display mirrors the hardware's state machine: every frame starts with the
// constant 16-byte header, followed by the masked framebuffer delivered in
// order. Only complete frames become visible; short or failed frames leave
// the previous image in place, exactly like the device.
//
// It implements push3.Transport, so a push3.Dev can drive it in place of the
// USB stack. The driver's tests and the preview example are built on it.
package virtual

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"sync"

	"periph.io/x/devices/v3/push3"
	"periph.io/x/devices/v3/push3/image565"
)

// Display is an in-memory Push 3 display.
type Display struct {
	mu      sync.Mutex
	payload []byte          // nil while waiting for a header
	frame   *image565.Image // last complete frame, display layout
	frames  int
}

// New creates a virtual display waiting for its first frame.
func New() *Display {
	return &Display{}
}

var _ push3.Transport = &Display{}

// Write consumes one protocol write, either the frame header or a payload
// chunk. Malformed traffic fails the write, like a device that stops
// accepting bulk transfers.
func (d *Display) Write(endpoint byte, p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if endpoint != push3.BulkOutEndpoint {
		return fmt.Errorf("virtual: write to unknown endpoint 0x%02x", endpoint)
	}

	if d.payload == nil {
		if !bytes.Equal(p, push3.FrameHeader()) {
			return fmt.Errorf("virtual: expected frame header, got %d bytes", len(p))
		}
		d.payload = make([]byte, 0, push3.FrameLen)
		return nil
	}

	if len(p) == 0 || len(p) > push3.ChunkSize {
		return fmt.Errorf("virtual: chunk of %d bytes, want 1..%d", len(p), push3.ChunkSize)
	}
	if len(d.payload)+len(p) > push3.FrameLen {
		return fmt.Errorf("virtual: frame overflow at %d bytes", len(d.payload)+len(p))
	}
	d.payload = append(d.payload, p...)

	if len(d.payload) == push3.FrameLen {
		push3.Mask(d.payload)
		d.frame = &image565.Image{
			Pix:    d.payload,
			Stride: push3.Pitch,
			Rect:   image.Rect(0, 0, push3.Width, push3.Height),
		}
		d.frames++
		d.payload = nil
	}
	return nil
}

// Close implements push3.Transport. It discards any partially received frame.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.payload = nil
	return nil
}

// Frames returns the number of complete frames received.
func (d *Display) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Frame returns a copy of the last complete frame in display layout, or nil
// if no frame has been received yet. Mutating the copy does not affect what
// the display shows.
func (d *Display) Frame() *image565.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frame == nil {
		return nil
	}
	pix := make([]byte, len(d.frame.Pix))
	copy(pix, d.frame.Pix)
	return &image565.Image{Pix: pix, Stride: d.frame.Stride, Rect: d.frame.Rect}
}

// Image returns the last complete frame decoded to RGBA, or nil if no frame
// has been received yet.
func (d *Display) Image() *image.RGBA {
	f := d.Frame()
	if f == nil {
		return nil
	}
	out := image.NewRGBA(f.Rect)
	draw.Draw(out, f.Rect, f, f.Rect.Min, draw.Src)
	return out
}
