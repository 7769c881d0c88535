// Package push3 drives the Ableton Push 3 display over USB.
//
// The display is a 960x160 RGB565 panel fed by a proprietary framed protocol
// on a bulk-out endpoint. See the examples for how to use this package.
package push3

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/push3/image565"
)

// Display geometry.
const (
	Width  = 960 // Width in pixels
	Height = 160 // Height in pixels

	// LinePadding is the number of zero bytes appended to every scanline.
	LinePadding = 128

	// Pitch is the byte length of one scanline, pixel data plus padding.
	Pitch = Width*2 + LinePadding

	// FrameLen is the byte length of one complete framebuffer.
	FrameLen = Height * Pitch
)

// USB identifiers of the Push 3.
const (
	VendorID  = 0x2982
	ProductID = 0x1969

	// BulkOutEndpoint receives all display traffic.
	BulkOutEndpoint = 0x01
)

var (
	// ErrHalted is returned by operations on a halted device handle.
	ErrHalted = errors.New("push3: halted")

	// ErrInvalidGeometry is returned when a source image does not match the
	// display raster exactly.
	ErrInvalidGeometry = fmt.Errorf("push3: source image must be exactly %dx%d", Width, Height)

	// ErrDeviceNotFound is returned when no Push 3 is connected.
	ErrDeviceNotFound = errors.New("push3: device not found")
)

// Opts is the configuration for the Push 3 display.
type Opts struct {
	// Progress, when non-nil, is called after each delivered payload chunk
	// with the number of payload bytes sent so far and the frame total.
	Progress func(sent, total int)
}

// Dev is the device handle for the Push 3 display.
//
// A Dev owns its transport and serializes frame transmissions: the protocol
// has no frame identifier, so at most one frame may be in flight per handle.
type Dev struct {
	mu       sync.Mutex
	t        Transport
	progress func(sent, total int)
	next     *image565.Image // compose buffer for partial draws
	halted   bool
}

// New creates a device handle on top of an open transport.
//
// opts can be nil to use defaults.
func New(t Transport, opts *Opts) (*Dev, error) {
	if t == nil {
		return nil, errors.New("push3: nil transport")
	}
	d := &Dev{t: t}
	if opts != nil {
		d.progress = opts.Progress
	}
	return d, nil
}

// NewUSB locates a Push 3 over USB and returns a device handle for it.
func NewUSB(opts *Opts) (*Dev, error) {
	t, err := OpenUSB()
	if err != nil {
		return nil, err
	}
	return New(t, opts)
}

var _ display.Drawer = &Dev{}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image565.RGB565Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// Draw draws an image onto the display.
//
// The device protocol only carries complete frames, so every call transmits a
// full frame. Partial draws are composed into an internal buffer that
// persists between calls; drawing into a sub-rectangle updates that region
// and retransmits the rest unchanged.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return ErrHalted
	}

	rect := image.Rect(0, 0, Width, Height)
	dst = dst.Intersect(rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: full-frame source already in display layout.
	if img, ok := src.(*image565.Image); ok {
		zeroPoint := image.Point{}
		if dst == rect && sp == zeroPoint && img.Rect == rect && img.Stride == Pitch {
			return SendFrame(d.t, img.Pix, d.progress)
		}
	}

	if d.next == nil {
		d.next = image565.NewImageWithStride(rect, Pitch)
	}
	draw.Draw(d.next, dst, src, sp, draw.Src)
	return SendFrame(d.t, d.next.Pix, d.progress)
}

// Write sends a raw pre-packed framebuffer to the display.
// The data must be exactly FrameLen bytes in the padded scanline layout.
func (d *Dev) Write(pixels []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return 0, ErrHalted
	}
	if len(pixels) != FrameLen {
		return 0, errors.New("push3: invalid buffer size")
	}
	if err := SendFrame(d.t, pixels, d.progress); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Halt blanks the display.
// After calling Halt, the handle rejects further frames until a new Dev is
// created.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return nil
	}
	d.halted = true
	return SendFrame(d.t, make([]byte, FrameLen), nil)
}

// Close halts the display and releases the transport.
func (d *Dev) Close() error {
	err := d.Halt()
	if cerr := d.t.Close(); err == nil {
		err = cerr
	}
	return err
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("push3.Dev{%dx%d}", Width, Height)
}
