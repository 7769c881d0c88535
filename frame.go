package push3

import (
	"errors"
	"fmt"
)

// Frame protocol constants.
const (
	// HeaderLen is the byte length of the constant frame header.
	HeaderLen = 16

	// ChunkSize is the maximum number of payload bytes per transport write.
	ChunkSize = 16384
)

// frameHeader introduces every frame. The first 4 bytes are the magic marker;
// the remaining 12 bytes are reserved and zero in this protocol revision.
var frameHeader = [HeaderLen]byte{0xFF, 0xCC, 0xAA, 0x88}

// FrameHeader returns a copy of the 16-byte constant frame header.
func FrameHeader() []byte {
	h := frameHeader
	return h[:]
}

// StageHeader identifies the header write in a WriteError.
const StageHeader = -1

// WriteError reports a failed transport write during frame transmission.
//
// A frame is atomic from the device's point of view: on any write failure the
// remaining chunks are never attempted and the previously displayed frame
// stays on screen. BytesSent is diagnostic only; a failed frame must be
// re-encoded and resent from scratch.
type WriteError struct {
	Stage     int // StageHeader, or the zero-based index of the failed chunk
	BytesSent int // payload bytes delivered before the failure
	Err       error
}

func (e *WriteError) Error() string {
	if e.Stage == StageHeader {
		return fmt.Sprintf("push3: header write failed: %v", e.Err)
	}
	return fmt.Sprintf("push3: chunk %d write failed after %d bytes: %v", e.Stage, e.BytesSent, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// SendFrame transmits framebuffer to t as one complete frame: the constant
// header first, then the masked payload in ChunkSize slices, strictly in
// order. framebuffer must be exactly FrameLen bytes and is not modified.
//
// progress, when non-nil, is called after each delivered chunk with the
// payload bytes sent so far and the frame total.
func SendFrame(t Transport, framebuffer []byte, progress func(sent, total int)) error {
	if len(framebuffer) != FrameLen {
		return errors.New("push3: invalid framebuffer size")
	}
	buf := make([]byte, FrameLen)
	copy(buf, framebuffer)
	Mask(buf)
	return writeFrame(t, buf, progress)
}

// writeFrame writes the header and the already masked payload. The device's
// receive state machine expects the header before any payload bytes, and
// chunks in order; the first failed write aborts the frame.
func writeFrame(t Transport, payload []byte, progress func(sent, total int)) error {
	if err := t.Write(BulkOutEndpoint, FrameHeader()); err != nil {
		return &WriteError{Stage: StageHeader, Err: err}
	}

	total := len(payload)
	sent := 0
	for i := 0; sent < total; i++ {
		n := total - sent
		if n > ChunkSize {
			n = ChunkSize
		}
		if err := t.Write(BulkOutEndpoint, payload[sent:sent+n]); err != nil {
			return &WriteError{Stage: i, BytesSent: sent, Err: err}
		}
		sent += n
		if progress != nil {
			progress(sent, total)
		}
	}
	return nil
}
