package push3

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"periph.io/x/devices/v3/push3/image565"
)

// fakeTransport records every write. When failAt >= 0, the write with that
// index (header included, 0-based) returns errBroken.
type fakeTransport struct {
	writes [][]byte
	eps    []byte
	failAt int
	closed bool
}

var errBroken = errors.New("broken pipe")

func newFakeTransport() *fakeTransport {
	return &fakeTransport{failAt: -1}
}

func (f *fakeTransport) Write(endpoint byte, p []byte) error {
	if f.failAt >= 0 && len(f.writes) == f.failAt {
		return errBroken
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	f.writes = append(f.writes, buf)
	f.eps = append(f.eps, endpoint)
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func TestGeometryConstants(t *testing.T) {
	if Pitch != 2048 {
		t.Errorf("Pitch = %d, want 2048", Pitch)
	}
	if FrameLen != 327680 {
		t.Errorf("FrameLen = %d, want 327680", FrameLen)
	}
}

func TestFrameHeader(t *testing.T) {
	h := FrameHeader()
	want := append([]byte{0xFF, 0xCC, 0xAA, 0x88}, make([]byte, 12)...)
	if !bytes.Equal(h, want) {
		t.Errorf("FrameHeader() = % X, want % X", h, want)
	}

	// Mutating the returned slice must not affect later calls.
	h[0] = 0
	if got := FrameHeader(); got[0] != 0xFF {
		t.Error("FrameHeader() shares state with previous return value")
	}
}

func TestMaskKnownPattern(t *testing.T) {
	buf := make([]byte, 8)
	Mask(buf)
	want := []byte{0xE7, 0xF3, 0xE7, 0xFF, 0xE7, 0xF3, 0xE7, 0xFF}
	if !bytes.Equal(buf, want) {
		t.Errorf("Mask(zeros) = % X, want % X", buf, want)
	}
}

func TestMaskInvolution(t *testing.T) {
	buf := make([]byte, 1027) // deliberately not a multiple of 4
	for i := range buf {
		buf[i] = byte(i*31 + 7)
	}
	orig := make([]byte, len(buf))
	copy(orig, buf)

	Mask(buf)
	if bytes.Equal(buf, orig) {
		t.Fatal("Mask did not change the buffer")
	}
	Mask(buf)
	if !bytes.Equal(buf, orig) {
		t.Error("Mask(Mask(b)) != b")
	}
}

func TestEncodeGeometry(t *testing.T) {
	tests := []struct {
		name    string
		rect    image.Rectangle
		wantErr bool
	}{
		{"exact raster", image.Rect(0, 0, 960, 160), false},
		{"offset exact raster", image.Rect(5, 7, 965, 167), false},
		{"too narrow", image.Rect(0, 0, 959, 160), true},
		{"too short", image.Rect(0, 0, 960, 159), true},
		{"too large", image.Rect(0, 0, 1920, 320), true},
		{"empty", image.Rectangle{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := Encode(image.NewRGBA(tt.rect))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidGeometry) {
					t.Errorf("Encode() error = %v, want ErrInvalidGeometry", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if len(fb) != FrameLen {
				t.Errorf("len(fb) = %d, want %d", len(fb), FrameLen)
			}
		})
	}
}

func TestEncodeLengthInvariant(t *testing.T) {
	// The framebuffer length never depends on image content.
	sources := []image.Image{
		image.NewRGBA(image.Rect(0, 0, 960, 160)),
		image.NewGray(image.Rect(0, 0, 960, 160)),
		image.NewNRGBA(image.Rect(0, 0, 960, 160)),
	}
	for _, src := range sources {
		fb, err := Encode(src)
		if err != nil {
			t.Fatalf("Encode(%T) error = %v", src, err)
		}
		if len(fb) != FrameLen {
			t.Errorf("Encode(%T) length = %d, want %d", src, len(fb), FrameLen)
		}
	}
}

func TestEncodeSolidRed(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 960, 160))
	for y := 0; y < 160; y++ {
		for x := 0; x < 960; x++ {
			src.Set(x, y, color.RGBA{0xFF, 0x00, 0x00, 0xFF})
		}
	}

	fb, err := Encode(src)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	for y := 0; y < Height; y++ {
		row := fb[y*Pitch : (y+1)*Pitch]
		// Pixels: 0xF800 little-endian.
		for x := 0; x < Width; x++ {
			if row[x*2] != 0x00 || row[x*2+1] != 0xF8 {
				t.Fatalf("pixel (%d, %d) = %02X %02X, want 00 F8", x, y, row[x*2], row[x*2+1])
			}
		}
		// Padding stays zero.
		for i := Width * 2; i < Pitch; i++ {
			if row[i] != 0 {
				t.Fatalf("padding byte %d of row %d = 0x%02X, want 0x00", i, y, row[i])
			}
		}
	}
}

func TestEncodeFastPath(t *testing.T) {
	img := Framebuffer()
	img.SetRGB565(3, 2, 0xABCD)

	fb, err := Encode(img)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(fb, img.Pix) {
		t.Error("fast path output differs from source pixels")
	}

	// Must be a copy, not an alias.
	fb[0] ^= 0xFF
	if fb[0] == img.Pix[0] {
		t.Error("Encode() aliased the source pixel buffer")
	}
}

func TestSendFrameChunking(t *testing.T) {
	fb := make([]byte, FrameLen)
	for i := range fb {
		fb[i] = byte(i)
	}
	ft := newFakeTransport()

	if err := SendFrame(ft, fb, nil); err != nil {
		t.Fatalf("SendFrame() error = %v", err)
	}

	if len(ft.writes) != 21 {
		t.Fatalf("writes = %d, want 21 (1 header + 20 chunks)", len(ft.writes))
	}
	if !bytes.Equal(ft.writes[0], FrameHeader()) {
		t.Errorf("first write = % X..., want frame header", ft.writes[0][:4])
	}
	for _, ep := range ft.eps {
		if ep != BulkOutEndpoint {
			t.Fatalf("write to endpoint 0x%02X, want 0x%02X", ep, BulkOutEndpoint)
		}
	}

	var payload []byte
	for i, chunk := range ft.writes[1:] {
		if len(chunk) != ChunkSize {
			t.Errorf("chunk %d length = %d, want %d", i, len(chunk), ChunkSize)
		}
		payload = append(payload, chunk...)
	}

	want := make([]byte, FrameLen)
	copy(want, fb)
	Mask(want)
	if !bytes.Equal(payload, want) {
		t.Error("concatenated chunks do not reproduce the masked framebuffer")
	}

	// Input must be untouched.
	for i := range fb {
		if fb[i] != byte(i) {
			t.Fatalf("SendFrame modified its input at byte %d", i)
		}
	}
}

func TestSendFrameInvalidSize(t *testing.T) {
	ft := newFakeTransport()
	if err := SendFrame(ft, make([]byte, FrameLen-1), nil); err == nil {
		t.Error("SendFrame should fail with short framebuffer")
	}
	if len(ft.writes) != 0 {
		t.Errorf("writes = %d, want 0 on invalid input", len(ft.writes))
	}
}

func TestWriteFrameRemainder(t *testing.T) {
	tests := []struct {
		name       string
		payloadLen int
		wantChunks []int
	}{
		{"exact multiple", 2 * ChunkSize, []int{ChunkSize, ChunkSize}},
		{"remainder", 2*ChunkSize + 100, []int{ChunkSize, ChunkSize, 100}},
		{"single short", 5, []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := newFakeTransport()
			if err := writeFrame(ft, make([]byte, tt.payloadLen), nil); err != nil {
				t.Fatalf("writeFrame() error = %v", err)
			}
			chunks := ft.writes[1:]
			if len(chunks) != len(tt.wantChunks) {
				t.Fatalf("chunks = %d, want %d", len(chunks), len(tt.wantChunks))
			}
			for i, want := range tt.wantChunks {
				if len(chunks[i]) != want {
					t.Errorf("chunk %d length = %d, want %d", i, len(chunks[i]), want)
				}
				if want == 0 {
					t.Errorf("zero-length chunk %d emitted", i)
				}
			}
		})
	}
}

func TestSendFrameHeaderFailure(t *testing.T) {
	ft := newFakeTransport()
	ft.failAt = 0

	err := SendFrame(ft, make([]byte, FrameLen), nil)
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("SendFrame() error = %v, want *WriteError", err)
	}
	if we.Stage != StageHeader {
		t.Errorf("Stage = %d, want StageHeader", we.Stage)
	}
	if we.BytesSent != 0 {
		t.Errorf("BytesSent = %d, want 0", we.BytesSent)
	}
	if !errors.Is(err, errBroken) {
		t.Error("WriteError does not wrap the transport error")
	}
	if len(ft.writes) != 0 {
		t.Errorf("payload writes after header failure = %d, want 0", len(ft.writes))
	}
}

func TestSendFrameChunkFailure(t *testing.T) {
	ft := newFakeTransport()
	ft.failAt = 5 // header plus chunks 0-3 succeed, chunk 4 fails

	err := SendFrame(ft, make([]byte, FrameLen), nil)
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("SendFrame() error = %v, want *WriteError", err)
	}
	if we.Stage != 4 {
		t.Errorf("Stage = %d, want 4", we.Stage)
	}
	if we.BytesSent != 4*ChunkSize {
		t.Errorf("BytesSent = %d, want %d", we.BytesSent, 4*ChunkSize)
	}
	// No chunk after the failed one may be attempted.
	if len(ft.writes) != 5 {
		t.Errorf("successful writes = %d, want 5 (header + 4 chunks)", len(ft.writes))
	}
}

func TestSendFrameProgress(t *testing.T) {
	ft := newFakeTransport()
	var calls []int
	progress := func(sent, total int) {
		if total != FrameLen {
			t.Errorf("progress total = %d, want %d", total, FrameLen)
		}
		calls = append(calls, sent)
	}

	if err := SendFrame(ft, make([]byte, FrameLen), progress); err != nil {
		t.Fatalf("SendFrame() error = %v", err)
	}
	if len(calls) != 20 {
		t.Fatalf("progress calls = %d, want 20", len(calls))
	}
	for i, sent := range calls {
		if sent != (i+1)*ChunkSize {
			t.Errorf("progress call %d reported %d bytes, want %d", i, sent, (i+1)*ChunkSize)
		}
	}
}

func TestDevBounds(t *testing.T) {
	dev := &Dev{}
	want := image.Rect(0, 0, 960, 160)
	if got := dev.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestDevColorModel(t *testing.T) {
	dev := &Dev{}
	if dev.ColorModel() != image565.RGB565Model {
		t.Error("ColorModel() did not return RGB565Model")
	}
}

func TestDevString(t *testing.T) {
	dev := &Dev{}
	want := "push3.Dev{960x160}"
	if got := dev.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewNilTransport(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Error("New(nil, nil) should fail")
	}
}

func TestDevDrawSolidRed(t *testing.T) {
	ft := newFakeTransport()
	dev, err := New(ft, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	red := image.NewUniform(color.RGBA{0xFF, 0x00, 0x00, 0xFF})
	if err := dev.Draw(dev.Bounds(), red, image.Point{}); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	if len(ft.writes) != 21 {
		t.Fatalf("writes = %d, want 21", len(ft.writes))
	}
	total := 0
	for _, chunk := range ft.writes[1:] {
		total += len(chunk)
	}
	if total != FrameLen {
		t.Errorf("payload bytes = %d, want %d", total, FrameLen)
	}

	// Unmask the first chunk and check the first pixel is 0xF800.
	chunk := make([]byte, len(ft.writes[1]))
	copy(chunk, ft.writes[1])
	Mask(chunk)
	if chunk[0] != 0x00 || chunk[1] != 0xF8 {
		t.Errorf("first pixel = %02X %02X, want 00 F8", chunk[0], chunk[1])
	}
}

func TestDevDrawFastPath(t *testing.T) {
	ft := newFakeTransport()
	dev, _ := New(ft, nil)

	img := Framebuffer()
	img.SetRGB565(0, 0, 0x1234)
	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(ft.writes) != 21 {
		t.Fatalf("writes = %d, want 21", len(ft.writes))
	}

	chunk := make([]byte, len(ft.writes[1]))
	copy(chunk, ft.writes[1])
	Mask(chunk)
	if got := uint16(chunk[0]) | uint16(chunk[1])<<8; got != 0x1234 {
		t.Errorf("first pixel = 0x%04X, want 0x1234", got)
	}
	// The source buffer must survive unmodified.
	if got := img.RGB565At(0, 0); got != 0x1234 {
		t.Errorf("source pixel after Draw = 0x%04X, want 0x1234", got)
	}
}

func TestDevDrawPartialComposes(t *testing.T) {
	ft := newFakeTransport()
	dev, _ := New(ft, nil)

	// First frame: left half red.
	red := image.NewUniform(color.RGBA{0xFF, 0x00, 0x00, 0xFF})
	if err := dev.Draw(image.Rect(0, 0, 480, 160), red, image.Point{}); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	// Second frame: right half blue; left half must persist.
	blue := image.NewUniform(color.RGBA{0x00, 0x00, 0xFF, 0xFF})
	if err := dev.Draw(image.Rect(480, 0, 960, 160), blue, image.Point{}); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	if len(ft.writes) != 42 {
		t.Fatalf("writes = %d, want 42 (two full frames)", len(ft.writes))
	}

	// Reassemble and unmask the second frame payload.
	var payload []byte
	for _, chunk := range ft.writes[22:] {
		payload = append(payload, chunk...)
	}
	Mask(payload)

	if got := uint16(payload[0]) | uint16(payload[1])<<8; got != 0xF800 {
		t.Errorf("left pixel = 0x%04X, want 0xF800 (red persisted)", got)
	}
	off := 480 * 2
	if got := uint16(payload[off]) | uint16(payload[off+1])<<8; got != 0x001F {
		t.Errorf("right pixel = 0x%04X, want 0x001F (blue)", got)
	}
}

func TestDevDrawOutsideBounds(t *testing.T) {
	ft := newFakeTransport()
	dev, _ := New(ft, nil)

	// Entirely off-screen: no frame is sent.
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if err := dev.Draw(image.Rect(2000, 2000, 2010, 2010), src, image.Point{}); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(ft.writes) != 0 {
		t.Errorf("writes = %d, want 0 for off-screen draw", len(ft.writes))
	}
}

func TestDevWrite(t *testing.T) {
	ft := newFakeTransport()
	dev, _ := New(ft, nil)

	n, err := dev.Write(make([]byte, FrameLen))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != FrameLen {
		t.Errorf("Write() = %d, want %d", n, FrameLen)
	}
	if len(ft.writes) != 21 {
		t.Errorf("writes = %d, want 21", len(ft.writes))
	}
}

func TestDevWriteInvalidBufferSize(t *testing.T) {
	ft := newFakeTransport()
	dev, _ := New(ft, nil)

	for _, size := range []int{0, 100, FrameLen - 1, FrameLen + 1} {
		if _, err := dev.Write(make([]byte, size)); err == nil {
			t.Errorf("Write with %d bytes should fail", size)
		}
	}
	if len(ft.writes) != 0 {
		t.Errorf("writes = %d, want 0 after invalid buffers", len(ft.writes))
	}
}

func TestDevHalt(t *testing.T) {
	ft := newFakeTransport()
	dev, _ := New(ft, nil)

	if err := dev.Halt(); err != nil {
		t.Fatalf("Halt() error = %v", err)
	}
	// Halt sends one blanking frame.
	if len(ft.writes) != 21 {
		t.Errorf("writes = %d, want 21 (blank frame)", len(ft.writes))
	}

	if err := dev.Draw(dev.Bounds(), image.NewRGBA(dev.Bounds()), image.Point{}); !errors.Is(err, ErrHalted) {
		t.Errorf("Draw after Halt = %v, want ErrHalted", err)
	}
	if _, err := dev.Write(make([]byte, FrameLen)); !errors.Is(err, ErrHalted) {
		t.Errorf("Write after Halt = %v, want ErrHalted", err)
	}

	// A second Halt is a no-op.
	if err := dev.Halt(); err != nil {
		t.Errorf("second Halt() error = %v", err)
	}
	if len(ft.writes) != 21 {
		t.Errorf("writes after second Halt = %d, want 21", len(ft.writes))
	}
}

func TestDevClose(t *testing.T) {
	ft := newFakeTransport()
	dev, _ := New(ft, nil)

	if err := dev.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !ft.closed {
		t.Error("Close() did not close the transport")
	}
}

func TestWriteErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *WriteError
		want string
	}{
		{
			"header stage",
			&WriteError{Stage: StageHeader, Err: errBroken},
			"push3: header write failed: broken pipe",
		},
		{
			"chunk stage",
			&WriteError{Stage: 4, BytesSent: 65536, Err: errBroken},
			"push3: chunk 4 write failed after 65536 bytes: broken pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
