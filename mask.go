package push3

// xorKey is the 4-byte repeating pattern the device expects over every frame
// payload. It is a protocol constant, not a secret.
var xorKey = [4]byte{0xE7, 0xF3, 0xE7, 0xFF}

// Mask applies the display's byte transform to buf in place. Each byte is
// XORed with the key byte selected by its offset from the start of the
// framebuffer; the 16-byte frame header is never masked. Applying Mask twice
// restores the original bytes.
func Mask(buf []byte) {
	for i := range buf {
		buf[i] ^= xorKey[i&3]
	}
}
