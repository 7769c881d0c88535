package push3

import (
	"fmt"
	"io"

	"github.com/google/gousb"
)

// usbTransport owns the libusb handles for one connected Push 3.
type usbTransport struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	intf *gousb.Interface
	done func()
	out  *gousb.OutEndpoint
}

// OpenUSB locates a Push 3 over USB, claims its default interface and opens
// the bulk-out endpoint. It returns ErrDeviceNotFound when no device with the
// Push 3 vendor/product ID is connected.
func OpenUSB() (Transport, error) {
	ctx := gousb.NewContext()
	t, err := openUSB(ctx)
	if err != nil {
		ctx.Close()
		return nil, err
	}
	return t, nil
}

func openUSB(ctx *gousb.Context) (*usbTransport, error) {
	dev, err := ctx.OpenDeviceWithVIDPID(VendorID, ProductID)
	if err != nil {
		return nil, fmt.Errorf("push3: opening device: %w", err)
	}
	if dev == nil {
		return nil, ErrDeviceNotFound
	}
	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		return nil, fmt.Errorf("push3: configuring device: %w", err)
	}
	intf, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("push3: claiming interface: %w", err)
	}
	out, err := intf.OutEndpoint(BulkOutEndpoint)
	if err != nil {
		done()
		dev.Close()
		return nil, fmt.Errorf("push3: opening endpoint 0x%02x: %w", BulkOutEndpoint, err)
	}
	return &usbTransport{ctx: ctx, dev: dev, intf: intf, done: done, out: out}, nil
}

func (u *usbTransport) Write(endpoint byte, p []byte) error {
	if int(endpoint) != u.out.Desc.Number {
		return fmt.Errorf("push3: unsupported endpoint 0x%02x", endpoint)
	}
	n, err := u.out.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

func (u *usbTransport) Close() error {
	u.done()
	err := u.dev.Close()
	if cerr := u.ctx.Close(); err == nil {
		err = cerr
	}
	return err
}
