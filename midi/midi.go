// Package midi controls the Push 3 button and pad LEDs over its MIDI port.
//
// On the User port the Push 3 speaks plain MIDI: button LEDs are set with
// control change messages and pad LEDs with note-on messages, where the value
// selects an entry in the device's color palette. Device-level commands use
// Ableton manufacturer-specific system exclusive messages.
//
// Message construction is exposed as pure functions so it can be tested
// without a device; Controller binds them to an output port from
// gitlab.com/gomidi/midi/v2.
package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Ableton sysex identifiers.
var (
	manufacturerID = []byte{0x00, 0x21, 0x1D}
	deviceID       = []byte{0x01, 0x01}
)

// Device commands.
const (
	cmdSetUserMode = 0x0A
)

// Palette entries for button and pad LEDs.
const (
	ColorOff       = 0
	ColorRed       = 5
	ColorOrange    = 9
	ColorYellow    = 13
	ColorGreen     = 17
	ColorCyan      = 33
	ColorBlue      = 37
	ColorPurple    = 41
	ColorPink      = 45
	ColorGrayDark  = 117
	ColorGrayLight = 118
	ColorWhite     = 119
)

// Pad note range on the User port.
const (
	PadNoteMin = 36
	PadNoteMax = 99
)

// SysEx builds a Push 3 manufacturer-specific system exclusive message.
func SysEx(command byte, data ...byte) midi.Message {
	bt := make([]byte, 0, len(manufacturerID)+len(deviceID)+1+len(data))
	bt = append(bt, manufacturerID...)
	bt = append(bt, deviceID...)
	bt = append(bt, command)
	bt = append(bt, data...)
	return midi.SysEx(bt)
}

// DeviceInquiry builds the universal non-realtime device inquiry message.
func DeviceInquiry() midi.Message {
	return midi.SysEx([]byte{0x7E, 0x7F, 0x06, 0x01})
}

// SetUserMode builds the sysex that switches the device into User mode.
// The display protocol expects the device in this mode.
func SetUserMode() midi.Message {
	return SysEx(cmdSetUserMode, 0x01)
}

// ButtonLED builds the control change that sets a button LED color.
func ButtonLED(button, color uint8) midi.Message {
	return midi.ControlChange(0, button, color)
}

// PadLED builds the note-on that sets a pad LED color.
func PadLED(note, color uint8) midi.Message {
	return midi.NoteOn(0, note, color)
}

// FindPort locates the Push 3 MIDI output, preferring the User port over the
// Live port.
func FindPort() (drivers.Out, error) {
	if out, err := midi.FindOutPort("User Port"); err == nil {
		return out, nil
	}
	return midi.FindOutPort("Ableton Push 3")
}

// Controller drives the LEDs of a connected Push 3.
type Controller struct {
	send func(midi.Message) error
}

// NewController opens out and returns a controller bound to it.
func NewController(out drivers.Out) (*Controller, error) {
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("midi: opening output port: %w", err)
	}
	return &Controller{send: send}, nil
}

// Handshake performs the startup sequence: a standard device inquiry followed
// by switching the device into User mode.
func (c *Controller) Handshake() error {
	if err := c.send(DeviceInquiry()); err != nil {
		return err
	}
	return c.send(SetUserMode())
}

// SetButtonLED sets a button LED to a palette color.
func (c *Controller) SetButtonLED(button, color uint8) error {
	return c.send(ButtonLED(button, color))
}

// SetPadLED sets a pad LED to a palette color.
func (c *Controller) SetPadLED(note, color uint8) error {
	return c.send(PadLED(note, color))
}

// AllOff turns off every button and pad LED.
func (c *Controller) AllOff() error {
	for cc := 0; cc < 128; cc++ {
		if err := c.SetButtonLED(uint8(cc), ColorOff); err != nil {
			return err
		}
	}
	for note := 0; note < 128; note++ {
		if err := c.SetPadLED(uint8(note), ColorOff); err != nil {
			return err
		}
	}
	return nil
}
