package midi

import (
	"bytes"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// FindInPort locates the Push 3 MIDI input, preferring the User port over the
// Live port.
func FindInPort() (drivers.In, error) {
	if in, err := midi.FindInPort("User Port"); err == nil {
		return in, nil
	}
	return midi.FindInPort("Ableton Push 3")
}

// Monitor listens on in and hands every incoming message to emit as a human
// readable line, sysex included. The returned stop function ends the
// listener.
func Monitor(in drivers.In, emit func(line string)) (stop func(), err error) {
	return midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		emit(Describe(msg))
	}, midi.UseSysEx())
}

// Describe renders an incoming message the way the hardware surfaces it:
// pads as grid positions, buttons and encoders by name, sysex by command.
func Describe(msg midi.Message) string {
	var ch, key, vel, cc, val uint8
	var data []byte
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return fmt.Sprintf("%s on, velocity %d", padName(key), vel)
	case msg.GetNoteEnd(&ch, &key):
		return fmt.Sprintf("%s off", padName(key))
	case msg.GetControlChange(&ch, &cc, &val):
		return describeControl(cc, val)
	case msg.GetSysEx(&data):
		return describeSysEx(data)
	}
	return msg.String()
}

// padName maps a note in the 8x8 grid to its row and column, both 1-based
// from the bottom-left pad.
func padName(note uint8) string {
	if note >= PadNoteMin && note <= PadNoteMax {
		i := int(note) - PadNoteMin
		return fmt.Sprintf("Pad row %d col %d (note %d)", i/8+1, i%8+1, note)
	}
	return fmt.Sprintf("Note %d", note)
}

func describeControl(cc, val uint8) string {
	if _, ok := buttonNames[cc]; ok {
		return fmt.Sprintf("%s (CC %d) %s, velocity %d", ControlName(cc), cc, pressedState(val), val)
	}
	switch {
	case cc <= 7:
		if val > 0 {
			return fmt.Sprintf("Encoder %d touched", cc+1)
		}
		return fmt.Sprintf("Encoder %d released", cc+1)
	case cc >= 71 && cc <= 78:
		switch val {
		case 127:
			return fmt.Sprintf("Encoder %d turned left", cc-70)
		case 1:
			return fmt.Sprintf("Encoder %d turned right", cc-70)
		}
		return fmt.Sprintf("Encoder %d turn value %d", cc-70, val)
	case cc >= 20 && cc <= 27:
		return fmt.Sprintf("Lower display button %d %s", cc-19, pressedState(val))
	case cc >= 102 && cc <= 109:
		return fmt.Sprintf("Upper display button %d %s", cc-101, pressedState(val))
	}
	return fmt.Sprintf("CC %d = %d", cc, val)
}

func pressedState(val uint8) string {
	if val > 0 {
		return "pressed"
	}
	return "released"
}

func describeSysEx(data []byte) string {
	if !bytes.HasPrefix(data, manufacturerID) {
		return fmt.Sprintf("Sysex, %d bytes", len(data))
	}
	rest := data[len(manufacturerID):]
	if bytes.HasPrefix(rest, deviceID) && len(rest) > len(deviceID) {
		return fmt.Sprintf("Push 3 sysex command 0x%02X, %d bytes", rest[len(deviceID)], len(data))
	}
	return fmt.Sprintf("Ableton sysex, %d bytes", len(data))
}
