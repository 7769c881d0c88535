package render

import (
	"fmt"
	"image"
	"strings"

	"periph.io/x/devices/v3/push3"
	"periph.io/x/devices/v3/push3/image565"
)

// Parameter is one labeled value on a parameter page.
type Parameter struct {
	Name  string
	Value string
}

// ParameterPage draws a plugin parameter page: track and plugin names, a
// separator, then parameters laid out in two columns. Values starting with
// '+' render green, '-' red, anything else white.
func (r *Renderer) ParameterPage(track, plugin string, params []Parameter) *image565.Image {
	img := newPage(Black)

	r.text(img, 10, 5, r.large, White, track)
	r.text(img, 10, 35, r.medium, LightBlue, plugin)
	hline(img, 10, push3.Width-10, 60, Gray)

	colWidth := push3.Width / 2
	for i, p := range params {
		x := 10 + (i%2)*colWidth
		y := 75 + (i/2)*25

		r.text(img, x, y, r.small, Yellow, p.Name+":")

		valueColor := White
		switch {
		case strings.HasPrefix(p.Value, "+"):
			valueColor = Green
		case strings.HasPrefix(p.Value, "-"):
			valueColor = Red
		}
		r.text(img, x+100, y, r.small, valueColor, p.Value)
	}
	return img
}

// Send is one send level on a mixer page.
type Send struct {
	Name    string
	Percent int
}

// MixerChannel describes one channel strip for MixerPage.
type MixerChannel struct {
	Track     string
	VolumeDB  float64
	PanUnits  int // -100..100, 0 is center
	Sends     []Send
	Solo      bool
	Mute      bool
	Recording bool
}

// MixerPage draws a mixer channel strip: volume with a level bar, pan with a
// position marker, send levels and the SOLO/MUTE/REC status flags.
func (r *Renderer) MixerPage(m MixerChannel) *image565.Image {
	img := newPage(Black)

	r.text(img, 10, 5, r.large, White, "Track: "+m.Track)

	r.text(img, 10, 40, r.medium, Green, fmt.Sprintf("Vol: %+.1fdB", m.VolumeDB))

	// Level bar over a -60dB..0dB range.
	level := m.VolumeDB + 60
	if level < 0 {
		level = 0
	}
	if level > 60 {
		level = 60
	}
	barWidth := int(level / 60 * 200)
	fillRect(img, image.Rect(10, 65, 10+barWidth, 75), Green)
	hline(img, 10+barWidth, 210, 65, Gray)
	hline(img, 10+barWidth, 210, 74, Gray)

	r.text(img, 10, 85, r.medium, Yellow, fmt.Sprintf("Pan: %+d%%", m.PanUnits))
	hline(img, 250, 450, 110, Gray)
	fillRect(img, image.Rect(348+m.PanUnits, 105, 352+m.PanUnits, 115), Yellow)

	for i, s := range m.Sends {
		x := 10 + i*200
		r.text(img, x, 125, r.small, Cyan, fmt.Sprintf("%s: %d%%", s.Name, s.Percent))
		w := s.Percent * 80 / 100
		fillRect(img, image.Rect(x, 140, x+w, 145), Cyan)
		hline(img, x+w, x+80, 140, Gray)
	}

	statusX := push3.Width - 150
	if m.Solo {
		r.text(img, statusX, 40, r.medium, Yellow, "SOLO")
	}
	if m.Mute {
		r.text(img, statusX, 65, r.medium, Red, "MUTE")
	}
	if m.Recording {
		r.text(img, statusX, 90, r.medium, Red, "REC")
	}
	return img
}

// TransportStatus describes the state shown by TransportPage.
type TransportStatus struct {
	BPM        float64
	Playing    bool
	Recording  bool
	Position   string
	TimeFormat string
}

// TransportPage draws the transport status: tempo, run state and position.
func (r *Renderer) TransportPage(s TransportStatus) *image565.Image {
	img := newPage(Black)

	r.text(img, 10, 10, r.huge, White, fmt.Sprintf("BPM: %.1f", s.BPM))

	state, stateColor := "STOPPED", Gray
	switch {
	case s.Playing:
		state, stateColor = "PLAYING", Green
	case s.Recording:
		state, stateColor = "RECORDING", Red
	}
	r.text(img, 250, 10, r.large, stateColor, state)

	r.text(img, 10, 60, r.large, LightBlue, "Position: "+s.Position)
	if s.TimeFormat != "" {
		r.text(img, 10, 100, r.medium, Gray, "Format: "+s.TimeFormat)
	}
	return img
}
