package midi

// Button control change numbers on the User port.
const (
	ButtonTapTempo    = 3
	ButtonMetronome   = 9
	ButtonLowerRow1   = 20 // lower display buttons run 20..27
	ButtonMasterTrack = 28
	ButtonStop        = 29
	ButtonSetup       = 30
	ButtonLayout      = 31
	ButtonAdd         = 32
	ButtonSwap        = 33
	ButtonSession     = 34
	ButtonConvert     = 35
	ButtonDPadLeft    = 44
	ButtonDPadRight   = 45
	ButtonDPadUp      = 46
	ButtonDPadDown    = 47
	ButtonSelect      = 48
	ButtonShift       = 49
	ButtonNote        = 50
	ButtonOctaveDown  = 54
	ButtonOctaveUp    = 55
	ButtonRepeat      = 56
	ButtonAccent      = 57
	ButtonScale       = 58
	ButtonUserMode    = 59
	ButtonMute        = 60
	ButtonSolo        = 61
	ButtonPageLeft    = 62
	ButtonPageRight   = 63
	ButtonCapture     = 65
	ButtonSets        = 80
	ButtonLearn       = 81
	ButtonSave        = 82
	ButtonLock        = 83
	ButtonPlay        = 85
	ButtonRecord      = 86
	ButtonDuplicate   = 88
	ButtonAutomate    = 89
	ButtonFixedLength = 90
	ButtonDPadCenter  = 91
	ButtonNew         = 92
	ButtonUpperRow1   = 102 // upper display buttons run 102..109
	ButtonDevice      = 110
	ButtonVolume      = 111
	ButtonMix         = 112
	ButtonClip        = 113
	ButtonQuantize    = 116
	ButtonDoubleLoop  = 117
	ButtonDelete      = 118
	ButtonUndo        = 119
)

var buttonNames = map[uint8]string{
	3:   "Tap Tempo",
	9:   "Metronome",
	10:  "Swing/Tempo",
	11:  "Jogwheel",
	15:  "Swing/Tempo",
	94:  "Jogwheel",
	28:  "Master Track",
	29:  "Stop",
	30:  "Setup",
	31:  "Layout",
	32:  "Add",
	33:  "Swap",
	34:  "Session",
	35:  "Convert",
	36:  "1/4 Repeat",
	37:  "1/4t Repeat",
	38:  "1/8 Repeat",
	39:  "1/8t Repeat",
	40:  "1/16 Repeat",
	41:  "1/16t Repeat",
	42:  "1/32 Repeat",
	43:  "1/32t Repeat",
	44:  "D-Pad Left",
	45:  "D-Pad Right",
	46:  "D-Pad Up",
	47:  "D-Pad Down",
	48:  "Select",
	49:  "Shift",
	50:  "Note",
	51:  "Session",
	54:  "Octave Down",
	55:  "Octave Up",
	56:  "Repeat",
	57:  "Accent",
	58:  "Scale",
	59:  "User Mode",
	60:  "Mute",
	61:  "Solo",
	62:  "Page Left",
	63:  "Page Right",
	65:  "Capture",
	80:  "Sets",
	81:  "Learn",
	82:  "Save",
	83:  "Lock",
	85:  "Play",
	86:  "Record",
	88:  "Duplicate",
	89:  "Automate",
	90:  "Fixed Length",
	91:  "D-Pad Center",
	92:  "New",
	110: "Device",
	111: "Volume",
	112: "Mix",
	113: "Clip",
	116: "Quantize",
	117: "Double Loop",
	118: "Delete",
	119: "Undo",
}

// ControlName returns a human-readable name for a control change number, or
// an empty string for unmapped controls. Upper and lower display buttons and
// encoders are derived from their ranges.
func ControlName(cc uint8) string {
	if name, ok := buttonNames[cc]; ok {
		return name
	}
	switch {
	case cc <= 7:
		return "Encoder Touch"
	case cc >= 71 && cc <= 78:
		return "Encoder Turn"
	case cc >= 20 && cc <= 27:
		return "Lower Display Button"
	case cc >= 102 && cc <= 109:
		return "Upper Display Button"
	}
	return ""
}
