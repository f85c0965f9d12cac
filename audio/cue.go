package audio

// Cue names a short feedback sound
type Cue uint8

const (
	CueNone Cue = iota
	// CuePrompt plays when a new window awaits a placement decision
	CuePrompt
	// CueNavigate plays when the camera moves to another column
	CueNavigate
	// CuePlaced plays when a pending window lands on the ring
	CuePlaced
)

var cueNames = [...]string{
	CueNone:     "none",
	CuePrompt:   "prompt",
	CueNavigate: "navigate",
	CuePlaced:   "placed",
}

func (c Cue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}
