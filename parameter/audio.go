package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 50 * time.Millisecond
)

// Cue sounds
const (
	// PromptCueFreq is a two-tone chime played when a placement prompt opens
	PromptCueFreq     = 660.0
	PromptCueFreqHigh = 880.0
	PromptCueDuration = 90 * time.Millisecond

	// NavigateCueFreq is a short tick on column change
	NavigateCueFreq     = 440.0
	NavigateCueDuration = 25 * time.Millisecond

	// PlacedCueFreq confirms a resolved placement
	PlacedCueFreq     = 990.0
	PlacedCueDuration = 60 * time.Millisecond

	// CueAttack/CueRelease shape every cue envelope to avoid clicks
	CueAttack  = 3 * time.Millisecond
	CueRelease = 15 * time.Millisecond

	// CueVolume is the default linear gain applied to cues
	CueVolume = 0.3
)
