package audio

import (
	"github.com/lixenwraith/spherefocus/parameter"
)

// Config holds cue playback settings
type Config struct {
	// Enabled false keeps the player silent without touching the audio device
	Enabled bool

	// Volume is the linear gain applied to every cue, clamped to [0, 1]
	Volume float64

	SampleRate int
}

// DefaultConfig returns cue settings with audio off
func DefaultConfig() *Config {
	return &Config{
		Enabled:    false,
		Volume:     parameter.CueVolume,
		SampleRate: parameter.AudioSampleRate,
	}
}

func (c *Config) normalized() *Config {
	out := *c
	if out.Volume < 0 {
		out.Volume = 0
	}
	if out.Volume > 1 {
		out.Volume = 1
	}
	if out.SampleRate <= 0 {
		out.SampleRate = parameter.AudioSampleRate
	}
	return &out
}
