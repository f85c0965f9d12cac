package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/spherefocus/parameter"
)

// Shape selects the waveform of a note
type Shape uint8

const (
	Sine Shape = iota
	Square
	Triangle
)

// at samples the shape at phase in [0, 1)
func (s Shape) at(phase float64) float64 {
	switch s {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Note is one enveloped tone of a cue
type Note struct {
	Freq   float64
	Length time.Duration
	Shape  Shape
}

// note streams a fixed number of samples of one shape under a linear attack/release ramp
type note struct {
	shape   Shape
	step    float64 // phase increment per sample
	phase   float64
	pos     int
	length  int
	attack  int
	release int
}

func newNote(n Note, rate beep.SampleRate, attack, release time.Duration) *note {
	return &note{
		shape:   n.Shape,
		step:    n.Freq / float64(rate),
		length:  rate.N(n.Length),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

// gain is the envelope level at the current position
func (n *note) gain() float64 {
	g := 1.0
	if n.attack > 0 && n.pos < n.attack {
		g = float64(n.pos) / float64(n.attack)
	}
	if left := n.length - n.pos; n.release > 0 && left < n.release {
		g = math.Min(g, float64(left)/float64(n.release))
	}
	return g
}

func (n *note) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if n.pos >= n.length {
			return i, i > 0
		}
		v := n.shape.at(n.phase) * n.gain()
		samples[i] = [2]float64{v, v}

		n.phase += n.step
		n.phase -= math.Floor(n.phase)
		n.pos++
	}
	return len(samples), true
}

func (n *note) Err() error { return nil }

// score is the fixed arrangement of a cue: its notes in order and a gain relative to the master volume
type score struct {
	gain  float64
	notes []Note
}

var scores = map[Cue]score{
	// rising two-note chime
	CuePrompt: {1, []Note{
		{parameter.PromptCueFreq, parameter.PromptCueDuration / 2, Sine},
		{parameter.PromptCueFreqHigh, parameter.PromptCueDuration / 2, Sine},
	}},
	// soft tick
	CueNavigate: {0.5, []Note{
		{parameter.NavigateCueFreq, parameter.NavigateCueDuration, Triangle},
	}},
	// bright blip
	CuePlaced: {0.6, []Note{
		{parameter.PlacedCueFreq, parameter.PlacedCueDuration, Square},
	}},
}

// Render builds the streamer for cue at the configured volume
// Returns nil for CueNone and cues without a score
func Render(cue Cue, cfg *Config) beep.Streamer {
	sc, ok := scores[cue]
	if !ok {
		return nil
	}
	rate := beep.SampleRate(cfg.SampleRate)
	parts := make([]beep.Streamer, len(sc.notes))
	for i, n := range sc.notes {
		parts[i] = newNote(n, rate, parameter.CueAttack, parameter.CueRelease)
	}
	return withGain(beep.Seq(parts...), cfg.Volume*sc.gain)
}

// withGain applies a linear gain through a base-2 volume effect
func withGain(s beep.Streamer, g float64) beep.Streamer {
	v := &effects.Volume{Streamer: s, Base: 2}
	if g <= 0 {
		v.Silent = true
	} else {
		v.Volume = math.Log2(g)
	}
	return v
}
