package audio

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/lixenwraith/spherefocus/parameter"
)

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestShapeRange(t *testing.T) {
	rate := beep.SampleRate(44100)

	tests := []struct {
		name  string
		shape Shape
		valid func(v float64) bool
	}{
		{"sine", Sine, func(v float64) bool { return v >= -1 && v <= 1 }},
		{"square", Square, func(v float64) bool { return v == -1 || v == 1 }},
		{"triangle", Triangle, func(v float64) bool { return v >= -1 && v <= 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newNote(Note{440, 10 * time.Millisecond, tt.shape}, rate, 0, 0)
			samples := make([][2]float64, 100)
			got, ok := n.Stream(samples)
			if !ok || got != 100 {
				t.Fatalf("Stream = %d, %v; want 100, true", got, ok)
			}
			for i := range got {
				if !tt.valid(samples[i][0]) {
					t.Fatalf("sample %d = %f out of range", i, samples[i][0])
				}
				if samples[i][0] != samples[i][1] {
					t.Fatalf("sample %d channels differ", i)
				}
			}
		})
	}
}

func TestNoteLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	length := 10 * time.Millisecond
	want := rate.N(length)

	n := newNote(Note{440, length, Sine}, rate, 0, 0)
	samples := make([][2]float64, want*2)
	got, ok := n.Stream(samples)
	if got != want || !ok {
		t.Errorf("first Stream = %d, %v; want %d, true", got, ok, want)
	}

	got, ok = n.Stream(samples)
	if got != 0 || ok {
		t.Errorf("Stream after end = %d, %v; want 0, false", got, ok)
	}
}

func TestNoteEnvelope(t *testing.T) {
	rate := beep.SampleRate(44100)
	// a zero-frequency square holds at +1 so the samples trace the envelope
	n := newNote(Note{0, 50 * time.Millisecond, Square}, rate, 5*time.Millisecond, 5*time.Millisecond)

	samples := make([][2]float64, rate.N(50*time.Millisecond))
	got, _ := n.Stream(samples)
	if got == 0 {
		t.Fatal("note produced no samples")
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %f, want 0 at attack start", samples[0][0])
	}
	if mid := samples[got/2][0]; mid != 1 {
		t.Errorf("sustain sample = %f, want 1", mid)
	}
	if last := samples[got-1][0]; last > 0.1 {
		t.Errorf("last sample = %f, want near 0 at release end", last)
	}
}

func TestCueStreamers(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	tests := []struct {
		cue      Cue
		duration time.Duration
	}{
		{CuePrompt, parameter.PromptCueDuration},
		{CueNavigate, parameter.NavigateCueDuration},
		{CuePlaced, parameter.PlacedCueDuration},
	}
	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			s := Render(tt.cue, cfg)
			if s == nil {
				t.Fatal("Render returned nil")
			}
			total, peak := drain(s)
			if want := rate.N(tt.duration); math.Abs(float64(total-want)) > 2 {
				t.Errorf("cue length = %d samples, want ~%d", total, want)
			}
			if peak == 0 || peak > 1 {
				t.Errorf("cue peak = %f, want within (0, 1]", peak)
			}
		})
	}

	if Render(CueNone, cfg) != nil {
		t.Error("Render(CueNone) returned a streamer")
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Volume = 0
	_, peak := drain(Render(CuePlaced, cfg))
	if peak != 0 {
		t.Errorf("peak = %f at zero volume", peak)
	}
}

func TestPlayerSilentWhenDisabled(t *testing.T) {
	p := NewPlayer(log.New(io.Discard))
	cfg := DefaultConfig()
	cfg.Enabled = false
	if err := p.Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if p.Play(CuePrompt) {
		t.Error("Play succeeded before Start")
	}
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !p.IsSilent() {
		t.Error("disabled player not silent")
	}
	if p.Play(CuePrompt) {
		t.Error("silent player reported playback")
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}
