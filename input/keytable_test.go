package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spherefocus/placement"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		spec string
		want Key
	}{
		{"Ctrl+Meta+Left", Key{Code: tcell.KeyLeft, Mods: tcell.ModCtrl | tcell.ModMeta}},
		{"ctrl+alt+right", Key{Code: tcell.KeyRight, Mods: tcell.ModCtrl | tcell.ModMeta}},
		{"Super+Up", Key{Code: tcell.KeyUp, Mods: tcell.ModMeta}},
		{"Down", Key{Code: tcell.KeyDown}},
		{"Alt+h", Key{Code: tcell.KeyRune, Rune: 'h', Mods: tcell.ModMeta}},
		{"Ctrl+space", Key{Code: tcell.KeyRune, Rune: ' ', Mods: tcell.ModCtrl}},
		{"F5", Key{Code: tcell.KeyF5}},
		{"Ctrl+J", Key{Code: tcell.KeyCtrlJ, Mods: tcell.ModCtrl}},
		{"Backspace", Key{Code: tcell.KeyBackspace}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseKey(tt.spec)
			if err != nil {
				t.Fatalf("ParseKey: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseKey(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseKeyErrors(t *testing.T) {
	for _, spec := range []string{"", "Ctrl+", "Hyper+Left", "Ctrl+Nowhere"} {
		if _, err := ParseKey(spec); err == nil {
			t.Errorf("ParseKey(%q) accepted invalid binding", spec)
		}
	}
}

func TestLookupNormal(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		name     string
		key      Key
		want     Command
		consumed bool
	}{
		{"ctrl meta left", Key{Code: tcell.KeyLeft, Mods: tcell.ModCtrl | tcell.ModMeta}, Navigate(-1), true},
		{"ctrl alt right", Key{Code: tcell.KeyRight, Mods: tcell.ModCtrl | tcell.ModAlt}, Navigate(1), true},
		{"ctrl meta up", Key{Code: tcell.KeyUp, Mods: tcell.ModCtrl | tcell.ModMeta}, CycleSplit(), true},
		{"ctrl meta down", Key{Code: tcell.KeyDown, Mods: tcell.ModCtrl | tcell.ModMeta}, CycleSplit(), true},
		{"bare left passes through", Key{Code: tcell.KeyLeft}, Command{}, false},
		{"ctrl left passes through", Key{Code: tcell.KeyLeft, Mods: tcell.ModCtrl}, Command{}, false},
		{"rune passes through", Key{Code: tcell.KeyRune, Rune: 'x'}, Command{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, consumed := kt.Lookup(tt.key, false)
			if got != tt.want || consumed != tt.consumed {
				t.Errorf("Lookup = %v, %v; want %v, %v", got, consumed, tt.want, tt.consumed)
			}
		})
	}
}

func TestLookupAwaitingPlacement(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		key  Key
		want Command
	}{
		{Key{Code: tcell.KeyLeft}, Place(placement.NewColumnLeft)},
		{Key{Code: tcell.KeyRight}, Place(placement.NewColumnRight)},
		{Key{Code: tcell.KeyUp}, Place(placement.SplitTop)},
		{Key{Code: tcell.KeyDown}, Place(placement.SplitBottom)},
		// Navigation bindings and everything else are swallowed
		{Key{Code: tcell.KeyLeft, Mods: tcell.ModCtrl | tcell.ModMeta}, Command{}},
		{Key{Code: tcell.KeyRune, Rune: 'q'}, Command{}},
		{Key{Code: tcell.KeyEscape}, Command{}},
	}
	for _, tt := range tests {
		got, consumed := kt.Lookup(tt.key, true)
		if !consumed {
			t.Errorf("Lookup(%+v) not consumed while awaiting", tt.key)
		}
		if got != tt.want {
			t.Errorf("Lookup(%+v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestBuildRejectsBadBinding(t *testing.T) {
	b := DefaultKeyBindings()
	b.SplitTop = []string{"Ctrl+Bogus"}
	if _, err := b.Build(); err == nil {
		t.Fatal("Build accepted invalid binding")
	}
}

func TestCommandGate(t *testing.T) {
	tests := []struct {
		cmd   Command
		valid bool
		gate  bool
	}{
		{Navigate(-5), true, false},
		{CycleSplit(), true, false},
		{Place(placement.SplitTop), true, true},
		{Place(placement.ActionNone), false, false},
		{Command{}, false, false},
		{Command{Op: OpNavigate}, false, false},
	}
	for _, tt := range tests {
		if tt.cmd.Valid() != tt.valid {
			t.Errorf("%v Valid() = %v, want %v", tt.cmd, tt.cmd.Valid(), tt.valid)
		}
		if tt.cmd.AllowedWhileAwaiting() != tt.gate {
			t.Errorf("%v AllowedWhileAwaiting() = %v, want %v", tt.cmd, tt.cmd.AllowedWhileAwaiting(), tt.gate)
		}
	}
}

func TestKeyFromEventMatchesBinding(t *testing.T) {
	b := DefaultKeyBindings()
	b.NavigateRight = append(b.NavigateRight, "Ctrl+j")
	kt, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	events := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl|tcell.ModAlt),
	}
	for _, ev := range events {
		cmd, consumed := kt.Lookup(KeyFromEvent(ev), false)
		if !consumed || cmd != Navigate(1) {
			t.Errorf("Lookup(%s) = %v, %v, want navigate right", ev.Name(), cmd, consumed)
		}
	}
}
