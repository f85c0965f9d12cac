package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spherefocus/placement"
)

// KeyBindings is the user-facing key configuration
// Each entry is a list of bindings written as modifier names and a key joined by '+', e.g. "Ctrl+Meta+Left"
type KeyBindings struct {
	NavigateLeft  []string `toml:"navigate_left"`
	NavigateRight []string `toml:"navigate_right"`
	CycleSplit    []string `toml:"cycle_split"`

	// Active only while a placement is pending
	NewColumnLeft  []string `toml:"new_column_left"`
	NewColumnRight []string `toml:"new_column_right"`
	SplitTop       []string `toml:"split_top"`
	SplitBottom    []string `toml:"split_bottom"`
}

// DefaultKeyBindings holds Ctrl+Meta arrows for navigation and bare arrows for placement
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		NavigateLeft:   []string{"Ctrl+Meta+Left"},
		NavigateRight:  []string{"Ctrl+Meta+Right"},
		CycleSplit:     []string{"Ctrl+Meta+Up", "Ctrl+Meta+Down"},
		NewColumnLeft:  []string{"Left"},
		NewColumnRight: []string{"Right"},
		SplitTop:       []string{"Up"},
		SplitBottom:    []string{"Down"},
	}
}

// Build parses every binding into a KeyTable
// Returns the first invalid binding as an error
func (b KeyBindings) Build() (*KeyTable, error) {
	kt := NewKeyTable()

	normal := []struct {
		section string
		specs   []string
		cmd     Command
	}{
		{"navigate_left", b.NavigateLeft, Navigate(-1)},
		{"navigate_right", b.NavigateRight, Navigate(1)},
		{"cycle_split", b.CycleSplit, CycleSplit()},
	}
	for _, n := range normal {
		for _, spec := range n.specs {
			k, err := ParseKey(spec)
			if err != nil {
				return nil, fmt.Errorf("keys.%s: %w", n.section, err)
			}
			kt.BindNormal(k, n.cmd)
		}
	}

	placements := []struct {
		section string
		specs   []string
		action  placement.Action
	}{
		{"new_column_left", b.NewColumnLeft, placement.NewColumnLeft},
		{"new_column_right", b.NewColumnRight, placement.NewColumnRight},
		{"split_top", b.SplitTop, placement.SplitTop},
		{"split_bottom", b.SplitBottom, placement.SplitBottom},
	}
	for _, p := range placements {
		for _, spec := range p.specs {
			k, err := ParseKey(spec)
			if err != nil {
				return nil, fmt.Errorf("keys.%s: %w", p.section, err)
			}
			kt.BindPlacement(k, Place(p.action))
		}
	}

	return kt, nil
}

var modifierNames = map[string]tcell.ModMask{
	"ctrl":    tcell.ModCtrl,
	"control": tcell.ModCtrl,
	"alt":     tcell.ModAlt,
	"meta":    tcell.ModMeta,
	"super":   tcell.ModMeta,
	"win":     tcell.ModMeta,
	"cmd":     tcell.ModMeta,
	"shift":   tcell.ModShift,
}

// Key names accepted in bindings beyond tcell.KeyNames
var keyAliases = map[string]tcell.Key{
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"enter":     tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pageup":    tcell.KeyPgUp,
	"pagedown":  tcell.KeyPgDn,
	"backspace": tcell.KeyBackspace,
	"delete":    tcell.KeyDelete,
}

// Rune aliases for keys that can't be written bare
var runeAliases = map[string]rune{
	"space": ' ',
	"plus":  '+',
}

// ParseKey parses a binding such as "Ctrl+Meta+Left", "Alt+h" or "Up"
func ParseKey(spec string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(spec), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return Key{}, fmt.Errorf("empty key in binding %q", spec)
	}

	var k Key
	for _, mod := range parts[:len(parts)-1] {
		m, ok := modifierNames[strings.ToLower(strings.TrimSpace(mod))]
		if !ok {
			return Key{}, fmt.Errorf("unknown modifier %q in binding %q", mod, spec)
		}
		k.Mods |= m
	}

	name := strings.TrimSpace(parts[len(parts)-1])
	code, r, err := resolveKey(name)
	if err != nil {
		return Key{}, fmt.Errorf("binding %q: %w", spec, err)
	}
	k.Code, k.Rune = code, r
	return k.normalize(), nil
}

func resolveKey(name string) (tcell.Key, rune, error) {
	lower := strings.ToLower(name)
	if code, ok := keyAliases[lower]; ok {
		return code, 0, nil
	}
	if r, ok := runeAliases[lower]; ok {
		return tcell.KeyRune, r, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return tcell.KeyRune, r, nil
	}
	for code, kn := range tcell.KeyNames {
		if strings.EqualFold(kn, name) {
			return code, 0, nil
		}
	}
	return 0, 0, fmt.Errorf("unknown key name %q", name)
}
