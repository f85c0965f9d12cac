package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key is a captured key press
// Rune is only meaningful when Code is tcell.KeyRune
type Key struct {
	Code tcell.Key
	Rune rune
	Mods tcell.ModMask
}

// KeyFromEvent converts a tcell key event
func KeyFromEvent(ev *tcell.EventKey) Key {
	k := Key{Code: ev.Key(), Mods: ev.Modifiers()}
	if k.Code == tcell.KeyRune {
		k.Rune = ev.Rune()
	}
	return k
}

// normalize folds Alt into Meta: terminals report the platform meta key as either
func (k Key) normalize() Key {
	if k.Mods&(tcell.ModAlt|tcell.ModMeta) != 0 {
		k.Mods = (k.Mods &^ tcell.ModAlt) | tcell.ModMeta
	}
	// Ctrl+letter arrives as a control key code, as tcell.NewEventKey reports it
	if k.Code == tcell.KeyRune && k.Mods&tcell.ModCtrl != 0 {
		switch r := unicode.ToLower(k.Rune); {
		case r >= 'a' && r <= 'z':
			k.Code = tcell.KeyCtrlA + tcell.Key(r-'a')
		}
	}
	if k.Code != tcell.KeyRune {
		k.Rune = 0
	}
	return k
}

// KeyTable maps keys to commands
// Normal bindings apply when no placement is pending
// Placement bindings apply while a placement is pending; every other key is swallowed
type KeyTable struct {
	Normal    map[Key]Command
	Placement map[Key]Command
}

// NewKeyTable creates an empty table
func NewKeyTable() *KeyTable {
	return &KeyTable{
		Normal:    make(map[Key]Command),
		Placement: make(map[Key]Command),
	}
}

// DefaultKeyTable returns the stock bindings
func DefaultKeyTable() *KeyTable {
	kt, err := DefaultKeyBindings().Build()
	if err != nil {
		panic("default key bindings: " + err.Error())
	}
	return kt
}

// BindNormal adds a binding active outside placement
func (kt *KeyTable) BindNormal(k Key, cmd Command) {
	kt.Normal[k.normalize()] = cmd
}

// BindPlacement adds a binding active while a placement is pending
func (kt *KeyTable) BindPlacement(k Key, cmd Command) {
	kt.Placement[k.normalize()] = cmd
}

// Lookup resolves a key press
// consumed is true when the key must not propagate to the focused window
func (kt *KeyTable) Lookup(k Key, awaiting bool) (cmd Command, consumed bool) {
	k = k.normalize()
	if awaiting {
		if cmd, ok := kt.Placement[k]; ok {
			return cmd, true
		}
		return Command{}, true
	}
	if cmd, ok := kt.Normal[k]; ok {
		return cmd, true
	}
	return Command{}, false
}

// Clone returns a deep copy of the table
func (kt *KeyTable) Clone() *KeyTable {
	out := NewKeyTable()
	for k, v := range kt.Normal {
		out.Normal[k] = v
	}
	for k, v := range kt.Placement {
		out.Placement[k] = v
	}
	return out
}
