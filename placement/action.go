package placement

import (
	"fmt"
	"strings"
)

// Action is the user's decision on where a new window goes
type Action uint8

const (
	ActionNone Action = iota
	NewColumnLeft
	NewColumnRight
	SplitTop
	SplitBottom
)

// Actions lists the four placement choices in presentation order
var Actions = [...]Action{NewColumnLeft, NewColumnRight, SplitTop, SplitBottom}

var actionNames = map[Action]string{
	ActionNone:     "none",
	NewColumnLeft:  "new_column_left",
	NewColumnRight: "new_column_right",
	SplitTop:       "split_top",
	SplitBottom:    "split_bottom",
}

var actionLabels = map[Action]string{
	NewColumnLeft:  "New column left",
	NewColumnRight: "New column right",
	SplitTop:       "Split top",
	SplitBottom:    "Split bottom",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// Label is the human-readable popup text for the action
func (a Action) Label() string {
	return actionLabels[a]
}

// Valid reports whether a is one of the four placement choices
func (a Action) Valid() bool {
	return a >= NewColumnLeft && a <= SplitBottom
}

// ParseAction accepts snake_case, kebab-case or camelCase action names
func ParseAction(s string) (Action, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(s)))
	for a, name := range actionNames {
		if !a.Valid() {
			continue
		}
		if norm == name || norm == strings.ReplaceAll(name, "_", "") {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown placement action %q", s)
}
