package input

import (
	"fmt"

	"github.com/lixenwraith/spherefocus/placement"
)

// Op discriminates engine commands
type Op uint8

const (
	OpNone Op = iota
	OpNavigate
	OpCycleSplit
	OpPlace
)

// Command is a decoded keyboard or network request
// Both inbound paths produce the same Command so dispatch is shared
type Command struct {
	Op        Op
	Direction int              // OpNavigate: -1 left/previous, +1 right/next
	Action    placement.Action // OpPlace
}

// Navigate builds a navigation command, direction is clamped to -1 or +1
func Navigate(direction int) Command {
	if direction < 0 {
		return Command{Op: OpNavigate, Direction: -1}
	}
	return Command{Op: OpNavigate, Direction: 1}
}

// CycleSplit builds a split-focus cycle command
func CycleSplit() Command {
	return Command{Op: OpCycleSplit}
}

// Place builds a placement command
func Place(action placement.Action) Command {
	return Command{Op: OpPlace, Action: action}
}

// Valid reports whether the command carries an operation
func (c Command) Valid() bool {
	switch c.Op {
	case OpNavigate:
		return c.Direction == 1 || c.Direction == -1
	case OpCycleSplit:
		return true
	case OpPlace:
		return c.Action.Valid()
	}
	return false
}

// AllowedWhileAwaiting reports whether the command may run while a placement is pending
// Only the four placement actions pass the gate
func (c Command) AllowedWhileAwaiting() bool {
	return c.Op == OpPlace && c.Action.Valid()
}

func (c Command) String() string {
	switch c.Op {
	case OpNavigate:
		if c.Direction < 0 {
			return "navigate(prev)"
		}
		return "navigate(next)"
	case OpCycleSplit:
		return "cycle_split"
	case OpPlace:
		return fmt.Sprintf("place(%v)", c.Action)
	}
	return "none"
}
