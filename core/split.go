package core

import "fmt"

// SplitKind is a window's vertical placement within a column
type SplitKind uint8

const (
	SplitFull SplitKind = iota
	SplitTop
	SplitBottom
)

var splitNames = [...]string{
	SplitFull:   "full",
	SplitTop:    "top",
	SplitBottom: "bottom",
}

func (k SplitKind) String() string {
	if int(k) < len(splitNames) {
		return splitNames[k]
	}
	return fmt.Sprintf("split(%d)", uint8(k))
}

// Opposite returns the other half of a split column; full has no opposite
func (k SplitKind) Opposite() SplitKind {
	switch k {
	case SplitTop:
		return SplitBottom
	case SplitBottom:
		return SplitTop
	}
	return SplitFull
}
