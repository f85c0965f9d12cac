package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/spherefocus/input"
	"github.com/lixenwraith/spherefocus/placement"
)

// Wire command names
const (
	CmdFocusNext = "focus_next"
	CmdFocusPrev = "focus_prev"
	CmdMoveFocus = "move_focus"
	CmdPlace     = "place"
)

// Protocol errors
var (
	ErrMalformed      = errors.New("malformed datagram")
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgument    = errors.New("bad command argument")
)

// Request is one JSON datagram
//
//	{"cmd":"focus_next"}
//	{"cmd":"focus_prev"}
//	{"cmd":"move_focus","dir":"left|right|up|down"}
//	{"cmd":"place","action":"new_column_left|new_column_right|split_top|split_bottom"}
type Request struct {
	Cmd    string `json:"cmd"`
	Dir    string `json:"dir,omitempty"`
	Action string `json:"action,omitempty"`
}

// Decode parses a datagram into an engine command
func Decode(data []byte) (input.Command, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return input.Command{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return req.Command()
}

// Command maps the request onto the shared command vocabulary
func (r Request) Command() (input.Command, error) {
	switch strings.ToLower(strings.TrimSpace(r.Cmd)) {
	case CmdFocusNext:
		return input.Navigate(1), nil

	case CmdFocusPrev:
		return input.Navigate(-1), nil

	case CmdMoveFocus:
		switch strings.ToLower(strings.TrimSpace(r.Dir)) {
		case "left":
			return input.Navigate(-1), nil
		case "right":
			return input.Navigate(1), nil
		case "up", "down":
			return input.CycleSplit(), nil
		}
		return input.Command{}, fmt.Errorf("%w: dir %q", ErrBadArgument, r.Dir)

	case CmdPlace:
		a, err := placement.ParseAction(r.Action)
		if err != nil {
			return input.Command{}, fmt.Errorf("%w: %v", ErrBadArgument, err)
		}
		return input.Place(a), nil

	case "":
		return input.Command{}, fmt.Errorf("%w: missing cmd", ErrMalformed)
	}
	return input.Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, r.Cmd)
}

// Encode serializes a request for sending
func Encode(r Request) ([]byte, error) {
	if _, err := r.Command(); err != nil {
		return nil, err
	}
	return json.Marshal(r)
}
