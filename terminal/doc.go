// Package terminal is a simulated desktop on a tcell screen.
//
// Each window is a titled box. The desktop implements the engine's compositor
// and placement UI: transforms pushed by the engine are projected onto the
// screen on every commit, so the ring, the camera sweep and split columns can
// be watched without a live window manager.
//
// Keys:
//   - n: open a window, x: close the focused window
//   - m: toggle maximize, f: toggle fullscreen, h: minimize, u: restore minimized
//   - Tab: focus the next window in creation order
//   - q, Ctrl+C: quit
//
// While the placement popup is open, 1-4 or Enter pick a choice, Tab moves the
// selection and mouse clicks hit the buttons. Every key first passes through the
// engine's key table and only reaches the desktop when the engine leaves it.
package terminal
