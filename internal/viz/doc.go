// Package viz provides a terminal view of a running parcel.
//
// The package implements a Bubble Tea TUI:
//
//   - [Model]: steps a parcel live and draws S, T and qi as they evolve
//   - [Picker]: preset selection and parameter editing before a run
//   - [Canvas]: Braille pixel canvas used for the T/S trajectory panel
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from the initial state
//	+/-   - More/fewer steps per frame
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
