// Package viz renders shots and sessions in the terminal.
//
//   - [Canvas]: Braille dot canvas with a world [Viewport]
//   - [PlotTrajectory], [PlotLateral]: asciigraph plots of a recorded flight
//   - [ResultCard]: lipgloss summary of a finished shot
//   - [SessionModel]: bubbletea program that owns and ticks a live session
//
// # Key Bindings
//
//	Enter - Player ready
//	Space - Swing the selected club
//	1-6   - Select club preset
//	R     - Mulligan
//	P     - Toggle putting
//	C     - Cycle camera mode
//	W     - Cycle wind speed
//	G     - Toggle low gravity
//	B     - Cycle ball
//	N     - New hole
//	Q     - Quit
package viz
