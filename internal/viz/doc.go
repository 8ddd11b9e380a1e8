// Package viz renders the deflection tube in the terminal.
//
// [Model] is a Bubble Tea program drawing the tube, plates, detection plane
// and beam on a braille [Canvas]. Controls are changed live and every change
// recomputes the beam; the spot on the detection plane glides to its new
// position on a spring.
//
// # Key Bindings
//
//	Tab     - Select control
//	Up/K    - Increase control
//	Down/J  - Decrease control
//	M       - Toggle uniform/curved field
//	I       - Cycle integrator (curved mode)
//	+/-     - Particle count
//	R       - Reset controls
//	T       - Cycle phosphor themes
//	?       - Toggle help
//	Q       - Quit
package viz
