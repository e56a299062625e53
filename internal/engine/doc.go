// Package engine runs the lens-box simulation.
//
// A Simulator owns 256 boxes. Each instruction is hashed by label to pick
// a box and then applied to that box's ordered entry list. When every
// instruction has been applied the focusing power is computed:
//
//	sum over boxes i of (i+1) * boxes[i].Summary()
//
// Instructions are applied strictly in token order. Later instructions on
// the same label override or remove earlier state.
//
// Each Simulator (and each call to Run or Solve) owns its boxes. Nothing is
// shared between simulators, so independent runs may execute in parallel
// without synchronization. A single Simulator is not safe for concurrent use.
package engine
