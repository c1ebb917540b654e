// Package haptic provides online, stateful filters and compensators for
// bilateral haptic teleoperation.
//
// Every component consumes streamed force/velocity samples one tick at a
// time and keeps O(1) state:
//
//   - [DeadbandDetector]: suppresses samples within a relative deadband of
//     the last retained sample
//   - [ISS]: input-to-state-stable force/velocity compensation
//   - [TDPA]: time-domain passivity control via an energy ledger
//   - [WAVE]: wave-variable transform for delayed channels
//   - [PD], [PID]: reference trackers built on the same vector primitives
//
// All components are generic over the scalar type (float32 or float64) and
// operate on fixed-dimension [Vec] values. The components are independent
// of one another; an application-level control loop wires them together
// (see the session package).
//
// # Thread Safety
//
// Instances are not safe for concurrent use. Each control loop must own its
// own instances; master and slave sites hold independent state.
package haptic
