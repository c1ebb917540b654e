// Package session wires the haptic toolbox into a simulated bilateral
// teleoperation loop: a master device driven by an operator motion profile,
// a slave device coupled to a spring-damper environment, and a delay-line
// channel between them.
//
// The coupling scheme is selectable per session: direct PID tracking, TDPA
// passivity control on the reflected force, ISS compensation, or the
// wave-variable transform at the channel boundary. Deadband compression can
// be applied to the reflected force stream independently of the scheme.
//
// A Session is not safe for concurrent use; run one session per goroutine.
package session
