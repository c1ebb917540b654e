package session

import (
	"math"

	"github.com/hapticlab/teleop/internal/haptic"
)

// Device is a mass-spring-damper model of a haptic interface or of the
// slave-side environment. Stiffness zero gives a free mass (a master handle
// with light damping), nonzero stiffness a compliant environment.
type Device struct {
	Mass      float64
	Stiffness float64
	Damping   float64

	pos haptic.Vec[float64]
	vel haptic.Vec[float64]
}

// NewDevice creates a device at rest at the origin.
func NewDevice(dim int, mass, stiffness, damping float64) *Device {
	return &Device{
		Mass:      mass,
		Stiffness: stiffness,
		Damping:   damping,
		pos:       haptic.NewVec[float64](dim),
		vel:       haptic.NewVec[float64](dim),
	}
}

// Pos returns the current position.
func (d *Device) Pos() haptic.Vec[float64] { return d.pos.Clone() }

// Vel returns the current velocity.
func (d *Device) Vel() haptic.Vec[float64] { return d.vel.Clone() }

// Step advances the device one tick under the applied force using a
// semi-implicit Euler step.
func (d *Device) Step(force haptic.Vec[float64], dt float64) {
	// acc = (f - k*x - c*v) / m
	acc := force.Sub(d.pos.Scale(d.Stiffness)).Sub(d.vel.Scale(d.Damping)).Scale(1 / d.Mass)
	d.vel = d.vel.Add(acc.Scale(dt))
	d.pos = d.pos.Add(d.vel.Scale(dt))
}

// Reaction returns the force the spring-damper exerts back on whatever is
// pushing the device.
func (d *Device) Reaction() haptic.Vec[float64] {
	return d.pos.Scale(d.Stiffness).Add(d.vel.Scale(d.Damping))
}

// Operator is a scripted motion source driving the master handle with a
// sinusoidal force along the first axis.
type Operator struct {
	Amplitude float64
	Frequency float64

	dim int
}

// NewOperator creates an operator profile for the given vector dimension.
func NewOperator(dim int, amplitude, frequency float64) *Operator {
	return &Operator{Amplitude: amplitude, Frequency: frequency, dim: dim}
}

// Force returns the operator force at time t.
func (o *Operator) Force(t float64) haptic.Vec[float64] {
	f := haptic.NewVec[float64](o.dim)
	if o.dim > 0 {
		f[0] = o.Amplitude * math.Sin(2*math.Pi*o.Frequency*t)
	}
	return f
}
