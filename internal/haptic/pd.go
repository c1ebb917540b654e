package haptic

// PD is a proportional-derivative tracker producing a force that drives a
// system toward reference position and velocity.
type PD[N Float] struct {
	kP N
	kD N
}

// NewPD creates a PD tracker with the given gains.
func NewPD[N Float](kP, kD N) *PD[N] {
	return &PD[N]{kP: kP, kD: kD}
}

// CalculateForce returns the tracking force for the given reference and
// measured position/velocity.
func (c *PD[N]) CalculateForce(posRef, pos, velRef, vel Vec[N]) Vec[N] {
	return posRef.Sub(pos).Scale(c.kP).Add(velRef.Sub(vel).Scale(c.kD))
}

// KP returns the proportional gain.
func (c *PD[N]) KP() N { return c.kP }

// KD returns the derivative gain.
func (c *PD[N]) KD() N { return c.kD }

// SetKP replaces the proportional gain.
func (c *PD[N]) SetKP(kP N) { c.kP = kP }

// SetKD replaces the derivative gain.
func (c *PD[N]) SetKD(kD N) { c.kD = kD }
