package haptic

// TDPA is a time-domain passivity controller. It keeps a running ledger of
// the energy exchanged through the port (force-velocity power per tick plus
// the energy created by the previous correction) and, whenever the ledger
// would go negative, injects a velocity-proportional damping term sized to
// exactly cancel the deficit.
type TDPA[N Float] struct {
	alpha   N
	energy  N
	prevVel Vec[N]
}

// NewTDPA creates a controller for vectors of the given dimension with a
// zeroed energy ledger.
func NewTDPA[N Float](dim int) *TDPA[N] {
	return &TDPA[N]{prevVel: NewVec[N](dim)}
}

// CalculateForce accumulates this tick's power into the energy ledger and
// returns force with damping injected when the ledger is negative.
//
// When the ledger is negative but vel is the zero vector, no damping can be
// injected: alpha stays zero and the deficit remains on the ledger to be
// corrected on the next nonzero-velocity tick.
func (c *TDPA[N]) CalculateForce(vel, force Vec[N]) Vec[N] {
	c.energy += force.Dot(vel) + c.alpha*c.prevVel.Dot(c.prevVel)
	c.prevVel = vel.Clone()

	c.alpha = 0
	if c.energy < 0 {
		if vv := vel.Dot(vel); vv > 0 {
			c.alpha = -c.energy / vv
		}
	}

	if c.alpha == 0 {
		return force.Clone()
	}
	return force.Add(vel.Scale(c.alpha))
}

// Alpha returns the damping coefficient injected on the last tick.
func (c *TDPA[N]) Alpha() N { return c.alpha }

// Energy returns the running energy ledger.
func (c *TDPA[N]) Energy() N { return c.energy }
