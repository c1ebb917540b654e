package haptic

// ISS is an input-to-state-stable compensator. Unlike strict passivity
// approaches it tolerates bounded energy generation, which makes it less
// conservative: the corrected force may lead the raw force by a derivative
// term scaled with tau, while the compensated velocity subtracts the force
// gradient bounded by muMax.
//
// Callers must never pass dt == 0; the derivative terms divide by dt and
// the resulting non-finite values are propagated, not masked.
type ISS[N Float] struct {
	tau       N
	muMax     N
	prevForce Vec[N]
}

// NewISS creates a compensator for vectors of the given dimension.
// muMax must satisfy 0 <= f'(x) <= muMax for the environment force
// gradient and be strictly positive; tau must be non-negative.
func NewISS[N Float](dim int, tau, muMax N) (*ISS[N], error) {
	if tau < 0 {
		return nil, ErrNegativeTau
	}
	if muMax <= 0 {
		return nil, ErrNonPositiveMuMax
	}
	return &ISS[N]{
		tau:       tau,
		muMax:     muMax,
		prevForce: NewVec[N](dim),
	}, nil
}

// CalculateForce returns the ISS-corrected force
//
//	force + (force - prevForce) * tau / dt
//
// and retains force as the reference for the next tick.
func (c *ISS[N]) CalculateForce(force Vec[N], dt N) Vec[N] {
	issForce := force.Add(force.Sub(c.prevForce).Scale(c.tau / dt))
	c.prevForce = force.Clone()
	return issForce
}

// CalculateVel returns the compensated velocity
//
//	vel - (force - prevForce) / dt / muMax
//
// It does not mutate the retained force: call it with the same force sample
// that was passed to the most recent CalculateForce so the derivative term
// is consistent.
func (c *ISS[N]) CalculateVel(vel, force Vec[N], dt N) Vec[N] {
	return vel.Sub(force.Sub(c.prevForce).Scale(1 / (dt * c.muMax)))
}

// Tau returns the time constant.
func (c *ISS[N]) Tau() N { return c.tau }

// MuMax returns the force gradient bound.
func (c *ISS[N]) MuMax() N { return c.muMax }

// SetTau replaces the time constant. It fails with [ErrNegativeTau] if
// tau < 0.
func (c *ISS[N]) SetTau(tau N) error {
	if tau < 0 {
		return ErrNegativeTau
	}
	c.tau = tau
	return nil
}

// SetMuMax replaces the gradient bound. It fails with
// [ErrNonPositiveMuMax] if muMax <= 0.
func (c *ISS[N]) SetMuMax(muMax N) error {
	if muMax <= 0 {
		return ErrNonPositiveMuMax
	}
	c.muMax = muMax
	return nil
}
