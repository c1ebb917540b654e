package haptic

// PID is a proportional-integral-derivative tracker. It accumulates the
// position error over time, so unlike [PD] it carries per-instance state.
type PID[N Float] struct {
	kP N
	kI N
	kD N

	integralError Vec[N]
}

// NewPID creates a PID tracker for vectors of the given dimension.
func NewPID[N Float](dim int, kP, kI, kD N) *PID[N] {
	return &PID[N]{
		kP:            kP,
		kI:            kI,
		kD:            kD,
		integralError: NewVec[N](dim),
	}
}

// CalculateForce returns the tracking force for the given reference and
// measured position/velocity, integrating the position error over dt.
func (c *PID[N]) CalculateForce(posRef, pos, velRef, vel Vec[N], dt N) Vec[N] {
	err := posRef.Sub(pos)
	c.integralError = c.integralError.Add(err.Scale(dt))

	compP := err.Scale(c.kP)
	compI := c.integralError.Scale(c.kI)
	compD := velRef.Sub(vel).Scale(c.kD)

	return compP.Add(compI).Add(compD)
}

// KP returns the proportional gain.
func (c *PID[N]) KP() N { return c.kP }

// KI returns the integral gain.
func (c *PID[N]) KI() N { return c.kI }

// KD returns the derivative gain.
func (c *PID[N]) KD() N { return c.kD }

// SetKP replaces the proportional gain.
func (c *PID[N]) SetKP(kP N) { c.kP = kP }

// SetKI replaces the integral gain.
func (c *PID[N]) SetKI(kI N) { c.kI = kI }

// SetKD replaces the derivative gain.
func (c *PID[N]) SetKD(kD N) { c.kD = kD }
