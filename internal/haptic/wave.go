package haptic

// WAVE is the wave-variable transform for bilateral teleoperation over a
// delayed channel. Encoding the force/velocity pair as incoming/outgoing
// waves keeps the channel passive regardless of transmission delay.
//
// All transforms are pure functions of the fixed wave impedance b; WAVE
// carries no sample history. The velocity recovery formulas deliberately
// differ in sign between master and slave: that asymmetry is the convention
// distinguishing the two transform directions.
type WAVE[N Float] struct {
	b N
}

// NewWAVE creates a transform with wave impedance b. It fails with
// [ErrNonPositiveImpedance] if b <= 0.
func NewWAVE[N Float](b N) (*WAVE[N], error) {
	if b <= 0 {
		return nil, ErrNonPositiveImpedance
	}
	return &WAVE[N]{b: b}, nil
}

// B returns the wave impedance.
func (w *WAVE[N]) B() N { return w.b }

// UM computes the incoming wave at the master site:
// (force + vel*b) / sqrt(2b).
func (w *WAVE[N]) UM(forceM, velM Vec[N]) Vec[N] {
	return forceM.Add(velM.Scale(w.b)).Scale(1 / sqrt(2*w.b))
}

// US computes the incoming wave at the slave site:
// (force - vel*b) / sqrt(2b).
func (w *WAVE[N]) US(forceS, velS Vec[N]) Vec[N] {
	return forceS.Sub(velS.Scale(w.b)).Scale(1 / sqrt(2*w.b))
}

// VM computes the outgoing wave at the master site. It is by definition
// the slave incoming-wave formula evaluated with the master's samples.
func (w *WAVE[N]) VM(forceM, velM Vec[N]) Vec[N] {
	return w.US(forceM, velM)
}

// VS computes the outgoing wave at the slave site. It is by definition
// the master incoming-wave formula evaluated with the slave's samples.
func (w *WAVE[N]) VS(forceS, velS Vec[N]) Vec[N] {
	return w.UM(forceS, velS)
}

// ForceM recovers the master force from a wave pair: (u + v) * sqrt(b/2).
func (w *WAVE[N]) ForceM(uM, vM Vec[N]) Vec[N] {
	return uM.Add(vM).Scale(sqrt(w.b / 2))
}

// ForceS recovers the slave force from a wave pair: (u + v) * sqrt(b/2).
func (w *WAVE[N]) ForceS(uS, vS Vec[N]) Vec[N] {
	return uS.Add(vS).Scale(sqrt(w.b / 2))
}

// VelM recovers the master velocity: (u - vel) / (2b).
func (w *WAVE[N]) VelM(uM, velM Vec[N]) Vec[N] {
	return uM.Sub(velM).Scale(1 / (2 * w.b))
}

// VelS recovers the slave velocity: (u + vel) / (2b). The sign differs
// from VelM on purpose; do not symmetrize.
func (w *WAVE[N]) VelS(uS, velS Vec[N]) Vec[N] {
	return uS.Add(velS).Scale(1 / (2 * w.b))
}
