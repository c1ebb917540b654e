package haptic

// DeadbandDetector suppresses samples whose change relative to the last
// retained sample is imperceptible.
//
// A sample is in the deadband of the retained sample when their distance is
// within threshold times the retained sample's norm. Perceptual deadband
// compression (Weber-Fechner style just-noticeable differences) filters out
// updates a human operator cannot feel, which cuts packet rate on the
// haptic channel considerably.
//
// The threshold is intended for [0, 1] but values above 1 are accepted.
// When the retained sample is the zero vector the deadband radius is zero,
// so any nonzero sample is reported as outside the deadband. That is the
// intended behavior: there is no meaningful relative change from zero.
type DeadbandDetector[N Float] struct {
	prevVals  Vec[N]
	threshold N
	deadband  N
}

// NewDeadbandDetector creates a detector with the given relative threshold
// and initial reference sample. It fails with [ErrNegativeThreshold] if
// threshold < 0.
func NewDeadbandDetector[N Float](threshold N, initial Vec[N]) (*DeadbandDetector[N], error) {
	if threshold < 0 {
		return nil, ErrNegativeThreshold
	}
	d := &DeadbandDetector[N]{
		prevVals:  initial.Clone(),
		threshold: threshold,
	}
	d.deadband = threshold * d.prevVals.Norm()
	return d, nil
}

// IsInDeadband reports whether vals is within the deadband of the retained
// sample. A sample on the boundary counts as inside. When vals falls
// outside, it becomes the new retained sample and the deadband radius is
// recomputed from it.
func (d *DeadbandDetector[N]) IsInDeadband(vals Vec[N]) bool {
	if d.prevVals.Sub(vals).Norm() <= d.deadband {
		return true
	}
	d.prevVals = vals.Clone()
	d.deadband = d.threshold * d.prevVals.Norm()
	return false
}

// Threshold returns the relative threshold.
func (d *DeadbandDetector[N]) Threshold() N { return d.threshold }

// SetThreshold replaces the relative threshold and recomputes the deadband
// radius. It fails with [ErrNegativeThreshold] if t < 0, leaving the
// previous threshold in place.
func (d *DeadbandDetector[N]) SetThreshold(t N) error {
	if t < 0 {
		return ErrNegativeThreshold
	}
	d.threshold = t
	d.deadband = t * d.prevVals.Norm()
	return nil
}

// PrevVals returns a copy of the retained reference sample.
func (d *DeadbandDetector[N]) PrevVals() Vec[N] { return d.prevVals.Clone() }

// SetPrevVals forcibly replaces the retained sample without a deadband
// test, e.g. to reseed after the value was updated out of band.
func (d *DeadbandDetector[N]) SetPrevVals(vals Vec[N]) {
	d.prevVals = vals.Clone()
	d.deadband = d.threshold * d.prevVals.Norm()
}
