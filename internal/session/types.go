package session

import (
	"errors"
	"fmt"

	"github.com/hapticlab/teleop/internal/haptic"
)

// Scheme selects the stability measure applied to the reflected force.
type Scheme string

const (
	SchemeDirect Scheme = "direct"
	SchemeTDPA   Scheme = "tdpa"
	SchemeWAVE   Scheme = "wave"
	SchemeISS    Scheme = "iss"
)

// Schemes lists the supported coupling schemes.
func Schemes() []Scheme {
	return []Scheme{SchemeDirect, SchemeTDPA, SchemeWAVE, SchemeISS}
}

// ParseScheme validates a scheme name.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeDirect, SchemeTDPA, SchemeWAVE, SchemeISS:
		return Scheme(s), nil
	}
	return "", fmt.Errorf("session: unknown scheme %q", s)
}

// Sample is one tick of the bilateral loop as seen by observers.
type Sample struct {
	T float64

	MasterPos   haptic.Vec[float64]
	MasterVel   haptic.Vec[float64]
	MasterForce haptic.Vec[float64] // feedback force rendered at the master

	SlavePos   haptic.Vec[float64]
	SlaveVel   haptic.Vec[float64]
	SlaveForce haptic.Vec[float64] // environment reaction at the slave

	Energy     float64 // TDPA ledger (zero for other schemes)
	Alpha      float64 // injected damping coefficient
	Suppressed bool    // force update suppressed by the deadband
}

// Metric observes samples over a run and reduces them to one value.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Observer receives every sample of a run.
type Observer interface {
	OnStep(s Sample)
}

// Result is the recorded outcome of a session run.
type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	Steps      int
	Suppressed int
}

// Trace extracts one scalar trace from the recorded samples.
func (r *Result) Trace(extract func(Sample) float64) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = extract(s)
	}
	return out
}

// SessionError wraps an error with loop position context.
type SessionError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SessionError) Unwrap() error { return e.Wrapped }

// ErrDiverged indicates the loop produced a non-finite state.
var ErrDiverged = errors.New("session: state diverged (NaN or Inf)")
