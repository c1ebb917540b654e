// Package metrics provides session metrics over per-tick haptic samples.
package metrics

import (
	"github.com/hapticlab/teleop/internal/session"
)

// EnergyLedger integrates the power delivered to the master port and
// tracks the minimum of the running ledger. A negative minimum means the
// loop generated energy at some point: the passivity margin.
type EnergyLedger struct {
	name   string
	energy float64
	min    float64
	prevT  float64
	first  bool
}

func NewEnergyLedger() *EnergyLedger {
	return &EnergyLedger{name: "passivity_margin", first: true}
}

func (e *EnergyLedger) Name() string { return e.name }

func (e *EnergyLedger) Observe(s session.Sample) {
	if e.first {
		e.prevT = s.T
		e.first = false
		return
	}
	dt := s.T - e.prevT
	e.prevT = s.T
	if dt <= 0 {
		return
	}
	e.energy += s.MasterForce.Dot(s.MasterVel) * dt
	if e.energy < e.min {
		e.min = e.energy
	}
}

// Value returns the lowest point of the energy ledger over the run.
func (e *EnergyLedger) Value() float64 { return e.min }

func (e *EnergyLedger) Reset() {
	e.energy = 0
	e.min = 0
	e.prevT = 0
	e.first = true
}
