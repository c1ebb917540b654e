package metrics

import "github.com/hapticlab/teleop/internal/session"

// ControlEffort tracks the mean norm of the force rendered at the master.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{name: "control_effort"}
}

func (c *ControlEffort) Name() string { return c.name }

func (c *ControlEffort) Observe(s session.Sample) {
	c.sum += float64(s.MasterForce.Norm())
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// PeakForce tracks the largest environment reaction seen at the slave.
type PeakForce struct {
	name string
	max  float64
}

func NewPeakForce() *PeakForce {
	return &PeakForce{name: "peak_force"}
}

func (p *PeakForce) Name() string { return p.name }

func (p *PeakForce) Observe(s session.Sample) {
	if n := float64(s.SlaveForce.Norm()); n > p.max {
		p.max = n
	}
}

func (p *PeakForce) Value() float64 { return p.max }

func (p *PeakForce) Reset() { p.max = 0 }
