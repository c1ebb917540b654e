package metrics

import "github.com/hapticlab/teleop/internal/session"

// Suppression reports the fraction of reflected-force updates the deadband
// detector suppressed.
type Suppression struct {
	name       string
	suppressed int
	samples    int
}

func NewSuppression() *Suppression {
	return &Suppression{name: "suppression_ratio"}
}

func (m *Suppression) Name() string { return m.name }

func (m *Suppression) Observe(s session.Sample) {
	m.samples++
	if s.Suppressed {
		m.suppressed++
	}
}

func (m *Suppression) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.suppressed) / float64(m.samples)
}

func (m *Suppression) Reset() {
	m.suppressed = 0
	m.samples = 0
}
