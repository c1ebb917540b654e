package session

import "github.com/hapticlab/teleop/internal/haptic"

// DelayLine models a fixed-latency communication channel in whole sample
// ticks. It delivers strictly in push order; the first delay pushes come
// back as zero vectors.
type DelayLine struct {
	buf  []haptic.Vec[float64]
	head int
}

// NewDelayLine creates a channel delaying vectors of the given dimension by
// delay ticks. A delay of zero passes samples straight through.
func NewDelayLine(delay, dim int) *DelayLine {
	if delay < 0 {
		delay = 0
	}
	buf := make([]haptic.Vec[float64], delay)
	for i := range buf {
		buf[i] = haptic.NewVec[float64](dim)
	}
	return &DelayLine{buf: buf}
}

// Delay returns the channel latency in ticks.
func (d *DelayLine) Delay() int { return len(d.buf) }

// Push enqueues v and returns the sample from Delay ticks ago.
func (d *DelayLine) Push(v haptic.Vec[float64]) haptic.Vec[float64] {
	if len(d.buf) == 0 {
		return v
	}
	out := d.buf[d.head]
	d.buf[d.head] = v.Clone()
	d.head = (d.head + 1) % len(d.buf)
	return out
}
