package session

import (
	"testing"

	"github.com/hapticlab/teleop/internal/haptic"
)

func TestDelayLine_ZeroDelayPassesThrough(t *testing.T) {
	d := NewDelayLine(0, 1)
	v := haptic.VecOf(42.0)
	if got := d.Push(v); got[0] != 42.0 {
		t.Errorf("Push = %v, want 42", got[0])
	}
}

func TestDelayLine_DeliversInOrder(t *testing.T) {
	d := NewDelayLine(3, 1)

	// The first three outputs are the zero prefill.
	for i := 0; i < 3; i++ {
		out := d.Push(haptic.VecOf(float64(i + 1)))
		if out[0] != 0 {
			t.Errorf("tick %d: got %v, want 0 (prefill)", i, out[0])
		}
	}

	// From then on samples come back exactly delay ticks later.
	for i := 3; i < 10; i++ {
		out := d.Push(haptic.VecOf(float64(i + 1)))
		want := float64(i + 1 - 3)
		if out[0] != want {
			t.Errorf("tick %d: got %v, want %v", i, out[0], want)
		}
	}
}

func TestDelayLine_ClonesSamples(t *testing.T) {
	d := NewDelayLine(1, 1)
	v := haptic.VecOf(1.0)
	d.Push(v)
	v[0] = 99
	if out := d.Push(haptic.VecOf(2.0)); out[0] != 1.0 {
		t.Errorf("delay line must not alias pushed samples, got %v", out[0])
	}
}

func TestDelayLine_NegativeDelayClamped(t *testing.T) {
	d := NewDelayLine(-5, 1)
	if d.Delay() != 0 {
		t.Errorf("Delay = %d, want 0", d.Delay())
	}
}
