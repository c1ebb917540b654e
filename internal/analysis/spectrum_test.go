package analysis

import (
	"math"
	"testing"
)

func sineTrace(n int, dt, hz float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * hz * float64(i) * dt)
	}
	return data
}

func TestPowerSpectrumPeak(t *testing.T) {
	data := sineTrace(1000, 0.001, 5.0)

	ps := PowerSpectrum(data)
	if len(ps) != 500 {
		t.Fatalf("expected 500 bins, got %d", len(ps))
	}

	peak := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak != 5 {
		t.Errorf("expected spectral peak at bin 5, got %d", peak)
	}
}

func TestDominantFrequency(t *testing.T) {
	// 1000 samples at 1khz gives a 1hz bin resolution, so a 5hz sine
	// lands exactly on bin 5.
	data := sineTrace(1000, 0.001, 5.0)

	got := DominantFrequency(data, 0.001)
	if math.Abs(got-5.0) > 1e-9 {
		t.Errorf("expected 5hz, got %f", got)
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	flat := make([]float64, 64)
	if got := DominantFrequency(flat, 0.001); got != 0 {
		t.Errorf("expected 0 for a flat trace, got %f", got)
	}
	if got := DominantFrequency(sineTrace(64, 0.01, 2), 0); got != 0 {
		t.Errorf("expected 0 for non-positive dt, got %f", got)
	}
}
