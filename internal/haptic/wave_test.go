package haptic

import (
	"errors"
	"math"
	"testing"
)

func TestWAVE_RejectsNonPositiveImpedance(t *testing.T) {
	for _, b := range []float64{0.0, -1.0} {
		if _, err := NewWAVE(b); !errors.Is(err, ErrNonPositiveImpedance) {
			t.Errorf("b = %v: expected ErrNonPositiveImpedance, got %v", b, err)
		}
	}
}

func TestWAVE_ForceRoundTrip(t *testing.T) {
	tests := []struct {
		b     float64
		force Vec[float64]
		vel   Vec[float64]
	}{
		{1.0, VecOf(1.0), VecOf(0.5)},
		{0.5, VecOf(-2.0, 3.0), VecOf(1.0, -1.0)},
		{10.0, VecOf(0.0, 0.0, 0.0), VecOf(0.0, 0.0, 0.0)},
		{2.5, VecOf(1.5, -0.25, 4.0), VecOf(-3.0, 0.1, 2.0)},
	}

	for _, tt := range tests {
		w, err := NewWAVE(tt.b)
		if err != nil {
			t.Fatalf("NewWAVE(%v): %v", tt.b, err)
		}

		uM := w.UM(tt.force, tt.vel)
		vM := w.VM(tt.force, tt.vel)
		got := w.ForceM(uM, vM)
		for i := range tt.force {
			if math.Abs(got[i]-tt.force[i]) > 1e-12 {
				t.Errorf("b=%v: ForceM(UM, VM)[%d] = %v, want %v", tt.b, i, got[i], tt.force[i])
			}
		}

		uS := w.US(tt.force, tt.vel)
		vS := w.VS(tt.force, tt.vel)
		got = w.ForceS(uS, vS)
		for i := range tt.force {
			if math.Abs(got[i]-tt.force[i]) > 1e-12 {
				t.Errorf("b=%v: ForceS(US, VS)[%d] = %v, want %v", tt.b, i, got[i], tt.force[i])
			}
		}
	}
}

func TestWAVE_OutgoingWavesAreAliases(t *testing.T) {
	w, _ := NewWAVE(3.0)
	force := VecOf(1.0, -2.0)
	vel := VecOf(0.5, 0.25)

	vM := w.VM(force, vel)
	uS := w.US(force, vel)
	for i := range vM {
		if vM[i] != uS[i] {
			t.Errorf("VM[%d] = %v, US[%d] = %v: must be identical", i, vM[i], i, uS[i])
		}
	}

	vS := w.VS(force, vel)
	uM := w.UM(force, vel)
	for i := range vS {
		if vS[i] != uM[i] {
			t.Errorf("VS[%d] = %v, UM[%d] = %v: must be identical", i, vS[i], i, uM[i])
		}
	}
}

func TestWAVE_VelocityRecoveryAsymmetry(t *testing.T) {
	w, _ := NewWAVE(2.0)
	u := VecOf(3.0)
	vel := VecOf(1.0)

	// VelM subtracts, VelS adds; both divide by 2b.
	if got := w.VelM(u, vel); got[0] != (3.0-1.0)/4.0 {
		t.Errorf("VelM = %v, want 0.5", got[0])
	}
	if got := w.VelS(u, vel); got[0] != (3.0+1.0)/4.0 {
		t.Errorf("VelS = %v, want 1", got[0])
	}
}

func TestWAVE_KnownValues(t *testing.T) {
	// b = 2: sqrt(2b) = 2, sqrt(b/2) = 1.
	w, _ := NewWAVE(2.0)
	force := VecOf(4.0)
	vel := VecOf(1.0)

	if got := w.UM(force, vel); math.Abs(got[0]-3.0) > 1e-12 {
		t.Errorf("UM = %v, want (4+2)/2 = 3", got[0])
	}
	if got := w.US(force, vel); math.Abs(got[0]-1.0) > 1e-12 {
		t.Errorf("US = %v, want (4-2)/2 = 1", got[0])
	}
	if got := w.ForceM(VecOf(3.0), VecOf(1.0)); math.Abs(got[0]-4.0) > 1e-12 {
		t.Errorf("ForceM = %v, want 4", got[0])
	}
}
