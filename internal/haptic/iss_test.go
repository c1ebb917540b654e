package haptic

import (
	"errors"
	"math"
	"testing"
)

func TestISS_RejectsBadConfig(t *testing.T) {
	if _, err := NewISS(1, 0.1, 0.0); !errors.Is(err, ErrNonPositiveMuMax) {
		t.Errorf("mu_max = 0: expected ErrNonPositiveMuMax, got %v", err)
	}
	if _, err := NewISS(1, 0.1, -1.0); !errors.Is(err, ErrNonPositiveMuMax) {
		t.Errorf("mu_max < 0: expected ErrNonPositiveMuMax, got %v", err)
	}
	if _, err := NewISS(1, -0.1, 1.0); !errors.Is(err, ErrNegativeTau) {
		t.Errorf("tau < 0: expected ErrNegativeTau, got %v", err)
	}
}

func TestISS_SettersRejectAndPreserve(t *testing.T) {
	c, err := NewISS(1, 0.5, 2.0)
	if err != nil {
		t.Fatalf("NewISS: %v", err)
	}

	if err := c.SetTau(-1); !errors.Is(err, ErrNegativeTau) {
		t.Errorf("expected ErrNegativeTau, got %v", err)
	}
	if c.Tau() != 0.5 {
		t.Errorf("rejected SetTau must leave tau unchanged, got %v", c.Tau())
	}

	if err := c.SetMuMax(0); !errors.Is(err, ErrNonPositiveMuMax) {
		t.Errorf("expected ErrNonPositiveMuMax, got %v", err)
	}
	if c.MuMax() != 2.0 {
		t.Errorf("rejected SetMuMax must leave mu_max unchanged, got %v", c.MuMax())
	}

	if err := c.SetTau(0); err != nil {
		t.Errorf("tau = 0 is valid, got %v", err)
	}
	if err := c.SetMuMax(3); err != nil {
		t.Errorf("mu_max = 3 is valid, got %v", err)
	}
}

func TestISS_ConstantForcePassesThrough(t *testing.T) {
	c, _ := NewISS(3, 0.7, 1.0)
	force := VecOf(1.0, -2.0, 0.5)
	dt := 0.001

	c.CalculateForce(force, dt)
	// Second tick with the same input: the derivative term vanishes.
	got := c.CalculateForce(force, dt)

	for i := range force {
		if math.Abs(got[i]-force[i]) > 1e-12 {
			t.Errorf("component %d: got %v, want %v", i, got[i], force[i])
		}
	}
}

func TestISS_ForceDerivativeTerm(t *testing.T) {
	c, _ := NewISS(1, 0.5, 1.0)
	dt := 0.1

	// prevForce starts at zero: iss = f + (f-0)*tau/dt = 1 + 1*5 = 6.
	got := c.CalculateForce(VecOf(1.0), dt)
	if math.Abs(got[0]-6.0) > 1e-12 {
		t.Errorf("first tick: got %v, want 6", got[0])
	}

	// prevForce is now 1: iss = 2 + 1*5 = 7.
	got = c.CalculateForce(VecOf(2.0), dt)
	if math.Abs(got[0]-7.0) > 1e-12 {
		t.Errorf("second tick: got %v, want 7", got[0])
	}
}

func TestISS_CalculateVelIsPure(t *testing.T) {
	c, _ := NewISS(1, 0.0, 2.0)
	dt := 0.1

	c.CalculateForce(VecOf(1.0), dt)

	// vel - (force - prevForce)/dt/muMax = 3 - (2-1)/0.1/2 = -2.
	got := c.CalculateVel(VecOf(3.0), VecOf(2.0), dt)
	if math.Abs(got[0]-(-2.0)) > 1e-12 {
		t.Errorf("CalculateVel = %v, want -2", got[0])
	}

	// A second identical call must yield the same result: no mutation.
	again := c.CalculateVel(VecOf(3.0), VecOf(2.0), dt)
	if got[0] != again[0] {
		t.Error("CalculateVel mutated state")
	}
}
