package haptic

import (
	"errors"
	"math"
	"testing"
)

func TestVec_Norm(t *testing.T) {
	tests := []struct {
		vec      Vec[float64]
		expected float64
	}{
		{VecOf(3.0, 4.0), 5.0},
		{VecOf(1.0, 0.0), 1.0},
		{VecOf(0.0, 0.0), 0.0},
		{VecOf(1.0, 1.0, 1.0, 1.0), 2.0},
	}

	for _, tt := range tests {
		if got := tt.vec.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.vec, got, tt.expected)
		}
	}
}

func TestVec_Arithmetic(t *testing.T) {
	a := VecOf(1.0, 2.0, 3.0)
	b := VecOf(4.0, 5.0, 6.0)

	sum := a.Add(b)
	if sum[0] != 5 || sum[1] != 7 || sum[2] != 9 {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 || scaled[2] != 6 {
		t.Errorf("Scale failed: got %v", scaled)
	}

	if dot := a.Dot(b); dot != 32 {
		t.Errorf("Dot failed: got %v, want 32", dot)
	}
}

func TestVec_Clone_Independent(t *testing.T) {
	a := VecOf(1.0, 2.0)
	c := a.Clone()
	c[0] = 99
	if a[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestVec_IsZero(t *testing.T) {
	if !NewVec[float64](3).IsZero() {
		t.Error("zero vector should report IsZero")
	}
	if VecOf(0.0, 1e-300).IsZero() {
		t.Error("nonzero vector should not report IsZero")
	}
}

func TestVec_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		vec   Vec[float64]
		valid bool
	}{
		{"empty", Vec[float64]{}, true},
		{"normal", VecOf(1.0, 2.0, 3.0), true},
		{"with NaN", VecOf(1.0, math.NaN()), false},
		{"with +Inf", VecOf(1.0, math.Inf(1)), false},
		{"with -Inf", VecOf(1.0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vec.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVec_DimensionMismatchPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on dimension mismatch")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("expected ErrDimensionMismatch, got %v", r)
		}
	}()
	VecOf(1.0, 2.0).Add(VecOf(1.0, 2.0, 3.0))
}

func TestVec_Float32(t *testing.T) {
	v := VecOf[float32](3, 4)
	if got := v.Norm(); math.Abs(float64(got)-5.0) > 1e-6 {
		t.Errorf("float32 Norm = %v, want 5", got)
	}
}
