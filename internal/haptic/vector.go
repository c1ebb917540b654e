package haptic

import "math"

// Float is the scalar field the toolbox is generic over.
type Float interface {
	~float32 | ~float64
}

// Vec is a fixed-dimension vector of N. The dimension is set at
// construction and must match across operands; mixing dimensions is a
// programming error and panics with [ErrDimensionMismatch].
type Vec[N Float] []N

// NewVec returns the zero vector of the given dimension.
func NewVec[N Float](dim int) Vec[N] {
	return make(Vec[N], dim)
}

// VecOf builds a vector from its components.
func VecOf[N Float](vals ...N) Vec[N] {
	v := make(Vec[N], len(vals))
	copy(v, vals)
	return v
}

func (v Vec[N]) Dim() int { return len(v) }

func (v Vec[N]) Clone() Vec[N] {
	c := make(Vec[N], len(v))
	copy(c, v)
	return c
}

func (v Vec[N]) assertDim(other Vec[N]) {
	if len(v) != len(other) {
		panic(ErrDimensionMismatch)
	}
}

func (v Vec[N]) Add(other Vec[N]) Vec[N] {
	v.assertDim(other)
	result := make(Vec[N], len(v))
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

func (v Vec[N]) Sub(other Vec[N]) Vec[N] {
	v.assertDim(other)
	result := make(Vec[N], len(v))
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

func (v Vec[N]) Scale(factor N) Vec[N] {
	result := make(Vec[N], len(v))
	for i := range v {
		result[i] = v[i] * factor
	}
	return result
}

func (v Vec[N]) Dot(other Vec[N]) N {
	v.assertDim(other)
	var sum N
	for i := range v {
		sum += v[i] * other[i]
	}
	return sum
}

// Norm returns the Euclidean norm of v.
func (v Vec[N]) Norm() N {
	return sqrt(v.Dot(v))
}

// IsZero reports whether every component is exactly zero.
func (v Vec[N]) IsZero() bool {
	for _, c := range v {
		if c != 0 {
			return false
		}
	}
	return true
}

// IsValid reports whether v is free of NaN and Inf components.
func (v Vec[N]) IsValid() bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func sqrt[N Float](x N) N {
	return N(math.Sqrt(float64(x)))
}
