package haptic

import "errors"

// Domain errors for component configuration. A rejected configuration
// leaves the previous valid configuration intact.
var (
	// ErrNegativeThreshold indicates a deadband threshold below zero.
	ErrNegativeThreshold = errors.New("haptic: threshold must be non-negative")

	// ErrNegativeTau indicates a negative ISS time constant.
	ErrNegativeTau = errors.New("haptic: tau must be non-negative")

	// ErrNonPositiveMuMax indicates an ISS gradient bound of zero or below.
	ErrNonPositiveMuMax = errors.New("haptic: mu_max must be positive")

	// ErrNonPositiveImpedance indicates a wave impedance of zero or below.
	ErrNonPositiveImpedance = errors.New("haptic: wave impedance must be positive")

	// ErrDimensionMismatch indicates vector operands of unequal dimension.
	ErrDimensionMismatch = errors.New("haptic: vector dimension mismatch")
)
