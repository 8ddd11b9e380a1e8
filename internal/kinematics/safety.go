package kinematics

import "math"

// SafeSpeed floors v at SpeedFloor and replaces non-finite values with it.
func SafeSpeed(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < SpeedFloor {
		return SpeedFloor
	}
	return v
}

// Finite returns v, or fallback when v is NaN or infinite.
func Finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// Saturate maps infinities to the largest finite value of the same sign and
// NaN to zero.
func Saturate(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}

// ClampFinite clamps v into [lo, hi]. NaN maps to the middle of the range,
// infinities to the matching bound.
func ClampFinite(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GuardBand returns the transverse range path samples are clamped into for a
// tube of the given height.
func GuardBand(height float64) (lo, hi float64) {
	h := math.Abs(Finite(height, 0))
	return -GuardFactor * h, (1 + GuardFactor) * h
}
