package kinematics

import "math"

// InitialSpeed returns the forward speed of a particle accelerated from rest
// through potential v (volts): sqrt(2qV/m). Non-positive or non-finite
// potentials return SpeedFloor.
func InitialSpeed(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return SpeedFloor
	}
	return SafeSpeed(math.Sqrt(Saturate(2 * chargeToMass * v)))
}

// FieldAcceleration returns the transverse acceleration between plates held
// at potential v and separated by spacing d. A non-positive or non-finite
// spacing yields zero rather than an infinite field.
func FieldAcceleration(v, d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return 0
	}
	e := Saturate(v) / d
	return Saturate(chargeToMass * e)
}

// CurvatureAcceleration returns q*v*B/m for field strength b at forward
// speed v.
func CurvatureAcceleration(b, v float64) float64 {
	return Saturate(chargeToMass * (Saturate(v) * Saturate(b)))
}

// EquivalentField returns the field strength that makes CurvatureAcceleration
// equal to a at speed v. Curved mode uses it so both deflection modes bend
// the beam by comparable amounts for the same plate potential.
func EquivalentField(a, v float64) float64 {
	v = SafeSpeed(v)
	return Saturate(Finite(a, 0) / (chargeToMass * v))
}

// KineticEnergy returns the kinetic energy in joules gained across potential v.
func KineticEnergy(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return ElementaryCharge * v
}
