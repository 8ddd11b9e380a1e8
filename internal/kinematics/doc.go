// Package kinematics converts the control inputs of a deflection tube into
// the quantities the trajectory engine integrates.
//
//   - [InitialSpeed]: accelerating potential to forward speed
//   - [FieldAcceleration]: plate potential and spacing to transverse acceleration
//   - [CurvatureAcceleration]: field strength and speed to Lorentz-type acceleration
//
// Signs are chosen so that a positive control value deflects the particle
// towards positive transverse coordinates, regardless of the sign of the
// particle charge.
//
// # Numeric Safety
//
// Every function here returns a finite value for any input. The helpers in
// safety.go ([SafeSpeed], [Finite], [ClampFinite]) are the only place the
// engine substitutes values, so callers can rely on one policy.
package kinematics
