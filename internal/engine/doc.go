// Package engine computes particle tracks through a deflection tube.
//
// A tube is described by a [Geometry]: a source on the centerline, a
// deflection region between two plates, and a detection plane. Each call
// takes the geometry and a set of [Params] by value and returns a fresh
// [Track]; nothing is cached between calls.
//
// Two deflection modes are supported:
//
//   - [ModeUniform]: closed-form constant-acceleration kinematics between
//     the plates, straight drift elsewhere.
//   - [ModeCurved]: fixed-step integration of a Lorentz-type transverse
//     acceleration. The field strength is derived from the plate potential
//     so that, at the initial forward speed, it produces the same
//     acceleration as the uniform case. This keeps the two modes comparable;
//     it is not a model of a real magnetic deflection yoke.
//
// # Numeric Safety
//
// The engine never fails on numeric input. Speeds are floored, accelerations
// saturate, and every emitted transverse sample is clamped into the guard
// band returned by [kinematics.GuardBand]. Impact positions are clamped to
// the tube. Geometry that breaks the ordering invariant is not rejected here;
// use [Validate] for that.
package engine
