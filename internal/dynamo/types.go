package dynamo

import "math"

// State is laid out as positions followed by velocities, so integrators that
// treat the halves separately (symplectic Euler, Verlet) can split it at n/2.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

type Observer interface {
	OnStep(x State, t float64)
}

// Limiter projects a freshly integrated state back into a valid region.
type Limiter interface {
	Limit(x State) State
}

type Config struct {
	Dt            float64
	Steps         int
	ValidateState bool
}

type Result struct {
	Final      State
	Time       float64
	StepsTaken int
}
