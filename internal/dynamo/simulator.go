package dynamo

import "fmt"

type Simulator struct {
	sys        System
	integrator Integrator
	limiter    Limiter
	observers  []Observer
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) SetLimiter(l Limiter)   { s.limiter = l }

// Run advances x0 by cfg.Steps steps of cfg.Dt. Observers see the initial
// state and every accepted state after it. With ValidateState set, the run
// stops at the first NaN/Inf state and returns a *SimulationError alongside
// the partial result.
func (s *Simulator) Run(x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	x := x0.Clone()
	t := 0.0
	result := &Result{}

	s.notify(x, t)

	for i := 0; i < cfg.Steps; i++ {
		newX := s.integrator.Step(s.sys, x, t, cfg.Dt)
		if s.limiter != nil {
			newX = s.limiter.Limit(newX)
		}

		if cfg.ValidateState && !newX.IsValid() {
			result.Final, result.Time = x, t
			return result, &SimulationError{Step: i, Time: t, State: newX, Wrapped: ErrInvalidState}
		}

		x = newX
		t += cfg.Dt
		result.StepsTaken++
		s.notify(x, t)
	}

	result.Final = x
	result.Time = t
	return result, nil
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", ErrInvalidConfig, cfg.Steps)
	}
	if len(x0) != s.sys.StateDim() {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}
	return nil
}

func (s *Simulator) notify(x State, t float64) {
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
}
