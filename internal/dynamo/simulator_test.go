package dynamo

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

type decay struct{}

func (d *decay) Derive(x State, t float64) State { return State{-x[0]} }
func (d *decay) StateDim() int                   { return 1 }

type eulerStep struct{}

func (e *eulerStep) Step(sys System, x State, t, dt float64) State {
	dx := sys.Derive(x, t)
	return State{x[0] + dt*dx[0]}
}

type blowUp struct{ at int }

func (b *blowUp) Step(sys System, x State, t, dt float64) State {
	if int(math.Round(t/dt)) == b.at {
		return State{math.NaN()}
	}
	return x.Clone()
}

type counter struct {
	calls int
	last  State
}

func (c *counter) OnStep(x State, t float64) {
	c.calls++
	c.last = x.Clone()
}

type ceiling struct{ max float64 }

func (c ceiling) Limit(x State) State {
	if x[0] > c.max {
		return State{c.max}
	}
	return x
}

func TestSimulatorRun(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})
	obs := &counter{}
	sim.AddObserver(obs)

	result, err := sim.Run(State{1.0}, Config{Dt: 0.1, Steps: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if obs.calls != 11 {
		t.Errorf("expected 11 observations, got %d", obs.calls)
	}

	expected := math.Exp(-1.0)
	if math.Abs(result.Final[0]-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, result.Final[0])
	}
	if math.Abs(result.Time-1.0) > 1e-9 {
		t.Errorf("expected final time 1.0, got %f", result.Time)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})

	tests := []struct {
		name string
		x0   State
		cfg  Config
		want error
	}{
		{"zero dt", State{1}, Config{Dt: 0, Steps: 10}, ErrInvalidConfig},
		{"negative dt", State{1}, Config{Dt: -0.1, Steps: 10}, ErrInvalidConfig},
		{"NaN dt", State{1}, Config{Dt: math.NaN(), Steps: 10}, ErrInvalidConfig},
		{"negative steps", State{1}, Config{Dt: 0.1, Steps: -1}, ErrInvalidConfig},
		{"wrong dimension", State{1, 2}, Config{Dt: 0.1, Steps: 1}, ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(tt.x0, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSimulatorZeroSteps(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})
	obs := &counter{}
	sim.AddObserver(obs)

	result, err := sim.Run(State{2.0}, Config{Dt: 0.1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if obs.calls != 1 || result.Final[0] != 2.0 {
		t.Errorf("expected only the initial state, got %d calls, final %v", obs.calls, result.Final)
	}
}

func TestSimulatorValidateState(t *testing.T) {
	sim := New(&decay{}, &blowUp{at: 3})

	result, err := sim.Run(State{1.0}, Config{Dt: 0.1, Steps: 10, ValidateState: true})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	var simErr *SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected *SimulationError, got %T", err)
	}
	if simErr.Step != 3 {
		t.Errorf("expected failure at step 3, got %d", simErr.Step)
	}
	if result == nil || result.StepsTaken != 3 {
		t.Errorf("expected partial result with 3 steps, got %+v", result)
	}
}

func TestSimulatorLimiter(t *testing.T) {
	grow := &growth{}
	sim := New(grow, &eulerStep{})
	sim.SetLimiter(ceiling{max: 1.5})

	result, err := sim.Run(State{1.0}, Config{Dt: 0.5, Steps: 5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Final[0] != 1.5 {
		t.Errorf("expected limited state 1.5, got %v", result.Final[0])
	}
}

type growth struct{}

func (g *growth) Derive(x State, t float64) State { return State{x[0]} }
func (g *growth) StateDim() int                   { return 1 }

func TestParallelFor(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100, 1001} {
		var sum int64
		seen := make([]int32, n)
		ParallelFor(n, 4, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
				atomic.AddInt64(&sum, int64(i))
			}
		})

		for i, c := range seen {
			if c != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, c)
			}
		}
		if want := int64(n) * int64(n-1) / 2; n > 0 && sum != want {
			t.Errorf("n=%d: sum %d, want %d", n, sum, want)
		}
	}
}
