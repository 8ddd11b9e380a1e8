// Package dynamo provides the fixed-step integration primitives the
// trajectory engine uses for curved-field deflection.
//
//   - [State]: vector representing particle state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//   - [Simulator]: runs a fixed number of steps and reports to observers
//
// # Example
//
//	sim := dynamo.New(field, integrators.NewSymplecticEuler())
//	sim.AddObserver(recorder)
//	result, err := sim.Run(x0, dynamo.Config{Dt: dt, Steps: 400})
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe, and neither are integrators that
// keep scratch buffers. Build one per goroutine; [ParallelFor] splits work
// so each chunk can do exactly that.
package dynamo
