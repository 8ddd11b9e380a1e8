// Package metrics scores computed tracks.
package metrics

import (
	"math"

	"github.com/san-kum/crtsim/internal/engine"
)

// Metric accumulates a value over the points of a path.
type Metric interface {
	Name() string
	Observe(p engine.Point)
	Value() float64
	Reset()
}

// Evaluate feeds every point of t to each metric and collects the values by
// name. Metrics are reset first.
func Evaluate(t engine.Track, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, p := range t.Path {
			m.Observe(p)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// Defaults returns the metrics stored with every run.
func Defaults(g engine.Geometry) []Metric {
	return []Metric{
		NewPathLength(),
		NewMaxExcursion(g.Centerline()),
		NewContainment(0, g.TubeHeight),
	}
}

type PathLength struct {
	last  engine.Point
	total float64
	seen  bool
}

func NewPathLength() *PathLength { return &PathLength{} }

func (l *PathLength) Name() string { return "path_length" }

func (l *PathLength) Observe(p engine.Point) {
	if l.seen {
		l.total += math.Hypot(p.X-l.last.X, p.Y-l.last.Y)
	}
	l.last = p
	l.seen = true
}

func (l *PathLength) Value() float64 { return l.total }

func (l *PathLength) Reset() { *l = PathLength{} }

// MaxExcursion is the largest transverse distance from the centerline.
type MaxExcursion struct {
	center float64
	max    float64
}

func NewMaxExcursion(center float64) *MaxExcursion {
	return &MaxExcursion{center: center}
}

func (m *MaxExcursion) Name() string { return "max_excursion" }

func (m *MaxExcursion) Observe(p engine.Point) {
	m.max = math.Max(m.max, math.Abs(p.Y-m.center))
}

func (m *MaxExcursion) Value() float64 { return m.max }

func (m *MaxExcursion) Reset() { m.max = 0 }

// Containment is the fraction of path points lying within [lo, hi].
type Containment struct {
	lo, hi     float64
	violations int
	samples    int
}

func NewContainment(lo, hi float64) *Containment {
	return &Containment{lo: lo, hi: hi}
}

func (c *Containment) Name() string { return "containment" }

func (c *Containment) Observe(p engine.Point) {
	c.samples++
	if p.Y < c.lo || p.Y > c.hi {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
