package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/engine"
	"github.com/san-kum/crtsim/internal/integrators"
	"github.com/san-kum/crtsim/internal/kinematics"
	"github.com/san-kum/crtsim/internal/logging"
)

const (
	width    = 80
	height   = 24
	fps      = 30
	maxBeam  = 25
	gaugeLen = 16
)

var log = logging.NamedLogger("viz")

type TickMsg time.Time

// control is one adjustable setting shown with a gauge.
type control struct {
	name     string
	unit     string
	step     float64
	min, max float64
	get      func(*config.Config) float64
	set      func(*config.Config, float64)
}

var controls = []control{
	{
		name: "Accel", unit: "V", step: 100, min: 100, max: 10000,
		get: func(c *config.Config) float64 { return c.Controls.Accelerating },
		set: func(c *config.Config, v float64) { c.Controls.Accelerating = v },
	},
	{
		name: "Deflect", unit: "V", step: 5, min: -500, max: 500,
		get: func(c *config.Config) float64 { return c.Controls.Deflection },
		set: func(c *config.Config, v float64) { c.Controls.Deflection = v },
	},
	{
		name: "Offset", unit: "mm", step: 0.0005, min: -0.02, max: 0.02,
		get: func(c *config.Config) float64 { return c.Controls.Offset },
		set: func(c *config.Config, v float64) { c.Controls.Offset = v },
	},
	{
		name: "Spread", unit: "mm", step: 0.0005, min: 0, max: 0.02,
		get: func(c *config.Config) float64 { return c.Beam.Spread },
		set: func(c *config.Config, v float64) { c.Beam.Spread = v },
	},
}

// Model is the live viewer. Every control change recomputes the beam.
type Model struct {
	cfg      *config.Config
	initial  *config.Config
	engine   *engine.Engine
	tracks   []engine.Track
	canvas   *Canvas
	theme    Theme
	styles   styles
	gauge    progress.Model
	selected int
	showHelp bool
	err      error

	spring    harmonica.Spring
	markerPos float64
	markerVel float64
}

func NewModel(cfg *config.Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	theme := Themes[0]
	m := Model{
		cfg:     cfg.Clone(),
		initial: cfg.Clone(),
		canvas:  NewCanvas(width, height),
		theme:   theme,
		styles:  newStyles(theme),
		gauge:   newGauge(theme, gaugeLen),
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.6),
	}
	if m.cfg.Beam.Count < 1 {
		m.cfg.Beam.Count = 1
	}
	if m.cfg.Integrator == "" {
		m.cfg.Integrator = integrators.Default
		m.initial.Integrator = integrators.Default
	}
	if err := m.recompute(); err != nil {
		return Model{}, err
	}
	m.markerPos = m.targetImpact()
	return m, nil
}

// Run starts the viewer on the alternate screen and blocks until it quits.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Config() *config.Config { return m.cfg }
func (m Model) Tracks() []engine.Track { return m.tracks }
func (m Model) Marker() float64        { return m.markerPos }

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.selected = (m.selected + 1) % len(controls)
		case "shift+tab":
			m.selected = (m.selected + len(controls) - 1) % len(controls)
		case "up", "k":
			m.adjust(1)
		case "down", "j":
			m.adjust(-1)
		case "m":
			if m.cfg.Params().Mode == engine.ModeCurved {
				m.cfg.Mode = engine.ModeUniform.String()
			} else {
				m.cfg.Mode = engine.ModeCurved.String()
			}
		case "i":
			names := integrators.Names()
			for i, name := range names {
				if name == m.cfg.Integrator {
					m.cfg.Integrator = names[(i+1)%len(names)]
					break
				}
			}
		case "+", "=":
			if m.cfg.Beam.Count < maxBeam {
				m.cfg.Beam.Count++
			}
		case "-", "_":
			if m.cfg.Beam.Count > 1 {
				m.cfg.Beam.Count--
			}
		case "r":
			m.cfg = m.initial.Clone()
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
			m.gauge = newGauge(m.theme, gaugeLen)
		case "?":
			m.showHelp = !m.showHelp
		default:
			return m, nil
		}
		if err := m.recompute(); err != nil {
			m.err = err
			log.Warnf("recompute: %v", err)
		}
	case TickMsg:
		m.markerPos, m.markerVel = m.spring.Update(m.markerPos, m.markerVel, m.targetImpact())
		return m, tick()
	}
	return m, nil
}

func (m *Model) adjust(dir float64) {
	c := controls[m.selected]
	v := c.get(m.cfg) + dir*c.step
	c.set(m.cfg, math.Max(c.min, math.Min(c.max, v)))
}

func (m *Model) recompute() error {
	eng, err := engine.NewEngine(m.cfg.Options())
	if err != nil {
		return err
	}
	m.engine = eng
	m.tracks = eng.ComputeBeam(m.cfg.EngineGeometry(), m.cfg.Params(), m.cfg.BeamSpec())
	m.err = nil
	return nil
}

func (m Model) central() engine.Track {
	return m.tracks[len(m.tracks)/2]
}

func (m Model) targetImpact() float64 {
	return m.central().Impact
}

// project maps tube coordinates to canvas dots.
func (m Model) project(x, y float64) (int, int) {
	g := m.cfg.EngineGeometry()
	cw, ch := m.canvas.Dots()
	px := x / g.TubeLength * float64(cw-1)
	py := float64(ch-1) - y/g.TubeHeight*float64(ch-1)
	// keep guard band samples within a few screens of the canvas
	py = math.Max(-4*float64(ch), math.Min(5*float64(ch), py))
	return int(math.Round(px)), int(math.Round(py))
}

func (m Model) draw() {
	c := m.canvas
	c.Clear()
	g := m.cfg.EngineGeometry()
	cw, ch := c.Dots()

	c.DrawLine(0, 0, cw-1, 0)
	c.DrawLine(0, ch-1, cw-1, ch-1)

	center := g.Centerline()
	for _, py := range []float64{center + g.PlateSpacing/2, center - g.PlateSpacing/2} {
		x0, y0 := m.project(g.DeflectionStart, py)
		x1, y1 := m.project(g.DeflectionEnd(), py)
		c.DrawLine(x0, y0, x1, y1)
	}

	dx, _ := m.project(g.DetectionX, 0)
	c.DrawDashed(dx, 0, ch-1, 2, 2)

	for _, t := range m.tracks {
		for i := 1; i < len(t.Path); i++ {
			x0, y0 := m.project(t.Path[i-1].X, t.Path[i-1].Y)
			x1, y1 := m.project(t.Path[i].X, t.Path[i].Y)
			c.DrawLine(x0, y0, x1, y1)
		}
	}

	mx, my := m.project(g.DetectionX, m.markerPos)
	for d := -2; d <= 2; d++ {
		c.Set(mx+d, my)
		c.Set(mx, my+d)
	}
}

func (m Model) View() string {
	m.draw()
	st := m.styles
	canvasView := st.canvas.Render(st.beam.Render(m.canvas.String()))

	t := m.central()
	var s strings.Builder
	s.WriteString(st.header.Render("CRT DEFLECTION") + "\n")

	mode := t.Mode.String()
	if t.Mode == engine.ModeCurved {
		mode += " / " + m.cfg.Integrator
	}
	s.WriteString(st.label.Render("Mode") + st.value.Render(mode) + "\n")
	s.WriteString(st.label.Render("Particles") + st.value.Render(fmt.Sprintf("%d", len(m.tracks))) + "\n\n")

	for i, c := range controls {
		v := c.get(m.cfg)
		ratio := (v - c.min) / (c.max - c.min)
		shown := v
		if c.unit == "mm" {
			shown = v * 1000
		}
		line := fmt.Sprintf("%-8s %s %8.1f %s", c.name, m.gauge.ViewAs(ratio), shown, c.unit)
		if i == m.selected {
			s.WriteString(st.active.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	s.WriteString("\n")

	energy := kinematics.KineticEnergy(m.cfg.Controls.Accelerating) / kinematics.ElementaryCharge
	s.WriteString(st.label.Render("Energy") + st.value.Render(fmt.Sprintf("%.2f keV", energy/1000)) + "\n")
	s.WriteString(st.label.Render("Speed") + st.value.Render(fmt.Sprintf("%.3g m/s", t.InitialSpeed)) + "\n")
	s.WriteString(st.label.Render("Impact") + st.value.Render(fmt.Sprintf("%.2f mm", t.Impact*1000)) + "\n")
	s.WriteString(st.label.Render("Deflection") + st.value.Render(fmt.Sprintf("%+.2f mm", t.Deflection*1000)) + "\n")
	s.WriteString(st.label.Render("Exit vy") + st.value.Render(fmt.Sprintf("%.3g m/s", t.ExitVelocity)) + "\n")
	if t.Clipped {
		s.WriteString(st.warn.Render("BEAM OFF SCREEN") + "\n")
	}
	if m.err != nil {
		s.WriteString(st.warn.Render(m.err.Error()) + "\n")
	}

	center := m.cfg.EngineGeometry().Centerline()
	profile := make([]float64, len(t.Path))
	for i, p := range t.Path {
		profile[i] = (p.Y - center) * 1000
	}
	if len(profile) > 1 {
		chart := asciigraph.Plot(profile, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Precision(1),
			asciigraph.Caption("transverse (mm)"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString(st.help.Render("TAB:Select ↑↓:Adjust M:Mode +/-:Beam\nR:Reset T:Theme ?:Help Q:Quit"))
	statsView := st.stats.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return st.header.Render(helpText) + "\n" + mainView
	}
	return mainView
}

const helpText = `Tab/Shift+Tab  select control
Up/K Down/J    adjust control
M              toggle uniform/curved field
I              cycle integrator
+ -            particle count
R              reset controls
T              cycle phosphor
Q              quit`
