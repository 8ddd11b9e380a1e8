package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/engine"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestNewModel(t *testing.T) {
	m, err := NewModel(config.DefaultConfig())
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if len(m.Tracks()) != 1 {
		t.Fatalf("expected 1 track, got %d", len(m.Tracks()))
	}
	if math.Abs(m.Marker()-0.14375) > 1e-9 {
		t.Errorf("marker = %v, want the impact", m.Marker())
	}

	bad := config.DefaultConfig()
	bad.Geometry.PlateSpacing = -1
	if _, err := NewModel(bad); err == nil {
		t.Error("expected error for invalid geometry")
	}
}

func TestAdjustControls(t *testing.T) {
	m, _ := NewModel(config.DefaultConfig())

	m = send(t, m, "tab", "up", "up")
	if got := m.Config().Controls.Deflection; got != 60 {
		t.Errorf("deflection = %v, want 60", got)
	}
	before := m.Tracks()[0].Impact

	m = send(t, m, "k")
	if m.Tracks()[0].Impact <= before {
		t.Error("raising the deflection potential should raise the impact")
	}

	m = send(t, m, "r")
	if got := m.Config().Controls.Deflection; got != config.DefaultDeflection {
		t.Errorf("reset deflection = %v", got)
	}

	for i := 0; i < 500; i++ {
		m = send(t, m, "down")
	}
	if got := m.Config().Controls.Deflection; got != -500 {
		t.Errorf("deflection should saturate at -500, got %v", got)
	}
}

func TestOffsetControlMovesImpact(t *testing.T) {
	m, _ := NewModel(config.DefaultConfig())
	before := m.Tracks()[0].Impact

	m = send(t, m, "tab", "tab")
	for i := 0; i < 10; i++ {
		m = send(t, m, "up")
	}
	if got := m.Config().Controls.Offset; math.Abs(got-0.005) > 1e-12 {
		t.Fatalf("offset = %v, want 0.005", got)
	}
	if got := m.Tracks()[0].Impact; math.Abs(got-(before+0.005)) > 1e-9 {
		t.Errorf("impact = %v, want %v", got, before+0.005)
	}
}

func TestEmptyIntegratorCycles(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Integrator = ""
	m, err := NewModel(cfg)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if got := m.Config().Integrator; got != "symplectic" {
		t.Fatalf("integrator = %q, want symplectic", got)
	}

	m = send(t, m, "i")
	if got := m.Config().Integrator; got != "verlet" {
		t.Errorf("integrator = %q, want verlet", got)
	}
	m = send(t, m, "r")
	if got := m.Config().Integrator; got != "symplectic" {
		t.Errorf("reset integrator = %q, want symplectic", got)
	}
}

func TestModeAndBeamKeys(t *testing.T) {
	m, _ := NewModel(config.DefaultConfig())

	m = send(t, m, "m")
	if m.Tracks()[0].Mode != engine.ModeCurved {
		t.Error("expected curved mode")
	}
	m = send(t, m, "i")
	if m.Config().Integrator == "symplectic" {
		t.Error("integrator should have cycled")
	}

	m = send(t, m, "+", "+", "+")
	if len(m.Tracks()) != 4 {
		t.Errorf("expected 4 tracks, got %d", len(m.Tracks()))
	}
	m = send(t, m, "-", "-", "-", "-", "-")
	if len(m.Tracks()) != 1 {
		t.Errorf("expected 1 track, got %d", len(m.Tracks()))
	}

	m = send(t, m, "m")
	if m.Tracks()[0].Mode != engine.ModeUniform {
		t.Error("expected uniform mode")
	}
}

func TestMarkerFollowsImpact(t *testing.T) {
	m, _ := NewModel(config.DefaultConfig())
	m = send(t, m, "tab")
	for i := 0; i < 10; i++ {
		m = send(t, m, "down")
	}
	target := m.Tracks()[0].Impact

	start := m.Marker()
	for i := 0; i < 5*fps; i++ {
		next, cmd := m.Update(TickMsg(time.Now()))
		if cmd == nil {
			t.Fatal("tick should schedule the next tick")
		}
		m = next.(Model)
	}
	if math.Abs(m.Marker()-target) >= math.Abs(start-target)*0.01 {
		t.Errorf("marker %v did not settle on %v (start %v)", m.Marker(), target, start)
	}
}

func TestView(t *testing.T) {
	m, _ := NewModel(config.GetPreset("overdriven"))

	view := m.View()
	for _, want := range []string{"CRT DEFLECTION", "Accel", "Deflect", "Impact", "BEAM OFF SCREEN"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(t, m, "?")
	if !strings.Contains(m.View(), "cycle phosphor") {
		t.Error("help overlay not shown")
	}

	m = send(t, m, "t")
	if m.theme.Name != "p3" {
		t.Errorf("theme = %s, want p3", m.theme.Name)
	}
}

func TestQuit(t *testing.T) {
	m, _ := NewModel(config.DefaultConfig())
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
