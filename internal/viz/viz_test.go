package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/arena"
	"github.com/san-kum/fieldpong/internal/config"
	"github.com/san-kum/fieldpong/internal/input"
	"github.com/san-kum/fieldpong/internal/physics"
)

func TestCanvasSetAndMark(t *testing.T) {
	c := NewCanvas(4, 2, physics.Rect{Width: 8, Height: 8})
	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != rune(brailleBlank|0x1|0x80) {
		t.Errorf("expected dots 1 and 8, got %U", c.Grid[0][0])
	}

	c.Set(-1, 0)
	c.Set(100, 100)

	c.Mark(2, 4, 'o')
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if []rune(lines[1])[1] != 'o' {
		t.Errorf("expected glyph in row 1 col 1, got %q", lines[1])
	}

	c.Clear()
	if strings.ContainsRune(c.String(), 'o') || c.Grid[0][0] != brailleBlank {
		t.Error("expected clear to drop pixels and glyphs")
	}
}

func TestCanvasProject(t *testing.T) {
	c := NewCanvas(80, 24, physics.Rect{Width: 1024, Height: 768})
	x, y := c.Project(cp.Vector{X: 512, Y: 384})
	if x != 80 || y != 48 {
		t.Errorf("expected (80, 48), got (%d, %d)", x, y)
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(4, 1, physics.Rect{Width: 8, Height: 4})
	c.DrawLine(0, 0, 7, 0)
	for col, r := range c.Grid[0] {
		if r&0x9 != 0x9 {
			t.Errorf("expected top dots set in col %d, got %U", col, r)
		}
	}
}

func TestKeyboardHoldsThenReleases(t *testing.T) {
	k := newKeyboard()
	if !k.press("d") || !k.press(" ") {
		t.Fatal("expected d and space to be controls")
	}
	if k.press("x") {
		t.Error("expected x to be ignored")
	}

	st := k.Source().Poll()
	if st.Move.X != 1 || !st.Pressed(input.ButtonGravityBall) {
		t.Errorf("expected move right with button, got %+v", st)
	}

	k.tick(keyHold / 2)
	if k.Source().Poll().Move.X != 1 {
		t.Error("expected move to be held")
	}

	k.tick(keyHold)
	st = k.Source().Poll()
	if st.Move != (cp.Vector{}) || st.Buttons != 0 {
		t.Errorf("expected controls released, got %+v", st)
	}
}

func newTestModel(t *testing.T, autopilot bool) Model {
	t.Helper()
	factory := func() (*arena.World, error) {
		return arena.New(config.DefaultConfig(), arena.Options{})
	}
	m, err := NewModel(factory, autopilot)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	t.Cleanup(func() { m.World().Close() })
	return m
}

func TestModelTicksAndPauses(t *testing.T) {
	m := newTestModel(t, true)

	next, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Error("expected the next tick to be scheduled")
	}
	m = next.(Model)
	if m.World().Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", m.World().Frames())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = next.(Model)
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if m.World().Frames() != 1 {
		t.Errorf("expected pause to hold at 1 frame, got %d", m.World().Frames())
	}
}

func TestModelRestart(t *testing.T) {
	m := newTestModel(t, false)
	first := m.World()
	m.Update(TickMsg{})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(Model)
	if m.World() == first {
		t.Fatal("expected a fresh world")
	}
	if first.Player().Alive() {
		t.Error("expected the old world to be closed")
	}
	if m.World().Frames() != 0 {
		t.Errorf("expected a fresh world at frame 0, got %d", m.World().Frames())
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, true)
	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	view := m.View()
	for _, want := range []string{"FIELDPONG", "Level", "SERVE IN", "autopilot"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
