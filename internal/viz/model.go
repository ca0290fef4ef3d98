package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/actor"
	"github.com/san-kum/fieldpong/internal/arena"
	"github.com/san-kum/fieldpong/internal/physics"
	"github.com/san-kum/fieldpong/internal/round"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	// meshLines is roughly how many lattice lines are drawn each way.
	meshLines = 20
	// faded actors below this opacity are not drawn.
	minVisibleAlpha = 64
)

type TickMsg time.Time

// Factory builds a fresh world; the viewer calls it on start and restart.
type Factory func() (*arena.World, error)

type Model struct {
	factory   Factory
	world     *arena.World
	keys      *keyboard
	canvas    *Canvas
	energy    []float64
	autopilot bool
	paused    bool
	err       error
}

// NewModel builds the first world from factory. With autopilot set the
// player paddle plays itself until Tab hands it to the keyboard.
func NewModel(factory Factory, autopilot bool) (Model, error) {
	m := Model{factory: factory, keys: newKeyboard(), autopilot: autopilot}
	if err := m.restart(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) restart() error {
	w, err := m.factory()
	if err != nil {
		return err
	}
	if m.world != nil {
		m.world.Close()
	}
	m.world = w
	m.canvas = NewCanvas(width, height, w.Layout.Screen)
	m.energy = m.energy[:0]
	m.keys.reset()
	m.paused = false
	m.err = nil
	m.bindInput()
	return nil
}

func (m *Model) bindInput() {
	if m.autopilot {
		m.world.SetInput(arena.NewAutopilot(m.world))
		return
	}
	m.world.SetInput(m.keys.Source())
}

// World exposes the match being shown.
func (m Model) World() *arena.World { return m.world }

func (m Model) tick() tea.Cmd {
	d := time.Duration(m.world.Config().Dt * float64(time.Second))
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "esc", "ctrl+c":
			m.world.Close()
			return m, tea.Quit
		case "p":
			m.paused = !m.paused
		case "r":
			if err := m.restart(); err != nil {
				m.err = err
			}
		case "tab":
			m.autopilot = !m.autopilot
			m.keys.reset()
			m.bindInput()
		default:
			if !m.autopilot {
				m.keys.press(key)
			}
		}
	case TickMsg:
		if !m.paused && !m.world.Over() {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	dt := m.world.Config().Dt
	m.keys.tick(dt)
	if err := m.world.Step(dt); err != nil {
		m.err = err
	}
	m.energy = append(m.energy, m.world.Grid.KineticEnergy())
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()

	g := m.world.Grid
	n := g.Size()
	stride := max(1, n/meshLines)
	for x := 0; x < n; x += stride {
		for y := 0; y < n; y += stride {
			p := g.At(x, y).Position
			if x+stride < n {
				m.canvas.Segment(p, g.At(x+stride, y).Position)
			}
			if y+stride < n {
				m.canvas.Segment(p, g.At(x, y+stride).Position)
			}
		}
	}

	for _, a := range m.world.Actors.Live() {
		m.drawActor(a)
	}
}

func (m *Model) drawActor(a *actor.Actor) {
	v := a.Visual()
	if v == nil || !a.Alive() || a.Alpha() < minVisibleAlpha {
		return
	}
	if v.Shape == physics.Rectangle {
		m.canvas.Polygon(corners(a.Position(), a.Body().Rotation(), v.Width, v.Height)...)
		return
	}
	x, y := m.canvas.Project(a.Position())
	m.canvas.Mark(x, y, v.Glyph)
}

func corners(center cp.Vector, angle, w, h float64) []cp.Vector {
	rot := cp.ForAngle(angle)
	hw, hh := w/2, h/2
	local := []cp.Vector{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	pts := make([]cp.Vector, len(local))
	for i, p := range local {
		pts[i] = center.Add(rot.Rotate(p))
	}
	return pts
}

func (m Model) status() string {
	st := m.world.Round.Status()
	switch {
	case st.State == round.GameOver:
		return statusOver.Render("GAME OVER")
	case m.paused:
		return statusPaused.Render("PAUSED")
	case st.State == round.Serving:
		return statusPaused.Render(fmt.Sprintf("SERVE IN %.1fs", st.Remaining))
	}
	return statusRunning.Render("IN PLAY")
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	st := m.world.Round.Status()
	var s strings.Builder
	s.WriteString(titleStyle.Render("FIELDPONG") + "\n")
	s.WriteString(m.status() + "\n\n")
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Level", fmt.Sprintf("%d", st.Level))
	s.WriteString(labelStyle.Render("Lives") + Lives(st.Lives) + "\n")
	row("Points", fmt.Sprintf("%d", st.Points))
	row("Time", fmt.Sprintf("%.1fs", st.Elapsed))
	row("Actors", fmt.Sprintf("%d", m.world.Actors.LiveCount()))
	pilot := "keyboard"
	if m.autopilot {
		pilot = "autopilot"
	}
	row("Player", pilot)

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("Lattice energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render(truncate(m.err.Error(), 36)) + "\n")
	}
	s.WriteString(helpStyle.Render("\nWASD:Move IJKL:Aim Q/E:Spin\nSP:Gravity Tab:Pilot P:Pause\nR:Restart Esc:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:max(0, n-3)] + "..."
}
