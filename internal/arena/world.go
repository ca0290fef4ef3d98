// Package arena assembles a playable match: the templates, the paddle boxes,
// the lattice and the round, stepped together in a fixed frame order.
package arena

import (
	"fmt"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/actor"
	"github.com/san-kum/fieldpong/internal/behavior"
	"github.com/san-kum/fieldpong/internal/config"
	"github.com/san-kum/fieldpong/internal/input"
	"github.com/san-kum/fieldpong/internal/lattice"
	"github.com/san-kum/fieldpong/internal/logger"
	"github.com/san-kum/fieldpong/internal/metrics"
	"github.com/san-kum/fieldpong/internal/physics"
	"github.com/san-kum/fieldpong/internal/round"
	"github.com/sirupsen/logrus"
)

type Options struct {
	// Input drives the player paddle. Nil leaves it idle.
	Input  input.Source
	Rumble input.Rumbler
	// Renderer, when set, draws every live actor during the actor pass.
	Renderer actor.Renderer
	// Over runs once when the round ends.
	Over func(round.Status)
}

type World struct {
	Layout  Layout
	Engine  *physics.Space
	Actors  *actor.Manager
	Grid    *lattice.Grid
	Regions *behavior.Regions
	Round   *round.Round

	cfg      *config.Config
	opts     Options
	rng      *rand.Rand
	rumble   input.Rumbler
	player   *actor.Actor
	computer *actor.Actor
	ball     *actor.Actor
	time     float64
	frames   int
	log      *logrus.Entry
}

// New builds the arena for cfg with its actors in the live set and the ball
// pinned at the serve point.
func New(cfg *config.Config, opts Options) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout, err := NewLayout(cfg.Arena.Width, cfg.Arena.Height, cfg.Arena.Margin)
	if err != nil {
		return nil, err
	}
	grid, err := lattice.New(cfg.Lattice.Size, cfg.Lattice.NodeMass, cfg.Lattice.SpringConstant, cfg.Lattice.Damping, layout.Screen)
	if err != nil {
		return nil, err
	}
	engine := physics.NewSpace()
	w := &World{
		Layout:  layout,
		Engine:  engine,
		Actors:  actor.NewManager(),
		Grid:    grid,
		Regions: behavior.NewRegions(engine),
		cfg:     cfg,
		opts:    opts,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		rumble:  opts.Rumble,
		log:     logger.For("arena"),
	}
	if err := w.populate(); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func (w *World) populate() error {
	for _, t := range w.templates() {
		a, err := w.build(t)
		if err != nil {
			return err
		}
		if err := w.Actors.RegisterTemplate(a, t.name); err != nil {
			return err
		}
	}

	var err error
	if w.player, err = w.place(TemplatePlayerPaddle, w.Layout.PlayerSpawn()); err != nil {
		return err
	}
	if w.computer, err = w.place(TemplateComputerPaddle, w.Layout.ComputerSpawn()); err != nil {
		return err
	}
	if w.ball, err = w.place(TemplateBall, w.Layout.Serve); err != nil {
		return err
	}
	for _, at := range w.Layout.ObstacleSpawns()[:w.cfg.Obstacles.Count] {
		if _, err := w.place(TemplateObstacle, at); err != nil {
			return err
		}
	}

	w.SetInput(w.opts.Input)
	if ai, ok := actor.BehaviorOf[*behavior.AIPaddle](w.computer); ok {
		ai.SetBall(w.ball.Handle())
	}

	w.Round = round.New(round.Config{
		Lives:      w.cfg.Round.Lives,
		Level:      w.cfg.Round.Level,
		Countdown:  w.cfg.Round.Countdown,
		TopGoal:    w.Layout.TopGoal,
		BottomGoal: w.Layout.BottomGoal,
		Serve:      w.Layout.Serve,
	}, servedBall{a: w.ball}, round.Hooks{
		Level: w.setLevel,
		Over:  w.opts.Over,
	})
	w.setLevel(w.Round.Level())

	// Nothing is live yet, so this frame only promotes the spawns.
	if err := w.Actors.Update(0, nil); err != nil {
		return err
	}
	w.log.WithFields(logrus.Fields{
		"actors":    w.Actors.LiveCount(),
		"obstacles": w.cfg.Obstacles.Count,
		"seed":      w.cfg.Seed,
	}).Debug("arena ready")
	return nil
}

func (w *World) place(name string, at cp.Vector) (*actor.Actor, error) {
	a, err := w.Actors.Instantiate(name)
	if err != nil {
		return nil, err
	}
	a.Body().SetPosition(at)
	return a, nil
}

func (w *World) setLevel(level int) {
	if p, ok := actor.BehaviorOf[*behavior.InputPaddle](w.player); ok {
		p.SetLevel(level)
	}
	if p, ok := actor.BehaviorOf[*behavior.AIPaddle](w.computer); ok {
		p.SetLevel(level)
	}
}

// SetInput swaps the source driving the player paddle.
func (w *World) SetInput(src input.Source) {
	if p, ok := actor.BehaviorOf[*behavior.InputPaddle](w.player); ok {
		p.SetSource(src)
	}
}

// Step advances one frame: actors, then the rigid bodies, then the lattice,
// then the round. Behavior errors are returned after the whole frame has run.
func (w *World) Step(dt float64) error {
	err := w.Actors.Update(dt, w.opts.Renderer)
	w.Engine.Step(dt)
	w.Grid.Update(dt)
	w.Round.Update(dt)
	w.time += dt
	w.frames++
	if err != nil {
		return fmt.Errorf("frame %d: %w", w.frames, err)
	}
	return nil
}

func (w *World) Player() *actor.Actor   { return w.player }
func (w *World) Computer() *actor.Actor { return w.computer }
func (w *World) Ball() *actor.Actor     { return w.ball }
func (w *World) Config() *config.Config { return w.cfg }
func (w *World) Time() float64          { return w.time }
func (w *World) Frames() int            { return w.frames }
func (w *World) Over() bool             { return w.Round != nil && w.Round.Over() }

// Sample captures the state the metrics and run storage record.
func (w *World) Sample() metrics.Sample {
	st := w.Round.Status()
	ball := w.ball.Position()
	return metrics.Sample{
		Time:          w.time,
		Live:          w.Actors.LiveCount(),
		LatticeEnergy: w.Grid.KineticEnergy(),
		LatticePeak:   w.Grid.MaxSpeed(),
		BallX:         ball.X,
		BallY:         ball.Y,
		BallSpeed:     w.ball.Body().LinearVelocity().Length(),
		Level:         st.Level,
		Lives:         st.Lives,
		Points:        st.Points,
		Conceded:      st.Conceded,
	}
}

// Close kills every actor and tears down the region walls.
func (w *World) Close() {
	w.Actors.Unload()
	w.Regions.Release()
}
