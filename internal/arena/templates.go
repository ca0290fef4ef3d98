package arena

import (
	"fmt"

	"github.com/san-kum/fieldpong/internal/actor"
	"github.com/san-kum/fieldpong/internal/behavior"
	"github.com/san-kum/fieldpong/internal/input"
	"github.com/san-kum/fieldpong/internal/physics"
)

const (
	TemplatePlayerPaddle   = "Player Paddle"
	TemplateComputerPaddle = "Computer Paddle"
	TemplateObstacle       = "Obstacle"
	TemplateBall           = "Ball"
	TemplateGravityBall    = behavior.TemplateGravityBall
	TemplateBullet         = behavior.TemplateBullet
)

const (
	paddleWidth       = 100.0
	paddleHeight      = 17.4089
	paddleLinearDrag  = 0.01
	paddleAngularDrag = 300.0
	obstacleSize      = 45.0
	ballRadius        = 12.5
	gravityBallRadius = 27.5
	bulletRadius      = 2.5
	gravityBallMass   = 3.0
	// lightMass keeps balls, bullets and obstacles easy to push around.
	lightMass = 0.001

	gravityBallLifetime = 2.9
	gravityBallFade     = 0.5
)

// template is the recipe for one prototype actor.
type template struct {
	name       string
	glyph      rune
	body       physics.BodyDef
	categories physics.Category
	mask       physics.Category
	friction   float64
	behaviors  []actor.Behavior
}

func (w *World) build(t template) (*actor.Actor, error) {
	body, err := w.Engine.NewBody(t.body)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", t.name, err)
	}
	geom, err := w.Engine.NewGeom(body, physics.GeomDef{
		Shape:        t.body.Shape,
		Width:        t.body.Width,
		Height:       t.body.Height,
		Radius:       t.body.Radius,
		Elasticity:   1,
		Friction:     t.friction,
		Categories:   t.categories,
		CollidesWith: t.mask,
	})
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", t.name, err)
	}
	visual := &actor.Visual{
		Name:   t.name,
		Glyph:  t.glyph,
		Shape:  t.body.Shape,
		Width:  t.body.Width,
		Height: t.body.Height,
	}
	if t.body.Shape == physics.Circle {
		visual.Width, visual.Height = 2*t.body.Radius, 2*t.body.Radius
	}
	return actor.New(w.Engine, visual, body, geom, t.behaviors...), nil
}

func (w *World) templates() []template {
	paddle := physics.BodyDef{
		Shape:       physics.Rectangle,
		Width:       paddleWidth,
		Height:      paddleHeight,
		Mass:        1,
		LinearDrag:  paddleLinearDrag,
		AngularDrag: paddleAngularDrag,
	}
	tuning := w.tuning()

	computer := []actor.Behavior{
		behavior.NewDistort(w.Grid, behavior.DetailHigh),
		behavior.NewConfine(w.Regions, w.Layout.ComputerBox, CatComputerBox),
	}
	if w.cfg.AI.Enabled {
		computer = append(computer, behavior.NewAIPaddle(w.Actors, tuning, w.rng))
	}

	return []template{
		{
			name:       TemplatePlayerPaddle,
			glyph:      '=',
			body:       paddle,
			categories: CatPlayer,
			mask:       maskPlayer,
			friction:   0.4,
			behaviors: []actor.Behavior{
				behavior.NewInputPaddle(w.Actors, tuning, input.Idle{}, w.rumble),
				behavior.NewDistort(w.Grid, behavior.DetailHigh),
				behavior.NewConfine(w.Regions, w.Layout.PlayerBox, CatPlayerBox),
			},
		},
		{
			name:       TemplateComputerPaddle,
			glyph:      '=',
			body:       paddle,
			categories: CatComputer,
			mask:       maskComputer,
			friction:   0.4,
			behaviors:  computer,
		},
		{
			name:       TemplateObstacle,
			glyph:      '#',
			body:       physics.BodyDef{Shape: physics.Rectangle, Width: obstacleSize, Height: obstacleSize, Mass: lightMass},
			categories: CatObstacle,
			mask:       maskObstacle,
			behaviors: []actor.Behavior{
				behavior.NewDistort(w.Grid, behavior.DetailHigh),
				behavior.NewConfine(w.Regions, w.Layout.Field, CatField),
				behavior.NewLaunch(300, 350, w.rng),
				behavior.NewAttract(w.Actors),
			},
		},
		{
			name:       TemplateBall,
			glyph:      'o',
			body:       physics.BodyDef{Shape: physics.Circle, Radius: ballRadius, Mass: lightMass},
			categories: CatBall,
			mask:       maskBall,
			behaviors: []actor.Behavior{
				behavior.NewDistort(w.Grid, behavior.DetailHigh),
				behavior.NewConfine(w.Regions, w.Layout.Screen, CatScreen),
				behavior.NewLaunch(300, 301, w.rng),
				behavior.NewAttract(w.Actors),
			},
		},
		{
			name:       TemplateGravityBall,
			glyph:      '@',
			body:       physics.BodyDef{Shape: physics.Circle, Radius: gravityBallRadius, Mass: gravityBallMass},
			categories: CatGravityBall,
			mask:       maskGravityBall,
			behaviors: []actor.Behavior{
				behavior.NewWell(w.Grid),
				behavior.NewConfine(w.Regions, w.Layout.Screen, CatScreen),
				behavior.NewExpiry(gravityBallLifetime, gravityBallFade),
			},
		},
		{
			name:       TemplateBullet,
			glyph:      '.',
			body:       physics.BodyDef{Shape: physics.Circle, Radius: bulletRadius, Mass: lightMass},
			categories: CatBullet,
			mask:       maskBullet,
			behaviors: []actor.Behavior{
				behavior.NewConfine(w.Regions, w.Layout.Screen, CatScreen),
				behavior.NewKillOnCollide(),
				behavior.NewAttract(w.Actors),
			},
		},
	}
}

func (w *World) tuning() behavior.Tuning {
	t := behavior.DefaultTuning()
	p := w.cfg.Paddle
	t.MoveForce = p.MoveForce
	t.WhackTorque = p.WhackTorque
	t.GravityBallSpeed = p.GravityBallSpeed
	t.BulletSpeed = p.BulletSpeed
	t.GravityBallInterval = p.GravityBallInterval
	t.BulletInterval = p.BulletInterval
	t.SprayLevel = p.SprayLevel
	return t
}
