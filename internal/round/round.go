// Package round runs the serve, play and game-over cycle of a match.
package round

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/logger"
	"github.com/sirupsen/logrus"
)

type State int

const (
	// Serving holds the ball at the serve point while the countdown runs.
	Serving State = iota
	InPlay
	// GameOver is terminal.
	GameOver
)

func (s State) String() string {
	switch s {
	case Serving:
		return "serving"
	case InPlay:
		return "in-play"
	case GameOver:
		return "game-over"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Ball is what the round needs from the ball actor.
type Ball interface {
	Position() cp.Vector
	// Pin freezes the ball at the given point.
	Pin(at cp.Vector)
	// Release frees the ball and arms a fresh random launch.
	Release()
}

type Config struct {
	Lives     int
	Level     int
	Countdown float64
	// TopGoal and BottomGoal are the Y coordinates the ball must cross to
	// score for the player or against them.
	TopGoal    float64
	BottomGoal float64
	Serve      cp.Vector
}

// Hooks are optional callbacks fired on transitions.
type Hooks struct {
	// Level runs after the player scores, with the new level.
	Level func(level int)
	// LifeLost runs after the player concedes, with the lives left.
	LifeLost func(lives int)
	// Over runs once when the game ends.
	Over func(final Status)
}

// Status is a snapshot of the round for display and metrics.
type Status struct {
	State     State
	Lives     int
	Level     int
	Points    int
	Conceded  int
	Remaining float64
	Elapsed   float64
}

type Round struct {
	cfg      Config
	ball     Ball
	hooks    Hooks
	state    State
	lives    int
	level    int
	points   int
	conceded int
	timer    float64
	elapsed  float64
	log      *logrus.Entry
}

// New starts a round in Serving with the ball pinned at the serve point.
func New(cfg Config, ball Ball, hooks Hooks) *Round {
	if cfg.Level < 1 {
		cfg.Level = 1
	}
	r := &Round{
		cfg:   cfg,
		ball:  ball,
		hooks: hooks,
		lives: cfg.Lives,
		level: cfg.Level,
		log:   logger.For("round"),
	}
	r.serve()
	return r
}

func (r *Round) State() State { return r.state }
func (r *Round) Lives() int   { return r.lives }
func (r *Round) Level() int   { return r.level }
func (r *Round) Over() bool   { return r.state == GameOver }

func (r *Round) Status() Status {
	s := Status{
		State:    r.state,
		Lives:    r.lives,
		Level:    r.level,
		Points:   r.points,
		Conceded: r.conceded,
		Elapsed:  r.elapsed,
	}
	if r.state == Serving {
		s.Remaining = max(r.cfg.Countdown-r.timer, 0)
	}
	return s
}

func (r *Round) Update(dt float64) {
	if r.state == GameOver {
		return
	}
	r.elapsed += dt

	switch r.state {
	case Serving:
		r.timer += dt
		if r.timer >= r.cfg.Countdown {
			r.timer = 0
			r.state = InPlay
			r.ball.Release()
			r.log.WithField("level", r.level).Info("ball released")
		}
	case InPlay:
		pos := r.ball.Position()
		switch {
		case pos.Y < r.cfg.TopGoal:
			r.scored()
		case pos.Y > r.cfg.BottomGoal:
			r.conceded++
			r.lives--
			r.log.WithField("lives", r.lives).Info("point conceded")
			if r.hooks.LifeLost != nil {
				r.hooks.LifeLost(r.lives)
			}
			if r.lives <= 0 {
				r.over()
				return
			}
			r.serve()
		}
	}
}

// scored advances the level. Every second level gained adds a life.
func (r *Round) scored() {
	r.points++
	r.level++
	if (r.level-1)%2 == 0 {
		r.lives++
	}
	r.log.WithFields(logrus.Fields{"level": r.level, "lives": r.lives}).Info("point scored")
	if r.hooks.Level != nil {
		r.hooks.Level(r.level)
	}
	r.serve()
}

func (r *Round) serve() {
	r.state = Serving
	r.timer = 0
	r.ball.Pin(r.cfg.Serve)
}

func (r *Round) over() {
	r.state = GameOver
	r.ball.Pin(r.cfg.Serve)
	st := r.Status()
	r.log.WithFields(logrus.Fields{"level": st.Level, "points": st.Points}).Info("game over")
	if r.hooks.Over != nil {
		r.hooks.Over(st)
	}
}
