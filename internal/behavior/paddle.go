package behavior

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/fieldpong/internal/actor"
)

// Template names the paddles instantiate when firing.
const (
	TemplateGravityBall = "Gravity Ball"
	TemplateBullet      = "Bullet"
)

const sprayAngle = math.Pi / 8

// Tuning holds the paddle force and firing constants.
type Tuning struct {
	MoveForce           float64
	WhackTorque         float64
	GravityBallSpeed    float64
	BulletSpeed         float64
	GravityBallInterval float64
	BulletInterval      float64
	// GravityBallOffset keeps a fresh gravity ball clear of the paddle.
	GravityBallOffset float64
	// SprayLevel is the level from which input paddles fire three-bullet sprays.
	SprayLevel int
}

func DefaultTuning() Tuning {
	return Tuning{
		MoveForce:           700,
		WhackTorque:         60000,
		GravityBallSpeed:    100,
		BulletSpeed:         500,
		GravityBallInterval: 4,
		BulletInterval:      0.1,
		GravityBallOffset:   85,
		SprayLevel:          20,
	}
}

// Paddle is the movement and firing core shared by the paddle controllers.
// Each fire timer starts full, so the first shot of either kind is allowed.
type Paddle struct {
	actor.Base
	actors       *actor.Manager
	tuning       Tuning
	gravityTimer float64
	bulletTimer  float64
}

func newPaddle(actors *actor.Manager, t Tuning) Paddle {
	return Paddle{
		actors:       actors,
		tuning:       t,
		gravityTimer: t.GravityBallInterval,
		bulletTimer:  t.BulletInterval,
	}
}

func (p *Paddle) Tuning() Tuning { return p.tuning }

func (p *Paddle) tick(dt float64) {
	p.gravityTimer += dt
	p.bulletTimer += dt
}

// Move pushes the paddle along a Y-up stick direction.
func (p *Paddle) Move(dir cp.Vector) error {
	body, err := ownerBody(&p.Base)
	if err != nil {
		return err
	}
	body.ApplyForce(cp.Vector{X: dir.X * p.tuning.MoveForce, Y: -dir.Y * p.tuning.MoveForce})
	return nil
}

// MoveHorizontal pushes the paddle sideways; negative ratios push left.
func (p *Paddle) MoveHorizontal(ratio float64) error {
	return p.Move(cp.Vector{X: ratio})
}

func (p *Paddle) Spin(ratio float64) error {
	if ratio == 0 {
		return nil
	}
	body, err := ownerBody(&p.Base)
	if err != nil {
		return err
	}
	body.ApplyTorque(ratio * p.tuning.WhackTorque)
	return nil
}

// ShootGravityBall launches a gravity ball up (vertical = 1) or down
// (vertical = -1). It reports false without error while the timer is running.
func (p *Paddle) ShootGravityBall(vertical int) (bool, error) {
	if p.gravityTimer < p.tuning.GravityBallInterval {
		return false, nil
	}
	body, err := ownerBody(&p.Base)
	if err != nil {
		return false, err
	}
	ball, err := p.actors.Instantiate(TemplateGravityBall)
	if err != nil {
		return false, err
	}
	p.gravityTimer = 0

	up := float64(-vertical)
	ball.Body().SetPosition(body.Position().Add(cp.Vector{Y: p.tuning.GravityBallOffset * up}))
	ball.Body().SetLinearVelocity(cp.Vector{Y: p.tuning.GravityBallSpeed * up}.Add(body.LinearVelocity()))
	ball.Body().SetAngularVelocity(2 * math.Pi)
	return true, nil
}

// ShootBullet fires one bullet along dir (screen coordinates).
func (p *Paddle) ShootBullet(dir cp.Vector) (bool, error) {
	if p.bulletTimer < p.tuning.BulletInterval {
		return false, nil
	}
	if err := p.fire(dir); err != nil {
		return false, err
	}
	p.bulletTimer = 0
	return true, nil
}

// ShootSpray fires three bullets: dir and dir rotated by +/- pi/8. It
// reports success, and restarts the interval, if any bullet left the paddle.
func (p *Paddle) ShootSpray(dir cp.Vector) (bool, error) {
	if p.bulletTimer < p.tuning.BulletInterval {
		return false, nil
	}
	var errs []error
	fired := 0
	for _, d := range []cp.Vector{rotate(dir, sprayAngle), dir, rotate(dir, -sprayAngle)} {
		if err := p.fire(d); err != nil {
			errs = append(errs, err)
			continue
		}
		fired++
	}
	if fired > 0 {
		p.bulletTimer = 0
	}
	return fired > 0, errors.Join(errs...)
}

// fire spawns a bullet that cannot hit the paddle that fired it.
func (p *Paddle) fire(dir cp.Vector) error {
	body, err := ownerBody(&p.Base)
	if err != nil {
		return err
	}
	geom, err := ownerGeom(&p.Base)
	if err != nil {
		return err
	}
	bullet, err := p.actors.Instantiate(TemplateBullet)
	if err != nil {
		return fmt.Errorf("fire: %w", err)
	}
	bullet.Body().SetPosition(body.Position())
	if g := bullet.Geom(); g != nil {
		g.SetCollidesWith(g.CollidesWith() &^ geom.Categories())
	}
	bullet.Body().SetLinearVelocity(dir.Mult(p.tuning.BulletSpeed).Add(body.LinearVelocity()))
	return nil
}
