package behavior

import "github.com/san-kum/fieldpong/internal/actor"

// Expiry fades its actor in, fades it out over the end of its lifetime and
// kills it once the lifetime has passed.
type Expiry struct {
	actor.Base
	lifetime float64
	fade     float64
	elapsed  float64
	fadeIn   float64
	fadeOut  float64
}

func NewExpiry(lifetime, fade float64) *Expiry {
	return &Expiry{lifetime: lifetime, fade: fade}
}

func (e *Expiry) Kind() actor.Kind { return actor.KindExpiry }

// Remaining is the lifetime left, never negative.
func (e *Expiry) Remaining() float64 { return max(e.lifetime-e.elapsed, 0) }

func (e *Expiry) Update(dt float64) error {
	a := e.Owner()
	if a == nil {
		return ErrUnbound
	}
	if e.fade > 0 {
		if e.fadeIn < e.fade {
			e.fadeIn += dt
			a.SetAlpha(e.fadeIn / e.fade * actor.MaxAlpha)
		}
		if e.lifetime-e.elapsed <= e.fade {
			e.fadeOut += dt
			a.SetAlpha(actor.MaxAlpha - e.fadeOut/e.fade*actor.MaxAlpha)
		}
	}
	if e.elapsed > e.lifetime {
		a.Kill()
	}
	e.elapsed += dt
	return nil
}

// Clone restarts the lifetime for the copy.
func (e *Expiry) Clone() actor.Behavior {
	return NewExpiry(e.lifetime, e.fade)
}
