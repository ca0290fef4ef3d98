package behavior

import (
	"github.com/san-kum/fieldpong/internal/actor"
	"github.com/san-kum/fieldpong/internal/physics"
)

// KillOnCollide kills its actor when its geometry touches anything it
// collides with. The contact still gets its normal response.
type KillOnCollide struct {
	actor.Base
	hits int
}

func NewKillOnCollide() *KillOnCollide { return &KillOnCollide{} }

func (k *KillOnCollide) Kind() actor.Kind { return actor.KindKillOnCollide }

func (k *KillOnCollide) Init() error {
	geom, err := ownerGeom(&k.Base)
	if err != nil {
		return err
	}
	owner := k.Owner()
	geom.SetCollisionHandler(func(_, _ physics.Geom, _ physics.Contact) bool {
		k.hits++
		owner.Kill()
		return true
	})
	return nil
}

// Hits counts the contacts seen so far.
func (k *KillOnCollide) Hits() int { return k.hits }

func (k *KillOnCollide) Update(float64) error { return nil }

func (k *KillOnCollide) Clone() actor.Behavior { return &KillOnCollide{} }
