package actor

import (
	"errors"
	"testing"

	"github.com/san-kum/fieldpong/internal/physics"
)

type drawLog []*Actor

func (d *drawLog) Draw(a *Actor) { *d = append(*d, a) }

func contains(actors []*Actor, a *Actor) bool {
	for _, x := range actors {
		if x == a {
			return true
		}
	}
	return false
}

func TestInstantiateUnknownTemplate(t *testing.T) {
	m := NewManager()
	a, err := m.Instantiate("unregistered-name")
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
	if a != nil {
		t.Error("expected no actor")
	}
	if m.LiveCount() != 0 || m.PendingCount() != 0 {
		t.Error("a failed instantiate must not create anything")
	}
}

func TestRegisterTemplate(t *testing.T) {
	eng := physics.NewSpace()
	m := NewManager()
	first := newTemplate(t, eng, &probe{kind: KindExpiry, Timer: 1})
	second := newTemplate(t, eng, &probe{kind: KindExpiry, Timer: 2})
	if err := m.RegisterTemplate(first, "Ball"); err != nil {
		t.Fatal(err)
	}
	if err := m.RegisterTemplate(second, "Ball"); err != nil {
		t.Fatal(err)
	}
	a, err := m.Instantiate("Ball")
	if err != nil {
		t.Fatal(err)
	}
	if p, _ := BehaviorOf[*probe](a); p.Timer != 2 {
		t.Errorf("expected last registered template, timer %v", p.Timer)
	}
	if err := m.RegisterTemplate(a, "Live"); !errors.Is(err, ErrNotTemplate) {
		t.Errorf("expected ErrNotTemplate, got %v", err)
	}
	if err := m.RegisterTemplate(nil, "Nil"); !errors.Is(err, ErrNilActor) {
		t.Errorf("expected ErrNilActor, got %v", err)
	}
}

func TestSpawnedActorJoinsNextFrame(t *testing.T) {
	eng := physics.NewSpace()
	m := NewManager()
	if err := m.RegisterTemplate(newTemplate(t, eng, &probe{kind: KindExpiry}), "Bullet"); err != nil {
		t.Fatal(err)
	}

	var spawned *Actor
	spawner := newTemplate(t, eng, &probe{kind: KindAIPaddle, onUpdate: func(p *probe) error {
		if spawned != nil {
			return nil
		}
		a, err := m.Instantiate("Bullet")
		spawned = a
		return err
	}})
	if _, err := m.Spawn(spawner); err != nil {
		t.Fatal(err)
	}

	var drawn drawLog
	if err := m.Update(0.01, &drawn); err != nil {
		t.Fatal(err)
	}
	if spawned != nil {
		t.Fatal("spawner was updated in the frame it was spawned")
	}

	drawn = nil
	if err := m.Update(0.01, &drawn); err != nil {
		t.Fatal(err)
	}
	if spawned == nil {
		t.Fatal("spawner did not run in its second frame")
	}
	if contains(drawn, spawned) {
		t.Error("bullet spawned this frame was updated this frame")
	}
	if p, _ := BehaviorOf[*probe](spawned); p.updates != 0 {
		t.Errorf("bullet updated %d times in its spawn frame", p.updates)
	}

	drawn = nil
	if err := m.Update(0.01, &drawn); err != nil {
		t.Fatal(err)
	}
	if !contains(drawn, spawned) {
		t.Error("bullet should be updated the frame after it spawned")
	}
}

func TestKilledActorGetsLastFrame(t *testing.T) {
	eng := physics.NewSpace()
	m := NewManager()
	victim := newTemplate(t, eng, &probe{kind: KindKillOnCollide, onUpdate: func(p *probe) error {
		p.Owner().Kill()
		return nil
	}})
	bystander := newTemplate(t, eng, &probe{kind: KindExpiry})
	h, _ := m.Spawn(victim)
	m.Spawn(bystander)
	m.Update(0.01, nil)

	var drawn drawLog
	m.Update(0.01, &drawn)
	if !contains(drawn, victim) {
		t.Fatal("victim should be updated in the frame it dies")
	}
	if !contains(m.Live(), victim) {
		t.Error("victim should remain in the live set until the next frame")
	}

	drawn = nil
	m.Update(0.01, &drawn)
	if contains(drawn, victim) || contains(m.Live(), victim) {
		t.Error("victim should be gone the frame after it died")
	}
	if _, ok := m.Get(h); ok {
		t.Error("stale handle still resolves")
	}
	if p, _ := BehaviorOf[*probe](victim); p.updates != 1 {
		t.Errorf("victim updated %d times, want 1", p.updates)
	}
}

func TestHandleReuseBumpsGeneration(t *testing.T) {
	eng := physics.NewSpace()
	m := NewManager()
	a := newTemplate(t, eng)
	h1, _ := m.Spawn(a)
	m.Update(0.01, nil)
	a.Kill()
	m.Update(0.01, nil)

	b := newTemplate(t, eng)
	h2, _ := m.Spawn(b)
	if h2.Index != h1.Index {
		t.Fatalf("expected slot %d to be reused, got %d", h1.Index, h2.Index)
	}
	if h2.Generation == h1.Generation {
		t.Error("reused slot kept its generation")
	}
	if got, ok := m.Get(h2); !ok || got != b {
		t.Error("new handle does not resolve to the new actor")
	}
	if _, ok := m.Get(h1); ok {
		t.Error("old handle resolves after reuse")
	}
}

func TestFindByCapability(t *testing.T) {
	eng := physics.NewSpace()
	m := NewManager()
	well := newTemplate(t, eng, &probe{kind: KindGravityWell})
	ball := newTemplate(t, eng, &probe{kind: KindGravityAttract})
	m.Spawn(well)
	m.Spawn(ball)

	found, err := m.FindByCapability(KindGravityWell)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 0 {
		t.Error("pending actors should not be found")
	}

	m.Update(0.01, nil)
	found, _ = m.FindByCapability(KindGravityWell)
	if len(found) != 1 || found[0] != well {
		t.Errorf("expected the well, got %v", found)
	}

	if _, err := m.FindByCapability(KindInvalid); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
	if _, err := m.FindByCapability(Kind(99)); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestUpdateJoinsBehaviorErrors(t *testing.T) {
	m := NewManager()
	boom := errors.New("boom")
	failing := New(nil, nil, nil, nil, &probe{kind: KindAIPaddle, onUpdate: func(*probe) error { return boom }})
	healthy := &probe{kind: KindExpiry}
	m.Spawn(failing)
	m.Spawn(New(nil, nil, nil, nil, healthy))
	m.Update(0.01, nil)

	if err := m.Update(0.01, nil); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if healthy.updates != 1 {
		t.Errorf("healthy actor updated %d times, want 1", healthy.updates)
	}
}

func TestUnload(t *testing.T) {
	eng := physics.NewSpace()
	m := NewManager()
	m.RegisterTemplate(newTemplate(t, eng), "Ball")
	m.RegisterTemplate(newTemplate(t, eng), "Bullet")

	first, err := m.Instantiate("Ball")
	if err != nil {
		t.Fatal(err)
	}
	m.Update(0.01, nil)
	second, err := m.Instantiate("Ball")
	if err != nil {
		t.Fatal(err)
	}

	m.Unload()
	if first.Alive() || second.Alive() {
		t.Error("unload should kill every actor")
	}
	if m.LiveCount() != 0 || m.PendingCount() != 0 {
		t.Errorf("sets not empty: live %d pending %d", m.LiveCount(), m.PendingCount())
	}
	if _, err := m.Instantiate("Bullet"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("templates should be cleared, got %v", err)
	}
	if eng.BodyCount() != 0 {
		t.Errorf("engine still holds %d bodies", eng.BodyCount())
	}
}
