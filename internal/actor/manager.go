package actor

import (
	"errors"
	"fmt"

	"github.com/san-kum/fieldpong/internal/logger"
	"github.com/sirupsen/logrus"
)

// Handle identifies an actor slot in a Manager. A handle goes stale once its
// actor has been swept; Get then reports false even if the slot was reused.
type Handle struct {
	Index      uint32
	Generation uint32
}

func (h Handle) Valid() bool { return h.Generation != 0 }

func (h Handle) String() string {
	if !h.Valid() {
		return "#-"
	}
	return fmt.Sprintf("#%d.%d", h.Index, h.Generation)
}

// Renderer draws an actor after its behaviors have run for the frame.
type Renderer interface {
	Draw(a *Actor)
}

type slot struct {
	actor      *Actor
	generation uint32
}

// Manager owns the template table and every spawned actor.
//
// Spawned actors wait in a pending set until the end of the next Update, and
// dead actors stay in the live set until the start of the one after their
// death, so neither set changes while actors are being updated.
type Manager struct {
	templates map[string]*Actor
	slots     []slot
	free      []uint32
	live      []Handle
	pending   []Handle
	frame     uint64
	log       *logrus.Entry
}

func NewManager() *Manager {
	return &Manager{
		templates: make(map[string]*Actor),
		log:       logger.For("actors"),
	}
}

// RegisterTemplate stores a under name, replacing any previous template.
func (m *Manager) RegisterTemplate(a *Actor, name string) error {
	if a == nil {
		return ErrNilActor
	}
	if a.handle.Valid() {
		return fmt.Errorf("%w: %s", ErrNotTemplate, a)
	}
	if _, ok := m.templates[name]; ok {
		m.log.WithField("template", name).Debug("template replaced")
	} else {
		m.log.WithField("template", name).Debug("template registered")
	}
	m.templates[name] = a
	return nil
}

func (m *Manager) Template(name string) (*Actor, bool) {
	a, ok := m.templates[name]
	return a, ok
}

// Instantiate clones the named template into the pending set.
func (m *Manager) Instantiate(name string) (*Actor, error) {
	tmpl, ok := m.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	a, err := tmpl.Clone()
	if err != nil {
		return nil, fmt.Errorf("instantiate %q: %w", name, err)
	}
	m.enqueue(a)
	return a, nil
}

// Spawn activates an ad hoc actor and places it in the pending set.
func (m *Manager) Spawn(a *Actor) (Handle, error) {
	if a == nil {
		return Handle{}, ErrNilActor
	}
	if a.handle.Valid() {
		return a.handle, nil
	}
	if err := a.activate(); err != nil {
		return Handle{}, err
	}
	return m.enqueue(a), nil
}

func (m *Manager) enqueue(a *Actor) Handle {
	var idx uint32
	if n := len(m.free); n > 0 {
		idx, m.free = m.free[n-1], m.free[:n-1]
	} else {
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, slot{})
	}
	s := &m.slots[idx]
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	s.actor = a
	a.handle = Handle{Index: idx, Generation: s.generation}
	m.pending = append(m.pending, a.handle)
	return a.handle
}

func (m *Manager) release(h Handle) {
	s := &m.slots[h.Index]
	s.actor = nil
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	m.free = append(m.free, h.Index)
}

// Get resolves a handle. Dead actors still resolve until they are swept.
func (m *Manager) Get(h Handle) (*Actor, bool) {
	if !h.Valid() || int(h.Index) >= len(m.slots) {
		return nil, false
	}
	s := m.slots[h.Index]
	if s.generation != h.Generation || s.actor == nil {
		return nil, false
	}
	return s.actor, true
}

// Update runs one frame: sweep dead actors, update the rest in insertion
// order (drawing each through r when r is non-nil), then promote pending
// spawns. Behavior errors are collected and returned together; they never
// cut the frame short.
func (m *Manager) Update(dt float64, r Renderer) error {
	m.frame++

	kept := m.live[:0]
	for _, h := range m.live {
		if a, ok := m.Get(h); ok && a.alive {
			kept = append(kept, h)
			continue
		}
		m.release(h)
	}
	clear(m.live[len(kept):])
	m.live = kept

	var errs []error
	for _, h := range m.live {
		a, _ := m.Get(h)
		if err := a.Update(dt); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a, err))
		}
		if r != nil {
			r.Draw(a)
		}
	}

	m.live = append(m.live, m.pending...)
	m.pending = m.pending[:0]

	err := errors.Join(errs...)
	if err != nil {
		m.log.WithField("frame", m.frame).WithError(err).Warn("behavior errors")
	}
	return err
}

// FindByCapability returns the live, not yet dead actors that carry a
// behavior of the given kind, in update order.
func (m *Manager) FindByCapability(kind Kind) ([]*Actor, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, kind)
	}
	var out []*Actor
	for _, h := range m.live {
		if a, ok := m.Get(h); ok && a.alive && a.Has(kind) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Live returns the actors in the live set, including ones killed this frame.
func (m *Manager) Live() []*Actor {
	out := make([]*Actor, 0, len(m.live))
	for _, h := range m.live {
		if a, ok := m.Get(h); ok {
			out = append(out, a)
		}
	}
	return out
}

func (m *Manager) LiveCount() int    { return len(m.live) }
func (m *Manager) PendingCount() int { return len(m.pending) }
func (m *Manager) Frame() uint64     { return m.frame }

// Unload kills every live and pending actor and forgets all templates.
func (m *Manager) Unload() {
	killed := 0
	for _, set := range [][]Handle{m.live, m.pending} {
		for _, h := range set {
			if a, ok := m.Get(h); ok {
				if a.Kill() {
					killed++
				}
				m.release(h)
			}
		}
	}
	m.live, m.pending = nil, nil
	clear(m.templates)
	m.log.WithField("killed", killed).Debug("unloaded")
}
