package actor

// Behavior is one unit of per-frame logic owned by exactly one actor.
type Behavior interface {
	Kind() Kind
	// Bind sets the owning actor. It is called once, when the owner is built.
	Bind(owner *Actor)
	// Init runs after the owner's physics handles exist and are in the world.
	Init() error
	Update(dt float64) error
	// Clone returns an unbound copy. Implementations copy their own fields
	// explicitly; the copy must not share mutable state with the original.
	Clone() Behavior
}

// Base carries the owner reference and no-op hooks for embedding.
type Base struct {
	owner *Actor
}

func (b *Base) Bind(owner *Actor) { b.owner = owner }
func (b *Base) Owner() *Actor     { return b.owner }
func (b *Base) Init() error       { return nil }
