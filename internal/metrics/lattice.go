package metrics

// LatticeEnergy is the mean kinetic energy of the lattice over the run.
type LatticeEnergy struct {
	name    string
	total   float64
	samples int
}

func NewLatticeEnergy() *LatticeEnergy {
	return &LatticeEnergy{name: "lattice_energy"}
}

func (e *LatticeEnergy) Name() string { return e.name }

func (e *LatticeEnergy) Observe(s Sample) {
	e.total += s.LatticeEnergy
	e.samples++
}

func (e *LatticeEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *LatticeEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// PeakActors is the largest live actor count seen.
type PeakActors struct {
	name string
	peak int
}

func NewPeakActors() *PeakActors {
	return &PeakActors{name: "peak_actors"}
}

func (p *PeakActors) Name() string { return p.name }

func (p *PeakActors) Observe(s Sample) {
	p.peak = max(p.peak, s.Live)
}

func (p *PeakActors) Value() float64 { return float64(p.peak) }

func (p *PeakActors) Reset() { p.peak = 0 }
