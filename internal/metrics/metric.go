// Package metrics summarizes a run from its per-frame samples.
package metrics

// Sample is the per-frame record of a match.
type Sample struct {
	Time          float64
	Live          int
	LatticeEnergy float64
	LatticePeak   float64
	BallX         float64
	BallY         float64
	BallSpeed     float64
	Level         int
	Lives         int
	Points        int
	Conceded      int
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Standard returns the metrics every run records.
func Standard() []Metric {
	return []Metric{
		NewLatticeEnergy(),
		NewPeakActors(),
		NewBallSpeed(),
		NewPointsPlayed(),
	}
}
