package metrics

// BallSpeed is the mean ball speed over the frames the ball was moving.
type BallSpeed struct {
	name    string
	total   float64
	samples int
}

func NewBallSpeed() *BallSpeed {
	return &BallSpeed{name: "ball_speed"}
}

func (b *BallSpeed) Name() string { return b.name }

func (b *BallSpeed) Observe(s Sample) {
	if s.BallSpeed == 0 {
		return
	}
	b.total += s.BallSpeed
	b.samples++
}

func (b *BallSpeed) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return b.total / float64(b.samples)
}

func (b *BallSpeed) Reset() {
	b.total = 0
	b.samples = 0
}

// PointsPlayed counts points scored and conceded.
type PointsPlayed struct {
	name   string
	points int
}

func NewPointsPlayed() *PointsPlayed {
	return &PointsPlayed{name: "points"}
}

func (p *PointsPlayed) Name() string { return p.name }

func (p *PointsPlayed) Observe(s Sample) {
	p.points = s.Points + s.Conceded
}

func (p *PointsPlayed) Value() float64 { return float64(p.points) }

func (p *PointsPlayed) Reset() { p.points = 0 }
