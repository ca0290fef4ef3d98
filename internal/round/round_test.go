package round

import (
	"github.com/jakecoffman/cp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeBall struct {
	pos      cp.Vector
	pinned   bool
	pins     int
	releases int
}

func (b *fakeBall) Position() cp.Vector { return b.pos }

func (b *fakeBall) Pin(at cp.Vector) {
	b.pos, b.pinned = at, true
	b.pins++
}

func (b *fakeBall) Release() {
	b.pinned = false
	b.releases++
}

var _ = Describe("Round", func() {
	var (
		ball   *fakeBall
		r      *Round
		levels []int
		lost   []int
		final  *Status
		serve  = cp.Vector{X: 512, Y: 384}
	)

	cfg := Config{Lives: 3, Level: 1, Countdown: 2, TopGoal: 38, BottomGoal: 730, Serve: serve}

	BeforeEach(func() {
		ball = &fakeBall{}
		levels, lost, final = nil, nil, nil
		r = New(cfg, ball, Hooks{
			Level:    func(l int) { levels = append(levels, l) },
			LifeLost: func(l int) { lost = append(lost, l) },
			Over:     func(s Status) { final = &s },
		})
	})

	release := func() {
		r.Update(cfg.Countdown)
		Expect(r.State()).To(Equal(InPlay))
	}

	It("starts serving with the ball pinned at the serve point", func() {
		Expect(r.State()).To(Equal(Serving))
		Expect(ball.pinned).To(BeTrue())
		Expect(ball.pos).To(Equal(serve))
		Expect(r.Status().Remaining).To(BeNumerically("~", 2, 1e-9))
	})

	It("releases the ball when the countdown expires", func() {
		r.Update(1.5)
		Expect(r.State()).To(Equal(Serving))
		Expect(ball.releases).To(BeZero())

		r.Update(0.5)
		Expect(r.State()).To(Equal(InPlay))
		Expect(ball.pinned).To(BeFalse())
		Expect(ball.releases).To(Equal(1))
	})

	Context("when the ball crosses the top goal", func() {
		It("levels up without a life on the first point", func() {
			release()
			ball.pos = cp.Vector{X: 500, Y: 10}
			r.Update(0.01)

			Expect(r.Level()).To(Equal(2))
			Expect(r.Lives()).To(Equal(3))
			Expect(r.State()).To(Equal(Serving))
			Expect(ball.pos).To(Equal(serve))
			Expect(levels).To(Equal([]int{2}))
		})

		It("grants a life every second level", func() {
			release()
			ball.pos.Y = 10
			r.Update(0.01)
			release()
			ball.pos.Y = 10
			r.Update(0.01)

			Expect(r.Level()).To(Equal(3))
			Expect(r.Lives()).To(Equal(4))
			Expect(r.Status().Points).To(Equal(2))
		})
	})

	Context("when the ball crosses the bottom goal", func() {
		It("costs a life and serves again", func() {
			release()
			ball.pos.Y = 760
			r.Update(0.01)

			Expect(r.Lives()).To(Equal(2))
			Expect(r.Level()).To(Equal(1))
			Expect(r.State()).To(Equal(Serving))
			Expect(lost).To(Equal([]int{2}))
		})

		It("ends the game when the last life is lost", func() {
			for i := 0; i < 3; i++ {
				release()
				ball.pos.Y = 760
				r.Update(0.01)
			}
			Expect(r.State()).To(Equal(GameOver))
			Expect(r.Over()).To(BeTrue())
			Expect(final).NotTo(BeNil())
			Expect(final.Conceded).To(Equal(3))

			releases := ball.releases
			r.Update(10)
			Expect(r.State()).To(Equal(GameOver))
			Expect(ball.releases).To(Equal(releases))
		})
	})

	It("ignores the ball while it stays between the goals", func() {
		release()
		ball.pos.Y = 400
		r.Update(0.01)
		Expect(r.State()).To(Equal(InPlay))
		Expect(r.Lives()).To(Equal(3))
	})

	It("names its states", func() {
		Expect(Serving.String()).To(Equal("serving"))
		Expect(GameOver.String()).To(Equal("game-over"))
	})
})
