package arena

import (
	"context"

	"github.com/jakecoffman/cp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/fieldpong/internal/actor"
	"github.com/san-kum/fieldpong/internal/behavior"
	"github.com/san-kum/fieldpong/internal/config"
	"github.com/san-kum/fieldpong/internal/metrics"
	"github.com/san-kum/fieldpong/internal/physics"
	"github.com/san-kum/fieldpong/internal/round"
)

var _ = Describe("Layout", func() {
	It("derives the boxes, field and goals from the screen", func() {
		l, err := NewLayout(1024, 768, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.PlayerBox).To(Equal(physics.Rect{X: 10, Y: 580, Width: 994, Height: 150}))
		Expect(l.ComputerBox).To(Equal(physics.Rect{X: 10, Y: 38, Width: 994, Height: 150}))
		Expect(l.Field).To(Equal(physics.Rect{X: 10, Y: 188, Width: 994, Height: 392}))
		Expect(l.TopGoal).To(Equal(38.0))
		Expect(l.BottomGoal).To(Equal(730.0))
		Expect(l.Serve).To(Equal(cp.Vector{X: 512, Y: 384}))
		Expect(l.PlayerSpawn()).To(Equal(cp.Vector{X: 512, Y: 655}))
		Expect(l.ComputerSpawn()).To(Equal(cp.Vector{X: 512, Y: 113}))
	})

	It("rejects a screen too short for both boxes", func() {
		_, err := NewLayout(1024, 300, 10)
		Expect(err).To(MatchError(ErrArenaTooSmall))
	})

	It("rejects an empty screen", func() {
		_, err := NewLayout(0, 768, 10)
		Expect(err).To(MatchError(physics.ErrInvalidRect))
	})
})

var _ = Describe("World", func() {
	var (
		cfg *config.Config
		w   *World
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
	})

	JustBeforeEach(func() {
		var err error
		w, err = New(cfg, Options{})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(w.Close)
	})

	step := func(frames int) {
		for i := 0; i < frames; i++ {
			Expect(w.Step(cfg.Dt)).To(Succeed())
		}
	}

	serveOut := func() {
		for i := 0; i < 1000 && w.Round.State() == round.Serving; i++ {
			step(1)
		}
		Expect(w.Round.State()).To(Equal(round.InPlay))
	}

	It("registers all six templates", func() {
		for _, name := range []string{
			TemplatePlayerPaddle, TemplateComputerPaddle, TemplateObstacle,
			TemplateBall, TemplateGravityBall, TemplateBullet,
		} {
			_, ok := w.Actors.Template(name)
			Expect(ok).To(BeTrue(), name)
		}
	})

	It("starts with paddles, ball and obstacles live", func() {
		Expect(w.Actors.LiveCount()).To(Equal(7))
		Expect(w.Actors.PendingCount()).To(BeZero())
		Expect(w.Player().Position()).To(Equal(w.Layout.PlayerSpawn()))
		Expect(w.Computer().Position()).To(Equal(w.Layout.ComputerSpawn()))
	})

	It("serves a pinned ball and launches it when the countdown ends", func() {
		Expect(w.Round.State()).To(Equal(round.Serving))
		Expect(w.Ball().Body().Static()).To(BeTrue())

		serveOut()
		Expect(w.Round.Status().Elapsed).To(BeNumerically("~", cfg.Round.Countdown, 2*cfg.Dt))

		step(1)
		Expect(w.Ball().Body().Static()).To(BeFalse())
		Expect(w.Ball().Body().LinearVelocity().Length()).To(BeNumerically(">", 0))
	})

	It("launches the obstacles on the first frame", func() {
		step(1)
		obstacles := 0
		for _, a := range w.Actors.Live() {
			if a.Visual().Name != TemplateObstacle {
				continue
			}
			obstacles++
			Expect(a.Body().LinearVelocity().Length()).To(BeNumerically(">", 0))
		}
		Expect(obstacles).To(Equal(4))
	})

	It("confines the paddles to their boxes", func() {
		confine, ok := actor.BehaviorOf[*behavior.Confine](w.Player())
		Expect(ok).To(BeTrue())
		Expect(confine.Rect()).To(Equal(w.Layout.PlayerBox))
		Expect(w.Player().Geom().CollidesWith() & CatPlayerBox).NotTo(BeZero())
		Expect(w.Regions.Len()).To(Equal(4))
	})

	It("tracks the ball with the computer paddle", func() {
		ai, ok := actor.BehaviorOf[*behavior.AIPaddle](w.Computer())
		Expect(ok).To(BeTrue())
		Expect(ai.Ball()).To(Equal(w.Ball().Handle()))
		Expect(ai.Level()).To(Equal(1))
	})

	It("raises both paddles a level when the player scores", func() {
		serveOut()

		w.Ball().Body().SetPosition(cp.Vector{X: 512, Y: 10})
		step(1)

		Expect(w.Round.Level()).To(Equal(2))
		Expect(w.Round.State()).To(Equal(round.Serving))
		Expect(w.Ball().Position()).To(Equal(w.Layout.Serve))

		ai, _ := actor.BehaviorOf[*behavior.AIPaddle](w.Computer())
		in, _ := actor.BehaviorOf[*behavior.InputPaddle](w.Player())
		Expect(ai.Level()).To(Equal(2))
		Expect(in.Level()).To(Equal(2))
	})

	It("reports a sample of the current frame", func() {
		step(3)
		s := w.Sample()
		Expect(s.Time).To(BeNumerically("~", 3*cfg.Dt, 1e-9))
		Expect(s.Live).To(Equal(w.Actors.LiveCount()))
		Expect(s.Lives).To(Equal(cfg.Round.Lives))
		Expect(s.BallX).To(Equal(512.0))
	})

	It("empties the registry on close", func() {
		w.Close()
		Expect(w.Actors.LiveCount()).To(BeZero())
		Expect(w.Regions.Len()).To(BeZero())
		Expect(w.Player().Alive()).To(BeFalse())
	})

	Context("with the AI disabled and no obstacles", func() {
		BeforeEach(func() {
			cfg.AI.Enabled = false
			cfg.Obstacles.Count = 0
		})

		It("builds a computer paddle without an AI", func() {
			Expect(w.Computer().Has(actor.KindAIPaddle)).To(BeFalse())
			Expect(w.Actors.LiveCount()).To(Equal(3))
		})
	})

	Context("starting at a higher level", func() {
		BeforeEach(func() {
			cfg.Round.Level = 12
		})

		It("hands the level to both paddles", func() {
			ai, _ := actor.BehaviorOf[*behavior.AIPaddle](w.Computer())
			in, _ := actor.BehaviorOf[*behavior.InputPaddle](w.Player())
			Expect(ai.Level()).To(Equal(12))
			Expect(in.Level()).To(Equal(12))
		})
	})

	Describe("Autopilot", func() {
		It("steers toward the ball and aims upfield", func() {
			w.Player().Body().SetPosition(cp.Vector{X: 300, Y: 655})
			st := NewAutopilot(w).Poll()
			Expect(st.Move.X).To(BeNumerically(">", 0))
			Expect(st.Move.X).To(BeNumerically("<=", 1))
			Expect(st.Aim.Y).To(BeNumerically(">", 0))
			Expect(st.Aim.Length()).To(BeNumerically("~", 1, 1e-9))
		})

		It("lobs a gravity ball when the ball is far upfield", func() {
			st := NewAutopilot(w).Poll()
			Expect(st.Buttons).NotTo(BeZero())
		})

		It("holds fire at a ball behind the paddle", func() {
			w.Ball().Body().SetPosition(cp.Vector{X: 512, Y: 720})
			st := NewAutopilot(w).Poll()
			Expect(st.Aim).To(Equal(cp.Vector{}))
			Expect(st.Buttons).To(BeZero())
		})

		It("is idle once the paddle is gone", func() {
			w.Player().Kill()
			Expect(NewAutopilot(w).Poll()).To(BeZero())
		})
	})
})

var _ = Describe("Runner", func() {
	var w *World

	BeforeEach(func() {
		cfg := config.DefaultConfig()
		var err error
		w, err = New(cfg, Options{})
		Expect(err).NotTo(HaveOccurred())
		w.SetInput(NewAutopilot(w))
		DeferCleanup(w.Close)
	})

	It("steps for the requested duration and records every frame", func() {
		r := NewRunner(w)
		for _, m := range metrics.Standard() {
			r.AddMetric(m)
		}
		res, err := r.Run(context.Background(), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(Equal(60))
		Expect(res.Samples).To(HaveLen(61))
		Expect(res.Metrics).To(HaveKey("lattice_energy"))
		Expect(res.Metrics).To(HaveKey("peak_actors"))
		Expect(res.Metrics["peak_actors"]).To(BeNumerically(">=", 7))
		Expect(res.Final.Lives).To(Equal(3))
	})

	It("thins the samples", func() {
		r := NewRunner(w)
		r.SampleEvery(10)
		res, err := r.Run(context.Background(), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Samples).To(HaveLen(7))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := NewRunner(w).Run(ctx, 10)
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.Frames).To(BeZero())
		Expect(res.Samples).To(HaveLen(1))
	})

	It("rejects a negative duration", func() {
		_, err := NewRunner(w).Run(context.Background(), -1)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Ensemble", func() {
	It("plays one match per seed", func() {
		cfg := config.DefaultConfig()
		results, err := NewEnsemble(cfg, 3, 10).Run(context.Background(), 0.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for _, res := range results {
			Expect(res.Frames).To(Equal(30))
			Expect(res.Metrics).To(HaveLen(4))
		}
	})

	It("plays concurrent matches that spawn projectiles", func() {
		cfg := config.DefaultConfig()
		results, err := NewEnsemble(cfg, 4, 1).Run(context.Background(), 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))
		for _, res := range results {
			Expect(res.Frames).To(Equal(120))
			Expect(res.Errors).To(BeEmpty())
		}
	})

	It("reports a bad configuration", func() {
		cfg := config.DefaultConfig()
		cfg.Arena.Height = 100
		_, err := NewEnsemble(cfg, 2, 1).Run(context.Background(), 0.5)
		Expect(err).To(MatchError(ErrArenaTooSmall))
	})
})
