package player_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/easelab/internal/catalog"
	"github.com/san-kum/easelab/internal/engine"
	"github.com/san-kum/easelab/internal/motion"
	"github.com/san-kum/easelab/internal/player"
	"github.com/san-kum/easelab/internal/script"
)

const settle = player.DefaultSettleDelay

type panicEngine struct{ engine.Recorder }

func (p *panicEngine) From([]*motion.Target, motion.Props, motion.Options) error {
	panic("engine exploded")
}

var _ = Describe("Player", func() {
	var (
		stage *player.Stage
		p     *player.Player
		rec   *engine.Recorder
	)

	BeforeEach(func() {
		stage = player.NewStage()
		p = player.New(stage, player.Options{})
		rec = &engine.Recorder{}
	})

	Describe("initial state", func() {
		It("selects the first variant of the first category", func() {
			Expect(p.Category().ID).To(Equal("entering"))
			Expect(p.Variant().ID).To(Equal("fadeUp"))
			Expect(p.Phase()).To(Equal(player.Idle))
			Expect(p.Buffer()).To(Equal(p.Variant().Code))
			Expect(stage.AtBaseline()).To(BeTrue())
			Expect(p.EngineLoaded()).To(BeFalse())
		})
	})

	Describe("SelectCategory", func() {
		for _, c := range catalog.Categories() {
			It("resets the variant to the first of "+c.ID, func() {
				Expect(p.SelectVariant(p.Category().VariantIDs()[1])).To(Succeed())
				Expect(p.SelectCategory(c.ID)).To(Succeed())
				Expect(p.Category().ID).To(Equal(c.ID))
				Expect(p.Variant().ID).To(Equal(c.First().ID))
				Expect(p.Buffer()).To(Equal(c.First().Code))
			})
		}

		It("ignores unknown ids", func() {
			before := p.State()
			Expect(p.SelectCategory("sideways")).To(MatchError(motion.ErrUnknownCategory))
			Expect(p.State()).To(Equal(before))
		})

		It("resets the stage", func() {
			stage.Box.Style.X = 40
			stage.Items[2].Style.Opacity = 0
			Expect(p.SelectCategory("hover")).To(Succeed())
			Expect(stage.AtBaseline()).To(BeTrue())
		})
	})

	Describe("SelectVariant", func() {
		It("only accepts variants of the current category", func() {
			before := p.State()
			Expect(p.SelectVariant("wave")).To(MatchError(motion.ErrUnknownVariant))
			Expect(p.State()).To(Equal(before))
		})

		It("restores the identical baseline on A, B, A", func() {
			p.SetEngine(engine.New())
			Expect(p.SelectVariant("popIn")).To(Succeed())
			first := stage.Snapshot()

			stage.Box.Style.Rotation = 90
			Expect(p.SelectVariant("slideRight")).To(Succeed())
			Expect(p.SelectVariant("popIn")).To(Succeed())
			Expect(stage.Snapshot()).To(Equal(first))
			Expect(stage.AtBaseline()).To(BeTrue())
		})
	})

	Describe("Play preconditions", func() {
		It("is refused before the engine loads", func() {
			before := p.State()
			Expect(p.Play()).To(MatchError(motion.ErrEngineNotLoaded))
			Expect(p.State()).To(Equal(before))
			Expect(p.PendingTimers()).To(BeZero())
		})

		It("is refused while playing without touching the engine", func() {
			p.SetEngine(rec)
			Expect(p.Play()).To(Succeed())
			p.Advance(settle)
			calls, kills := len(rec.Calls), len(rec.Kills)
			before := p.State()

			Expect(p.Play()).To(MatchError(motion.ErrPlaying))
			Expect(p.State()).To(Equal(before))
			Expect(rec.Calls).To(HaveLen(calls))
			Expect(rec.Kills).To(HaveLen(kills))
		})

		It("refuses selections while playing", func() {
			p.SetEngine(rec)
			Expect(p.Play()).To(Succeed())
			Expect(p.SelectCategory("hover")).To(MatchError(motion.ErrPlaying))
			Expect(p.SelectVariant("popIn")).To(MatchError(motion.ErrPlaying))
			Expect(p.Variant().ID).To(Equal("fadeUp"))
		})
	})

	Describe("fadeUp", func() {
		It("requests y 60 to 0 and opacity 0 to 1 over 0.5s with back.out(1.7)", func() {
			p.SetEngine(rec)
			Expect(p.Play()).To(Succeed())
			Expect(p.Phase()).To(Equal(player.Resetting))
			Expect(rec.Calls).To(BeEmpty())

			p.Advance(settle)
			Expect(p.Phase()).To(Equal(player.Playing))
			Expect(rec.Calls).To(HaveLen(1))
			call := rec.Calls[0]
			Expect(call.Method).To(Equal(motion.MethodFrom))
			Expect(call.Targets).To(Equal([]string{"box"}))
			Expect(call.From).To(Equal(motion.Props{motion.KeyY: motion.Num(60), motion.KeyOpacity: motion.Num(0)}))
			Expect(call.Options.Ease).To(Equal("back.out(1.7)"))
			Expect(call.Options.Duration).To(Equal(0.5))
		})

		It("animates the box from the start values back to baseline", func() {
			p.SetEngine(engine.New())
			Expect(p.Play()).To(Succeed())

			p.Advance(settle)
			Expect(stage.Box.Style.Y).To(BeNumerically("~", 60, 1e-6))
			Expect(stage.Box.Style.Opacity).To(BeNumerically("~", 0, 1e-6))

			p.Advance(500 * time.Millisecond)
			Expect(stage.Box.Style.Y).To(BeNumerically("~", 0, 1e-3))
			Expect(stage.Box.Style.Opacity).To(BeNumerically("~", 1, 1e-3))
		})

		It("clears the playing guard after duration plus padding", func() {
			p.SetEngine(rec)
			Expect(p.Play()).To(Succeed())
			Expect(p.GuardTimeout()).To(Equal(time.Second))

			p.Advance(settle + time.Second - time.Millisecond)
			Expect(p.Playing()).To(BeTrue())
			p.Advance(time.Millisecond)
			Expect(p.Playing()).To(BeFalse())
			Expect(p.Phase()).To(Equal(player.Idle))
		})

		It("doubles the duration in yoyo mode and plays the mirrored form", func() {
			p.SetEngine(rec)
			p.ToggleYoyo()
			Expect(p.GuardTimeout()).To(Equal(1500 * time.Millisecond))
			Expect(p.Play()).To(Succeed())

			p.Advance(settle)
			Expect(rec.Calls).To(HaveLen(1))
			call := rec.Calls[0]
			Expect(call.Method).To(Equal(motion.MethodFromTo))
			Expect(call.To).To(Equal(motion.Props{motion.KeyY: motion.Num(0), motion.KeyOpacity: motion.Num(1)}))
			Expect(call.Options.Yoyo).To(BeTrue())
			Expect(call.Options.Repeat).To(Equal(1))

			p.Advance(1500*time.Millisecond - time.Millisecond)
			Expect(p.Playing()).To(BeTrue())
			p.Advance(time.Millisecond)
			Expect(p.Playing()).To(BeFalse())
		})
	})

	Describe("cascade", func() {
		BeforeEach(func() {
			Expect(p.SelectCategory("stagger")).To(Succeed())
			Expect(p.Variant().ID).To(Equal("cascade"))
		})

		It("requests a from tween over five items with a 0.08s stagger", func() {
			p.SetEngine(rec)
			Expect(p.Play()).To(Succeed())
			p.Advance(settle)

			Expect(rec.Calls).To(HaveLen(1))
			call := rec.Calls[0]
			Expect(call.Targets).To(HaveLen(5))
			Expect(call.From).To(Equal(motion.Props{motion.KeyY: motion.Num(40), motion.KeyOpacity: motion.Num(0)}))
			Expect(call.Options.Stagger).NotTo(BeNil())
			Expect(call.Options.Stagger.Each).To(Equal(0.08))
		})

		It("brings every item from y 40 to 0", func() {
			p.SetEngine(engine.New())
			Expect(p.Play()).To(Succeed())
			p.Advance(settle)
			for _, it := range stage.Items {
				Expect(it.Style.Y).To(BeNumerically("~", 40, 1e-6))
			}
			p.Advance(900 * time.Millisecond)
			for _, it := range stage.Items {
				Expect(it.Style.Y).To(BeNumerically("~", 0, 1e-3))
				Expect(it.Style.Opacity).To(BeNumerically("~", 1, 1e-3))
			}
			Expect(stage.Box.Style).To(Equal(motion.Baseline()))
		})
	})

	Describe("Reset", func() {
		It("is a no-op while playing", func() {
			p.SetEngine(engine.New())
			Expect(p.Play()).To(Succeed())
			p.Advance(settle + 200*time.Millisecond)

			before, state := stage.Snapshot(), p.State()
			Expect(p.Reset()).To(MatchError(motion.ErrPlaying))
			Expect(stage.Snapshot()).To(Equal(before))
			Expect(p.State()).To(Equal(state))
		})

		It("stops running tweens before forcing baseline", func() {
			eng := engine.New()
			p.SetEngine(eng)
			Expect(p.SelectCategory("continuous")).To(Succeed())
			Expect(p.Play()).To(Succeed())
			p.Advance(settle + 3*time.Second)
			Expect(p.Playing()).To(BeFalse())
			Expect(eng.Active()).To(Equal(1))

			Expect(p.Reset()).To(Succeed())
			Expect(eng.Idle()).To(BeTrue())
			p.Advance(time.Second)
			Expect(stage.AtBaseline()).To(BeTrue())
		})
	})

	Describe("editable flavor", func() {
		var reported []error

		BeforeEach(func() {
			reported = nil
			p = player.New(stage, player.Options{
				Editable: true,
				OnError:  func(err error) { reported = append(reported, err) },
			})
			p.SetEngine(rec)
		})

		It("has no yoyo mode", func() {
			p.ToggleYoyo()
			Expect(p.Yoyo()).To(BeFalse())
			Expect(p.GuardTimeout()).To(Equal(time.Second))
		})

		It("reseeds the buffer and leaves edit mode on selection", func() {
			Expect(p.Edit()).To(Succeed())
			Expect(p.SetBuffer("gsap.to(\".element\", { x: 1 })")).To(Succeed())
			Expect(p.Dirty()).To(BeTrue())

			Expect(p.SelectVariant("popIn")).To(Succeed())
			Expect(p.Editing()).To(BeFalse())
			Expect(p.Dirty()).To(BeFalse())
			Expect(p.Buffer()).To(Equal(p.Variant().Code))
		})

		It("runs edited code through the compiler", func() {
			Expect(p.SetBuffer(`gsap.to(".element", { x: 100, ease: "power2.out", duration: 0.5 })`)).To(Succeed())
			Expect(p.Play()).To(Succeed())
			p.Advance(settle)

			Expect(rec.Calls).To(HaveLen(1))
			Expect(rec.Calls[0].Method).To(Equal(motion.MethodTo))
			Expect(rec.Calls[0].To).To(Equal(motion.Props{motion.KeyX: motion.Num(100)}))
			Expect(p.LastError()).NotTo(HaveOccurred())
		})

		It("reports a syntax error, leaves the stage at baseline and still clears the guard", func() {
			Expect(p.SetBuffer(`gsap.from(".element", { y: 60,, })`)).To(Succeed())
			Expect(p.Play()).To(Succeed())
			p.Advance(settle)

			Expect(rec.Calls).To(BeEmpty())
			Expect(stage.AtBaseline()).To(BeTrue())
			Expect(reported).To(HaveLen(1))

			var serr *motion.ScriptError
			Expect(errors.As(p.LastError(), &serr)).To(BeTrue())
			Expect(serr.Category).To(Equal("entering"))
			Expect(serr.Variant).To(Equal("fadeUp"))
			var syn *script.SyntaxError
			Expect(errors.As(p.LastError(), &syn)).To(BeTrue())
			Expect(syn.Pos.Line).To(Equal(1))

			Expect(p.Playing()).To(BeTrue())
			p.Advance(time.Second)
			Expect(p.Playing()).To(BeFalse())
		})

		It("rejects unknown selectors without partial mutation", func() {
			Expect(p.SetBuffer(`gsap.to(".element", { x: 5 }); gsap.to("#other", { x: 1 })`)).To(Succeed())
			Expect(p.Play()).To(Succeed())
			p.Advance(settle)

			Expect(rec.Calls).To(BeEmpty())
			Expect(p.LastError()).To(MatchError(motion.ErrUnknownSelector))
		})
	})

	Describe("read-only flavor", func() {
		It("refuses edits", func() {
			Expect(p.Edit()).To(MatchError(player.ErrReadOnly))
			Expect(p.SetBuffer("x")).To(MatchError(player.ErrReadOnly))
			Expect(p.Dirty()).To(BeFalse())
		})
	})

	Describe("failing effects", func() {
		It("recovers from an engine panic and still clears the guard", func() {
			var got error
			p = player.New(stage, player.Options{OnError: func(err error) { got = err }})
			p.SetEngine(&panicEngine{})
			Expect(p.Play()).To(Succeed())
			p.Advance(settle)

			Expect(got).To(MatchError(ContainSubstring("engine exploded")))
			p.Advance(time.Second)
			Expect(p.Playing()).To(BeFalse())
		})
	})
})
