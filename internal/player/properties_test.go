package player_test

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/san-kum/easelab/internal/catalog"
	"github.com/san-kum/easelab/internal/engine"
	"github.com/san-kum/easelab/internal/motion"
	"github.com/san-kum/easelab/internal/player"
)

// maxGuard bounds every preset's settle delay plus yoyo guard.
const maxGuard = player.DefaultSettleDelay + 2*4*time.Second + player.DefaultGuardPadding

func drawCategory(t *rapid.T) string {
	ids := append(catalog.IDs(), "", "nope", "ENTERING")
	return rapid.SampledFrom(ids).Draw(t, "category")
}

func drawVariant(t *rapid.T) string {
	var ids []string
	for _, c := range catalog.Categories() {
		ids = append(ids, c.VariantIDs()...)
	}
	ids = append(ids, "", "missing")
	return rapid.SampledFrom(ids).Draw(t, "variant")
}

func TestSelectCategoryAlwaysPicksFirst(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := player.New(nil, player.Options{})
		id := drawCategory(t)
		before := p.State()

		err := p.SelectCategory(id)
		c, known := catalog.Lookup(id)
		if !known {
			if err == nil || p.State() != before {
				t.Fatalf("unknown category %q changed state", id)
			}
			return
		}
		if err != nil {
			t.Fatalf("select %q: %v", id, err)
		}
		if p.Variant().ID != c.First().ID {
			t.Fatalf("category %q selected %q, want %q", id, p.Variant().ID, c.First().ID)
		}
	})
}

func TestControllerInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stage := player.NewStage()
		p := player.New(stage, player.Options{})
		eng := engine.New()
		if rapid.Bool().Draw(t, "loaded") {
			p.SetEngine(eng)
		}

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			state := p.State()
			snap := stage.Snapshot()

			switch rapid.IntRange(0, 5).Draw(t, "op") {
			case 0:
				id := drawCategory(t)
				if p.SelectCategory(id) == nil {
					if !stage.AtBaseline() {
						t.Fatalf("select category %q left stage off baseline", id)
					}
				} else if p.State() != state {
					t.Fatalf("refused category select changed state")
				}
			case 1:
				id := drawVariant(t)
				if p.SelectVariant(id) != nil && p.State() != state {
					t.Fatalf("refused variant select changed state")
				}
			case 2:
				calls := eng.Active()
				if err := p.Play(); err != nil {
					if p.State() != state || eng.Active() != calls {
						t.Fatalf("refused play changed state: %v", err)
					}
					if state.Playing && err != motion.ErrPlaying {
						t.Fatalf("play while playing returned %v", err)
					}
				} else if !p.Playing() {
					t.Fatalf("accepted play did not set playing")
				}
			case 3:
				err := p.Reset()
				if state.Playing {
					if err == nil || p.State() != state {
						t.Fatalf("reset while playing was not refused")
					}
					for j, s := range stage.Snapshot() {
						if s != snap[j] {
							t.Fatalf("reset while playing mutated target %d", j)
						}
					}
				} else if !stage.AtBaseline() {
					t.Fatalf("reset left stage off baseline")
				}
			case 4:
				p.ToggleYoyo()
			case 5:
				ms := rapid.IntRange(0, 3000).Draw(t, "ms")
				p.Advance(time.Duration(ms) * time.Millisecond)
			}

			if _, ok := p.Category().Variant(p.Variant().ID); !ok {
				t.Fatalf("variant %q not in category %q", p.Variant().ID, p.Category().ID)
			}
		}

		p.Advance(maxGuard)
		if p.Playing() {
			t.Fatalf("playing still set after the longest guard")
		}
		if p.Phase() != player.Idle {
			t.Fatalf("phase %s after the longest guard", p.Phase())
		}
	})
}
