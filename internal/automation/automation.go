package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/catalog"
	"github.com/san-kum/easelab/internal/engine"
	"github.com/san-kum/easelab/internal/player"
	"github.com/san-kum/easelab/internal/storage"
)

// Scenario defines a scripted sequence of playbacks.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`

	dir string
}

// ScenarioStep is a single playback. Code and CodeFile replace the variant's
// code text; CodeFile is relative to the scenario file.
type ScenarioStep struct {
	Category string  `yaml:"category"`
	Variant  string  `yaml:"variant"`
	Yoyo     bool    `yaml:"yoyo"`
	Code     string  `yaml:"code"`
	CodeFile string  `yaml:"code_file"`
	DtMs     float64 `yaml:"dt_ms"`
	Save     bool    `yaml:"save"`
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Step    ScenarioStep
	Capture *capture.Result
	SavedID string
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	scenario.dir = filepath.Dir(path)

	return &scenario, nil
}

func (s ScenarioStep) code(dir string) (string, error) {
	if s.Code != "" && s.CodeFile != "" {
		return "", fmt.Errorf("code and code_file are exclusive")
	}
	if s.CodeFile == "" {
		return s.Code, nil
	}
	path := s.CodeFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RunScenario executes all steps in order. Steps marked save are written to
// st, which may be nil when no step saves. Progress goes to out.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Fprintf(out, "Running step %d/%d: %s/%s\n", i+1, len(scenario.Steps), orFirst(step.Category), orFirst(step.Variant))

		code, err := step.code(scenario.dir)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		c := capture.New(capture.Config{
			Category: step.Category,
			Variant:  step.Variant,
			Yoyo:     step.Yoyo,
			Code:     code,
			Dt:       time.Duration(step.DtMs * float64(time.Millisecond)),
		})
		if err := c.Setup(); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		res, err := c.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		if res.Err != nil {
			fmt.Fprintf(out, "  effect failed: %v\n", res.Err)
		}

		sr := StepResult{Step: step, Capture: res}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: save requested without a store", i+1)
			}
			id, err := st.Save(res, code)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.SavedID = id
			fmt.Fprintf(out, "  saved %s\n", id)
		}
		results = append(results, sr)
	}

	return results, nil
}

func orFirst(id string) string {
	if id == "" {
		return "(first)"
	}
	return id
}

// Sweep plays every variant of the named categories, or of the whole
// catalog when none are named.
type Sweep struct {
	Categories []string
	Yoyo       bool
	Dt         time.Duration
}

// SweepResult summarises one variant of a sweep.
type SweepResult struct {
	Category string
	Variant  string
	Duration float64
	Animated int
	Metrics  map[string]float64
	Err      error
}

// RunSweep captures each variant in catalog order.
func RunSweep(ctx context.Context, sweep *Sweep, out io.Writer) ([]SweepResult, error) {
	ids := sweep.Categories
	if len(ids) == 0 {
		ids = catalog.IDs()
	}

	var results []SweepResult
	for _, id := range ids {
		cat, ok := catalog.Lookup(id)
		if !ok {
			return results, fmt.Errorf("sweep: unknown category %q", id)
		}
		for _, v := range cat.Variants() {
			c := capture.New(capture.Config{Category: id, Variant: v.ID, Yoyo: sweep.Yoyo, Dt: sweep.Dt})
			if err := c.Setup(); err != nil {
				return results, err
			}
			res, err := c.Run(ctx)
			if err != nil {
				return results, err
			}
			results = append(results, SweepResult{
				Category: id,
				Variant:  v.ID,
				Duration: res.Duration(),
				Animated: len(res.Animated()),
				Metrics:  res.Metrics,
				Err:      res.Err,
			})
			fmt.Fprintf(out, "Sweep %s/%s: %.2fs\n", id, v.ID, res.Duration())
		}
	}

	return results, nil
}

// SoakConfig drives random operation sequences against the controller.
type SoakConfig struct {
	Trials int
	Ops    int
	Seed   int64
	Dt     time.Duration
}

// SoakResult reports one trial. Violations lists every broken invariant.
type SoakResult struct {
	TrialID    int
	Ops        []string
	Violations []string
}

// Stable reports whether the trial held every invariant.
func (r SoakResult) Stable() bool { return len(r.Violations) == 0 }

var soakOps = []string{"category", "variant", "play", "reset", "yoyo", "advance"}

// RunSoak applies random selections, plays, resets, yoyo toggles and clock
// advances to a fresh controller per trial and checks that the selection
// stays consistent, selections land on baseline, and every playback clears.
func RunSoak(ctx context.Context, cfg *SoakConfig, out io.Writer) ([]SoakResult, error) {
	if cfg.Dt <= 0 {
		cfg.Dt = capture.DefaultDt
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]SoakResult, 0, cfg.Trials)
	for trial := 0; trial < cfg.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		p := player.New(player.NewStage(), player.Options{})
		p.SetEngine(engine.New())
		r := SoakResult{TrialID: trial}
		check := func(cond bool, msg string) {
			if !cond {
				r.Violations = append(r.Violations, fmt.Sprintf("op %d: %s", len(r.Ops), msg))
			}
		}

		for i := 0; i < cfg.Ops; i++ {
			op := soakOps[rng.Intn(len(soakOps))]
			r.Ops = append(r.Ops, op)
			before := p.State()
			switch op {
			case "category":
				ids := catalog.IDs()
				err := p.SelectCategory(ids[rng.Intn(len(ids))])
				check((err == nil) != before.Playing, "category selection guard")
				if err == nil {
					check(p.Variant().ID == p.Category().First().ID, "category did not select its first variant")
					check(p.Stage().AtBaseline(), "category selection left stage off baseline")
				}
			case "variant":
				ids := p.Category().VariantIDs()
				err := p.SelectVariant(ids[rng.Intn(len(ids))])
				check((err == nil) != before.Playing, "variant selection guard")
				if err == nil {
					check(p.Stage().AtBaseline(), "variant selection left stage off baseline")
				}
			case "play":
				err := p.Play()
				check((err == nil) != before.Playing, "play guard")
			case "reset":
				err := p.Reset()
				if before.Playing {
					check(err != nil && p.State() == before, "reset changed a playing controller")
				} else {
					check(p.Stage().AtBaseline(), "reset left stage off baseline")
				}
			case "yoyo":
				p.ToggleYoyo()
				check(p.Yoyo() != before.Yoyo, "yoyo did not toggle")
			case "advance":
				p.Advance(time.Duration(rng.Intn(30)+1) * cfg.Dt)
			}
			_, ok := p.Category().Variant(p.Variant().ID)
			check(ok, "variant outside its category")
		}

		p.Advance(2*p.GuardTimeout() + p.Options().SettleDelay)
		check(!p.Playing() && p.Phase() == player.Idle, "playback never cleared")

		results = append(results, r)
		if (trial+1)%10 == 0 {
			fmt.Fprintf(out, "Soak: %d/%d trials complete\n", trial+1, cfg.Trials)
		}
	}

	return results, nil
}

// SoakStats counts stable and unstable trials.
func SoakStats(results []SoakResult) (stable int, unstable int) {
	for _, r := range results {
		if r.Stable() {
			stable++
		} else {
			unstable++
		}
	}
	return
}
