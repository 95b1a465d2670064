package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/easing"
	"github.com/san-kum/easelab/internal/metrics"
	"github.com/san-kum/easelab/internal/motion"
	"github.com/san-kum/easelab/internal/optim"
)

// tuneHost is the preset whose slot the generated code plays in. Its
// duration bounds the guard, so it must be at least as long as the grid.
const tuneHost = "continuous/float"

func tuneEase(cmd *cobra.Command, args []string) error {
	family := args[0]
	if _, err := easing.Parse(fmt.Sprintf("%s(1)", family)); err != nil {
		return err
	}
	params, err := optim.ParseRange(paramRange)
	if err != nil {
		return err
	}
	durations, err := optim.ParseRange(durationRange)
	if err != nil {
		return err
	}

	build := func(p map[string]float64) capture.Config {
		return capture.Config{
			Category:     "continuous",
			Variant:      "float",
			Dt:           capture.DefaultDt,
			SettleDelay:  cfg.SettleDelay(),
			GuardPadding: cfg.GuardPadding(),
			Code: fmt.Sprintf("gsap.to(\".element\", {\n  x: 100,\n  ease: \"%s(%g)\",\n  duration: %g\n});",
				family, p["param"], p["duration"]),
		}
	}
	cost := func(res *capture.Result) float64 {
		m := metrics.NewSet(
			metrics.NewOvershoot(0, motion.KeyX),
			metrics.NewSettleTime(0, motion.KeyX, 0.02),
		).Replay(res)
		c := math.Abs(m["x.overshoot"] - goalOvershoot)
		if goalSettle > 0 {
			c += math.Abs(m["x.settle"]-goalSettle) / goalSettle
		}
		return c
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch([]string{"param", "duration"}, [][]float64{params, durations})
	best, bestCost, trials, err := g.Search(ctx, build, cost)
	if err != nil {
		return err
	}

	sort.SliceStable(trials, func(i, j int) bool { return trials[i].Cost < trials[j].Cost })
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EASE\tDURATION\tCOST")
	for i, tr := range trials {
		if i == 5 {
			break
		}
		if tr.Err != nil {
			continue
		}
		fmt.Fprintf(w, "%s(%g)\t%gs\t%.4f\n", family, tr.Params["param"], tr.Params["duration"], tr.Cost)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbest: ease: \"%s(%g)\", duration: %g  (cost %.4f, %d points, host %s)\n",
		family, best["param"], best["duration"], bestCost, len(trials), tuneHost)
	return nil
}
