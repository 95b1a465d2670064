// Package optim searches parameter grids for the capture that best meets a
// goal.
package optim

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/log"
)

// Cost scores a finished capture; lower is better.
type Cost func(res *capture.Result) float64

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Cost   float64
	Err    error
}

// Search captures every grid point and returns the cheapest. Points whose
// capture fails to set up or reports an effect error are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(params map[string]float64) capture.Config,
	cost Cost,
) (map[string]float64, float64, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("optim: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	var trials []Trial

	err := g.searchRecursive(ctx, 0, make(map[string]float64), build, cost, &best, &bestParams, &trials)
	if err != nil {
		return nil, 0, trials, err
	}
	if bestParams == nil {
		return nil, 0, trials, fmt.Errorf("optim: no grid point produced a capture")
	}
	return bestParams, best, trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build func(map[string]float64) capture.Config,
	cost Cost,
	best *float64,
	bestParams *map[string]float64,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		trial := Trial{Params: current}
		defer func() { *trials = append(*trials, trial) }()

		c := capture.New(build(current))
		if trial.Err = c.Setup(); trial.Err != nil {
			return nil
		}
		result, err := c.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			trial.Err = err
			return nil
		}
		if result.Err != nil {
			trial.Err = result.Err
			log.Debug(log.CatScript, "grid point failed", "params", current, "err", result.Err)
			return nil
		}

		trial.Cost = cost(result)
		if trial.Cost < *best {
			*best = trial.Cost
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, build, cost, best, bestParams, trials); err != nil {
			return err
		}
	}
	return nil
}

// Range lists lo, lo+step, ... up to hi inclusive.
func Range(lo, hi, step float64) []float64 {
	if step <= 0 || hi < lo {
		return []float64{lo}
	}
	var out []float64
	n := int(math.Floor((hi-lo)/step + 1e-9))
	for i := 0; i <= n; i++ {
		out = append(out, lo+float64(i)*step)
	}
	return out
}

// ParseRange reads "lo:hi:step", "lo:hi" (ten steps) or a single value.
func ParseRange(text string) ([]float64, error) {
	parts := strings.Split(text, ":")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("optim: range %q: %w", text, err)
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		return vals, nil
	case 2:
		return Range(vals[0], vals[1], (vals[1]-vals[0])/10), nil
	case 3:
		return Range(vals[0], vals[1], vals[2]), nil
	}
	return nil, fmt.Errorf("optim: range %q: want lo:hi[:step]", text)
}
