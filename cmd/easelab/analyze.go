package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/easelab/internal/analysis"
	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/export"
	"github.com/san-kum/easelab/internal/metrics"
	"github.com/san-kum/easelab/internal/motion"
	"github.com/san-kum/easelab/internal/storage"
)

func leadTarget(res *capture.Result) (int, error) {
	targets := res.AnimatedTargets()
	if len(targets) == 0 {
		return 0, fmt.Errorf("capture %s/%s has no motion", res.Category, res.Variant)
	}
	return targets[0], nil
}

func analyzeCapture(cmd *cobra.Command, args []string) error {
	res, err := storage.New(cfg.DataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	target, err := leadTarget(res)
	if err != nil {
		return err
	}

	fmt.Printf("capture: %s  preset: %s/%s  target: %s\n\n", args[0], res.Category, res.Variant, res.Targets[target])

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tOVERSHOOT\tSETTLE\tPEAK/S\tCROSSINGS\tDOMINANT")
	var visibility float64
	for _, k := range res.Animated() {
		if k.Textual() {
			continue
		}
		set := metrics.Standard(target, k)
		m := set.Replay(res)
		visibility = m["visibility"]

		series := res.Series(target, k)
		final := series[len(series)-1]
		hz, _ := analysis.Spectrum(res, target, k).Dominant()
		fmt.Fprintf(w, "%s\t%.1f%%\t%.3fs\t%.2f\t%d\t%.2fHz\n",
			k,
			m[string(k)+".overshoot"]*100,
			m[string(k)+".settle"],
			m[string(k)+".peak_speed"],
			len(analysis.Crossings(res, target, k, final)),
			hz,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nvisible in %.0f%% of frames\n", visibility*100)

	if k := res.Animated(); len(k) > 0 {
		ps := analysis.PowerSpectrum(res.Series(target, k[0]))
		if len(ps) > 1 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(ps[1:],
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", k[0])),
			))
		}
	}
	return nil
}

func plotPath(cmd *cobra.Command, args []string) error {
	res, err := storage.New(cfg.DataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	target, err := leadTarget(res)
	if err != nil {
		return err
	}
	xk, ok := motion.LookupKey(xChannel)
	if !ok {
		return fmt.Errorf("%w: %s", motion.ErrUnknownProperty, xChannel)
	}
	yk, ok := motion.LookupKey(yChannel)
	if !ok {
		return fmt.Errorf("%w: %s", motion.ErrUnknownProperty, yChannel)
	}

	path := analysis.MotionPath(res, target, xk, yk)
	if path == nil {
		return fmt.Errorf("%s and %s must both be numeric", xk, yk)
	}
	fmt.Printf("%s vs %s  (o start, @ end)\n", yk, xk)
	fmt.Print(analysis.PathToASCII(path, 60, 20))

	if svgPath != "" {
		pts := make([]struct{ X, Y float64 }, len(path.Points))
		for i, p := range path.Points {
			pts[i] = struct{ X, Y float64 }{p.X, p.Y}
		}
		if err := os.WriteFile(svgPath, []byte(export.TrajectoryToSVG(pts, 400, 300, "#ff00ff")), 0644); err != nil {
			return err
		}
		fmt.Printf("exported: %s\n", svgPath)
	}
	return nil
}
