package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/easelab/internal/automation"
	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/catalog"
	"github.com/san-kum/easelab/internal/config"
	"github.com/san-kum/easelab/internal/easing"
	"github.com/san-kum/easelab/internal/export"
	"github.com/san-kum/easelab/internal/motion"
	"github.com/san-kum/easelab/internal/script"
	"github.com/san-kum/easelab/internal/storage"
	"github.com/san-kum/easelab/internal/tui"
	"github.com/san-kum/easelab/internal/viz"
)

func runBrowser(cmd *cobra.Command, args []string) error {
	opts := viz.Options{
		Theme:        cfg.Theme,
		FPS:          cfg.FPS,
		ShowCode:     cfg.ShowCode && !hideCode,
		Editable:     cfg.Editable || editable,
		Yoyo:         cfg.Yoyo || yoyo,
		Category:     cfg.Category,
		Variant:      cfg.Variant,
		SettleDelay:  cfg.SettleDelay(),
		GuardPadding: cfg.GuardPadding(),
		LoadLatency:  time.Duration(loadDelay) * time.Millisecond,
	}
	if theme != "" {
		opts.Theme = theme
	}
	if fps > 0 {
		opts.FPS = fps
	}
	if category != "" {
		opts.Category = category
		opts.Variant = ""
	}
	if variant != "" {
		opts.Variant = variant
	}
	return viz.Run(opts)
}

func listPresets(cmd *cobra.Command, args []string) error {
	cats := catalog.Categories()
	if len(args) == 1 {
		c, ok := catalog.Lookup(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", motion.ErrUnknownCategory, args[0])
		}
		cats = []catalog.Category{c}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, c := range cats {
		fmt.Fprintf(w, "%s %s\t%s\n", c.Icon, c.ID, c.Description)
		for _, v := range c.Variants() {
			mode := ""
			if v.Stagger {
				mode = "stagger"
			}
			if v.HasMirror() {
				mode = strings.TrimSpace(mode + " yoyo")
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%gs\t%s\n", v.ID, v.Label, v.Ease, v.Duration, mode)
		}
	}
	return w.Flush()
}

func showPreset(cmd *cobra.Command, args []string) error {
	v, err := catalog.Find(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("%s/%s  %s\n", args[0], v.ID, v.Label)
	fmt.Printf("ease: %s  duration: %gs\n\n", v.Ease, v.Duration)
	fmt.Println(v.Code)

	compiled, err := script.Compile(v.Code)
	if err != nil {
		return fmt.Errorf("preset code does not compile: %w", err)
	}
	fmt.Println()
	for _, line := range script.Describe(compiled) {
		fmt.Println(line)
	}
	return nil
}

func sampleStep() time.Duration {
	return time.Duration(dtMs * float64(time.Millisecond))
}

func playPreset(cmd *cobra.Command, args []string) error {
	cc := capture.Config{
		Category:     args[0],
		Variant:      args[1],
		Yoyo:         yoyo,
		Dt:           sampleStep(),
		SettleDelay:  cfg.SettleDelay(),
		GuardPadding: cfg.GuardPadding(),
	}
	if codeFile != "" {
		src, err := os.ReadFile(codeFile)
		if err != nil {
			return err
		}
		cc.Code = string(src)
	}

	c := capture.New(cc)
	var lr *tui.LiveRenderer
	if live {
		lr = tui.NewLiveRenderer(os.Stdout, args[0]+"/"+args[1], liveFPS)
		c.AddObserver(lr)
		lr.Start()
		defer lr.Stop()
	}
	if err := c.Setup(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := c.Run(ctx)
	if err != nil {
		return err
	}
	if res.Err != nil {
		fmt.Printf("effect error: %v\n", res.Err)
	}

	if !live {
		if err := plotResult(res); err != nil {
			return err
		}
	}
	printMetrics(res.Metrics)

	if save {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(res, cc.Code)
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", id)
	}
	return nil
}

func plotResult(res *capture.Result) error {
	targets := res.AnimatedTargets()
	if len(targets) == 0 {
		fmt.Println("nothing moved")
		return nil
	}
	// a stagger plays the same tween on every item; the first shows the shape
	target := targets[0]

	keys := res.Animated()
	if channel != "" {
		k, ok := motion.LookupKey(channel)
		if !ok {
			return fmt.Errorf("%w: %s", motion.ErrUnknownProperty, channel)
		}
		keys = []motion.Key{k}
	}

	fmt.Printf("%s/%s  target: %s  frames: %d  duration: %.3fs\n\n",
		res.Category, res.Variant, res.Targets[target], len(res.Frames), res.Duration())
	for _, k := range keys {
		data := res.Series(target, k)
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(string(k)+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func printMetrics(m map[string]float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range sortedKeys(m) {
		fmt.Fprintf(w, "%s\t%.4f\n", k, m[k])
	}
	w.Flush()
}

func listCaptures(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no captures found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tFRAMES\tMODE\tERROR")
	for _, m := range runs {
		mode := "single"
		switch {
		case m.Edited:
			mode = "edited"
		case m.Yoyo:
			mode = "yoyo"
		}
		fmt.Fprintf(w, "%s\t%s/%s\t%s\t%.3fs\t%d\t%s\t%s\n",
			m.ID,
			m.Category, m.Variant,
			m.Timestamp.Format("2006-01-02 15:04:05"),
			m.Duration,
			m.Frames,
			mode,
			m.Error,
		)
	}
	return w.Flush()
}

func plotCapture(cmd *cobra.Command, args []string) error {
	res, err := storage.New(cfg.DataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("capture: %s\n", args[0])
	return plotResult(res)
}

func defaultOut(id, ext string) string {
	if outPath != "" {
		return outPath
	}
	return id + ext
}

func exportJSON(cmd *cobra.Command, args []string) error {
	res, err := storage.New(cfg.DataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	path := defaultOut(args[0], ".json")
	if err := storage.ExportJSON(path, res); err != nil {
		return err
	}
	fmt.Printf("exported: %s\n", path)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	res, err := storage.New(cfg.DataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	path := defaultOut(args[0], ".csv")
	if err := storage.ExportCSV(path, res); err != nil {
		return err
	}
	fmt.Printf("exported: %s\n", path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	v, err := catalog.Find(res.Category, res.Variant)
	if err != nil {
		return err
	}
	path := defaultOut(args[0], ".svg")
	if err := os.WriteFile(path, []byte(export.FilmstripSVG(res, v.Stagger, cells, 160)), 0644); err != nil {
		return err
	}
	fmt.Printf("exported: %s\n", path)
	return nil
}

func plotCurve(cmd *cobra.Command, args []string) error {
	fn, err := easing.Parse(args[0])
	if err != nil {
		return err
	}
	graph := asciigraph.Plot(easing.Sample(fn, 80),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(args[0]),
	)
	fmt.Println(graph)

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.CurveSVG(fn, 400, 300, "#00ffff")), 0644); err != nil {
			return err
		}
		fmt.Printf("exported: %s\n", svgPath)
	}
	return nil
}

func checkCode(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	compiled, err := script.Compile(string(src))
	if err != nil {
		return err
	}
	for _, line := range script.Describe(compiled) {
		fmt.Println(line)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, st, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tDURATION\tSAVED\tERROR")
	for i, r := range results {
		errText := ""
		if r.Capture.Err != nil {
			errText = r.Capture.Err.Error()
		}
		fmt.Fprintf(w, "%d\t%s/%s\t%.3fs\t%s\t%s\n", i+1, r.Capture.Category, r.Capture.Variant,
			r.Capture.Duration(), r.SavedID, errText)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.Sweep{Categories: args, Yoyo: yoyo, Dt: sampleStep()}, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDURATION\tANIMATED\tERROR")
	for _, r := range results {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		fmt.Fprintf(w, "%s/%s\t%.3fs\t%d\t%s\n", r.Category, r.Variant, r.Duration, r.Animated, errText)
	}
	return w.Flush()
}

func runSoak(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSoak(ctx, &automation.SoakConfig{Trials: trials, Ops: ops, Seed: seed}, os.Stdout)
	if err != nil {
		return err
	}
	stable, unstable := automation.SoakStats(results)
	fmt.Printf("stable: %d  unstable: %d\n", stable, unstable)
	for _, r := range results {
		for _, v := range r.Violations {
			fmt.Printf("  trial %d: %s\n", r.TrialID, v)
		}
	}

	if outFile != "" {
		data, err := yaml.Marshal(results)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outFile, data, 0644); err != nil {
			return err
		}
	}
	if unstable > 0 {
		return fmt.Errorf("%d unstable trials", unstable)
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := configFile
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
