package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/easelab/internal/config"
	"github.com/san-kum/easelab/internal/log"
	"github.com/san-kum/easelab/internal/viz"
)

var (
	configFile string
	dataDir    string
	debug      bool
	cfg        *config.Config
	closeLog   func()

	// browser
	theme     string
	fps       int
	editable  bool
	yoyo      bool
	category  string
	variant   string
	hideCode  bool
	loadDelay int

	// capture
	dtMs     float64
	codeFile string
	save     bool
	live     bool
	liveFPS  int
	channel  string

	// exports
	outPath string
	cells   int
	svgPath string

	// tune
	paramRange    string
	durationRange string
	goalOvershoot float64
	goalSettle    float64

	// path
	xChannel string
	yChannel string

	// soak
	trials  int
	ops     int
	seed    int64
	outFile string
)

// main registers the commands and runs the preset browser when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:               "easelab",
		Short:             "motion design preset lab",
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeLog != nil {
				closeLog()
			}
		},
		RunE:         runBrowser,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "easelab.yaml", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "capture directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log")
	browserFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive preset browser",
		RunE:  runBrowser,
	}
	browserFlags(tuiCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [category]",
		Short: "list categories and their variants",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	showCmd := &cobra.Command{
		Use:   "show [category] [variant]",
		Short: "print a preset's code and compiled steps",
		Args:  cobra.ExactArgs(2),
		RunE:  showPreset,
	}

	playCmd := &cobra.Command{
		Use:   "play [category] [variant]",
		Short: "play a preset headless and plot its channels",
		Args:  cobra.ExactArgs(2),
		RunE:  playPreset,
	}
	playCmd.Flags().BoolVar(&yoyo, "yoyo", false, "play the go-and-return form")
	playCmd.Flags().StringVar(&codeFile, "code-file", "", "play this code instead of the preset's")
	playCmd.Flags().Float64Var(&dtMs, "dt", 1000.0/60, "sample step in milliseconds")
	playCmd.Flags().BoolVar(&save, "save", false, "save the capture")
	playCmd.Flags().BoolVar(&live, "live", false, "draw the stage while playing")
	playCmd.Flags().IntVar(&liveFPS, "fps", 30, "live frame rate")
	playCmd.Flags().StringVar(&channel, "channel", "", "plot only this property")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved captures",
		RunE:  listCaptures,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [capture_id]",
		Short: "plot a saved capture",
		Args:  cobra.ExactArgs(1),
		RunE:  plotCapture,
	}
	plotCmd.Flags().StringVar(&channel, "channel", "", "plot only this property")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [capture_id]",
		Short: "export capture series to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <id>.json)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [capture_id]",
		Short: "export capture frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <id>.csv)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [capture_id]",
		Short: "export a capture as a filmstrip SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <id>.svg)")
	exportSVGCmd.Flags().IntVar(&cells, "cells", 8, "number of frames in the strip")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [capture_id]",
		Short: "overshoot, settle time and frequency of each channel",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeCapture,
	}

	pathCmd := &cobra.Command{
		Use:   "path [capture_id]",
		Short: "plot one channel against another",
		Args:  cobra.ExactArgs(1),
		RunE:  plotPath,
	}
	pathCmd.Flags().StringVar(&xChannel, "x", "x", "horizontal channel")
	pathCmd.Flags().StringVar(&yChannel, "y", "y", "vertical channel")
	pathCmd.Flags().StringVar(&svgPath, "svg", "", "also write the path as SVG")

	tuneCmd := &cobra.Command{
		Use:   "tune [ease family]",
		Short: "grid search an ease parameter and duration for a target overshoot",
		Long: "Plays a 100px slide for every point of the grid, e.g.\n" +
			"  easelab tune back.out --param 0.5:4:0.25 --duration 0.3:0.8:0.1 --overshoot 0.1",
		Args: cobra.ExactArgs(1),
		RunE: tuneEase,
	}
	tuneCmd.Flags().StringVar(&paramRange, "param", "0.5:4:0.5", "ease parameter range lo:hi[:step]")
	tuneCmd.Flags().StringVar(&durationRange, "duration", "0.5", "duration range in seconds")
	tuneCmd.Flags().Float64Var(&goalOvershoot, "overshoot", 0.1, "wanted overshoot as a fraction of travel")
	tuneCmd.Flags().Float64Var(&goalSettle, "settle", 0, "wanted settle time in seconds (0 to ignore)")

	curveCmd := &cobra.Command{
		Use:   "curve [ease]",
		Short: "plot an easing curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotCurve,
	}
	curveCmd.Flags().StringVar(&svgPath, "svg", "", "also write the curve as SVG")

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "compile animation code and print its steps",
		Args:  cobra.ExactArgs(1),
		RunE:  checkCode,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of captures",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [category...]",
		Short: "capture every variant and summarise",
		RunE:  runSweep,
	}
	sweepCmd.Flags().BoolVar(&yoyo, "yoyo", false, "sweep the go-and-return forms")
	sweepCmd.Flags().Float64Var(&dtMs, "dt", 1000.0/60, "sample step in milliseconds")

	soakCmd := &cobra.Command{
		Use:   "soak",
		Short: "random operation soak test of the controller",
		RunE:  runSoak,
	}
	soakCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	soakCmd.Flags().IntVar(&ops, "ops", 200, "operations per trial")
	soakCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 for time based)")
	soakCmd.Flags().StringVar(&outFile, "out", "", "write results as yaml")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, presetsCmd, showCmd, playCmd, listCmd, plotCmd, exportJSONCmd,
		exportCSVCmd, exportSVGCmd, analyzeCmd, pathCmd, tuneCmd, curveCmd, checkCmd, scenarioCmd, sweepCmd, soakCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func browserFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&theme, "theme", "", "color theme")
	cmd.Flags().IntVar(&fps, "fps", 0, "frame rate")
	cmd.Flags().BoolVar(&editable, "edit", false, "allow editing the code")
	cmd.Flags().BoolVar(&yoyo, "yoyo", false, "start in yoyo mode")
	cmd.Flags().StringVar(&category, "category", "", "initial category")
	cmd.Flags().StringVar(&variant, "variant", "", "initial variant")
	cmd.Flags().BoolVar(&hideCode, "hide-code", false, "start with the code pane hidden")
	cmd.Flags().IntVar(&loadDelay, "load-delay", int(viz.DefaultLoadLatency.Milliseconds()), "engine load latency in milliseconds")
}

// setup loads the config and opens the debug log.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if debug {
		c.Debug = true
	}
	cfg = c

	if !cfg.Debug {
		return nil
	}
	closeLog, err = log.InitWithTeaLog(cfg.LogFile, "easelab")
	if err != nil {
		return fmt.Errorf("debug log: %w", err)
	}
	log.Info(log.CatConfig, "debug logging enabled", "command", cmd.Name())
	return nil
}
