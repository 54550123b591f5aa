package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/FatCoding3/walton-machine/internal/config"
	"github.com/FatCoding3/walton-machine/internal/export"
	"github.com/FatCoding3/walton-machine/internal/ladder"
	"github.com/FatCoding3/walton-machine/internal/logging"
	"github.com/FatCoding3/walton-machine/internal/metrics"
	"github.com/FatCoding3/walton-machine/internal/plot"
	"github.com/FatCoding3/walton-machine/internal/render"
	"github.com/FatCoding3/walton-machine/internal/sim"
	"github.com/FatCoding3/walton-machine/internal/viz"
)

var (
	configFile string
	preset     string
	stages     int
	voltage    float64
	steps      int
	logLevel   string
	// plot range and series selection
	fromStep int
	toStep   int
	allSteps bool
	noMax    bool
	noSum    bool
	upper    []int
	lower    []int
	allCaps  bool
	width    int
	height   int
	// export
	format string
	// live view
	frameRate int
	// sweep
	sweepStages []int
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))

// main builds the walton CLI and exits with status 1 when a command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "walton",
		Short:         "Cockcroft-Walton voltage multiplier simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&stages, "stages", config.DefaultStages, "number of stages")
	pf.Float64Var(&voltage, "voltage", config.DefaultVoltage, "drive voltage")
	pf.IntVar(&steps, "steps", config.DefaultSteps, "steps to simulate")
	pf.StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate and print the final system with metrics",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}

	showCmd := &cobra.Command{
		Use:   "show [step]",
		Short: "print the ladder diagram at a step (negative counts from the end)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showStep,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "terminal chart of voltages over steps",
		Args:  cobra.NoArgs,
		RunE:  plotTerminal,
	}
	addPlotFlags(plotCmd)

	chartCmd := &cobra.Command{
		Use:   "chart [file]",
		Short: "write a chart image (png, svg, pdf by extension)",
		Args:  cobra.ExactArgs(1),
		RunE:  plotImage,
	}
	addPlotFlags(chartCmd)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "write the step history to stdout",
		Args:  cobra.NoArgs,
		RunE:  exportHistory,
	}
	exportCmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step the ladder interactively",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 10, "steps per second while playing")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare convergence across stage counts",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntSliceVar(&sweepStages, "stage-counts", []int{1, 2, 4, 8}, "stage counts to simulate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSTAGES\tVOLTAGE\tSTEPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%g\t%d\n", name, p.Stages, p.Voltage, p.Steps)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write the resolved configuration to a yaml or toml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, showCmd, plotCmd, chartCmd, exportCmd, liveCmd, sweepCmd, presetsCmd, initCmd)
	return rootCmd
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&fromStep, "from", 0, "first step")
	cmd.Flags().IntVar(&toStep, "to", 0, "end step, exclusive (0 for latest)")
	cmd.Flags().BoolVar(&allSteps, "all-steps", false, "include even steps")
	cmd.Flags().BoolVar(&noMax, "no-max", false, "hide the max voltage line")
	cmd.Flags().BoolVar(&noSum, "no-sum", false, "hide the sum voltage line")
	cmd.Flags().IntSliceVar(&upper, "upper", nil, "upper capacitors to chart")
	cmd.Flags().IntSliceVar(&lower, "lower", nil, "lower capacitors to chart")
	cmd.Flags().BoolVar(&allCaps, "all", false, "chart every capacitor")
	cmd.Flags().IntVar(&width, "width", config.DefaultPlotWidth, "terminal chart width")
	cmd.Flags().IntVar(&height, "height", config.DefaultPlotHeight, "terminal chart height")
}

// resolveConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("stages") {
		cfg.Stages = stages
	}
	if flags.Changed("voltage") {
		cfg.Voltage = voltage
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("from") {
		cfg.Plot.From = fromStep
	}
	if flags.Changed("to") {
		cfg.Plot.To = toStep
	}
	if flags.Changed("all-steps") {
		cfg.Plot.OnlyOddSteps = !allSteps
	}
	if flags.Changed("no-max") {
		cfg.Plot.MaxVoltage = !noMax
	}
	if flags.Changed("no-sum") {
		cfg.Plot.SumVoltage = !noSum
	}
	if flags.Changed("upper") {
		cfg.Plot.Upper = upper
	}
	if flags.Changed("lower") {
		cfg.Plot.Lower = lower
	}
	if flags.Changed("all") {
		cfg.Plot.AllCapacitors = allCaps
	}
	if flags.Changed("width") {
		cfg.Plot.Width = width
	}
	if flags.Changed("height") {
		cfg.Plot.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() (zerolog.Logger, error) {
	return logging.New(os.Stderr, logLevel)
}

func plotOptions(cfg *config.Config) plot.Options {
	return plot.Options{
		From:          cfg.Plot.From,
		To:            cfg.Plot.To,
		OnlyOddSteps:  cfg.Plot.OnlyOddSteps,
		MaxVoltage:    cfg.Plot.MaxVoltage,
		SumVoltage:    cfg.Plot.SumVoltage,
		Upper:         cfg.Plot.Upper,
		Lower:         cfg.Plot.Lower,
		AllCapacitors: cfg.Plot.AllCapacitors,
		Width:         cfg.Plot.Width,
		Height:        cfg.Plot.Height,
	}
}

func layout(cfg *config.Config) render.Layout {
	l := render.DefaultLayout()
	if cfg.Render.ValueFormat != "" {
		l.ValueFormat = cfg.Render.ValueFormat
	}
	return l
}

func defaultMetrics(l *ladder.Ladder) []sim.Metric {
	return []sim.Metric{
		metrics.NewPeak(),
		metrics.NewConvergence(l.Ceiling(), metrics.DefaultFraction),
		metrics.NewRipple(),
	}
}

// simulate builds a ladder from the resolved config and runs it to
// completion, stopping early on interrupt.
func simulate(cmd *cobra.Command) (*config.Config, *sim.Runner, *sim.Result, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := newLogger()
	if err != nil {
		return nil, nil, nil, err
	}

	l, err := ladder.New(cfg.Stages, cfg.Voltage)
	if err != nil {
		return nil, nil, nil, err
	}
	r := sim.New(l, log)
	for _, m := range defaultMetrics(l) {
		r.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := r.Run(ctx, cfg.Steps)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("simulation stopped at step %d: %w", l.Len()-1, err)
	}
	log.Info().
		Int("stages", cfg.Stages).
		Int("steps", result.StepsTaken).
		Dur("elapsed", result.Elapsed).
		Msg("simulation complete")
	return cfg, r, result, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, r, result, err := simulate(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if err := render.Diagram(out, r.Ladder(), result.EndStep, layout(cfg)); err != nil {
		return err
	}

	fmt.Fprintln(out, headerStyle.Render("metrics"))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", result.StepsTaken)
	fmt.Fprintf(w, "sum_voltage\t%.6g\n", result.FinalSum)
	fmt.Fprintf(w, "ceiling\t%.6g\n", r.Ladder().Ceiling())
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6g\n", name, result.Metrics[name])
	}
	fmt.Fprintf(w, "elapsed\t%s\n", result.Elapsed)
	return w.Flush()
}

func showStep(cmd *cobra.Command, args []string) error {
	cfg, r, _, err := simulate(cmd)
	if err != nil {
		return err
	}

	step := -1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step %q: %w", args[0], err)
		}
		step = n
	}
	return render.Diagram(cmd.OutOrStdout(), r.Ladder(), step, layout(cfg))
}

func chart(cmd *cobra.Command) (*plot.Chart, plot.Options, error) {
	cfg, r, _, err := simulate(cmd)
	if err != nil {
		return nil, plot.Options{}, err
	}
	opts := plotOptions(cfg)
	c, err := plot.Series(r.Ladder(), opts)
	if err != nil {
		return nil, opts, err
	}
	if c.Warning != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", c.Warning)
	}
	return c, opts, nil
}

func plotTerminal(cmd *cobra.Command, args []string) error {
	c, opts, err := chart(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), plot.Terminal(c, opts))
	return nil
}

func plotImage(cmd *cobra.Command, args []string) error {
	c, _, err := chart(cmd)
	if err != nil {
		return err
	}
	if err := plot.Save(args[0], c); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[0])
	return nil
}

func exportHistory(cmd *cobra.Command, args []string) error {
	_, r, result, err := simulate(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "csv":
		return export.CSV(out, r.Ladder())
	case "json":
		return export.JSON(out, r.Ladder(), result.Metrics)
	default:
		return fmt.Errorf("unknown export format: %s (available: csv, json)", format)
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	l, err := ladder.New(cfg.Stages, cfg.Voltage)
	if err != nil {
		return err
	}
	p := tea.NewProgram(viz.NewModel(l, layout(cfg), frameRate), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runs, err := sim.Sweep(ctx, sweepStages, cfg.Voltage, cfg.Steps, defaultMetrics, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STAGES\tCEILING\tSUM\tPEAK\tSETTLE_STEP\tRIPPLE")
	for _, run := range runs {
		m := run.Result.Metrics
		fmt.Fprintf(w, "%d\t%g\t%.6g\t%.6g\t%.0f\t%.3g\n",
			run.Stages,
			run.Ladder.Ceiling(),
			run.Result.FinalSum,
			m["peak_voltage"],
			m["settle_step"],
			m["ripple"],
		)
	}
	return w.Flush()
}
