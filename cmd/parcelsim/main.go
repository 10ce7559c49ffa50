package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/cloudparcel/internal/config"
	"github.com/san-kum/cloudparcel/internal/export"
	"github.com/san-kum/cloudparcel/internal/metrics"
	"github.com/san-kum/cloudparcel/internal/parcel"
	"github.com/san-kum/cloudparcel/internal/storage"
	"github.com/san-kum/cloudparcel/internal/viz"
)

var (
	dataDir  string
	logLevel string

	preset      string
	initPreset  string
	onsetPreset string
	sweepPreset string
	configFile  string
	noSave      bool

	dt          float64
	tEnd        float64
	t0          float64
	rh0         float64
	updraft     float64
	coolingRate float64
	policy      string
	kRelax      float64
	kIce        float64
	iceEnabled  bool

	outPath    string
	plotSeries []string
	plotWidth  int
	svgSeries  string
)

var (
	headStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(20)
	stableStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

var log = logrus.StandardLogger()

func main() {
	rootCmd := &cobra.Command{
		Use:   "parcelsim",
		Short: "cloud parcel microphysics simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			log.SetOutput(os.Stderr)
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(log)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".parcelsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a parcel and store the result",
		Args:  cobra.NoArgs,
		RunE:  runParcel,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a parameter sweep",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSweepFlags(sweepCmd)

	onsetCmd := &cobra.Command{
		Use:   "onset",
		Short: "biological IN onset across cooling rates",
		Args:  cobra.NoArgs,
		RunE:  runOnset,
	}
	onsetCmd.Flags().Float64SliceVar(&onsetRates, "rates", []float64{0.002, 0.005, 0.01, 0.02}, "cooling rates (K/s)")
	onsetCmd.Flags().StringVar(&onsetPreset, "preset", "bio_onset", "base preset")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&plotSeries, "series", []string{"S", "T", "qi"}, "series to plot (S, S_pre, T, e, qi)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and series to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one run series as an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().StringVar(&svgSeries, "series", "S", "series to draw (S, S_pre, T, e, qi)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.Presets[name].Description)
			}
			return w.Flush()
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a parcel with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a scenario file from a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&initPreset, "preset", "mixed_ice", "preset to start from")

	rootCmd.AddCommand(runCmd, sweepCmd, onsetCmd, listCmd, showCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, liveCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&tEnd, "t-end", config.DefaultTEnd, "end time (s)")
	cmd.Flags().Float64Var(&t0, "t0", config.DefaultT0, "initial temperature (K)")
	cmd.Flags().Float64Var(&rh0, "rh0", config.DefaultRH0, "initial relative humidity (0-1)")
	cmd.Flags().Float64Var(&updraft, "updraft", config.DefaultUpdraft, "updraft velocity (m/s), 0 to use --cooling-rate")
	cmd.Flags().Float64Var(&coolingRate, "cooling-rate", 0, "cooling rate (K/s)")
	cmd.Flags().StringVar(&policy, "policy", string(config.PolicyLinear), "updraft to cooling policy (linear, dry_adiabatic)")
	cmd.Flags().Float64Var(&kRelax, "k-relax", config.DefaultKRelax, "liquid relaxation rate (1/s)")
	cmd.Flags().Float64Var(&kIce, "k-ice", config.DefaultKIce, "ice deposition rate (1/s)")
	cmd.Flags().BoolVar(&iceEnabled, "ice", false, "enable ice nucleation and deposition")
}

// loadConfig resolves preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.LookupPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	f := cmd.Flags()
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("t-end") {
		cfg.TEnd = tEnd
	}
	if f.Changed("t0") {
		cfg.T0 = t0
	}
	if f.Changed("rh0") {
		cfg.RH0 = rh0
	}
	if f.Changed("updraft") {
		cfg.Updraft = updraft
	}
	if f.Changed("cooling-rate") {
		cfg.CoolingRate = coolingRate
		if !f.Changed("updraft") {
			cfg.Updraft = 0
		}
	}
	if f.Changed("policy") {
		cfg.CoolingPolicy = config.CoolingPolicy(policy)
	}
	if f.Changed("k-relax") {
		cfg.Liquid.KRelax = kRelax
	}
	if f.Changed("k-ice") {
		cfg.Ice.KIce = kIce
	}
	if f.Changed("ice") {
		cfg.Ice.Enabled = iceEnabled
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runParcel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := cfg.ToScenario()
	if err != nil {
		return err
	}

	sim, err := parcel.New(sc, parcel.WithLogger(log), parcel.WithMetrics(metrics.Default()...))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.WithFields(logrus.Fields{
		"scenario":     sc.Name,
		"cooling_rate": sc.CoolingRate,
		"dt":           sc.Dt,
		"ice":          sc.IceEnabled,
	}).Info("running parcel")
	start := time.Now()

	result, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID := ""
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		if runID, err = st.Save(sc, result); err != nil {
			return err
		}
	}

	printSummary(sc, metrics.Summarize(result), runID, elapsed)
	return nil
}

func printSummary(sc parcel.Scenario, sum metrics.Summary, runID string, elapsed time.Duration) {
	row := func(label, format string, a ...any) {
		fmt.Println(labelStyle.Render(label) + fmt.Sprintf(format, a...))
	}

	fmt.Println(headStyle.Render(strings.ToUpper(sc.Name)))
	if runID != "" {
		row("run id", "%s", runID)
	}
	row("completed in", "%v", elapsed)
	row("samples", "%d", sum.Samples)
	row("cooling rate", "%.4f K/s", sc.CoolingRate)
	row("peak S", "% .3e at %.0f s", sum.PeakS, sum.PeakTime)
	row("mean S", "% .3e ± %.3e", sum.MeanS, sum.StdS)
	row("min S", "% .3e", sum.MinS)
	row("time supersaturated", "%.0f s", sum.TimeSupersaturated)
	row("final T", "%.2f K", sum.FinalT)
	if sc.IceEnabled {
		row("final qi", "%.3e", sum.FinalQi)
		if sum.IceOnset != nil {
			row("ice onset", "%.0f s at %.2f K (%s, %.3g m^-3)", sum.IceOnset.Time, sum.IceOnset.Temperature, sum.IceOnset.Species, sum.IceOnset.NActive)
		} else {
			row("ice onset", "none")
		}
	}
	for _, p := range sc.Aerosols {
		row("activated "+p.Name, "%t", sum.Activated[p.Name])
	}
	row("clamps", "%d", sum.ClampCount)
	row("stability number", "%.2f", metrics.StabilityNumber(sc))

	style := stableStyle
	if !sum.Stability.Stable() {
		style = alertStyle
	}
	row("stability", "%s", style.Render(sum.Stability.String()))
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tT_END\tDT\tICE\tPEAK S\tSTABILITY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fs\t%.2fs\t%t\t%.3e\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TEnd,
			run.Dt,
			run.IceEnabled,
			run.Summary.PeakS,
			run.Summary.Stability,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

var seriesFields = map[string]func(parcel.Sample) float64{
	"S":     func(s parcel.Sample) float64 { return s.S },
	"S_pre": func(s parcel.Sample) float64 { return s.SPre },
	"T":     func(s parcel.Sample) float64 { return s.T },
	"e":     func(s parcel.Sample) float64 { return s.E },
	"qi":    func(s parcel.Sample) float64 { return s.Qi },
}

var seriesCaptions = map[string]string{
	"S":     "supersaturation (post-sink)",
	"S_pre": "supersaturation (pre-sink)",
	"T":     "temperature (K)",
	"e":     "vapor pressure (Pa)",
	"qi":    "ice growth proxy",
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series.Samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(series.Samples))

	res := &parcel.Result{Samples: series.Samples}
	for _, name := range plotSeries {
		fn, ok := seriesFields[name]
		if !ok {
			return fmt.Errorf("unknown series %q", name)
		}
		graph := asciigraph.Plot(res.Series(fn),
			asciigraph.Height(10),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(seriesCaptions[name]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

// output returns the --out file or stdout.
func output() (*os.File, func() error, error) {
	if outPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	series, err := storage.New(dataDir).LoadSeries(args[0])
	if err != nil {
		return err
	}

	out, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(out, series.Populations, series.Samples); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	out, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).Export(out, args[0]); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	fn, ok := seriesFields[svgSeries]
	if !ok {
		return fmt.Errorf("unknown series %q", svgSeries)
	}

	res := &parcel.Result{Samples: series.Samples}
	opts := export.DefaultSVGOptions()
	opts.Title = fmt.Sprintf("%s: %s", meta.Scenario, seriesCaptions[svgSeries])
	if on := meta.Summary.IceOnset; on != nil {
		opts.Marker = &on.Time
	}

	out, closeFn, err := output()
	if err != nil {
		return err
	}
	t := res.Series(func(s parcel.Sample) float64 { return s.Time })
	if err := export.SeriesSVG(out, t, res.Series(fn), opts); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := cfg.ToScenario()
	if err != nil {
		return err
	}
	sim, err := parcel.New(sc, parcel.WithLogger(log))
	if err != nil {
		return err
	}
	return viz.RunLive(sim)
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LookupPreset(initPreset)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	log.WithField("path", args[0]).Info("scenario written")
	fmt.Printf("wrote %s (preset %s)\n", args[0], initPreset)
	return nil
}
