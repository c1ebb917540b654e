package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/hapticlab/teleop/internal/analysis"
	"github.com/hapticlab/teleop/internal/config"
	"github.com/hapticlab/teleop/internal/metrics"
	"github.com/hapticlab/teleop/internal/session"
	"github.com/hapticlab/teleop/internal/store"
	"github.com/hapticlab/teleop/internal/tui"
)

var (
	dataDir string
	verbose bool

	dt       float64
	duration float64
	delay    int
	dim      int

	impedance float64
	tau       float64
	muMax     float64

	kp float64
	ki float64
	kd float64

	deadband float64

	masterMass     float64
	masterDamping  float64
	slaveMass      float64
	slaveStiffness float64
	slaveDamping   float64

	amplitude float64
	frequency float64

	configFile string
	preset     string
	saveRun    bool
	jsonOut    bool
	plotTrace  bool
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	metricStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "teleop",
		Short: "bilateral haptic teleoperation lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			slog.SetDefault(slog.New(
				tint.NewHandler(os.Stderr, &tint.Options{
					Level:      level,
					TimeFormat: "15:04:05",
				}),
			))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".teleop", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log session progress")

	runCmd := &cobra.Command{
		Use:   "run [scheme]",
		Short: "run a bilateral session",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSession,
	}
	addSessionFlags(runCmd)
	runCmd.Flags().BoolVar(&saveRun, "save", false, "save the run to the data directory")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write the run as JSON to stdout")
	runCmd.Flags().BoolVar(&plotTrace, "plot", false, "plot force and position traces")

	compareCmd := &cobra.Command{
		Use:   "compare [scheme] [scheme] ...",
		Short: "compare coupling schemes on the same scenario",
		RunE:  compareSchemes,
	}
	addSessionFlags(compareCmd)

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [scheme]",
		Short: "run a session with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSessionFlags(liveCmd)

	rootCmd.AddCommand(runCmd, compareCmd, runsCmd, plotCmd, exportCmd, analyzeCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSessionFlags(cmd *cobra.Command) {
	def := session.DefaultConfig()
	cmd.Flags().Float64Var(&dt, "dt", def.Dt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", def.Duration, "duration")
	cmd.Flags().IntVar(&delay, "delay", def.Delay, "channel delay in ticks, each direction")
	cmd.Flags().IntVar(&dim, "dim", def.Dim, "workspace dimension")
	cmd.Flags().Float64Var(&impedance, "impedance", def.Impedance, "wave impedance b")
	cmd.Flags().Float64Var(&tau, "tau", def.Tau, "iss time constant")
	cmd.Flags().Float64Var(&muMax, "mu-max", def.MuMax, "iss force gradient bound")
	cmd.Flags().Float64Var(&kp, "kp", def.KP, "tracker kp")
	cmd.Flags().Float64Var(&ki, "ki", def.KI, "tracker ki")
	cmd.Flags().Float64Var(&kd, "kd", def.KD, "tracker kd")
	cmd.Flags().Float64Var(&deadband, "deadband", def.Deadband, "relative deadband threshold (0 disables)")
	cmd.Flags().Float64Var(&masterMass, "master-mass", def.MasterMass, "master device mass")
	cmd.Flags().Float64Var(&masterDamping, "master-damping", def.MasterDamping, "master device damping")
	cmd.Flags().Float64Var(&slaveMass, "slave-mass", def.SlaveMass, "slave device mass")
	cmd.Flags().Float64Var(&slaveStiffness, "slave-stiffness", def.SlaveStiffness, "environment stiffness")
	cmd.Flags().Float64Var(&slaveDamping, "slave-damping", def.SlaveDamping, "environment damping")
	cmd.Flags().Float64Var(&amplitude, "amplitude", def.OperatorAmplitude, "operator force amplitude")
	cmd.Flags().Float64Var(&frequency, "frequency", def.OperatorFrequency, "operator force frequency (hz)")
	cmd.Flags().StringVar(&configFile, "config", "", "session config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset")
}

// buildConfig merges preset, config file and changed flags, in that order,
// into a validated session configuration.
func buildConfig(cmd *cobra.Command, args []string) (session.Config, error) {
	cfg := config.Default()

	if preset != "" {
		cfg = config.Preset(preset)
		if cfg == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return session.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return session.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		if _, err := session.ParseScheme(args[0]); err != nil {
			return session.Config{}, err
		}
		cfg.Scheme = args[0]
	}

	flagValues := map[string]func(){
		"dt":              func() { cfg.Dt = dt },
		"time":            func() { cfg.Duration = duration },
		"delay":           func() { cfg.Delay = delay },
		"dim":             func() { cfg.Dim = dim },
		"impedance":       func() { cfg.Impedance = impedance },
		"tau":             func() { cfg.Tau = tau },
		"mu-max":          func() { cfg.MuMax = muMax },
		"kp":              func() { cfg.Tracker.Kp = kp },
		"ki":              func() { cfg.Tracker.Ki = ki },
		"kd":              func() { cfg.Tracker.Kd = kd },
		"deadband":        func() { cfg.Deadband = deadband },
		"master-mass":     func() { cfg.Master.Mass = masterMass },
		"master-damping":  func() { cfg.Master.Damping = masterDamping },
		"slave-mass":      func() { cfg.Slave.Mass = slaveMass },
		"slave-stiffness": func() { cfg.Slave.Stiffness = slaveStiffness },
		"slave-damping":   func() { cfg.Slave.Damping = slaveDamping },
		"amplitude":       func() { cfg.Operator.Amplitude = amplitude },
		"frequency":       func() { cfg.Operator.Frequency = frequency },
	}
	for name, apply := range flagValues {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	return cfg.Session()
}

func defaultMetrics() []session.Metric {
	return []session.Metric{
		metrics.NewEnergyLedger(),
		metrics.NewSuppression(),
		metrics.NewControlEffort(),
		metrics.NewPeakForce(),
	}
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	s, err := session.New(cfg, slog.Default())
	if err != nil {
		return err
	}
	for _, m := range defaultMetrics() {
		s.AddMetric(m)
	}

	start := time.Now()
	result, err := s.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if jsonOut {
		if saveRun {
			if _, err := save(cfg, result); err != nil {
				return err
			}
		}
		return store.ExportResultJSON(os.Stdout, cfg, result)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s session", cfg.Scheme)))
	printField("steps", fmt.Sprintf("%d", result.Steps))
	printField("suppressed", fmt.Sprintf("%d", result.Suppressed))
	printField("elapsed", elapsed.String())

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println()
	for _, name := range names {
		fmt.Printf("  %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-18s", name)),
			metricStyle.Render(fmt.Sprintf("%.6f", result.Metrics[name])),
		)
	}

	if saveRun {
		runID, err := save(cfg, result)
		if err != nil {
			return err
		}
		fmt.Println()
		printField("run id", runID)
	}

	if plotTrace {
		fmt.Println()
		plotResult(cfg, result)
	}

	return nil
}

func save(cfg session.Config, result *session.Result) (string, error) {
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(cfg, result)
}

func printField(label, value string) {
	fmt.Printf("  %s %s\n",
		labelStyle.Render(fmt.Sprintf("%-18s", label)),
		valueStyle.Render(value),
	)
}

func plotResult(cfg session.Config, result *session.Result) {
	traces := []struct {
		caption string
		data    []float64
	}{
		{"master force (norm)", result.Trace(func(s session.Sample) float64 { return s.MasterForce.Norm() })},
		{"slave force (norm)", result.Trace(func(s session.Sample) float64 { return s.SlaveForce.Norm() })},
		{"master position (x0)", result.Trace(func(s session.Sample) float64 { return s.MasterPos[0] })},
		{"slave position (x0)", result.Trace(func(s session.Sample) float64 { return s.SlavePos[0] })},
	}
	if cfg.Scheme == session.SchemeTDPA {
		traces = append(traces,
			struct {
				caption string
				data    []float64
			}{"energy ledger", result.Trace(func(s session.Sample) float64 { return s.Energy })},
		)
	}

	for _, tr := range traces {
		if len(tr.data) == 0 {
			continue
		}
		fmt.Println(asciigraph.Plot(tr.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(tr.caption),
		))
		fmt.Println()
	}
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	schemes := args
	if len(schemes) == 0 {
		for _, s := range session.Schemes() {
			schemes = append(schemes, string(s))
		}
	}

	cfg, err := buildConfig(cmd, nil)
	if err != nil {
		return err
	}

	fmt.Printf("comparing schemes (dt=%.4f, duration=%.1fs, delay=%d)\n\n", cfg.Dt, cfg.Duration, cfg.Delay)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tSTEPS\tSUPPRESSED\tPASSIVITY\tEFFORT\tPEAK\tTIME_MS")

	for _, name := range schemes {
		scheme, err := session.ParseScheme(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		runCfg := cfg
		runCfg.Scheme = scheme

		s, err := session.New(runCfg, slog.Default())
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		for _, m := range defaultMetrics() {
			s.AddMetric(m)
		}

		start := time.Now()
		result, err := s.Run(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%d\t%d\t%.4f\t%.4f\t%.4f\t%.2f\n",
			name,
			result.Steps,
			result.Suppressed,
			result.Metrics["passivity_margin"],
			result.Metrics["control_effort"],
			result.Metrics["peak_force"],
			float64(elapsed.Microseconds())/1000,
		)
	}

	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCHEME\tTIME\tDURATION\tDT\tDELAY\tSTEPS\tSUPPRESSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\t%d\n",
			run.ID,
			run.Scheme,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Delay,
			run.Steps,
			run.Suppressed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, _, cols, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scheme: %s\n", meta.Scheme)
	fmt.Printf("samples: %d\n\n", len(rows))

	wanted := []string{"master_force_0", "slave_force_0", "master_pos_0", "slave_pos_0"}
	if meta.Scheme == string(session.SchemeTDPA) {
		wanted = append(wanted, "energy", "alpha")
	}

	index := make(map[string]int, len(cols))
	for i, col := range cols {
		index[col] = i
	}

	for _, col := range wanted {
		idx, ok := index[col]
		if !ok {
			continue
		}
		data := make([]float64, len(rows))
		for i, row := range rows {
			if idx < len(row) {
				data[i] = row[idx]
			}
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col),
		))
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, _, cols, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to analyze")
	}

	idx := -1
	for i, col := range cols {
		if col == "master_force_0" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("trace has no master_force_0 column")
	}

	data := make([]float64, len(rows))
	for i, row := range rows {
		if idx < len(row) {
			data[i] = row[idx]
		}
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scheme: %s\n\n", meta.Scheme)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]

	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (master force)"),
	))
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, times, cols, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	return store.ExportJSON(os.Stdout, *meta, rows, times, cols)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	s, err := session.New(cfg, slog.Default())
	if err != nil {
		return err
	}

	return tui.Run(s)
}
