package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/logging"
	"github.com/san-kum/crtsim/internal/viz"
)

var (
	dataDir  string
	logLevel string

	configFile string
	preset     string
	mode       string
	integrator string
	va         float64
	vd         float64
	offset     float64
	count      int
	spread     float64
	noSave     bool

	// sweep and aim ranges
	from    float64
	to      float64
	steps   int
	vaFrom  float64
	vaTo    float64
	vaSteps int

	// jitter
	trials   int
	vaRipple float64
	vdRipple float64
	seed     int64

	output string
	width  int
	height int
)

var log = logging.NamedLogger("cli")

func main() {
	rootCmd := &cobra.Command{
		Use:          "crtsim",
		Short:        "charged particle deflection tube simulator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logging.SetLevel(lvl)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.Run(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".crtsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (panic, fatal, error, warn, info, debug)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute and store a track",
		Args:  cobra.NoArgs,
		RunE:  runTrack,
	}
	addControlFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	beamCmd := &cobra.Command{
		Use:   "beam",
		Short: "compute a fan of parallel particles",
		Args:  cobra.NoArgs,
		RunE:  runBeam,
	}
	addControlFlags(beamCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "impact position over a range of deflection potentials",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addControlFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&from, "from", -100, "first deflection potential (V)")
	sweepCmd.Flags().Float64Var(&to, "to", 100, "last deflection potential (V)")
	sweepCmd.Flags().IntVar(&steps, "steps", 41, "number of potentials")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare curved-field integrators against the uniform track",
		RunE:  compareIntegrators,
	}
	addControlFlags(compareCmd)

	aimCmd := &cobra.Command{
		Use:   "aim [target_mm]",
		Short: "find the potentials that put the spot at a target height",
		Args:  cobra.ExactArgs(1),
		RunE:  runAim,
	}
	addControlFlags(aimCmd)
	aimCmd.Flags().Float64Var(&from, "from", -500, "lowest deflection potential (V)")
	aimCmd.Flags().Float64Var(&to, "to", 500, "highest deflection potential (V)")
	aimCmd.Flags().IntVar(&steps, "steps", 1001, "deflection grid size")
	aimCmd.Flags().Float64Var(&vaFrom, "va-from", 0, "lowest accelerating potential (V)")
	aimCmd.Flags().Float64Var(&vaTo, "va-to", 0, "highest accelerating potential (V)")
	aimCmd.Flags().IntVar(&vaSteps, "va-steps", 1, "accelerating grid size; 1 keeps --va fixed")

	jitterCmd := &cobra.Command{
		Use:   "jitter",
		Short: "spot spread under supply ripple",
		Args:  cobra.NoArgs,
		RunE:  runJitter,
	}
	addControlFlags(jitterCmd)
	jitterCmd.Flags().IntVar(&trials, "trials", 500, "number of trials")
	jitterCmd.Flags().Float64Var(&vaRipple, "va-ripple", 20, "accelerating ripple amplitude (V)")
	jitterCmd.Flags().Float64Var(&vdRipple, "vd-ripple", 1, "deflection ripple amplitude (V)")
	jitterCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal viewer",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addControlFlags(liveCmd)

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
		Short: "plot the transverse profile of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&width, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&height, "height", 400, "image height")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run path to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-14s mode=%-8s va=%6.0fV vd=%6.0fV beam=%d\n",
					name, p.Mode, p.Controls.Accelerating, p.Controls.Deflection, p.Beam.Count)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, beamCmd, sweepCmd, compareCmd, aimCmd, jitterCmd, scenarioCmd, liveCmd,
		listCmd, showCmd, plotCmd, exportSVGCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addControlFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&mode, "mode", "uniform", "field mode (uniform, curved)")
	cmd.Flags().StringVar(&integrator, "integrator", "symplectic", "integrator for curved mode")
	cmd.Flags().Float64Var(&va, "va", config.DefaultAccelerating, "accelerating potential (V)")
	cmd.Flags().Float64Var(&vd, "vd", config.DefaultDeflection, "deflection potential (V)")
	cmd.Flags().Float64Var(&offset, "offset", 0, "lateral offset (m)")
	cmd.Flags().IntVar(&count, "count", config.DefaultBeamCount, "particles in the beam")
	cmd.Flags().Float64Var(&spread, "spread", config.DefaultBeamSpread, "beam width (m)")
}

// loadConfig layers preset, config file and explicitly set flags, in that
// order, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
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
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("va") {
		cfg.Controls.Accelerating = va
	}
	if flags.Changed("vd") {
		cfg.Controls.Deflection = vd
	}
	if flags.Changed("offset") {
		cfg.Controls.Offset = offset
	}
	if flags.Changed("count") {
		cfg.Beam.Count = count
	}
	if flags.Changed("spread") {
		cfg.Beam.Spread = spread
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("config: mode=%s integrator=%s va=%.1f vd=%.1f", cfg.Mode, cfg.Integrator,
		cfg.Controls.Accelerating, cfg.Controls.Deflection)
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg)
}
