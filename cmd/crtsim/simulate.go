package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/crtsim/internal/automation"
	"github.com/san-kum/crtsim/internal/engine"
	"github.com/san-kum/crtsim/internal/experiment"
	"github.com/san-kum/crtsim/internal/integrators"
	"github.com/san-kum/crtsim/internal/optim"
	"github.com/san-kum/crtsim/internal/storage"
)

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	t := result.Central()

	fmt.Printf("mode: %s\n", t.Mode)
	fmt.Printf("completed in %v\n", elapsed)
	printTrack(t)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{Config: cfg, Metrics: result.Metrics}, t)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}
	return nil
}

func printTrack(t engine.Track) {
	fmt.Printf("initial speed: %.4g m/s\n", t.InitialSpeed)
	fmt.Printf("time of flight: %.4g s\n", t.TimeOfFlight)
	fmt.Printf("transverse velocity: entry %.4g m/s, exit %.4g m/s\n", t.EntryVelocity, t.ExitVelocity)
	fmt.Printf("impact: %.3f mm (deflection %+.3f mm)\n", t.Impact*1000, t.Deflection*1000)
	if t.Clipped {
		fmt.Println("warning: beam leaves the tube, impact clamped to the wall")
	}
}

func runBeam(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	offsets := cfg.BeamSpec().Offsets()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tOFFSET_MM\tIMPACT_MM\tDEFLECTION_MM\tCLIPPED")
	for i, t := range result.Tracks {
		fmt.Fprintf(w, "%d\t%+.3f\t%.3f\t%+.3f\t%v\n", i, offsets[i]*1000, t.Impact*1000, t.Deflection*1000, t.Clipped)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	points, err := experiment.Sweep(cmd.Context(), cfg, experiment.Range{From: from, To: to, Steps: steps})
	if err != nil {
		return err
	}

	fmt.Printf("sweep %s: vd %.1f..%.1f V at va %.0f V\n\n", cfg.Mode, from, to, cfg.Controls.Accelerating)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VD\tIMPACT_MM\tCLIPPED")
	for _, p := range points {
		fmt.Fprintf(w, "%.2f\t%.3f\t%v\n", p.Deflection, p.Impact*1000, p.Clipped)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	impacts := experiment.Impacts(points)
	for i := range impacts {
		impacts[i] *= 1000
	}
	if len(impacts) > 1 {
		graph := asciigraph.Plot(impacts,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption("impact (mm) vs deflection potential"),
		)
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	g := cfg.EngineGeometry()
	p := cfg.Params()
	p.Mode = engine.ModeUniform
	reference := engine.ComputeTrack(g, p)
	p.Mode = engine.ModeCurved

	fmt.Printf("uniform impact: %.4f mm\n\n", reference.Impact*1000)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "integrator", "impact_mm", "diff_mm", "time_us")

	for _, name := range names {
		opts := engine.DefaultOptions()
		opts.Integrator = name
		eng, err := engine.NewEngine(opts)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		start := time.Now()
		t := eng.ComputeTrack(g, p)
		elapsed := time.Since(start)

		fmt.Printf("%-12s  %12.4f  %+12.4f  %12d\n", name, t.Impact*1000,
			(t.Impact-reference.Impact)*1000, elapsed.Microseconds())
	}
	return nil
}

func runAim(cmd *cobra.Command, args []string) error {
	targetMM, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", args[0], err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	accel := experiment.Range{From: vaFrom, To: vaTo, Steps: vaSteps}
	res, err := optim.Aim(cmd.Context(), cfg, targetMM/1000, experiment.Range{From: from, To: to, Steps: steps}, accel)
	if err != nil {
		return err
	}

	if math.IsInf(res.Miss, 1) {
		return fmt.Errorf("no setting in range keeps the beam on screen")
	}
	fmt.Printf("accelerating: %.1f V\n", res.Accelerating)
	fmt.Printf("deflection: %.2f V\n", res.Deflection)
	fmt.Printf("impact: %.3f mm (miss %.3f mm)\n", res.Impact*1000, res.Miss*1000)
	return nil
}

func runJitter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	res, err := automation.RunJitter(cmd.Context(), cfg, automation.JitterConfig{
		Trials:             trials,
		AcceleratingRipple: vaRipple,
		DeflectionRipple:   vdRipple,
		Seed:               seed,
	})
	if err != nil {
		return err
	}

	fmt.Printf("trials: %d (clipped %d)\n", len(res.Impacts), res.Clipped)
	fmt.Printf("impact mean: %.4f mm\n", res.Mean*1000)
	fmt.Printf("spot size (1 sigma): %.4f mm\n", res.StdDev*1000)
	fmt.Printf("range: %.4f .. %.4f mm\n", res.Min*1000, res.Max*1000)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(ctx, sc, experiment.NewRegistry(), st)
	for _, r := range results {
		t := r.Result.Central()
		line := fmt.Sprintf("step %d: %s va=%.0fV vd=%.1fV impact %.3f mm", r.Step, r.Config.Mode,
			r.Config.Controls.Accelerating, r.Config.Controls.Deflection, t.Impact*1000)
		if r.RunID != "" {
			line += fmt.Sprintf(" -> %s (%s)", r.SavedAs, r.RunID)
		}
		fmt.Println(line)
	}
	return err
}
