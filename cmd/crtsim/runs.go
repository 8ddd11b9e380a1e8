package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/crtsim/internal/engine"
	"github.com/san-kum/crtsim/internal/export"
	"github.com/san-kum/crtsim/internal/storage"
)

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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tMODE\tVA\tVD\tIMPACT_MM")
	for _, run := range runs {
		mode, accel, defl := "-", 0.0, 0.0
		if run.Config != nil {
			mode = run.Config.Mode
			accel = run.Config.Controls.Accelerating
			defl = run.Config.Controls.Deflection
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%.1f\t%.3f\n",
			run.ID,
			run.Name,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			mode,
			accel,
			defl,
			run.Impact*1000,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	if meta.Name != "" {
		fmt.Printf("name: %s\n", meta.Name)
	}
	fmt.Printf("time: %s\n", meta.Timestamp.Local().Format("2006-01-02 15:04:05"))
	if cfg := meta.Config; cfg != nil {
		fmt.Printf("mode: %s (integrator %s)\n", cfg.Mode, cfg.Integrator)
		fmt.Printf("potentials: va %.1f V, vd %.1f V\n", cfg.Controls.Accelerating, cfg.Controls.Deflection)
	}
	fmt.Printf("points: %d\n", meta.Points)
	fmt.Printf("impact: %.3f mm (deflection %+.3f mm)\n", meta.Impact*1000, meta.Deflection*1000)
	if meta.Clipped {
		fmt.Println("clipped: yes")
	}
	if len(meta.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for _, name := range sortedKeys(meta.Metrics) {
			fmt.Printf("  %s: %.6g\n", name, meta.Metrics[name])
		}
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, track, err := st.LoadTrack(args[0])
	if err != nil {
		return err
	}
	if track.Len() < 2 {
		return fmt.Errorf("no data to plot")
	}

	center := 0.0
	if meta.Config != nil {
		center = meta.Config.EngineGeometry().Centerline()
	}
	data := make([]float64, track.Len())
	for i, p := range track.Path {
		data[i] = (p.Y - center) * 1000
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", track.Len())
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("transverse position (mm) along the tube"),
	)
	fmt.Println(graph)
	return nil
}

func loadRun(runID string) (*storage.RunMetadata, engine.Track, engine.Geometry, error) {
	st := storage.New(dataDir)
	meta, track, err := st.LoadTrack(runID)
	if err != nil {
		return nil, engine.Track{}, engine.Geometry{}, err
	}
	g := engine.DefaultGeometry()
	if meta.Config != nil {
		g = meta.Config.EngineGeometry()
	}
	return meta, track, g, nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, track, g, err := loadRun(args[0])
	if err != nil {
		return err
	}

	path := output
	if path == "" {
		path = meta.ID + ".svg"
	}
	svg := export.TracksToSVG(g, []engine.Track{track}, width, height)
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	path, err := st.LoadPath(args[0])
	if err != nil {
		return err
	}
	return storage.WritePathCSV(csv.NewWriter(os.Stdout), path)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, track, g, err := loadRun(args[0])
	if err != nil {
		return err
	}
	p := engine.Params{}
	if meta.Config != nil {
		p = meta.Config.Params()
	}
	return export.WriteJSON(os.Stdout, g, p, []engine.Track{track})
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
