package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	"github.com/san-kum/fieldpong/internal/arena"
	"github.com/san-kum/fieldpong/internal/config"
	"github.com/san-kum/fieldpong/internal/logger"
	"github.com/san-kum/fieldpong/internal/metrics"
	"github.com/san-kum/fieldpong/internal/storage"
	"github.com/san-kum/fieldpong/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newWorld builds a world for cfg, with the autopilot on the player paddle
// when the config asks for it.
func newWorld(cfg *config.Config) (*arena.World, error) {
	w, err := arena.New(cfg, arena.Options{})
	if err != nil {
		return nil, err
	}
	if cfg.Player.Autopilot {
		w.SetInput(arena.NewAutopilot(w))
	}
	return w, nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w, err := newWorld(cfg)
	if err != nil {
		return err
	}
	defer w.Close()

	runner := arena.NewRunner(w)
	for _, m := range metrics.Standard() {
		runner.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := logger.For("cli")
	fmt.Println("running match...")
	start := time.Now()
	result, err := runner.Run(ctx, cfg.Duration)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		log.WithError(err).Warn("run interrupted, saving partial result")
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset:   preset,
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Frames:   result.Frames,
		Level:    result.Final.Level,
		Lives:    result.Final.Lives,
		Points:   result.Final.Points,
		Conceded: result.Final.Conceded,
		Metrics:  result.Metrics,
	}, result.Samples)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"run":     runID,
		"frames":  result.Frames,
		"errors":  len(result.Errors),
		"elapsed": elapsed,
	}).Info("run saved")

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Printf("final: %s, level %d, lives %d, points %d\n",
		result.Final.State, result.Final.Level, result.Final.Lives, result.Final.Points)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	// The viewer owns the terminal; logs go to a file instead.
	logFile, err := os.OpenFile(filepath.Join(dataDir, "live.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger.SetOutput(logFile)
	defer logger.SetOutput(os.Stderr)

	factory := func() (*arena.World, error) { return arena.New(cfg, arena.Options{}) }
	model, err := viz.NewModel(factory, cfg.Player.Autopilot)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tLEVEL\tPOINTS\tLIVES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Level,
			run.Points,
			run.Lives,
		)
	}
	return w.Flush()
}

// series are the plottable sample columns.
var series = []struct {
	name    string
	caption string
	value   func(metrics.Sample) float64
}{
	{"lattice_energy", "lattice kinetic energy", func(s metrics.Sample) float64 { return s.LatticeEnergy }},
	{"lattice_peak", "fastest lattice node", func(s metrics.Sample) float64 { return s.LatticePeak }},
	{"ball_speed", "ball speed", func(s metrics.Sample) float64 { return s.BallSpeed }},
	{"ball_y", "ball height", func(s metrics.Sample) float64 { return s.BallY }},
	{"live", "live actors", func(s metrics.Sample) float64 { return float64(s.Live) }},
	{"level", "level", func(s metrics.Sample) float64 { return float64(s.Level) }},
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	plotted := 0
	for _, s := range series {
		if field != "" && field != s.name {
			continue
		}
		data := make([]float64, len(samples))
		for i, sample := range samples {
			data[i] = s.value(sample)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
		plotted++
	}
	if plotted == 0 {
		return fmt.Errorf("unknown field: %s", field)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		return storage.ExportJSON(out, *meta, samples)
	case "csv":
		return storage.WriteCSV(out, samples)
	}
	return fmt.Errorf("unknown format: %s (want json or csv)", format)
}

func benchFrames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}

	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(dataDir), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(dataDir), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile: %s (want cpu or mem)", profileMode)
	}

	if matches > 1 {
		return benchEnsemble(cfg)
	}

	w, err := newWorld(cfg)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Printf("stepping %d frames...\n", frames)
	start := time.Now()
	stepped, peak := 0, 0
	for ; stepped < frames && !w.Over(); stepped++ {
		if err := w.Step(cfg.Dt); err != nil {
			logger.For("cli").WithError(err).Debug("frame error")
		}
		peak = max(peak, w.Actors.LiveCount())
	}
	elapsed := time.Since(start)

	fmt.Printf("frames: %d\n", stepped)
	fmt.Printf("elapsed: %v\n", elapsed)
	if stepped > 0 {
		perFrame := elapsed / time.Duration(stepped)
		fmt.Printf("per frame: %v\n", perFrame)
		fmt.Printf("frames/s: %.0f\n", float64(stepped)/elapsed.Seconds())
		fmt.Printf("realtime: %.1fx\n", float64(stepped)*cfg.Dt/elapsed.Seconds())
	}
	fmt.Printf("peak actors: %d\n", peak)
	return nil
}

func benchEnsemble(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("playing %d matches of %d frames...\n", matches, frames)
	start := time.Now()
	results, err := arena.NewEnsemble(cfg, matches, cfg.Seed).Run(ctx, float64(frames)*cfg.Dt)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFRAMES\tSTATE\tLEVEL\tPOINTS\tCONCEDED\tPEAK")
	total := 0
	for i, res := range results {
		total += res.Frames
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%d\t%d\t%.0f\n",
			cfg.Seed+int64(i),
			res.Frames,
			res.Final.State,
			res.Final.Level,
			res.Final.Points,
			res.Final.Conceded,
			res.Metrics["peak_actors"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nelapsed: %v\n", elapsed)
	fmt.Printf("frames/s: %.0f\n", float64(total)/elapsed.Seconds())
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	path := "fieldpong.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
