package main

import (
	"fmt"
	"os"

	"github.com/san-kum/fieldpong/internal/config"
	"github.com/san-kum/fieldpong/internal/logger"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	logFormat  string
	configFile string
	preset     string
	seed       int64
	dt         float64
	duration   float64
	level      int
	lives      int
	obstacles  int
	noAI       bool
	manual     bool
	// plot
	field string
	// export
	format  string
	outPath string
	// bench
	frames      int
	matches     int
	profileMode string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "fieldpong",
		Short:         "two-paddle arena on a deformable force grid",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logLevel, logFormat)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fieldpong", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (default $LOG_LEVEL or info)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "play a headless match and save it",
		Args:  cobra.NoArgs,
		RunE:  runMatch,
	}
	matchFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "play in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	matchFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&field, "field", "", "series to plot (default: all)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json or csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json or csv")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time the frame loop",
		Args:  cobra.NoArgs,
		RunE:  benchFrames,
	}
	matchFlags(benchCmd)
	benchCmd.Flags().IntVar(&frames, "frames", 3600, "frames to step")
	benchCmd.Flags().IntVar(&matches, "matches", 1, "matches to play in parallel over consecutive seeds")
	benchCmd.Flags().StringVar(&profileMode, "profile", "", "write a profile: cpu or mem")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	configCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, benchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func matchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds, 0 plays until game over")
	cmd.Flags().IntVar(&level, "level", 1, "starting level")
	cmd.Flags().IntVar(&lives, "lives", config.DefaultLives, "starting lives")
	cmd.Flags().IntVar(&obstacles, "obstacles", 4, "number of obstacles (0-4)")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "leave the computer paddle idle")
	cmd.Flags().BoolVar(&manual, "manual", false, "do not autopilot the player paddle")
}

// loadConfig starts from a preset or the defaults, applies the config file,
// then any flags set on the command line.
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
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("level") {
		cfg.Round.Level = level
	}
	if flags.Changed("lives") {
		cfg.Round.Lives = lives
	}
	if flags.Changed("obstacles") {
		cfg.Obstacles.Count = obstacles
	}
	if flags.Changed("no-ai") {
		cfg.AI.Enabled = !noAI
	}
	if flags.Changed("manual") {
		cfg.Player.Autopilot = !manual
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
