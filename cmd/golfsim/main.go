package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/san-kum/golfsim/internal/config"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	logDev     bool
	course     string
	ball       string

	// shot
	velocity   []float64
	spin       []float64
	wind       float64
	frameDt    float64
	noPlot     bool
	save       bool
	paramFlags []string

	// session / serve
	relayAddr string
	withRelay bool

	// export
	outFile     string
	svgFile     string
	profileFile string

	// sweep
	axes     []string
	metric   string
	minimize bool
	workers  int
	landIn   []string
)

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "golfsim",
		Short:        "golf ball flight and session simulator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", envOr("GOLFSIM_DATA", config.DefaultDataDir), "shot data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("GOLFSIM_LOG_LEVEL", config.DefaultLogLevel), "log level")
	rootCmd.PersistentFlags().BoolVar(&logDev, "log-dev", false, "human readable logs")
	rootCmd.PersistentFlags().StringVar(&course, "course", config.DefaultCourse, "course preset")
	rootCmd.PersistentFlags().StringVar(&ball, "ball", "", "ball to equip")

	shotCmd := &cobra.Command{
		Use:   "shot [preset]",
		Short: "simulate one shot and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShot,
	}
	shotCmd.Flags().Float64SliceVar(&velocity, "velocity", []float64{0, 20, -40}, "launch velocity x,y,z (m/s, forward is -z)")
	shotCmd.Flags().Float64SliceVar(&spin, "spin", []float64{0, 0, 0}, "launch spin x,y,z (rev/s)")
	shotCmd.Flags().Float64Var(&wind, "wind", 0, "crosswind along +x (m/s)")
	shotCmd.Flags().Float64Var(&frameDt, "dt", 1.0/60, "frame time (s)")
	shotCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip trajectory plots")
	shotCmd.Flags().BoolVar(&save, "save", false, "store the shot")
	shotCmd.Flags().StringArrayVar(&paramFlags, "param", nil, "physics override name=value (see presets)")

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "play an interactive session in the terminal",
		RunE:  runSessionTUI,
	}
	sessionCmd.Flags().BoolVar(&withRelay, "relay", false, "also accept the remote app")
	sessionCmd.Flags().StringVar(&relayAddr, "addr", envOr("GOLFSIM_RELAY_ADDR", config.DefaultRelayAddr), "relay listen address")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run a headless session driven by the remote app",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&relayAddr, "addr", envOr("GOLFSIM_RELAY_ADDR", config.DefaultRelayAddr), "relay listen address")

	classifyCmd := &cobra.Command{
		Use:   "classify [x] [z]",
		Short: "print the terrain at a ground position",
		Args:  cobra.ExactArgs(2),
		RunE:  runClassify,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list shot, course and ball presets",
		RunE:  runPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored shots",
		RunE:  listShots,
	}

	showCmd := &cobra.Command{
		Use:   "show [shot_id]",
		Short: "show a stored shot",
		Args:  cobra.ExactArgs(1),
		RunE:  showShot,
	}

	exportCmd := &cobra.Command{
		Use:   "export [shot_id...]",
		Short: "export stored shots as JSON",
		RunE:  exportShots,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	showCmd.Flags().StringVar(&svgFile, "svg", "", "also write a course plan with the shot (svg)")
	showCmd.Flags().StringVar(&profileFile, "profile", "", "also write a side view of the shot (svg)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run a grid of launches in parallel and rank them",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64SliceVar(&velocity, "velocity", []float64{0, 20, -40}, "base launch velocity x,y,z (m/s)")
	sweepCmd.Flags().Float64SliceVar(&spin, "spin", []float64{0, 0, 0}, "base launch spin x,y,z (rev/s)")
	sweepCmd.Flags().StringArrayVar(&axes, "axis", nil, "swept parameter name=from:to:step or name=v1,v2 (speed, angle, azimuth, backspin, sidespin)")
	sweepCmd.Flags().StringVar(&metric, "metric", "carry", "metric to rank by")
	sweepCmd.Flags().BoolVar(&minimize, "min", false, "rank by smallest metric instead of largest")
	sweepCmd.Flags().StringSliceVar(&landIn, "land", nil, "only rank shots ending on these terrains")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel shots (default GOMAXPROCS)")
	sweepCmd.Flags().Float64Var(&frameDt, "dt", 1.0/60, "frame time (s)")
	sweepCmd.Flags().StringVar(&svgFile, "svg", "", "write a course plan with every path (svg)")
	sweepCmd.Flags().StringArrayVar(&paramFlags, "param", nil, "physics override name=value")

	dropCmd := &cobra.Command{
		Use:   "drop [x] [y] [z]",
		Short: "drop a ball from a point and report where it settles",
		Args:  cobra.ExactArgs(3),
		RunE:  runDrop,
	}
	dropCmd.Flags().Float64Var(&frameDt, "dt", 1.0/60, "frame time (s)")
	dropCmd.Flags().StringArrayVar(&paramFlags, "param", nil, "physics override name=value")

	rootCmd.AddCommand(shotCmd, sessionCmd, serveCmd, classifyCmd, presetsCmd, listCmd, showCmd, exportCmd, sweepCmd, dropCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("course") {
		if !cfg.ApplyCourse(course) {
			return nil, fmt.Errorf("unknown course: %s (available: %v)", course, config.CourseNames())
		}
	}
	if overrides(cmd, "data", "GOLFSIM_DATA") {
		cfg.DataDir = dataDir
	}
	if overrides(cmd, "log-level", "GOLFSIM_LOG_LEVEL") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-dev") {
		cfg.Log.Development = logDev
	}
	if flags.Changed("ball") {
		cfg.Ball.Equipped = ball
	}
	if flags.Lookup("addr") != nil && overrides(cmd, "addr", "GOLFSIM_RELAY_ADDR") {
		cfg.Relay.Addr = relayAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// overrides reports whether the flag value beats the config file: it was set
// on the command line, seeded from the environment, or there is no file.
func overrides(cmd *cobra.Command, name, env string) bool {
	if configFile == "" {
		return true
	}
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return true
	}
	return os.Getenv(env) != ""
}
