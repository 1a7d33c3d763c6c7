package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/weft/internal/config"
	"github.com/zjrosen/weft/internal/engine"
	"github.com/zjrosen/weft/internal/fixture"
	"github.com/zjrosen/weft/internal/log"
	"github.com/zjrosen/weft/internal/tracing"
	"github.com/zjrosen/weft/internal/ui/viewer"
	"github.com/zjrosen/weft/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the panes.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version  = "dev"
	cfgFile  string
	logLevel string
	logFile  string
	cfg      config.Config
)

var rootCmd = &cobra.Command{
	Use:   "weft [fixture.yaml]",
	Short: "A terminal ui for exploring source/derived text correspondences",
	Long: `A terminal user interface for exploring how regions of a source text
correspond to regions of a text derived from it. Open a correspondence
fixture and move the cursor: the correlated regions in the other pane
light up as you go.

Runs against a built-in demo fixture when no file is given.`,
	Args:    cobra.MaximumNArgs(1),
	Version: version,
	RunE:    runViewer,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/weft/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"minimum log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"log file path (empty keeps logs in the in-app overlay only)")
	rootCmd.Flags().StringP("fixture", "f", "",
		"fixture file to open (same as the positional argument)")
	rootCmd.Flags().Bool("no-watch", false,
		"disable automatic reload when the fixture file changes")

	// Bind flags to viper
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("watcher.enabled", defaults.Watcher.Enabled)
	viper.SetDefault("watcher.debounce", defaults.Watcher.Debounce)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .weft/config.yaml (current directory)
		// 2. ~/.config/weft/config.yaml (user config)
		if _, err := os.Stat(".weft/config.yaml"); err == nil {
			viper.SetConfigFile(".weft/config.yaml")
		} else if dir := config.UserConfigDir(); dir != "" {
			viper.AddConfigPath(dir)
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a commented default in
		// the user config dir so the next run picks it up.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if dir := config.UserConfigDir(); dir != "" {
				defaultPath := filepath.Join(dir, "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runViewer(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanup, err := log.Init(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer cleanup()
	applyLogLevel(cfg.Log.Level)

	fixturePath := resolveFixturePath(cmd, args)
	fix, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}

	provider, err := tracing.NewProvider(tracingConfig(cfg))
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	}()

	session := engine.NewSession(fix, fixturePath, engine.Config{
		CacheEnabled: cfg.Cache.Enabled,
		CacheTTL:     cfg.Cache.TTL,
		Tracer:       provider.Tracer(),
	})
	defer session.Close()

	var w *watcher.Watcher
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); !noWatch {
		w = startWatcher(fixturePath)
	}
	if w != nil {
		defer func() { _ = w.Stop() }()
	}

	zone.NewGlobal()

	model := viewer.New(viewer.Config{Session: session, Watcher: w})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	model.Close()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// applyLogLevel sets the sink threshold. The level string has already
// passed config.Validate.
func applyLogLevel(s string) {
	if s == "" {
		return
	}
	if level, err := log.ParseLevel(s); err == nil {
		log.SetMinLevel(level)
	}
}

// resolveFixturePath picks the fixture: positional argument wins over the
// --fixture flag; empty means the built-in demo.
func resolveFixturePath(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	path, _ := cmd.Flags().GetString("fixture")
	return path
}

// loadFixture parses the fixture at path, or returns the built-in demo
// when path is empty.
func loadFixture(path string) (*fixture.Fixture, error) {
	if path == "" {
		return fixture.Demo(), nil
	}
	fix, err := fixture.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading fixture: %w", err)
	}
	return fix, nil
}

// tracingConfig fills in the file exporter's default path, which depends
// on the user's home directory and so cannot live in config.Defaults.
func tracingConfig(c config.Config) tracing.Config {
	tc := c.Tracing
	if tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	return tc
}

// startWatcher wires fixture auto-reload. The viewer still works without
// it, so failures log and return nil instead of aborting startup.
func startWatcher(fixturePath string) *watcher.Watcher {
	if !cfg.Watcher.Enabled || fixturePath == "" {
		return nil
	}

	w, err := watcher.New(watcher.Config{
		Path:     fixturePath,
		Debounce: cfg.Watcher.Debounce,
	})
	if err == nil {
		err = w.Start()
	}
	if err != nil {
		log.ErrorErr(log.CatWatch, "Fixture watching unavailable", err, "path", fixturePath)
		return nil
	}
	return w
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
