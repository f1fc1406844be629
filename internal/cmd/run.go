package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Iron-Ham/hestia/internal/config"
	"github.com/Iron-Ham/hestia/internal/controller"
	"github.com/Iron-Ham/hestia/internal/logging"
	"github.com/Iron-Ham/hestia/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the controller",
	Long: `Run the building controller and its terminal dashboard.

Without a terminal (or with --headless), the dashboard is skipped and
display output goes to the diagnostic log instead. Edits to the config
file apply live: task cadences, the overheat threshold, and the panel
ceiling are picked up on the next task cycle.`,
	RunE: runRun,
}

var runHeadless bool

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "run without the dashboard, rendering to the log")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	headless := runHeadless || !term.IsTerminal(int(os.Stdout.Fd()))

	log, err := buildLogger(cfg, headless)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = log.Close() }()

	if headless {
		return runHeadlessController(cfg, log)
	}
	return runDashboard(cfg, log)
}

// buildLogger builds the diagnostic logger. File logging must be enabled
// explicitly; otherwise headless runs log to stderr, and dashboard runs
// discard diagnostics so they cannot corrupt the display.
func buildLogger(cfg *config.Config, headless bool) (*logging.Logger, error) {
	level := logging.ParseLevel(cfg.Logging.Level)

	if !cfg.Logging.Enabled {
		if headless {
			return logging.NewLogger("", level)
		}
		return logging.NopLogger(), nil
	}

	path := logFilePath(cfg)
	if cfg.Logging.MaxSizeMB > 0 {
		return logging.NewLoggerWithRotation(path, level, logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			Compress:   cfg.Logging.Compress,
		})
	}
	return logging.NewLogger(path, level)
}

// logFilePath resolves the active log file: the configured path, or
// hestia.log under the config directory.
func logFilePath(cfg *config.Config) string {
	if cfg.Logging.File != "" {
		return cfg.Logging.File
	}
	return filepath.Join(config.ConfigDir(), "hestia.log")
}

// watchConfig applies config file edits as they land. A broken edit is
// logged and skipped; the previous configuration stays live.
func watchConfig(hub *controller.Hub, app *tui.App, log *logging.Logger) {
	config.Watch(func(next *config.Config, err error) {
		if err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if err := hub.ApplyConfig(next); err != nil {
			log.Warn("config reload rejected", "error", err)
			return
		}
		if app != nil {
			app.ApplyConfig(next)
		}
	})
}

func runHeadlessController(cfg *config.Config, log *logging.Logger) error {
	hub, err := controller.NewHub(controller.Config{
		Renderer: controller.NewLoggerRenderer(log),
		Logger:   log,
		Conf:     cfg,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := hub.Start(ctx); err != nil {
		return err
	}
	defer hub.Stop()

	watchConfig(hub, nil, log)
	log.Info("running headless, send SIGINT or SIGTERM to stop")

	<-ctx.Done()
	return nil
}

func runDashboard(cfg *config.Config, log *logging.Logger) error {
	app := tui.New(cfg, log)

	hub, err := controller.NewHub(controller.Config{
		Renderer: app,
		Logger:   log,
		Conf:     cfg,
	})
	if err != nil {
		return err
	}

	if err := hub.Start(context.Background()); err != nil {
		return err
	}
	defer hub.Stop()

	app.SetTasks(hub.Registry().Entries())
	watchConfig(hub, app, log)

	if err := app.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
