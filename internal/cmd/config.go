package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Iron-Ham/hestia/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify hestia configuration",
	Long: `View or modify hestia configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  hestia config set controller.overheat_celsius 50
  hestia config set ceiling.panel_ceiling 4
  hestia config set logging.enabled true

Every value is validated in the context of the full configuration before
the file is written; an edit that would not survive startup validation is
rejected. The run command picks up saved changes live.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/hestia/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	fmt.Println("controller:")
	fmt.Printf("  temperature_period_ms: %d\n", cfg.Controller.TemperaturePeriodMs)
	fmt.Printf("  light_period_ms: %d\n", cfg.Controller.LightPeriodMs)
	fmt.Printf("  motion_idle_ms: %d\n", cfg.Controller.MotionIdleMs)
	fmt.Printf("  motion_hold_ms: %d\n", cfg.Controller.MotionHoldMs)
	fmt.Printf("  motion_flash_ms: %d\n", cfg.Controller.MotionFlashMs)
	fmt.Printf("  display_wait_ms: %d\n", cfg.Controller.DisplayWaitMs)
	fmt.Printf("  logger_wait_ms: %d\n", cfg.Controller.LoggerWaitMs)
	fmt.Printf("  logger_idle_ms: %d\n", cfg.Controller.LoggerIdleMs)
	fmt.Printf("  emergency_period_ms: %d\n", cfg.Controller.EmergencyPeriodMs)
	fmt.Printf("  heartbeat_on_ms: %d\n", cfg.Controller.HeartbeatOnMs)
	fmt.Printf("  heartbeat_off_ms: %d\n", cfg.Controller.HeartbeatOffMs)
	fmt.Printf("  overheat_celsius: %d\n", cfg.Controller.OverheatCelsius)

	fmt.Println("ceiling:")
	fmt.Printf("  claim_backoff_ms: %d\n", cfg.Ceiling.ClaimBackoffMs)
	fmt.Printf("  panel_ceiling: %d\n", cfg.Ceiling.PanelCeiling)

	fmt.Println("sensors:")
	fmt.Printf("  lock_timeout_ms: %d\n", cfg.Sensors.LockTimeoutMs)

	fmt.Println("notify:")
	fmt.Printf("  queue_capacity: %d\n", cfg.Notify.QueueCapacity)

	fmt.Println("registry:")
	fmt.Printf("  capacity: %d\n", cfg.Registry.Capacity)

	fmt.Println("tui:")
	fmt.Printf("  refresh_ms: %d\n", cfg.TUI.RefreshMs)
	fmt.Printf("  max_log_lines: %d\n", cfg.TUI.MaxLogLines)

	fmt.Println("logging:")
	fmt.Printf("  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	fmt.Printf("  file: %s\n", cfg.Logging.File)
	fmt.Printf("  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Printf("  max_backups: %d\n", cfg.Logging.MaxBackups)
	fmt.Printf("  compress: %v\n", cfg.Logging.Compress)

	return nil
}

// configKeyTypes maps every settable key to its value type.
var configKeyTypes = map[string]string{
	"controller.temperature_period_ms": "int",
	"controller.light_period_ms":       "int",
	"controller.motion_idle_ms":        "int",
	"controller.motion_hold_ms":        "int",
	"controller.motion_flash_ms":       "int",
	"controller.display_wait_ms":       "int",
	"controller.logger_wait_ms":        "int",
	"controller.logger_idle_ms":        "int",
	"controller.emergency_period_ms":   "int",
	"controller.heartbeat_on_ms":       "int",
	"controller.heartbeat_off_ms":      "int",
	"controller.overheat_celsius":      "int",
	"ceiling.claim_backoff_ms":         "int",
	"ceiling.panel_ceiling":            "int",
	"sensors.lock_timeout_ms":          "int",
	"notify.queue_capacity":            "int",
	"registry.capacity":                "int",
	"tui.refresh_ms":                   "int",
	"tui.max_log_lines":                "int",
	"logging.enabled":                  "bool",
	"logging.level":                    "string",
	"logging.file":                     "string",
	"logging.max_size_mb":              "int",
	"logging.max_backups":              "int",
	"logging.compress":                 "bool",
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	keyType, ok := configKeyTypes[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'hestia config show' to see valid keys", key)
	}

	// Parse the value based on type
	var typedValue interface{}
	switch keyType {
	case "string":
		if key == "logging.level" && value != "" && !isValidLogLevel(value) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidLogLevels(), ", "))
		}
		typedValue = value
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		typedValue = intVal
	}

	// Set the value in viper and validate the resulting configuration as a
	// whole, so a value the controller would reject never reaches the file.
	viper.Set(key, typedValue)
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write to config file
	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Set %s = %v\n", key, typedValue)
	fmt.Printf("Config saved to %s\n", configFile)

	return nil
}

func isValidLogLevel(level string) bool {
	for _, valid := range config.ValidLogLevels() {
		if level == valid {
			return true
		}
	}
	return false
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'hestia config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Generate a commented config file
	configContent := `# Hestia Configuration
# See: https://github.com/Iron-Ham/hestia

# Task cadences and thresholds. All *_ms values apply live while
# the controller is running.
controller:
  # Temperature task cycle
  temperature_period_ms: 200
  # Light task cycle; short so motion windows are not missed
  light_period_ms: 50
  # Motion detector idle time between detections
  motion_idle_ms: 800
  # How long a detection stays asserted
  motion_hold_ms: 400
  # Duration of the all-on override flash
  motion_flash_ms: 100
  # Display task wait on its update flags
  display_wait_ms: 200
  # Log drain wait for the next record
  logger_wait_ms: 120
  # Pause after an empty drain before retrying
  logger_idle_ms: 30
  # Overheat check cycle
  emergency_period_ms: 50
  # Heartbeat blink shape
  heartbeat_on_ms: 5
  heartbeat_off_ms: 95
  # Temperature above which the alert trips
  overheat_celsius: 45

# Priority-ceiling guard settings
ceiling:
  # Delay between immediate-ceiling claim retries
  claim_backoff_ms: 5
  # Resource ceiling guarding lamp updates; only tasks with base
  # priority <= this value are admitted
  panel_ceiling: 2

# Shared sensor store
sensors:
  # Bound on every store lock acquisition
  lock_timeout_ms: 50

# Log record queue between producers and the drain task
notify:
  queue_capacity: 5

# Task registry
registry:
  capacity: 12

# Terminal dashboard
tui:
  # Repaint interval
  refresh_ms: 100
  # Scrollback kept in the log pane
  max_log_lines: 200

# Diagnostic logging
logging:
  # Write structured logs to a file
  enabled: false
  # Minimum level: debug, info, warn, error
  level: info
  # Log file path; empty means <config dir>/hestia.log
  file: ""
  # Rotate when the file exceeds this size (0 = never)
  max_size_mb: 10
  # Rotated files to keep
  max_backups: 3
  # Gzip rotated backups
  compress: false
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println("Edit this file to customize hestia's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Println("\nSearch paths:")
	fmt.Printf("  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Printf("  2. $HOME/.config/hestia/config.yaml\n")
	fmt.Printf("  3. ./config.yaml (current directory)\n")
	fmt.Println("\nEnvironment variables: HESTIA_* (e.g., HESTIA_CONTROLLER_OVERHEAT_CELSIUS)")

	return nil
}
