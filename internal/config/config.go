package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the complete Hestia configuration
type Config struct {
	Controller ControllerConfig `mapstructure:"controller"`
	Ceiling    CeilingConfig    `mapstructure:"ceiling"`
	Sensors    SensorConfig     `mapstructure:"sensors"`
	Notify     NotifyConfig     `mapstructure:"notify"`
	Registry   RegistryConfig   `mapstructure:"registry"`
	TUI        TUIConfig        `mapstructure:"tui"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ControllerConfig holds the periodic task cadences and thresholds.
// Every *_ms field is live-reloadable: the hub re-reads them each cycle.
type ControllerConfig struct {
	// TemperaturePeriodMs is the temperature task cycle (in milliseconds)
	TemperaturePeriodMs int `mapstructure:"temperature_period_ms"`
	// LightPeriodMs is the light task cycle; short so motion windows are not missed
	LightPeriodMs int `mapstructure:"light_period_ms"`
	// MotionIdleMs is how long the motion task sits idle between detections
	MotionIdleMs int `mapstructure:"motion_idle_ms"`
	// MotionHoldMs is how long a detection stays asserted so observers catch it
	MotionHoldMs int `mapstructure:"motion_hold_ms"`
	// MotionFlashMs is the duration of the all-on override flash
	MotionFlashMs int `mapstructure:"motion_flash_ms"`
	// DisplayWaitMs bounds the display task's wait on its event flags
	DisplayWaitMs int `mapstructure:"display_wait_ms"`
	// LoggerWaitMs bounds the log drain's wait for the next record
	LoggerWaitMs int `mapstructure:"logger_wait_ms"`
	// LoggerIdleMs is the pause after a drain timeout before retrying
	LoggerIdleMs int `mapstructure:"logger_idle_ms"`
	// EmergencyPeriodMs is the overheat check cycle
	EmergencyPeriodMs int `mapstructure:"emergency_period_ms"`
	// HeartbeatOnMs / HeartbeatOffMs shape the heartbeat blink
	HeartbeatOnMs  int `mapstructure:"heartbeat_on_ms"`
	HeartbeatOffMs int `mapstructure:"heartbeat_off_ms"`
	// OverheatCelsius is the temperature above which the alert trips
	OverheatCelsius int `mapstructure:"overheat_celsius"`
}

// CeilingConfig controls the ceiling manager.
type CeilingConfig struct {
	// ClaimBackoffMs is the delay between immediate-ceiling claim retries
	ClaimBackoffMs int `mapstructure:"claim_backoff_ms"`
	// PanelCeiling is the original-ceiling resource value guarding lamp
	// updates; only tasks with base priority <= this value are admitted
	PanelCeiling int `mapstructure:"panel_ceiling"`
}

// SensorConfig controls the shared sensor store.
type SensorConfig struct {
	// LockTimeoutMs bounds every sensor store lock acquisition
	LockTimeoutMs int `mapstructure:"lock_timeout_ms"`
}

// NotifyConfig controls the log channel.
type NotifyConfig struct {
	// QueueCapacity is the fixed size of the bounded log queue
	QueueCapacity int `mapstructure:"queue_capacity"`
}

// RegistryConfig controls the task registry.
type RegistryConfig struct {
	// Capacity is the maximum number of registrable tasks
	Capacity int `mapstructure:"capacity"`
}

// TUIConfig controls the dashboard.
type TUIConfig struct {
	// RefreshMs is the dashboard repaint interval
	RefreshMs int `mapstructure:"refresh_ms"`
	// MaxLogLines caps the scrollback kept in the log pane
	MaxLogLines int `mapstructure:"max_log_lines"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	// Enabled turns file logging on; when false, logs go to stderr
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// File is the log file path; empty means <config dir>/hestia.log
	File string `mapstructure:"file"`
	// MaxSizeMB rotates the log file when it exceeds this size (0 = never)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is how many rotated files to keep
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated backups
	Compress bool `mapstructure:"compress"`
}

// Default returns the built-in configuration. The controller cadences mirror
// the reference simulation: a slow temperature loop, a fast light loop, and
// an emergency check quick enough to catch any overheat window.
func Default() *Config {
	return &Config{
		Controller: ControllerConfig{
			TemperaturePeriodMs: 200,
			LightPeriodMs:       50,
			MotionIdleMs:        800,
			MotionHoldMs:        400,
			MotionFlashMs:       100,
			DisplayWaitMs:       200,
			LoggerWaitMs:        120,
			LoggerIdleMs:        30,
			EmergencyPeriodMs:   50,
			HeartbeatOnMs:       5,
			HeartbeatOffMs:      95,
			OverheatCelsius:     45,
		},
		Ceiling: CeilingConfig{
			ClaimBackoffMs: 5,
			PanelCeiling:   2,
		},
		Sensors: SensorConfig{
			LockTimeoutMs: 50,
		},
		Notify: NotifyConfig{
			QueueCapacity: 5,
		},
		Registry: RegistryConfig{
			Capacity: 12,
		},
		TUI: TUIConfig{
			RefreshMs:   100,
			MaxLogLines: 200,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
			Compress:   false,
		},
	}
}

// Duration helpers: the *_ms integers unmarshal cleanly from YAML and env;
// callers want time.Duration.

func (c *ControllerConfig) TemperaturePeriod() time.Duration {
	return time.Duration(c.TemperaturePeriodMs) * time.Millisecond
}

func (c *ControllerConfig) LightPeriod() time.Duration {
	return time.Duration(c.LightPeriodMs) * time.Millisecond
}

func (c *ControllerConfig) MotionIdle() time.Duration {
	return time.Duration(c.MotionIdleMs) * time.Millisecond
}

func (c *ControllerConfig) MotionHold() time.Duration {
	return time.Duration(c.MotionHoldMs) * time.Millisecond
}

func (c *ControllerConfig) MotionFlash() time.Duration {
	return time.Duration(c.MotionFlashMs) * time.Millisecond
}

func (c *ControllerConfig) DisplayWait() time.Duration {
	return time.Duration(c.DisplayWaitMs) * time.Millisecond
}

func (c *ControllerConfig) LoggerWait() time.Duration {
	return time.Duration(c.LoggerWaitMs) * time.Millisecond
}

func (c *ControllerConfig) LoggerIdle() time.Duration {
	return time.Duration(c.LoggerIdleMs) * time.Millisecond
}

func (c *ControllerConfig) EmergencyPeriod() time.Duration {
	return time.Duration(c.EmergencyPeriodMs) * time.Millisecond
}

func (c *ControllerConfig) HeartbeatOn() time.Duration {
	return time.Duration(c.HeartbeatOnMs) * time.Millisecond
}

func (c *ControllerConfig) HeartbeatOff() time.Duration {
	return time.Duration(c.HeartbeatOffMs) * time.Millisecond
}

// ClaimBackoff returns the claim retry delay as a time.Duration
func (c *CeilingConfig) ClaimBackoff() time.Duration {
	return time.Duration(c.ClaimBackoffMs) * time.Millisecond
}

// LockTimeout returns the sensor lock bound as a time.Duration
func (c *SensorConfig) LockTimeout() time.Duration {
	return time.Duration(c.LockTimeoutMs) * time.Millisecond
}

// Refresh returns the dashboard repaint interval as a time.Duration
func (c *TUIConfig) Refresh() time.Duration {
	return time.Duration(c.RefreshMs) * time.Millisecond
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Controller defaults
	viper.SetDefault("controller.temperature_period_ms", defaults.Controller.TemperaturePeriodMs)
	viper.SetDefault("controller.light_period_ms", defaults.Controller.LightPeriodMs)
	viper.SetDefault("controller.motion_idle_ms", defaults.Controller.MotionIdleMs)
	viper.SetDefault("controller.motion_hold_ms", defaults.Controller.MotionHoldMs)
	viper.SetDefault("controller.motion_flash_ms", defaults.Controller.MotionFlashMs)
	viper.SetDefault("controller.display_wait_ms", defaults.Controller.DisplayWaitMs)
	viper.SetDefault("controller.logger_wait_ms", defaults.Controller.LoggerWaitMs)
	viper.SetDefault("controller.logger_idle_ms", defaults.Controller.LoggerIdleMs)
	viper.SetDefault("controller.emergency_period_ms", defaults.Controller.EmergencyPeriodMs)
	viper.SetDefault("controller.heartbeat_on_ms", defaults.Controller.HeartbeatOnMs)
	viper.SetDefault("controller.heartbeat_off_ms", defaults.Controller.HeartbeatOffMs)
	viper.SetDefault("controller.overheat_celsius", defaults.Controller.OverheatCelsius)

	// Ceiling defaults
	viper.SetDefault("ceiling.claim_backoff_ms", defaults.Ceiling.ClaimBackoffMs)
	viper.SetDefault("ceiling.panel_ceiling", defaults.Ceiling.PanelCeiling)

	// Sensor defaults
	viper.SetDefault("sensors.lock_timeout_ms", defaults.Sensors.LockTimeoutMs)

	// Notify defaults
	viper.SetDefault("notify.queue_capacity", defaults.Notify.QueueCapacity)

	// Registry defaults
	viper.SetDefault("registry.capacity", defaults.Registry.Capacity)

	// TUI defaults
	viper.SetDefault("tui.refresh_ms", defaults.TUI.RefreshMs)
	viper.SetDefault("tui.max_log_lines", defaults.TUI.MaxLogLines)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if
// unmarshaling fails
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Watch re-reads the configuration whenever the config file changes on disk
// and delivers the result to fn. A broken edit arrives as a nil Config with
// the validation error; the previous configuration stays live.
func Watch(fn func(*Config, error)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := Load()
		if err != nil {
			fn(nil, fmt.Errorf("reload %s: %w", e.Name, err))
			return
		}
		fn(cfg, nil)
	})
	viper.WatchConfig()
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hestia")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hestia"
	}
	return filepath.Join(home, ".config", "hestia")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
