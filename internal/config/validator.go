package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "ceiling.claim_backoff_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateController()...)
	errors = append(errors, c.validateCeiling()...)
	errors = append(errors, c.validateSensors()...)
	errors = append(errors, c.validateNotify()...)
	errors = append(errors, c.validateRegistry()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateController checks every task cadence is positive
func (c *Config) validateController() []ValidationError {
	var errors []ValidationError

	periods := []struct {
		field string
		value int
	}{
		{"controller.temperature_period_ms", c.Controller.TemperaturePeriodMs},
		{"controller.light_period_ms", c.Controller.LightPeriodMs},
		{"controller.motion_idle_ms", c.Controller.MotionIdleMs},
		{"controller.motion_hold_ms", c.Controller.MotionHoldMs},
		{"controller.motion_flash_ms", c.Controller.MotionFlashMs},
		{"controller.display_wait_ms", c.Controller.DisplayWaitMs},
		{"controller.logger_wait_ms", c.Controller.LoggerWaitMs},
		{"controller.logger_idle_ms", c.Controller.LoggerIdleMs},
		{"controller.emergency_period_ms", c.Controller.EmergencyPeriodMs},
		{"controller.heartbeat_on_ms", c.Controller.HeartbeatOnMs},
		{"controller.heartbeat_off_ms", c.Controller.HeartbeatOffMs},
	}
	for _, p := range periods {
		if p.value <= 0 {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "must be positive",
			})
		}
	}

	if c.Controller.OverheatCelsius <= 0 {
		errors = append(errors, ValidationError{
			Field:   "controller.overheat_celsius",
			Value:   c.Controller.OverheatCelsius,
			Message: "must be positive",
		})
	}

	return errors
}

// validateCeiling validates the CeilingConfig
func (c *Config) validateCeiling() []ValidationError {
	var errors []ValidationError

	if c.Ceiling.ClaimBackoffMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "ceiling.claim_backoff_ms",
			Value:   c.Ceiling.ClaimBackoffMs,
			Message: "must be positive",
		})
	}
	if c.Ceiling.PanelCeiling < 1 {
		errors = append(errors, ValidationError{
			Field:   "ceiling.panel_ceiling",
			Value:   c.Ceiling.PanelCeiling,
			Message: "must be a real priority (>= 1)",
		})
	}

	return errors
}

// validateSensors validates the SensorConfig
func (c *Config) validateSensors() []ValidationError {
	var errors []ValidationError

	if c.Sensors.LockTimeoutMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "sensors.lock_timeout_ms",
			Value:   c.Sensors.LockTimeoutMs,
			Message: "must be positive",
		})
	}

	return errors
}

// validateNotify validates the NotifyConfig
func (c *Config) validateNotify() []ValidationError {
	var errors []ValidationError

	if c.Notify.QueueCapacity < 1 {
		errors = append(errors, ValidationError{
			Field:   "notify.queue_capacity",
			Value:   c.Notify.QueueCapacity,
			Message: "must be at least 1",
		})
	}

	return errors
}

// validateRegistry validates the RegistryConfig
func (c *Config) validateRegistry() []ValidationError {
	var errors []ValidationError

	if c.Registry.Capacity < 1 {
		errors = append(errors, ValidationError{
			Field:   "registry.capacity",
			Value:   c.Registry.Capacity,
			Message: "must be at least 1",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.RefreshMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "tui.refresh_ms",
			Value:   c.TUI.RefreshMs,
			Message: "must be positive",
		})
	}
	if c.TUI.MaxLogLines < 1 {
		errors = append(errors, ValidationError{
			Field:   "tui.max_log_lines",
			Value:   c.TUI.MaxLogLines,
			Message: "must be at least 1",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
