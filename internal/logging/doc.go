// Package logging provides structured logging for hestia runs.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// context propagation support for debugging and post-hoc analysis. A
// controller run produces interleaved output from seven periodic tasks;
// structured, filterable logs are how that interleaving is untangled after
// the fact.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Context propagation (task ID, component)
//   - Log rotation with configurable size limits
//   - Optional gzip compression for rotated logs
//   - Collection and filtering across the rotated log set
//   - Export to JSON, text, or CSV formats
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. The [Logger] type
// uses Go's slog internally which is designed for concurrent access. The
// [RotatingWriter] type uses a mutex to protect file operations during
// rotation. Child loggers created via With* methods share the underlying
// writer safely.
//
// # Basic Usage
//
// Create a logger writing to a file:
//
//	logger, err := logging.NewLogger("/path/to/hestia.log", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	// Log messages at various levels
//	logger.Debug("detailed info", "key", "value")
//	logger.Info("operation completed", "duration_ms", 150)
//	logger.Warn("potential issue", "threshold", 100)
//	logger.Error("operation failed", "error", err.Error())
//
// # Context Propagation
//
// Create child loggers with persistent context attributes:
//
//	// Add task context
//	taskLogger := logger.WithTask("temperature")
//
//	// Add component context
//	hubLogger := logger.WithComponent("hub")
//
//	// All logs from taskLogger will include the task field
//	taskLogger.Info("cycle complete", "temp_c", 27)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"cycle complete","task":"temperature","temp_c":27}
//
// # Log Rotation
//
// For long-running controllers, use log rotation to prevent unbounded
// growth:
//
//	config := logging.RotationConfig{
//	    MaxSizeMB:  10,    // Rotate when file exceeds 10MB
//	    MaxBackups: 3,     // Keep 3 backup files
//	    Compress:   true,  // Gzip compress rotated files
//	}
//
//	logger, err := logging.NewLoggerWithRotation("/path/to/hestia.log", "INFO", config)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
// Rotated files are named: hestia.log.1, hestia.log.2, etc., where .1 is
// the most recent backup. When compression is enabled, rotated files become
// hestia.log.1.gz, etc.
//
// # Testing
//
// For testing, use [NopLogger] to discard all log output:
//
//	func TestSomething(t *testing.T) {
//	    logger := logging.NopLogger()
//	    // Use logger in tests without creating files
//	}
//
// # Collection and Filtering
//
// Read and analyze logs after a run. [CollectLogs] reads the active file
// plus all rotated backups (decompressing .gz backups) and returns one
// time-ordered stream:
//
//	entries, err := logging.CollectLogs("/path/to/hestia.log")
//	if err != nil {
//	    return err
//	}
//
//	// Filter logs by various criteria
//	filter := logging.LogFilter{
//	    Level:     "WARN",          // Minimum level
//	    Task:      "light",         // Specific task
//	    StartTime: time.Now().Add(-1 * time.Hour),
//	}
//	filtered := logging.FilterLogs(entries, filter)
//
//	// Export to various formats
//	logging.ExportLogEntries(filtered, "errors.json", "json")
//	logging.ExportLogEntries(filtered, "errors.txt", "text")
//	logging.ExportLogEntries(filtered, "errors.csv", "csv")
//
// The `hestia logs` command is a thin CLI wrapper over these functions.
//
// # Log Levels
//
// The package defines four log levels:
//
//   - [LevelDebug]: Detailed information for debugging
//   - [LevelInfo]: General operational information (default)
//   - [LevelWarn]: Warning conditions that may need attention
//   - [LevelError]: Error conditions that affect functionality
//
// Use [ValidLevels] to get the list of valid level strings, and [ParseLevel]
// to normalize user-provided level strings.
//
// # Configuration
//
// The logging system is typically configured via hestia's config file:
//
//	logging:
//	  enabled: true
//	  level: info
//	  max_size_mb: 10
//	  max_backups: 3
//
// Run `hestia config show` to see the resolved configuration.
package logging
