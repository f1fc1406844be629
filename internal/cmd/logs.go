package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Iron-Ham/hestia/internal/config"
	"github.com/Iron-Ham/hestia/internal/logging"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View controller logs",
	Long: `View and filter hestia's diagnostic logs.

Reads the active log file and its rotated backups, merges them in time
order, and prints the result. Use flags to filter and format the output.

Examples:
  # Show the last 50 entries
  hestia logs

  # Show everything the temperature task logged
  hestia logs --task temperature

  # Warnings and errors from the last hour
  hestia logs --level warn --since 1h

  # Search message text
  hestia logs --contains "ceiling refused"

  # Follow new entries in real time
  hestia logs -f

  # Export all matching entries as CSV
  hestia logs -n 0 --output entries.csv --format csv`,
	RunE: runLogs,
}

var (
	logsTail      int
	logsFollow    bool
	logsLevel     string
	logsTask      string
	logsComponent string
	logsSince     string
	logsContains  string
	logsOutput    string
	logsFormat    string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsTask, "task", "", "Filter by producing task")
	logsCmd.Flags().StringVar(&logsComponent, "component", "", "Filter by component")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsContains, "contains", "", "Filter by message substring")
	logsCmd.Flags().StringVarP(&logsOutput, "output", "o", "", "Write entries to a file instead of stdout")
	logsCmd.Flags().StringVar(&logsFormat, "format", "text", "Output format for --output (json/text/csv)")
}

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// levelColor returns the ANSI color code for a log level
func levelColor(level string) string {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return colorGray
	case logging.LevelInfo:
		return colorBlue
	case logging.LevelWarn:
		return colorYellow
	case logging.LevelError:
		return colorRed
	default:
		return colorReset
	}
}

// formatLogEntry formats a log entry for terminal output
func formatLogEntry(entry *logging.LogEntry) string {
	var sb strings.Builder

	// Timestamp
	sb.WriteString(colorGray)
	sb.WriteString("[")
	sb.WriteString(entry.Timestamp.Format("15:04:05.000"))
	sb.WriteString("]")
	sb.WriteString(colorReset)

	// Level with color
	sb.WriteString(" ")
	sb.WriteString(levelColor(entry.Level))
	sb.WriteString("[")
	sb.WriteString(strings.ToUpper(entry.Level))
	sb.WriteString("]")
	sb.WriteString(colorReset)

	// Message
	sb.WriteString(" ")
	sb.WriteString(entry.Message)

	// Context fields (task, component)
	if entry.Task != "" {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString("task=")
		sb.WriteString(entry.Task)
		sb.WriteString(colorReset)
	}
	if entry.Component != "" {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString("component=")
		sb.WriteString(entry.Component)
		sb.WriteString(colorReset)
	}

	// Extra fields
	for key, value := range entry.Attrs {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(colorReset)
		sb.WriteString(fmt.Sprintf("%v", value))
	}

	return sb.String()
}

// buildLogFilter assembles the filter from the command flags.
func buildLogFilter() (logging.LogFilter, error) {
	filter := logging.LogFilter{
		Task:            logsTask,
		Component:       logsComponent,
		MessageContains: logsContains,
	}

	if logsLevel != "" {
		filter.Level = logging.ParseLevel(logsLevel)
	}

	if logsSince != "" {
		duration, err := time.ParseDuration(logsSince)
		if err != nil {
			return logging.LogFilter{}, fmt.Errorf("invalid duration format: %w", err)
		}
		filter.StartTime = time.Now().Add(-duration)
	}

	return filter, nil
}

func runLogs(cmd *cobra.Command, args []string) error {
	logPath := logFilePath(config.Get())

	filter, err := buildLogFilter()
	if err != nil {
		return err
	}

	// Follow mode
	if logsFollow {
		return followLogs(logPath, filter)
	}

	// Non-follow mode: collect the active file and its rotated backups
	entries, err := logging.CollectLogs(logPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Printf("No logs found at %s\n", logPath)
			fmt.Println("Enable file logging (logging.enabled) and run the controller first.")
			return nil
		}
		return err
	}

	entries = logging.FilterLogs(entries, filter)

	// Apply tail limit
	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}

	if logsOutput != "" {
		if err := logging.ExportLogEntries(entries, logsOutput, logsFormat); err != nil {
			return err
		}
		fmt.Printf("Wrote %d entries to %s\n", len(entries), logsOutput)
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("No matching log entries found.")
		return nil
	}
	for i := range entries {
		fmt.Println(formatLogEntry(&entries[i]))
	}

	return nil
}

// followLogs implements tail -f behavior for the active log file
func followLogs(logPath string, filter logging.LogFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	// Seek to end of file
	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	fmt.Printf("Following %s... (Ctrl+C to stop)\n\n", logPath)

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// No new data, wait briefly and try again
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("error reading log file: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		entry, perr := logging.ParseEntry(line)
		if perr != nil {
			// If we can't parse as JSON, display raw line
			fmt.Println(line)
			continue
		}
		if !filter.Matches(entry) {
			continue
		}

		fmt.Println(formatLogEntry(&entry))
	}
}
