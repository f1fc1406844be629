package controller

import (
	"github.com/Iron-Ham/hestia/internal/logging"
	"github.com/Iron-Ham/hestia/internal/notify"
	"github.com/Iron-Ham/hestia/internal/panel"
	"github.com/Iron-Ham/hestia/internal/sensor"
)

// Renderer receives the hub's display output. The display, log drain, and
// emergency tasks call it from their own goroutines, so implementations
// must be safe for concurrent use and must not block for long: a slow
// renderer stalls the task that called it.
type Renderer interface {
	// RenderReadings paints the current sensor snapshot and panel state.
	RenderReadings(r sensor.Reading, p panel.State)

	// RenderLog appends one drained log record.
	RenderLog(rec notify.Record)

	// RenderAlert raises or clears the overheat alert.
	RenderAlert(active bool)
}

// LoggerRenderer is the headless Renderer: every display update becomes a
// structured log entry. It is used when no terminal is attached.
type LoggerRenderer struct {
	log *logging.Logger
}

// NewLoggerRenderer creates a LoggerRenderer writing to log. A nil log
// discards everything.
func NewLoggerRenderer(log *logging.Logger) *LoggerRenderer {
	if log == nil {
		log = logging.NopLogger()
	}
	return &LoggerRenderer{log: log.WithComponent("display")}
}

func (lr *LoggerRenderer) RenderReadings(r sensor.Reading, p panel.State) {
	lr.log.Info("readings",
		"temp_c", r.Temperature,
		"light", r.Light,
		"motion", r.Motion,
		"fan", p.FanLevel,
		"lamp", p.LampLevel,
		"flash", p.Flash,
		"heartbeat", p.Heartbeat,
		"alert", p.Alert)
}

func (lr *LoggerRenderer) RenderLog(rec notify.Record) {
	lr.log.Info("record", "source", string(rec.Source), "text", rec.Text)
}

func (lr *LoggerRenderer) RenderAlert(active bool) {
	if active {
		lr.log.Warn("overheat alert raised")
		return
	}
	lr.log.Info("overheat alert cleared")
}
