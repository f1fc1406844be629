package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/hestia/internal/notify"
	"github.com/Iron-Ham/hestia/internal/panel"
	"github.com/Iron-Ham/hestia/internal/registry"
	"github.com/Iron-Ham/hestia/internal/sensor"
)

// sizedModel returns a model that has received its first window size.
func sizedModel(t *testing.T) Model {
	t.Helper()
	m := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func TestViewLoadingBeforeFirstSize(t *testing.T) {
	m := testModel(t)
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q, want Loading...", got)
	}
}

func TestViewGoodbyeWhenQuitting(t *testing.T) {
	m := sizedModel(t)
	m.quitting = true
	if got := m.View(); got != "Goodbye!\n" {
		t.Errorf("View() = %q, want Goodbye!", got)
	}
}

func TestViewShowsSections(t *testing.T) {
	var model tea.Model = sizedModel(t)
	model, _ = model.Update(readingsMsg{
		reading: sensor.Reading{Temperature: 27, Light: 55, Motion: true},
		board:   panel.State{FanLevel: 1, LampLevel: 2, Flash: true, Heartbeat: true},
	})
	model, _ = model.Update(tasksMsg{entries: []registry.Entry{
		{ID: "emergency", Base: 1},
		{ID: "display", Base: 5},
	}})
	model, _ = model.Update(recordMsg{record: notify.NewRecord("light", "Light:55 Level:2")})

	view := model.(Model).View()
	for _, want := range []string{
		"Hestia building controller",
		"Sensors",
		"27°C",
		"detected",
		"Panel",
		"Tasks (2)",
		"emergency",
		"display",
		"Events",
		"Light:55 Level:2",
		"q quit",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestViewAlertBanner(t *testing.T) {
	var model tea.Model = sizedModel(t)

	view := model.(Model).View()
	if strings.Contains(view, "OVERHEAT - temperature above threshold") {
		t.Error("alert banner shown with no alert")
	}

	model, _ = model.Update(alertMsg{active: true})
	view = model.(Model).View()
	if !strings.Contains(view, "OVERHEAT - temperature above threshold") {
		t.Error("alert banner missing while alert is active")
	}
}

func TestViewEmptyEventPane(t *testing.T) {
	view := sizedModel(t).View()
	if !strings.Contains(view, "Waiting for records...") {
		t.Error("empty event pane placeholder missing")
	}
}

func TestGauge(t *testing.T) {
	tests := []struct {
		level int
		max   int
		want  string
	}{
		{0, 3, "░░░"},
		{1, 3, "█░░"},
		{3, 3, "███"},
	}

	for _, tt := range tests {
		if got := gauge(tt.level, tt.max); got != tt.want {
			t.Errorf("gauge(%d, %d) = %q, want %q", tt.level, tt.max, got, tt.want)
		}
	}
}

func TestRenderLevelShowsFraction(t *testing.T) {
	if got := renderLevel(2); !strings.Contains(got, "2/3") {
		t.Errorf("renderLevel(2) = %q, want the 2/3 fraction", got)
	}
}

func TestFormatRecord(t *testing.T) {
	rec := notify.Record{
		Source: "temperature",
		Text:   "Temp:23C Fan:1",
		At:     time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
	}
	line := formatRecord(rec)
	for _, want := range []string{"15:04:05.000", "temperature", "Temp:23C Fan:1"} {
		if !strings.Contains(line, want) {
			t.Errorf("formatRecord() = %q, missing %q", line, want)
		}
	}
}

func TestFormatAlert(t *testing.T) {
	if got := formatAlert(true); !strings.Contains(got, "overheat alert raised") {
		t.Errorf("formatAlert(true) = %q", got)
	}
	if got := formatAlert(false); !strings.Contains(got, "overheat alert cleared") {
		t.Errorf("formatAlert(false) = %q", got)
	}
}

func TestHeaderMarksStaleReadings(t *testing.T) {
	m := sizedModel(t)
	m.lastReading = time.Now().Add(-10 * time.Second)
	if got := m.renderHeader(); !strings.Contains(got, "(stale)") {
		t.Errorf("header %q missing stale marker", got)
	}

	m.lastReading = time.Now()
	if got := m.renderHeader(); strings.Contains(got, "(stale)") {
		t.Errorf("header %q marks fresh readings stale", got)
	}
}
