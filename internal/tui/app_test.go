package tui

import (
	"testing"
	"time"

	"github.com/Iron-Ham/hestia/internal/config"
	"github.com/Iron-Ham/hestia/internal/notify"
	"github.com/Iron-Ham/hestia/internal/panel"
	"github.com/Iron-Ham/hestia/internal/registry"
	"github.com/Iron-Ham/hestia/internal/sensor"
)

func TestNewAppDefaults(t *testing.T) {
	app := New(nil, nil)
	if app.model.refresh != 100*time.Millisecond {
		t.Errorf("refresh = %v, want default 100ms", app.model.refresh)
	}
	if app.model.maxLogLines != 200 {
		t.Errorf("maxLogLines = %d, want default 200", app.model.maxLogLines)
	}
}

// The hub starts painting before the program runs. Callbacks must never
// block on a program that does not exist yet.
func TestCallbacksBeforeRunDoNotBlock(t *testing.T) {
	app := New(config.Default(), nil)

	done := make(chan struct{})
	go func() {
		app.RenderReadings(sensor.Reading{Temperature: 25}, panel.State{FanLevel: 1})
		app.RenderLog(notify.NewRecord("light", "Light:55 Level:1"))
		app.RenderAlert(true)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("renderer callbacks blocked before Run")
	}
}

func TestSetTasksBeforeRunSeedsModel(t *testing.T) {
	app := New(config.Default(), nil)
	app.SetTasks([]registry.Entry{
		{ID: "display", Base: 5},
		{ID: "emergency", Base: 1},
	})

	if len(app.model.tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(app.model.tasks))
	}
	if app.model.tasks[0].ID != "emergency" {
		t.Errorf("tasks[0] = %s, want emergency first", app.model.tasks[0].ID)
	}
}

func TestApplyConfigBeforeRunSeedsModel(t *testing.T) {
	app := New(config.Default(), nil)

	conf := config.Default()
	conf.TUI.RefreshMs = 333
	conf.TUI.MaxLogLines = 50
	app.ApplyConfig(conf)

	if app.model.refresh != 333*time.Millisecond {
		t.Errorf("refresh = %v, want 333ms", app.model.refresh)
	}
	if app.model.maxLogLines != 50 {
		t.Errorf("maxLogLines = %d, want 50", app.model.maxLogLines)
	}

	// A nil config is ignored.
	app.ApplyConfig(nil)
	if app.model.refresh != 333*time.Millisecond {
		t.Error("nil config overwrote settings")
	}
}
