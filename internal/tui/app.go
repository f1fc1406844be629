package tui

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/hestia/internal/config"
	"github.com/Iron-Ham/hestia/internal/logging"
	"github.com/Iron-Ham/hestia/internal/notify"
	"github.com/Iron-Ham/hestia/internal/panel"
	"github.com/Iron-Ham/hestia/internal/registry"
	"github.com/Iron-Ham/hestia/internal/sensor"
)

// App wraps the bubbletea program and bridges controller callbacks into its
// event loop. The hub starts before the program runs, so callbacks that
// arrive early are folded into the initial model (tasks, config) or dropped
// (frames, which the controller repaints continuously anyway).
type App struct {
	mu      sync.RWMutex
	program *tea.Program
	model   Model
	log     *logging.Logger
}

// New creates the dashboard application.
func New(conf *config.Config, log *logging.Logger) *App {
	if conf == nil {
		conf = config.Default()
	}
	if log == nil {
		log = logging.NopLogger()
	}
	return &App{
		model: NewModel(conf),
		log:   log.WithComponent("tui"),
	}
}

// Run starts the dashboard and blocks until the user quits or a signal
// arrives.
func (a *App) Run() error {
	a.mu.Lock()
	program := tea.NewProgram(a.model, tea.WithAltScreen())
	a.program = program
	a.mu.Unlock()

	// Handle signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigChan
		program.Send(tea.Quit())
	}()

	a.log.Info("dashboard started")
	_, err := program.Run()

	signal.Stop(sigChan)

	a.mu.Lock()
	a.program = nil
	a.mu.Unlock()

	a.log.Info("dashboard stopped")
	if err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

// SetTasks seeds the task roster shown in the sidebar.
func (a *App) SetTasks(entries []registry.Entry) {
	a.mu.Lock()
	if a.program == nil {
		a.model.setTasks(entries)
		a.mu.Unlock()
		return
	}
	program := a.program
	a.mu.Unlock()
	program.Send(tasksMsg{entries: entries})
}

// ApplyConfig adopts reloadable settings from a changed configuration.
func (a *App) ApplyConfig(conf *config.Config) {
	if conf == nil {
		return
	}
	a.mu.Lock()
	if a.program == nil {
		a.model.applyConfig(conf)
		a.mu.Unlock()
		return
	}
	program := a.program
	a.mu.Unlock()
	program.Send(configMsg{conf: conf})
}

// RenderReadings delivers a sensor snapshot and panel state to the dashboard.
func (a *App) RenderReadings(r sensor.Reading, p panel.State) {
	a.send(readingsMsg{reading: r, board: p})
}

// RenderLog delivers a drained log record to the event pane.
func (a *App) RenderLog(rec notify.Record) {
	a.send(recordMsg{record: rec})
}

// RenderAlert delivers an overheat alert transition.
func (a *App) RenderAlert(active bool) {
	a.send(alertMsg{active: active})
}

// send forwards a message to the running program, dropping it when the
// program has not started yet. Send blocks until the event loop picks the
// message up, so forwarding before Run would deadlock the hub.
func (a *App) send(msg tea.Msg) {
	a.mu.RLock()
	program := a.program
	a.mu.RUnlock()
	if program == nil {
		return
	}
	program.Send(msg)
}
