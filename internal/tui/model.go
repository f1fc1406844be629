package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/hestia/internal/config"
	"github.com/Iron-Ham/hestia/internal/notify"
	"github.com/Iron-Ham/hestia/internal/panel"
	"github.com/Iron-Ham/hestia/internal/registry"
	"github.com/Iron-Ham/hestia/internal/sensor"
	"github.com/Iron-Ham/hestia/internal/util"
)

// Messages delivered into the event loop. Controller callbacks arrive on
// hub task goroutines; bubbletea serializes them for us.

type tickMsg time.Time

type readingsMsg struct {
	reading sensor.Reading
	board   panel.State
}

type recordMsg struct {
	record notify.Record
}

type alertMsg struct {
	active bool
}

type tasksMsg struct {
	entries []registry.Entry
}

type configMsg struct {
	conf *config.Config
}

// Model holds the dashboard state.
type Model struct {
	// Data fed by the controller
	reading     sensor.Reading
	board       panel.State
	alert       bool
	tasks       []registry.Entry
	lastReading time.Time

	// Event pane scrollback
	logLines []string
	logView  viewport.Model

	// UI state
	width    int
	height   int
	ready    bool
	quitting bool

	// Reloadable settings
	refresh     time.Duration
	maxLogLines int
}

// NewModel creates the dashboard model from the active configuration.
func NewModel(conf *config.Config) Model {
	return Model{
		logView:     viewport.New(0, 0),
		refresh:     time.Duration(conf.TUI.RefreshMs) * time.Millisecond,
		maxLogLines: conf.TUI.MaxLogLines,
	}
}

// tick schedules the next repaint.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		// Remaining keys drive the event pane scrollback.
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		// The tick only forces a repaint so staleness indicators move.
		return m, m.tick()

	case readingsMsg:
		m.reading = msg.reading
		m.board = msg.board
		m.lastReading = time.Now()
		return m, nil

	case recordMsg:
		m.appendLine(formatRecord(msg.record))
		return m, nil

	case alertMsg:
		m.alert = msg.active
		m.appendLine(formatAlert(msg.active))
		return m, nil

	case tasksMsg:
		m.setTasks(msg.entries)
		return m, nil

	case configMsg:
		m.applyConfig(msg.conf)
		return m, nil
	}

	return m, nil
}

// setTasks stores the roster sorted by urgency, ties broken by name.
func (m *Model) setTasks(entries []registry.Entry) {
	tasks := make([]registry.Entry, len(entries))
	copy(tasks, entries)
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Base != tasks[j].Base {
			return tasks[i].Base < tasks[j].Base
		}
		return tasks[i].ID < tasks[j].ID
	})
	m.tasks = tasks
}

// applyConfig adopts the reloadable settings from a changed configuration.
func (m *Model) applyConfig(conf *config.Config) {
	m.refresh = time.Duration(conf.TUI.RefreshMs) * time.Millisecond
	m.maxLogLines = conf.TUI.MaxLogLines
	m.trimLines()
	m.syncViewport()
}

// appendLine adds one line to the event pane, keeping the view pinned to the
// newest entry unless the user has scrolled away.
func (m *Model) appendLine(line string) {
	m.logLines = append(m.logLines, line)
	m.trimLines()
	m.syncViewport()
}

func (m *Model) trimLines() {
	if m.maxLogLines > 0 && len(m.logLines) > m.maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-m.maxLogLines:]
	}
}

// syncViewport rebuilds the viewport content, cutting styled lines to the
// pane width so colors survive the truncation.
func (m *Model) syncViewport() {
	wasBottom := m.logView.AtBottom()
	lines := m.logLines
	if w := m.logView.Width; w > 0 {
		lines = make([]string, len(m.logLines))
		for i, line := range m.logLines {
			lines[i] = util.TruncateANSI(line, w)
		}
	}
	m.logView.SetContent(strings.Join(lines, "\n"))
	if wasBottom {
		m.logView.GotoBottom()
	}
}

func (m *Model) resize() {
	w, h := EventPaneDimensions(m.width, m.height)
	m.logView.Width = w
	m.logView.Height = h
	m.syncViewport()
}
