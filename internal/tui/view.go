package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/hestia/internal/notify"
	"github.com/Iron-Ham/hestia/internal/tui/styles"
	"github.com/Iron-Ham/hestia/internal/util"
)

// staleAfter marks the header when the display task stops repainting.
const staleAfter = 2 * time.Second

// maxPanelLevel is the top fan/lamp output level.
const maxPanelLevel = 3

// View renders the dashboard.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	sidebarWidth := SidebarWidthFor(m.width)
	eventWidth, _ := EventPaneDimensions(m.width, m.height)
	mainHeight := m.height - MainAreaHeightOffset

	sidebar := lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(mainHeight).
		MaxHeight(mainHeight).
		Render(m.renderSidebar())

	events := lipgloss.NewStyle().
		Width(eventWidth).
		Height(mainHeight).
		MaxHeight(mainHeight).
		Render(m.renderEvents())

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", events))
	b.WriteString("\n")

	// The alert slot is always one line so the layout never jumps.
	if m.alert || m.board.Alert {
		b.WriteString(styles.AlertBanner.Width(m.width).Render("OVERHEAT - temperature above threshold"))
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

// renderHeader renders the title bar, flagging a display task that has
// stopped repainting.
func (m Model) renderHeader() string {
	title := "Hestia building controller"
	if !m.lastReading.IsZero() && time.Since(m.lastReading) > staleAfter {
		title += "  (stale)"
	}
	return styles.Header.Width(m.width).Render(title)
}

// renderSidebar renders the sensor readings, panel outputs, and task roster.
func (m Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(styles.SectionTitle.Render("Sensors"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf(" %-11s %d°C\n", "temperature", m.reading.Temperature))
	b.WriteString(fmt.Sprintf(" %-11s %d\n", "darkness", m.reading.Light))
	b.WriteString(fmt.Sprintf(" %-11s %s\n", "motion", motionText(m.reading.Motion)))
	b.WriteString("\n")

	b.WriteString(styles.SectionTitle.Render("Panel"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf(" %-11s %s\n", "fan", renderLevel(m.board.FanLevel)))
	b.WriteString(fmt.Sprintf(" %-11s %s\n", "lamp", renderLevel(m.board.LampLevel)))
	b.WriteString(fmt.Sprintf(" %-11s %s\n", "flash", onOff(m.board.Flash, styles.Warning)))
	b.WriteString(fmt.Sprintf(" %-11s %s\n", "heartbeat", onOff(m.board.Heartbeat, styles.Secondary)))
	b.WriteString(fmt.Sprintf(" %-11s %s\n", "alert", alertText(m.board.Alert)))
	b.WriteString("\n")

	b.WriteString(styles.SectionTitle.Render(fmt.Sprintf("Tasks (%d)", len(m.tasks))))
	b.WriteString("\n")
	if len(m.tasks) == 0 {
		b.WriteString(styles.Muted.Render(" none registered"))
		b.WriteString("\n")
	}
	maxNameLen := SidebarWidthFor(m.width) - 6
	for _, e := range m.tasks {
		name := util.TruncateString(string(e.ID), maxNameLen)
		b.WriteString(fmt.Sprintf(" %2s  %s\n", e.Base, name))
	}

	return b.String()
}

// renderEvents renders the scrolling record pane.
func (m Model) renderEvents() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Events"))
	b.WriteString("\n")
	if len(m.logLines) == 0 {
		b.WriteString(styles.Muted.Render("Waiting for records..."))
		return b.String()
	}
	b.WriteString(m.logView.View())
	return b.String()
}

func (m Model) renderHelp() string {
	return styles.Help.Render("q quit • ↑/↓ scroll events • pgup/pgdn page")
}

// renderLevel renders a fan or lamp level as a colored gauge with the
// numeric value beside it.
func renderLevel(level int) string {
	bar := lipgloss.NewStyle().
		Foreground(styles.LevelColor(level)).
		Render(gauge(level, maxPanelLevel))
	return fmt.Sprintf("%s %d/%d", bar, level, maxPanelLevel)
}

// gauge renders level filled cells out of max.
func gauge(level, max int) string {
	var b strings.Builder
	for i := 0; i < max; i++ {
		if i < level {
			b.WriteString("█")
		} else {
			b.WriteString("░")
		}
	}
	return b.String()
}

func onOff(on bool, active lipgloss.Style) string {
	if on {
		return active.Render(styles.OnOffIcon(true))
	}
	return styles.Muted.Render(styles.OnOffIcon(false))
}

func motionText(detected bool) string {
	if detected {
		return styles.Warning.Render("detected")
	}
	return styles.Muted.Render("none")
}

func alertText(active bool) string {
	if active {
		return styles.Error.Render("OVERHEAT")
	}
	return styles.Muted.Render("ok")
}

// formatRecord renders one drained record as an event pane line.
func formatRecord(rec notify.Record) string {
	ts := styles.Muted.Render(rec.At.Format("15:04:05.000"))
	tag := lipgloss.NewStyle().
		Foreground(styles.SourceColor(string(rec.Source))).
		Render(fmt.Sprintf("%-11s", rec.Source))
	return fmt.Sprintf("%s %s %s", ts, tag, rec.Text)
}

// formatAlert renders an overheat transition as an event pane line.
func formatAlert(active bool) string {
	ts := styles.Muted.Render(time.Now().Format("15:04:05.000"))
	if active {
		return fmt.Sprintf("%s %s", ts, styles.Error.Render("overheat alert raised"))
	}
	return fmt.Sprintf("%s %s", ts, styles.Secondary.Render("overheat alert cleared"))
}
