// Package tui provides the live dashboard for the building controller.
// This file contains layout-related constants and dimension calculation
// functions.
package tui

// Sidebar dimensions
const (
	// SidebarWidth is the default width of the sensors/panel/tasks pane.
	SidebarWidth = 34

	// SidebarMinWidth is the sidebar width used on narrow terminals.
	SidebarMinWidth = 24

	// NarrowTerminalThreshold is the terminal width below which the sidebar
	// uses the minimum width.
	NarrowTerminalThreshold = 80
)

// Layout offsets - the space taken by fixed UI elements
const (
	// PanelGap is the gap between the sidebar and the event pane.
	PanelGap = 1

	// MainAreaHeightOffset accounts for the header, the alert banner slot,
	// and the help bar.
	MainAreaHeightOffset = 4

	// EventPaneTitleHeight is the line holding the event pane title.
	EventPaneTitleHeight = 1

	// EventPaneMinWidth is the narrowest the event pane may get.
	EventPaneMinWidth = 20

	// EventPaneMinHeight is the fewest visible event lines.
	EventPaneMinHeight = 3
)

// SidebarWidthFor returns the sidebar width for a terminal of the given
// total width.
func SidebarWidthFor(width int) int {
	if width < NarrowTerminalThreshold {
		return SidebarMinWidth
	}
	return SidebarWidth
}

// EventPaneDimensions returns the width and height available to the
// scrolling event viewport for a terminal of the given size.
func EventPaneDimensions(width, height int) (int, int) {
	w := width - SidebarWidthFor(width) - PanelGap
	if w < EventPaneMinWidth {
		w = EventPaneMinWidth
	}
	h := height - MainAreaHeightOffset - EventPaneTitleHeight
	if h < EventPaneMinHeight {
		h = EventPaneMinHeight
	}
	return w, h
}
