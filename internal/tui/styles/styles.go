package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BlueColor      = lipgloss.Color("#60A5FA") // Blue
	YellowColor    = lipgloss.Color("#FBBF24") // Yellow

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)
	Blue      = lipgloss.NewStyle().Foreground(BlueColor)
	Yellow    = lipgloss.NewStyle().Foreground(YellowColor)

	// Header is the top bar spanning the full terminal width.
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		Background(PrimaryColor).
		Padding(0, 1)

	// SectionTitle labels a block in the sidebar.
	SectionTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// AlertBanner is the full-width overheat warning.
	AlertBanner = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(ErrorColor).
			Padding(0, 1)

	// Help is the key hint bar at the bottom of the screen.
	Help = lipgloss.NewStyle().
		Foreground(MutedColor)
)

// LevelColor returns the color for a panel output level (0..3).
// Level 0 is off; higher levels run hotter.
func LevelColor(level int) lipgloss.Color {
	switch level {
	case 0:
		return MutedColor
	case 1:
		return SecondaryColor
	case 2:
		return YellowColor
	default:
		return ErrorColor
	}
}

// SourceColor returns the color used to tag log records from a task.
func SourceColor(source string) lipgloss.Color {
	switch source {
	case "temperature":
		return WarningColor
	case "light":
		return YellowColor
	case "emergency":
		return ErrorColor
	case "motion":
		return SecondaryColor
	default:
		return BlueColor
	}
}

// OnOffIcon returns a filled dot for on and a hollow dot for off.
func OnOffIcon(on bool) string {
	if on {
		return "●"
	}
	return "○"
}
