package shell

import "github.com/charmbracelet/lipgloss"

var (
	Accent = lipgloss.Color("#00D4AA")
	Muted  = lipgloss.Color("#aaaaaa")
	Red    = lipgloss.Color("#FF5F56")
	Green  = lipgloss.Color("#39FF14")
)

type styles struct {
	menuKey lipgloss.Style
	label   lipgloss.Style
	ordinal lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// newStyles binds the palette to r so color is only emitted when the
// shell's output is a terminal.
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		menuKey: r.NewStyle().
			Foreground(Accent).
			Bold(true),
		label: r.NewStyle().
			Foreground(Muted).
			Bold(true),
		ordinal: r.NewStyle().
			Foreground(Accent),
		success: r.NewStyle().
			Foreground(Green),
		failure: r.NewStyle().
			Foreground(Red).
			Bold(true),
	}
}
