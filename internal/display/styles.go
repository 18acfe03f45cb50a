package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for briefing output.
var (
	ColorPrimary = lipgloss.Color("#0f62fe") // Blue
	ColorAccent  = lipgloss.Color("#24a148") // Green
	ColorMuted   = lipgloss.Color("#8d8d8d") // Gray
	ColorWarning = lipgloss.Color("#f1c21b") // Yellow
)

// Styles is bound to one renderer so terminal and plain output can coexist
// in the same process.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	ItemHead lipgloss.Style
	Meta     lipgloss.Style
	Body     lipgloss.Style
	Detail   lipgloss.Style
	TopPick  lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
	Empty    lipgloss.Style
	Card     lipgloss.Style
}

// NewStyles builds styles on r. Pass nil for the default (stdout) renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Section:  r.NewStyle().Bold(true).Underline(true),
		ItemHead: r.NewStyle().Bold(true),
		Meta:     r.NewStyle().Foreground(ColorMuted),
		Body:     r.NewStyle(),
		Detail:   r.NewStyle().Foreground(ColorMuted).PaddingLeft(2),
		TopPick:  r.NewStyle().Bold(true).Foreground(ColorAccent),
		Tab:      r.NewStyle().Padding(0, 1).Foreground(ColorMuted),
		TabOn:    r.NewStyle().Padding(0, 1).Bold(true).Foreground(ColorPrimary).Underline(true),
		Selected: r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Help:     r.NewStyle().Foreground(ColorMuted).Italic(true),
		Empty:    r.NewStyle().Foreground(ColorMuted).Italic(true),
		Card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1),
	}
}

// PlainStyles renders without escape sequences regardless of the terminal.
func PlainStyles() Styles {
	return NewStyles(lipgloss.NewRenderer(io.Discard))
}
