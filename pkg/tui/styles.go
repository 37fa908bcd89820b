package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/routeshell/pkg/view"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#1F5FBF", Dark: "#8BC34A"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#6A737D", Dark: "#8B949E"}
	colorError  = lipgloss.Color("#E53935")
	colorBorder = lipgloss.AdaptiveColor{Light: "#DCE0E5", Dark: "#2A3850"}
)

// Styles holds the lipgloss styles used to draw frames.
type Styles struct {
	Title   lipgloss.Style
	Search  lipgloss.Style
	Status  lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Error   lipgloss.Style
	Heading lipgloss.Style
	Code    lipgloss.Style
	Link    lipgloss.Style
	Button  lipgloss.Style
	Focused lipgloss.Style
	Divider lipgloss.Style
	RowGap  int
}

// DefaultStyles returns the built-in theme.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Padding(0, 1),
		Search: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		Status:  lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		Text:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Accent:  lipgloss.NewStyle().Foreground(colorAccent),
		Error:   lipgloss.NewStyle().Foreground(colorError),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Code: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorBorder).
			PaddingLeft(1),
		Link: lipgloss.NewStyle().Underline(true).Foreground(colorAccent),
		Button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		Focused: lipgloss.NewStyle().Reverse(true),
		Divider: lipgloss.NewStyle().Foreground(colorBorder),
		RowGap:  2,
	}
}

// Tone returns the style for an emphasis tone.
func (s Styles) Tone(t view.Tone) lipgloss.Style {
	switch t {
	case view.ToneMuted:
		return s.Muted
	case view.ToneAccent:
		return s.Accent
	case view.ToneError:
		return s.Error
	default:
		return s.Text
	}
}
