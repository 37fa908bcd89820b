package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/routeshell/pkg/view"
)

// drawer turns a control forest into terminal text.
type drawer struct {
	styles  Styles
	width   int
	md      *glamour.TermRenderer
	focused *view.Control
}

func (d *drawer) draw(controls []*view.Control) string {
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		parts = append(parts, d.control(c))
	}
	return strings.Join(parts, "\n")
}

func (d *drawer) control(c *view.Control) string {
	if c == nil {
		return ""
	}

	var out string
	switch c.Kind {
	case view.KindHeading:
		text := c.Text
		if c.Level <= 1 {
			text = strings.ToUpper(text)
		}
		out = d.styles.Heading.Render(text)
	case view.KindMarkdown:
		out = d.markdown(c.Text)
	case view.KindCode:
		out = d.styles.Code.Render(strings.TrimRight(c.Text, "\n"))
	case view.KindLink:
		out = d.styles.Link.Render(c.Text)
	case view.KindButton:
		out = d.styles.Button.Render(c.Text)
	case view.KindColumn:
		out = d.draw(c.Children)
	case view.KindRow:
		out = d.row(c.Children)
	case view.KindDivider:
		w := d.width
		if w <= 0 {
			w = 20
		}
		out = d.styles.Divider.Render(strings.Repeat("─", w))
	case view.KindSpacer:
		out = ""
	case view.KindSearchBar:
		out = d.styles.Muted.Render("/ " + c.Hint)
	default:
		out = d.styles.Tone(c.Tone).Render(c.Text)
	}

	if c == d.focused {
		out = d.styles.Focused.Render(out)
	}
	return out
}

func (d *drawer) row(children []*view.Control) string {
	parts := make([]string, 0, 2*len(children))
	gap := strings.Repeat(" ", d.styles.RowGap)
	for i, c := range children {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, d.control(c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (d *drawer) markdown(src string) string {
	if d.md == nil {
		return src
	}
	out, err := d.md.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}

// focusable returns the controls tab cycles through, in document order.
func focusable(controls []*view.Control) []*view.Control {
	var out []*view.Control
	for _, c := range controls {
		c.Walk(func(n *view.Control) bool {
			if n.Target != "" {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

func markdownRenderer(style string, width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	return glamour.NewTermRenderer(opts...)
}
