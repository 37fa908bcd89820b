package view

import (
	"fmt"
	"strings"
)

// Plain renders a control forest as indented text. Each control is one line;
// children are indented by two spaces. Surfaces without styling and tests use
// it to compare output.
func Plain(controls []*Control) string {
	var b strings.Builder
	for _, c := range controls {
		writePlain(&b, c, 0)
	}
	return b.String()
}

func writePlain(b *strings.Builder, c *Control, depth int) {
	if c == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(c.label())
	b.WriteByte('\n')
	for _, child := range c.Children {
		writePlain(b, child, depth+1)
	}
}

func (c *Control) label() string {
	switch c.Kind {
	case KindHeading:
		return strings.Repeat("#", c.Level) + " " + c.Text
	case KindLink, KindButton:
		return fmt.Sprintf("[%s](%s)", c.Text, c.Target)
	case KindSearchBar:
		return fmt.Sprintf("<search %q %d>", c.Hint, len(c.Options))
	case KindColumn, KindRow:
		return "<" + string(c.Kind) + ">"
	case KindDivider:
		return "---"
	case KindSpacer:
		return ""
	case KindText:
		if c.Tone == ToneError {
			return "! " + c.Text
		}
		return c.Text
	default:
		return c.Text
	}
}

// String implements fmt.Stringer.
func (c *Control) String() string {
	if c == nil {
		return "<nil>"
	}
	return strings.TrimRight(Plain([]*Control{c}), "\n")
}
