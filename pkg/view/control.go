package view

// Kind identifies how a surface draws a control.
type Kind string

const (
	KindText      Kind = "text"
	KindHeading   Kind = "heading"
	KindMarkdown  Kind = "markdown"
	KindCode      Kind = "code"
	KindLink      Kind = "link"
	KindButton    Kind = "button"
	KindColumn    Kind = "column"
	KindRow       Kind = "row"
	KindDivider   Kind = "divider"
	KindSpacer    Kind = "spacer"
	KindSearchBar Kind = "searchbar"
)

// Tone is an emphasis hint. Surfaces map it to colors.
type Tone string

const (
	ToneDefault Tone = ""
	ToneMuted   Tone = "muted"
	ToneAccent  Tone = "accent"
	ToneError   Tone = "error"
)

// Control is one node of a rendered tree.
type Control struct {
	Kind  Kind   `json:"kind"`
	Key   string `json:"key,omitempty"`
	Text  string `json:"text,omitempty"`
	Tone  Tone   `json:"tone,omitempty"`
	Level int    `json:"level,omitempty"`

	// Target is the route path a link or button navigates to.
	Target string `json:"target,omitempty"`

	// Hint is placeholder text for inputs.
	Hint string `json:"hint,omitempty"`

	// Options lists suggestions offered by a search bar.
	Options []string `json:"options,omitempty"`

	Children []*Control `json:"children,omitempty"`

	// OnSubmit receives the value entered into a search bar.
	OnSubmit func(string) `json:"-"`
}

// Text creates a plain text control.
func Text(s string) *Control {
	return &Control{Kind: KindText, Text: s}
}

// Muted creates a de-emphasized text control.
func Muted(s string) *Control {
	return &Control{Kind: KindText, Text: s, Tone: ToneMuted}
}

// Error creates a red diagnostic text control.
func Error(s string) *Control {
	return &Control{Kind: KindText, Text: s, Tone: ToneError}
}

// Heading creates a heading. Levels outside 1..6 are clamped.
func Heading(level int, s string) *Control {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return &Control{Kind: KindHeading, Text: s, Level: level}
}

// Markdown creates a control whose text is Markdown source.
func Markdown(src string) *Control {
	return &Control{Kind: KindMarkdown, Text: src}
}

// Code creates a preformatted block.
func Code(src string) *Control {
	return &Control{Kind: KindCode, Text: src}
}

// Link creates a control that navigates to target when activated.
func Link(label, target string) *Control {
	return &Control{Kind: KindLink, Text: label, Target: target, Tone: ToneAccent}
}

// Button creates a button that navigates to target when pressed.
func Button(label, target string) *Control {
	return &Control{Kind: KindButton, Text: label, Target: target}
}

// Column stacks children vertically.
func Column(children ...*Control) *Control {
	return &Control{Kind: KindColumn, Children: compact(children)}
}

// Row lays children out horizontally.
func Row(children ...*Control) *Control {
	return &Control{Kind: KindRow, Children: compact(children)}
}

func Divider() *Control { return &Control{Kind: KindDivider} }

func Spacer() *Control { return &Control{Kind: KindSpacer} }

// SearchBar creates the navigation input. options are offered as suggestions
// and submit is called with the entered text.
func SearchBar(hint string, options []string, submit func(string)) *Control {
	return &Control{
		Kind:     KindSearchBar,
		Key:      "searchbar",
		Hint:     hint,
		Options:  append([]string(nil), options...),
		OnSubmit: submit,
	}
}

// WithKey sets a stable identity on the control and returns it.
func (c *Control) WithKey(key string) *Control {
	c.Key = key
	return c
}

// WithTone sets the emphasis tone and returns the control.
func (c *Control) WithTone(t Tone) *Control {
	c.Tone = t
	return c
}

// Walk visits c and its descendants depth-first. Returning false from fn stops
// descent into that control's children.
func (c *Control) Walk(fn func(*Control) bool) {
	if c == nil {
		return
	}
	if !fn(c) {
		return
	}
	for _, child := range c.Children {
		child.Walk(fn)
	}
}

// Find returns the first control in the forest for which match is true.
func Find(controls []*Control, match func(*Control) bool) *Control {
	var found *Control
	for _, c := range controls {
		c.Walk(func(n *Control) bool {
			if found != nil {
				return false
			}
			if match(n) {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// Targets returns every navigation target in the forest, in document order.
func Targets(controls []*Control) []string {
	var out []string
	for _, c := range controls {
		c.Walk(func(n *Control) bool {
			if n.Target != "" {
				out = append(out, n.Target)
			}
			return true
		})
	}
	return out
}

func compact(cs []*Control) []*Control {
	out := cs[:0:0]
	for _, c := range cs {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
