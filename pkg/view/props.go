package view

// Display is the handle units receive for the surface they render onto.
type Display interface {
	// SetTitle changes the window or terminal title.
	SetTitle(title string)

	// Title returns the current title.
	Title() string

	// Size reports the drawable area in cells. Zero means unknown.
	Size() (width, height int)
}

// Navigator is the router as seen by units.
type Navigator interface {
	// Navigate changes the visible route. Calls made while a navigation is
	// rendering are queued and run once it completes.
	Navigate(path string)

	// Path returns the current route path.
	Path() string

	// Routes lists every navigable route path in table order.
	Routes() []string
}

// Props is passed to every page, layout and not-found unit.
type Props struct {
	Display  Display
	Router   Navigator
	Children []*Control

	// Params holds resolved dynamic segment values keyed by bracket name,
	// extra static parameter values, and "error" for not-found units.
	Params map[string]string
}

// Param returns the named parameter or "".
func (p Props) Param(name string) string {
	if p.Params == nil {
		return ""
	}
	return p.Params[name]
}

// WithChildren returns a copy of p carrying children.
func (p Props) WithChildren(children []*Control) Props {
	p.Children = children
	return p
}

// WithParam returns a copy of p with an extra parameter set. The receiver's map
// is not modified.
func (p Props) WithParam(key, value string) Props {
	params := make(map[string]string, len(p.Params)+1)
	for k, v := range p.Params {
		params[k] = v
	}
	params[key] = value
	p.Params = params
	return p
}

// Metadata is produced by a page's GenerateMetadata function.
type Metadata struct {
	Title       string `json:"title,omitempty" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// StaticParam is one generated value for a dynamic segment. Segment may span
// several path components ("2024/q1"). Extras are merged into Params when the
// expanded route renders.
type StaticParam struct {
	Segment string            `json:"segment" yaml:"segment"`
	Extras  map[string]string `json:"extras,omitempty" yaml:"extras"`
}
