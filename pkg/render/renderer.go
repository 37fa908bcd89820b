package render

import (
	"log/slog"

	"github.com/vango-dev/routeshell/pkg/view"
)

// ChromeKey identifies the search bar control in a frame.
const ChromeKey = "searchbar"

// Renderer builds frames from router calls and presents them to a surface.
// Like the router, it must only be used from the UI thread.
type Renderer struct {
	surface Surface
	logger  *slog.Logger
	title   string
	frame   Frame
	seq     uint64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithTitle sets the title every new frame starts with. Pages replace it
// through their metadata.
func WithTitle(title string) Option {
	return func(r *Renderer) { r.title = title }
}

// NewRenderer returns a renderer presenting to s.
func NewRenderer(s Surface, opts ...Option) *Renderer {
	r := &Renderer{
		surface: s,
		logger:  slog.Default().With("component", "render"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.frame.Title = r.title
	return r
}

// Clear starts a new frame with the default title.
func (r *Renderer) Clear() {
	r.frame = Frame{Title: r.title}
}

// MountChrome sets the frame's search bar: it lists every navigable route,
// hints the current path and navigates to whatever is submitted.
func (r *Renderer) MountChrome(nav view.Navigator) {
	r.frame.Path = nav.Path()
	r.frame.Chrome = view.SearchBar(nav.Path(), nav.Routes(), nav.Navigate).WithKey(ChromeKey)
}

// Mount appends controls to the frame body and presents the frame.
func (r *Renderer) Mount(controls []*view.Control) {
	r.frame.Body = append(r.frame.Body, controls...)
	r.present()
}

// Display returns the renderer itself.
func (r *Renderer) Display() view.Display { return r }

// SetTitle implements view.Display.
func (r *Renderer) SetTitle(title string) {
	if title == r.frame.Title {
		return
	}
	r.frame.Title = title
	r.present()
}

// Title implements view.Display.
func (r *Renderer) Title() string { return r.frame.Title }

// Size implements view.Display.
func (r *Renderer) Size() (int, int) { return r.surface.Size() }

// Frame returns the frame being built.
func (r *Renderer) Frame() Frame { return r.frame }

func (r *Renderer) present() {
	r.seq++
	r.frame.Seq = r.seq
	r.logger.Debug("frame presented", "seq", r.seq, "path", r.frame.Path, "controls", len(r.frame.Body))
	r.surface.Present(r.frame)
}
