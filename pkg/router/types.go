package router

import "github.com/vango-dev/routeshell/pkg/view"

// Renderer owns the display surface the router mounts onto.
type Renderer interface {
	// Clear removes everything from the surface.
	Clear()

	// MountChrome mounts the persistent navigation bar.
	MountChrome(nav view.Navigator)

	// Mount appends composed route content below the chrome.
	Mount(controls []*view.Control)

	// Display returns the handle passed to units in props.
	Display() view.Display
}

// State is the router's navigation state.
type State int

const (
	Idle State = iota
	Navigating
)

func (s State) String() string {
	if s == Navigating {
		return "navigating"
	}
	return "idle"
}

// Outcome is how a navigation ended.
type Outcome string

const (
	OutcomeRendered Outcome = "rendered"
	OutcomeNotFound Outcome = "not_found"
	OutcomeFailed   Outcome = "render_failed"
)
