package router

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NavigateOptions configures one navigation.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Params are merged into the props bag under the route's own params.
	Params map[string]string

	fromHistory bool
}

// NavigateOption is a functional option for NavigateWith.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithParams adds values to the props bag of the rendered route.
func WithParams(params map[string]string) NavigateOption {
	return func(o *NavigateOptions) {
		o.Params = params
	}
}

// Navigation describes one navigation as it passes through middleware.
type Navigation struct {
	ID uuid.UUID

	// Requested is the path as given; Path is its canonical form.
	Requested string
	Path      string

	// Route is nil when the path did not resolve.
	Route  *RouteNode
	Params map[string]string

	Outcome Outcome
	Err     error

	Started time.Time

	ctx context.Context
}

// Context returns the navigation's context. It is never nil.
func (n *Navigation) Context() context.Context {
	if n.ctx == nil {
		return context.Background()
	}
	return n.ctx
}

// SetContext replaces the navigation's context, e.g. with one carrying a
// tracing span.
func (n *Navigation) SetContext(ctx context.Context) {
	n.ctx = ctx
}

// History is a back/forward stack of visited paths.
type History struct {
	entries []string
	pos     int
}

// Push records path as the newest entry, discarding forward entries. Pushing
// the current path again is a no-op.
func (h *History) Push(path string) {
	if len(h.entries) > 0 && h.entries[h.pos] == path {
		return
	}
	if len(h.entries) > 0 {
		h.entries = h.entries[:h.pos+1]
	}
	h.entries = append(h.entries, path)
	h.pos = len(h.entries) - 1
}

// Replace overwrites the current entry.
func (h *History) Replace(path string) {
	if len(h.entries) == 0 {
		h.Push(path)
		return
	}
	h.entries[h.pos] = path
}

// Back moves one entry back.
func (h *History) Back() (string, bool) {
	if h.pos == 0 || len(h.entries) == 0 {
		return "", false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Forward moves one entry forward.
func (h *History) Forward() (string, bool) {
	if h.pos >= len(h.entries)-1 {
		return "", false
	}
	h.pos++
	return h.entries[h.pos], true
}

// CanBack reports whether Back would move.
func (h *History) CanBack() bool { return h.pos > 0 }

// CanForward reports whether Forward would move.
func (h *History) CanForward() bool { return h.pos < len(h.entries)-1 }

// Entries returns a copy of the stack and the current position.
func (h *History) Entries() ([]string, int) {
	return append([]string(nil), h.entries...), h.pos
}
