package router

import (
	"fmt"
	"log/slog"

	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/module"
	"github.com/vango-dev/routeshell/pkg/view"
)

// MsgPageNotFound is the diagnostic passed to not-found units when a page
// renders nothing or a path does not resolve.
const MsgPageNotFound = "page not found"

// DefaultError renders the built-in error page used when no not-found unit
// exists or the not-found unit itself fails.
func DefaultError(props view.Props) []*view.Control {
	msg := props.Param("error")
	if msg == "" {
		msg = "no details"
	}
	return []*view.Control{
		view.Error("Error: page not found or route misconfigured. Details: " + msg),
	}
}

// Composer wraps page output in the layouts of the route's lineage.
type Composer struct {
	table  *Table
	logger *slog.Logger
}

// NewComposer returns a composer resolving parents in t.
func NewComposer(t *Table, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default().With("component", "router")
	}
	return &Composer{table: t, logger: logger}
}

// Build renders route's page with props and applies the layouts from the
// route up to the root, so the root layout is outermost. An empty page is
// replaced by the nearest not-found output before wrapping, and an empty
// wrapped result by the nearest not-found output on its own.
//
// A failing or panicking page or layout yields the error page for that
// failure. The returned error is E108 and is informational: the controls are
// always ready to mount.
func (c *Composer) Build(route *RouteNode, props view.Props) ([]*view.Control, error) {
	lineage := c.table.Lineage(route)

	page, err := render(route.PageUnit(), props.WithChildren(nil))
	if err != nil {
		return c.fail(route, lineage, props, err)
	}
	if len(page) == 0 {
		if page, err = c.notFound(lineage, props, MsgPageNotFound); err != nil {
			return c.fail(route, lineage, props, err)
		}
	}

	out, err := c.wrap(lineage, props, page)
	if err != nil {
		return c.fail(route, lineage, props, err)
	}
	if len(out) == 0 {
		if out, err = c.notFound(lineage, props, MsgPageNotFound); err != nil {
			return c.fail(route, lineage, props, err)
		}
	}
	return out, nil
}

// Error renders msg through the nearest not-found unit, or DefaultError when
// there is none, wrapped in route's layouts. If that rendering fails the
// unwrapped DefaultError output is returned. A nil route uses the root.
func (c *Composer) Error(route *RouteNode, props view.Props, msg string) []*view.Control {
	if route == nil {
		route, _ = c.table.Root()
	}
	var lineage []*RouteNode
	if route != nil {
		lineage = c.table.Lineage(route)
	}
	return c.errorPage(lineage, props, msg)
}

func (c *Composer) errorPage(lineage []*RouteNode, props view.Props, msg string) []*view.Control {
	ep := props.WithParam("error", msg).WithChildren(nil)

	var content []*view.Control
	var err error
	if u := nearestNotFound(lineage); u != nil {
		content, err = render(u, ep)
	} else {
		content = DefaultError(ep)
	}
	if err == nil {
		wrapped, werr := c.wrap(lineage, ep, content)
		if werr == nil {
			return wrapped
		}
		err = werr
	}

	c.logger.Warn("error page failed to render, using fallback", "error", err)
	return DefaultError(ep)
}

func (c *Composer) fail(route *RouteNode, lineage []*RouteNode, props view.Props, cause error) ([]*view.Control, error) {
	rerr := errors.New("E108").WithDetail(route.Path).Wrap(cause)
	c.logger.Warn("route render failed", "route", route.Path, "error", cause)
	return c.errorPage(lineage, props, "render failed: "+cause.Error()), rerr
}

// notFound renders the nearest not-found unit with msg. Without one it
// returns no controls.
func (c *Composer) notFound(lineage []*RouteNode, props view.Props, msg string) ([]*view.Control, error) {
	u := nearestNotFound(lineage)
	if u == nil {
		return nil, nil
	}
	return render(u, props.WithParam("error", msg).WithChildren(nil))
}

// wrap applies layouts innermost first. Levels without a layout pass their
// children through.
func (c *Composer) wrap(lineage []*RouteNode, props view.Props, children []*view.Control) ([]*view.Control, error) {
	out := children
	for _, n := range lineage {
		if n.Layout == nil {
			continue
		}
		next, err := render(n.Layout, props.WithChildren(out))
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", n.Path, err)
		}
		out = next
	}
	return out, nil
}

func nearestNotFound(lineage []*RouteNode) *module.Unit {
	for _, n := range lineage {
		if n.NotFound != nil {
			return n.NotFound
		}
	}
	return nil
}

// render calls u, turning a panic into an error.
func render(u *module.Unit, props view.Props) (out []*view.Control, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return u.Render(props)
}
