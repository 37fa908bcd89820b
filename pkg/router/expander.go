package router

import (
	"log/slog"

	"github.com/vango-dev/routeshell/pkg/routepath"
	"github.com/vango-dev/routeshell/pkg/view"
)

// Expander replaces dynamic routes with their concrete expansions.
type Expander struct {
	logger *slog.Logger
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander)

// WithExpanderLogger sets the logger.
func WithExpanderLogger(l *slog.Logger) ExpanderOption {
	return func(e *Expander) { e.logger = l }
}

// NewExpander creates an expander.
func NewExpander(opts ...ExpanderOption) *Expander {
	e := &Expander{logger: slog.Default().With("component", "router")}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand is NewExpander().Expand(t).
func Expand(t *Table) (*Table, error) {
	return NewExpander().Expand(t)
}

// Expand returns a new table in which every route whose lineage declares
// static params is replaced by one node per combination of those params, and
// every route left with a bracket segment is removed. The input table is
// not modified apart from caching each node's generator result.
//
// Generator failures are returned. A malformed generator result counts as no
// params and is logged at WARN.
func (e *Expander) Expand(t *Table) (*Table, error) {
	nodes := t.Nodes()
	for _, n := range nodes {
		if err := e.load(n); err != nil {
			return nil, err
		}
	}

	// nil keeps the node; non-nil (possibly empty) replaces it.
	plans := make([][]*RouteNode, len(nodes))
	for i, n := range nodes {
		levels, err := e.levels(t, n)
		if err != nil {
			return nil, err
		}
		if len(levels) == 0 {
			if routepath.HasBracket(n.Path) {
				plans[i] = []*RouteNode{}
				e.logger.Warn("dynamic route has no static params, removing it", "route", n.Path)
			}
			continue
		}
		plans[i] = make([]*RouteNode, 0)
		for _, combo := range product(levels) {
			values := make([]string, len(combo))
			for j, p := range combo {
				values[j] = p.Segment
			}
			path := routepath.Fill(n.Path, values)
			if routepath.HasBracket(path) {
				e.logger.Warn("expansion leaves a bracket unfilled, dropping it", "route", n.Path, "expansion", path)
				continue
			}
			plans[i] = append(plans[i], n.expansion(path, combo))
		}
	}

	out := NewTable()
	for i, n := range nodes {
		if plans[i] == nil {
			if err := out.Add(n); err != nil {
				return nil, err
			}
			continue
		}
		out.retain(n)
		for _, x := range plans[i] {
			if err := out.Add(x); err != nil {
				return nil, err
			}
		}
		e.logger.Debug("route expanded", "route", n.Path, "expansions", len(plans[i]))
	}
	for path, n := range t.arena {
		if !out.Has(path) {
			out.retain(n)
		}
	}

	for _, x := range out.Nodes() {
		if x.Template != nil {
			reparent(out, x)
		}
	}
	return out, nil
}

// load calls n's generator once and caches the result on n.
func (e *Expander) load(n *RouteNode) error {
	if n.paramsLoaded {
		return nil
	}
	n.paramsLoaded = true
	if n.Page == nil {
		return nil
	}

	params, malformed, err := n.Page.StaticParams()
	if err != nil {
		return err
	}
	if malformed != nil {
		e.logger.Warn("static params generator returned an unusable result; treating it as empty",
			"route", n.Path, "file", n.Page.File, "reason", malformed)
	}
	n.params = params
	return nil
}

// levels returns the non-empty param lists along n's lineage, root first.
func (e *Expander) levels(t *Table, n *RouteNode) ([][]view.StaticParam, error) {
	lineage := t.Lineage(n)
	var out [][]view.StaticParam
	for i := len(lineage) - 1; i >= 0; i-- {
		anc := lineage[i]
		if err := e.load(anc); err != nil {
			return nil, err
		}
		if len(anc.params) > 0 {
			out = append(out, anc.params)
		}
	}
	return out, nil
}

// product returns the cartesian product of levels, outer level major.
func product(levels [][]view.StaticParam) [][]view.StaticParam {
	out := [][]view.StaticParam{nil}
	for _, level := range levels {
		next := make([][]view.StaticParam, 0, len(out)*len(level))
		for _, prefix := range out {
			for _, p := range level {
				combo := make([]view.StaticParam, len(prefix), len(prefix)+1)
				copy(combo, prefix)
				next = append(next, append(combo, p))
			}
		}
		out = next
	}
	return out
}

// reparent points x at the longest navigable proper prefix of its path,
// falling back to its template's parent.
func reparent(t *Table, x *RouteNode) {
	segs := routepath.Segments(x.Path)
	for i := len(segs) - 1; i >= 0; i-- {
		p := routepath.Join(segs[:i]...)
		if t.Has(p) {
			x.setParent(p)
			return
		}
	}
	if key, ok := x.Template.Parent(); ok {
		x.setParent(key)
	}
}
