package router

import (
	"github.com/vango-dev/routeshell/pkg/module"
	"github.com/vango-dev/routeshell/pkg/routepath"
	"github.com/vango-dev/routeshell/pkg/view"
)

// RouteNode is one directory of the route tree, or one concrete expansion of
// a dynamic directory.
type RouteNode struct {
	// Path is the canonical route path, "/" for the root.
	Path string

	// Dir is the backing directory inside the route filesystem.
	Dir string

	Page     *module.Unit
	Layout   *module.Unit
	NotFound *module.Unit

	// Template is the dynamic node an expanded node was produced from.
	Template *RouteNode

	// Combination holds one static param per contributing level, outermost
	// first, for expanded nodes.
	Combination []view.StaticParam

	parent    string
	hasParent bool

	params       []view.StaticParam
	paramsLoaded bool
}

// Parent returns the key of the parent node in the table.
func (n *RouteNode) Parent() (string, bool) {
	return n.parent, n.hasParent
}

func (n *RouteNode) setParent(path string) {
	n.parent, n.hasParent = path, true
}

// IsDynamic reports whether the last segment is a bracket segment.
func (n *RouteNode) IsDynamic() bool {
	return routepath.IsDynamic(n.Path)
}

// IsExpanded reports whether n was produced by static param expansion.
func (n *RouteNode) IsExpanded() bool {
	return n.Template != nil
}

// StaticParams returns the params produced by the node's own generator. It is
// empty until the node has been through Expand.
func (n *RouteNode) StaticParams() []view.StaticParam {
	return append([]view.StaticParam(nil), n.params...)
}

// PageUnit returns the unit that renders this node: the template's page for
// expansions, otherwise the node's own.
func (n *RouteNode) PageUnit() *module.Unit {
	if n.Template != nil && n.Template.Page != nil {
		return n.Template.Page
	}
	return n.Page
}

// Params returns the props bag for rendering n: extras from the combination
// (outer levels first, inner levels win), then the template's bracket names
// zipped positionally against n's segments.
func (n *RouteNode) Params() map[string]string {
	out := make(map[string]string)
	for _, p := range n.Combination {
		for k, v := range p.Extras {
			out[k] = v
		}
	}
	template := n.Path
	if n.Template != nil {
		template = n.Template.Path
	}
	for k, v := range routepath.Zip(template, n.Path) {
		out[k] = v
	}
	return out
}

// expansion creates a concrete node with n as its template.
func (n *RouteNode) expansion(path string, combo []view.StaticParam) *RouteNode {
	return &RouteNode{
		Path:        path,
		Dir:         n.Dir,
		Page:        n.Page,
		Layout:      n.Layout,
		NotFound:    n.NotFound,
		Template:    n,
		Combination: combo,

		paramsLoaded: true,
	}
}
