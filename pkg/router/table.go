package router

import (
	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/routepath"
)

// Table maps concrete route paths to nodes. It keeps every node it has seen
// in an arena keyed by path, so parent keys and templates stay resolvable
// after a node leaves the navigable set.
type Table struct {
	arena map[string]*RouteNode
	order []string
	index map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		arena: make(map[string]*RouteNode),
		index: make(map[string]int),
	}
}

// Add appends n to the navigable set. A path that is already navigable is an
// E104 error.
func (t *Table) Add(n *RouteNode) error {
	if _, dup := t.index[n.Path]; dup {
		return errors.New("E104").WithFile(n.Dir).WithDetail(n.Path)
	}
	t.index[n.Path] = len(t.order)
	t.order = append(t.order, n.Path)
	t.arena[n.Path] = n
	return nil
}

// retain records n in the arena without making it navigable.
func (t *Table) retain(n *RouteNode) {
	if _, ok := t.arena[n.Path]; !ok {
		t.arena[n.Path] = n
	}
}

// Get returns the navigable node at path.
func (t *Table) Get(path string) (*RouteNode, bool) {
	if _, ok := t.index[path]; !ok {
		return nil, false
	}
	return t.arena[path], true
}

// Node returns any node the table knows, navigable or not.
func (t *Table) Node(path string) (*RouteNode, bool) {
	n, ok := t.arena[path]
	return n, ok
}

// Has reports whether path is navigable.
func (t *Table) Has(path string) bool {
	_, ok := t.index[path]
	return ok
}

// Len returns the number of navigable routes.
func (t *Table) Len() int { return len(t.order) }

// Paths returns navigable paths in table order.
func (t *Table) Paths() []string {
	return append([]string(nil), t.order...)
}

// Nodes returns navigable nodes in table order.
func (t *Table) Nodes() []*RouteNode {
	out := make([]*RouteNode, len(t.order))
	for i, p := range t.order {
		out[i] = t.arena[p]
	}
	return out
}

// Root returns the node at "/".
func (t *Table) Root() (*RouteNode, bool) {
	return t.Node("/")
}

// Parent resolves n's parent key.
func (t *Table) Parent(n *RouteNode) (*RouteNode, bool) {
	key, ok := n.Parent()
	if !ok {
		return nil, false
	}
	return t.Node(key)
}

// Lineage returns n followed by its ancestors up to the root. A parent cycle
// is cut at the first repeated node.
func (t *Table) Lineage(n *RouteNode) []*RouteNode {
	var out []*RouteNode
	seen := make(map[*RouteNode]bool)
	for cur := n; cur != nil && !seen[cur]; {
		seen[cur] = true
		out = append(out, cur)
		next, ok := t.Parent(cur)
		if !ok {
			break
		}
		cur = next
	}
	return out
}

// Nearest returns the deepest navigable node whose path is a segment-wise
// prefix of path, falling back to the root.
func (t *Table) Nearest(path string) (*RouteNode, bool) {
	segs := routepath.Segments(path)
	for i := len(segs); i >= 0; i-- {
		if n, ok := t.Get(routepath.Join(segs[:i]...)); ok {
			return n, true
		}
	}
	return t.Root()
}
