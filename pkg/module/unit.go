package module

import (
	"fmt"

	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/view"
)

// Kind is the role a unit plays in its directory.
type Kind string

const (
	KindPage     Kind = "page"
	KindLayout   Kind = "layout"
	KindNotFound Kind = "not_found"
)

// Entry and auxiliary function names.
const (
	EntryPage     = "Page"
	EntryLayout   = "Layout"
	EntryNotFound = "NotFound"

	AuxStaticParams = "GenerateStaticParams"
	AuxMetadata     = "GenerateMetadata"
)

// RenderFunc produces controls for the given props.
type RenderFunc func(view.Props) ([]*view.Control, error)

// AuxFunc is an auxiliary function. Functions that take no arguments ignore
// the props.
type AuxFunc func(view.Props) (any, error)

// Spec names what a loader must expose for one kind of unit.
type Spec struct {
	Kind  Kind
	Entry string
	Aux   []string
}

var (
	PageSpec     = Spec{Kind: KindPage, Entry: EntryPage, Aux: []string{AuxStaticParams, AuxMetadata}}
	LayoutSpec   = Spec{Kind: KindLayout, Entry: EntryLayout}
	NotFoundSpec = Spec{Kind: KindNotFound, Entry: EntryNotFound}
)

// Specs lists the unit kinds in the order the builder tries them.
var Specs = []Spec{PageSpec, LayoutSpec, NotFoundSpec}

// Files returns the candidate file names for kind, in preference order.
func Files(kind Kind) []string {
	switch kind {
	case KindPage:
		return []string{"page.go", "page.md"}
	case KindLayout:
		return []string{"layout.go"}
	case KindNotFound:
		return []string{"not_found.go", "not_found.md"}
	}
	return nil
}

// Unit is a loaded route file.
type Unit struct {
	File  string
	Kind  Kind
	Entry RenderFunc
	Aux   map[string]AuxFunc
}

// NewUnit returns a unit for file with no-op defaults for the entry and every
// auxiliary name in spec.
func NewUnit(file string, spec Spec) *Unit {
	u := &Unit{
		File:  file,
		Kind:  spec.Kind,
		Entry: noopRender,
		Aux:   make(map[string]AuxFunc, len(spec.Aux)),
	}
	for _, name := range spec.Aux {
		u.Aux[name] = noopAux
	}
	return u
}

func noopRender(view.Props) ([]*view.Control, error) { return nil, nil }

func noopAux(view.Props) (any, error) { return nil, nil }

// Render calls the entry function. A nil unit renders nothing.
func (u *Unit) Render(props view.Props) ([]*view.Control, error) {
	if u == nil || u.Entry == nil {
		return nil, nil
	}
	return u.Entry(props)
}

// Call invokes the named auxiliary function. Unknown names behave like a
// no-op.
func (u *Unit) Call(name string, props view.Props) (any, error) {
	if u == nil {
		return nil, nil
	}
	fn, ok := u.Aux[name]
	if !ok || fn == nil {
		return nil, nil
	}
	return fn(props)
}

// StaticParams calls GenerateStaticParams and normalizes the result. A
// malformed result yields no params and malformed reports why; a failing or
// panicking generator returns an E107 error.
func (u *Unit) StaticParams() (params []view.StaticParam, malformed error, err error) {
	defer func() {
		if r := recover(); r != nil {
			params, malformed = nil, nil
			err = errors.New("E107").WithFile(u.File).Wrap(fmt.Errorf("panic: %v", r))
		}
	}()

	raw, err := u.Call(AuxStaticParams, view.Props{})
	if err != nil {
		return nil, nil, errors.FromError(err, "E107").WithFile(u.File)
	}
	params, malformed = Normalize(raw)
	return params, malformed, nil
}

// Metadata calls GenerateMetadata. Results that are not view.Metadata, a
// pointer to it, or a plain title string are ignored.
func (u *Unit) Metadata(props view.Props) (view.Metadata, error) {
	raw, err := u.Call(AuxMetadata, props)
	if err != nil {
		return view.Metadata{}, err
	}
	switch m := raw.(type) {
	case view.Metadata:
		return m, nil
	case *view.Metadata:
		if m != nil {
			return *m, nil
		}
	case string:
		return view.Metadata{Title: m}, nil
	}
	return view.Metadata{}, nil
}
