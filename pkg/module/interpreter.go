package module

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"io"
	"log/slog"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/view"
)

// DefaultAllowedImports are the standard library packages route scripts may
// import. The view package is always allowed.
var DefaultAllowedImports = []string{
	"bytes",
	"encoding/json",
	"errors",
	"fmt",
	"math",
	"path",
	"regexp",
	"sort",
	"strconv",
	"strings",
	"time",
	"unicode",
}

var (
	propsType = reflect.TypeOf(view.Props{})
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Interpreter evaluates Go route files with yaegi. Each file gets its own
// interpreter so package-level state is never shared between routes.
type Interpreter struct {
	allowed map[string]bool
	stdout  io.Writer
	logger  *slog.Logger
}

// InterpreterOption configures an Interpreter.
type InterpreterOption func(*Interpreter)

// WithAllowedImports replaces the import allow-list.
func WithAllowedImports(pkgs ...string) InterpreterOption {
	return func(in *Interpreter) {
		in.allowed = make(map[string]bool, len(pkgs))
		for _, p := range pkgs {
			in.allowed[p] = true
		}
	}
}

// WithScriptOutput sets where scripts' fmt.Print output goes.
func WithScriptOutput(w io.Writer) InterpreterOption {
	return func(in *Interpreter) { in.stdout = w }
}

// WithInterpreterLogger sets the logger.
func WithInterpreterLogger(l *slog.Logger) InterpreterOption {
	return func(in *Interpreter) { in.logger = l }
}

// NewInterpreter creates an interpreter loader.
func NewInterpreter(opts ...InterpreterOption) *Interpreter {
	in := &Interpreter{stdout: io.Discard, logger: defaultLogger()}
	WithAllowedImports(DefaultAllowedImports...)(in)
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Allowed returns the sorted import allow-list.
func (in *Interpreter) Allowed() []string {
	out := make([]string, 0, len(in.allowed))
	for p := range in.allowed {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Load implements Loader.
func (in *Interpreter) Load(fs billy.Filesystem, file string, spec Spec) (u *Unit, err error) {
	src, err := readFile(fs, file)
	if err != nil {
		return nil, err
	}

	u = NewUnit(file, spec)
	if len(strings.TrimSpace(string(src))) == 0 {
		return u, nil
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, syntaxError(file, src, err)
	}

	if err := in.checkImports(file, f); err != nil {
		return nil, err
	}

	declared := exportedFuncs(f)

	defer func() {
		if r := recover(); r != nil {
			u = nil
			err = errors.New("E106").WithFile(file).Wrap(fmt.Errorf("panic during evaluation: %v", r))
		}
	}()

	i := interp.New(interp.Options{Stdout: in.stdout, Stderr: in.stdout})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, errors.New("E106").WithFile(file).Wrap(err)
	}
	if err := i.Use(Symbols); err != nil {
		return nil, errors.New("E106").WithFile(file).Wrap(err)
	}
	if _, err := i.Eval(string(src)); err != nil {
		return nil, errors.New("E106").WithLocationFromError(file, err).Wrap(err)
	}

	pkg := f.Name.Name
	lookup := func(name string) (reflect.Value, error) {
		v, err := i.Eval(pkg + "." + name)
		if err != nil {
			return reflect.Value{}, errors.New("E106").WithFile(file).Wrap(err)
		}
		return v, nil
	}

	if pos, ok := declared[spec.Entry]; ok {
		v, err := lookup(spec.Entry)
		if err != nil {
			return nil, err
		}
		entry, err := entryFunc(v)
		if err != nil {
			return nil, invalidSignature(fset, src, pos, err).
				WithSuggestion(fmt.Sprintf("Declare func %s(props view.Props) []*view.Control", spec.Entry))
		}
		u.Entry = entry
	}

	for _, name := range spec.Aux {
		pos, ok := declared[name]
		if !ok {
			continue
		}
		v, err := lookup(name)
		if err != nil {
			return nil, err
		}
		fn, err := auxFunc(v)
		if err != nil {
			return nil, invalidSignature(fset, src, pos, fmt.Errorf("%s: %w", name, err))
		}
		u.Aux[name] = fn
	}

	in.logger.Debug("route script loaded", "file", file, "package", pkg, "kind", spec.Kind)
	return u, nil
}

func (in *Interpreter) checkImports(file string, f *ast.File) error {
	var forbidden []string
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		if p == ViewImportPath || in.allowed[p] {
			continue
		}
		forbidden = append(forbidden, p)
	}
	if len(forbidden) == 0 {
		return nil
	}
	return errors.New("E109").
		WithFile(file).
		WithDetail(strings.Join(forbidden, ", ")).
		WithSuggestion("Allowed imports: " + strings.Join(in.Allowed(), ", ") + " and " + ViewImportPath)
}

// exportedFuncs maps each top-level exported function name to its position.
func exportedFuncs(f *ast.File) map[string]token.Pos {
	out := make(map[string]token.Pos)
	for _, decl := range f.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv != nil || !fd.Name.IsExported() {
			continue
		}
		out[fd.Name.Name] = fd.Pos()
	}
	return out
}

func entryFunc(v reflect.Value) (RenderFunc, error) {
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("not a function: %s", v.Type())
	}
	switch fn := v.Interface().(type) {
	case func(view.Props) []*view.Control:
		return Controls(fn), nil
	case func(view.Props) ([]*view.Control, error):
		return fn, nil
	}
	return nil, fmt.Errorf("unsupported signature %s", v.Type())
}

// auxFunc accepts functions taking nothing or view.Props and returning one
// value, optionally followed by an error.
func auxFunc(v reflect.Value) (AuxFunc, error) {
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("not a function: %s", v.Type())
	}
	t := v.Type()
	if t.NumIn() > 1 || (t.NumIn() == 1 && t.In(0) != propsType) {
		return nil, fmt.Errorf("unsupported parameters in %s", t)
	}
	switch {
	case t.NumOut() == 1:
	case t.NumOut() == 2 && t.Out(1).Implements(errorType):
	default:
		return nil, fmt.Errorf("unsupported results in %s", t)
	}

	takesProps := t.NumIn() == 1
	return func(p view.Props) (any, error) {
		var args []reflect.Value
		if takesProps {
			args = []reflect.Value{reflect.ValueOf(p)}
		}
		out := v.Call(args)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}, nil
}

func invalidSignature(fset *token.FileSet, src []byte, pos token.Pos, err error) *errors.ShellError {
	p := fset.Position(pos)
	e := errors.New("E103").Wrap(err)
	e.Location = &errors.Location{File: p.Filename, Line: p.Line, Column: p.Column}
	e.Context = sourceContext(src, p.Line, 2)
	return e
}

func syntaxError(file string, src []byte, err error) *errors.ShellError {
	e := errors.New("E106").WithFile(file).Wrap(err)
	var list scanner.ErrorList
	if el, ok := err.(scanner.ErrorList); ok {
		list = el
	}
	if len(list) > 0 {
		line, col := list[0].Pos.Line, list[0].Pos.Column
		e.Location = &errors.Location{File: file, Line: line, Column: col}
		e.Context = sourceContext(src, line, 2)
	}
	return e
}

// sourceContext returns the raw source lines around line.
func sourceContext(src []byte, line, around int) []string {
	lines := strings.Split(string(src), "\n")
	start := max(line-around, 1)
	end := min(line+around, len(lines))
	var out []string
	for n := start; n <= end; n++ {
		out = append(out, lines[n-1])
	}
	return out
}
