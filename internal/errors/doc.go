// Package errors provides structured, actionable error messages for routeshell.
//
// Every failure the shell can report at startup (a route file that does not
// exist, a script that does not evaluate, a generator that fails, a duplicate
// route) and every failure it recovers from at runtime (a page that panics) is
// described by a ShellError carrying a stable code.
//
// # Error Categories
//
//   - load: route files that cannot be found or evaluated
//   - route: tree construction, expansion and navigation
//   - render: page and layout failures
//   - config: routeshell.yaml and environment problems
//   - cli: command line usage
//
// # Usage
//
//	err := errors.New("E106").
//	    WithLocation("app/reports/[id]/page.go", 12, 3).
//	    WithSuggestion("Export a func Page(props view.Props) []*view.Control").
//	    Wrap(cause)
//
//	fmt.Println(err.Format())
//
// ShellError values compare by code, so callers can test for a class of
// failure without holding a sentinel pointer:
//
//	if errors.Is(err, errors.New("E105")) { ... }
package errors
