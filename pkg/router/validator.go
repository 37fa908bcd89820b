package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/routeshell/pkg/routepath"
)

// Validator checks an expanded table against the route tree invariants.
type Validator struct {
	table  *Table
	errors []ValidationError
}

// ValidationError represents one broken invariant.
type ValidationError struct {
	// Type is the error category
	Type ValidationErrorType

	// Message is the human-readable error message
	Message string

	// Path is the offending route
	Path string

	// Details contains additional error-specific information
	Details string
}

func (e ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ValidationErrorType categorizes validation errors.
type ValidationErrorType string

const (
	// ErrorUnfilledBracket: a navigable route still has a [param] segment.
	ErrorUnfilledBracket ValidationErrorType = "UNFILLED_BRACKET"

	// ErrorOrphanRoute: a route other than root has no navigable parent.
	ErrorOrphanRoute ValidationErrorType = "ORPHAN_ROUTE"

	// ErrorParentPrefix: a route's path does not strictly extend its parent's.
	ErrorParentPrefix ValidationErrorType = "PARENT_PREFIX"

	// ErrorTemplateNavigable: an expanded route's template is still navigable.
	ErrorTemplateNavigable ValidationErrorType = "TEMPLATE_NAVIGABLE"

	// ErrorDuplicateParamName: two bracket segments of one path share a name,
	// so only the later one reaches props.
	ErrorDuplicateParamName ValidationErrorType = "DUPLICATE_PARAM_NAME"
)

// MultiValidationError wraps multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d route validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// NewValidator creates a validator for t.
func NewValidator(t *Table) *Validator {
	return &Validator{table: t}
}

// Validate returns nil when every invariant holds, or a MultiValidationError
// listing each violation in table order.
func (v *Validator) Validate() error {
	v.errors = nil

	for _, n := range v.table.Nodes() {
		v.validateBrackets(n)
		v.validateParent(n)
		v.validateTemplate(n)
	}
	v.validateParamNames()

	if len(v.errors) > 0 {
		return &MultiValidationError{Errors: v.errors}
	}
	return nil
}

func (v *Validator) validateBrackets(n *RouteNode) {
	if routepath.HasBracket(n.Path) {
		v.add(ErrorUnfilledBracket, n.Path, "route still contains a dynamic segment", "")
	}
}

func (v *Validator) validateParent(n *RouteNode) {
	if n.Path == "/" {
		return
	}
	parent, ok := v.table.Parent(n)
	if !ok {
		key, _ := n.Parent()
		v.add(ErrorOrphanRoute, n.Path, "route has no parent", key)
		return
	}
	if parent.Path == n.Path || !routepath.HasPrefix(n.Path, parent.Path) {
		v.add(ErrorParentPrefix, n.Path, "route does not extend its parent", "parent "+parent.Path)
		return
	}
	if !v.table.Has(parent.Path) {
		v.add(ErrorOrphanRoute, n.Path, "route's parent is not navigable", "parent "+parent.Path)
	}
}

func (v *Validator) validateTemplate(n *RouteNode) {
	if n.Template != nil && v.table.Has(n.Template.Path) {
		v.add(ErrorTemplateNavigable, n.Path, "template is navigable", "template "+n.Template.Path)
	}
}

func (v *Validator) validateParamNames() {
	templates := make(map[string]bool)
	for _, n := range v.table.Nodes() {
		if n.Template != nil {
			templates[n.Template.Path] = true
		}
	}
	paths := make([]string, 0, len(templates))
	for p := range templates {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		seen := make(map[string]bool)
		for _, seg := range routepath.Segments(p) {
			name := routepath.BracketName(seg)
			if name == "" {
				continue
			}
			if seen[name] {
				v.add(ErrorDuplicateParamName, p, fmt.Sprintf("param %q appears twice", name), "")
			}
			seen[name] = true
		}
	}
}

func (v *Validator) add(typ ValidationErrorType, path, msg, details string) {
	v.errors = append(v.errors, ValidationError{Type: typ, Message: msg, Path: path, Details: details})
}

// FormatValidationError formats a validation error for display:
//
//	ERROR: route has no parent
//	  /reports/2024
//	  Details: /reports
func FormatValidationError(err ValidationError) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ERROR: %s\n", err.Message))
	sb.WriteString(fmt.Sprintf("  %s\n", err.Path))
	if err.Details != "" {
		sb.WriteString(fmt.Sprintf("  Details: %s\n", err.Details))
	}
	return sb.String()
}
