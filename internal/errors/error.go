package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryLoad   Category = "load"
	CategoryRoute  Category = "route"
	CategoryRender Category = "render"
	CategoryConfig Category = "config"
	CategoryCLI    Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// ShellError is a structured error with source location and suggestions.
type ShellError struct {
	// Code is a unique error identifier (e.g., "E105").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the route file location where the error occurred.
	Location *Location

	// Context contains surrounding source code lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ShellError) Error() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Wrapped != nil {
		b.WriteString(": ")
		b.WriteString(e.Wrapped.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ShellError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a ShellError with the same code.
func (e *ShellError) Is(target error) bool {
	var se *ShellError
	if !stderrors.As(target, &se) {
		return false
	}
	return e.Code != "" && e.Code == se.Code
}

// WithLocation adds source location to the error.
func (e *ShellError) WithLocation(file string, line, column int) *ShellError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithFile records the route file without a line position.
func (e *ShellError) WithFile(file string) *ShellError {
	e.Location = &Location{File: file}
	return e
}

// WithLocationFromError extracts location from an interpreter error.
// The interpreter reports positions as "file:line:column: message".
func (e *ShellError) WithLocationFromError(file string, err error) *ShellError {
	if err == nil {
		return e
	}
	msg := err.Error()
	parts := strings.SplitN(msg, ":", 4)
	if len(parts) >= 3 {
		var line, col int
		fmt.Sscanf(parts[1], "%d", &line)
		fmt.Sscanf(parts[2], "%d", &col)
		if line > 0 {
			e.Location = &Location{File: file, Line: line, Column: col}
			return e
		}
	}
	return e.WithFile(file)
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ShellError) WithSuggestion(s string) *ShellError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ShellError) WithDetail(d string) *ShellError {
	e.Detail = d
	return e
}

// WithContext adds custom context lines to the error.
func (e *ShellError) WithContext(lines []string) *ShellError {
	e.Context = lines
	return e
}

// Wrap wraps another error.
func (e *ShellError) Wrap(err error) *ShellError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a ShellError from a registered error code.
func New(code string) *ShellError {
	template, ok := registry[code]
	if !ok {
		return &ShellError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ShellError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new ShellError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ShellError {
	return &ShellError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ShellError.
func FromError(err error, code string) *ShellError {
	if err == nil {
		return nil
	}
	var se *ShellError
	if stderrors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is, or wraps, a ShellError with code.
func HasCode(err error, code string) bool {
	var se *ShellError
	for err != nil {
		if !stderrors.As(err, &se) {
			return false
		}
		if se.Code == code {
			return true
		}
		err = se.Wrapped
	}
	return false
}
