// Package routepath normalizes route paths and the directory paths they are
// derived from.
package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Result contains the result of path canonicalization.
type Result struct {
	// Path is the canonical route path.
	Path string

	// Query is anything after "?" in the input, without the "?".
	Query string

	// Changed indicates if the path was modified during canonicalization.
	Changed bool
}

// Canonicalization errors.
var (
	ErrInvalidPath           = errors.New("invalid route path")
	ErrBackslashInPath       = errors.New("path contains backslash")
	ErrNullByteInPath        = errors.New("path contains null byte")
	ErrInvalidPercentEscape  = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot       = errors.New("path escapes root via ..")
	ErrEncodedSlashInSegment = errors.New("encoded slash (%2F) in segment")
)

// Canonicalize normalizes a navigation target:
//   - surrounding whitespace is trimmed and a leading "/" added
//   - repeated slashes collapse, "." segments are removed, ".." is resolved
//   - the trailing slash is removed except for root
//   - percent escapes are decoded per segment
//
// Inputs containing a backslash, a NUL byte, an invalid or slash-producing
// escape, a URL scheme, or a ".." that climbs above root are rejected. A query
// string is split off and returned unchanged.
func Canonicalize(input string) (Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{Path: "/", Changed: true}, nil
	}
	if strings.Contains(input, "://") || strings.HasPrefix(input, "//") {
		return Result{}, ErrInvalidPath
	}

	path, query, _ := strings.Cut(input, "?")
	original := path
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path = path[:i]
	}

	if strings.Contains(path, "\\") {
		return Result{}, ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return Result{}, ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return Result{}, err
		}
	}

	var result []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(result) == 0 {
				return Result{}, ErrPathEscapesRoot
			}
			result = result[:len(result)-1]
		default:
			decoded, err := DecodeSegment(seg)
			if err != nil {
				return Result{}, err
			}
			result = append(result, decoded)
		}
	}

	path = Join(result...)
	return Result{Path: path, Query: query, Changed: path != original}, nil
}

// MustCanonicalize is Canonicalize for inputs known to be valid. Invalid
// input yields "/".
func MustCanonicalize(input string) string {
	r, err := Canonicalize(input)
	if err != nil {
		return "/"
	}
	return r.Path
}

// FromDir converts a directory path relative to the route root into a route
// path. Both separators are accepted; "." and "" name the root.
func FromDir(rel string) string {
	rel = strings.ReplaceAll(rel, "\\", "/")
	var segs []string
	for _, seg := range strings.Split(rel, "/") {
		if seg == "" || seg == "." {
			continue
		}
		segs = append(segs, seg)
	}
	return Join(segs...)
}

func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); {
		if path[i] != '%' {
			i++
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 3
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// DecodeSegment decodes one path segment. A decoded "/" is rejected since it
// would change the segment count.
func DecodeSegment(segment string) (string, error) {
	if !strings.Contains(segment, "%") {
		return segment, nil
	}
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	if strings.Contains(decoded, "/") {
		return "", ErrEncodedSlashInSegment
	}
	return decoded, nil
}
