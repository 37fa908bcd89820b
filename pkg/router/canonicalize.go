package router

import "github.com/vango-dev/routeshell/pkg/routepath"

// Path canonicalization errors, re-exported for callers that only import the
// router.
var (
	ErrInvalidPath           = routepath.ErrInvalidPath
	ErrBackslashInPath       = routepath.ErrBackslashInPath
	ErrNullByteInPath        = routepath.ErrNullByteInPath
	ErrInvalidPercentEscape  = routepath.ErrInvalidPercentEscape
	ErrPathEscapesRoot       = routepath.ErrPathEscapesRoot
	ErrEncodedSlashInSegment = routepath.ErrEncodedSlashInSegment
)

// CanonicalizePath normalizes a navigation target.
func CanonicalizePath(input string) (routepath.Result, error) {
	return routepath.Canonicalize(input)
}
