package routepath

import "strings"

// Segments splits a canonical path into its components. Root has none.
func Segments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Join builds a canonical path from segments. Empty segments are skipped and
// segments containing "/" contribute each of their components.
func Join(segments ...string) string {
	var b strings.Builder
	for _, seg := range segments {
		for _, part := range strings.Split(seg, "/") {
			if part == "" {
				continue
			}
			b.WriteByte('/')
			b.WriteString(part)
		}
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// Parent returns the path with its last segment removed. Root has no parent.
func Parent(path string) (string, bool) {
	segs := Segments(path)
	if len(segs) == 0 {
		return "", false
	}
	return Join(segs[:len(segs)-1]...), true
}

// IsBracket reports whether seg is a dynamic segment such as "[id]".
func IsBracket(seg string) bool {
	return len(seg) > 2 && seg[0] == '[' && seg[len(seg)-1] == ']'
}

// BracketName returns the name inside a dynamic segment, or "" when seg is
// static.
func BracketName(seg string) string {
	if !IsBracket(seg) {
		return ""
	}
	return seg[1 : len(seg)-1]
}

// HasBracket reports whether any segment of path is dynamic.
func HasBracket(path string) bool {
	for _, seg := range Segments(path) {
		if IsBracket(seg) {
			return true
		}
	}
	return false
}

// IsDynamic reports whether the last segment of path is dynamic.
func IsDynamic(path string) bool {
	segs := Segments(path)
	return len(segs) > 0 && IsBracket(segs[len(segs)-1])
}

// HasPrefix reports whether prefix is a segment-wise prefix of path. Every
// path has root as a prefix; a path is a prefix of itself.
func HasPrefix(path, prefix string) bool {
	ps, xs := Segments(path), Segments(prefix)
	if len(xs) > len(ps) {
		return false
	}
	for i := range xs {
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}

// Fill substitutes values into the bracket segments of template, left to
// right, one path component per bracket. Values spanning several components
// ("2024/q1") are split first. Components left over once every bracket is
// filled are appended after the last template segment. Brackets left without
// a value stay in the result.
func Fill(template string, values []string) string {
	parts := Segments(Join(values...))
	segs := Segments(template)
	out := make([]string, 0, len(segs)+len(parts))
	next := 0
	for _, seg := range segs {
		if IsBracket(seg) && next < len(parts) {
			out = append(out, parts[next])
			next++
			continue
		}
		out = append(out, seg)
	}
	return Join(append(out, parts[next:]...)...)
}

// Zip pairs the bracket segments of template with the components of concrete
// at the same position. Positions beyond the shorter path are ignored.
func Zip(template, concrete string) map[string]string {
	ts, cs := Segments(template), Segments(concrete)
	out := make(map[string]string)
	for i := 0; i < len(ts) && i < len(cs); i++ {
		if name := BracketName(ts[i]); name != "" {
			out[name] = cs[i]
		}
	}
	return out
}
