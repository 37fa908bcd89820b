package routepath

import (
	"reflect"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantPath    string
		wantQuery   string
		wantChanged bool
	}{
		{name: "root", input: "/", wantPath: "/"},
		{name: "empty string", input: "", wantPath: "/", wantChanged: true},
		{name: "whitespace only", input: "   ", wantPath: "/", wantChanged: true},
		{name: "no leading slash", input: "about", wantPath: "/about", wantChanged: true},
		{name: "surrounding space", input: "  /items/a ", wantPath: "/items/a"},
		{name: "trailing slash", input: "/items/a/", wantPath: "/items/a", wantChanged: true},
		{name: "collapse slashes", input: "/items//a", wantPath: "/items/a", wantChanged: true},
		{name: "single dot", input: "/items/./a", wantPath: "/items/a", wantChanged: true},
		{name: "double dot", input: "/items/a/../b", wantPath: "/items/b", wantChanged: true},
		{name: "double dot to root", input: "/items/..", wantPath: "/", wantChanged: true},
		{name: "query split off", input: "/items/a?tab=2", wantPath: "/items/a", wantQuery: "tab=2"},
		{name: "fragment dropped", input: "/items/a#top", wantPath: "/items/a", wantChanged: true},
		{name: "escape decoded", input: "/my%20reports", wantPath: "/my reports", wantChanged: true},
		{name: "brackets kept", input: "/items/[id]", wantPath: "/items/[id]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Canonicalize(tc.input)
			if err != nil {
				t.Fatalf("Canonicalize(%q) unexpected error = %v", tc.input, err)
			}
			if result.Path != tc.wantPath {
				t.Errorf("Canonicalize(%q).Path = %q, want %q", tc.input, result.Path, tc.wantPath)
			}
			if result.Query != tc.wantQuery {
				t.Errorf("Canonicalize(%q).Query = %q, want %q", tc.input, result.Query, tc.wantQuery)
			}
			if result.Changed != tc.wantChanged {
				t.Errorf("Canonicalize(%q).Changed = %v, want %v", tc.input, result.Changed, tc.wantChanged)
			}
		})
	}
}

func TestCanonicalizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"backslash", "/path\\with\\backslash", ErrBackslashInPath},
		{"null byte literal", "/path/\x00/null", ErrNullByteInPath},
		{"null byte encoded", "/path/%00/null", ErrNullByteInPath},
		{"incomplete escape", "/path/%2", ErrInvalidPercentEscape},
		{"bad escape", "/path/%GG", ErrInvalidPercentEscape},
		{"percent literal", "/path/100%", ErrInvalidPercentEscape},
		{"encoded slash", "/path/a%2Fb", ErrEncodedSlashInSegment},
		{"escape root", "/../secret", ErrPathEscapesRoot},
		{"deep escape root", "/a/../../secret", ErrPathEscapesRoot},
		{"url", "https://example.com/a", ErrInvalidPath},
		{"protocol relative", "//example.com/a", ErrInvalidPath},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Canonicalize(tc.input)
			if err != tc.wantErr {
				t.Errorf("Canonicalize(%q) error = %v, want %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestMustCanonicalize(t *testing.T) {
	if got := MustCanonicalize("items/a/"); got != "/items/a" {
		t.Errorf("MustCanonicalize = %q, want /items/a", got)
	}
	if got := MustCanonicalize("/../x"); got != "/" {
		t.Errorf("MustCanonicalize(invalid) = %q, want /", got)
	}
}

func TestFromDir(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "/"},
		{".", "/"},
		{"items", "/items"},
		{"items/[id]", "/items/[id]"},
		{`reports\2024`, "/reports/2024"},
		{"./a//b/", "/a/b"},
	}
	for _, tc := range tests {
		if got := FromDir(tc.in); got != tc.want {
			t.Errorf("FromDir(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecodeSegment(t *testing.T) {
	got, err := DecodeSegment("a%20b")
	if err != nil || got != "a b" {
		t.Errorf("DecodeSegment = %q, %v", got, err)
	}
	if _, err := DecodeSegment("a%2fb"); err != ErrEncodedSlashInSegment {
		t.Errorf("DecodeSegment(encoded slash) error = %v", err)
	}
	if got, _ := DecodeSegment("plain"); got != "plain" {
		t.Errorf("DecodeSegment(plain) = %q", got)
	}
}

func TestSegmentsAndJoin(t *testing.T) {
	if got := Segments("/"); got != nil {
		t.Errorf("Segments(/) = %v, want nil", got)
	}
	if got := Segments("/a/b"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Segments(/a/b) = %v", got)
	}
	if got := Join(); got != "/" {
		t.Errorf("Join() = %q", got)
	}
	if got := Join("a", "", "b/c"); got != "/a/b/c" {
		t.Errorf("Join = %q", got)
	}
}

func TestParent(t *testing.T) {
	if _, ok := Parent("/"); ok {
		t.Error("root must not have a parent")
	}
	if p, ok := Parent("/a"); !ok || p != "/" {
		t.Errorf("Parent(/a) = %q, %v", p, ok)
	}
	if p, _ := Parent("/a/[b]"); p != "/a" {
		t.Errorf("Parent(/a/[b]) = %q", p)
	}
}

func TestBrackets(t *testing.T) {
	tests := []struct {
		seg     string
		bracket bool
		name    string
	}{
		{"[id]", true, "id"},
		{"id", false, ""},
		{"[]", false, ""},
		{"[id", false, ""},
		{"x[id]", false, ""},
	}
	for _, tc := range tests {
		if got := IsBracket(tc.seg); got != tc.bracket {
			t.Errorf("IsBracket(%q) = %v", tc.seg, got)
		}
		if got := BracketName(tc.seg); got != tc.name {
			t.Errorf("BracketName(%q) = %q", tc.seg, got)
		}
	}

	if !HasBracket("/a/[b]/c") || HasBracket("/a/b") {
		t.Error("HasBracket mismatch")
	}
	if !IsDynamic("/a/[b]") || IsDynamic("/[a]/b") || IsDynamic("/") {
		t.Error("IsDynamic mismatch")
	}
}

func TestHasPrefix(t *testing.T) {
	tests := []struct {
		path, prefix string
		want         bool
	}{
		{"/a/b", "/", true},
		{"/a/b", "/a", true},
		{"/a/b", "/a/b", true},
		{"/ab", "/a", false},
		{"/a", "/a/b", false},
	}
	for _, tc := range tests {
		if got := HasPrefix(tc.path, tc.prefix); got != tc.want {
			t.Errorf("HasPrefix(%q, %q) = %v, want %v", tc.path, tc.prefix, got, tc.want)
		}
	}
}

func TestFill(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   []string
		want     string
	}{
		{"single", "/items/[id]", []string{"a"}, "/items/a"},
		{"nested", "/[a]/[b]", []string{"x", "y"}, "/x/y"},
		{"static between", "/[a]/list/[b]", []string{"x", "y"}, "/x/list/y"},
		{"multi component value", "/reports/[period]", []string{"2024/q1"}, "/reports/2024/q1"},
		{"leftover component after static tail", "/reports/[period]/summary", []string{"2024/q1"}, "/reports/2024/summary/q1"},
		{"leftover value after static tail", "/[a]/edit", []string{"x", "1"}, "/x/edit/1"},
		{"static path keeps its segments", "/docs/extra", []string{"intro"}, "/docs/extra/intro"},
		{"leftover values", "/items/[id]", []string{"a", "b"}, "/items/a/b"},
		{"too few values", "/[a]/[b]", []string{"x"}, "/x/[b]"},
		{"no brackets", "/docs", []string{"intro"}, "/docs/intro"},
		{"no values", "/items/[id]", nil, "/items/[id]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fill(tc.template, tc.values); got != tc.want {
				t.Errorf("Fill(%q, %v) = %q, want %q", tc.template, tc.values, got, tc.want)
			}
		})
	}
}

func TestZip(t *testing.T) {
	tests := []struct {
		name               string
		template, concrete string
		want               map[string]string
	}{
		{"single", "/items/[id]", "/items/a", map[string]string{"id": "a"}},
		{"nested", "/[a]/[b]", "/x/y", map[string]string{"a": "x", "b": "y"}},
		{"multi component truncates", "/reports/[period]", "/reports/2024/q1", map[string]string{"period": "2024"}},
		{"concrete shorter", "/[a]/[b]", "/x", map[string]string{"a": "x"}},
		{"no brackets", "/docs/intro", "/docs/intro", map[string]string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Zip(tc.template, tc.concrete); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Zip(%q, %q) = %v, want %v", tc.template, tc.concrete, got, tc.want)
			}
		})
	}
}
