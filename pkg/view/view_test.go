package view

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadingClampsLevel(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1}, {1, 1}, {3, 3}, {9, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Heading(tt.in, "x").Level)
	}
}

func TestColumnDropsNil(t *testing.T) {
	col := Column(Text("a"), nil, Text("b"))
	require.Len(t, col.Children, 2)
	assert.Equal(t, "b", col.Children[1].Text)
}

func TestPlain(t *testing.T) {
	tree := []*Control{
		Heading(2, "Items"),
		Column(
			Link("Alpha", "/items/a"),
			Error("boom"),
		),
		Divider(),
	}

	want := "## Items\n<column>\n  [Alpha](/items/a)\n  ! boom\n---\n"
	assert.Equal(t, want, Plain(tree))
}

func TestFindAndTargets(t *testing.T) {
	tree := []*Control{
		Row(Button("Home", "/"), Column(Link("B", "/b"), Text("needle"))),
		Link("C", "/c"),
	}

	got := Find(tree, func(c *Control) bool { return c.Text == "needle" })
	require.NotNil(t, got)
	assert.Equal(t, KindText, got.Kind)
	assert.Nil(t, Find(tree, func(c *Control) bool { return c.Text == "missing" }))

	assert.Equal(t, []string{"/", "/b", "/c"}, Targets(tree))
}

func TestSearchBarCopiesOptions(t *testing.T) {
	opts := []string{"/", "/a"}
	var submitted string
	bar := SearchBar("Go to…", opts, func(s string) { submitted = s })
	opts[0] = "mutated"

	assert.Equal(t, []string{"/", "/a"}, bar.Options)
	bar.OnSubmit("/a")
	assert.Equal(t, "/a", submitted)
}

func TestControlJSONOmitsCallbacks(t *testing.T) {
	bar := SearchBar("hint", []string{"/"}, func(string) {})
	data, err := json.Marshal(bar)
	require.NoError(t, err)

	var decoded Control
	require.NoError(t, json.Unmarshal(data, &decoded))
	if diff := cmp.Diff(bar, &decoded, cmpopts.IgnoreFields(Control{}, "OnSubmit")); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPropsWithParamDoesNotAlias(t *testing.T) {
	base := Props{Params: map[string]string{"id": "1"}}
	next := base.WithParam("error", "gone")

	assert.Equal(t, "", base.Param("error"))
	assert.Equal(t, "gone", next.Param("error"))
	assert.Equal(t, "1", next.Param("id"))
	assert.Equal(t, "", Props{}.Param("id"))
}
