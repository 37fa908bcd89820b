package module

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/routeshell/internal/errors"
	"github.com/vango-dev/routeshell/pkg/view"
)

// ErrorPlaceholder is replaced by the diagnostic message in a not-found
// document.
const ErrorPlaceholder = "{{error}}"

// frontMatter is the YAML header a Markdown route file may carry.
type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Params      []any  `yaml:"params"`
}

// Markdown loads page.md and not_found.md files. The document is converted
// into controls once at load time; rendering copies that tree.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a Markdown loader.
func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New()}
}

// Load implements Loader.
func (m *Markdown) Load(fs billy.Filesystem, file string, spec Spec) (*Unit, error) {
	src, err := readFile(fs, file)
	if err != nil {
		return nil, err
	}

	header, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, errors.New("E106").WithFile(file).Wrap(err)
	}
	var fm frontMatter
	if len(header) > 0 {
		if err := yaml.Unmarshal(header, &fm); err != nil {
			return nil, errors.New("E106").WithLocationFromError(file, err).Wrap(err)
		}
	}

	doc := m.Convert(body)

	u := NewUnit(file, spec)
	u.Entry = func(p view.Props) ([]*view.Control, error) {
		msg := p.Param("error")
		out := make([]*view.Control, len(doc))
		for i, c := range doc {
			out[i] = cloneWith(c, msg)
		}
		return out, nil
	}
	if fm.Params != nil {
		params := fm.Params
		u.Aux[AuxStaticParams] = func(view.Props) (any, error) { return params, nil }
	}
	if fm.Title != "" || fm.Description != "" {
		meta := view.Metadata{Title: fm.Title, Description: fm.Description}
		u.Aux[AuxMetadata] = func(view.Props) (any, error) { return meta, nil }
	}
	return u, nil
}

// Convert turns a Markdown body into controls. Headings, paragraphs, code
// blocks, lists, quotes and rules map onto their view counterparts; a
// paragraph made of a single link becomes a link control.
func (m *Markdown) Convert(src []byte) []*view.Control {
	root := m.md.Parser().Parse(text.NewReader(src))

	var out []*view.Control
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if c := blockControl(n, src); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func blockControl(n gmast.Node, src []byte) *view.Control {
	switch node := n.(type) {
	case *gmast.Heading:
		return view.Heading(node.Level, inlineText(node, src))
	case *gmast.Paragraph, *gmast.TextBlock:
		if link, ok := soleLink(n); ok {
			return view.Link(inlineText(link, src), string(link.Destination))
		}
		return view.Text(inlineText(n, src))
	case *gmast.FencedCodeBlock:
		return view.Code(blockLines(node, src))
	case *gmast.CodeBlock:
		return view.Code(blockLines(node, src))
	case *gmast.ThematicBreak:
		return view.Divider()
	case *gmast.Blockquote:
		var parts []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			parts = append(parts, inlineText(c, src))
		}
		return view.Muted(strings.Join(parts, "\n"))
	case *gmast.List:
		col := view.Column()
		i := node.Start
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			bullet := "• "
			if node.IsOrdered() {
				bullet = strconv.Itoa(i) + ". "
				i++
			}
			var parts []string
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if link, ok := soleLink(c); ok {
					col.Children = append(col.Children, view.Link(inlineText(link, src), string(link.Destination)))
					parts = nil
					break
				}
				parts = append(parts, inlineText(c, src))
			}
			if len(parts) > 0 {
				col.Children = append(col.Children, view.Text(bullet+strings.Join(parts, " ")))
			}
		}
		return col
	case *gmast.HTMLBlock:
		return nil
	}
	return view.Markdown(inlineText(n, src))
}

// soleLink reports whether a block contains exactly one child which is a link.
func soleLink(n gmast.Node) (*gmast.Link, bool) {
	if n.ChildCount() != 1 {
		return nil, false
	}
	link, ok := n.FirstChild().(*gmast.Link)
	return link, ok
}

// inlineText concatenates the text content under n.
func inlineText(n gmast.Node, src []byte) string {
	var b bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		case *gmast.AutoLink:
			b.Write(t.URL(src))
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func blockLines(n gmast.Node, src []byte) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}

// cloneWith deep-copies c, substituting the error placeholder in text.
func cloneWith(c *view.Control, msg string) *view.Control {
	cp := *c
	cp.Text = strings.ReplaceAll(c.Text, ErrorPlaceholder, msg)
	if len(c.Children) > 0 {
		cp.Children = make([]*view.Control, len(c.Children))
		for i, child := range c.Children {
			cp.Children[i] = cloneWith(child, msg)
		}
	}
	if strings.Contains(c.Text, ErrorPlaceholder) && cp.Kind == view.KindText {
		cp.Tone = view.ToneError
	}
	return &cp
}

// splitFrontMatter separates a leading "---" YAML block from the body.
func splitFrontMatter(src []byte) (header, body []byte, err error) {
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(src, []byte("---\n")) {
		return nil, src, nil
	}
	rest := src[len("---\n"):]
	if bytes.HasPrefix(rest, []byte("---\n")) {
		return nil, rest[len("---\n"):], nil
	}
	idx := bytes.Index(rest, []byte("\n---\n"))
	if idx < 0 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-len("\n---")+1], nil, nil
		}
		return nil, nil, errFrontMatter
	}
	return rest[:idx+1], rest[idx+len("\n---\n"):], nil
}

var errFrontMatter = errors.Newf(errors.CategoryLoad, "front matter opened with --- but never closed")
