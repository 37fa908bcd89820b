package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/vango-dev/routeshell/pkg/view"
)

// HTMLOptions configures WriteHTML.
type HTMLOptions struct {
	// Lang is the document language. Defaults to "en".
	Lang string

	// StyleSheets are linked from the head.
	StyleSheets []string

	// Script is inline JavaScript appended to the body, e.g. a live-reload
	// client for the inspector's websocket.
	Script string
}

// WriteHTML renders f as a complete HTML document. Links, buttons and the
// search bar carry their target in a data-target attribute; the document has
// no behavior of its own unless opts.Script supplies it.
func WriteHTML(w io.Writer, f Frame, opts HTMLOptions) error {
	lang := opts.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n<head>\n", escape(lang)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta charset="utf-8">`+"\n"); err != nil {
		return err
	}
	title := f.Title
	if title == "" {
		title = f.Path
	}
	if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escape(title)); err != nil {
		return err
	}
	for _, href := range opts.StyleSheets {
		if _, err := fmt.Fprintf(w, `  <link rel="stylesheet" href="%s">`+"\n", escape(href)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "</head>\n<body data-path=\"%s\" data-seq=\"%d\">\n", escape(f.Path), f.Seq); err != nil {
		return err
	}

	hw := &htmlWriter{w: w}
	for _, c := range f.Controls() {
		hw.control(c, 1)
	}
	if hw.err != nil {
		return hw.err
	}

	if opts.Script != "" {
		if _, err := fmt.Fprintf(w, "<script>%s</script>\n", opts.Script); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// RenderHTML is WriteHTML into a string.
func RenderHTML(f Frame, opts HTMLOptions) (string, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, f, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// htmlWriter keeps the first write error so control rendering reads straight.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) printf(depth int, format string, args ...any) {
	if h.err != nil {
		return
	}
	if _, err := io.WriteString(h.w, strings.Repeat("  ", depth)); err != nil {
		h.err = err
		return
	}
	_, h.err = fmt.Fprintf(h.w, format+"\n", args...)
}

func (h *htmlWriter) control(c *view.Control, depth int) {
	if c == nil {
		return
	}
	class := toneClass(c.Tone)
	switch c.Kind {
	case view.KindHeading:
		h.printf(depth, "<h%d%s>%s</h%d>", c.Level, class, escape(c.Text), c.Level)
	case view.KindText:
		h.printf(depth, "<p%s>%s</p>", class, escape(c.Text))
	case view.KindMarkdown:
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(c.Text), &buf); err != nil {
			h.printf(depth, "<pre%s>%s</pre>", class, escape(c.Text))
			return
		}
		h.printf(depth, "<div class=\"markdown\">%s</div>", strings.TrimSpace(buf.String()))
	case view.KindCode:
		h.printf(depth, "<pre><code>%s</code></pre>", escape(c.Text))
	case view.KindLink:
		h.printf(depth, "<a href=\"#\" data-target=\"%s\"%s>%s</a>", escape(c.Target), class, escape(c.Text))
	case view.KindButton:
		h.printf(depth, "<button data-target=\"%s\"%s>%s</button>", escape(c.Target), class, escape(c.Text))
	case view.KindColumn, view.KindRow:
		h.printf(depth, "<div class=\"%s\">", c.Kind)
		for _, child := range c.Children {
			h.control(child, depth+1)
		}
		h.printf(depth, "</div>")
	case view.KindDivider:
		h.printf(depth, "<hr>")
	case view.KindSpacer:
		h.printf(depth, "<br>")
	case view.KindSearchBar:
		h.printf(depth, "<nav class=\"searchbar\">")
		h.printf(depth+1, "<input list=\"routes\" placeholder=\"%s\">", escape(c.Hint))
		h.printf(depth+1, "<datalist id=\"routes\">")
		for _, opt := range c.Options {
			h.printf(depth+2, "<option value=\"%s\">", escape(opt))
		}
		h.printf(depth+1, "</datalist>")
		h.printf(depth, "</nav>")
	default:
		h.printf(depth, "<div%s>%s</div>", class, escape(c.Text))
	}
}

func toneClass(t view.Tone) string {
	if t == "" {
		return ""
	}
	return fmt.Sprintf(" class=\"tone-%s\"", t)
}

func escape(s string) string { return html.EscapeString(s) }
