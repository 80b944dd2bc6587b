package dom

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// voidElements have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// HTMLOptions controls serialization.
type HTMLOptions struct {
	// IDs adds a data-vid attribute with the node id to every element, so a
	// client can address nodes in patches.
	IDs bool

	// Listeners adds data-on-<event> markers for events with listeners.
	Listeners bool
}

// OuterHTML serializes n including its own tag.
func (n *Node) OuterHTML() string {
	var buf bytes.Buffer
	_ = writeNode(&buf, n, HTMLOptions{})
	return buf.String()
}

// InnerHTML serializes n's children.
func (n *Node) InnerHTML() string {
	var buf bytes.Buffer
	for _, c := range n.children {
		_ = writeNode(&buf, c, HTMLOptions{})
	}
	return buf.String()
}

// WriteHTML streams the document body to w.
func (d *Document) WriteHTML(w io.Writer, opts HTMLOptions) error {
	return writeNode(w, d.body, opts)
}

// HTML returns the serialized body.
func (d *Document) HTML(opts HTMLOptions) string {
	var buf bytes.Buffer
	_ = d.WriteHTML(&buf, opts)
	return buf.String()
}

func writeNode(w io.Writer, n *Node, opts HTMLOptions) error {
	if n.typ == TextNode {
		_, err := io.WriteString(w, escapeHTML(n.text))
		return err
	}

	if _, err := fmt.Fprintf(w, "<%s", n.tag); err != nil {
		return err
	}
	if err := writeAttrs(w, n, opts); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if voidElements[n.tag] {
		return nil
	}
	for _, c := range n.children {
		if err := writeNode(w, c, opts); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "</%s>", n.tag)
	return err
}

// writeAttrs writes class, style, data-* and plain attributes. Everything
// except the class list is sorted for deterministic output.
func writeAttrs(w io.Writer, n *Node, opts HTMLOptions) error {
	var attrs []string

	if opts.IDs {
		attrs = append(attrs, fmt.Sprintf(`data-vid="%d"`, n.id))
	}
	if len(n.classes) > 0 {
		attrs = append(attrs, fmt.Sprintf(`class="%s"`, escapeAttr(strings.Join(n.classes, " "))))
	}
	if len(n.style) > 0 {
		attrs = append(attrs, fmt.Sprintf(`style="%s"`, escapeAttr(styleText(n.style))))
	}
	for _, k := range sortedKeys(n.data) {
		attrs = append(attrs, fmt.Sprintf(`data-%s="%s"`, k, escapeAttr(n.data[k])))
	}
	for _, k := range sortedKeys(n.attrs) {
		if v := n.attrs[k]; v == "" {
			attrs = append(attrs, k)
		} else {
			attrs = append(attrs, fmt.Sprintf(`%s="%s"`, k, escapeAttr(v)))
		}
	}
	if opts.Listeners {
		for _, ev := range n.Events() {
			attrs = append(attrs, fmt.Sprintf(`data-on-%s="true"`, ev))
		}
	}

	for _, a := range attrs {
		if _, err := io.WriteString(w, " "+a); err != nil {
			return err
		}
	}
	return nil
}

func styleText(style map[string]string) string {
	var b strings.Builder
	for i, k := range sortedKeys(style) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(style[k])
		b.WriteByte(';')
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// escapeHTML escapes text content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// escapeAttr also escapes whitespace that would break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteString(escapeHTML(string(r)))
		}
	}
	return buf.String()
}
