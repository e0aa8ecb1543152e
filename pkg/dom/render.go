package dom

import (
	"html"
	"io"
	"sort"
	"strings"
)

// voidTags are HTML elements that never carry children or a closing tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// RenderHTML serializes the subtree rooted at n as HTML.
//
// Output is deterministic: attributes render in sorted key order with the
// class list (in insertion order) first. Text content and attribute values
// are escaped.
func RenderHTML(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	var sb strings.Builder
	renderNode(&sb, n)
	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderString is RenderHTML into a string, for tests and small fragments.
func RenderString(n *Node) string {
	var sb strings.Builder
	renderNode(&sb, n)
	return sb.String()
}

func renderNode(sb *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	if n.Kind == KindText {
		sb.WriteString(html.EscapeString(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.Tag)

	if len(n.classes) > 0 {
		sb.WriteString(` class="`)
		sb.WriteString(html.EscapeString(strings.Join(n.classes, " ")))
		sb.WriteByte('"')
	}

	if len(n.attrs) > 0 {
		keys := make([]string, 0, len(n.attrs))
		for k := range n.attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(n.attrs[k]))
			sb.WriteByte('"')
		}
	}

	if voidTags[n.Tag] {
		sb.WriteString(">")
		return
	}

	sb.WriteByte('>')
	for _, child := range n.children {
		renderNode(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}
