package dom

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects a serialization mode.
type Format string

const (
	// FormatTree emits the extracted tree as structured JSON.
	FormatTree Format = "tree"

	// FormatOutline emits indented pseudo-markup text.
	FormatOutline Format = "outline"
)

// indentUnit is the outline indent step. Visual indent advances by one
// unit every two levels of nesting.
const indentUnit = "  "

// Serialize renders an extracted tree in the requested format. A nil root
// serializes to an empty document representation.
func Serialize(root *Element, format Format) (string, error) {
	switch format {
	case FormatTree:
		if root == nil {
			return "{}", nil
		}
		encoded, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode tree: %w", err)
		}
		return string(encoded), nil
	case FormatOutline:
		if root == nil {
			return "", nil
		}
		var b strings.Builder
		writeOutline(&b, root, 0)
		return b.String(), nil
	default:
		return "", fmt.Errorf("unknown serialization format: %q", format)
	}
}

func writeOutline(b *strings.Builder, node Node, depth int) {
	indent := strings.Repeat(indentUnit, depth/2)

	switch n := node.(type) {
	case *Text:
		b.WriteString(indent)
		b.WriteString(n.Text)
		b.WriteByte('\n')
	case *Element:
		tag := strings.ToLower(n.Tag)
		open := openTag(tag, n)

		// Compactness special case: a link wrapping a single text node goes
		// on one line.
		if tag == "a" && len(n.Children) == 1 {
			if text, ok := n.Children[0].(*Text); ok {
				fmt.Fprintf(b, "%s%s%s</%s>\n", indent, open, text.Text, tag)
				return
			}
		}

		b.WriteString(indent)
		b.WriteString(open)
		b.WriteByte('\n')
		for _, child := range n.Children {
			writeOutline(b, child, depth+1)
		}
		fmt.Fprintf(b, "%s</%s>\n", indent, tag)
	}
}

func openTag(tag string, n *Element) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	for _, attr := range n.Attrs {
		fmt.Fprintf(&b, " %s=%q", attr.Name, attr.Value)
	}
	if n.Value != nil {
		fmt.Fprintf(&b, ` value="%v"`, n.Value)
	}
	b.WriteByte('>')
	return b.String()
}
