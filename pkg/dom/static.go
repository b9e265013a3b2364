package dom

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML builds a snapshot from static HTML, rooted at the document
// body. Static markup carries no shadow roots or slot assignments, so the
// resulting snapshot exercises the light-DOM portion of the walker only.
// Form-control values reflect the authored markup, the same state a
// freshly loaded document would report.
func FromHTML(r io.Reader) (*RawNode, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	body := findBody(doc)
	if body == nil {
		return nil, fmt.Errorf("document has no body element")
	}

	return convertHTMLNode(body), nil
}

// FromHTMLString is FromHTML over an in-memory document.
func FromHTMLString(s string) (*RawNode, error) {
	return FromHTML(strings.NewReader(s))
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

func convertHTMLNode(n *html.Node) *RawNode {
	switch n.Type {
	case html.TextNode:
		return &RawNode{Kind: KindText, Text: n.Data}
	case html.ElementNode:
		node := &RawNode{
			Kind: KindElement,
			Tag:  strings.ToUpper(n.Data),
		}
		for _, attr := range n.Attr {
			node.Attrs = append(node.Attrs, Attr{Name: attr.Key, Value: attr.Val})
		}
		node.Control = staticControlValue(node, n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convertHTMLNode(c); child != nil {
				node.Children = append(node.Children, child)
			}
		}
		return node
	default:
		// Comments, doctypes and friends contribute nothing.
		return nil
	}
}

// staticControlValue derives the initial control value the live DOM would
// report for a freshly parsed document.
func staticControlValue(node *RawNode, n *html.Node) *ControlValue {
	switch node.Tag {
	case "INPUT", "BUTTON", "OPTION":
		for _, attr := range node.Attrs {
			if attr.Name == "value" {
				return &ControlValue{Text: attr.Value}
			}
		}
	case "LI":
		for _, attr := range node.Attrs {
			if attr.Name == "value" {
				if num, err := strconv.ParseFloat(strings.TrimSpace(attr.Value), 64); err == nil {
					return &ControlValue{Number: num, Numeric: true}
				}
			}
		}
	case "TEXTAREA":
		var text strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				text.WriteString(c.Data)
			}
		}
		if text.Len() > 0 {
			return &ControlValue{Text: text.String()}
		}
	}
	return nil
}
