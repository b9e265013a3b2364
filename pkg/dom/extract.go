package dom

import (
	"strconv"
	"strings"
)

// IDAttr is the synthetic attribute carrying the identifier assigned to
// every kept element, unique and strictly increasing in preorder within
// one extraction.
const IDAttr = "_id"

// prunedTags are dropped together with their entire subtree. The set is
// the union of both historical noise lists.
var prunedTags = map[string]bool{
	"STYLE":    true,
	"SCRIPT":   true,
	"NOSCRIPT": true,
	"LINK":     true,
	"META":     true,
	"HEAD":     true,
	"CODE":     true,
	"SVG":      true,
	"FONT":     true,
	"BR":       true,
}

// valueTags are the form-control-like elements eligible for value
// extraction.
var valueTags = map[string]bool{
	"BUTTON":   true,
	"INPUT":    true,
	"TEXTAREA": true,
	"LI":       true,
	"OPTION":   true,
}

type verdict int

const (
	keepNode verdict = iota
	skipNode
	pruneNode
)

// classify decides what to do with an element given the slot currently
// being traversed through. Text nodes never reach classification; they are
// handled by the text rule in walk.
func classify(n *RawNode, slot *RawNode) (verdict, error) {
	if n.Tag == "IFRAME" {
		return pruneNode, &UnsupportedElementError{Tag: n.Tag}
	}
	if prunedTags[n.Tag] {
		return pruneNode, nil
	}
	if hasAttr(n, "type", "hidden") || hasAttr(n, "disabled", "true") || hasAttr(n, "aria-hidden", "true") {
		return pruneNode, nil
	}
	// An element assigned to some other slot is rendered there, not here.
	// Traversing through its own slot is the one path that keeps it.
	if n.AssignedSlot != nil && n.AssignedSlot != slot {
		return skipNode, nil
	}
	return keepNode, nil
}

func hasAttr(n *RawNode, name, value string) bool {
	for _, attr := range n.Attrs {
		if attr.Name == name && attr.Value == value {
			return true
		}
	}
	return false
}

// collapseSpace trims and collapses runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeAttrs filters and cleans the authored attributes of a kept
// element, preserving DOM enumeration order. Values that trim to empty are
// dropped, as are the two boilerplate defaults (role="presentation",
// type="button" on BUTTON).
func normalizeAttrs(n *RawNode) []Attr {
	var out []Attr
	for _, attr := range n.Attrs {
		value := collapseSpace(attr.Value)
		if value == "" {
			continue
		}
		if attr.Name == "role" && value == "presentation" {
			continue
		}
		if n.Tag == "BUTTON" && attr.Name == "type" && value == "button" {
			continue
		}
		// Non-input controls report their value through the value field;
		// keeping the authored attribute too would double it up.
		if attr.Name == "value" && n.Tag != "INPUT" && valueTags[n.Tag] {
			continue
		}
		out = append(out, Attr{Name: attr.Name, Value: value})
	}
	return out
}

// walker carries the per-extraction state: nothing but the identifier
// counter.
type walker struct {
	nextID int
}

// Extract walks a snapshot and builds the compressed tree. The returned
// element is nil when the root itself was pruned. Encountering an IFRAME
// anywhere aborts with *UnsupportedElementError and no partial tree.
func Extract(root *RawNode) (*Element, error) {
	w := &walker{nextID: 1}
	node, err := w.walk(root, nil)
	if err != nil {
		return nil, err
	}
	element, _ := node.(*Element)
	return element, nil
}

// walk visits one node depth-first. slot is the <slot> element currently
// being traversed through, nil outside any slot projection; threading it
// through the recursion is what keeps each slotted element to a single
// emission.
func (w *walker) walk(n *RawNode, slot *RawNode) (Node, error) {
	if n.Kind == KindText {
		text := collapseSpace(n.Text)
		if text == "" {
			return nil, nil
		}
		return &Text{Text: text}, nil
	}

	v, err := classify(n, slot)
	if err != nil {
		return nil, err
	}
	if v != keepNode {
		return nil, nil
	}

	id := strconv.Itoa(w.nextID)
	w.nextID++

	attrs := make([]Attr, 0, len(n.Attrs)+2)
	attrs = append(attrs, Attr{Name: IDAttr, Value: id})
	attrs = append(attrs, normalizeAttrs(n)...)

	// An input's current value always rides along as a synthetic attribute,
	// even when it duplicates an authored one.
	if n.Tag == "INPUT" && n.Control != nil {
		if value := collapseSpace(n.Control.Text); value != "" {
			attrs = append(attrs, Attr{Name: "value", Value: value})
		}
	}

	// Child sources in order: light DOM, then shadow root content, then the
	// nodes projected into this element when it is a slot.
	sources := make([]*RawNode, 0, len(n.Children)+len(n.Shadow)+len(n.Assigned))
	sources = append(sources, n.Children...)
	sources = append(sources, n.Shadow...)
	if n.Tag == "SLOT" {
		sources = append(sources, n.Assigned...)
	}

	childSlot := slot
	if n.Tag == "SLOT" {
		childSlot = n
	}

	var children []Node
	for _, source := range sources {
		child, err := w.walk(source, childSlot)
		if err != nil {
			return nil, err
		}
		if child != nil {
			children = append(children, child)
		}
	}

	element := &Element{
		Tag:      n.Tag,
		Attrs:    attrs,
		Children: children,
	}

	if n.Tag != "INPUT" && valueTags[n.Tag] && n.Control != nil {
		if n.Control.Numeric {
			element.Value = n.Control.Number
		} else if value := collapseSpace(n.Control.Text); value != "" {
			element.Value = value
		}
	}

	return element, nil
}
