package dom

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a snapshot node. The walker never inspects concrete DOM
// classes; everything it needs is expressed as an explicit tagged query
// against the snapshot.
type Kind int

const (
	// KindElement is an element node.
	KindElement Kind = iota

	// KindText is a character-data node.
	KindText
)

// ControlValue is the current value of a form-control-like element at
// capture time. List items report a numeric ordinal; the other eligible
// controls report text.
type ControlValue struct {
	Text    string
	Number  float64
	Numeric bool
}

// RawNode is one node of a captured document snapshot. A snapshot is
// immutable once decoded; the extractor reads it and never writes back.
//
// Tag uses the DOM's canonical uppercase form ("DIV", "INPUT"). Children
// holds the light-DOM child nodes, Shadow the children of an attached
// shadow root, and Assigned the elements currently projected into this
// node when it is a <slot>. AssignedSlot points at the slot this element
// is assigned to, nil when it is not slotted.
type RawNode struct {
	Kind         Kind
	Tag          string
	Text         string
	Attrs        []Attr
	Control      *ControlValue
	Children     []*RawNode
	Shadow       []*RawNode
	Assigned     []*RawNode
	AssignedSlot *RawNode
}

// wireNode is the JSON shape produced by the in-page capture script. Node
// identity is expressed through small integer refs so slot assignment can
// be cross-referenced after decoding.
type wireNode struct {
	Ref      int         `json:"ref"`
	Kind     string      `json:"kind"`
	Tag      string      `json:"tag,omitempty"`
	Text     string      `json:"text,omitempty"`
	Attrs    [][2]string `json:"attrs,omitempty"`
	Value    *string     `json:"value,omitempty"`
	Num      *float64    `json:"num,omitempty"`
	Children []wireNode  `json:"children,omitempty"`
	Shadow   []wireNode  `json:"shadow,omitempty"`
	Slot     int         `json:"slot,omitempty"`
	Assigned []int       `json:"assigned,omitempty"`
}

// DecodeSnapshot parses the capture script's JSON payload into a RawNode
// tree and resolves slot cross-references. A ref that cannot be resolved
// contributes nothing, it is never an error.
func DecodeSnapshot(data []byte) (*RawNode, error) {
	var root wireNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	index := make(map[int]*RawNode)
	decoded := decodeWireNode(&root, index)
	if decoded == nil {
		return nil, fmt.Errorf("snapshot root is not a usable node")
	}

	resolveSlotRefs(&root, index)
	return decoded, nil
}

// decodeWireNode converts one wire node and its subtrees, registering every
// node in the ref index along the way.
func decodeWireNode(w *wireNode, index map[int]*RawNode) *RawNode {
	node := &RawNode{}

	switch w.Kind {
	case "text":
		node.Kind = KindText
		node.Text = w.Text
	case "element":
		node.Kind = KindElement
		node.Tag = w.Tag
		for _, pair := range w.Attrs {
			node.Attrs = append(node.Attrs, Attr{Name: pair[0], Value: pair[1]})
		}
		switch {
		case w.Num != nil:
			node.Control = &ControlValue{Number: *w.Num, Numeric: true}
		case w.Value != nil:
			node.Control = &ControlValue{Text: *w.Value}
		}
	default:
		return nil
	}

	index[w.Ref] = node

	for i := range w.Children {
		if child := decodeWireNode(&w.Children[i], index); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	for i := range w.Shadow {
		if child := decodeWireNode(&w.Shadow[i], index); child != nil {
			node.Shadow = append(node.Shadow, child)
		}
	}

	return node
}

// resolveSlotRefs walks the wire tree a second time, wiring AssignedSlot
// and Assigned pointers now that every ref is indexed.
func resolveSlotRefs(w *wireNode, index map[int]*RawNode) {
	node := index[w.Ref]
	if node != nil {
		if w.Slot != 0 {
			node.AssignedSlot = index[w.Slot]
		}
		for _, ref := range w.Assigned {
			if assigned := index[ref]; assigned != nil {
				node.Assigned = append(node.Assigned, assigned)
			}
		}
	}
	for i := range w.Children {
		resolveSlotRefs(&w.Children[i], index)
	}
	for i := range w.Shadow {
		resolveSlotRefs(&w.Shadow[i], index)
	}
}
