package dom

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Attr is a single element attribute. Attributes are kept as an ordered
// sequence, matching the DOM's own enumeration order.
type Attr struct {
	Name  string
	Value string
}

// Node is one node of the extracted tree: either *Text or *Element.
type Node interface {
	isNode()
}

// Text is a text node. Text is always whitespace-collapsed and trimmed;
// the extractor never materializes a Text with empty content.
type Text struct {
	Text string
}

func (*Text) isNode() {}

// Element is an element node. Value carries the current value of eligible
// form controls (string or float64) and is nil for everything else.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
	Value    any
}

func (*Element) isNode() {}

// MarshalJSON renders a text node as {"text": ...}.
func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Text string `json:"text"`
	}{Text: t.Text})
}

// MarshalJSON renders an element with its attributes as a JSON object whose
// keys preserve attribute order. encoding/json maps would reorder keys, so
// the object is built by hand.
func (e *Element) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"tagName":`)
	writeJSONString(&buf, e.Tag)

	buf.WriteString(`,"attributes":{`)
	for i, attr := range e.Attrs {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, attr.Name)
		buf.WriteByte(':')
		writeJSONString(&buf, attr.Value)
	}
	buf.WriteByte('}')

	if e.Value != nil {
		buf.WriteString(`,"value":`)
		encoded, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode element value: %w", err)
		}
		buf.Write(encoded)
	}

	buf.WriteString(`,"children":[`)
	for i, child := range e.Children {
		if i > 0 {
			buf.WriteByte(',')
		}
		encoded, err := json.Marshal(child)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteString(`]}`)

	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	encoded, _ := json.Marshal(s)
	buf.Write(encoded)
}
