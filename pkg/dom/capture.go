package dom

import (
	"fmt"
)

// Evaluator runs a script expression inside the page and returns its
// result. It is the only contact the extraction core has with the live
// browser; pkg/browser's Manager satisfies it.
type Evaluator interface {
	Evaluate(expression string) (any, error)
}

// CaptureScript serializes the document body into the snapshot wire format
// inside the page and returns it as a JSON string. It records, per node:
// type, tag, attributes in enumeration order, form-control values, shadow
// root children, and slot assignment expressed through per-node refs.
//
// The script is deliberately dumb: no filtering, no de-duplication. All of
// that happens in the Go walker so the in-page portion stays thin glue.
const CaptureScript = `(() => {
  let nextRef = 0;
  const wired = [];

  const build = (node) => {
    if (node.nodeType === Node.TEXT_NODE) {
      return { ref: ++nextRef, kind: "text", text: node.data || "" };
    }
    if (node.nodeType !== Node.ELEMENT_NODE) {
      return null;
    }

    const out = { ref: ++nextRef, kind: "element", tag: node.tagName };
    wired.push([node, out]);

    const attrs = [];
    for (const attr of node.attributes) {
      attrs.push([attr.name, attr.value]);
    }
    if (attrs.length > 0) {
      out.attrs = attrs;
    }

    if (node instanceof HTMLLIElement) {
      out.num = node.value;
    } else if (
      node instanceof HTMLInputElement ||
      node instanceof HTMLTextAreaElement ||
      node instanceof HTMLButtonElement ||
      node instanceof HTMLOptionElement
    ) {
      out.value = String(node.value);
    }

    const children = [];
    for (const child of node.childNodes) {
      const built = build(child);
      if (built) children.push(built);
    }
    if (children.length > 0) {
      out.children = children;
    }

    if (node.shadowRoot) {
      const shadow = [];
      for (const child of node.shadowRoot.childNodes) {
        const built = build(child);
        if (built) shadow.push(built);
      }
      if (shadow.length > 0) {
        out.shadow = shadow;
      }
    }

    return out;
  };

  const root = build(document.body);

  const refOf = new Map(wired);
  for (const [node, out] of wired) {
    if (node.assignedSlot) {
      const slot = refOf.get(node.assignedSlot);
      if (slot) out.slot = slot.ref;
    }
    if (node.tagName === "SLOT") {
      const assigned = node
        .assignedElements()
        .map((el) => refOf.get(el))
        .filter((w) => w)
        .map((w) => w.ref);
      if (assigned.length > 0) out.assigned = assigned;
    }
  }

  return JSON.stringify(root);
})()`

// Capture runs CaptureScript through the evaluator and decodes the result
// into a snapshot rooted at the document body.
func Capture(ev Evaluator) (*RawNode, error) {
	result, err := ev.Evaluate(CaptureScript)
	if err != nil {
		return nil, fmt.Errorf("snapshot capture failed: %w", err)
	}

	payload, ok := result.(string)
	if !ok {
		return nil, fmt.Errorf("snapshot capture returned %T, expected string", result)
	}

	return DecodeSnapshot([]byte(payload))
}
