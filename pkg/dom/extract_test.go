package dom

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

// extractHTML parses static HTML and runs the extractor over it.
func extractHTML(t *testing.T, source string) (*Element, error) {
	t.Helper()
	snapshot, err := FromHTMLString(source)
	if err != nil {
		t.Fatalf("FromHTMLString failed: %v", err)
	}
	return Extract(snapshot)
}

func mustExtractHTML(t *testing.T, source string) *Element {
	t.Helper()
	tree, err := extractHTML(t, source)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if tree == nil {
		t.Fatal("Extract returned nil tree")
	}
	return tree
}

// collectTags gathers every element tag in the tree, preorder.
func collectTags(n Node, out *[]string) {
	el, ok := n.(*Element)
	if !ok {
		return
	}
	*out = append(*out, el.Tag)
	for _, child := range el.Children {
		collectTags(child, out)
	}
}

// collectTexts gathers every text payload in the tree, preorder.
func collectTexts(n Node, out *[]string) {
	switch node := n.(type) {
	case *Text:
		*out = append(*out, node.Text)
	case *Element:
		for _, child := range node.Children {
			collectTexts(child, out)
		}
	}
}

// collectIDs gathers the synthetic identifier of every element, preorder.
func collectIDs(n Node, out *[]string) {
	el, ok := n.(*Element)
	if !ok {
		return
	}
	for _, attr := range el.Attrs {
		if attr.Name == IDAttr {
			*out = append(*out, attr.Value)
		}
	}
	for _, child := range el.Children {
		collectIDs(child, out)
	}
}

func TestExtractPrunesNoiseSubtrees(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		absent  []string
		present []string
	}{
		{
			name:    "script subtree fully absent",
			source:  `<div><script>x</script><p>Hello   world</p></div>`,
			absent:  []string{"SCRIPT"},
			present: []string{"BODY", "DIV", "P"},
		},
		{
			name:    "style and noscript",
			source:  `<div><style>p{}</style><noscript>off</noscript><span>on</span></div>`,
			absent:  []string{"STYLE", "NOSCRIPT"},
			present: []string{"DIV", "SPAN"},
		},
		{
			name:    "svg and code",
			source:  `<main><svg><circle></circle></svg><code>x = 1</code><p>kept</p></main>`,
			absent:  []string{"SVG", "CIRCLE", "CODE"},
			present: []string{"MAIN", "P"},
		},
		{
			name:    "font and br from the strict set",
			source:  `<p>one<br>two<font>styled</font></p>`,
			absent:  []string{"BR", "FONT"},
			present: []string{"P"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustExtractHTML(t, tt.source)
			var tags []string
			collectTags(tree, &tags)
			for _, tag := range tt.absent {
				for _, got := range tags {
					if got == tag {
						t.Errorf("pruned tag %s present in output tags %v", tag, tags)
					}
				}
			}
			for _, tag := range tt.present {
				found := false
				for _, got := range tags {
					if got == tag {
						found = true
					}
				}
				if !found {
					t.Errorf("expected tag %s in output tags %v", tag, tags)
				}
			}
		})
	}
}

func TestExtractScriptScenario(t *testing.T) {
	tree := mustExtractHTML(t, `<div><script>x</script><p>Hello   world</p></div>`)

	if len(tree.Children) != 1 {
		t.Fatalf("body should hold one child, got %d", len(tree.Children))
	}
	div := tree.Children[0].(*Element)
	if div.Tag != "DIV" || len(div.Children) != 1 {
		t.Fatalf("expected DIV with one child, got %s with %d", div.Tag, len(div.Children))
	}
	p := div.Children[0].(*Element)
	if p.Tag != "P" || len(p.Children) != 1 {
		t.Fatalf("expected P with one child, got %s with %d", p.Tag, len(p.Children))
	}
	text := p.Children[0].(*Text)
	if text.Text != "Hello world" {
		t.Errorf("expected collapsed text %q, got %q", "Hello world", text.Text)
	}
}

func TestExtractDropsWhitespaceText(t *testing.T) {
	tree := mustExtractHTML(t, "<div>   \n\t  <p>real</p>  \n </div>")

	var texts []string
	collectTexts(tree, &texts)
	if len(texts) != 1 || texts[0] != "real" {
		t.Errorf("expected only %q, got %v", "real", texts)
	}
}

func TestExtractPrunesHiddenAndDisabled(t *testing.T) {
	tests := []struct {
		name   string
		source string
		absent string
	}{
		{"hidden input", `<form><input type="hidden" value="secret"><input type="text"></form>`, "secret"},
		{"aria-hidden subtree", `<div aria-hidden="true"><p>invisible</p></div><p>visible</p>`, "invisible"},
		{"disabled element", `<button disabled="true">nope</button><button>yes</button>`, "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustExtractHTML(t, tt.source)
			payload, err := Serialize(tree, FormatTree)
			if err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}
			if strings.Contains(payload, tt.absent) {
				t.Errorf("output should not contain %q:\n%s", tt.absent, payload)
			}
		})
	}
}

func TestExtractAttributeRules(t *testing.T) {
	tree := mustExtractHTML(t,
		`<div class="  card   main " data-empty="   " role="presentation" title="ok">`+
			`<button type="button" name="go">Go</button>`+
			`<button type="submit">Send</button>`+
			`</div>`)

	div := tree.Children[0].(*Element)
	attrNames := make(map[string]string)
	for _, attr := range div.Attrs {
		attrNames[attr.Name] = attr.Value
	}
	if attrNames["class"] != "card main" {
		t.Errorf("class should collapse whitespace, got %q", attrNames["class"])
	}
	if _, ok := attrNames["data-empty"]; ok {
		t.Error("attribute with empty value should be dropped")
	}
	if _, ok := attrNames["role"]; ok {
		t.Error(`role="presentation" should be elided`)
	}
	if attrNames["title"] != "ok" {
		t.Errorf("title should survive, got %q", attrNames["title"])
	}

	buttons := []*Element{div.Children[0].(*Element), div.Children[1].(*Element)}
	for _, attr := range buttons[0].Attrs {
		if attr.Name == "type" {
			t.Error(`type="button" on BUTTON should be elided`)
		}
	}
	foundSubmit := false
	for _, attr := range buttons[1].Attrs {
		if attr.Name == "type" && attr.Value == "submit" {
			foundSubmit = true
		}
	}
	if !foundSubmit {
		t.Error(`type="submit" on BUTTON should be kept`)
	}
}

func TestExtractAttributeOrderFollowsSource(t *testing.T) {
	tree := mustExtractHTML(t, `<p id="a" class="b" title="c">x</p>`)

	p := tree.Children[0].(*Element)
	var names []string
	for _, attr := range p.Attrs {
		names = append(names, attr.Name)
	}
	want := []string{IDAttr, "id", "class", "title"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("attribute order %v, want %v", names, want)
	}
}

func TestExtractInputValueBecomesAttribute(t *testing.T) {
	tree := mustExtractHTML(t, `<input type="text" value="  a   b ">`)

	input := tree.Children[0].(*Element)
	if input.Value != nil {
		t.Errorf("input must never populate the value field, got %v", input.Value)
	}
	found := false
	for _, attr := range input.Attrs {
		if attr.Name == "value" && attr.Value == "a b" {
			found = true
		}
	}
	if !found {
		t.Errorf("normalized input value missing from attributes: %v", input.Attrs)
	}
}

func TestExtractControlValues(t *testing.T) {
	tree := mustExtractHTML(t,
		`<ol><li value="3">third</li></ol>`+
			`<button value="go">Go</button>`+
			`<select><option value="x">X</option></select>`+
			`<textarea>  note  text </textarea>`)

	ol := tree.Children[0].(*Element)
	li := ol.Children[0].(*Element)
	if li.Value != 3.0 {
		t.Errorf("list item should carry numeric value 3, got %v", li.Value)
	}

	button := tree.Children[1].(*Element)
	if button.Value != "go" {
		t.Errorf("button value should be %q, got %v", "go", button.Value)
	}

	sel := tree.Children[2].(*Element)
	option := sel.Children[0].(*Element)
	if option.Value != "x" {
		t.Errorf("option value should be %q, got %v", "x", option.Value)
	}

	textarea := tree.Children[3].(*Element)
	if textarea.Value != "note text" {
		t.Errorf("textarea value should be normalized to %q, got %v", "note text", textarea.Value)
	}

	// DIV is not value-eligible even when the snapshot carries a control value.
	snapshot := &RawNode{
		Kind: KindElement, Tag: "BODY",
		Children: []*RawNode{{
			Kind: KindElement, Tag: "DIV",
			Control: &ControlValue{Text: "nope"},
		}},
	}
	extracted, err := Extract(snapshot)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	div := extracted.Children[0].(*Element)
	if div.Value != nil {
		t.Errorf("ineligible element must not populate value, got %v", div.Value)
	}
}

func TestExtractIdentifiers(t *testing.T) {
	tree := mustExtractHTML(t,
		`<div><p>a</p><p>b</p></div><section><span>c</span></section>`)

	var ids []string
	collectIDs(tree, &ids)

	seen := make(map[string]bool)
	prev := 0
	for i, id := range ids {
		if seen[id] {
			t.Errorf("duplicate identifier %q", id)
		}
		seen[id] = true
		n, err := strconv.Atoi(id)
		if err != nil {
			t.Fatalf("identifier %q is not numeric", id)
		}
		if n <= prev {
			t.Errorf("identifiers not strictly increasing at position %d: %v", i, ids)
		}
		prev = n
	}
	if len(ids) == 0 || ids[0] != "1" {
		t.Errorf("identifier sequence should start at %q, got %v", "1", ids)
	}
}

func TestExtractIdempotent(t *testing.T) {
	source := `<div id="x"><p>one</p><ul><li>a</li><li>b</li></ul><a href="/y">go</a></div>`

	first := mustExtractHTML(t, source)
	second := mustExtractHTML(t, source)

	firstOut, err := Serialize(first, FormatTree)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	secondOut, err := Serialize(second, FormatTree)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if firstOut != secondOut {
		t.Errorf("extracting an unchanged document twice diverged:\n%s\n---\n%s", firstOut, secondOut)
	}
}

func TestExtractIframeFailsWholeExtraction(t *testing.T) {
	tests := []string{
		`<iframe src="https://example.com"></iframe>`,
		`<div><section><iframe src="/inner"></iframe></section></div>`,
	}

	for _, source := range tests {
		tree, err := extractHTML(t, source)
		if err == nil {
			t.Fatalf("expected error for %q", source)
		}
		if tree != nil {
			t.Error("no partial tree may be returned on failure")
		}
		var unsupported *UnsupportedElementError
		if !errors.As(err, &unsupported) {
			t.Errorf("expected *UnsupportedElementError, got %T: %v", err, err)
		}
	}
}

func TestExtractShadowAndSlotProjection(t *testing.T) {
	// <x-card> hosts a shadow root containing a named slot; its light-DOM
	// child <span slot="s">Hi</span> is assigned to that slot.
	span := &RawNode{
		Kind:  KindElement,
		Tag:   "SPAN",
		Attrs: []Attr{{Name: "slot", Value: "s"}},
		Children: []*RawNode{
			{Kind: KindText, Text: "Hi"},
		},
	}
	slot := &RawNode{
		Kind:     KindElement,
		Tag:      "SLOT",
		Attrs:    []Attr{{Name: "name", Value: "s"}},
		Assigned: []*RawNode{span},
	}
	span.AssignedSlot = slot

	body := &RawNode{
		Kind: KindElement,
		Tag:  "BODY",
		Children: []*RawNode{{
			Kind:     KindElement,
			Tag:      "X-CARD",
			Children: []*RawNode{span},
			Shadow:   []*RawNode{slot},
		}},
	}

	tree, err := Extract(body)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var texts []string
	collectTexts(tree, &texts)
	if len(texts) != 1 || texts[0] != "Hi" {
		t.Fatalf("slotted content should appear exactly once, got %v", texts)
	}

	card := tree.Children[0].(*Element)
	if card.Tag != "X-CARD" {
		t.Fatalf("expected X-CARD, got %s", card.Tag)
	}
	// The span must hang under the slot, not in its light-DOM position.
	if len(card.Children) != 1 {
		t.Fatalf("host should hold only the slot, got %d children", len(card.Children))
	}
	slotEl := card.Children[0].(*Element)
	if slotEl.Tag != "SLOT" {
		t.Fatalf("expected SLOT under host, got %s", slotEl.Tag)
	}
	projected := slotEl.Children[0].(*Element)
	if projected.Tag != "SPAN" {
		t.Fatalf("expected projected SPAN under slot, got %s", projected.Tag)
	}
}

func TestExtractShadowChildrenFollowLightChildren(t *testing.T) {
	host := &RawNode{
		Kind: KindElement,
		Tag:  "X-NOTE",
		Children: []*RawNode{
			{Kind: KindElement, Tag: "EM", Children: []*RawNode{{Kind: KindText, Text: "light"}}},
		},
		Shadow: []*RawNode{
			{Kind: KindElement, Tag: "STRONG", Children: []*RawNode{{Kind: KindText, Text: "shadow"}}},
		},
	}
	body := &RawNode{Kind: KindElement, Tag: "BODY", Children: []*RawNode{host}}

	tree, err := Extract(body)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	hostEl := tree.Children[0].(*Element)
	if len(hostEl.Children) != 2 {
		t.Fatalf("expected light child then shadow child, got %d children", len(hostEl.Children))
	}
	if hostEl.Children[0].(*Element).Tag != "EM" || hostEl.Children[1].(*Element).Tag != "STRONG" {
		t.Error("light DOM children must precede shadow root children")
	}
}
