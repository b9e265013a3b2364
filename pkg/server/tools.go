package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pagehand/pagehand/pkg/browser"
	"github.com/pagehand/pagehand/pkg/dom"
)

// registerTools adds every browser operation to the MCP server. Tools are
// independent of each other; all validation and error mapping happens at
// this boundary.
func (s *Server) registerTools(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "browser_navigate",
		Description: "Navigate the browser to a URL and wait for the page to load.",
	}, s.handleNavigate)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "browser_click",
		Description: "Click the first element matching a CSS selector, waiting for it to become visible first.",
	}, s.handleClick)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "browser_fill",
		Description: "Fill an input or textarea matching a CSS selector with a value.",
	}, s.handleFill)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "browser_select",
		Description: "Select an option by value in a select element matching a CSS selector.",
	}, s.handleSelect)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "browser_hover",
		Description: "Hover over the first element matching a CSS selector.",
	}, s.handleHover)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "browser_press",
		Description: "Send a keyboard key (e.g. 'Enter', 'Tab') to the element matching a CSS selector.",
	}, s.handlePress)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "browser_wait",
		Description: "Wait for the first element matching a CSS selector to reach a state: 'attached', 'detached', 'visible' (default) or 'hidden'.",
	}, s.handleWait)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "browser_screenshot",
		Description: "Capture a PNG screenshot of the page, or of one element, and store it under a name readable via the screenshot:// resources.",
	}, s.handleScreenshot)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "browser_evaluate",
		Description: "Run a JavaScript expression in the page and return its JSON-rendered result.",
	}, s.handleEvaluate)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "browser_snapshot",
		Description: "Extract a compact, deterministic tree of the current page DOM (shadow DOM and slot projections included). " +
			"format 'outline' (default) renders indented pseudo-markup; 'tree' renders structured JSON.",
	}, s.handleSnapshot)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "browser_close",
		Description: "Close the browser page and release its resources.",
	}, s.handleClose)
}

// NavigateInput is the input for browser_navigate.
type NavigateInput struct {
	URL       string `json:"url" jsonschema:"URL to navigate to, including protocol"`
	WaitUntil string `json:"wait_until,omitempty" jsonschema:"when navigation counts as done: load (default), domcontentloaded or networkidle"`
}

// NavigateOutput reports the landed page.
type NavigateOutput struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (s *Server) handleNavigate(ctx context.Context, req *mcp.CallToolRequest, input NavigateInput) (*mcp.CallToolResult, NavigateOutput, error) {
	if input.URL == "" {
		return errorResult("url is required"), NavigateOutput{}, nil
	}

	waitUntil := input.WaitUntil
	if waitUntil == "" {
		waitUntil = "load"
	}
	switch waitUntil {
	case "load", "domcontentloaded", "networkidle":
	default:
		return errorResult(fmt.Sprintf("invalid wait_until value: %q", input.WaitUntil)), NavigateOutput{}, nil
	}

	if err := s.manager.Navigate(input.URL, browser.NavigateOptions{WaitUntil: waitUntil}); err != nil {
		return errorResult(err.Error()), NavigateOutput{}, nil
	}

	out := NavigateOutput{URL: s.manager.URL(), Title: s.manager.Title()}
	return textResult(fmt.Sprintf("Navigated to %s (%q)", out.URL, out.Title)), out, nil
}

// SelectorInput is the input for single-selector interactions.
type SelectorInput struct {
	Selector string `json:"selector" jsonschema:"CSS selector identifying the target element"`
}

// ActionOutput reports the page URL after an interaction, since clicks and
// key presses may navigate.
type ActionOutput struct {
	URL string `json:"url"`
}

func (s *Server) handleClick(ctx context.Context, req *mcp.CallToolRequest, input SelectorInput) (*mcp.CallToolResult, ActionOutput, error) {
	if input.Selector == "" {
		return errorResult("selector is required"), ActionOutput{}, nil
	}
	if err := s.manager.Click(input.Selector); err != nil {
		return errorResult(err.Error()), ActionOutput{}, nil
	}
	out := ActionOutput{URL: s.manager.URL()}
	return textResult(fmt.Sprintf("Clicked %q", input.Selector)), out, nil
}

// FillInput is the input for browser_fill.
type FillInput struct {
	Selector string `json:"selector" jsonschema:"CSS selector identifying the input element"`
	Value    string `json:"value" jsonschema:"text value to fill in"`
}

func (s *Server) handleFill(ctx context.Context, req *mcp.CallToolRequest, input FillInput) (*mcp.CallToolResult, ActionOutput, error) {
	if input.Selector == "" {
		return errorResult("selector is required"), ActionOutput{}, nil
	}
	if err := s.manager.Fill(input.Selector, input.Value); err != nil {
		return errorResult(err.Error()), ActionOutput{}, nil
	}
	out := ActionOutput{URL: s.manager.URL()}
	return textResult(fmt.Sprintf("Filled %q", input.Selector)), out, nil
}

// SelectInput is the input for browser_select.
type SelectInput struct {
	Selector string `json:"selector" jsonschema:"CSS selector identifying the select element"`
	Value    string `json:"value" jsonschema:"option value to select"`
}

func (s *Server) handleSelect(ctx context.Context, req *mcp.CallToolRequest, input SelectInput) (*mcp.CallToolResult, ActionOutput, error) {
	if input.Selector == "" {
		return errorResult("selector is required"), ActionOutput{}, nil
	}
	if err := s.manager.SelectOption(input.Selector, input.Value); err != nil {
		return errorResult(err.Error()), ActionOutput{}, nil
	}
	out := ActionOutput{URL: s.manager.URL()}
	return textResult(fmt.Sprintf("Selected %q in %q", input.Value, input.Selector)), out, nil
}

func (s *Server) handleHover(ctx context.Context, req *mcp.CallToolRequest, input SelectorInput) (*mcp.CallToolResult, ActionOutput, error) {
	if input.Selector == "" {
		return errorResult("selector is required"), ActionOutput{}, nil
	}
	if err := s.manager.Hover(input.Selector); err != nil {
		return errorResult(err.Error()), ActionOutput{}, nil
	}
	out := ActionOutput{URL: s.manager.URL()}
	return textResult(fmt.Sprintf("Hovering over %q", input.Selector)), out, nil
}

// PressInput is the input for browser_press.
type PressInput struct {
	Selector string `json:"selector" jsonschema:"CSS selector identifying the target element"`
	Key      string `json:"key" jsonschema:"key to press, e.g. Enter, Tab, ArrowDown"`
}

func (s *Server) handlePress(ctx context.Context, req *mcp.CallToolRequest, input PressInput) (*mcp.CallToolResult, ActionOutput, error) {
	if input.Selector == "" {
		return errorResult("selector is required"), ActionOutput{}, nil
	}
	if input.Key == "" {
		return errorResult("key is required"), ActionOutput{}, nil
	}
	if err := s.manager.Press(input.Selector, input.Key); err != nil {
		return errorResult(err.Error()), ActionOutput{}, nil
	}
	out := ActionOutput{URL: s.manager.URL()}
	return textResult(fmt.Sprintf("Pressed %q on %q", input.Key, input.Selector)), out, nil
}

// WaitInput is the input for browser_wait.
type WaitInput struct {
	Selector string `json:"selector" jsonschema:"CSS selector to wait for"`
	State    string `json:"state,omitempty" jsonschema:"state to wait for: attached, detached, visible (default) or hidden"`
}

func (s *Server) handleWait(ctx context.Context, req *mcp.CallToolRequest, input WaitInput) (*mcp.CallToolResult, ActionOutput, error) {
	if input.Selector == "" {
		return errorResult("selector is required"), ActionOutput{}, nil
	}
	switch input.State {
	case "", "attached", "detached", "visible", "hidden":
	default:
		return errorResult(fmt.Sprintf("invalid state: %q", input.State)), ActionOutput{}, nil
	}
	if err := s.manager.WaitFor(input.Selector, input.State); err != nil {
		return errorResult(err.Error()), ActionOutput{}, nil
	}
	out := ActionOutput{URL: s.manager.URL()}
	return textResult(fmt.Sprintf("Element %q reached state %q", input.Selector, input.State)), out, nil
}

// ScreenshotInput is the input for browser_screenshot.
type ScreenshotInput struct {
	Name     string `json:"name" jsonschema:"name to store the screenshot under"`
	Selector string `json:"selector,omitempty" jsonschema:"optional CSS selector to capture a single element"`
	FullPage bool   `json:"full_page,omitempty" jsonschema:"capture the whole scrollable page"`
}

// ScreenshotOutput reports the stored capture.
type ScreenshotOutput struct {
	Name  string `json:"name"`
	Bytes int    `json:"bytes"`
}

func (s *Server) handleScreenshot(ctx context.Context, req *mcp.CallToolRequest, input ScreenshotInput) (*mcp.CallToolResult, ScreenshotOutput, error) {
	if input.Name == "" {
		return errorResult("name is required"), ScreenshotOutput{}, nil
	}

	data, err := s.manager.Screenshot(browser.ScreenshotOptions{
		Selector: input.Selector,
		FullPage: input.FullPage,
	})
	if err != nil {
		return errorResult(err.Error()), ScreenshotOutput{}, nil
	}

	s.shots.Put(input.Name, data)
	out := ScreenshotOutput{Name: input.Name, Bytes: len(data)}

	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Screenshot %q captured (%d bytes)", input.Name, len(data))},
			&mcp.ImageContent{Data: data, MIMEType: "image/png"},
		},
	}
	return result, out, nil
}

// EvaluateInput is the input for browser_evaluate.
type EvaluateInput struct {
	Script string `json:"script" jsonschema:"JavaScript expression to run in the page"`
}

// EvaluateOutput carries the JSON-rendered script result.
type EvaluateOutput struct {
	Result string `json:"result"`
}

func (s *Server) handleEvaluate(ctx context.Context, req *mcp.CallToolRequest, input EvaluateInput) (*mcp.CallToolResult, EvaluateOutput, error) {
	if input.Script == "" {
		return errorResult("script is required"), EvaluateOutput{}, nil
	}

	result, err := s.manager.Evaluate(input.Script)
	if err != nil {
		return errorResult(err.Error()), EvaluateOutput{}, nil
	}

	rendered := "undefined"
	if result != nil {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			rendered = fmt.Sprintf("%v", result)
		} else {
			rendered = string(encoded)
		}
	}

	out := EvaluateOutput{Result: rendered}
	return textResult(rendered), out, nil
}

// SnapshotInput is the input for browser_snapshot.
type SnapshotInput struct {
	Format string `json:"format,omitempty" jsonschema:"serialization format: outline (default) or tree"`
}

// SnapshotOutput reports the serialized snapshot size.
type SnapshotOutput struct {
	Format string `json:"format"`
	Bytes  int    `json:"bytes"`
}

func (s *Server) handleSnapshot(ctx context.Context, req *mcp.CallToolRequest, input SnapshotInput) (*mcp.CallToolResult, SnapshotOutput, error) {
	format := dom.FormatOutline
	switch input.Format {
	case "", "outline":
	case "tree":
		format = dom.FormatTree
	default:
		return errorResult(fmt.Sprintf("invalid format: %q", input.Format)), SnapshotOutput{}, nil
	}

	snapshot, err := dom.Capture(s.manager)
	if err != nil {
		return errorResult(err.Error()), SnapshotOutput{}, nil
	}

	tree, err := dom.Extract(snapshot)
	if err != nil {
		// An unsupported element aborts the whole extraction; no partial
		// tree is returned.
		return errorResult(err.Error()), SnapshotOutput{}, nil
	}

	payload, err := dom.Serialize(tree, format)
	if err != nil {
		return errorResult(err.Error()), SnapshotOutput{}, nil
	}

	if s.cfg.SnapshotWarnBytes > 0 && len(payload) > s.cfg.SnapshotWarnBytes {
		s.log.Warnf("snapshot payload is %d bytes (threshold %d) for %s",
			len(payload), s.cfg.SnapshotWarnBytes, s.manager.URL())
	}

	out := SnapshotOutput{Format: string(format), Bytes: len(payload)}
	return textResult(payload), out, nil
}

// CloseInput is the (empty) input for browser_close.
type CloseInput struct{}

// CloseOutput reports whether a page was actually closed.
type CloseOutput struct {
	Closed bool `json:"closed"`
}

func (s *Server) handleClose(ctx context.Context, req *mcp.CallToolRequest, input CloseInput) (*mcp.CallToolResult, CloseOutput, error) {
	if err := s.manager.ClosePage(); err != nil {
		return errorResult(err.Error()), CloseOutput{}, nil
	}
	return textResult("Browser page closed"), CloseOutput{Closed: true}, nil
}
