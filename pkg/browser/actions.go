package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Navigate loads a URL in the managed page.
func (m *Manager) Navigate(url string, opts NavigateOptions) error {
	page, err := m.Page()
	if err != nil {
		return err
	}

	gotoOpts := playwright.PageGotoOptions{}
	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		gotoOpts.WaitUntil = &waitUntil
	}
	if opts.Timeout > 0 {
		gotoOpts.Timeout = &opts.Timeout
	}

	if _, err := page.Goto(url, gotoOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Title reports the current page title, empty before any navigation.
func (m *Manager) Title() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.page == nil {
		return ""
	}
	title, err := m.page.Title()
	if err != nil {
		return ""
	}
	return title
}

// URL reports the current page URL, "about:blank" before any navigation.
func (m *Manager) URL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.page == nil {
		return "about:blank"
	}
	return m.page.URL()
}

// waitVisible waits for the first match of selector to be visible before
// an interaction touches it.
func (m *Manager) waitVisible(page playwright.Page, selector string) error {
	if _, err := page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("element %q not ready: %w", selector, err)
	}
	return nil
}

// Click clicks the first element matching selector.
func (m *Manager) Click(selector string) error {
	page, err := m.Page()
	if err != nil {
		return err
	}
	if err := m.waitVisible(page, selector); err != nil {
		return err
	}
	if err := page.Click(selector); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

// Fill fills the first element matching selector with value.
func (m *Manager) Fill(selector, value string) error {
	page, err := m.Page()
	if err != nil {
		return err
	}
	if err := m.waitVisible(page, selector); err != nil {
		return err
	}
	if err := page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

// SelectOption selects an option by value in the first matching select
// element.
func (m *Manager) SelectOption(selector, value string) error {
	page, err := m.Page()
	if err != nil {
		return err
	}
	if err := m.waitVisible(page, selector); err != nil {
		return err
	}
	if _, err := page.SelectOption(selector, playwright.SelectOptionValues{
		Values: &[]string{value},
	}); err != nil {
		return fmt.Errorf("select failed: %w", err)
	}
	return nil
}

// Hover hovers over the first element matching selector.
func (m *Manager) Hover(selector string) error {
	page, err := m.Page()
	if err != nil {
		return err
	}
	if err := m.waitVisible(page, selector); err != nil {
		return err
	}
	if err := page.Hover(selector); err != nil {
		return fmt.Errorf("hover failed: %w", err)
	}
	return nil
}

// Press sends a key press to the first element matching selector.
func (m *Manager) Press(selector, key string) error {
	page, err := m.Page()
	if err != nil {
		return err
	}
	if err := m.waitVisible(page, selector); err != nil {
		return err
	}
	if err := page.Press(selector, key); err != nil {
		return fmt.Errorf("press failed: %w", err)
	}
	return nil
}

// WaitFor waits for the first match of selector to reach the given state
// ("attached", "detached", "visible", "hidden"; visible when empty).
func (m *Manager) WaitFor(selector, state string) error {
	page, err := m.Page()
	if err != nil {
		return err
	}

	waitOpts := playwright.PageWaitForSelectorOptions{}
	if state != "" {
		selectorState := playwright.WaitForSelectorState(state)
		waitOpts.State = &selectorState
	}
	if _, err := page.WaitForSelector(selector, waitOpts); err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}
	return nil
}

// Screenshot captures a PNG of the page, or of the first element matching
// opts.Selector when set.
func (m *Manager) Screenshot(opts ScreenshotOptions) ([]byte, error) {
	page, err := m.Page()
	if err != nil {
		return nil, err
	}

	if opts.Selector != "" {
		element, err := page.QuerySelector(opts.Selector)
		if err != nil {
			return nil, fmt.Errorf("selector query failed: %w", err)
		}
		if element == nil {
			return nil, fmt.Errorf("no element found matching selector: %s", opts.Selector)
		}
		data, err := element.Screenshot()
		if err != nil {
			return nil, fmt.Errorf("screenshot failed: %w", err)
		}
		return data, nil
	}

	data, err := page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(opts.FullPage),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return data, nil
}

// Evaluate runs a script expression in the page and returns its result.
// It satisfies dom.Evaluator, so snapshot capture runs through the same
// path as user-supplied scripts.
func (m *Manager) Evaluate(expression string) (any, error) {
	page, err := m.Page()
	if err != nil {
		return nil, err
	}
	result, err := page.Evaluate(expression)
	if err != nil {
		return nil, fmt.Errorf("script evaluation failed: %w", err)
	}
	return result, nil
}
