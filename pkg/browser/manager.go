package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/pagehand/pagehand/pkg/logging"
)

// Manager owns the Playwright process and the single automated page. The
// browser is launched lazily on first use so the server starts instantly
// and only pays for Chromium when a tool actually needs it.
type Manager struct {
	mu      sync.Mutex
	opts    Options
	log     *logging.Logger
	console *ConsoleLog

	playwright *playwright.Playwright
	browser    playwright.Browser
	context    playwright.BrowserContext
	page       playwright.Page
}

// NewManager creates a manager; no browser resources are acquired yet.
func NewManager(opts Options, log *logging.Logger) *Manager {
	if opts.Viewport.Width == 0 || opts.Viewport.Height == 0 {
		opts.Viewport = Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ConsoleLimit == 0 {
		opts.ConsoleLimit = DefaultConsoleLimit
	}
	return &Manager{
		opts:    opts,
		log:     log,
		console: NewConsoleLog(opts.ConsoleLimit),
	}
}

// Console returns the running console message log for the managed page.
func (m *Manager) Console() *ConsoleLog {
	return m.console
}

// Page returns the managed page, launching the browser on first use.
func (m *Manager) Page() (playwright.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensurePage()
}

// ensurePage launches Playwright, the browser, a context and a page if
// they are not up yet. Callers must hold m.mu.
func (m *Manager) ensurePage() (playwright.Page, error) {
	if m.page != nil {
		return m.page, nil
	}

	if m.playwright == nil {
		// Discard driver output so it cannot pollute the stdio transport.
		runOpts := &playwright.RunOptions{
			Verbose: false,
			Stdout:  io.Discard,
			Stderr:  io.Discard,
		}
		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
		pw, err := playwright.Run(runOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to start playwright: %w", err)
		}
		m.playwright = pw
	}

	browser, err := m.playwright.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.opts.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  m.opts.Viewport.Width,
			Height: m.opts.Viewport.Height,
		},
	})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(m.opts.Timeout)

	page.OnConsole(func(msg playwright.ConsoleMessage) {
		m.console.Append(msg.Type(), msg.Text())
	})

	m.browser = browser
	m.context = context
	m.page = page
	m.log.Infof("browser launched (headless=%v viewport=%dx%d)",
		m.opts.Headless, m.opts.Viewport.Width, m.opts.Viewport.Height)
	return page, nil
}

// ClosePage closes the page, context and browser but keeps the Playwright
// driver running so a later action can relaunch cheaply.
func (m *Manager) ClosePage() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.page == nil {
		return nil
	}

	_ = m.page.Close()
	_ = m.context.Close()
	err := m.browser.Close()

	m.page = nil
	m.context = nil
	m.browser = nil

	if err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}

// Shutdown closes everything including the Playwright driver.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.page != nil {
		m.page.Close()
		m.context.Close()
		m.browser.Close()
		m.page = nil
		m.context = nil
		m.browser = nil
	}

	if m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
		m.playwright = nil
	}
	return nil
}
