package browser

// Options configures the managed browser instance.
type Options struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// Viewport sets the initial viewport size.
	Viewport Viewport

	// Timeout is the default timeout for page operations, in milliseconds.
	Timeout float64

	// ConsoleLimit caps the number of retained console messages.
	ConsoleLimit int
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful.
	// Valid values: "load", "domcontentloaded", "networkidle".
	WaitUntil string

	// Timeout in milliseconds (0 means default).
	Timeout float64
}

// ScreenshotOptions configures screenshot capture.
type ScreenshotOptions struct {
	// Selector limits the capture to the first matching element.
	Selector string

	// FullPage captures the whole scrollable page instead of the viewport.
	FullPage bool
}

// Default values for browser operations.
const (
	DefaultTimeout        = 30000.0
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultConsoleLimit   = 1000
)

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Headless: true,
		Viewport: Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		},
		Timeout:      DefaultTimeout,
		ConsoleLimit: DefaultConsoleLimit,
	}
}
