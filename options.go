package slidepdf

import (
	"log/slog"
	"time"
)

// converterConfig holds internal configuration for a Converter.
type converterConfig struct {
	chromePath     string
	autoDownload   bool
	timeout        time.Duration
	noSandbox      bool
	headless       string
	viewportWidth  int64
	viewportHeight int64
	settleDelay    time.Duration
	readyExpr      string
	readyTimeout   time.Duration
	printMedia     bool
	logger         *slog.Logger
	opener         Opener
}

// DefaultSettleDelay is how long the converter waits after network
// idleness before printing, giving client-side charts and diagrams time
// to draw.
const DefaultSettleDelay = 2 * time.Second

// Default viewport the deck is laid out in before printing, in CSS pixels.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

func defaultConfig() converterConfig {
	return converterConfig{
		timeout:        60 * time.Second,
		headless:       "new",
		viewportWidth:  DefaultViewportWidth,
		viewportHeight: DefaultViewportHeight,
		settleDelay:    DefaultSettleDelay,
		readyTimeout:   10 * time.Second,
	}
}

// Option configures a [Converter].
type Option func(*converterConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the converter searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *converterConfig) {
		c.chromePath = path
	}
}

// WithAutoDownload lets the converter download a compatible Chromium
// build when no browser is installed. The binary is cached in
// ~/.cache/rod/browser (Unix) or %APPDATA%\rod\browser (Windows).
func WithAutoDownload() Option {
	return func(c *converterConfig) {
		c.autoDownload = true
	}
}

// WithTimeout bounds navigation, the idle wait, settling and export of a
// single conversion. Defaults to 60 seconds. A zero or negative value
// disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *converterConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *converterConfig) {
		c.noSandbox = true
	}
}

// WithViewport sets the browser viewport the deck is rendered in before
// printing. Charts that size themselves on load keep that size in the PDF.
// Defaults to 1280x720. Non-positive values keep the default.
func WithViewport(width, height int) Option {
	return func(c *converterConfig) {
		if width > 0 && height > 0 {
			c.viewportWidth = int64(width)
			c.viewportHeight = int64(height)
		}
	}
}

// WithSettleDelay sets the fixed pause between network idleness and
// printing. Defaults to [DefaultSettleDelay].
func WithSettleDelay(d time.Duration) Option {
	return func(c *converterConfig) {
		if d < 0 {
			d = 0
		}
		c.settleDelay = d
	}
}

// WithReadyExpression makes the converter poll a JavaScript expression
// after network idleness instead of sleeping. Printing starts as soon as
// the expression is truthy. If it is still falsy after timeout the
// converter falls back to the fixed settle delay.
//
//	slidepdf.WithReadyExpression("window.deckReady === true", 10*time.Second)
func WithReadyExpression(expr string, timeout time.Duration) Option {
	return func(c *converterConfig) {
		c.readyExpr = expr
		if timeout > 0 {
			c.readyTimeout = timeout
		}
	}
}

// WithPrintMedia renders the page with the print CSS media type before
// exporting, so @media print rules apply to the layout.
func WithPrintMedia() Option {
	return func(c *converterConfig) {
		c.printMedia = true
	}
}

// WithLogger sets the logger used for progress and warnings.
// By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *converterConfig) {
		c.logger = l
	}
}

// WithOpener replaces the viewer used when [Request.OpenAfter] is set.
func WithOpener(o Opener) Option {
	return func(c *converterConfig) {
		c.opener = o
	}
}
