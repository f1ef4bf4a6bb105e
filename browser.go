package slidepdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/go-rod/rod/lib/launcher"
)

// renderer prints one document to PDF inside a browser session it owns.
type renderer interface {
	Render(targetURL string, opts ExportOptions) ([]byte, error)
	Close() error
}

var _ renderer = (*chromeSession)(nil)

// lookPath finds an installed Chrome, Chromium or Edge executable.
var lookPath = launcher.LookPath

// downloadBrowser fetches a compatible Chromium build into rod's cache
// and returns the path to the executable.
var downloadBrowser = func() (string, error) {
	return launcher.NewBrowser().Get()
}

// resolveBrowser returns the browser executable to launch.
func resolveBrowser(cfg converterConfig) (string, error) {
	if cfg.chromePath != "" {
		if _, err := os.Stat(cfg.chromePath); err != nil {
			return "", fmt.Errorf("%w: %w: %v", ErrBrowserUnavailable, ErrBrowserNotInstalled, err)
		}
		return cfg.chromePath, nil
	}
	if path, ok := lookPath(); ok {
		return path, nil
	}
	if !cfg.autoDownload {
		return "", fmt.Errorf("%w: %w", ErrBrowserUnavailable, ErrBrowserNotInstalled)
	}
	cfg.logger.Info("downloading Chromium")
	path, err := downloadBrowser()
	if err != nil {
		return "", fmt.Errorf("%w: downloading browser: %v", ErrBrowserUnavailable, err)
	}
	return path, nil
}

// chromeSession is a headless browser process with a single tab.
type chromeSession struct {
	cfg         converterConfig
	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	closeOnce   sync.Once
	closeErr    error
}

// openSession starts a headless browser and its first tab. The browser
// process is bound to ctx: cancelling ctx kills it.
func openSession(ctx context.Context, cfg converterConfig) (renderer, error) {
	bin, err := resolveBrowser(cfg)
	if err != nil {
		return nil, err
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(bin),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("allow-file-access-from-files", true),
		chromedp.Flag("headless", cfg.headless),
		chromedp.WindowSize(int(cfg.viewportWidth), int(cfg.viewportHeight)),
	)
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface before navigation.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: starting %s: %v", ErrBrowserUnavailable, bin, err)
	}
	cfg.logger.Debug("browser started", "path", bin)

	return &chromeSession{
		cfg:         cfg,
		allocCancel: allocCancel,
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
	}, nil
}

// Close shuts the browser down and releases the allocator. Close is
// idempotent.
func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		if err := chromedp.Cancel(s.tabCtx); err != nil && !errors.Is(err, context.Canceled) {
			s.closeErr = err
		}
		s.tabCancel()
		s.allocCancel()
	})
	return s.closeErr
}

// Render navigates the tab to targetURL, waits for the document to go
// network idle and settle, then prints it.
func (s *chromeSession) Render(targetURL string, opts ExportOptions) ([]byte, error) {
	ctx := s.tabCtx
	if s.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.timeout)
		defer cancel()
	}

	w := waiter{cfg: s.cfg, poll: chromePoll, sleep: chromeSleep}
	idle := listenNetworkIdle(ctx)

	actions := []chromedp.Action{
		chromedp.EmulateViewport(s.cfg.viewportWidth, s.cfg.viewportHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return page.SetLifecycleEventsEnabled(true).Do(ctx)
		}),
		chromedp.Navigate(targetURL),
		waitClosed(idle),
		chromedp.ActionFunc(w.images),
		chromedp.ActionFunc(w.settle),
	}
	if s.cfg.printMedia {
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetEmulatedMedia().WithMedia("print").Do(ctx)
		}))
	}

	var buf []byte
	actions = append(actions, printToPDF(opts, &buf))

	if err := chromedp.Run(ctx, actions...); err != nil {
		return nil, renderError(err, ctx.Err(), s.cfg.timeout)
	}
	return buf, nil
}

// renderError classifies a failed render. Timeouts are export failures
// that also match ErrTimeout.
func renderError(err, ctxErr error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctxErr, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w after %s: %v", ErrExportFailed, ErrTimeout, timeout, err)
	}
	return fmt.Errorf("%w: %v", ErrExportFailed, err)
}

// idleTracker watches lifecycle events of one frame and closes done once
// the document loaded after it was created reports networkIdle.
type idleTracker struct {
	mainFrame cdp.FrameID
	done      chan struct{}

	mu     sync.Mutex
	loader cdp.LoaderID
	once   sync.Once
}

func newIdleTracker(mainFrame cdp.FrameID) *idleTracker {
	return &idleTracker{mainFrame: mainFrame, done: make(chan struct{})}
}

// observe handles one target event. Events of other frames, and idle
// events of a document whose init was not seen, are ignored.
func (t *idleTracker) observe(ev any) {
	e, ok := ev.(*page.EventLifecycleEvent)
	if !ok || e.FrameID != t.mainFrame {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	switch e.Name {
	case "init":
		t.loader = e.LoaderID
	case "networkIdle":
		if t.loader != "" && e.LoaderID == t.loader {
			t.once.Do(func() { close(t.done) })
		}
	}
}

// listenNetworkIdle returns a channel that is closed once the main frame
// reports networkIdle for a document loaded after this call.
func listenNetworkIdle(ctx context.Context) <-chan struct{} {
	t := newIdleTracker(cdp.FrameID(chromedp.FromContext(ctx).Target.TargetID))
	chromedp.ListenTarget(ctx, t.observe)
	return t.done
}

// waitClosed blocks until ch is closed or the context ends.
func waitClosed(ch <-chan struct{}) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		select {
		case <-ch:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// imagesLoadedExpr is truthy once every <img> has loaded or failed.
const imagesLoadedExpr = `Array.from(document.images).every((img) => img.complete)`

// imageTimeout bounds the wait for images after network idle.
const imageTimeout = 10 * time.Second

// waiter holds the waits between network idle and printing. poll and
// sleep run in the browser tab.
type waiter struct {
	cfg   converterConfig
	poll  func(ctx context.Context, expr string, timeout time.Duration) error
	sleep func(ctx context.Context, d time.Duration) error
}

func chromePoll(ctx context.Context, expr string, timeout time.Duration) error {
	var res any
	return chromedp.Poll(expr, &res, chromedp.WithPollingTimeout(timeout)).Do(ctx)
}

func chromeSleep(ctx context.Context, d time.Duration) error {
	return chromedp.Sleep(d).Do(ctx)
}

// images waits for every image to complete. Images still pending after
// imageTimeout are printed as they are.
func (w waiter) images(ctx context.Context) error {
	err := w.poll(ctx, imagesLoadedExpr, imageTimeout)
	if err == nil {
		return nil
	}
	if !errors.Is(err, chromedp.ErrPollingTimeout) {
		return fmt.Errorf("waiting for images: %w", err)
	}
	w.cfg.logger.Warn("images still loading, printing anyway", slog.Duration("waited", imageTimeout))
	return nil
}

// settle gives client-side rendering time to finish. With a ready
// expression it polls until the expression is truthy and falls back to
// the fixed delay when polling times out.
func (w waiter) settle(ctx context.Context) error {
	cfg := w.cfg
	if cfg.readyExpr != "" {
		err := w.poll(ctx, cfg.readyExpr, cfg.readyTimeout)
		if err == nil {
			return nil
		}
		if !errors.Is(err, chromedp.ErrPollingTimeout) {
			return fmt.Errorf("evaluating ready expression: %w", err)
		}
		cfg.logger.Warn("ready expression not satisfied, using settle delay",
			slog.String("expr", cfg.readyExpr),
			slog.Duration("waited", cfg.readyTimeout),
			slog.Duration("delay", cfg.settleDelay))
	}
	if cfg.settleDelay <= 0 {
		return nil
	}
	return w.sleep(ctx, cfg.settleDelay)
}

// newPrintParams builds the Page.printToPDF call for opts.
func newPrintParams(opts ExportOptions) *page.PrintToPDFParams {
	top, right, bottom, left := opts.marginInches()
	// Paper size is given upright; Chrome rotates it for landscape.
	return page.PrintToPDF().
		WithLandscape(opts.Orientation == Landscape).
		WithPrintBackground(opts.PrintBackground).
		WithScale(opts.Scale).
		WithPaperWidth(cmToInches(opts.Size.Width)).
		WithPaperHeight(cmToInches(opts.Size.Height)).
		WithMarginTop(top).
		WithMarginRight(right).
		WithMarginBottom(bottom).
		WithMarginLeft(left).
		WithPreferCSSPageSize(opts.PreferCSSPageSize)
}

func printToPDF(opts ExportOptions, out *[]byte) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		data, _, err := newPrintParams(opts).Do(ctx)
		if err != nil {
			return fmt.Errorf("printing to PDF: %w", err)
		}
		*out = data
		return nil
	})
}
