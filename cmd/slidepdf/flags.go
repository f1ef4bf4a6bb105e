package main

import (
	"fmt"
	"io"
	"time"

	"github.com/porticus-lab/slidepdf"
	flag "github.com/spf13/pflag"
)

// cliFlags holds every command-line flag.
type cliFlags struct {
	noOpen          bool
	noSandbox       bool
	downloadBrowser bool
	printMedia      bool
	verify          bool
	verbose         bool
	quiet           bool
	version         bool

	chromePath     string
	readyExpr      string
	timeout        time.Duration
	settle         time.Duration
	readyTimeout   time.Duration
	viewportWidth  int
	viewportHeight int
}

// newFlagSet declares the flags on a fresh set. Parse errors are returned,
// never printed by pflag itself.
func newFlagSet(name string, f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.BoolVar(&f.noOpen, "no-open", false, "do not open the HTML and PDF in the default viewer")
	fs.DurationVar(&f.timeout, "timeout", 60*time.Second, "limit for loading and printing the deck (0 disables)")
	fs.DurationVar(&f.settle, "settle", slidepdf.DefaultSettleDelay, "pause after network idle for charts and diagrams to draw")
	fs.StringVar(&f.readyExpr, "ready-expr", "", "JavaScript expression polled until truthy instead of the settle pause")
	fs.DurationVar(&f.readyTimeout, "ready-timeout", 10*time.Second, "how long to poll --ready-expr before falling back to --settle")
	fs.IntVar(&f.viewportWidth, "viewport-width", slidepdf.DefaultViewportWidth, "browser viewport width in CSS pixels")
	fs.IntVar(&f.viewportHeight, "viewport-height", slidepdf.DefaultViewportHeight, "browser viewport height in CSS pixels")
	fs.BoolVar(&f.printMedia, "print-media", false, "apply @media print styles before printing")
	fs.StringVar(&f.chromePath, "chrome-path", "", "Chrome/Chromium executable (default $ROD_BROWSER_BIN or auto-detect)")
	fs.BoolVar(&f.downloadBrowser, "download-browser", false, "download Chromium if no browser is installed")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox (Docker, CI, root)")
	fs.BoolVar(&f.verify, "verify", false, "check the PDF pages are A4 landscape")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug details")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only log warnings and errors")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	return fs
}

// applyEnv fills flags left unset from the environment.
func (f *cliFlags) applyEnv(fs *flag.FlagSet, getenv func(string) string) {
	if !fs.Changed("chrome-path") {
		f.chromePath = getenv("ROD_BROWSER_BIN")
	}
	if !fs.Changed("no-sandbox") && (getenv("ROD_NO_SANDBOX") == "1" || getenv("CI") == "true") {
		f.noSandbox = true
	}
}

// options converts flags to converter options.
func (f *cliFlags) options() []slidepdf.Option {
	opts := []slidepdf.Option{
		slidepdf.WithTimeout(f.timeout),
		slidepdf.WithSettleDelay(f.settle),
		slidepdf.WithViewport(f.viewportWidth, f.viewportHeight),
	}
	if f.chromePath != "" {
		opts = append(opts, slidepdf.WithChromePath(f.chromePath))
	}
	if f.downloadBrowser {
		opts = append(opts, slidepdf.WithAutoDownload())
	}
	if f.noSandbox {
		opts = append(opts, slidepdf.WithNoSandbox())
	}
	if f.readyExpr != "" {
		opts = append(opts, slidepdf.WithReadyExpression(f.readyExpr, f.readyTimeout))
	}
	if f.printMedia {
		opts = append(opts, slidepdf.WithPrintMedia())
	}
	return opts
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `slidepdf - convert an HTML slide deck to PDF

Usage:
  slidepdf [flags] <html_file> [output_pdf]

The PDF defaults to %s next to the HTML file and is A4 landscape
with no margins. Both files are opened afterwards unless --no-open is given.

Flags:
%s
Examples:
  slidepdf index.html
  slidepdf index.html output.pdf
  slidepdf --no-open --ready-expr 'window.deckReady' deck/index.html
`, slidepdf.DefaultOutputName, fs.FlagUsages())
}
