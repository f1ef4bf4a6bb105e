// slidepdf converts an HTML slide deck to an A4 landscape PDF with
// headless Chrome.
//
// Usage:
//
//	slidepdf [flags] <html_file> [output_pdf]
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/porticus-lab/slidepdf"
	"github.com/porticus-lab/slidepdf/internal/hints"
	"github.com/porticus-lab/slidepdf/internal/pdfinfo"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	var f cliFlags
	fs := newFlagSet(args[0], &f)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(env.Stdout, fs)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "slidepdf: %v\n\n", err)
		printUsage(env.Stderr, fs)
		return ExitUsage
	}
	if f.version {
		fmt.Fprintln(env.Stdout, "slidepdf", Version)
		return ExitSuccess
	}

	pos := fs.Args()
	if len(pos) == 0 {
		printUsage(env.Stdout, fs)
		return ExitUsage
	}
	if len(pos) > 2 {
		return fail(env, &f, fmt.Errorf("%w: expected <html_file> [output_pdf], got %d arguments", ErrUsage, len(pos)))
	}
	if f.verbose && f.quiet {
		return fail(env, &f, fmt.Errorf("%w: --verbose and --quiet are mutually exclusive", ErrUsage))
	}
	f.applyEnv(fs, env.Getenv)

	logger := newLogger(env, f)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	req := slidepdf.Request{InputPath: pos[0], OpenAfter: !f.noOpen}
	if len(pos) == 2 {
		req.OutputPath = pos[1]
	}

	opts := append(f.options(), slidepdf.WithLogger(logger))
	path, err := env.Convert(ctx, req, opts...)
	if err != nil {
		return fail(env, &f, err)
	}

	if f.verify {
		if err := env.Verify(path); err != nil {
			return fail(env, &f, err)
		}
		if f.verbose {
			logPages(logger, path)
		}
		logger.Info("layout verified", "format", "A4", "orientation", "landscape")
	}

	if !f.quiet {
		fmt.Fprintf(env.Stdout, "PDF generated: %s\n", path)
	}
	return ExitSuccess
}

// newLogger builds the CLI's text logger on stderr.
func newLogger(env *Environment, f cliFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func logPages(logger *slog.Logger, path string) {
	pages, err := pdfinfo.Inspect(path)
	if err != nil {
		logger.Debug("inspecting pages", "error", err)
		return
	}
	for i, p := range pages {
		logger.Debug("page", "n", i+1, "width_pt", p.Width, "height_pt", p.Height, "rotate", p.Rotation)
	}
}

// fail prints err with any matching hint and returns its exit code.
func fail(env *Environment, f *cliFlags, err error) int {
	fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err, f, env.Getenv))
	return exitCodeFor(err)
}

// hintFor picks the hint for err given the effective flags of the run.
func hintFor(err error, f *cliFlags, getenv func(string) string) string {
	switch {
	case errors.Is(err, slidepdf.ErrBrowserNotInstalled):
		return hints.ForMissingBrowser()
	case errors.Is(err, slidepdf.ErrBrowserUnavailable):
		return hints.ForBrowserStart(f.noSandbox, f.chromePath, getenv)
	case errors.Is(err, slidepdf.ErrTimeout):
		return hints.ForTimeout()
	case errors.Is(err, slidepdf.ErrExportFailed) && (errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission)):
		return hints.ForOutput()
	}
	return ""
}
