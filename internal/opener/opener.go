// Package opener opens files with the operating system's default
// application. Opening is best-effort: failures are logged, never returned.
package opener

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Platform is the family of operating system a file is opened on.
type Platform int

const (
	// Unix covers Linux and the BSDs, which use xdg-open.
	Unix Platform = iota
	// MacOS uses the open command.
	MacOS
	// Windows uses the shell's file protocol handler.
	Windows
)

// Detect maps a GOOS value to its Platform.
func Detect(goos string) Platform {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	default:
		return Unix
	}
}

func (p Platform) String() string {
	switch p {
	case Windows:
		return "windows"
	case MacOS:
		return "macos"
	default:
		return "unix"
	}
}

// Command returns the program and arguments that open path with the
// platform's default handler.
func (p Platform) Command(path string) (name string, args []string) {
	switch p {
	case Windows:
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case MacOS:
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// Opener opens files with the default viewer of one platform.
type Opener struct {
	platform Platform
	logger   *slog.Logger
	run      func(name string, args ...string) error
}

// New returns an Opener for the running platform. A nil logger discards
// output.
func New(logger *slog.Logger) *Opener {
	return NewFor(Detect(runtime.GOOS), logger)
}

// NewFor returns an Opener for the given platform.
func NewFor(p Platform, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Opener{platform: p, logger: logger, run: runCommand}
}

// Open opens path with the default application. Errors are logged as
// warnings.
func (o *Opener) Open(path string) {
	if err := o.open(path); err != nil {
		o.logger.Warn("could not open file", "path", path, "error", err)
		return
	}
	o.logger.Info("opened", "file", filepath.Base(path))
}

func (o *Opener) open(path string) error {
	name, args := o.platform.Command(path)
	if err := o.run(name, args...); err != nil {
		return fmt.Errorf("opener: %s: %w", name, err)
	}
	return nil
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}
