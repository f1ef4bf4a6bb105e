package main

import (
	"errors"
	"os"

	"github.com/porticus-lab/slidepdf"
)

// Exit codes for the slidepdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // PDF written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Missing arguments or invalid flags
	ExitIO      = 3 // Input not found, output not writable
	ExitBrowser = 4 // Browser missing, export failed, timeout, wrong layout
)

// ErrUsage marks command-line mistakes.
var ErrUsage = errors.New("usage error")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Checked first: a failed PDF write is an ErrExportFailed wrapping the
	// filesystem error.
	if errors.Is(err, slidepdf.ErrInputNotFound) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	if errors.Is(err, slidepdf.ErrBrowserUnavailable) ||
		errors.Is(err, slidepdf.ErrExportFailed) ||
		errors.Is(err, slidepdf.ErrTimeout) ||
		errors.Is(err, slidepdf.ErrLayoutMismatch) {
		return ExitBrowser
	}

	if errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
