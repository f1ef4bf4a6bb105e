package slidepdf

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrInputNotFound is returned when the input path does not name an
	// existing regular file. No browser is started in that case.
	ErrInputNotFound = errors.New("slidepdf: input file not found")

	// ErrBrowserUnavailable is returned when no Chrome or Chromium
	// executable can be located or the browser process fails to start.
	ErrBrowserUnavailable = errors.New("slidepdf: headless browser unavailable")

	// ErrBrowserNotInstalled accompanies ErrBrowserUnavailable when no
	// browser executable was found at all, as opposed to one failing to start.
	ErrBrowserNotInstalled = errors.New("no Chrome or Chromium installation found")

	// ErrExportFailed wraps any failure while navigating, rendering,
	// printing or writing the PDF.
	ErrExportFailed = errors.New("slidepdf: export failed")

	// ErrTimeout accompanies ErrExportFailed when the page does not finish
	// loading and exporting within the configured timeout.
	ErrTimeout = errors.New("conversion timed out")

	// ErrLayoutMismatch is returned by [VerifyLayout] when a page of the
	// generated PDF is not A4 landscape.
	ErrLayoutMismatch = errors.New("slidepdf: unexpected page layout")
)
