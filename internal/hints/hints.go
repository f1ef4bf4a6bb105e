// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}

// ForMissingBrowser returns install instructions when no browser was found.
func ForMissingBrowser() string {
	return formatHints([]string{
		"install Google Chrome or Chromium (e.g. apt install chromium, brew install --cask chromium)",
		"or point --chrome-path / ROD_BROWSER_BIN at an existing browser",
		"or rerun with --download-browser to fetch Chromium automatically",
	})
}

// isRoot reports whether the process runs as root, where Chrome refuses
// to start with its sandbox enabled.
var isRoot = func() bool {
	return os.Geteuid() == 0
}

// ForBrowserStart returns hints for a browser that was found but failed
// to start. noSandbox and chromePath are the effective settings of the
// failed run; getenv is used to detect CI. Suggestions the user already
// followed are left out.
func ForBrowserStart(noSandbox bool, chromePath string, getenv func(string) string) string {
	var hints []string

	inCI := getenv("CI") != "" ||
		getenv("GITHUB_ACTIONS") != "" ||
		getenv("GITLAB_CI") != "" ||
		getenv("JENKINS_URL") != ""

	if !noSandbox && (inCI || IsInContainer() || isRoot()) {
		hints = append(hints, "use --no-sandbox or set ROD_NO_SANDBOX=1 for Docker/CI/root")
	}
	if chromePath == "" {
		hints = append(hints, "set --chrome-path or ROD_BROWSER_BIN to use a specific Chrome")
	}
	return formatHints(hints)
}

// ForTimeout returns a hint about raising the timeout for slow decks.
func ForTimeout() string {
	return format("for decks with heavy charts or remote assets, raise --timeout")
}

// ForOutput returns a hint for PDF write failures.
func ForOutput() string {
	return format("check the output directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
