package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/porticus-lab/slidepdf"
)

// fakeConvert records the request and returns a canned result.
type fakeConvert struct {
	req   slidepdf.Request
	nopts int
	calls int
	path  string
	err   error
}

func (f *fakeConvert) convert(_ context.Context, req slidepdf.Request, opts ...slidepdf.Option) (string, error) {
	f.calls++
	f.req = req
	f.nopts = len(opts)
	if f.err != nil {
		return "", f.err
	}
	if f.path != "" {
		return f.path, nil
	}
	return "/decks/presentation.pdf", nil
}

func newTestEnv(fc *fakeConvert, vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout:  &stdout,
		Stderr:  &stderr,
		Getenv:  func(k string) string { return vars[k] },
		Convert: fc.convert,
		Verify:  func(string) error { return nil },
	}
	return env, &stdout, &stderr
}

func TestRun_NoArguments(t *testing.T) {
	fc := &fakeConvert{}
	env, stdout, _ := newTestEnv(fc, nil)

	code := run(context.Background(), []string{"slidepdf"}, env)

	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Errorf("usage not printed to stdout: %q", stdout.String())
	}
	if fc.calls != 0 {
		t.Error("conversion ran without an input file")
	}
}

func TestRun_Help(t *testing.T) {
	env, stdout, _ := newTestEnv(&fakeConvert{}, nil)

	if code := run(context.Background(), []string{"slidepdf", "--help"}, env); code != ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, ExitSuccess)
	}
	for _, want := range []string{"<html_file> [output_pdf]", "--no-open", "--timeout", slidepdf.DefaultOutputName} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestRun_Version(t *testing.T) {
	env, stdout, _ := newTestEnv(&fakeConvert{}, nil)

	if code := run(context.Background(), []string{"slidepdf", "--version"}, env); code != ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(stdout.String(), Version) {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestRun_InputOnly(t *testing.T) {
	fc := &fakeConvert{}
	env, stdout, _ := newTestEnv(fc, nil)

	code := run(context.Background(), []string{"slidepdf", "index.html"}, env)

	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if fc.req.InputPath != "index.html" || fc.req.OutputPath != "" {
		t.Errorf("request = %+v, want input only", fc.req)
	}
	if !fc.req.OpenAfter {
		t.Error("OpenAfter should default to true")
	}
	if !strings.Contains(stdout.String(), "PDF generated: /decks/presentation.pdf") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_InputAndOutput(t *testing.T) {
	fc := &fakeConvert{path: "/tmp/out.pdf"}
	env, _, _ := newTestEnv(fc, nil)

	code := run(context.Background(), []string{"slidepdf", "--no-open", "index.html", "out.pdf"}, env)

	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if fc.req.OutputPath != "out.pdf" {
		t.Errorf("OutputPath = %q, want out.pdf", fc.req.OutputPath)
	}
	if fc.req.OpenAfter {
		t.Error("--no-open should disable OpenAfter")
	}
}

func TestRun_TooManyArguments(t *testing.T) {
	fc := &fakeConvert{}
	env, _, stderr := newTestEnv(fc, nil)

	code := run(context.Background(), []string{"slidepdf", "a.html", "b.pdf", "c.pdf"}, env)

	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if fc.calls != 0 {
		t.Error("conversion ran with extra arguments")
	}
	if !strings.Contains(stderr.String(), "3 arguments") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	env, _, stderr := newTestEnv(&fakeConvert{}, nil)

	if code := run(context.Background(), []string{"slidepdf", "--landscape", "index.html"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "landscape") {
		t.Errorf("stderr should name the flag: %q", stderr.String())
	}
}

func TestRun_VerboseAndQuiet(t *testing.T) {
	env, _, _ := newTestEnv(&fakeConvert{}, nil)

	if code := run(context.Background(), []string{"slidepdf", "-v", "-q", "index.html"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

func TestRun_ConversionErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantHint string
	}{
		{"input not found", fmt.Errorf("%w: /decks/missing.html", slidepdf.ErrInputNotFound), ExitIO, ""},
		{"browser not installed", fmt.Errorf("%w: %w", slidepdf.ErrBrowserUnavailable, slidepdf.ErrBrowserNotInstalled), ExitBrowser, "--download-browser"},
		{"browser failed to start", fmt.Errorf("%w: exit status 1", slidepdf.ErrBrowserUnavailable), ExitBrowser, ""},
		{"timeout", fmt.Errorf("%w: %w after 1m0s", slidepdf.ErrExportFailed, slidepdf.ErrTimeout), ExitBrowser, "--timeout"},
		{"export failed", fmt.Errorf("%w: net::ERR_FILE_NOT_FOUND", slidepdf.ErrExportFailed), ExitBrowser, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, stdout, stderr := newTestEnv(&fakeConvert{err: tt.err}, map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chromium"})

			code := run(context.Background(), []string{"slidepdf", "index.html"}, env)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stderr.String(), tt.err.Error()) {
				t.Errorf("stderr missing error: %q", stderr.String())
			}
			if tt.wantHint != "" && !strings.Contains(stderr.String(), tt.wantHint) {
				t.Errorf("stderr missing hint %q: %q", tt.wantHint, stderr.String())
			}
			if strings.Contains(stdout.String(), "PDF generated") {
				t.Error("success line printed on failure")
			}
		})
	}
}

func TestRun_BrowserStartHintHonoursFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		vars map[string]string
	}{
		{"flags", []string{"--no-sandbox", "--chrome-path", "/usr/bin/chromium"}, map[string]string{"GITHUB_ACTIONS": "true"}},
		{"environment", nil, map[string]string{"ROD_NO_SANDBOX": "1", "ROD_BROWSER_BIN": "/usr/bin/chromium"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeConvert{err: fmt.Errorf("%w: starting /usr/bin/chromium: exit status 1", slidepdf.ErrBrowserUnavailable)}
			env, _, stderr := newTestEnv(fc, tt.vars)

			args := append(append([]string{"slidepdf"}, tt.args...), "index.html")
			if code := run(context.Background(), args, env); code != ExitBrowser {
				t.Errorf("exit code = %d, want %d", code, ExitBrowser)
			}
			if strings.Contains(stderr.String(), "hint:") {
				t.Errorf("hint repeats settings already in effect: %q", stderr.String())
			}
		})
	}
}

func TestRun_Verify(t *testing.T) {
	fc := &fakeConvert{}
	env, _, _ := newTestEnv(fc, nil)
	var verified string
	env.Verify = func(path string) error {
		verified = path
		return nil
	}

	if code := run(context.Background(), []string{"slidepdf", "--verify", "index.html"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if verified != "/decks/presentation.pdf" {
		t.Errorf("verified %q, want the generated PDF", verified)
	}
}

func TestRun_VerifyMismatch(t *testing.T) {
	env, stdout, _ := newTestEnv(&fakeConvert{}, nil)
	env.Verify = func(string) error {
		return fmt.Errorf("%w: page 1 is 1440x810 pt", slidepdf.ErrLayoutMismatch)
	}

	if code := run(context.Background(), []string{"slidepdf", "--verify", "index.html"}, env); code != ExitBrowser {
		t.Errorf("exit code = %d, want %d", code, ExitBrowser)
	}
	if strings.Contains(stdout.String(), "PDF generated") {
		t.Error("success line printed on verify failure")
	}
}

func TestRun_Quiet(t *testing.T) {
	env, stdout, stderr := newTestEnv(&fakeConvert{}, nil)

	if code := run(context.Background(), []string{"slidepdf", "-q", "index.html"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("quiet run produced output: stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		vars        map[string]string
		wantChrome  string
		wantSandbox bool
	}{
		{"nothing set", nil, nil, "", false},
		{"browser bin", nil, map[string]string{"ROD_BROWSER_BIN": "/opt/chrome"}, "/opt/chrome", false},
		{"flag wins over env", []string{"--chrome-path", "/usr/bin/chromium"}, map[string]string{"ROD_BROWSER_BIN": "/opt/chrome"}, "/usr/bin/chromium", false},
		{"rod no sandbox", nil, map[string]string{"ROD_NO_SANDBOX": "1"}, "", true},
		{"ci", nil, map[string]string{"CI": "true"}, "", true},
		{"explicit sandbox in ci", []string{"--no-sandbox=false"}, map[string]string{"CI": "true"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f cliFlags
			fs := newFlagSet("slidepdf", &f)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			f.applyEnv(fs, func(k string) string { return tt.vars[k] })
			if f.chromePath != tt.wantChrome {
				t.Errorf("chromePath = %q, want %q", f.chromePath, tt.wantChrome)
			}
			if f.noSandbox != tt.wantSandbox {
				t.Errorf("noSandbox = %v, want %v", f.noSandbox, tt.wantSandbox)
			}
		})
	}
}

func TestCLIFlags_Options(t *testing.T) {
	var f cliFlags
	fs := newFlagSet("slidepdf", &f)
	args := []string{"--chrome-path", "/opt/chrome", "--download-browser", "--no-sandbox", "--ready-expr", "window.ready", "--print-media"}
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	// timeout, settle, viewport, plus one per flag above.
	if got := len(f.options()); got != 8 {
		t.Errorf("len(options()) = %d, want 8", got)
	}
	if f.viewportWidth != slidepdf.DefaultViewportWidth || f.viewportHeight != slidepdf.DefaultViewportHeight {
		t.Errorf("viewport = %dx%d, want the library default", f.viewportWidth, f.viewportHeight)
	}
}

func TestHintFor_Unmatched(t *testing.T) {
	if h := hintFor(errors.New("boom"), &cliFlags{}, func(string) string { return "" }); h != "" {
		t.Errorf("hintFor(unrelated) = %q, want empty", h)
	}
}
