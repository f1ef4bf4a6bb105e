package slidepdf

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/porticus-lab/slidepdf/internal/opener"
)

// Opener opens a file with the system's default viewer. Implementations
// handle their own failures; opening is never allowed to fail a conversion.
type Opener interface {
	Open(path string)
}

// Converter converts HTML slide decks to PDF documents.
//
// Every call to [Converter.Convert] starts its own headless browser and
// shuts it down before returning, whether the conversion succeeded or not.
// Sessions are never shared between calls.
type Converter struct {
	cfg    converterConfig
	launch func(ctx context.Context, cfg converterConfig) (renderer, error)
}

// NewConverter creates a Converter with the given options.
func NewConverter(opts ...Option) *Converter {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.opener == nil {
		cfg.opener = opener.New(cfg.logger)
	}
	return &Converter{cfg: cfg, launch: openSession}
}

// Convert renders req.InputPath in a headless browser and writes the PDF
// to the request's output path, replacing any existing file.
//
// It fails with [ErrInputNotFound] before any browser is started if the
// input does not exist, with [ErrBrowserUnavailable] if no browser can be
// launched, and with [ErrExportFailed] for any rendering or write failure.
// When loading and printing exceed the configured timeout the error also
// matches [ErrTimeout]. Problems opening the files afterwards are only logged.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	req, err := req.resolve()
	if err != nil {
		return nil, err
	}

	log := c.cfg.logger
	log.Info("converting", "html", req.InputPath, "pdf", req.OutputPath)

	data, err := c.render(ctx, req.InputPath)
	if err != nil {
		return nil, err
	}

	res := &Result{path: req.OutputPath, data: data}
	if err := res.WriteToFile(req.OutputPath, 0o644); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %w", ErrExportFailed, req.OutputPath, err)
	}
	log.Info("pdf generated", "path", req.OutputPath, "bytes", res.Len())

	if req.OpenAfter {
		c.cfg.opener.Open(req.InputPath)
		c.cfg.opener.Open(req.OutputPath)
	}
	return res, nil
}

// render prints the document at path within one browser session. The
// session is closed on every return path.
func (c *Converter) render(ctx context.Context, path string) ([]byte, error) {
	s, err := c.launch(ctx, c.cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.Close(); err != nil {
			c.cfg.logger.Debug("closing browser", "error", err)
		}
	}()

	return s.Render(fileURL(path), DeckExportOptions())
}

// Convert converts a deck using a Converter built from opts.
func Convert(ctx context.Context, req Request, opts ...Option) (*Result, error) {
	return NewConverter(opts...).Convert(ctx, req)
}
