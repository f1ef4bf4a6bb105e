package slidepdf

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutputName is the file name used when a Request has no
// OutputPath. The file is placed next to the input document.
const DefaultOutputName = "presentation.pdf"

// Request describes a single deck conversion.
type Request struct {
	// InputPath is the HTML document to convert. Relative paths are
	// resolved against the working directory.
	InputPath string

	// OutputPath is where the PDF is written. An existing file is
	// overwritten. Defaults to DefaultOutputName in the input's directory.
	OutputPath string

	// OpenAfter opens both the input and the generated PDF with the
	// system's default viewer once the PDF is written.
	OpenAfter bool
}

// resolve returns a copy of r with absolute paths and the default output
// applied. It fails with ErrInputNotFound if the input is not a regular file.
func (r Request) resolve() (Request, error) {
	if r.InputPath == "" {
		return Request{}, fmt.Errorf("%w: no input path given", ErrInputNotFound)
	}
	in, err := filepath.Abs(r.InputPath)
	if err != nil {
		return Request{}, fmt.Errorf("slidepdf: resolving path: %w", err)
	}
	fi, err := os.Stat(in)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %s", ErrInputNotFound, in)
	}
	if !fi.Mode().IsRegular() {
		return Request{}, fmt.Errorf("%w: %s is not a regular file", ErrInputNotFound, in)
	}

	out := r.OutputPath
	if out == "" {
		out = filepath.Join(filepath.Dir(in), DefaultOutputName)
	}
	out, err = filepath.Abs(out)
	if err != nil {
		return Request{}, fmt.Errorf("slidepdf: resolving path: %w", err)
	}

	return Request{InputPath: in, OutputPath: out, OpenAfter: r.OpenAfter}, nil
}

// fileURL builds a file:// URL for an absolute filesystem path.
func fileURL(abs string) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths: C:/deck.html -> /C:/deck.html
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
