// Package pdfinfo reads page geometry from PDF files.
package pdfinfo

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// maxTreeDepth bounds the walk up the page tree when looking for
// inherited attributes.
const maxTreeDepth = 32

// PageInfo holds metadata about a single page. Sizes are in PDF points.
type PageInfo struct {
	Width    float64
	Height   float64
	Rotation int
}

// Landscape reports whether the page is wider than tall once rotation is applied.
func (p PageInfo) Landscape() bool {
	w, h := p.Displayed()
	return w > h
}

// Displayed returns width and height as the page is shown, with /Rotate applied.
func (p PageInfo) Displayed() (width, height float64) {
	if p.Rotation%180 != 0 {
		return p.Height, p.Width
	}
	return p.Width, p.Height
}

// Inspect opens the PDF at path and returns the geometry of every page.
func Inspect(path string) (pages []PageInfo, err error) {
	defer recoverParse(&err)
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdfinfo: opening %s: %w", path, err)
	}
	defer f.Close()
	return readPages(r)
}

// Load returns the geometry of every page of an in-memory PDF.
func Load(data []byte) (pages []PageInfo, err error) {
	defer recoverParse(&err)
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("pdfinfo: reading PDF: %w", err)
	}
	return readPages(r)
}

// recoverParse turns a panic of the PDF parser on malformed objects into
// an error.
func recoverParse(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("pdfinfo: reading PDF: %v", r)
	}
}

func readPages(r *pdf.Reader) ([]PageInfo, error) {
	n := r.NumPage()
	out := make([]PageInfo, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			return nil, fmt.Errorf("pdfinfo: page %d missing", i)
		}
		out = append(out, pageInfo(p.V))
	}
	return out, nil
}

func pageInfo(v pdf.Value) PageInfo {
	var info PageInfo

	if mb := inherited(v, "MediaBox"); mb.Kind() == pdf.Array && mb.Len() >= 4 {
		info.Width = mb.Index(2).Float64() - mb.Index(0).Float64()
		info.Height = mb.Index(3).Float64() - mb.Index(1).Float64()
	}
	if rot := inherited(v, "Rotate"); rot.Kind() == pdf.Integer {
		info.Rotation = int(rot.Int64())
	}
	return info
}

// inherited looks key up on the page and then on its ancestors.
func inherited(v pdf.Value, key string) pdf.Value {
	for i := 0; i < maxTreeDepth && !v.IsNull(); i++ {
		if x := v.Key(key); !x.IsNull() {
			return x
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}
