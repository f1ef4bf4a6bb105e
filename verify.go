package slidepdf

import (
	"fmt"
	"math"

	"github.com/porticus-lab/slidepdf/internal/pdfinfo"
)

// layoutTolerance is the allowed difference in points between a page and
// the expected paper size. Chrome rounds page boxes.
const layoutTolerance = 2.0

// VerifyLayout checks that every page of the PDF at path has the size and
// orientation of [DeckExportOptions]. It returns [ErrLayoutMismatch]
// naming the first page that differs.
//
// Decks whose CSS declares its own @page size are printed at that size
// and will not pass.
func VerifyLayout(path string) error {
	pages, err := pdfinfo.Inspect(path)
	if err != nil {
		return fmt.Errorf("slidepdf: %w", err)
	}
	return checkLayout(pages, DeckExportOptions())
}

func checkLayout(pages []pdfinfo.PageInfo, opts ExportOptions) error {
	if len(pages) == 0 {
		return fmt.Errorf("%w: document has no pages", ErrLayoutMismatch)
	}
	wantW, wantH := opts.paperPoints()
	for i, p := range pages {
		w, h := p.Displayed()
		if math.Abs(w-wantW) > layoutTolerance || math.Abs(h-wantH) > layoutTolerance {
			return fmt.Errorf("%w: page %d is %.0fx%.0f pt, want %.0fx%.0f pt (A4 %s)",
				ErrLayoutMismatch, i+1, w, h, wantW, wantH, opts.Orientation)
		}
	}
	return nil
}
