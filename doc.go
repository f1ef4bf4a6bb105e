// Package slidepdf converts HTML slide decks to PDF with headless Chrome
// (Chrome DevTools Protocol).
//
// A deck is loaded from its file:// URL so relative assets resolve from the
// deck's directory. After the page reports network idleness the converter
// waits a short settle delay for client-side charts and diagrams, then
// prints with fixed options: A4, landscape, background graphics, no margins,
// with any CSS @page size taking precedence.
//
// For a one-off conversion use the package-level helper:
//
//	res, err := slidepdf.Convert(ctx, slidepdf.Request{InputPath: "deck/index.html"})
//	// res.Path() == "<abs>/deck/presentation.pdf"
//
// A [Converter] carries options across conversions:
//
//	c := slidepdf.NewConverter(
//	    slidepdf.WithTimeout(2*time.Minute),
//	    slidepdf.WithReadyExpression("window.deckReady === true", 10*time.Second),
//	)
//	res, err := c.Convert(ctx, slidepdf.Request{
//	    InputPath:  "deck/index.html",
//	    OutputPath: "out/talk.pdf",
//	    OpenAfter:  true,
//	})
//
// Each conversion starts and stops its own browser. Chrome or Chromium must
// be installed, or use [WithAutoDownload] to fetch Chromium on first use.
//
// Use [VerifyLayout] to check the pages of a generated PDF:
//
//	if err := slidepdf.VerifyLayout(res.Path()); err != nil {
//	    log.Fatal(err)
//	}
package slidepdf
