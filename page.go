package slidepdf

// PageSize represents paper dimensions in centimeters.
type PageSize struct {
	Width  float64 // Width in centimeters.
	Height float64 // Height in centimeters.
}

// A4 is the only paper size decks are exported to.
var A4 = PageSize{Width: 21.0, Height: 29.7}

// Orientation represents the page orientation.
type Orientation int

const (
	// Portrait is the vertical orientation.
	Portrait Orientation = iota
	// Landscape rotates the page to horizontal orientation.
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// Margin represents page margins in centimeters.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargin returns a Margin with the same value on all sides.
func UniformMargin(cm float64) Margin {
	return Margin{Top: cm, Right: cm, Bottom: cm, Left: cm}
}

// ExportOptions describes how a rendered deck is printed to PDF.
type ExportOptions struct {
	Size              PageSize
	Orientation       Orientation
	Margin            Margin
	Scale             float64
	PrintBackground   bool
	PreferCSSPageSize bool
}

// DeckExportOptions returns the fixed options every deck is exported with:
// A4 landscape, background graphics, no margins, and the document's own
// CSS @page size taking precedence over the format.
func DeckExportOptions() ExportOptions {
	return ExportOptions{
		Size:              A4,
		Orientation:       Landscape,
		Margin:            UniformMargin(0),
		Scale:             1.0,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

const (
	cmPerInch     = 2.54
	pointsPerInch = 72.0
)

// cmToInches converts centimeters to inches.
func cmToInches(cm float64) float64 {
	return cm / cmPerInch
}

// paperDimensions returns the paper width and height in inches,
// accounting for orientation.
func (o ExportOptions) paperDimensions() (width, height float64) {
	w := cmToInches(o.Size.Width)
	h := cmToInches(o.Size.Height)
	if o.Orientation == Landscape {
		return h, w
	}
	return w, h
}

// paperPoints returns the paper width and height in PDF points.
func (o ExportOptions) paperPoints() (width, height float64) {
	w, h := o.paperDimensions()
	return w * pointsPerInch, h * pointsPerInch
}

// marginInches returns margins converted to inches.
func (o ExportOptions) marginInches() (top, right, bottom, left float64) {
	return cmToInches(o.Margin.Top),
		cmToInches(o.Margin.Right),
		cmToInches(o.Margin.Bottom),
		cmToInches(o.Margin.Left)
}
