package layout

// The page is addressed as a character grid: one cell is BaseSize pt square,
// column 0 / row 0 is the top-left corner. PDF pages have their origin at the
// bottom-left, so every placement goes through the transform below.

// Grid defines the page as columns × rows of cells of Base pt.
type Grid struct {
	Cols float64 `json:"cols"`
	Rows float64 `json:"rows"`
	Base float64 `json:"base"` // cell size in pt
}

// Width returns the physical page width in pt.
func (g Grid) Width() float64 { return g.Cols * g.Base }

// Height returns the physical page height in pt.
func (g Grid) Height() float64 { return g.Rows * g.Base }

// ToPagePoint converts a grid coordinate to a page point. The returned x is
// the distance from the left edge, y the distance from the bottom edge of a
// page pageHeight pt tall, both in pt. Fractional grid coordinates are valid.
func ToPagePoint(col, row, pageHeight, base float64) (x, y float64) {
	x = col * base
	y = pageHeight - row*base
	return x, y
}
