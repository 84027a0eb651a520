package layout

// This file defines the content model consumed by the layout engine and the
// placement instructions it emits, shared by layout, rendering and debug JSON.

// Align selects how a span smaller than its line's dominant ratio is
// positioned vertically within the line.
type Align int

const (
	AlignTop    Align = iota // span top flush with the line top
	AlignMiddle              // centered between line top and bottom
	AlignBottom              // span bottom flush with the line bottom
)

// String returns the DSL spelling of the alignment mode.
func (a Align) String() string {
	switch a {
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	default:
		return "top"
	}
}

// ParseAlign maps a DSL alignment keyword to an Align value.
// Unknown values fall back to AlignTop.
func ParseAlign(s string) Align {
	switch s {
	case "middle", "center":
		return AlignMiddle
	case "bottom", "end":
		return AlignBottom
	default:
		return AlignTop
	}
}

// Color is either a named palette entry or an explicit RGB triple with
// channels in [0, 1]. The engine never interprets it; resolution against the
// palette happens in the renderer.
type Color struct {
	Name string  `json:"name,omitempty"`
	R    float64 `json:"r"`
	G    float64 `json:"g"`
	B    float64 `json:"b"`
}

// RGB builds an explicit color from channel values in [0, 1].
func RGB(r, g, b float64) Color { return Color{R: r, G: g, B: b} }

// Named builds a color that the renderer resolves against the deck palette.
func Named(name string) Color { return Color{Name: name} }

// FontResource describes a loadable font. The layout engine treats it as an
// opaque handle keyed by style tag; only the renderer reads Src/Style.
type FontResource struct {
	Name  string `json:"name"`
	Src   string `json:"src"`   // file path or built-in:<name>
	Style string `json:"style"` // weight/slant hint, eg "bold" or "bold-italic"
}

// Span is an immutable run of text with one style, size ratio and color.
// Ratio scales the base grid size: 1.0 occupies exactly one grid cell.
type Span struct {
	Text  string  `json:"text"`
	Style string  `json:"style"`
	Ratio float64 `json:"ratio"`
	Color Color   `json:"color"`
}

// Item is one element of a content sequence: either a Span or a line break.
// Exactly one of the two is set.
type Item struct {
	Span  *Span `json:"span,omitempty"`
	Break bool  `json:"break,omitempty"`
}

// Text builds a span item.
func Text(text, style string, ratio float64, color Color) Item {
	return Item{Span: &Span{Text: text, Style: style, Ratio: ratio, Color: color}}
}

// Br builds a line break item.
func Br() Item { return Item{Break: true} }

// Config carries the parameters of one layout call. Styles is a read-only,
// caller-built mapping from style tag to font resource; the engine never
// mutates it, so concurrent layout calls may share one map.
type Config struct {
	PageHeight  float64 // physical page height in pt
	BaseSize    float64 // size of one grid cell in pt, must be > 0
	StartCol    float64 // grid column the cursor starts and resets to
	StartRow    float64 // grid row of the first line
	LineSpacing float64 // row advance factor per line, must be > 0
	Align       Align
	Styles      map[string]FontResource
}

// Placement is one drawing instruction: where and how to draw one span.
// X/Y are page coordinates in pt with the origin at the bottom-left; Y is the
// text baseline. Placements are emitted in drawing order and never revised.
type Placement struct {
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	Font  FontResource `json:"font"`
	Size  float64      `json:"size"` // resolved font size in pt
	Color Color        `json:"color"`
	Text  string       `json:"text"`
}

// Page is one fully laid out slide, ready for the renderer.
type Page struct {
	Width      float64     `json:"width"`  // pt
	Height     float64     `json:"height"` // pt
	Placements []Placement `json:"placements"`
}

// Result is the output of building a whole deck: the laid out pages plus the
// resources the renderer needs to resolve them.
type Result struct {
	Pages   []Page           `json:"pages"`
	Palette map[string]Color `json:"palette"`
	Meta    DocumentMeta     `json:"meta"`
}

// DocumentMeta carries PDF info-dictionary fields.
type DocumentMeta struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Subject string `json:"subject"`
	Creator string `json:"creator"`
}
