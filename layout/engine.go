package layout

import (
	"fmt"
	"unicode/utf8"
)

// StyleNotFoundError reports a span whose style tag has no registered font
// resource. This is a configuration error: the layout call aborts and any
// placements produced so far must be discarded.
type StyleNotFoundError struct {
	Style string
}

func (e *StyleNotFoundError) Error() string {
	return fmt.Sprintf("layout: style %q has no registered font resource", e.Style)
}

// Layout lays a content sequence onto the page grid and returns one placement
// per span, in drawing order.
//
// Lines are maximal runs of consecutive spans closed by a break item or by
// the end of the sequence. Each line is processed in two passes: the measure
// pass finds the line's dominant ratio (the maximum span ratio, floored at
// 1.0 so that empty lines keep standard height), the place pass positions
// each span left to right, offset vertically per cfg.Align against the
// dominant ratio. The cursor then drops by dominantRatio × cfg.LineSpacing
// rows and returns to cfg.StartCol.
//
// Column advance is runeCount × ratio per span: a monospace-grid
// approximation, not a glyph measurement. Overflow past the page width is
// the caller's concern.
//
// On any error no placements are returned; partial output is never valid.
func Layout(items []Item, cfg Config) ([]Placement, error) {
	if err := validate(items, cfg); err != nil {
		return nil, err
	}

	var out []Placement
	col, row := cfg.StartCol, cfg.StartRow

	for pos := 0; pos < len(items); {
		spans, next := scanLine(items, pos)
		dominant := dominantRatio(spans)

		for _, sp := range spans {
			offset := alignOffset(cfg.Align, dominant, sp.Ratio)
			p, err := place(sp, col, row+offset, cfg)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
			col += float64(utf8.RuneCountInString(sp.Text)) * sp.Ratio
		}

		row += dominant * cfg.LineSpacing
		col = cfg.StartCol
		pos = next
	}
	return out, nil
}

// place resolves one span at an absolute grid position into a placement.
// The anchor is the text baseline: one font size below the line top.
func place(sp *Span, col, row float64, cfg Config) (Placement, error) {
	font, ok := cfg.Styles[sp.Style]
	if !ok {
		return Placement{}, &StyleNotFoundError{Style: sp.Style}
	}
	size := cfg.BaseSize * sp.Ratio
	x, lineTop := ToPagePoint(col, row, cfg.PageHeight, cfg.BaseSize)
	return Placement{
		X:     x,
		Y:     lineTop - size,
		Font:  font,
		Size:  size,
		Color: sp.Color,
		Text:  sp.Text,
	}, nil
}

// scanLine collects the consecutive spans of the line starting at pos and
// returns them with the scan position after the line. A closing break item
// belongs to the line it closes.
func scanLine(items []Item, pos int) ([]*Span, int) {
	var spans []*Span
	for ; pos < len(items); pos++ {
		if items[pos].Break {
			return spans, pos + 1
		}
		spans = append(spans, items[pos].Span)
	}
	return spans, pos
}

// dominantRatio returns the maximum span ratio in the line, floored at 1.0 so
// that lines without spans (or with only small spans) keep standard height.
func dominantRatio(spans []*Span) float64 {
	max := 1.0
	for _, sp := range spans {
		if sp.Ratio > max {
			max = sp.Ratio
		}
	}
	return max
}

// alignOffset returns the downward grid-row offset of a span within its line.
// The offset depends only on the line's dominant ratio, never on neighboring
// lines.
func alignOffset(a Align, dominant, ratio float64) float64 {
	switch a {
	case AlignMiddle:
		return (dominant - ratio) / 2
	case AlignBottom:
		return dominant - ratio
	default:
		return 0
	}
}

// validate enforces the engine's preconditions up front: positive scalars in
// the config and in every span, and exactly one variant set per item.
// Violations surface as errors rather than as nonsensical geometry.
func validate(items []Item, cfg Config) error {
	if cfg.BaseSize <= 0 {
		return fmt.Errorf("layout: base size must be > 0, got %g", cfg.BaseSize)
	}
	if cfg.PageHeight <= 0 {
		return fmt.Errorf("layout: page height must be > 0, got %g", cfg.PageHeight)
	}
	if cfg.LineSpacing <= 0 {
		return fmt.Errorf("layout: line spacing must be > 0, got %g", cfg.LineSpacing)
	}
	for i, it := range items {
		if it.Break {
			if it.Span != nil {
				return fmt.Errorf("layout: item %d sets both span and break", i)
			}
			continue
		}
		if it.Span == nil {
			return fmt.Errorf("layout: item %d is neither span nor break", i)
		}
		if it.Span.Ratio <= 0 {
			return fmt.Errorf("layout: item %d has non-positive size ratio %g", i, it.Span.Ratio)
		}
	}
	return nil
}
