package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/gridslide/binding"
	"github.com/ByLCY/gridslide/dsl"
)

// Defaults matching the common deck setup: a 32×18 character grid with 24pt
// cells, single line spacing, content starting at the top-left cell.
const (
	defaultGridCols    = 32
	defaultGridRows    = 18
	defaultBaseSize    = 24
	defaultLineSpacing = 1.0
	defaultStyleTag    = "regular"
)

// Build lays out a parsed deck: resources are collected once, then every
// slide section becomes one Page through an independent Layout call. data, if
// non-nil, is interpolated into span text before layout. On any layout error
// the whole build fails; no partially laid out deck is returned.
func Build(deck *dsl.Deck, data any) (*Result, error) {
	if deck == nil {
		return nil, fmt.Errorf("layout: deck is nil")
	}

	styles, palette := collectResources(deck)
	meta := collectMeta(deck)
	grid := collectGrid(deck)

	var pages []Page
	for _, section := range deck.Sections {
		if section.Slide == nil {
			continue
		}
		page, err := buildSlide(section.Slide, grid, styles, data)
		if err != nil {
			return nil, fmt.Errorf("layout: slide %d: %w", len(pages)+1, err)
		}
		pages = append(pages, page)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("layout: deck has no slide section")
	}

	return &Result{
		Pages:   pages,
		Palette: palette,
		Meta:    meta,
	}, nil
}

// buildSlide compiles one slide section to a content sequence and lays it out.
func buildSlide(slide *dsl.SlideSection, grid Grid, styles map[string]FontResource, data any) (Page, error) {
	if slide.Block == nil {
		return Page{}, fmt.Errorf("slide section has no content block")
	}

	_, params := parseArgs(slide.Params, false)
	cfg := Config{
		PageHeight:  grid.Height(),
		BaseSize:    grid.Base,
		StartCol:    parseFloat(params["col"], 0),
		StartRow:    parseFloat(params["row"], 0),
		LineSpacing: parseFloat(params["spacing"], defaultLineSpacing),
		Align:       ParseAlign(params["align"]),
		Styles:      styles,
	}

	items, err := collectItems(slide.Block, data)
	if err != nil {
		return Page{}, err
	}

	placements, err := Layout(items, cfg)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Width:      grid.Width(),
		Height:     grid.Height(),
		Placements: placements,
	}, nil
}

// collectItems converts the slide block's text/br commands into the content
// sequence the engine consumes. Embedded "\n" in text content becomes an
// explicit break, so one literal may yield several spans.
func collectItems(block *dsl.Block, data any) ([]Item, error) {
	var items []Item
	for _, stmt := range block.Statements {
		if stmt.Command == nil {
			continue
		}
		cmd := stmt.Command
		switch cmd.Name {
		case "text":
			spans, err := textItems(cmd, data)
			if err != nil {
				return nil, err
			}
			items = append(items, spans...)
		case "br":
			items = append(items, Br())
		default:
			return nil, fmt.Errorf("unknown slide command %q at %s", cmd.Name, cmd.Pos)
		}
	}
	return items, nil
}

func textItems(cmd *dsl.Command, data any) ([]Item, error) {
	styleTag, attrs := parseArgs(cmd.Args, true)
	if v := attrs["style"]; v != "" {
		styleTag = v
	}
	if styleTag == "" {
		styleTag = defaultStyleTag
	}

	content := extractText(cmd.Block)
	if content == "" {
		return nil, fmt.Errorf("text command at %s has no content", cmd.Pos)
	}
	if data != nil {
		content = binding.Interpolate(content, data)
	}

	ratio := parseFloat(attrs["size"], 1.0)
	color := parseColorArg(attrs["color"])

	var items []Item
	for i, line := range strings.Split(content, "\n") {
		if i > 0 {
			items = append(items, Br())
		}
		if line == "" {
			continue
		}
		items = append(items, Text(line, styleTag, ratio, color))
	}
	return items, nil
}

// collectResources gathers font and color declarations from all resources
// sections. Later declarations of the same name win.
func collectResources(deck *dsl.Deck) (map[string]FontResource, map[string]Color) {
	styles := map[string]FontResource{}
	palette := map[string]Color{}

	for _, section := range deck.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			if stmt.Command == nil {
				continue
			}
			switch stmt.Command.Name {
			case "font":
				font := parseFontResource(stmt.Command)
				if font.Name != "" {
					styles[font.Name] = font
				}
			case "color":
				name, value := parseColorResource(stmt.Command)
				if name == "" || value == "" {
					continue
				}
				if c, err := parseHexColor(value); err == nil {
					palette[name] = c
				}
			}
		}
	}
	return styles, palette
}

func collectMeta(deck *dsl.Deck) DocumentMeta {
	meta := DocumentMeta{
		Creator: "gridslide",
	}
	for _, section := range deck.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			key := strings.ToLower(stmt.Assignment.Key)
			switch key {
			case "title":
				meta.Title = valueToString(stmt.Assignment.Value)
			case "author":
				meta.Author = valueToString(stmt.Assignment.Value)
			case "subject":
				meta.Subject = valueToString(stmt.Assignment.Value)
			case "creator":
				meta.Creator = valueToString(stmt.Assignment.Value)
			}
		}
	}
	return meta
}

// collectGrid resolves the deck's grid declaration, falling back to the
// default 32×18 grid of 24pt cells when the section is absent.
func collectGrid(deck *dsl.Deck) Grid {
	grid := Grid{Cols: defaultGridCols, Rows: defaultGridRows, Base: defaultBaseSize}
	for _, section := range deck.Sections {
		if section.Grid == nil {
			continue
		}
		if v := parseFloat(section.Grid.Cols, 0); v > 0 {
			grid.Cols = v
		}
		if v := parseFloat(section.Grid.Rows, 0); v > 0 {
			grid.Rows = v
		}
		if section.Grid.Base != "" {
			if base := ParseLength(section.Grid.Base).ToPT(); base > 0 {
				grid.Base = base
			}
		}
	}
	return grid
}

func parseFontResource(cmd *dsl.Command) FontResource {
	if len(cmd.Args) == 0 {
		return FontResource{}
	}
	font := FontResource{
		Name: cmd.Args[0].Value,
	}
	if cmd.Block == nil {
		return font
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		switch stmt.Assignment.Key {
		case "src":
			if stmt.Assignment.Value.String != nil {
				font.Src = string(*stmt.Assignment.Value.String)
			}
		case "style":
			if stmt.Assignment.Value.String != nil {
				font.Style = string(*stmt.Assignment.Value.String)
			}
		}
	}
	return font
}

func parseColorResource(cmd *dsl.Command) (string, string) {
	if len(cmd.Args) == 0 {
		return "", ""
	}
	name := cmd.Args[0].Value
	value := ""
	if len(cmd.Args) > 1 {
		value = cmd.Args[len(cmd.Args)-1].Value
	}
	return name, value
}

// parseColorArg maps a span color argument to the content model: hex literals
// become explicit triples, anything else is a named palette reference that
// the renderer resolves. Absent values default to black.
func parseColorArg(value string) Color {
	if value == "" {
		return RGB(0, 0, 0)
	}
	if strings.HasPrefix(value, "#") {
		if c, err := parseHexColor(value); err == nil {
			return c
		}
		return RGB(0, 0, 0)
	}
	return Named(value)
}

func parseHexColor(value string) (Color, error) {
	value = strings.TrimPrefix(value, "#")
	switch len(value) {
	case 3:
		r := strings.Repeat(string(value[0]), 2)
		g := strings.Repeat(string(value[1]), 2)
		b := strings.Repeat(string(value[2]), 2)
		return RGB(hexChannel(r), hexChannel(g), hexChannel(b)), nil
	case 6:
		return RGB(hexChannel(value[0:2]), hexChannel(value[2:4]), hexChannel(value[4:6])), nil
	default:
		return Color{}, fmt.Errorf("cannot parse color value %s", value)
	}
}

func hexChannel(s string) float64 {
	v, _ := strconv.ParseInt(s, 16, 64)
	return float64(v) / 255.0
}

func parseArgs(args []*dsl.Lexeme, allowStyle bool) (string, map[string]string) {
	result := map[string]string{}
	if len(args) == 0 {
		return "", result
	}

	cursor := 0
	var style string
	if allowStyle && args[0].Type == "Ident" && len(args)%2 == 1 {
		style = args[0].Value
		cursor = 1
	}

	for cursor < len(args)-1 {
		key := args[cursor].Value
		val := args[cursor+1].Value
		result[key] = val
		cursor += 2
	}

	return style, result
}

func extractText(block *dsl.Block) string {
	if block == nil {
		return ""
	}
	var builder strings.Builder
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			builder.WriteString(string(stmt.Text.Value))
		}
	}
	return builder.String()
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Ident != nil:
		return *val.Ident
	default:
		return ""
	}
}

func parseFloat(value string, fallback float64) float64 {
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}
