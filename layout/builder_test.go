package layout

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ByLCY/gridslide/dsl"
)

const sampleDeck = `
deck Demo v1 {
  meta {
    title: "Quarterly review"
    author: "ByLCY"
  }

  grid 32 18 base 24pt

  resources {
    font regular { src: "fonts/Regular.ttf" }
    font bold { src: "fonts/Bold.ttf" style: "bold" }
    color accent = #0F62FE
  }

  slide align middle spacing 1.2 row 2 {
    text bold size 2.0 color accent { "Title" }
    br
    text regular { "Body" }
  }

  slide {
    text regular { "Second page" }
  }
}
`

func buildDeck(t *testing.T, source string, data any) *Result {
	t.Helper()
	deck, err := dsl.ParseString(source)
	if err != nil {
		t.Fatalf("parsing deck: %v", err)
	}
	res, err := Build(deck, data)
	if err != nil {
		t.Fatalf("building deck: %v", err)
	}
	return res
}

func TestBuildSampleDeck(t *testing.T) {
	res := buildDeck(t, sampleDeck, nil)

	if res.Meta.Title != "Quarterly review" || res.Meta.Author != "ByLCY" {
		t.Fatalf("meta not collected: %+v", res.Meta)
	}
	if len(res.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(res.Pages))
	}

	page := res.Pages[0]
	if page.Width != 768 || page.Height != 432 {
		t.Fatalf("page size from grid: got %gx%g want 768x432", page.Width, page.Height)
	}
	if len(page.Placements) != 2 {
		t.Fatalf("expected 2 placements on slide 1, got %d", len(page.Placements))
	}

	title := page.Placements[0]
	if title.Text != "Title" || title.Font.Name != "bold" || title.Size != 48 {
		t.Fatalf("title placement wrong: %+v", title)
	}
	if title.Color != Named("accent") {
		t.Fatalf("title color should stay a named reference: %+v", title.Color)
	}
	// Title line starts at row 2: baseline = 432 - 2×24 - 48.
	if want := 432.0 - 48 - 48; math.Abs(title.Y-want) > 1e-6 {
		t.Fatalf("title baseline: got %g want %g", title.Y, want)
	}

	body := page.Placements[1]
	// Body row = 2 + 2.0×1.2 = 4.4.
	if want := 432.0 - 4.4*24 - 24; math.Abs(body.Y-want) > 1e-6 {
		t.Fatalf("body baseline: got %g want %g", body.Y, want)
	}

	accent, ok := res.Palette["accent"]
	if !ok {
		t.Fatalf("palette entry accent missing")
	}
	if math.Abs(accent.R-float64(0x0F)/255) > 1e-9 || math.Abs(accent.B-float64(0xFE)/255) > 1e-9 {
		t.Fatalf("accent channels wrong: %+v", accent)
	}
}

// TestBuildUnknownStyleFails asserts a span referencing an undeclared font
// aborts the build with StyleNotFoundError and produces no result.
func TestBuildUnknownStyleFails(t *testing.T) {
	source := `deck T v1 {
  resources { font regular { src: "fonts/Regular.ttf" } }
  slide { text serif { "oops" } }
}`
	deck, err := dsl.ParseString(source)
	if err != nil {
		t.Fatalf("parsing deck: %v", err)
	}
	res, err := Build(deck, nil)
	if err == nil {
		t.Fatalf("expected build to fail")
	}
	var snf *StyleNotFoundError
	if !errors.As(err, &snf) || snf.Style != "serif" {
		t.Fatalf("expected StyleNotFoundError for serif, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil result on failure")
	}
}

// TestBuildDefaultGrid verifies a deck without a grid section gets the
// default 32×18 grid of 24pt cells.
func TestBuildDefaultGrid(t *testing.T) {
	source := `deck T v1 {
  resources { font regular { src: "fonts/Regular.ttf" } }
  slide { text regular { "x" } }
}`
	res := buildDeck(t, source, nil)
	if res.Pages[0].Width != 768 || res.Pages[0].Height != 432 {
		t.Fatalf("default grid size wrong: %gx%g", res.Pages[0].Width, res.Pages[0].Height)
	}
}

// TestBuildEmbeddedNewlines verifies "\n" inside a text literal becomes an
// explicit line break.
func TestBuildEmbeddedNewlines(t *testing.T) {
	source := `deck T v1 {
  resources { font regular { src: "fonts/Regular.ttf" } }
  slide { text regular { "first\nsecond" } }
}`
	res := buildDeck(t, source, nil)
	got := res.Pages[0].Placements
	if len(got) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(got))
	}
	if got[0].Text != "first" || got[1].Text != "second" {
		t.Fatalf("split content wrong: %q, %q", got[0].Text, got[1].Text)
	}
	if !(got[1].Y < got[0].Y) {
		t.Fatalf("second line should sit below the first: %g vs %g", got[1].Y, got[0].Y)
	}
}

// TestBuildDataBinding verifies ${path} placeholders interpolate before
// layout so the column advance sees the bound text.
func TestBuildDataBinding(t *testing.T) {
	source := `deck T v1 {
  resources { font regular { src: "fonts/Regular.ttf" } }
  slide { text regular { "Hello, ${user.name}!" } }
}`
	data := map[string]any{"user": map[string]any{"name": "Ada"}}
	res := buildDeck(t, source, data)
	got := res.Pages[0].Placements[0].Text
	if got != "Hello, Ada!" {
		t.Fatalf("binding not applied: %q", got)
	}
}

// TestBuildNoSlides asserts a deck without slides is rejected.
func TestBuildNoSlides(t *testing.T) {
	deck, err := dsl.ParseString(`deck T v1 { meta { title: "empty" } }`)
	if err != nil {
		t.Fatalf("parsing deck: %v", err)
	}
	if _, err := Build(deck, nil); err == nil || !strings.Contains(err.Error(), "no slide") {
		t.Fatalf("expected no-slide error, got %v", err)
	}
}
