package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/gridslide/dsl"
)

const sampleDeck = `
deck Launch v1 {
  meta {
    title: "Launch review"
    author: "ByLCY"
  }

  grid 32 18 base 24pt

  resources {
    font regular {
      src: "fonts/Regular.ttf"
    }
    font bold {
      src: "fonts/Bold.ttf"
      style: "bold"
    }

    color accent = #0F62FE
  }

  // the opening slide
  slide align middle spacing 1.2 row 2 {
    text bold size 2.0 color accent { "Hello, ${user.name}!" }
    br
    text regular { "Welcome" }
  }
}
`

func TestParseDeck(t *testing.T) {
	deck, err := dsl.ParseString(sampleDeck)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if deck.Name != "Launch" {
		t.Fatalf("expected deck name Launch, got %s", deck.Name)
	}
	if deck.Version != "v1" {
		t.Fatalf("expected version v1, got %s", deck.Version)
	}

	if len(deck.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(deck.Sections))
	}

	meta := deck.Sections[0].Meta
	if meta == nil {
		t.Fatalf("meta section missing, got %s", deck.Sections[0].Kind())
	}
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	if got := string(*title.Value.String); got != "Launch review" {
		t.Fatalf("expected title Launch review, got %s", got)
	}

	grid := deck.Sections[1].Grid
	if grid == nil {
		t.Fatalf("grid section missing, got %s", deck.Sections[1].Kind())
	}
	if grid.Cols != "32" || grid.Rows != "18" || grid.Base != "24pt" {
		t.Fatalf("unexpected grid values: %+v", grid)
	}

	resources := deck.Sections[2].Resources
	if resources == nil {
		t.Fatalf("resources section missing")
	}
	var fontCount, colorCount int
	for _, stmt := range resources.Block.Statements {
		if stmt.Command == nil {
			continue
		}
		switch stmt.Command.Name {
		case "font":
			fontCount++
		case "color":
			colorCount++
			if got := stmt.Command.Args[0].Value; got != "accent" {
				t.Fatalf("expected color name accent, got %s", got)
			}
			if got := stmt.Command.Args[len(stmt.Command.Args)-1].Value; got != "#0F62FE" {
				t.Fatalf("expected hex literal, got %s", got)
			}
		}
	}
	if fontCount != 2 || colorCount != 1 {
		t.Fatalf("expected 2 fonts and 1 color, got %d/%d", fontCount, colorCount)
	}

	slide := deck.Sections[3].Slide
	if slide == nil {
		t.Fatalf("slide section missing")
	}
	if len(slide.Params) != 6 {
		t.Fatalf("expected 6 slide params, got %d: %+v", len(slide.Params), slide.Params)
	}
	if slide.Params[0].Value != "align" || slide.Params[1].Value != "middle" {
		t.Fatalf("unexpected slide params: %+v", slide.Params)
	}

	textCmd := slide.Block.Statements[0].Command
	if textCmd == nil || textCmd.Name != "text" {
		t.Fatalf("expected text command, got %+v", slide.Block.Statements[0])
	}
	if len(textCmd.Args) != 5 || textCmd.Args[0].Value != "bold" {
		t.Fatalf("unexpected text args: %+v", textCmd.Args)
	}
	if textCmd.Block == nil || len(textCmd.Block.Statements) == 0 || textCmd.Block.Statements[0].Text == nil {
		t.Fatalf("text command missing literal content")
	}
	if got := string(textCmd.Block.Statements[0].Text.Value); !strings.Contains(got, "${user.name}") {
		t.Fatalf("expected interpolation placeholder in text literal, got %s", got)
	}

	brCmd := slide.Block.Statements[1].Command
	if brCmd == nil || brCmd.Name != "br" {
		t.Fatalf("expected br command, got %+v", slide.Block.Statements[1])
	}
	if brCmd.Block != nil {
		t.Fatalf("br must not capture a block, got %+v", brCmd.Block)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := dsl.ParseString(`deck { }`); err == nil {
		t.Fatalf("expected parse error for missing name/version")
	}
}
