package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/gridslide/dsl"
	"github.com/ByLCY/gridslide/layout"
	"github.com/ByLCY/gridslide/renderer"
	canvasrenderer "github.com/ByLCY/gridslide/renderer/canvas"
)

func main() {
	input := flag.String("in", "examples/demo.deck", "deck source path")
	output := flag.String("out", "output/demo.pdf", "PDF output path")
	debug := flag.String("debug", "", "layout debug JSON output path")
	dataJSON := flag.String("data", "", "JSON data bound into the deck")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("parsing data JSON: %v", err)
		}
	}

	var r renderer.Renderer = canvasrenderer.NewRenderer(filepath.Dir(*input))
	if err := run(*input, *output, *debug, inputData, r); err != nil {
		log.Fatalf("generating PDF: %v", err)
	}
	fmt.Printf("wrote %s\n", *output)
}

// run chains parsing, layout and rendering. A layout failure aborts the whole
// document; no partially laid out PDF is written.
func run(inputPath, outputPath, debugPath string, data any, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer must not be nil")
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening deck source %s: %w", inputPath, err)
	}
	defer file.Close()

	deck, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("parsing deck source: %w", err)
	}

	result, err := layout.Build(deck, data)
	if err != nil {
		return fmt.Errorf("computing layout: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	pdfBytes, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("writing PDF file: %w", err)
	}

	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("creating debug directory: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("writing debug JSON: %w", err)
	}
	return nil
}
