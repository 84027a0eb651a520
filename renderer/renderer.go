package renderer

import "github.com/ByLCY/gridslide/layout"

// Renderer serializes a layout result into a final document, eg a PDF.
// Render returns the generated bytes or an error.
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
