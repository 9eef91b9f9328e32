package draw

import (
	"os"

	"golang.org/x/term"
)

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns the size of the terminal on stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Viewport is the terminal area the game renders into: at most the maximum
// render size, centered in the terminal.
type Viewport struct {
	Width, Height int // Cells
	Col, Row      int // 0-based offset of the top-left cell
}

// Fit clamps a terminal size to maxWidth x maxHeight and centers the result.
func Fit(termWidth, termHeight, maxWidth, maxHeight int) Viewport {
	v := Viewport{Width: min(termWidth, maxWidth), Height: min(termHeight, maxHeight)}
	v.Col = (termWidth - v.Width) / 2
	v.Row = (termHeight - v.Height) / 2
	return v
}

// QueryViewport asks size for the terminal dimensions and fits them.
// A nil size uses DefaultTermSizeFunc.
func QueryViewport(size TermSizeFunc, maxWidth, maxHeight int) (Viewport, error) {
	if size == nil {
		size = DefaultTermSizeFunc
	}
	w, h, err := size()
	if err != nil {
		return Viewport{}, err
	}
	return Fit(w, h, maxWidth, maxHeight), nil
}
