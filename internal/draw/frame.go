package draw

import (
	"io"
	"unicode/utf8"
)

// maxChunkSize keeps each write under a typical MTU so frames stream
// smoothly over SSH.
const maxChunkSize = 1400

// Frame accumulates one frame of terminal output. Text positions are
// relative to the viewport; Flush writes everything in MTU-sized chunks.
type Frame struct {
	w    io.Writer
	buf  []byte
	view Viewport
}

// NewFrame creates a frame writer for w.
func NewFrame(w io.Writer, view Viewport) *Frame {
	return &Frame{w: w, buf: make([]byte, 0, 16*1024), view: view}
}

// SetViewport changes where text is placed (e.g. after a resize).
func (f *Frame) SetViewport(v Viewport) {
	f.view = v
}

// Write implements io.Writer so a Canvas can render into the frame.
func (f *Frame) Write(p []byte) (int, error) {
	f.buf = append(f.buf, p...)
	return len(p), nil
}

// Clear appends a full screen clear.
func (f *Frame) Clear() {
	f.buf = append(f.buf, seqClear...)
}

// Text writes s starting at the 1-based viewport cell (col, row).
func (f *Frame) Text(col, row int, s string) {
	f.buf = appendCursor(f.buf, col+f.view.Col, row+f.view.Row)
	f.buf = append(f.buf, s...)
}

// Centered writes s horizontally centered on the given viewport row.
func (f *Frame) Centered(row int, s string) {
	f.Text((f.view.Width-utf8.RuneCountInString(s))/2+1, row, s)
}

// RightAligned writes s so it ends margin cells before the right edge.
func (f *Frame) RightAligned(row, margin int, s string) {
	f.Text(f.view.Width-utf8.RuneCountInString(s)-margin+1, row, s)
}

// Flush writes the frame and empties it.
func (f *Frame) Flush() error {
	data := f.buf
	f.buf = f.buf[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := f.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
