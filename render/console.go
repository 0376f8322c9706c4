package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	board "github.com/transit-displays/arrival-board"
)

// charWidth mirrors the 6px advance of the matrix font so scroll offsets
// translate to character columns.
const charWidth = 6

// Console renders board frames as text lines on a writer. It is the
// development stand-in for the RGB matrix surface.
type Console struct {
	width  int
	height int

	mu  sync.Mutex
	out io.Writer
}

// NewConsole creates a console surface of the given pixel dimensions.
func NewConsole(width, height int, out io.Writer) *Console {
	if width <= 0 {
		width = 128
	}
	if height <= 0 {
		height = 32
	}
	return &Console{width: width, height: height, out: out}
}

// Width returns the surface width in pixels.
func (c *Console) Width() int { return c.width }

// RenderStop prints the stop header and up to three arrival rows.
func (c *Console) RenderStop(stopID, stopName string, snap board.StopSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "== %s (%s)\n", stopName, stopID)
	for _, e := range snap.Entries {
		marker := " "
		if e.Imminent {
			marker = "*"
		}
		fmt.Fprintf(c.out, "%s[%s] %-20s %3dm  %s\n", marker, e.RouteID, e.DestinationText, e.MinutesUntil, e.ArrivalClock)
	}
}

// RenderScrollFrame prints the visible slice of a scrolling message at
// pixel offset x. Text left of the surface is clipped, text right of it
// padded, so successive frames read as movement.
func (c *Console) RenderScrollFrame(text string, x int) {
	cols := c.width / charWidth
	col := x / charWidth

	var b strings.Builder
	for i := 0; i < cols; i++ {
		ti := i - col
		if ti >= 0 && ti < len(text) {
			b.WriteByte(text[ti])
		} else {
			b.WriteByte(' ')
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "|%s|\n", b.String())
}

// Clear blanks the surface.
func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "-- clear --")
}
