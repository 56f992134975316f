package vlist

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// canvasCell is one cell of a Canvas. Wide graphemes occupy a lead cell
// followed by continuation cells.
type canvasCell struct {
	text  string
	style tcell.Style
	width int
	cont  bool
}

// Canvas is an off-screen tcell.Screen backed by a cell buffer. Primitives
// draw onto it exactly as they would onto a terminal, which makes it suitable
// for headless rendering and tests.
//
// Only the drawing methods are implemented. The embedded Screen is nil and
// calling any terminal method not overridden here panics.
type Canvas struct {
	tcell.Screen

	width, height int
	cells         []canvasCell
	defaultStyle  tcell.Style

	shows     int
	finalized bool
}

// NewCanvas returns a blank canvas of the given size. Negative sizes are
// treated as zero.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]canvasCell, width*height),
	}
	c.Clear()
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Clear fills the canvas with blanks in the default style.
func (c *Canvas) Clear() {
	c.Fill(' ', c.defaultStyle)
}

// Fill fills every cell with r in style.
func (c *Canvas) Fill(r rune, style tcell.Style) {
	for i := range c.cells {
		c.cells[i] = canvasCell{text: string(r), style: style, width: 1}
	}
}

// SetStyle sets the style used by Clear and PutStr.
func (c *Canvas) SetStyle(style tcell.Style) {
	c.defaultStyle = style
}

// Show counts presented frames. Nothing is sent anywhere.
func (c *Canvas) Show() {
	c.shows++
}

// Sync behaves like Show.
func (c *Canvas) Sync() {
	c.Show()
}

// Fini marks the canvas as finalized.
func (c *Canvas) Fini() {
	c.finalized = true
}

// Finalized reports whether Fini was called.
func (c *Canvas) Finalized() bool {
	return c.finalized
}

// Frames returns the number of frames presented with Show or Sync.
func (c *Canvas) Frames() int {
	return c.shows
}

// HideCursor is a no-op.
func (c *Canvas) HideCursor() {}

// SetContent writes a rune and its combining characters at (x, y).
func (c *Canvas) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	text := string(primary)
	if len(combining) > 0 {
		text += string(combining)
	}
	c.Put(x, y, text, style)
}

// Get returns the grapheme, style and width of the cell at (x, y).
func (c *Canvas) Get(x, y int) (str string, style tcell.Style, width int) {
	cell, ok := c.cellAt(x, y)
	if !ok {
		return "", tcell.StyleDefault, 1
	}
	return cell.text, cell.style, max(cell.width, 1)
}

// Put writes the first grapheme cluster of str at (x, y) and returns the rest
// of the string and the cluster's width.
func (c *Canvas) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if str == "" {
		return "", 0
	}

	cluster, remain, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if cluster == "" {
		r, size := utf8.DecodeRuneInString(str)
		if size == 0 {
			return "", 0
		}
		cluster, remain, width = string(r), str[size:], 1
	}
	if width <= 0 {
		return remain, 0
	}

	// Wide graphemes do not fit in the last column.
	if width > 1 && x == c.width-1 {
		cluster, width = " ", 1
	}

	c.setCell(x, y, canvasCell{text: cluster, style: style, width: width})
	for i := 1; i < width; i++ {
		c.setCell(x+i, y, canvasCell{style: style, cont: true})
	}
	return remain, width
}

// PutStr writes str at (x, y) in the default style.
func (c *Canvas) PutStr(x int, y int, str string) {
	c.PutStrStyled(x, y, str, c.defaultStyle)
}

// PutStrStyled writes str at (x, y) in style, clipped at the right edge.
func (c *Canvas) PutStrStyled(x int, y int, str string, style tcell.Style) {
	for str != "" && x < c.width {
		remain, width := c.Put(x, y, str, style)
		if width <= 0 || remain == str {
			return
		}
		x += width
		str = remain
	}
}

// Line returns the text of row y with trailing blanks removed.
func (c *Canvas) Line(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for x := 0; x < c.width; x++ {
		cell := c.cells[y*c.width+x]
		if cell.cont {
			continue
		}
		if cell.text == "" {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(cell.text)
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines returns every row of the canvas, see [Canvas.Line].
func (c *Canvas) Lines() []string {
	lines := make([]string, c.height)
	for y := range lines {
		lines[y] = c.Line(y)
	}
	return lines
}

// String returns the canvas content, one line per row.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// StyleAt returns the style of the cell at (x, y).
func (c *Canvas) StyleAt(x, y int) tcell.Style {
	_, style, _ := c.Get(x, y)
	return style
}

func (c *Canvas) cellAt(x, y int) (canvasCell, bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return canvasCell{}, false
	}
	return c.cells[y*c.width+x], true
}

func (c *Canvas) setCell(x, y int, cell canvasCell) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}

	// Overwriting the lead of a wide grapheme blanks its old tail.
	index := y*c.width + x
	if prev := c.cells[index]; !prev.cont && prev.width > 1 {
		for i := x + 1; i < min(x+prev.width, c.width); i++ {
			c.cells[y*c.width+i] = canvasCell{text: " ", style: prev.style, width: 1}
		}
	}
	c.cells[index] = cell
}
