package vlist

import (
	"github.com/gdamore/tcell/v3"
)

// Alignment controls horizontal text placement.
type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// Print prints text in color on row y within [x, x+maxWidth), keeping the
// background of the cells it covers. It returns the number of bytes and the
// number of cells printed.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, color tcell.Color) (int, int) {
	start, end, width := PrintWithStyle(screen, text, x, y, maxWidth, alignment, tcell.StyleDefault.Foreground(color), true)
	return end - start, width
}

// PrintWithStyle prints text in style on row y within [x, x+maxWidth).
// Text that does not fit is cut on the right for left alignment, on the left
// for right alignment and on both sides for center alignment. It returns the
// byte range of text that was printed and its width in cells. With
// maintainBackground, the style's background is replaced by the background
// already on screen.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style, maintainBackground bool) (start, end, printedWidth int) {
	screenWidth, screenHeight := screen.Size()
	if maxWidth <= 0 || text == "" || y < 0 || y >= screenHeight {
		return 0, 0, 0
	}

	clusters := splitClusters(text)
	textWidth := 0
	for _, c := range clusters {
		textWidth += c.width
	}

	// Drop clusters on the left and move x so that only left alignment
	// remains.
	first := 0
	switch alignment {
	case AlignmentRight:
		for first < len(clusters) && textWidth > maxWidth {
			textWidth -= clusters[first].width
			first++
		}
		x, maxWidth = x+maxWidth-textWidth, textWidth
	case AlignmentCenter:
		for excess := (textWidth - maxWidth) / 2; first < len(clusters) && excess > 0; first++ {
			excess -= clusters[first].width
			textWidth -= clusters[first].width
		}
		if textWidth < maxWidth {
			x, maxWidth = x+maxWidth/2-textWidth/2, textWidth
		}
	}
	for _, c := range clusters[:first] {
		start += len(c.text)
	}

	if maintainBackground {
		style = style.Background(tcell.ColorDefault)
	}
	end = start
	right := x + maxWidth
	for _, c := range clusters[first:] {
		if x >= right || x >= screenWidth {
			break
		}
		if c.width > 0 {
			cellStyle := style
			if maintainBackground {
				_, existing, _ := screen.Get(x, y)
				cellStyle = cellStyle.Background(existing.GetBackground())
			}
			screen.Put(x, y, c.text, cellStyle)
		}
		x += c.width
		end += len(c.text)
		printedWidth += c.width
	}
	return start, end, printedWidth
}

// fillRect paints every cell of the rectangle with a blank in style.
func fillRect(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.Put(col, row, " ", style)
		}
	}
}

// clamp limits value to the range [low, high]. If high is below low, low wins.
func clamp(value, low, high int) int {
	return max(low, min(value, high))
}
