package vlist

import (
	"strings"

	"github.com/rivo/uniseg"
)

// cluster is a grapheme cluster and the number of cells it occupies.
type cluster struct {
	text  string
	width int
}

func splitClusters(text string) []cluster {
	var clusters []cluster
	state := -1
	for text != "" {
		var c string
		var boundaries int
		c, text, boundaries, state = uniseg.StepString(text, state)
		clusters = append(clusters, cluster{text: c, width: boundaries >> uniseg.ShiftWidth})
	}
	return clusters
}

// StringWidth returns the number of cells text occupies on screen.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// WordWrap splits text into lines no wider than width, breaking at the last
// line break opportunity before the limit, or inside a word that is wider
// than a line. Mandatory breaks such as newlines always end a line and are
// removed.
func WordWrap(text string, width int) (lines []string) {
	if width <= 0 {
		return nil
	}

	var (
		// lineWidth and lineLen measure the pending line in cells and bytes,
		// breakWidth and breakLen the part of it before the last optional
		// break.
		lineWidth, lineLen   int
		breakWidth, breakLen int
	)
	state := -1
	rest := text
	for rest != "" {
		var c string
		var boundaries int
		c, rest, boundaries, state = uniseg.StepString(rest, state)
		cellWidth := boundaries >> uniseg.ShiftWidth
		lineBreak := boundaries & uniseg.MaskLine
		if rest == "" && !uniseg.HasTrailingLineBreakInString(c) {
			lineBreak = uniseg.LineDontBreak
		}

		if lineWidth+cellWidth > width {
			if breakWidth == 0 {
				lines = append(lines, text[:lineLen])
				text = text[lineLen:]
				lineWidth, lineLen = 0, 0
			} else {
				lines = append(lines, text[:breakLen])
				text = text[breakLen:]
				lineWidth -= breakWidth
				lineLen -= breakLen
			}
			breakWidth, breakLen = 0, 0
		}

		lineWidth += cellWidth
		lineLen += len(c)

		switch lineBreak {
		case uniseg.LineCanBreak:
			breakWidth, breakLen = lineWidth, lineLen
		case uniseg.LineMustBreak:
			lines = append(lines, strings.TrimRight(text[:lineLen], "\n\r"))
			text = text[lineLen:]
			lineWidth, lineLen, breakWidth, breakLen = 0, 0, 0, 0
		}
	}
	return append(lines, text)
}
